package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"langengine/internal/config"
	"langengine/internal/httpapi"
	"langengine/internal/logging"
)

type httpServer struct {
	bind   string
	logger *slog.Logger

	listener net.Listener
	server   *http.Server
}

// newHTTPServer returns nil when no bind address is configured.
func newHTTPServer(cfg *config.Config, d *Daemon, logger *slog.Logger) (*httpServer, error) {
	if cfg == nil || d == nil {
		return nil, nil
	}
	bind := strings.TrimSpace(cfg.HTTP.Bind)
	if bind == "" {
		return nil, nil
	}

	srv := &httpServer{
		bind:   bind,
		logger: logging.NewComponentLogger(logger, "http-server"),
	}
	srv.server = &http.Server{
		Handler:           httpapi.NewRouter(d, httpapi.Options{Token: cfg.HTTP.Token, Logger: logger}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

func (s *httpServer) start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("http listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server error",
				logging.Error(err),
				logging.String(logging.FieldEventType, "http_serve_failed"))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("http api listening", logging.String("address", listener.Addr().String()))
	return nil
}

func (s *httpServer) stop() {
	if s == nil {
		return
	}
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *httpServer) addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}
