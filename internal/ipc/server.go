package ipc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"

	"github.com/google/uuid"

	"langengine/internal/api"
	"langengine/internal/engine"
	"langengine/internal/logging"
)

// ServiceName is the JSON-RPC service prefix ("LangEngine.Get").
const ServiceName = "LangEngine"

// Backend is the language state served over the socket. *daemon.Daemon
// satisfies it.
type Backend interface {
	CurrentLanguage() string
	SetLanguage(ctx context.Context, code string) (engine.ChangeEvent, error)
	Status(ctx context.Context) api.DaemonStatus
}

// Server exposes the daemon via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path.
func NewServer(ctx context.Context, path string, backend Backend, logger *slog.Logger) (*Server, error) {
	if backend == nil {
		return nil, errors.New("ipc server requires backend")
	}
	logger = logging.NewComponentLogger(logger, "ipc")

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	rpcServer := rpc.NewServer()
	srv := &service{backend: backend, logger: logger, ctx: serverCtx}
	if err := rpcServer.RegisterName(ServiceName, srv); err != nil {
		cancel()
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	return &Server{
		path:      path,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Path returns the socket path.
func (s *Server) Path() string { return s.path }

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("IPC server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				if errors.Is(err, net.ErrClosed) {
					return
				}
				s.logger.Warn("accept failed",
					logging.Error(err),
					logging.String(logging.FieldEventType, "ipc_accept_failed"),
					logging.String(logging.FieldErrorHint, "check socket permissions and restart the daemon if needed"))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
	go func() {
		<-s.ctx.Done()
		_ = s.listener.Close()
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket",
			logging.String("socket", s.path),
			logging.Error(err),
			logging.String(logging.FieldEventType, "ipc_socket_cleanup_failed"),
			logging.String(logging.FieldErrorHint, "remove the socket file manually before the next start"))
	}
}

type service struct {
	backend Backend
	logger  *slog.Logger
	ctx     context.Context
}

func (s *service) Get(_ GetRequest, resp *GetResponse) error {
	*resp = api.FromLanguage(s.backend.CurrentLanguage())
	return nil
}

func (s *service) Set(req SetRequest, resp *SetResponse) error {
	if req.Language == nil {
		*resp = api.NullInput(s.backend.CurrentLanguage())
		return nil
	}
	ctx := logging.WithCorrelationID(s.ctx, uuid.NewString())
	event, err := s.backend.SetLanguage(ctx, *req.Language)
	*resp = api.FromSetResult(s.backend.CurrentLanguage(), event, err)
	if err != nil {
		logging.WithContext(ctx, s.logger).Debug("set rejected",
			logging.String(logging.FieldLanguage, *req.Language),
			logging.Error(err))
	}
	return nil
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	*resp = s.backend.Status(s.ctx)
	return nil
}

func (s *service) Languages(_ LanguagesRequest, resp *LanguagesResponse) error {
	resp.Languages = api.KnownLanguages()
	return nil
}
