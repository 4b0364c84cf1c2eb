package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"langengine/internal/api"
	"langengine/internal/engine"
	"langengine/internal/logging"
)

const maxBodyBytes = 4 << 10

// Backend is the language state the router exposes.
type Backend interface {
	CurrentLanguage() string
	SetLanguage(ctx context.Context, code string) (engine.ChangeEvent, error)
	Status(ctx context.Context) api.DaemonStatus
}

// Options configures the router.
type Options struct {
	// Token, when non-empty, is required as a bearer token on every route
	// except /healthz.
	Token  string
	Logger *slog.Logger
}

type handlers struct {
	backend Backend
	logger  *slog.Logger
}

// NewRouter builds the HTTP API.
func NewRouter(backend Backend, opts Options) http.Handler {
	h := &handlers{
		backend: backend,
		logger:  logging.NewComponentLogger(opts.Logger, "http-api"),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(correlationID)
	r.Use(middleware.Recoverer)
	r.Use(h.requestLog)

	r.Get("/healthz", h.health)
	r.Group(func(r chi.Router) {
		r.Use(bearerAuth(opts.Token))
		r.Get("/language", h.getLanguage)
		r.Put("/language", h.putLanguage)
		r.Get("/status", h.status)
	})
	return r
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) getLanguage(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, api.FromLanguage(h.backend.CurrentLanguage()))
}

func (h *handlers) putLanguage(w http.ResponseWriter, r *http.Request) {
	var req api.SetLanguageRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Language == nil {
		h.writeJSON(w, http.StatusUnprocessableEntity, api.NullInput(h.backend.CurrentLanguage()))
		return
	}

	event, err := h.backend.SetLanguage(r.Context(), *req.Language)
	resp := api.FromSetResult(h.backend.CurrentLanguage(), event, err)
	h.writeJSON(w, httpStatusFor(engine.Status(resp.Status)), resp)
}

func (h *handlers) status(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.backend.Status(r.Context()))
}

func httpStatusFor(status engine.Status) int {
	switch status {
	case engine.StatusOK:
		return http.StatusOK
	case engine.StatusInvalidCode:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *handlers) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (h *handlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

// correlationID carries the chi request id into the logging context so the
// resulting change event shares it.
func correlationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			r = r.WithContext(logging.WithCorrelationID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

func (h *handlers) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logging.WithContext(r.Context(), h.logger).Debug("http request",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", ww.Status()),
			logging.Duration("elapsed", time.Since(start)))
	})
}

// bearerAuth validates bearer tokens. An empty token disables the check.
func bearerAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") != token {
				http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
