package transport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RPCHandler handles method dispatch for one identity.
type RPCHandler interface {
	Handle(ctx context.Context, tenantID, userID, method string, params json.RawMessage) (any, error)
}

// coded is implemented by application errors that carry a stable code.
type coded interface {
	error
	ErrorCode() string
}

// Server wires HTTP handlers.
type Server struct {
	handler RPCHandler
	logger  *slog.Logger
}

// Options configures the router.
type Options struct {
	// Identity resolves who a /rpc request acts as. Required.
	Identity func(http.Handler) http.Handler
	// MCP, when set, is mounted at /mcp.
	MCP    http.Handler
	Logger *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(handler RPCHandler, opts Options) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	srv := &Server{handler: handler, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", srv.handleHealth)

	r.Group(func(r chi.Router) {
		if opts.Identity != nil {
			r.Use(opts.Identity)
		}
		r.Post("/rpc", srv.handleRPC)
	})

	if opts.MCP != nil {
		r.Handle("/mcp", opts.MCP)
		r.Handle("/mcp/*", opts.MCP)
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	req, err := ParseRequest(r.Body)
	if err != nil {
		code := ErrInvalidReq
		if errors.Is(err, errParse) {
			code = ErrParseCode
		}
		WriteError(w, nil, code, err.Error(), nil)
		return
	}

	id, ok := IdentityFromContext(r.Context())
	if !ok {
		http.Error(w, "missing identity", http.StatusUnauthorized)
		return
	}

	result, err := s.handler.Handle(r.Context(), id.TenantID, id.UserID, req.Method, req.Params)
	if err != nil {
		var appErr coded
		switch {
		case errors.Is(err, ErrUnauthorized):
			http.Error(w, "unauthorized", http.StatusUnauthorized)
		case errors.As(err, &appErr):
			code := ErrApplication
			switch appErr.ErrorCode() {
			case "UNKNOWN_METHOD":
				code = ErrMethodNotFound
			case "VALIDATION_ERROR":
				code = ErrInvalidParams
			}
			WriteError(w, req.ID, code, appErr.Error(), appErr)
		default:
			s.logger.Error("rpc method failed", "method", req.Method, "tenant_id", id.TenantID, "user_id", id.UserID, "request_id", middleware.GetReqID(r.Context()), "error", err)
			WriteError(w, req.ID, ErrInternal, "internal error", nil)
		}
		return
	}

	WriteResult(w, req.ID, result)
}
