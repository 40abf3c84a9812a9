package transport

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mergington/activities/internal/domain/activity"
)

// IndexPath is where the root path redirects.
const IndexPath = "/static/index.html"

// ActivityService is the registry surface served over HTTP.
type ActivityService interface {
	List(ctx context.Context) (activity.Catalog, error)
	SignUp(ctx context.Context, name, email string) (string, error)
	Unregister(ctx context.Context, name, email string) (string, error)
}

// Options configures the optional parts of the router.
type Options struct {
	Logger  *slog.Logger
	Metrics *Metrics     // nil disables /metrics and request metrics
	Static  fs.FS        // nil disables /static
	MCP     http.Handler // nil disables /mcp
}

// Server wires HTTP handlers.
type Server struct {
	svc    ActivityService
	logger *slog.Logger
}

// NewServer creates an HTTP router with middleware.
func NewServer(svc ActivityService, opts Options) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(logger))
	r.Use(middleware.Recoverer)
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	srv := &Server{svc: svc, logger: logger}

	r.Get("/", srv.handleRoot)
	r.Get("/health", srv.handleHealth)
	r.Get("/activities", srv.handleList)
	r.Post("/activities/{activityName}/signup", srv.handleSignUp)
	r.Delete("/activities/{activityName}/unregister", srv.handleUnregister)

	if opts.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(opts.Static))))
	}
	if opts.MCP != nil {
		r.Handle("/mcp", opts.MCP)
		r.Handle("/mcp/*", opts.MCP)
	}

	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, IndexPath, http.StatusTemporaryRedirect)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	catalog, err := s.svc.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog)
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	name, email, ok := s.registrationParams(w, r)
	if !ok {
		return
	}
	msg, err := s.svc.SignUp(r.Context(), name, email)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: msg})
}

func (s *Server) handleUnregister(w http.ResponseWriter, r *http.Request) {
	name, email, ok := s.registrationParams(w, r)
	if !ok {
		return
	}
	msg, err := s.svc.Unregister(r.Context(), name, email)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: msg})
}

func (s *Server) registrationParams(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	name, err := pathParam(r, "activityName")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "malformed activity name")
		return "", "", false
	}
	// An absent key is rejected; "email=" is passed through as "" so the
	// registry still decides between not found and registered.
	email, ok := rawQueryParam(r, "email")
	if !ok {
		writeDetail(w, http.StatusUnprocessableEntity, "email query parameter is required")
		return "", "", false
	}
	return name, email, true
}
