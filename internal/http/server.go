package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/Markdcoder/mobile-fintech-dashboard/internal/auth"
	"github.com/Markdcoder/mobile-fintech-dashboard/internal/cache"
	"github.com/Markdcoder/mobile-fintech-dashboard/internal/core"
	applog "github.com/Markdcoder/mobile-fintech-dashboard/internal/log"
	"github.com/Markdcoder/mobile-fintech-dashboard/internal/middleware/ratelimit"
	"github.com/Markdcoder/mobile-fintech-dashboard/internal/middleware/security"
	"github.com/Markdcoder/mobile-fintech-dashboard/internal/middleware/trace"
	"github.com/Markdcoder/mobile-fintech-dashboard/internal/services"
	appweb "github.com/Markdcoder/mobile-fintech-dashboard/web"
)

// DashboardLoader is the read side of the dashboard.
type DashboardLoader interface {
	Load(ctx context.Context, query, category string) (services.Dashboard, error)
	Filter(ctx context.Context, query, category string) ([]core.Transaction, error)
}

type ActionTrigger interface {
	Trigger(ctx context.Context, actionID, user string) (services.Acknowledgement, error)
}

// Deps are the collaborators of the server. Ready and CacheStats may be nil.
type Deps struct {
	Dashboard     DashboardLoader
	Actions       ActionTrigger
	Authenticator auth.Authenticator
	Sessions      *auth.SessionManager
	Logger        *applog.Logger
	Ready         func(ctx context.Context) error
	CacheStats    func() cache.Stats
}

type Server struct {
	http.Server
	templates *template.Template

	dashboard     DashboardLoader
	actions       ActionTrigger
	authenticator auth.Authenticator
	sessions      *auth.SessionManager
	ready         func(ctx context.Context) error
	cacheStats    func() cache.Stats

	logger      *applog.Logger
	events      *applog.StructuredLogger
	tracer      *trace.Middleware
	detector    *security.Detector
	rateLimiter *ratelimit.Limiter

	shutdownOnce sync.Once
}

// NewServer configures routes, middleware and templates, returning a ready-to-run server.
func NewServer(addr string, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}

	s := &Server{
		dashboard:     deps.Dashboard,
		actions:       deps.Actions,
		authenticator: deps.Authenticator,
		sessions:      deps.Sessions,
		ready:         deps.Ready,
		cacheStats:    deps.CacheStats,
		logger:        logger.WithComponent(applog.ComponentHTTP),
		events:        applog.NewStructuredLogger(logger),
		detector:      security.NewDetector(),
		rateLimiter:   ratelimit.NewLimiter(ratelimit.DefaultConfig()),
	}
	s.tracer = trace.NewMiddleware(s.detector.ExtractClientIP)

	t, err := template.New("").Funcs(templateFuncs).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Warn("Failed parsing templates", "error", err)
	} else {
		s.templates = t
	}

	mux := http.NewServeMux()

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/metrics", s.handleMetrics)

	mux.HandleFunc("/{$}", s.handleIndex)
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/logout", s.handleLogout)
	mux.HandleFunc("/theme", s.handleTheme)

	mux.Handle("/dashboard", s.requireSession(s.handleDashboard, false))
	mux.Handle("/ui/transactions", s.requireSession(s.handleTransactionsPartial, true))
	mux.Handle("/api/transactions", s.requireSession(s.handleTransactionsAPI, true))
	mux.Handle("/actions/{id}", s.requireSession(s.handleQuickAction, false))

	var handler http.Handler = mux
	handler = applog.RequestIDMiddleware(trace.RequestIDFromRequest)(handler)
	handler = applog.Middleware(logger)(handler)
	handler = s.rateLimiter.Middleware(s.detector.ExtractClientIP, http.MethodPost)(handler)
	handler = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(handler)
	handler = s.detector.Middleware(handler)
	handler = s.tracer.Middleware(handler)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Shutdown stops background routines and gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

type userContextKey struct{}

// requireSession guards handlers behind a valid session cookie. Pages
// redirect to the login screen; partials and API calls get 401.
func (s *Server) requireSession(next http.HandlerFunc, api bool) http.Handler {
	return security.NoStoreMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := s.sessions.FromRequest(r)
		if !ok {
			if api {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey{}, user)
		next(w, r.WithContext(ctx))
	}))
}

func userFromContext(ctx context.Context) core.User {
	user, _ := ctx.Value(userContextKey{}).(core.User)
	return user
}

// render executes a template into a buffer first so a failing template
// never leaves a half-written page behind.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, status int, data any) {
	if s.templates == nil {
		s.requestLogger(r).ErrorContext(r.Context(), "Templates not loaded", "template", name, "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	body, err := s.renderString(name, data)
	if err != nil {
		s.requestLogger(r).ErrorContext(r.Context(), "Template execution failed", "error", err, "template", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// requestLogger returns the logger carrying the request ID, falling back to
// the server logger outside the middleware chain.
func (s *Server) requestLogger(r *http.Request) *applog.Logger {
	if l, ok := r.Context().Value(applog.LoggerContextKey).(*applog.Logger); ok {
		return l.WithComponent(applog.ComponentHTTP)
	}
	return s.logger
}
