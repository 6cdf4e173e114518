package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/leiscope/domain-resolver/internal/config"
	"github.com/leiscope/domain-resolver/internal/transport/middleware"
)

// Server wraps the HTTP server with its routes and middleware chain.
type Server struct {
	srv *http.Server
	rl  *middleware.RateLimiter
	log *slog.Logger
}

// NewServer builds the route table and wraps it in the standard
// middleware chain: recovery outermost, then request ID, logging, CORS.
func NewServer(
	log *slog.Logger,
	cfg config.ServerConfig,
	corsCfg config.CORSConfig,
	batches *BatchHandler,
	health *HealthHandler,
) *Server {
	rl := middleware.NewRateLimiter(time.Minute)

	mux := http.NewServeMux()

	mux.Handle("POST /api/v1/batches", middleware.Chain(rl.Limit(cfg.SubmitRateLimit))(http.HandlerFunc(batches.Submit)))
	mux.HandleFunc("GET /api/v1/batches/{id}", batches.Get)
	mux.HandleFunc("GET /api/v1/batches/{id}/tasks", batches.Tasks)
	mux.HandleFunc("GET /api/v1/batches/{id}/summary", batches.Summary)
	mux.HandleFunc("GET /api/v1/tasks/{id}/candidates", batches.Candidates)

	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	handler := middleware.Chain(
		middleware.Recovery(log),
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.CORS(corsCfg),
	)(mux)

	return &Server{
		srv: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		rl:  rl,
		log: log,
	}
}

// Handler returns the fully wrapped root handler. End-to-end tests
// mount it on an httptest server instead of binding a port.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Start blocks serving HTTP until Shutdown is called or the listener
// fails.
func (s *Server) Start() error {
	s.log.Info("http server listening", slog.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the rate limiter.
func (s *Server) Shutdown(ctx context.Context) error {
	s.rl.Stop()
	return s.srv.Shutdown(ctx)
}
