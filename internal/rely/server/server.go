// Package server exposes repository scoring over HTTP: a JSON endpoint and a
// small HTML form.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/build-flow-labs/rely/internal/rely/github"
	"github.com/build-flow-labs/rely/internal/rely/repo"
	"github.com/build-flow-labs/rely/internal/rely/service"
)

//go:embed templates/*.html
var templateFS embed.FS

// Scorer scores repositories.
type Scorer interface {
	ScoreRepository(ctx context.Context, rawURL string) (*service.Result, error)
	ScoreIdentifier(ctx context.Context, id repo.Identifier) (*service.Result, error)
}

// Config holds server configuration.
type Config struct {
	Addr    string
	Version string

	// UpstreamTimeout is the GitHub client timeout per API read.
	UpstreamTimeout time.Duration
}

// Used when Config.UpstreamTimeout is unset.
const defaultUpstreamTimeout = 30 * time.Second

// writeMargin covers reduction and rendering after the API reads.
const writeMargin = 10 * time.Second

// writeTimeout outlasts two sequential upstream reads plus writeMargin.
func (c Config) writeTimeout() time.Duration {
	upstream := c.UpstreamTimeout
	if upstream <= 0 {
		upstream = defaultUpstreamTimeout
	}
	return 2*upstream + writeMargin
}

// Server is the rely HTTP server.
type Server struct {
	cfg    Config
	scorer Scorer
	form   *template.Template
	logger *slog.Logger
	mux    *http.ServeMux

	requestsServed atomic.Int64
	requestsFailed atomic.Int64
	lastRequestAt  atomic.Value // time.Time
}

// New creates a configured server.
func New(cfg Config, scorer Scorer, logger *slog.Logger) (*Server, error) {
	form, err := template.New("").Funcs(template.FuncMap{
		"fixed": func(f float64) string { return fmt.Sprintf("%.2f", f) },
	}).ParseFS(templateFS, "templates/form.html")
	if err != nil {
		return nil, fmt.Errorf("parsing form template: %w", err)
	}

	s := &Server{
		cfg:    cfg,
		scorer: scorer,
		form:   form,
		logger: logger,
		mux:    http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /score_repo", s.handleScoreRepo)
	s.mux.HandleFunc("GET /{$}", s.handleForm)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /status", s.handleStatus)

	return s, nil
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start begins listening. Blocks until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: s.cfg.writeTimeout(),
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("rely server starting", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutting down rely server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"requests_served": s.requestsServed.Load(),
		"requests_failed": s.requestsFailed.Load(),
	}
	if s.cfg.Version != "" {
		status["version"] = s.cfg.Version
	}
	if t, ok := s.lastRequestAt.Load().(time.Time); ok {
		status["last_request_at"] = t.Format(time.RFC3339)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

// record updates the status counters after a scoring attempt.
func (s *Server) record(err error) {
	s.lastRequestAt.Store(time.Now().UTC())
	if err != nil {
		s.requestsFailed.Add(1)
		return
	}
	s.requestsServed.Add(1)
}

// statusFor maps a scoring error onto an HTTP status code.
func statusFor(err error) int {
	var verr *repo.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest
	}
	var apiErr *github.APIError
	if errors.As(err, &apiErr) {
		if apiErr.NotFound() {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
