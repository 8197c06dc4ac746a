// Package web serves the browser UI and a small JSON API over gin.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/examgen/internal/examgen"
	"github.com/abhisek/examgen/internal/export"
	"github.com/abhisek/examgen/internal/llm"
	"github.com/abhisek/examgen/internal/session"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// ProviderSource hands out a provider for a caller-supplied API key.
// *llm.Factory implements it.
type ProviderSource interface {
	For(ctx context.Context, userKey string) (llm.Provider, error)
	HasServerKey() bool
}

// Options carries the server's collaborators.
type Options struct {
	Providers ProviderSource
	Exam      examgen.Config
	PDF       export.Options
	Logger    *slog.Logger
}

// Server wraps the gin engine, the session registry and the HTTP server.
type Server struct {
	cfg       Config
	engine    *gin.Engine
	providers ProviderSource
	sessions  *session.Registry
	exam      examgen.Config
	pdf       export.Options
	logger    *slog.Logger

	catalogMu sync.Mutex
	catalogs  map[llm.Provider]llm.ModelCatalog

	srv *http.Server
}

// New wires routes and templates.
func New(cfg Config, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	engine := gin.Default()
	engine.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.tmpl")))
	engine.MaxMultipartMemory = cfg.MaxUploadBytes

	s := &Server{
		cfg:       cfg,
		engine:    engine,
		providers: opts.Providers,
		sessions:  session.NewRegistry(),
		exam:      opts.Exam,
		pdf:       opts.PDF,
		logger:    logger,
		catalogs:  make(map[llm.Provider]llm.ModelCatalog),
	}
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Sessions exposes the session registry.
func (s *Server) Sessions() *session.Registry {
	return s.sessions
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.sweep(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web UI listening", "addr", s.cfg.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}

func (s *Server) sweep(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sessions.Sweep(s.cfg.SessionIdle); n > 0 {
				s.logger.Debug("swept idle sessions", "removed", n, "live", s.sessions.Len())
			}
		}
	}
}

func (s *Server) setupRoutes() {
	s.engine.GET("/", s.indexPage)
	s.engine.POST("/settings", s.saveSettings)
	s.engine.POST("/generate", s.generate)
	s.engine.GET("/exam.pdf", s.examPDF)
	s.engine.GET("/healthz", s.healthz)

	api := s.engine.Group("/api")
	api.GET("/models", s.apiModels)
	api.POST("/exams", s.apiExams)
}

// catalog returns the cached model catalog for p. Failed listings are not
// cached so a later page load can retry.
func (s *Server) catalog(ctx context.Context, p llm.Provider) llm.ModelCatalog {
	s.catalogMu.Lock()
	cat, ok := s.catalogs[p]
	s.catalogMu.Unlock()
	if ok {
		return cat
	}

	cat = examgen.Models(ctx, p, s.cfg.PreferredModel, s.cfg.FallbackModel)
	if cat.Err != nil {
		s.logger.Warn("model listing failed", "error", cat.Err)
		return cat
	}

	s.catalogMu.Lock()
	s.catalogs[p] = cat
	s.catalogMu.Unlock()
	return cat
}

func (s *Server) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.Timeout > 0 {
		return context.WithTimeout(ctx, s.cfg.Timeout)
	}
	return context.WithCancel(ctx)
}
