package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/launchdash/launchdash/internal/binding"
	"github.com/launchdash/launchdash/internal/config"
	"github.com/launchdash/launchdash/internal/launch"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	ds         *launch.Dataset
	dispatcher *binding.Dispatcher
	cfg        *config.Config
	logger     *slog.Logger
	router     *http.ServeMux
	startTime  time.Time
}

// New wires the HTTP surface around an already loaded dataset.
func New(ds *launch.Dataset, cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	srv := &Server{
		ds:         ds,
		dispatcher: binding.New(ds),
		cfg:        cfg,
		logger:     logger,
		router:     http.NewServeMux(),
		startTime:  time.Now(),
	}

	srv.setupRoutes()
	return srv
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/", s.handleDashboard)
	s.router.HandleFunc("/dashboard.js", s.handleDashboardJS)
	s.router.HandleFunc("/health", s.handleHealth)

	s.router.HandleFunc("/api/layout", s.handleLayout)
	s.router.HandleFunc("/api/update", s.handleUpdate)
	s.router.HandleFunc("/api/site-summary", s.handleSiteSummary)
	s.router.HandleFunc("/api/scatter", s.handleScatter)
	s.router.HandleFunc("/api/export", s.handleExport)

	s.router.HandleFunc("/charts/pie", s.handleChart(binding.OutputPie))
	s.router.HandleFunc("/charts/scatter", s.handleChart(binding.OutputScatter))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("dashboard listening",
			slog.String("url", "http://localhost"+s.cfg.Addr()),
			slog.Int("records", s.ds.Len()))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return httpSrv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Handler returns the router wrapped in request logging.
func (s *Server) Handler() http.Handler {
	return s.requestLogger(s.router)
}
