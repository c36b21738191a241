package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/epl-compare-service/internal/app/compare"
	"github.com/preston-bernstein/epl-compare-service/internal/config"
	httpserver "github.com/preston-bernstein/epl-compare-service/internal/http"
	"github.com/preston-bernstein/epl-compare-service/internal/http/handlers"
	"github.com/preston-bernstein/epl-compare-service/internal/http/middleware"
	"github.com/preston-bernstein/epl-compare-service/internal/logging"
	"github.com/preston-bernstein/epl-compare-service/internal/mcptools"
	"github.com/preston-bernstein/epl-compare-service/internal/metrics"
	"github.com/preston-bernstein/epl-compare-service/internal/poller"
	"github.com/preston-bernstein/epl-compare-service/internal/providers"
	"github.com/preston-bernstein/epl-compare-service/internal/providers/sample"
	"github.com/preston-bernstein/epl-compare-service/internal/snapshots"
	"github.com/preston-bernstein/epl-compare-service/internal/store"
)

// Version is reported by the MCP server.
const Version = "dev"

var (
	metricsSetup = metrics.Setup
	clock        = time.Now
)

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	seasons       handlers.Seasons
	provider      providers.SeasonProvider
	cache         *store.MemoryStore
	compare       *compare.Service
	syncer        *snapshots.Syncer
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
}

// New constructs a server with default provider, snapshot and poller wiring.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.SeasonProvider) *Server {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.SeasonProvider, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	if provider == nil {
		provider = newProviderFactory(logger, recorder).build(cfg)
	} else {
		provider = providers.NewRetryingProvider(provider, logger, recorder, normalizeProviderName(cfg.Provider, provider), 0, 0)
	}

	seasons := resolveSeasons(cfg, clock())
	snaps := buildSnapshots(cfg, provider, seasons.Current, logger)
	svc := compare.NewService(snaps.cache, compare.Config{
		TopFlight:     cfg.Seasons.TopFlight,
		LowerDivision: cfg.Seasons.LowerDivision,
	}, logger, recorder)
	plr := poller.New(provider, snaps.writer, snaps.cache, logger, recorder, cfg.PollInterval, seasons.Current)
	httpSrv := buildHTTPServer(cfg, seasons, svc, snaps.syncer, logger, recorder, plr)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		seasons:       seasons,
		provider:      provider,
		cache:         snaps.cache,
		compare:       svc,
		syncer:        snaps.syncer,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, svc *compare.Service, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		compare:    svc,
		httpServer: httpSrv,
		poller:     plr,
	}
}

// resolveSeasons picks the default comparison. The offline dataset has its
// own calendar, so it supplies the current season unless one is configured.
func resolveSeasons(cfg config.Config, now time.Time) handlers.Seasons {
	sc := cfg.Seasons
	if sc.Current <= 0 && usesSampleData(cfg.Provider) {
		sc.Current = sample.CurrentSeason
	}
	current, reference := sc.Resolve(now)
	return handlers.Seasons{Current: current, Reference: reference}
}

func buildHTTPServer(cfg config.Config, seasons handlers.Seasons, svc *compare.Service, refresher handlers.SnapshotRefresher, logger *slog.Logger, recorder *metrics.Recorder, plr Poller) httpServer {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}

	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}
	handler := handlers.NewHandler(svc, seasons, logger, statusFn)

	// Admin refresh is only mounted when a token is configured.
	var admin *handlers.AdminHandler
	if cfg.Snapshots.AdminToken != "" {
		admin = handlers.NewAdminHandler(refresher, cfg.Snapshots.AdminToken, seasons.Current, logger)
	}

	var mcpHandler http.Handler
	if cfg.MCPEnabled {
		tools := mcptools.New(svc, seasons.Current, seasons.Reference, logger)
		mcpHandler = mcptools.Handler(tools.NewServer(Version))
	}

	router := httpserver.NewRouter(handler, admin, mcpHandler)
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the poller, the snapshot backfill and the HTTP server, then waits
// for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.poller.Start(ctx)
	if s.syncer != nil {
		go s.syncer.Run(ctx)
	}

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting",
			slog.String("addr", s.httpServer.Addr()),
			slog.Int(logging.FieldSeason, s.seasons.Current),
		)
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("failed to stop poller", "error", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	// Releases the rate limiter when one is in the chain.
	if closer, ok := s.provider.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil && s.logger != nil {
			s.logger.Warn("provider close failed", "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", logging.Err(err))
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// Seasons reports the default comparison the server answers.
func (s *Server) Seasons() handlers.Seasons {
	return s.seasons
}
