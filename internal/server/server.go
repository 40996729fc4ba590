package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"smart-stadium/internal/app/status"
	"smart-stadium/internal/config"
	"smart-stadium/internal/domain/contests"
	"smart-stadium/internal/effects"
	"smart-stadium/internal/history"
	httpserver "smart-stadium/internal/http"
	"smart-stadium/internal/http/handlers"
	"smart-stadium/internal/http/middleware"
	"smart-stadium/internal/lights"
	"smart-stadium/internal/logging"
	"smart-stadium/internal/metrics"
	"smart-stadium/internal/monitor"
	"smart-stadium/internal/providers"
	"smart-stadium/internal/tracker"
)

var metricsSetup = metrics.Setup

const serviceName = "smart-stadium"

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	tracker       *tracker.Tracker
	controller    *lights.Controller
	history       *history.Recorder
	status        *status.Service
	httpServer    httpServer
	metricsServer httpServer
	monitor       Monitor
	metricsStop   func(context.Context) error
}

// services bundles the domain components built once at startup.
type services struct {
	tracker    *tracker.Tracker
	resolver   *effects.Resolver
	controller *lights.Controller
	history    *history.Recorder
	reader     *history.Reader
}

// New constructs a server with default provider and monitor wiring. Unreadable
// device or palette configuration is a hard startup failure.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithProvider(cfg, logger, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.ScoreboardProvider) (*Server, error) {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.ScoreboardProvider, recorder *metrics.Recorder) (*Server, error) {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	if provider == nil {
		provider = newProviderFactory(logger, recorder).build(cfg)
	} else {
		provider = providers.NewRetryingProvider(provider, logger, recorder, normalizeProviderName(cfg.Provider, provider), 0, 0)
	}

	parts, err := buildServices(cfg, logger, recorder)
	if err != nil {
		return nil, err
	}

	sports := parseSports(cfg.Sports)
	mon := monitor.New(provider, parts.tracker, parts.resolver, parts.controller, parts.history, logger, recorder, monitor.Config{
		Sports:         sports,
		PollInterval:   cfg.Monitor.PollInterval,
		IdleInterval:   cfg.Monitor.IdleInterval,
		BackoffCeiling: cfg.Monitor.BackoffCeiling,
		FinalRetention: cfg.Monitor.FinalRetention,
		FetchTimeout:   cfg.Monitor.FetchTimeout,
	})

	statusSvc := status.NewService(serviceName, mon, parts.tracker, parts.controller.Registry(), parts.reader, sports)
	httpSrv := buildHTTPServer(cfg, statusSvc, parts, mon, logger, recorder)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		tracker:       parts.tracker,
		controller:    parts.controller,
		history:       parts.history,
		status:        statusSvc,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		monitor:       mon,
		metricsStop:   metricsShutdown,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, svc *status.Service, httpSrv httpServer, mon Monitor) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		status:     svc,
		httpServer: httpSrv,
		monitor:    mon,
	}
}

func buildServices(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (services, error) {
	palette, err := effects.LoadPalette(cfg.Lights.TeamColorsFile)
	if err != nil {
		return services{}, fmt.Errorf("startup: %w", err)
	}
	devices, err := lights.LoadDevices(cfg.Lights.DevicesFile)
	if err != nil {
		return services{}, fmt.Errorf("startup: %w", err)
	}
	commander, err := lights.NewCommander(devices, lights.GoveeConfig{
		BaseURL: cfg.Lights.GoveeBaseURL,
		APIKey:  cfg.Lights.GoveeAPIKey,
	})
	if err != nil {
		return services{}, fmt.Errorf("startup: %w", err)
	}

	registry := lights.NewRegistry(devices, logger)
	dispatcher := lights.NewDispatcher(commander, logger, recorder, lights.DispatcherConfig{
		CommandTimeout: cfg.Lights.CommandTimeout,
		RetryDelay:     cfg.Lights.RetryDelay,
		Deadline:       cfg.Lights.DispatchDeadline,
	})

	return services{
		tracker:    tracker.New(logger, recorder),
		resolver:   effects.NewResolver(palette),
		controller: lights.NewController(registry, dispatcher, logger),
		history:    history.NewRecorder(cfg.History.BasePath, cfg.History.RetentionDays, logger, recorder),
		reader:     history.NewReader(cfg.History.BasePath),
	}, nil
}

func buildHTTPServer(cfg config.Config, svc *status.Service, parts services, mon Monitor, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	api := handlers.NewHandler(svc, mon, logger)
	devices := handlers.NewDeviceHandler(parts.controller, logger)
	celebrations := handlers.NewCelebrationHandler(parts.resolver, parts.controller, parts.history, logger)
	admin := handlers.NewAdminHandler(mon, cfg.AdminToken, logger)

	router := httpserver.NewRouter(api, devices, celebrations, admin, httpserver.Options{
		CORSOrigins:  cfg.CORSOrigins,
		RateLimitRPM: cfg.RateLimitRPM,
		AdminToken:   cfg.AdminToken,
	})

	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
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

// parseSports maps configured sport names onto the known leagues, defaulting
// to NFL when nothing recognizable is configured.
func parseSports(raw []string) []contests.Sport {
	out := make([]contests.Sport, 0, len(raw))
	for _, s := range raw {
		if sport, ok := contests.ParseSport(s); ok {
			out = append(out, sport)
		}
	}
	if len(out) == 0 {
		return []contests.Sport{contests.SportNFL}
	}
	return out
}

// Run starts the monitor and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.monitor.Start(ctx)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
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

	if err := s.monitor.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("failed to stop monitor", "error", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	// With the monitor and API drained, leave the room in default lighting.
	if s.controller != nil {
		s.controller.Shutdown(shutdownCtx)
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
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
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
