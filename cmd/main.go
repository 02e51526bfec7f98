package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/campusdesk/campusdesk/internal/config"
	"github.com/campusdesk/campusdesk/internal/domain"
	"github.com/campusdesk/campusdesk/internal/handler"
	"github.com/campusdesk/campusdesk/internal/health"
	"github.com/campusdesk/campusdesk/internal/infra/notifier"
	"github.com/campusdesk/campusdesk/internal/infra/repository"
	"github.com/campusdesk/campusdesk/internal/infra/runrecorder"
	"github.com/campusdesk/campusdesk/internal/infra/store"
	"github.com/campusdesk/campusdesk/internal/observability"
	"github.com/campusdesk/campusdesk/internal/observability/logging"
	"github.com/campusdesk/campusdesk/internal/observability/metrics"
	"github.com/campusdesk/campusdesk/internal/observability/middleware"
	"github.com/campusdesk/campusdesk/internal/service/deadline"
	"github.com/campusdesk/campusdesk/internal/service/derive"
	"github.com/campusdesk/campusdesk/internal/service/reconcile"
	"github.com/campusdesk/campusdesk/internal/service/timetable"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}
	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	obs, err := initObservability(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	reconcileMetrics, err := metrics.NewReconcileMetrics()
	if err != nil {
		slog.Error("failed to initialize reconcile metrics", slog.String("error", err.Error()))
		return 1
	}

	passRecorder, err := runrecorder.NewRecorder(ctx, runrecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize reconcile pass recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := passRecorder.Close(); err != nil {
			slog.Warn("failed to close reconcile pass recorder", slog.String("error", err.Error()))
		}
	}()

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database",
			slog.String("path", cfg.DatabasePath),
			slog.String("error", err.Error()),
		)
		return 1
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Warn("failed to close database", slog.String("error", err.Error()))
		}
	}()

	slog.Info("database opened", slog.String("path", cfg.DatabasePath))

	redisClient, baselineRepo, err := initBaseline(ctx, cfg)
	if err != nil {
		return 1
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Warn("failed to close redis client", slog.String("error", err.Error()))
			}
		}()
	}

	notifyClient := initNotifier(ctx, cfg)

	resolver := timetable.NewResolver(cfg.Timetable.LookaheadDays)
	deriver := derive.NewDeriver(
		deadline.NewClassifier(),
		resolver,
		cfg.Reconcile.DefaultNotificationHour,
		cfg.Reconcile.DefaultNotificationMinute,
	)

	engine := reconcile.NewEngine(
		db.Actions(),
		db.Timetable(),
		baselineRepo,
		notifyClient,
		deriver,
		reconcileMetrics,
		passRecorder,
		cfg.Reconcile.SweepUnknown,
	)

	actionHandler := handler.NewActionHandler(db.Actions(), engine)
	timetableHandler := handler.NewTimetableHandler(db.Timetable(), resolver, engine)
	reconcileHandler := handler.NewReconcileHandler(engine)

	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready"},
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(redisClient, db, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	v1 := r.Group("/api/v1")
	{
		actionHandler.RegisterRoutes(v1)
		timetableHandler.RegisterRoutes(v1)
		reconcileHandler.RegisterRoutes(v1)
	}

	// The periodic loop is the self-healing backstop: even with no
	// mutations, passes keep converging against missed triggers, restarts,
	// and day rollover.
	go runReconcileLoop(ctx, engine, cfg.Reconcile.PollInterval)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.Duration("poll_interval", cfg.Reconcile.PollInterval),
			slog.Int("lookahead_days", cfg.Timetable.LookaheadDays),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}

func initObservability(ctx context.Context, cfg *config.Config) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "campusdesk"
	}

	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:    serviceName,
			Version: Version,
		},
		Environment:  env,
		LogLevel:     cfg.LogLevel,
		SamplingRate: 1.0,
	})
}

func initBaseline(ctx context.Context, cfg *config.Config) (*redis.Client, domain.BaselineRepository, error) {
	if !cfg.Redis.Enabled() {
		slog.Warn("REDIS_ADDR not set, reconciliation baseline will not survive restarts")
		return nil, repository.NewMemoryBaselineRepository(), nil
	}

	opts := &redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if cfg.Redis.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(opts)

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return nil, nil, err
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return nil, nil, err
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return nil, nil, err
	}

	slog.Info("redis connected", slog.String("addr", cfg.Redis.Addr))

	return redisClient, repository.NewBaselineRepository(redisClient), nil
}

func initNotifier(ctx context.Context, cfg *config.Config) notifier.Notifier {
	if !cfg.Notifier.Enabled() {
		slog.Warn("NOTIFY_DAEMON_URL not set, notification delivery disabled")
		return notifier.NewNoopNotifier()
	}

	client := notifier.NewClient(cfg.Notifier.BaseURL, cfg.Notifier.ChannelName)
	if err := client.Configure(ctx); err != nil {
		// The daemon may simply not be up yet; scheduling calls will keep
		// retrying through subsequent passes.
		slog.Warn("failed to configure notification channel",
			slog.String("url", cfg.Notifier.BaseURL),
			slog.String("error", err.Error()),
		)
	} else {
		slog.Info("notification daemon configured",
			slog.String("url", cfg.Notifier.BaseURL),
			slog.String("channel", cfg.Notifier.ChannelName),
		)
	}
	return client
}

// runReconcileLoop runs the initial pass, then one per tick until ctx ends.
func runReconcileLoop(ctx context.Context, engine *reconcile.Engine, interval time.Duration) {
	if _, err := engine.Run(ctx); err != nil {
		slog.ErrorContext(ctx, "initial reconciliation pass failed",
			slog.String("error", err.Error()),
		)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := engine.Run(ctx); err != nil {
				slog.ErrorContext(ctx, "periodic reconciliation pass failed",
					slog.String("error", err.Error()),
				)
			}
		}
	}
}
