package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/labfetch/labfetch-api/internal/address"
	"github.com/labfetch/labfetch-api/internal/config"
	"github.com/labfetch/labfetch-api/internal/email"
	authHandler "github.com/labfetch/labfetch-api/internal/handler/auth"
	"github.com/labfetch/labfetch-api/internal/handler/health"
	pickupHandler "github.com/labfetch/labfetch-api/internal/handler/pickup"
	promHandler "github.com/labfetch/labfetch-api/internal/handler/prometheus"
	settingsHandler "github.com/labfetch/labfetch-api/internal/handler/settings"
	"github.com/labfetch/labfetch-api/internal/middleware"
	"github.com/labfetch/labfetch-api/internal/model"
	"github.com/labfetch/labfetch-api/internal/repository/postgres"
	"github.com/labfetch/labfetch-api/internal/router"
	authService "github.com/labfetch/labfetch-api/internal/service/auth"
	"github.com/labfetch/labfetch-api/internal/service/notification"
	pickupService "github.com/labfetch/labfetch-api/internal/service/pickup"
	settingsService "github.com/labfetch/labfetch-api/internal/service/settings"
	"github.com/labfetch/labfetch-api/internal/storage"
	"github.com/labfetch/labfetch-api/internal/worker"
	"github.com/labfetch/labfetch-api/pkg/auth"
	"github.com/labfetch/labfetch-api/pkg/logger"
	"github.com/labfetch/labfetch-api/pkg/messaging/redis"
	"github.com/labfetch/labfetch-api/pkg/metrics"
	"github.com/labfetch/labfetch-api/pkg/security"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	l := logger.New(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
		Service:    "labfetch-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, l); err != nil {
		l.Fatal().Err(err).Msg("server stopped with error")
	}
	l.Info().Msg("server exited properly")
}

func run(ctx context.Context, cfg *config.Config, l zerolog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(cfg.Metrics.Namespace, reg)

	db, err := postgres.NewDB(ctx, postgres.Config{
		URL:             cfg.Database.DSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(db.DB); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		l.Info().Msg("database migrations applied")
	}

	base := postgres.NewBaseRepository(db, m)
	pickupRepo := postgres.NewPickupRepository(base)
	settingRepo := postgres.NewSettingRepository(base)
	adminRepo := postgres.NewAdminRepository(base)

	blobs, err := storage.NewFileStore(cfg.Storage.UploadDir, cfg.Storage.PublicPrefix)
	if err != nil {
		return err
	}

	hub := notification.NewHub(logger.Component(l, "hub"), m)
	if err := attachSinks(ctx, cfg, hub, l, m); err != nil {
		return err
	}

	cleanup := worker.NewPhotoCleanupWorker(pickupRepo, blobs, cfg.Storage.CleanupSchedule,
		cfg.Storage.CleanupGrace, logger.Component(l, "photo-cleanup"), m)
	if _, err := cleanup.Start(ctx); err != nil {
		return err
	}

	loc, err := cfg.Validation.Location()
	if err != nil {
		return err
	}
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiry)
	authSvc := authService.NewService(adminRepo, security.NewBcryptHasher(0), tokens, logger.Component(l, "auth"))
	pickupSvc := pickupService.NewService(pickupRepo,
		pickupService.NewValidator(address.LetterMode(cfg.Validation.LetterMode), loc),
		hub, blobs, logger.Component(l, "pickups"), m)
	settingsSvc := settingsService.NewService(settingRepo, cfg.Cache.PublicSettingTTL, logger.Component(l, "settings"))

	cors := middleware.DefaultCORSConfig()
	if len(cfg.Server.AllowedOrigins) > 0 {
		cors.AllowOrigins = cfg.Server.AllowedOrigins
	}
	mode := gin.DebugMode
	if cfg.IsProduction() {
		mode = gin.ReleaseMode
	}

	r := router.NewRouter(middleware.NewAuthMiddleware(authSvc), router.Handlers{
		Health:  health.NewHandler(db),
		Metrics: promHandler.New(cfg.Metrics.Namespace, reg),
		Auth:    authHandler.NewHandler(authSvc),
		Pickups: pickupHandler.NewHandler(pickupSvc, hub, pickupHandler.StreamConfig{
			Buffer:    cfg.Notifications.ClientBuffer,
			KeepAlive: cfg.Notifications.KeepAlive,
		}, logger.Component(l, "stream")),
		Settings:      settingsHandler.NewHandler(settingsSvc),
		Uploads:       blobs.Handler(),
		UploadsPrefix: blobs.URLPrefix(),
	}, router.Config{
		Logger:           l,
		Mode:             mode,
		ExposeErrors:     cfg.Server.ExposeErrors && !cfg.IsProduction(),
		CORSConfig:       cors,
		RequestTimeout:   cfg.Server.RequestTimeout,
		MaxUploadBytes:   cfg.Storage.MaxUploadMB << 20,
		RateLimitEnabled: cfg.RateLimit.Enabled,
		RateLimit:        rate.Limit(cfg.RateLimit.RPS),
		RateBurst:        cfg.RateLimit.Burst,
		RateTTL:          cfg.RateLimit.TTL,
		HSTS:             cfg.Server.HSTS,
	})

	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:     r.Setup(),
		ReadTimeout: cfg.Server.ReadTimeout,
		// Zero unless configured; SSE responses never finish on their own.
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	// Open streams never go idle; closing the hub ends them so Shutdown can finish.
	srv.RegisterOnShutdown(hub.Close)

	errCh := make(chan error, 1)
	go func() {
		l.Info().Int("port", cfg.Server.Port).Str("environment", cfg.Environment).Msg("LabFetch backend listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	l.Info().Msg("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// attachSinks subscribes the optional redis mirror and mail alert to the hub.
func attachSinks(ctx context.Context, cfg *config.Config, hub *notification.Hub, l zerolog.Logger, m *metrics.Metrics) error {
	if cfg.Redis.URL != "" {
		broker, err := redis.NewRedisBroker(ctx, redis.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			RetryBackoff: cfg.Redis.RetryBackoff,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		}, logger.Component(l, "redis"), m)
		if err != nil {
			return err
		}
		go func() {
			<-ctx.Done()
			_ = broker.Close()
		}()
		sink := notification.NewSink(notification.SinkConfig{
			Name:    "redis",
			Buffer:  cfg.Notifications.SinkBuffer,
			Timeout: cfg.Notifications.SinkTimeout,
			Types:   []string{model.EventNewPickup},
		}, notification.MirrorTo(broker, cfg.Redis.Channel), l, m)
		go sink.Run(ctx)
		hub.Subscribe(sink)
	}

	mail := email.Config{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
		To:       cfg.Mail.To,
	}
	if mail.Enabled() {
		sink := notification.NewSink(notification.SinkConfig{
			Name:    "mail",
			Buffer:  cfg.Notifications.SinkBuffer,
			Timeout: cfg.Notifications.SinkTimeout,
			Types:   []string{model.EventNewPickup},
		}, email.NewAlerter(mail).Deliver, l, m)
		go sink.Run(ctx)
		hub.Subscribe(sink)
	}
	return nil
}
