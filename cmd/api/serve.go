// AngelaMos | 2026
// serve.go

package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/andgroupco/andoffer/internal/admin"
	"github.com/andgroupco/andoffer/internal/asset"
	"github.com/andgroupco/andoffer/internal/auth"
	"github.com/andgroupco/andoffer/internal/catalog/category"
	"github.com/andgroupco/andoffer/internal/catalog/product"
	"github.com/andgroupco/andoffer/internal/catalog/supplier"
	"github.com/andgroupco/andoffer/internal/config"
	"github.com/andgroupco/andoffer/internal/core"
	"github.com/andgroupco/andoffer/internal/health"
	"github.com/andgroupco/andoffer/internal/inquiry"
	"github.com/andgroupco/andoffer/internal/mail"
	"github.com/andgroupco/andoffer/internal/middleware"
	"github.com/andgroupco/andoffer/internal/server"
	"github.com/andgroupco/andoffer/internal/siteconfig"
	"github.com/andgroupco/andoffer/internal/user"
)

const (
	drainDelay     = 5 * time.Second
	metricsPrefix  = "andoffer"
	apiPathVersion = "/v1"
	uploadsPerHour = 200
)

func newServeCommand(configPath *string) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, logger, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")

	return cmd
}

//nolint:funlen // bootstrap code is inherently verbose
func run(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	migrate bool,
) error {
	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}
	defer closeLogged(logger, "telemetry", func() error {
		return telemetry.Shutdown(context.Background())
	})

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer closeLogged(logger, "database", db.Close)
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if migrate {
		if err := core.MigrateUp(ctx, db.DB.DB); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer closeLogged(logger, "redis", redis.Close)
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	sender, err := mail.NewSender(cfg.Mail, logger)
	if err != nil {
		return err
	}
	templates, err := mail.NewTemplates(cfg.App.Name, cfg.App.PublicURL)
	if err != nil {
		return err
	}
	notifier := mail.NewNotifier(sender, templates)

	storage, err := asset.NewStorage(ctx, cfg.Assets)
	if err != nil {
		return err
	}
	logger.Info("asset storage initialized", "driver", cfg.Assets.Driver)

	authRepo := auth.NewRepository(db.DB)
	userSvc := user.NewService(user.NewRepository(db.DB), authRepo)
	authSvc := auth.NewService(
		authRepo,
		jwtManager,
		userSvc,
		redis.Client,
		notifier,
		cfg.OTP.TTL,
	)

	inquirySvc := inquiry.NewService(inquiry.NewRepository(db.DB), logger)

	authHandler := auth.NewHandler(authSvc)
	userHandler := user.NewHandler(userSvc)
	productHandler := product.NewHandler(product.NewService(product.NewRepository(db.DB)))
	categoryHandler := category.NewHandler(category.NewService(category.NewRepository(db.DB)))
	supplierHandler := supplier.NewHandler(supplier.NewService(supplier.NewRepository(db.DB)))
	inquiryHandler := inquiry.NewHandler(inquirySvc)
	configHandler := siteconfig.NewHandler(siteconfig.NewService(siteconfig.NewRepository(db.DB)))
	assetHandler := asset.NewHandler(asset.NewService(
		asset.NewRepository(db.DB),
		storage,
		cfg.Assets.MaxUploadBytes,
	))
	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		Counts:     admin.NewCountsRepository(db.DB),
		Inquiries:  inquirySvc,
		Config:     cfg,
	})

	healthHandler := health.NewHandler(
		cfg.App.Version,
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redis},
	)

	metrics := middleware.NewMetrics(metricsPrefix)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
		Middleware: []func(http.Handler) http.Handler{
			middleware.RequestID,
			middleware.Logger(logger),
			metrics.Handler,
			middleware.SecurityHeaders(cfg.IsProduction()),
			middleware.CORS(cfg.CORS),
		},
	})

	router := srv.Router()
	router.Handle("/metrics", metrics.Exporter())
	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	guard := auth.NewTokenGuard(jwtManager, authSvc)
	authenticator := middleware.Authenticator(guard)
	optionalAuth := middleware.OptionalAuth(guard)

	authLimiter := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Limit: middleware.PerWindow(
			cfg.RateLimit.AuthRequests,
			cfg.RateLimit.AuthWindow,
		),
		KeyFunc:  middleware.KeyByIPAndEndpoint,
		FailOpen: true,
	}).Handler

	uploadLimiter := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Limit:    middleware.PerHour(uploadsPerHour, uploadsPerHour),
		KeyFunc:  middleware.KeyByUserAndEndpoint,
		FailOpen: true,
	}).Handler

	router.Route(apiPathVersion, func(r chi.Router) {
		r.Use(optionalAuth)
		r.Use(middleware.RoleRateLimiter(
			redis.Client,
			middleware.DefaultRoleLimits(middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			)),
		))

		authHandler.RegisterRoutes(r, authenticator, authLimiter)
		userHandler.RegisterRoutes(r, authenticator)
		productHandler.RegisterRoutes(r, authenticator, optionalAuth)
		categoryHandler.RegisterRoutes(r, authenticator)
		supplierHandler.RegisterRoutes(r, authenticator)
		inquiryHandler.RegisterRoutes(r, authenticator, optionalAuth)
		configHandler.RegisterRoutes(r, authenticator)
		assetHandler.RegisterRoutes(r, authenticator, uploadLimiter)
		adminHandler.RegisterRoutes(r, authenticator)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()
	logger.Info("server listening", "addr", srv.Addr())

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

// closeLogged runs a deferred release and logs its failure.
func closeLogged(logger *slog.Logger, name string, closeFn func() error) {
	if err := closeFn(); err != nil {
		logger.Error(name+" close error", "error", err)
	}
}
