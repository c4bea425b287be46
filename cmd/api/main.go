package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/shoptodo/shoptodo-backend/api/routes"
	"github.com/shoptodo/shoptodo-backend/internal/auth"
	"github.com/shoptodo/shoptodo-backend/internal/catalog"
	"github.com/shoptodo/shoptodo-backend/internal/shop"
	"github.com/shoptodo/shoptodo-backend/internal/users"
	"github.com/shoptodo/shoptodo-backend/pkg/auth/session"
	"github.com/shoptodo/shoptodo-backend/pkg/config"
	"github.com/shoptodo/shoptodo-backend/pkg/db"
	"github.com/shoptodo/shoptodo-backend/pkg/logger"
	"github.com/shoptodo/shoptodo-backend/pkg/metrics"
	"github.com/shoptodo/shoptodo-backend/pkg/migrate"
	"github.com/shoptodo/shoptodo-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) error {
	res := &resources{}
	defer func() {
		if err := res.Close(); err != nil {
			logg.Error(context.Background(), "error closing resources", err)
		}
	}()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	res.db = dbClient

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	params := routes.Params{
		Config:  cfg,
		Logger:  logg,
		Catalog: catalog.Default(),
		DB:      dbClient,
	}

	var sessionManager *session.Manager
	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		res.redis = redisClient
		params.Redis = redisClient
		params.RateLimiter = redisClient

		sessionManager, err = session.NewManager(redisClient, cfg.JWT)
		if err != nil {
			return err
		}
		params.SessionChecker = sessionManager
	} else {
		logg.Warn(ctx, "redis not configured; rate limiting and refresh tokens disabled")
	}

	serviceParams := auth.ServiceParams{
		UserRepo:  users.NewRepository(dbClient.DB()),
		JWTConfig: cfg.JWT,
	}
	if sessionManager != nil {
		serviceParams.SessionManager = sessionManager
	}
	params.AuthService, err = auth.NewService(serviceParams)
	if err != nil {
		return err
	}
	params.RegisterService, err = auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		return err
	}

	var shopMetrics *metrics.ShopMetrics
	if cfg.FeatureFlags.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		params.HTTPMetrics = metrics.NewHTTPMetrics(reg)
		params.Gatherer = reg
		shopMetrics = metrics.NewShopMetrics(reg)
	}

	store, err := snapshotStore(cfg, dbClient, res.redis)
	if err != nil {
		return err
	}
	params.Registry = shop.NewRegistry(shop.RegistryParams{
		Store:           store,
		Catalog:         params.Catalog,
		Auth:            params.AuthService,
		StoreRetryAfter: cfg.Storage.RetryAfter,
		Logger:          logg,
		Metrics:         shopMetrics,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":            cfg.App.Env,
		"addr":           addr,
		"storage_driver": cfg.Storage.Kind(),
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(params),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logg.Info(logCtx, "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()
		logg.Info(logCtx, "shutting down api server")
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
