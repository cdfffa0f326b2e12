package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"spinwin/internal/config"
	"spinwin/internal/handlers"
	"spinwin/internal/middleware"
	"spinwin/internal/repositories/interfaces"
	"spinwin/internal/repositories/memory"
	mongorepo "spinwin/internal/repositories/mongodb"
	"spinwin/internal/services"
	"spinwin/internal/utils"
	"spinwin/pkg/cache"
	"spinwin/pkg/database"
	"spinwin/pkg/logger"
	"spinwin/routes"
)

type stores struct {
	spins  interfaces.SpinRepository
	logins interfaces.LoginRepository
	checks map[string]handlers.Pinger
	close  func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:      logger.LogLevel(cfg.App.LogLevel),
		Format:     cfg.App.LogFormat,
		Output:     "stdout",
		TimeFormat: time.RFC3339,
		AppName:    cfg.App.Name,
		Version:    cfg.App.Version,
	})
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}

	utils.SetDefaultLocation(cfg.Location())

	st, err := openStores(cfg, appLogger)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to open store")
	}
	defer st.close()

	var limiter services.LoginLimiter
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(cfg.RedisCacheConfig())
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to connect to Redis")
		}
		defer redisCache.Close()
		st.checks["redis"] = redisCache
		limiter = services.NewRedisLoginLimiter(redisCache, cfg.Security.MaxLoginAttempts, cfg.Security.LoginLockoutTime)
	} else {
		limiter = services.NewMemoryLoginLimiter(cfg.Security.MaxLoginAttempts, cfg.Security.LoginLockoutTime)
	}

	engine := services.NewEngine(st.spins, utils.GetCurrencySymbol(cfg.App.Currency), appLogger)
	authService := services.NewAuthService(st.logins, limiter, cfg.Security.JWTSecret, cfg.Security.JWTAccessTokenTTL, appLogger)

	h := routes.Handlers{
		Health:    handlers.NewHealthHandler(st.checks),
		Auth:      handlers.NewAuthHandler(authService, appLogger),
		Analytics: handlers.NewAnalyticsHandler(services.NewAnalyticsService(engine, appLogger), appLogger),
		Customer:  handlers.NewCustomerHandler(services.NewCustomerService(engine, appLogger), appLogger),
	}

	switch {
	case cfg.App.Debug:
		gin.SetMode(gin.DebugMode)
	case cfg.IsProduction():
		gin.SetMode(gin.ReleaseMode)
	}

	rateLimiter := middleware.NewIPRateLimiter(cfg.Security.RateLimitPerMinute)
	router := routes.NewRouter(h, authService, middleware.NewMetrics("spinwin"), rateLimiter, cfg.Security.CORSAllowedOrigins, appLogger)
	if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
		appLogger.WithError(err).Fatal("Invalid trusted proxies")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sweepLoop(ctx, rateLimiter)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.WithFields(map[string]interface{}{
			"addr":  srv.Addr,
			"store": cfg.App.Store,
		}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.WithError(err).Fatal("Server failed")
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("Forced shutdown")
	}
}

func openStores(cfg *config.Config, appLogger *logger.Logger) (*stores, error) {
	if cfg.App.Store == config.StoreMemory {
		store := memory.NewStore()
		if cfg.App.SeedFile != "" {
			if err := store.LoadSeedFile(cfg.App.SeedFile); err != nil {
				return nil, err
			}
		}
		appLogger.Warn("Using in-memory store")
		return &stores{
			spins:  memory.NewSpinRepository(store),
			logins: memory.NewLoginRepository(store),
			checks: map[string]handlers.Pinger{},
			close:  func() {},
		}, nil
	}

	mongoDB, err := database.NewMongoDB(cfg.MongoConfig())
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
	defer cancel()
	if err := database.EnsureIndexes(ctx, mongoDB.Database, database.IndexSet{
		SpinCollection:  cfg.Database.SpinCollection,
		LoginCollection: cfg.Database.LoginCollection,
	}); err != nil {
		appLogger.WithError(err).Warn("Index creation failed")
	}

	return &stores{
		spins: mongorepo.NewSpinRepository(mongoDB.Database, cfg.Database.SpinCollection,
			cfg.Database.LoginCollection, cfg.Database.QueryTimeout, appLogger),
		logins: mongorepo.NewLoginRepository(mongoDB.Database, cfg.Database.LoginCollection, cfg.Database.QueryTimeout),
		checks: map[string]handlers.Pinger{"mongodb": mongoDB},
		close: func() {
			if err := mongoDB.Close(); err != nil {
				appLogger.WithError(err).Error("Failed to close MongoDB")
			}
		},
	}, nil
}

func sweepLoop(ctx context.Context, limiter *middleware.IPRateLimiter) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			limiter.Sweep()
		}
	}
}
