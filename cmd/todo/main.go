package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"gotodo/internal/todo/adapters/cache"
	httpServer "gotodo/internal/todo/adapters/http"
	"gotodo/internal/todo/adapters/postgres"
	"gotodo/internal/todo/adapters/services"
	"gotodo/internal/todo/app"
	"gotodo/internal/todo/config"
	"gotodo/internal/todo/db"
	portcache "gotodo/internal/todo/ports/cache"
	"gotodo/pkg/db/redis"
	"gotodo/pkg/logger"
	"gotodo/pkg/resilience"
	"gotodo/pkg/shutdown"
)

// Bootstrap logger settings, read before the configuration is loaded.
const (
	EnvLoggerMode  = "TODO_LOGGER_MODE"
	EnvLoggerLevel = "TODO_LOGGER_LEVEL"
)

const (
	migrationsDir       = "migrations/todo"
	profileCacheBreaker = "profile cache"
)

const (
	errBootstrapLogger = "creating bootstrap logger"
	errLoadConfig      = "loading configuration"
	errConfigLogger    = "creating configured logger"
	errDatabase        = "opening database"
	errProfileCache    = "opening profile cache"
	errServices        = "building services"
	errServiceFailed   = "todo service exited with error"
	errListen          = "HTTP server stopped unexpectedly"
	errSyncLogger      = "failed to sync logger"
)

const (
	logStarted       = "todo service started"
	logStopped       = "todo service shutdown complete"
	logCacheOff      = "profile cache disabled"
	logCacheOn       = "connecting profile cache"
	logListening     = "HTTP server listening"
	logStoppingHTTP  = "stopping HTTP server"
	logClosingCache  = "closing profile cache"
	logClosingDBPool = "closing database pool"
)

func main() {
	if err := bootstrapLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", errBootstrapLogger, err)
		os.Exit(1)
	}
	ctx := logger.NewRequestIDContext(context.Background(), "")

	err := run(ctx)
	if err != nil {
		logger.Log(ctx).Error(ctx, errServiceFailed, zap.Error(err))
	}
	syncLogger(logger.Log(ctx))

	if err != nil {
		os.Exit(1)
	}
}

func bootstrapLogger() error {
	env := logger.Development
	if strings.EqualFold(os.Getenv(EnvLoggerMode), string(logger.Production)) {
		env = logger.Production
	}
	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		return err
	}
	logger.SetGlobalLogger(log)
	return nil
}

// syncLogger flushes the logger. zap reports EINVAL when syncing a
// terminal, which is not worth surfacing.
func syncLogger(log *logger.Logger) {
	err := log.Sync()
	if err == nil || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", errSyncLogger, err)
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", errLoadConfig, err)
	}

	log, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("%s: %w", errConfigLogger, err)
	}
	logger.SetGlobalLogger(log)
	log.Info(ctx, logStarted,
		zap.String("environment", string(cfg.Logging.GetEnvironment())),
		zap.String("log_level", cfg.Logging.Level),
		zap.Time("startup_time", time.Now()))

	database, err := db.New(ctx, &cfg.Postgres, migrationsDir)
	if err != nil {
		return fmt.Errorf("%s: %w", errDatabase, err)
	}
	// Runs after shutdown.Wait returns, once the server has drained.
	defer func() {
		log.Info(ctx, logClosingDBPool)
		database.Close(ctx)
	}()

	profileCache, err := newProfileCache(ctx, &cfg.Redis)
	if err != nil {
		return fmt.Errorf("%s: %w", errProfileCache, err)
	}

	serviceFactory, err := services.NewServiceFactory(
		cfg.JWT.SecretKey,
		cfg.JWT.GetAccessTokenTTL(),
		cfg.JWT.BCryptCost,
	)
	if err != nil {
		_ = profileCache.Close()
		return fmt.Errorf("%s: %w", errServices, err)
	}
	repos := postgres.NewRepositoryFactory(database.Pool())

	server := httpServer.NewApp(httpServer.AppConfig{
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	})
	httpServer.SetupRouter(server, httpServer.RouterConfig{
		AllowedOrigins:  cfg.HTTP.GetAllowedOrigins(),
		RateLimitMax:    cfg.HTTP.RateLimitMax,
		RateLimitWindow: cfg.HTTP.RateLimitWindow,
	}, httpServer.Dependencies{
		Auth:   app.NewAuthUseCase(repos.UserRepository(), serviceFactory.PasswordService(), serviceFactory.TokenService()),
		Users:  app.NewUserUseCase(repos.UserRepository(), profileCache, cfg.Redis.ProfileTTL),
		Notes:  app.NewNoteUseCase(repos.NoteRepository()),
		Tokens: serviceFactory.TokenService(),
		Health: database,
	})

	addr := cfg.HTTP.GetAddress()
	go func() {
		log.Info(ctx, logListening, zap.String("address", addr))
		if err := server.Listen(addr); err != nil {
			log.Error(ctx, errListen, zap.Error(err))
		}
	}()

	shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
		func(ctx context.Context) error {
			log.Info(ctx, logStoppingHTTP)
			return server.ShutdownWithContext(ctx)
		},
		func(ctx context.Context) error {
			log.Info(ctx, logClosingCache)
			return profileCache.Close()
		},
	)

	log.Info(ctx, logStopped)
	return nil
}

func newProfileCache(ctx context.Context, cfg *config.RedisConfig) (portcache.Cache, error) {
	log := logger.Log(ctx)
	if !cfg.Enabled {
		log.Info(ctx, logCacheOff)
		return cache.NewNopCache(), nil
	}

	log.Info(ctx, logCacheOn, zap.String("host", cfg.Host), zap.Int("port", cfg.Port))
	client, err := redis.NewClient(ctx, cfg.ClientConfig())
	if err != nil {
		return nil, err
	}
	store := cache.NewRedisCache(client, cfg.ProfileTTL, cache.WithKeyPrefix(cfg.KeyPrefix))
	breaker := resilience.NewCircuitBreaker(profileCacheBreaker, resilience.DefaultCircuitBreakerConfig())
	return cache.NewGuardedCache(store, breaker), nil
}
