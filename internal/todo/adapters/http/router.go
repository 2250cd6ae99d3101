// Package http assembles the fiber application.
package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"go.uber.org/zap"

	"gotodo/internal/todo/adapters/http/auth"
	"gotodo/internal/todo/adapters/http/middleware"
	"gotodo/internal/todo/adapters/http/notes"
	"gotodo/internal/todo/adapters/http/response"
	"gotodo/internal/todo/adapters/http/validation"
	"gotodo/internal/todo/ports/api"
	svc "gotodo/internal/todo/ports/services"
	"gotodo/pkg/logger"
)

const (
	appName = "gotodo"

	msgHealthy   = "ok"
	msgUnhealthy = "database unavailable"

	logHealthCheckFailed = "health check failed"
	logUnhandledError    = "unhandled error"
)

// HealthChecker reports whether a backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// AppConfig holds the server timeouts.
type AppConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RouterConfig holds the edge policies.
type RouterConfig struct {
	AllowedOrigins  []string
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// Dependencies are the use cases and services the routes need.
type Dependencies struct {
	Auth   api.AuthUseCase
	Users  api.UserUseCase
	Notes  api.NoteUseCase
	Tokens svc.TokenService
	Health HealthChecker
}

// NewApp creates a fiber app whose unhandled errors are JSON.
func NewApp(cfg AppConfig) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      appName,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: errorHandler,
	})
}

func errorHandler(ctx fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return response.Message(ctx, fiberErr.Code, fiberErr.Message)
	}

	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Error(requestCtx, logUnhandledError, zap.Error(err))
	return response.Message(ctx, fiber.StatusInternalServerError, response.MsgServerError)
}

// SetupRouter registers the middleware chain and every route.
func SetupRouter(app *fiber.App, cfg RouterConfig, deps Dependencies) {
	validator := validation.New()
	authHandler := auth.NewHandler(deps.Auth, deps.Users, validator)
	notesHandler := notes.NewHandler(deps.Notes, validator)
	authGate := middleware.NewAuthMiddleware(deps.Tokens)

	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
		LimitReached: func(ctx fiber.Ctx) error {
			return response.Message(ctx, fiber.StatusTooManyRequests, response.MsgTooManyRequests)
		},
	}))

	app.Get("/health", healthHandler(deps.Health))

	authRoutes := app.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/signup", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Get("/fetchuserdata", authGate, authHandler.FetchUserData)

	noteRoutes := app.Group("/notes", authGate)
	noteRoutes.Post("/task", notesHandler.Create)
	noteRoutes.Post("/addnotes", notesHandler.Create)
	noteRoutes.Get("/task", notesHandler.List)
	noteRoutes.Get("/savednotes", notesHandler.List)
	noteRoutes.Patch("/task/:id", notesHandler.Update)
	noteRoutes.Put("/task/:id", notesHandler.Update)
	noteRoutes.Delete("/task/:id", notesHandler.Delete)

	app.Use(func(ctx fiber.Ctx) error {
		return response.Message(ctx, fiber.StatusNotFound, response.MsgRouteNotFound)
	})
}

func healthHandler(checker HealthChecker) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := middleware.RequestContext(ctx)
		if checker != nil {
			if err := checker.Ping(requestCtx); err != nil {
				logger.Log(requestCtx).Error(requestCtx, logHealthCheckFailed, zap.Error(err))
				return response.Message(ctx, fiber.StatusServiceUnavailable, msgUnhealthy)
			}
		}
		return response.Message(ctx, fiber.StatusOK, msgHealthy)
	}
}
