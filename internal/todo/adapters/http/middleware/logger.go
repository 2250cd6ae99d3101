package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gotodo/pkg/logger"
)

const (
	logRequestStarted   = "request started"
	logRequestCompleted = "request completed"
	logRequestFailed    = "request failed"
)

// NewLoggerMiddleware tags the request with an id and logs its outcome.
func NewLoggerMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx, requestID := logger.ContextWithRequestID(ctx.Context(), ctx.Get(HeaderRequestID))
		ctx.Set(HeaderRequestID, requestID)
		ctx.Locals(LocalsRequestContext, requestCtx)

		start := time.Now()
		log := logger.Log(requestCtx).With(
			zap.String("path", ctx.Path()),
			zap.String("method", ctx.Method()),
			zap.String("ip", ctx.IP()),
		)
		log.Debug(requestCtx, logRequestStarted)

		err := ctx.Next()

		fields := []zap.Field{
			zap.Int("status", ctx.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}
		if err != nil {
			log.Error(requestCtx, logRequestFailed, append(fields, zap.Error(err))...)
			return err
		}

		log.Info(requestCtx, logRequestCompleted, fields...)
		return nil
	}
}
