package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gotodo/pkg/logger"
)

const (
	logPanic         = "server panic"
	logPanicResponse = "failed to send error response after panic"
	msgServerError   = "Server error"
	fieldPanicValue  = "panic"
	fieldPanicStack  = "stack"
)

// NewRecoveryMiddleware turns a handler panic into a 500.
func NewRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) (err error) {
		requestCtx := RequestContext(ctx)

		defer func() {
			r := recover()
			if r == nil {
				return
			}

			log := logger.Log(requestCtx)
			log.Error(requestCtx, logPanic,
				zap.String(fieldPanicValue, fmt.Sprintf("%v", r)),
				zap.String(fieldPanicStack, string(debug.Stack())),
			)

			err = ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": msgServerError})
			if err != nil {
				log.Error(requestCtx, logPanicResponse, zap.Error(err))
			}
		}()

		return ctx.Next()
	}
}
