// Package middleware contains the HTTP middleware chain.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

// Locals keys.
const (
	LocalsRequestContext = "requestContext"
	LocalsUserID         = "userID"
)

// HeaderRequestID carries the request id in and out.
const HeaderRequestID = "X-Request-ID"

// RequestContext returns the context prepared by the logger middleware,
// falling back to the fiber context.
func RequestContext(c fiber.Ctx) context.Context {
	if ctx, ok := c.Locals(LocalsRequestContext).(context.Context); ok {
		return ctx
	}
	return c.Context()
}

// UserID returns the id attached by the auth gate.
func UserID(c fiber.Ctx) (string, bool) {
	id, ok := c.Locals(LocalsUserID).(string)
	return id, ok && id != ""
}
