// Package response writes JSON bodies and maps domain errors to statuses.
package response

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gotodo/internal/todo/adapters/http/validation"
	"gotodo/internal/todo/domain/entities"
	"gotodo/internal/todo/domain/services"
	"gotodo/pkg/logger"
)

// Client-facing messages.
const (
	MsgServerError        = "Server error"
	MsgUserExists         = "User already exists"
	MsgInvalidCredentials = "Please enter correct login credentials"
	MsgUserNotFound       = "User not found"
	MsgDuplicateTitle     = "You already have a note with this title"
	MsgInvalidNoteID      = "Invalid note ID"
	MsgInvalidStatus      = "Invalid status value"
	MsgInvalidDueDate     = "Due date must be a valid date"
	MsgNoteNotFound       = "Note not found"
	MsgAccessDenied       = "Access denied"
	MsgInvalidBody        = "Invalid request body"
	MsgRouteNotFound      = "Route not found"
	MsgTooManyRequests    = "Too many requests, please try again later."
	MsgInvalidPassword    = "Password does not meet the requirements"
)

const logRequestFailed = "request failed"

type mapping struct {
	target  error
	status  int
	message string
}

var mappings = []mapping{
	{services.ErrEmailAlreadyExists, fiber.StatusBadRequest, MsgUserExists},
	{services.ErrInvalidCredentials, fiber.StatusBadRequest, MsgInvalidCredentials},
	{services.ErrInvalidPassword, fiber.StatusBadRequest, MsgInvalidPassword},
	{entities.ErrDuplicateTitle, fiber.StatusBadRequest, MsgDuplicateTitle},
	{entities.ErrInvalidNoteID, fiber.StatusBadRequest, MsgInvalidNoteID},
	{entities.ErrInvalidStatus, fiber.StatusBadRequest, MsgInvalidStatus},
	{entities.ErrInvalidDueDate, fiber.StatusBadRequest, MsgInvalidDueDate},
	{entities.ErrNoteForbidden, fiber.StatusForbidden, MsgAccessDenied},
	{entities.ErrNoteNotFound, fiber.StatusNotFound, MsgNoteNotFound},
	{entities.ErrUserNotFound, fiber.StatusNotFound, MsgUserNotFound},
}

// Status returns the HTTP status and client message for err.
func Status(err error) (int, string) {
	for _, m := range mappings {
		if errors.Is(err, m.target) {
			return m.status, m.message
		}
	}
	return fiber.StatusInternalServerError, MsgServerError
}

// Message writes {"message": msg} with status.
func Message(c fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}

// ValidationFailed writes 400 with the field list.
func ValidationFailed(c fiber.Ctx, errs []validation.FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
}

// Error logs err and writes the mapped status. Causes never reach the body.
func Error(ctx context.Context, c fiber.Ctx, err error) error {
	status, msg := Status(err)

	log := logger.Log(ctx).With(zap.Int("status", status))
	if status >= fiber.StatusInternalServerError {
		log.Error(ctx, logRequestFailed, zap.Error(err))
	} else {
		log.Debug(ctx, logRequestFailed, zap.Error(err))
	}

	return Message(c, status, msg)
}
