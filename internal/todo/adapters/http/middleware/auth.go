package middleware

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gotodo/internal/todo/domain/services"
	svc "gotodo/internal/todo/ports/services"
	"gotodo/pkg/logger"
)

// Gate messages.
const (
	MsgNoToken      = "Access denied. No token provided"
	MsgTokenMissing = "Access denied. Token missing"
	MsgTokenExpired = "Token expired. Please log in again."
	MsgTokenInvalid = "Invalid token. Please log in again."

	bearerScheme = "Bearer"

	logTokenRejected   = "access token rejected"
	logTokenCheckError = "access token check failed"
)

var (
	errNoToken      = errors.New("no bearer token")
	errTokenMissing = errors.New("empty bearer token")
)

// NewAuthMiddleware admits requests carrying a valid access token and
// attaches the user id to the request. It never reads the user store.
func NewAuthMiddleware(tokens svc.TokenService) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		log := logger.Log(requestCtx).With(zap.String("path", ctx.Path()))

		token, err := bearerToken(ctx.Get(fiber.HeaderAuthorization))
		switch {
		case errors.Is(err, errNoToken):
			return unauthorized(ctx, MsgNoToken)
		case errors.Is(err, errTokenMissing):
			return unauthorized(ctx, MsgTokenMissing)
		}

		userID, err := tokens.ValidateAccessToken(requestCtx, token)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrExpiredJWTToken):
				log.Debug(requestCtx, logTokenRejected, zap.Error(err))
				return unauthorized(ctx, MsgTokenExpired)
			case errors.Is(err, services.ErrInvalidJWTToken):
				log.Debug(requestCtx, logTokenRejected, zap.Error(err))
				return unauthorized(ctx, MsgTokenInvalid)
			default:
				log.Error(requestCtx, logTokenCheckError, zap.Error(err))
				return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": msgServerError})
			}
		}

		ctx.Locals(LocalsUserID, userID)
		return ctx.Next()
	}
}

// bearerToken extracts the first token after a case-sensitive "Bearer"
// scheme. The scheme must be followed by whitespace or nothing.
func bearerToken(header string) (string, error) {
	rest, ok := strings.CutPrefix(header, bearerScheme)
	if !ok {
		return "", errNoToken
	}
	if rest != "" {
		if r, _ := utf8.DecodeRuneInString(rest); !unicode.IsSpace(r) {
			return "", errNoToken
		}
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", errTokenMissing
	}
	return fields[0], nil
}

func unauthorized(ctx fiber.Ctx, msg string) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": msg})
}
