// Package auth serves the signup, login and profile endpoints.
package auth

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gotodo/internal/todo/adapters/http/dto"
	"gotodo/internal/todo/adapters/http/middleware"
	"gotodo/internal/todo/adapters/http/response"
	"gotodo/internal/todo/adapters/http/validation"
	"gotodo/internal/todo/ports/api"
	"gotodo/pkg/logger"
)

// Success messages.
const (
	MsgRegistered  = "User registered successfully"
	MsgLoggedIn    = "Login successful"
	MsgUserFetched = "User fetched successfully"
)

const logInvalidBody = "invalid request body"

// Handler serves the auth routes.
type Handler struct {
	auth      api.AuthUseCase
	users     api.UserUseCase
	validator *validation.Validator
}

// NewHandler wires the auth handler.
func NewHandler(auth api.AuthUseCase, users api.UserUseCase, validator *validation.Validator) *Handler {
	return &Handler{auth: auth, users: users, validator: validator}
}

// Register creates an account and returns a token.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	var req dto.RegisterRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		logger.Log(requestCtx).Debug(requestCtx, logInvalidBody, zap.Error(err))
		return response.Message(ctx, fiber.StatusBadRequest, response.MsgInvalidBody)
	}
	req.Normalize()

	if errs, err := h.validator.Struct(req); err != nil {
		return response.Error(requestCtx, ctx, err)
	} else if len(errs) > 0 {
		return response.ValidationFailed(ctx, errs)
	}

	result, err := h.auth.Register(requestCtx, req.Name, req.Email, req.Password)
	if err != nil {
		return response.Error(requestCtx, ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(dto.AuthResponse{
		Message: MsgRegistered,
		Token:   result.AccessToken,
		User:    dto.NewUserView(result.User),
	})
}

// Login exchanges credentials for a token.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	var req dto.LoginRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		logger.Log(requestCtx).Debug(requestCtx, logInvalidBody, zap.Error(err))
		return response.Message(ctx, fiber.StatusBadRequest, response.MsgInvalidBody)
	}
	req.Normalize()

	if errs, err := h.validator.Struct(req); err != nil {
		return response.Error(requestCtx, ctx, err)
	} else if len(errs) > 0 {
		return response.ValidationFailed(ctx, errs)
	}

	result, err := h.auth.Login(requestCtx, req.Email, req.Password)
	if err != nil {
		return response.Error(requestCtx, ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(dto.AuthResponse{
		Message: MsgLoggedIn,
		Token:   result.AccessToken,
		User:    dto.NewUserView(result.User),
	})
}

// FetchUserData returns the caller's profile.
func (h *Handler) FetchUserData(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return response.Message(ctx, fiber.StatusUnauthorized, middleware.MsgNoToken)
	}

	user, err := h.users.GetUserProfile(requestCtx, userID)
	if err != nil {
		return response.Error(requestCtx, ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(dto.UserResponse{
		Message: MsgUserFetched,
		User:    dto.NewUserView(user),
	})
}
