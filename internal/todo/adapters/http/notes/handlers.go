// Package notes serves the note CRUD endpoints.
package notes

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gotodo/internal/todo/adapters/http/dto"
	"gotodo/internal/todo/adapters/http/middleware"
	"gotodo/internal/todo/adapters/http/response"
	"gotodo/internal/todo/adapters/http/validation"
	"gotodo/internal/todo/domain/entities"
	"gotodo/internal/todo/ports/api"
	"gotodo/pkg/logger"
)

// Success messages.
const (
	MsgNoteCreated   = "Note created successfully"
	MsgNotesFetched  = "Notes fetched successfully"
	MsgNoteUpdated   = "Note updated successfully"
	MsgNoteUnchanged = "No fields provided to update. Note remains unchanged."
	MsgNoteDeleted   = "Note deleted successfully"
)

const (
	paramID        = "id"
	logInvalidBody = "invalid request body"
)

// Handler serves the note routes. Every route sits behind the auth gate.
type Handler struct {
	notes     api.NoteUseCase
	validator *validation.Validator
}

// NewHandler wires the note handler.
func NewHandler(notes api.NoteUseCase, validator *validation.Validator) *Handler {
	return &Handler{notes: notes, validator: validator}
}

// Create stores a new note for the caller.
func (h *Handler) Create(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return response.Message(ctx, fiber.StatusUnauthorized, middleware.MsgNoToken)
	}

	var req dto.CreateNoteRequest
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

	input, err := req.ToInput()
	if err != nil {
		return response.Error(requestCtx, ctx, err)
	}

	note, err := h.notes.CreateNote(requestCtx, userID, input)
	if err != nil {
		return response.Error(requestCtx, ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(dto.NoteResponse{
		Message: MsgNoteCreated,
		Note:    dto.NewNoteView(note),
	})
}

// List returns the caller's notes, newest first.
func (h *Handler) List(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return response.Message(ctx, fiber.StatusUnauthorized, middleware.MsgNoToken)
	}

	notes, err := h.notes.ListNotes(requestCtx, userID)
	if err != nil {
		return response.Error(requestCtx, ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(dto.NotesResponse{
		Message: MsgNotesFetched,
		Notes:   dto.NewNoteViews(notes),
	})
}

// Update applies a partial update to one of the caller's notes. It serves
// both PATCH and PUT. An empty body leaves the note unchanged.
func (h *Handler) Update(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return response.Message(ctx, fiber.StatusUnauthorized, middleware.MsgNoToken)
	}
	noteID := ctx.Params(paramID)
	if err := entities.ValidateNoteID(noteID); err != nil {
		return response.Error(requestCtx, ctx, err)
	}

	var req dto.UpdateNoteRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.Bind().JSON(&req); err != nil {
			logger.Log(requestCtx).Debug(requestCtx, logInvalidBody, zap.Error(err))
			return response.Message(ctx, fiber.StatusBadRequest, response.MsgInvalidBody)
		}
	}
	req.Normalize()

	if errs, err := h.validator.Struct(req); err != nil {
		return response.Error(requestCtx, ctx, err)
	} else if len(errs) > 0 {
		return response.ValidationFailed(ctx, errs)
	}

	patch, err := req.ToPatch()
	if err != nil {
		return response.Error(requestCtx, ctx, err)
	}

	note, err := h.notes.UpdateNote(requestCtx, userID, noteID, patch)
	if err != nil {
		return response.Error(requestCtx, ctx, err)
	}

	msg := MsgNoteUpdated
	if patch.IsEmpty() {
		msg = MsgNoteUnchanged
	}

	return ctx.Status(fiber.StatusOK).JSON(dto.NoteResponse{
		Message: msg,
		Note:    dto.NewNoteView(note),
	})
}

// Delete removes one of the caller's notes and echoes it back.
func (h *Handler) Delete(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return response.Message(ctx, fiber.StatusUnauthorized, middleware.MsgNoToken)
	}

	noteID := ctx.Params(paramID)
	if err := entities.ValidateNoteID(noteID); err != nil {
		return response.Error(requestCtx, ctx, err)
	}

	note, err := h.notes.DeleteNote(requestCtx, userID, noteID)
	if err != nil {
		return response.Error(requestCtx, ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(dto.DeletedNoteResponse{
		Message:     MsgNoteDeleted,
		DeletedNote: dto.NewNoteView(note),
	})
}
