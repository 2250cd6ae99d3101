package api

import (
	"context"
	"time"

	"gotodo/internal/todo/domain/entities"
)

// CreateNoteInput is a validated create request.
type CreateNoteInput struct {
	Title       string
	Description string
	Tags        string
	Status      entities.NoteStatus
	DueDate     time.Time
}

// NoteUseCase manages the caller's notes. Update and delete return
// entities.ErrNoteNotFound for a missing note and entities.ErrNoteForbidden
// for a note owned by someone else.
type NoteUseCase interface {
	CreateNote(ctx context.Context, userID string, input CreateNoteInput) (*entities.Note, error)
	ListNotes(ctx context.Context, userID string) ([]*entities.Note, error)
	UpdateNote(ctx context.Context, userID, noteID string, patch entities.NotePatch) (*entities.Note, error)
	DeleteNote(ctx context.Context, userID, noteID string) (*entities.Note, error)
}
