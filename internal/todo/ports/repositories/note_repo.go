package repositories

import (
	"context"

	"gotodo/internal/todo/domain/entities"
)

// NoteRepository persists notes. Create and Update return
// entities.ErrDuplicateTitle when the owner already has that title.
type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) (*entities.Note, error)
	GetByID(ctx context.Context, noteID string) (*entities.Note, error)
	ListByUserID(ctx context.Context, userID string) ([]*entities.Note, error)
	Update(ctx context.Context, note *entities.Note) (*entities.Note, error)
	Delete(ctx context.Context, noteID, userID string) error
}
