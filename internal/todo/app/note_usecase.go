package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"gotodo/internal/todo/domain/entities"
	"gotodo/internal/todo/ports/api"
	"gotodo/internal/todo/ports/repositories"
	"gotodo/pkg/logger"
)

const (
	methodCreateNote = "CreateNote"
	methodListNotes  = "ListNotes"
	methodUpdateNote = "UpdateNote"
	methodDeleteNote = "DeleteNote"

	msgCreatingNote     = "creating note"
	msgNoteCreated      = "note created"
	msgDuplicateTitle   = "duplicate note title for user"
	msgNotesListed      = "notes listed"
	msgNoteUpdated      = "note updated"
	msgNoteUnchanged    = "empty update, note unchanged"
	msgNoteDeleted      = "note deleted"
	msgInvalidNoteID    = "malformed note id"
	msgNoteNotFound     = "note not found"
	msgNoteNotOwned     = "note owned by another user"
	msgErrCreatingNote  = "failed to create note"
	msgErrListingNotes  = "failed to list notes"
	msgErrLoadingNote   = "failed to load note"
	msgErrUpdatingNote  = "failed to update note"
	msgErrDeletingNote  = "failed to delete note"
	errCtxCreatingNote  = "creating note"
	errCtxListingNotes  = "listing notes"
	errCtxLoadingNote   = "loading note"
	errCtxUpdatingNote  = "updating note"
	errCtxDeletingNote  = "deleting note"
	errCtxValidatingID  = "validating note id"
	errCtxCheckingOwner = "checking note owner"
)

// NoteUseCaseImpl implements api.NoteUseCase.
type NoteUseCaseImpl struct {
	noteRepo repositories.NoteRepository
}

// NewNoteUseCase wires the note use case.
func NewNoteUseCase(noteRepo repositories.NoteRepository) api.NoteUseCase {
	return &NoteUseCaseImpl{noteRepo: noteRepo}
}

// CreateNote stores a note for userID. A title the user already has yields
// entities.ErrDuplicateTitle.
func (uc *NoteUseCaseImpl) CreateNote(ctx context.Context, userID string, input api.CreateNoteInput) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateNote), zap.String("userID", userID))
	log.Debug(ctx, msgCreatingNote)

	if userID == "" {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingNote, entities.ErrEmptyUserID)
	}

	note := entities.NewNote(userID, input.Title, input.Description, input.Tags, input.Status, input.DueDate)
	if !note.Status.Valid() {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingNote, entities.ErrInvalidStatus)
	}

	created, err := uc.noteRepo.Create(ctx, note)
	if err != nil {
		if errors.Is(err, entities.ErrDuplicateTitle) {
			log.Debug(ctx, msgDuplicateTitle)
		} else {
			log.Error(ctx, msgErrCreatingNote, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxCreatingNote, err)
	}

	log.Info(ctx, msgNoteCreated, zap.String("noteID", created.ID))
	return created, nil
}

// ListNotes returns the user's notes, newest first.
func (uc *NoteUseCaseImpl) ListNotes(ctx context.Context, userID string) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListNotes), zap.String("userID", userID))

	notes, err := uc.noteRepo.ListByUserID(ctx, userID)
	if err != nil {
		log.Error(ctx, msgErrListingNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingNotes, err)
	}

	log.Debug(ctx, msgNotesListed, zap.Int("count", len(notes)))
	return notes, nil
}

// UpdateNote applies patch to a note owned by userID. An empty patch
// returns the note unchanged.
func (uc *NoteUseCaseImpl) UpdateNote(ctx context.Context, userID, noteID string, patch entities.NotePatch) (*entities.Note, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodUpdateNote),
		zap.String("userID", userID),
		zap.String("noteID", noteID),
	)

	note, err := uc.loadOwned(ctx, log, userID, noteID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingNote, err)
	}

	if patch.IsEmpty() {
		log.Debug(ctx, msgNoteUnchanged)
		return note, nil
	}

	if patch.Status != nil && !patch.Status.Valid() {
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingNote, entities.ErrInvalidStatus)
	}

	patch.Apply(note)

	updated, err := uc.noteRepo.Update(ctx, note)
	if err != nil {
		if errors.Is(err, entities.ErrDuplicateTitle) || errors.Is(err, entities.ErrNoteNotFound) {
			log.Debug(ctx, msgErrUpdatingNote, zap.Error(err))
		} else {
			log.Error(ctx, msgErrUpdatingNote, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingNote, err)
	}

	log.Info(ctx, msgNoteUpdated)
	return updated, nil
}

// DeleteNote removes a note owned by userID and returns it.
func (uc *NoteUseCaseImpl) DeleteNote(ctx context.Context, userID, noteID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodDeleteNote),
		zap.String("userID", userID),
		zap.String("noteID", noteID),
	)

	note, err := uc.loadOwned(ctx, log, userID, noteID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxDeletingNote, err)
	}

	if err := uc.noteRepo.Delete(ctx, noteID, userID); err != nil {
		if errors.Is(err, entities.ErrNoteNotFound) {
			log.Debug(ctx, msgNoteNotFound)
		} else {
			log.Error(ctx, msgErrDeletingNote, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxDeletingNote, err)
	}

	log.Info(ctx, msgNoteDeleted)
	return note, nil
}

// loadOwned validates noteID, fetches the note and checks that userID owns
// it. Existence is checked before ownership.
func (uc *NoteUseCaseImpl) loadOwned(ctx context.Context, log *logger.Logger, userID, noteID string) (*entities.Note, error) {
	if err := entities.ValidateNoteID(noteID); err != nil {
		log.Debug(ctx, msgInvalidNoteID)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingID, err)
	}

	note, err := uc.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, entities.ErrNoteNotFound) {
			log.Debug(ctx, msgNoteNotFound)
		} else {
			log.Error(ctx, msgErrLoadingNote, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxLoadingNote, err)
	}

	if !note.OwnedBy(userID) {
		log.Warn(ctx, msgNoteNotOwned)
		return nil, fmt.Errorf("%s: %w", errCtxCheckingOwner, entities.ErrNoteForbidden)
	}

	return note, nil
}
