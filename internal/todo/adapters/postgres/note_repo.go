package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gotodo/internal/todo/domain/entities"
	"gotodo/internal/todo/ports/repositories"
	"gotodo/pkg/logger"
)

const noteColumns = `id, user_id, title, description, tags, status, due_date, created_at, updated_at`

const (
	queryCreateNote = `
        INSERT INTO notes (user_id, title, description, tags, status, due_date)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + noteColumns
	queryGetNoteByID = `
        SELECT ` + noteColumns + `
        FROM notes
        WHERE id = $1
    `
	queryListNotesByUser = `
        SELECT ` + noteColumns + `
        FROM notes
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	queryUpdateNote = `
        UPDATE notes
        SET title = $3, description = $4, tags = $5, status = $6, due_date = $7, updated_at = NOW()
        WHERE id = $1 AND user_id = $2
        RETURNING ` + noteColumns
	queryDeleteNote = `DELETE FROM notes WHERE id = $1 AND user_id = $2`
)

// NoteRepository stores notes in Postgres.
type NoteRepository struct {
	pool PgxPoolInterface
}

// NewNoteRepository returns a Postgres backed note repository.
func NewNoteRepository(pool PgxPoolInterface) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

// Create inserts a note.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Create"))
	log.Debug(ctx, "creating new note", zap.String("userID", note.UserID))

	created, err := scanNote(r.pool.QueryRow(ctx, queryCreateNote,
		note.UserID, note.Title, note.Description, note.Tags, string(note.Status), note.DueDate,
	))
	if err != nil {
		if mapped := mapNoteWriteError(err); mapped != nil {
			log.Debug(ctx, "note rejected by constraint", zap.Error(err))
			return nil, mapped
		}
		log.Error(ctx, "failed to create note", zap.Error(err))
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	log.Debug(ctx, "note created", zap.String("noteID", created.ID))
	return created, nil
}

// GetByID loads a note regardless of owner.
func (r *NoteRepository) GetByID(ctx context.Context, noteID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.GetByID"))
	log.Debug(ctx, "getting note", zap.String("noteID", noteID))

	note, err := scanNote(r.pool.QueryRow(ctx, queryGetNoteByID, noteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.String("noteID", noteID))
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, "failed to get note", zap.Error(err))
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return note, nil
}

// ListByUserID returns the user's notes, newest first.
func (r *NoteRepository) ListByUserID(ctx context.Context, userID string) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.ListByUserID"))
	log.Debug(ctx, "listing notes", zap.String("userID", userID))

	rows, err := r.pool.Query(ctx, queryListNotesByUser, userID)
	if err != nil {
		log.Error(ctx, "failed to list notes", zap.Error(err))
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			log.Error(ctx, "failed to scan note", zap.Error(err))
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return notes, nil
}

// Update writes every mutable field of note. The owner is part of the
// predicate, so a note of another user is reported as not found.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Update"))
	log.Debug(ctx, "updating note", zap.String("noteID", note.ID))

	updated, err := scanNote(r.pool.QueryRow(ctx, queryUpdateNote,
		note.ID, note.UserID, note.Title, note.Description, note.Tags, string(note.Status), note.DueDate,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found for update", zap.String("noteID", note.ID))
			return nil, entities.ErrNoteNotFound
		}
		if mapped := mapNoteWriteError(err); mapped != nil {
			log.Debug(ctx, "note rejected by constraint", zap.Error(err))
			return nil, mapped
		}
		log.Error(ctx, "failed to update note", zap.Error(err))
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return updated, nil
}

// Delete removes the note when userID owns it.
func (r *NoteRepository) Delete(ctx context.Context, noteID, userID string) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Delete"))
	log.Debug(ctx, "deleting note", zap.String("noteID", noteID))

	result, err := r.pool.Exec(ctx, queryDeleteNote, noteID, userID)
	if err != nil {
		log.Error(ctx, "failed to delete note", zap.Error(err))
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found for deletion", zap.String("noteID", noteID))
		return entities.ErrNoteNotFound
	}

	return nil
}

func mapNoteWriteError(err error) error {
	if constraint, ok := violatedConstraint(err, pgUniqueViolation); ok && constraint == constraintNotesUserTitle {
		return entities.ErrDuplicateTitle
	}
	if _, ok := violatedConstraint(err, pgForeignKeyViolation); ok {
		return entities.ErrUserNotFound
	}
	return nil
}

func scanNote(row pgx.Row) (*entities.Note, error) {
	var (
		note   entities.Note
		status string
	)
	if err := row.Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Description,
		&note.Tags,
		&status,
		&note.DueDate,
		&note.CreatedAt,
		&note.UpdatedAt,
	); err != nil {
		return nil, err
	}
	note.Status = entities.NoteStatus(status)
	return &note, nil
}
