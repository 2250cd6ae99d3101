package entities

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Note errors.
var (
	ErrNoteNotFound   = errors.New("note not found")
	ErrNoteForbidden  = errors.New("note belongs to another user")
	ErrDuplicateTitle = errors.New("note with this title already exists")
	ErrInvalidNoteID  = errors.New("invalid note ID")
	ErrInvalidDueDate = errors.New("invalid due date")
	ErrInvalidStatus  = errors.New("invalid note status")
)

// NoteStatus is the progress state of a note.
type NoteStatus string

// Note statuses.
const (
	StatusPending    NoteStatus = "pending"
	StatusInProgress NoteStatus = "in-progress"
	StatusCompleted  NoteStatus = "completed"
)

// Valid reports whether s is a known status.
func (s NoteStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// Note is a user's task. UserID is fixed at creation.
type Note struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Tags        string
	Status      NoteStatus
	DueDate     time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewNote builds a note owned by userID. An empty status becomes pending.
func NewNote(userID, title, description, tags string, status NoteStatus, dueDate time.Time) *Note {
	if status == "" {
		status = StatusPending
	}
	now := time.Now().UTC()
	return &Note{
		UserID:      userID,
		Title:       title,
		Description: description,
		Tags:        tags,
		Status:      status,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// OwnedBy reports whether userID owns the note.
func (n *Note) OwnedBy(userID string) bool {
	return n.UserID == userID
}

// NotePatch lists the fields of a partial update; nil means unchanged.
type NotePatch struct {
	Title       *string
	Description *string
	Tags        *string
	Status      *NoteStatus
	DueDate     *time.Time
}

// IsEmpty reports whether the patch changes nothing.
func (p NotePatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Tags == nil && p.Status == nil && p.DueDate == nil
}

// Apply copies the set fields onto n.
func (p NotePatch) Apply(n *Note) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Description != nil {
		n.Description = *p.Description
	}
	if p.Tags != nil {
		n.Tags = *p.Tags
	}
	if p.Status != nil {
		n.Status = *p.Status
	}
	if p.DueDate != nil {
		n.DueDate = *p.DueDate
	}
}

const canonicalUUIDLength = 36

// ValidateNoteID accepts only canonical hyphenated UUIDs.
func ValidateNoteID(id string) error {
	if len(id) != canonicalUUIDLength {
		return ErrInvalidNoteID
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidNoteID
	}
	return nil
}

var dueDateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ParseDueDate parses an ISO-8601 date or date-time. Values without a zone are UTC.
func ParseDueDate(value string) (time.Time, error) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDueDate, value)
}
