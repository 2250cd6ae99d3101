package dto

import (
	"strings"
	"time"

	"gotodo/internal/todo/domain/entities"
	"gotodo/internal/todo/ports/api"
)

// CreateNoteRequest is the note creation body.
type CreateNoteRequest struct {
	Title       string `json:"title" validate:"required,min=2,max=100,safetext"`
	Description string `json:"description" validate:"required,min=5,max=2000"`
	DueDate     string `json:"dueDate" validate:"required,isodate"`
	Tags        string `json:"tags" validate:"omitempty,max=50,safetext"`
	Status      string `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
}

// Normalize trims every field.
func (r *CreateNoteRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.DueDate = strings.TrimSpace(r.DueDate)
	r.Tags = strings.TrimSpace(r.Tags)
	r.Status = strings.TrimSpace(r.Status)
}

// ToInput converts a validated request. The due date was already checked by
// the isodate rule, so a parse failure here is still reported.
func (r *CreateNoteRequest) ToInput() (api.CreateNoteInput, error) {
	due, err := entities.ParseDueDate(r.DueDate)
	if err != nil {
		return api.CreateNoteInput{}, err //nolint:wrapcheck
	}
	return api.CreateNoteInput{
		Title:       r.Title,
		Description: r.Description,
		Tags:        r.Tags,
		Status:      entities.NoteStatus(r.Status),
		DueDate:     due,
	}, nil
}

// UpdateNoteRequest is a partial update; absent fields stay nil.
type UpdateNoteRequest struct {
	Title       *string `json:"title" validate:"omitnil,min=2,max=100,safetext"`
	Description *string `json:"description" validate:"omitnil,min=5,max=2000"`
	DueDate     *string `json:"dueDate" validate:"omitnil,isodate"`
	Tags        *string `json:"tags" validate:"omitnil,max=50,safetext"`
	Status      *string `json:"status" validate:"omitnil,oneof=pending in-progress completed"`
}

// Normalize trims every present field.
func (r *UpdateNoteRequest) Normalize() {
	for _, field := range []*string{r.Title, r.Description, r.DueDate, r.Tags, r.Status} {
		if field != nil {
			*field = strings.TrimSpace(*field)
		}
	}
}

// ToPatch converts a validated request.
func (r *UpdateNoteRequest) ToPatch() (entities.NotePatch, error) {
	patch := entities.NotePatch{
		Title:       r.Title,
		Description: r.Description,
		Tags:        r.Tags,
	}
	if r.Status != nil {
		status := entities.NoteStatus(*r.Status)
		patch.Status = &status
	}
	if r.DueDate != nil {
		due, err := entities.ParseDueDate(*r.DueDate)
		if err != nil {
			return entities.NotePatch{}, err //nolint:wrapcheck
		}
		patch.DueDate = &due
	}
	return patch, nil
}

// NoteView is the public projection of a note.
type NoteView struct {
	ID          string    `json:"id"`
	User        string    `json:"user"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	Tags        string    `json:"tags"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewNoteView projects n.
func NewNoteView(n *entities.Note) NoteView {
	return NoteView{
		ID:          n.ID,
		User:        n.UserID,
		Title:       n.Title,
		Description: n.Description,
		DueDate:     n.DueDate,
		Tags:        n.Tags,
		Status:      string(n.Status),
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

// NewNoteViews projects notes, returning an empty slice for none.
func NewNoteViews(notes []*entities.Note) []NoteView {
	views := make([]NoteView, 0, len(notes))
	for _, n := range notes {
		views = append(views, NewNoteView(n))
	}
	return views
}

// NoteResponse carries a single note.
type NoteResponse struct {
	Message string   `json:"message"`
	Note    NoteView `json:"note"`
}

// NotesResponse carries the caller's notes.
type NotesResponse struct {
	Message string     `json:"message"`
	Notes   []NoteView `json:"notes"`
}

// DeletedNoteResponse carries the removed note.
type DeletedNoteResponse struct {
	Message     string   `json:"message"`
	DeletedNote NoteView `json:"deletedNote"`
}
