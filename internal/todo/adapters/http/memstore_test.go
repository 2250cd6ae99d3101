package http_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"gotodo/internal/todo/domain/entities"
	"gotodo/internal/todo/domain/services"
)

type memUsers struct {
	mu    sync.Mutex
	users map[string]*entities.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[string]*entities.User)}
}

func (m *memUsers) Create(_ context.Context, user *entities.User) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == user.Email {
			return nil, services.ErrEmailAlreadyExists
		}
	}

	created := *user
	created.ID = uuid.NewString()
	created.CreatedAt = time.Now().UTC()
	created.UpdatedAt = created.CreatedAt
	m.users[created.ID] = &created

	out := created
	return &out, nil
}

func (m *memUsers) FindByID(_ context.Context, id string) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

type memNote struct {
	note entities.Note
	seq  int
}

type memNotes struct {
	mu    sync.Mutex
	seq   int
	notes map[string]*memNote
}

func newMemNotes() *memNotes {
	return &memNotes{notes: make(map[string]*memNote)}
}

func (m *memNotes) titleTaken(userID, title, exceptID string) bool {
	for id, n := range m.notes {
		if id != exceptID && n.note.UserID == userID && n.note.Title == title {
			return true
		}
	}
	return false
}

func (m *memNotes) Create(_ context.Context, note *entities.Note) (*entities.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.titleTaken(note.UserID, note.Title, "") {
		return nil, entities.ErrDuplicateTitle
	}

	m.seq++
	stored := *note
	stored.ID = uuid.NewString()
	m.notes[stored.ID] = &memNote{note: stored, seq: m.seq}

	out := stored
	return &out, nil
}

func (m *memNotes) GetByID(_ context.Context, noteID string) (*entities.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.notes[noteID]
	if !ok {
		return nil, entities.ErrNoteNotFound
	}
	out := n.note
	return &out, nil
}

func (m *memNotes) ListByUserID(_ context.Context, userID string) ([]*entities.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	owned := make([]*memNote, 0)
	for _, n := range m.notes {
		if n.note.UserID == userID {
			owned = append(owned, n)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].seq > owned[j].seq })

	out := make([]*entities.Note, 0, len(owned))
	for _, n := range owned {
		note := n.note
		out = append(out, &note)
	}
	return out, nil
}

func (m *memNotes) Update(_ context.Context, note *entities.Note) (*entities.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.notes[note.ID]
	if !ok || n.note.UserID != note.UserID {
		return nil, entities.ErrNoteNotFound
	}
	if m.titleTaken(note.UserID, note.Title, note.ID) {
		return nil, entities.ErrDuplicateTitle
	}

	n.note = *note
	n.note.UpdatedAt = time.Now().UTC()

	out := n.note
	return &out, nil
}

func (m *memNotes) Delete(_ context.Context, noteID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.notes[noteID]
	if !ok || n.note.UserID != userID {
		return entities.ErrNoteNotFound
	}
	delete(m.notes, noteID)
	return nil
}
