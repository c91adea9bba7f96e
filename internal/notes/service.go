// Package notes is the server-side action layer for the c2Notes table. It is
// called in-process by the hosting application and is deliberately not routed
// over HTTP.
package notes

import (
	"context"
	"fmt"

	"github.com/c2demo/c2-backend/internal/store"
	"go.uber.org/zap"
)

// Input carries the writable fields of a note. No pre-validation is applied;
// the table's non-null and length constraints are the only checks.
type Input struct {
	Title string
	Text  string
}

type Service struct {
	store  *store.Store
	logger *zap.SugaredLogger
}

func NewService(store *store.Store, logger *zap.SugaredLogger) *Service {
	return &Service{store: store, logger: logger}
}

// Fetch returns all notes ordered by created_at ascending.
func (s *Service) Fetch(ctx context.Context) ([]store.Note, error) {
	notes, err := s.store.ListNotes(ctx)
	if err != nil {
		s.logger.Errorw("Failed to fetch notes", "error", err)
		return nil, fmt.Errorf("failed to fetch notes: %w", err)
	}
	return notes, nil
}

// Add inserts a note and returns the created row.
func (s *Service) Add(ctx context.Context, in Input) (store.Note, error) {
	note, err := s.store.CreateNote(ctx, in.Title, in.Text)
	if err != nil {
		s.logger.Errorw("Failed to add note", "error", err)
		return store.Note{}, fmt.Errorf("failed to add note: %w", err)
	}
	return note, nil
}

// Edit replaces title and text of the note with the given id. Returns
// store.ErrNotFound when the id matches no row.
func (s *Service) Edit(ctx context.Context, id int64, in Input) (store.Note, error) {
	note, err := s.store.UpdateNote(ctx, id, in.Title, in.Text)
	if err == store.ErrNotFound {
		return store.Note{}, err
	}
	if err != nil {
		s.logger.Errorw("Failed to edit note", "id", id, "error", err)
		return store.Note{}, fmt.Errorf("failed to edit note: %w", err)
	}
	return note, nil
}

// Delete removes the note with the given id. A missing id is a silent no-op.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteNote(ctx, id); err != nil {
		s.logger.Errorw("Failed to delete note", "id", id, "error", err)
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}
