package store

import (
	"context"
	"database/sql"
	"fmt"
)

// ListNotes returns all notes ordered by created_at ascending, oldest first.
// This is the only entity with a defined ordering guarantee.
func (s *Store) ListNotes(ctx context.Context) ([]Note, error) {
	query := `
		SELECT id, title, text, created_at, updated_at
		FROM "c2Notes"
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	notes := []Note{}
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Text, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return notes, nil
}

// CreateNote inserts a note and returns the created row.
func (s *Store) CreateNote(ctx context.Context, title, text string) (Note, error) {
	query := `
		INSERT INTO "c2Notes" (title, text)
		VALUES ($1, $2)
		RETURNING id, title, text, created_at, updated_at
	`

	var n Note
	err := s.db.QueryRowContext(ctx, query, title, text).
		Scan(&n.ID, &n.Title, &n.Text, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return Note{}, fmt.Errorf("failed to create note: %w", err)
	}

	s.logger.Debugw("Created note", "id", n.ID)
	return n, nil
}

// UpdateNote replaces title and text of the row with the given id. updated_at
// is refreshed by the gateway. Returns ErrNotFound when the id matched no row.
func (s *Store) UpdateNote(ctx context.Context, id int64, title, text string) (Note, error) {
	query := `
		UPDATE "c2Notes"
		SET title = $1, text = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id, title, text, created_at, updated_at
	`

	var n Note
	err := s.db.QueryRowContext(ctx, query, title, text, id).
		Scan(&n.ID, &n.Title, &n.Text, &n.CreatedAt, &n.UpdatedAt)
	if err == sql.ErrNoRows {
		return Note{}, ErrNotFound
	}
	if err != nil {
		return Note{}, fmt.Errorf("failed to update note: %w", err)
	}

	s.logger.Debugw("Updated note", "id", n.ID)
	return n, nil
}

// DeleteNote removes the row with the given id. Deleting an id that matches
// no row is a silent no-op.
func (s *Store) DeleteNote(ctx context.Context, id int64) error {
	query := `DELETE FROM "c2Notes" WHERE id = $1`

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	s.logger.Debugw("Deleted note", "id", id)
	return nil
}
