package store

import (
	"context"
	"database/sql"
	"fmt"
)

// ListProfiles returns all profiles, unfiltered.
func (s *Store) ListProfiles(ctx context.Context) ([]Profile, error) {
	query := `SELECT id, firstname, lastname, username, created_at, updated_at FROM "c2Profiles"`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	profiles := []Profile{}
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.ID, &p.Firstname, &p.Lastname, &p.Username, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return profiles, nil
}

// CreateProfile inserts a profile and returns the created row. The varchar(30)
// length bound is enforced by the table, not here.
func (s *Store) CreateProfile(ctx context.Context, firstname, lastname, username string) (Profile, error) {
	query := `
		INSERT INTO "c2Profiles" (firstname, lastname, username)
		VALUES ($1, $2, $3)
		RETURNING id, firstname, lastname, username, created_at, updated_at
	`

	var p Profile
	err := s.db.QueryRowContext(ctx, query, firstname, lastname, username).
		Scan(&p.ID, &p.Firstname, &p.Lastname, &p.Username, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to create profile: %w", err)
	}

	s.logger.Debugw("Created profile", "id", p.ID, "username", p.Username)
	return p, nil
}

// UpdateProfile replaces all three name fields of the row with the given id
// and returns the updated row. updated_at is refreshed here, keeping the
// timestamp invariant inside the gateway. Returns ErrNotFound when the id
// matched no row.
func (s *Store) UpdateProfile(ctx context.Context, id int64, firstname, lastname, username string) (Profile, error) {
	query := `
		UPDATE "c2Profiles"
		SET firstname = $1, lastname = $2, username = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING id, firstname, lastname, username, created_at, updated_at
	`

	var p Profile
	err := s.db.QueryRowContext(ctx, query, firstname, lastname, username, id).
		Scan(&p.ID, &p.Firstname, &p.Lastname, &p.Username, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Debugw("Updated profile", "id", p.ID)
	return p, nil
}

// DeleteProfile removes the row with the given id and returns it. Returns
// ErrNotFound when the id matched no row.
func (s *Store) DeleteProfile(ctx context.Context, id int64) (Profile, error) {
	query := `
		DELETE FROM "c2Profiles"
		WHERE id = $1
		RETURNING id, firstname, lastname, username, created_at, updated_at
	`

	var p Profile
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.Firstname, &p.Lastname, &p.Username, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("failed to delete profile: %w", err)
	}

	s.logger.Debugw("Deleted profile", "id", p.ID)
	return p, nil
}
