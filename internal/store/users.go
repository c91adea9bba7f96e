package store

import (
	"context"
	"database/sql"
	"fmt"
)

// ListUsers returns all users in the store's natural order.
func (s *Store) ListUsers(ctx context.Context) ([]User, error) {
	query := `SELECT id, name, age, email FROM "c2Users"`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Age, &u.Email); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return users, nil
}

// CreateUser inserts a user and returns the created row. Constraint
// violations (non-null, unique email) surface as the driver's error.
func (s *Store) CreateUser(ctx context.Context, name string, age int, email string) (User, error) {
	query := `
		INSERT INTO "c2Users" (name, age, email)
		VALUES ($1, $2, $3)
		RETURNING id, name, age, email
	`

	var u User
	err := s.db.QueryRowContext(ctx, query, name, age, email).
		Scan(&u.ID, &u.Name, &u.Age, &u.Email)
	if err != nil {
		return User{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Debugw("Created user", "id", u.ID, "email", u.Email)
	return u, nil
}

// DeleteUser removes a user and returns the deleted row. Dependent posts are
// removed by the ON DELETE CASCADE constraint, not by application code.
func (s *Store) DeleteUser(ctx context.Context, id int64) (User, error) {
	query := `
		DELETE FROM "c2Users"
		WHERE id = $1
		RETURNING id, name, age, email
	`

	var u User
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&u.ID, &u.Name, &u.Age, &u.Email)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Debugw("Deleted user", "id", u.ID)
	return u, nil
}
