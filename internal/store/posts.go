package store

import (
	"context"
	"fmt"
)

// ListPosts returns all posts, unfiltered.
func (s *Store) ListPosts(ctx context.Context) ([]Post, error) {
	query := `SELECT id, title, content, user_id, created_at, updated_at FROM "c2Posts"`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.UserID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return posts, nil
}

// ListPostsPage returns up to limit posts ordered by id ascending starting at
// offset. Callers infer the last page from a short batch.
func (s *Store) ListPostsPage(ctx context.Context, limit, offset int) ([]Post, error) {
	query := `
		SELECT id, title, content, user_id, created_at, updated_at
		FROM "c2Posts"
		ORDER BY id ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts page: %w", err)
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.UserID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return posts, nil
}

// CreatePost inserts a post and returns the created row. A userID that does
// not reference an existing user fails the FK constraint at the store.
func (s *Store) CreatePost(ctx context.Context, title, content string, userID int64) (Post, error) {
	query := `
		INSERT INTO "c2Posts" (title, content, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, title, content, user_id, created_at, updated_at
	`

	var p Post
	err := s.db.QueryRowContext(ctx, query, title, content, userID).
		Scan(&p.ID, &p.Title, &p.Content, &p.UserID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Post{}, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Debugw("Created post", "id", p.ID, "user_id", p.UserID)
	return p, nil
}
