package store

import (
	"context"
	"fmt"
)

type UserFixture struct {
	Name  string
	Age   int
	Email string
}

type PostFixture struct {
	Title   string
	Content string
	UserID  int64
}

type ProfileFixture struct {
	Firstname string
	Lastname  string
	Username  string
}

type NoteFixture struct {
	Title string
	Text  string
}

// UserFixtures provides sample user data for seeding.
var UserFixtures = []UserFixture{
	{Name: "John Doe", Age: 30, Email: "john.doe@example.com"},
	{Name: "Jane Smith", Age: 25, Email: "jane.smith@example.com"},
	{Name: "Bob Johnson", Age: 35, Email: "bob.johnson@example.com"},
	{Name: "Alice Brown", Age: 28, Email: "alice.brown@example.com"},
}

// PostFixtures provides sample post data for seeding. Authors are assigned
// from userIDs round-robin.
func PostFixtures(userIDs []int64) []PostFixture {
	if len(userIDs) == 0 {
		return nil
	}

	posts := []PostFixture{
		{Title: "Introduction to Go", Content: "Go is a programming language developed at Google..."},
		{Title: "Database Design Patterns", Content: "When designing databases, there are several patterns..."},
		{Title: "REST API Conventions", Content: "A consistent JSON surface makes clients simpler..."},
		{Title: "Migrations Done Right", Content: "Schema changes should be versioned and checksummed..."},
		{Title: "Pagination Strategies", Content: "Offset pagination is the simplest place to start..."},
		{Title: "Structured Logging", Content: "Key-value logs beat format strings for searchability..."},
		{Title: "Error Taxonomies", Content: "Clients should see categories, not driver internals..."},
		{Title: "Connection Pooling", Content: "A single shared pool outlives every request..."},
		{Title: "Timestamps as Invariants", Content: "updated_at belongs to the storage layer..."},
		{Title: "Cascading Deletes", Content: "Let the database own referential cleanup..."},
		{Title: "Graceful Shutdown", Content: "Drain in-flight requests before closing the pool..."},
		{Title: "Health Endpoints", Content: "Liveness and readiness are different questions..."},
	}

	for i := range posts {
		posts[i].UserID = userIDs[i%len(userIDs)]
	}
	return posts
}

// ProfileFixtures provides sample profile data for seeding.
var ProfileFixtures = []ProfileFixture{
	{Firstname: "John", Lastname: "Doe", Username: "jdoe"},
	{Firstname: "Jane", Lastname: "Smith", Username: "jsmith"},
	{Firstname: "Bob", Lastname: "Johnson", Username: "bjohnson"},
}

// NoteFixtures provides sample note data for seeding.
var NoteFixtures = []NoteFixture{
	{Title: "Groceries", Text: "Milk, eggs, bread"},
	{Title: "Standup", Text: "Demo the profiles page on Thursday"},
	{Title: "Reading", Text: "Finish the chapter on connection pooling"},
}

// Seed inserts the fixture data. Intended for demo databases only; it makes
// no attempt at idempotency.
func (s *Store) Seed(ctx context.Context) error {
	userIDs := make([]int64, 0, len(UserFixtures))
	for _, f := range UserFixtures {
		u, err := s.CreateUser(ctx, f.Name, f.Age, f.Email)
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", f.Email, err)
		}
		userIDs = append(userIDs, u.ID)
	}

	posts := PostFixtures(userIDs)
	for _, f := range posts {
		if _, err := s.CreatePost(ctx, f.Title, f.Content, f.UserID); err != nil {
			return fmt.Errorf("failed to seed post %q: %w", f.Title, err)
		}
	}

	for _, f := range ProfileFixtures {
		if _, err := s.CreateProfile(ctx, f.Firstname, f.Lastname, f.Username); err != nil {
			return fmt.Errorf("failed to seed profile %s: %w", f.Username, err)
		}
	}

	for _, f := range NoteFixtures {
		if _, err := s.CreateNote(ctx, f.Title, f.Text); err != nil {
			return fmt.Errorf("failed to seed note %q: %w", f.Title, err)
		}
	}

	s.logger.Infow("Seeded demo data",
		"users", len(UserFixtures),
		"posts", len(posts),
		"profiles", len(ProfileFixtures),
		"notes", len(NoteFixtures),
	)
	return nil
}
