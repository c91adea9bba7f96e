package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := zap.NewNop().Sugar()
	return New(db, logger), mock
}

func TestListUsers(t *testing.T) {
	s, mock := newTestStore(t)

	rows := sqlmock.NewRows([]string{"id", "name", "age", "email"}).
		AddRow(1, "John Doe", 30, "john@example.com").
		AddRow(2, "Jane Smith", 25, "jane@example.com")

	mock.ExpectQuery(`SELECT id, name, age, email FROM "c2Users"`).WillReturnRows(rows)

	users, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, int64(1), users[0].ID)
	assert.Equal(t, "jane@example.com", users[1].Email)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUsers_Empty(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(`SELECT id, name, age, email FROM "c2Users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age", "email"}))

	users, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestCreateUser(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(`INSERT INTO "c2Users" \(name, age, email\)`).
		WithArgs("John Doe", 30, "john@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age", "email"}).
			AddRow(7, "John Doe", 30, "john@example.com"))

	u, err := s.CreateUser(context.Background(), "John Doe", 30, "john@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, "John Doe", u.Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(`INSERT INTO "c2Users"`).
		WithArgs("John Doe", 30, "john@example.com").
		WillReturnError(errors.New(`duplicate key value violates unique constraint "c2Users_email_unique"`))

	_, err := s.CreateUser(context.Background(), "John Doe", 30, "john@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create user")
}

func TestDeleteUser_NotFound(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(`DELETE FROM "c2Users"`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := s.DeleteUser(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPostsPage(t *testing.T) {
	s, mock := newTestStore(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "title", "content", "user_id", "created_at", "updated_at"}).
		AddRow(6, "t6", "c6", 1, now, now).
		AddRow(7, "t7", "c7", 2, now, now)

	mock.ExpectQuery(`ORDER BY id ASC\s+LIMIT \$1 OFFSET \$2`).
		WithArgs(5, 5).
		WillReturnRows(rows)

	posts, err := s.ListPostsPage(context.Background(), 5, 5)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, int64(6), posts[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePost_ForeignKeyViolation(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(`INSERT INTO "c2Posts"`).
		WithArgs("title", "content", int64(12345)).
		WillReturnError(errors.New(`insert or update on table "c2Posts" violates foreign key constraint`))

	_, err := s.CreatePost(context.Background(), "title", "content", 12345)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create post")
}

func TestUpdateProfile_RefreshesUpdatedAt(t *testing.T) {
	s, mock := newTestStore(t)

	created := time.Now().Add(-time.Hour)
	updated := time.Now()

	// The gateway owns the updated_at refresh; assert it is part of the statement.
	mock.ExpectQuery(`UPDATE "c2Profiles"\s+SET firstname = \$1, lastname = \$2, username = \$3, updated_at = NOW\(\)`).
		WithArgs("Jane", "Smith", "jsmith", int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "firstname", "lastname", "username", "created_at", "updated_at"}).
			AddRow(3, "Jane", "Smith", "jsmith", created, updated))

	p, err := s.UpdateProfile(context.Background(), 3, "Jane", "Smith", "jsmith")
	require.NoError(t, err)
	assert.Equal(t, "jsmith", p.Username)
	assert.True(t, p.UpdatedAt.After(p.CreatedAt))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProfile_NotFound(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(`UPDATE "c2Profiles"`).
		WithArgs("Jane", "Smith", "jsmith", int64(12345)).
		WillReturnError(sql.ErrNoRows)

	_, err := s.UpdateProfile(context.Background(), 12345, "Jane", "Smith", "jsmith")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteProfile_NotFound(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(`DELETE FROM "c2Profiles"`).
		WithArgs(int64(12345)).
		WillReturnError(sql.ErrNoRows)

	_, err := s.DeleteProfile(context.Background(), 12345)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListNotes_OrderedByCreatedAt(t *testing.T) {
	s, mock := newTestStore(t)

	older := time.Now().Add(-2 * time.Hour)
	newer := time.Now()
	rows := sqlmock.NewRows([]string{"id", "title", "text", "created_at", "updated_at"}).
		AddRow(2, "first", "written earlier", older, older).
		AddRow(1, "second", "written later", newer, newer)

	mock.ExpectQuery(`FROM "c2Notes"\s+ORDER BY created_at ASC`).WillReturnRows(rows)

	notes, err := s.ListNotes(context.Background())
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.True(t, notes[0].CreatedAt.Before(notes[1].CreatedAt))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNote_NotFound(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(`UPDATE "c2Notes"`).
		WithArgs("title", "text", int64(12345)).
		WillReturnError(sql.ErrNoRows)

	_, err := s.UpdateNote(context.Background(), 12345, "title", "text")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostFixtures_RoundRobinAuthors(t *testing.T) {
	posts := PostFixtures([]int64{10, 20, 30})

	require.Len(t, posts, 12)
	assert.Equal(t, int64(10), posts[0].UserID)
	assert.Equal(t, int64(20), posts[1].UserID)
	assert.Equal(t, int64(30), posts[2].UserID)
	assert.Equal(t, int64(10), posts[3].UserID)

	assert.Nil(t, PostFixtures(nil))
}

func TestDeleteNote_MissingIDIsNoOp(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectExec(`DELETE FROM "c2Notes"`).
		WithArgs(int64(12345)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.DeleteNote(context.Background(), 12345)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
