package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/c2demo/c2-backend/internal/config"
	"github.com/c2demo/c2-backend/internal/store"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// TestPostgresIntegration exercises the invariants only a real database
// enforces: the user->post delete cascade, email uniqueness, and offset
// pagination over real rows. It needs a disposable test database; point
// C2_TEST_POSTGRES_DSN at one to enable it.
func TestPostgresIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	dsn := os.Getenv("C2_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("C2_TEST_POSTGRES_DSN not set, skipping postgres integration test")
	}

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, db.PingContext(ctx))

	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(db, filepath.Join("..", "..", "sql")))

	logger := zap.NewNop().Sugar()
	cfg := &config.Config{Env: "dev", MaxPageLimit: 100}
	h := NewHandler(store.New(db, logger), cfg, logger, &mockMetrics{})
	m := NewMiddleware(logger, &mockMetrics{})
	router := h.Routes(m, []string{"http://localhost:3000"}, 600)

	truncate := func() {
		_, err := db.Exec(`TRUNCATE "c2Users", "c2Posts", "c2Profiles", "c2Notes" RESTART IDENTITY CASCADE`)
		require.NoError(t, err)
	}

	createUser := func(name, email string) store.User {
		w := doJSON(t, router, http.MethodPost, "/api/users",
			fmt.Sprintf(`{"name":%q,"age":30,"email":%q}`, name, email))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var u store.User
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &u))
		return u
	}

	createPost := func(title string, userID int64) store.Post {
		w := doJSON(t, router, http.MethodPost, "/api/posts",
			fmt.Sprintf(`{"title":%q,"content":"c","userId":%d}`, title, userID))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var p store.Post
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
		return p
	}

	listPosts := func() []store.Post {
		w := doJSON(t, router, http.MethodGet, "/api/posts", "")
		require.Equal(t, http.StatusOK, w.Code)

		var posts []store.Post
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
		return posts
	}

	t.Run("user delete cascades to posts", func(t *testing.T) {
		truncate()

		doomed := createUser("John Doe", "john@example.com")
		kept := createUser("Jane Smith", "jane@example.com")
		createPost("doomed one", doomed.ID)
		createPost("doomed two", doomed.ID)
		survivor := createPost("survivor", kept.ID)
		require.Len(t, listPosts(), 3)

		w := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/users/%d", doomed.ID), "")
		require.Equal(t, http.StatusOK, w.Code)

		posts := listPosts()
		require.Len(t, posts, 1)
		assert.Equal(t, survivor.ID, posts[0].ID)
		assert.Equal(t, kept.ID, posts[0].UserID)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		truncate()

		createUser("John Doe", "john@example.com")

		w := doJSON(t, router, http.MethodPost, "/api/users",
			`{"name":"Impostor","age":40,"email":"john@example.com"}`)
		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to create user", errorBody(t, w))

		w = doJSON(t, router, http.MethodGet, "/api/users", "")
		require.Equal(t, http.StatusOK, w.Code)
		var users []store.User
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
		assert.Len(t, users, 1)
	})

	t.Run("paginated posts cover all rows once", func(t *testing.T) {
		truncate()

		author := createUser("John Doe", "john@example.com")
		for i := 1; i <= 12; i++ {
			createPost(fmt.Sprintf("post %02d", i), author.ID)
		}

		seen := map[int64]bool{}
		var prevID int64
		for page, wantLen := range map[int]int{1: 5, 2: 5, 3: 2} {
			w := doJSON(t, router, http.MethodGet,
				fmt.Sprintf("/api/posts?page=%d&limit=5", page), "")
			require.Equal(t, http.StatusOK, w.Code)

			var resp PostsPageResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.Len(t, resp.Posts, wantLen, "page %d", page)

			for _, p := range resp.Posts {
				assert.False(t, seen[p.ID], "post %d returned twice", p.ID)
				seen[p.ID] = true
			}
		}
		assert.Len(t, seen, 12)

		// Within a page the ids are ascending.
		w := doJSON(t, router, http.MethodGet, "/api/posts?page=1&limit=5", "")
		var resp PostsPageResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		prevID = 0
		for _, p := range resp.Posts {
			assert.Greater(t, p.ID, prevID)
			prevID = p.ID
		}
	})
}
