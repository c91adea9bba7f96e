package api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/c2demo/c2-backend/internal/store"
)

// ErrorResponse is the JSON body of every non-2xx response. Store failures
// are reported with a generic message; the cause stays in the server log.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PostsPageResponse wraps the paginated posts variant. The non-paginated
// listing returns a bare array; only this variant is wrapped.
type PostsPageResponse struct {
	Posts []store.Post `json:"posts"`
}

// coercedInt accepts a JSON number or a numeric string. Clients submit form
// values as strings; anything non-numeric is a decode error surfaced as a
// 400, never stored as a zero value.
type coercedInt int64

func (c *coercedInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return err
		}
		s = strings.TrimSpace(unquoted)
	}
	if s == "" || s == "null" {
		return fmt.Errorf("expected an integer, got %s", string(data))
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("expected an integer, got %s", string(data))
	}
	*c = coercedInt(v)
	return nil
}

// Numeric fields are pointers so an absent field is distinguishable from a
// zero value and can be rejected before touching the store.
type CreateUserRequest struct {
	Name  string      `json:"name"`
	Age   *coercedInt `json:"age"`
	Email string      `json:"email"`
}

type CreatePostRequest struct {
	Title   string      `json:"title"`
	Content string      `json:"content"`
	UserID  *coercedInt `json:"userId"`
}

type CreateProfileRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Username  string `json:"username"`
}

type UpdateProfileRequest struct {
	ID        *coercedInt `json:"id"`
	Firstname string      `json:"firstname"`
	Lastname  string      `json:"lastname"`
	Username  string      `json:"username"`
}
