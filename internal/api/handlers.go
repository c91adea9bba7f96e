package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/c2demo/c2-backend/internal/config"
	"github.com/c2demo/c2-backend/internal/store"
)

// MetricsInterface defines the interface for metrics recording.
type MetricsInterface interface {
	RecordHTTPRequest(ctx context.Context, method, path string, status int, duration time.Duration)
	RecordStoreError(ctx context.Context, entity, op string)
}

type Handler struct {
	store   *store.Store
	config  *config.Config
	logger  *zap.SugaredLogger
	metrics MetricsInterface
}

func NewHandler(store *store.Store, config *config.Config, logger *zap.SugaredLogger, metrics MetricsInterface) *Handler {
	return &Handler{
		store:   store,
		config:  config,
		logger:  logger,
		metrics: metrics,
	}
}

// User endpoints

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		h.storeError(w, r, "users", "list", err, "Failed to fetch users")
		return
	}

	h.writeJSON(w, http.StatusOK, users)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Age == nil {
		h.writeError(w, http.StatusBadRequest, "Invalid age")
		return
	}

	user, err := h.store.CreateUser(r.Context(), req.Name, int(*req.Age), req.Email)
	if err != nil {
		h.storeError(w, r, "users", "create", err, "Failed to create user")
		return
	}

	h.writeJSON(w, http.StatusOK, user)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.store.DeleteUser(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.storeError(w, r, "users", "delete", err, "Failed to delete user")
		return
	}

	h.writeJSON(w, http.StatusOK, user)
}

// Post endpoints

// ListPosts serves both the plain listing and, when page and limit query
// parameters are present, the paginated variant wrapped in {"posts": [...]}.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	pageStr := r.URL.Query().Get("page")
	limitStr := r.URL.Query().Get("limit")

	if pageStr == "" && limitStr == "" {
		posts, err := h.store.ListPosts(r.Context())
		if err != nil {
			h.storeError(w, r, "posts", "list", err, "Failed to fetch posts")
			return
		}
		h.writeJSON(w, http.StatusOK, posts)
		return
	}

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		h.writeError(w, http.StatusBadRequest, "Invalid page parameter")
		return
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		h.writeError(w, http.StatusBadRequest, "Invalid limit parameter")
		return
	}
	if max := h.config.MaxPageLimit; max > 0 && limit > max {
		limit = max
	}

	offset := (page - 1) * limit
	posts, err := h.store.ListPostsPage(r.Context(), limit, offset)
	if err != nil {
		h.storeError(w, r, "posts", "list_page", err, "Failed to fetch posts")
		return
	}

	h.writeJSON(w, http.StatusOK, PostsPageResponse{Posts: posts})
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == nil {
		h.writeError(w, http.StatusBadRequest, "Invalid userId")
		return
	}

	// A userId that references no user fails the FK constraint and is
	// reported as a generic store failure, matching the other slices.
	post, err := h.store.CreatePost(r.Context(), req.Title, req.Content, int64(*req.UserID))
	if err != nil {
		h.storeError(w, r, "posts", "create", err, "Failed to create post")
		return
	}

	h.writeJSON(w, http.StatusOK, post)
}

// Profile endpoints

func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.store.ListProfiles(r.Context())
	if err != nil {
		h.storeError(w, r, "profiles", "list", err, "Failed to fetch profiles")
		return
	}

	h.writeJSON(w, http.StatusOK, profiles)
}

func (h *Handler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Firstname == "" || req.Lastname == "" || req.Username == "" {
		h.writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	profile, err := h.store.CreateProfile(r.Context(), req.Firstname, req.Lastname, req.Username)
	if err != nil {
		h.storeError(w, r, "profiles", "create", err, "Failed to create profile")
		return
	}

	h.writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ID == nil || req.Firstname == "" || req.Lastname == "" || req.Username == "" {
		h.writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	profile, err := h.store.UpdateProfile(r.Context(), int64(*req.ID), req.Firstname, req.Lastname, req.Username)
	if errors.Is(err, store.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "Profile not found")
		return
	}
	if err != nil {
		h.storeError(w, r, "profiles", "update", err, "Failed to update profile")
		return
	}

	h.writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id")
	if idStr == "" {
		h.writeError(w, http.StatusBadRequest, "Missing profile ID")
		return
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid profile ID")
		return
	}

	profile, err := h.store.DeleteProfile(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "Profile not found")
		return
	}
	if err != nil {
		h.storeError(w, r, "profiles", "delete", err, "Failed to delete profile")
		return
	}

	h.writeJSON(w, http.StatusOK, profile)
}

// Health and ops endpoints

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.logger.Errorw("Readiness check failed", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("NOT READY"))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// Utility methods

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// storeError logs the concrete store failure server-side and replies with a
// generic message. Constraint-violation detail never reaches the client.
func (h *Handler) storeError(w http.ResponseWriter, r *http.Request, entity, op string, err error, message string) {
	h.logger.Errorw("Store operation failed",
		"entity", entity,
		"op", op,
		"error", err,
	)
	h.metrics.RecordStoreError(r.Context(), entity, op)
	h.writeError(w, http.StatusInternalServerError, message)
}
