package posts

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/ayush/postboard/backend/internal/auth"
	"github.com/ayush/postboard/backend/internal/httpx"
	"github.com/ayush/postboard/backend/internal/logging"
	"github.com/ayush/postboard/backend/internal/models"
)

// PostStore defines the interface for post persistence.
type PostStore interface {
	CreatePost(ctx context.Context, p *models.Post) error
}

// Handler holds post HTTP handlers. Routes must sit behind middleware.RequireToken.
type Handler struct {
	posts PostStore
	log   logging.Logger
	now   func() time.Time
}

func NewHandler(posts PostStore, log logging.Logger) *Handler {
	return &Handler{posts: posts, log: log, now: time.Now}
}

// Create stores a post authored by the authenticated user.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		return httpx.Unauthorized("token is required for authentication.")
	}

	var req models.CreatePostRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Content) == "" {
		return httpx.Validation("Content is required.")
	}

	now := h.now().UTC()
	post := &models.Post{
		UserID:    user.ID,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.posts.CreatePost(r.Context(), post); err != nil {
		return httpx.Internal(err)
	}

	h.log.Info(r.Context(), "post created", "post_id", post.ID, "user_id", user.ID)
	httpx.WriteJSON(w, http.StatusCreated, models.CreatePostResponse{
		Message: "Post created successfully.",
		Post:    post,
	})
	return nil
}
