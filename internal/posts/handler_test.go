package posts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush/postboard/backend/internal/auth"
	"github.com/ayush/postboard/backend/internal/httpx"
	"github.com/ayush/postboard/backend/internal/logging"
	"github.com/ayush/postboard/backend/internal/models"
	"github.com/ayush/postboard/backend/internal/store"
)

type brokenPosts struct{}

func (brokenPosts) CreatePost(context.Context, *models.Post) error { return errors.New("insert failed") }

var author = &models.User{ID: "65f1c0ffee0000000000beef", UserName: "al", Email: "a@x.com"}

func create(t *testing.T, h *Handler, user *models.User, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(body))
	if user != nil {
		req = req.WithContext(auth.WithUser(req.Context(), user, "tok"))
	}
	rec := httptest.NewRecorder()
	httpx.Handle(logging.Discard(), h.Create)(rec, req)
	return rec
}

func TestCreate_Success(t *testing.T) {
	st := store.NewMemoryStore()
	h := NewHandler(st, logging.Discard())
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	h.now = func() time.Time { return fixed }

	rec := create(t, h, author, `{"content":"hi"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp models.CreatePostResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Post created successfully.", resp.Message)
	require.NotNil(t, resp.Post)
	assert.NotEmpty(t, resp.Post.ID)
	assert.Equal(t, "hi", resp.Post.Content)
	assert.Equal(t, author.ID, resp.Post.UserID)
	assert.True(t, fixed.Equal(resp.Post.CreatedAt))
	assert.True(t, resp.Post.CreatedAt.Equal(resp.Post.UpdatedAt))

	stored := st.PostsByUser(author.ID)
	require.Len(t, stored, 1)
	assert.Equal(t, resp.Post.ID, stored[0].ID)
}

func TestCreate_EmptyContent(t *testing.T) {
	h := NewHandler(store.NewMemoryStore(), logging.Discard())
	for _, body := range []string{`{}`, `{"content":""}`, `{"content":"   "}`} {
		rec := create(t, h, author, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Contains(t, rec.Body.String(), "Content is required.")
	}
}

func TestCreate_WithoutUser(t *testing.T) {
	h := NewHandler(store.NewMemoryStore(), logging.Discard())
	rec := create(t, h, nil, `{"content":"hi"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreate_StoreFailure(t *testing.T) {
	h := NewHandler(brokenPosts{}, logging.Discard())
	rec := create(t, h, author, `{"content":"hi"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error."}`, rec.Body.String())
}
