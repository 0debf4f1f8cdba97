package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush/postboard/backend/internal/models"
)

func TestMemoryStore_Contract(t *testing.T) {
	runStoreContract(t, NewMemoryStore())
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	u := &models.User{UserName: "al", Email: "a@x.com", PasswordHash: "h"}
	require.NoError(t, s.CreateUser(ctx, u))

	got, err := s.FindUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	got.Email = "mutated@x.com"

	again, err := s.FindUserByIDAndEmail(ctx, u.ID, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", again.Email)
}

func TestMemoryStore_PostsByUser(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.CreatePost(ctx, &models.Post{UserID: "u1", Content: "a", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, s.CreatePost(ctx, &models.Post{UserID: "u2", Content: "b", CreatedAt: now, UpdatedAt: now}))

	posts := s.PostsByUser("u1")
	require.Len(t, posts, 1)
	assert.Equal(t, "a", posts[0].Content)
}

func TestOpen_Schemes(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, "memory://", "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)
	require.NoError(t, s.Close(ctx))

	_, err = Open(ctx, "mysql://localhost/db", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mysql")

	_, err = Open(ctx, "::not a url", "")
	require.Error(t, err)
}
