package store

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush/postboard/backend/internal/models"
)

// runStoreContract exercises the behaviour every backend must share.
// Emails are suffixed so the suite can run against a non-empty database.
func runStoreContract(t *testing.T, s Store) {
	ctx := context.Background()
	suffix := fmt.Sprintf("%d", time.Now().UnixNano())
	email := "al-" + suffix + "@x.com"

	t.Run("create and find by email", func(t *testing.T) {
		u := &models.User{UserName: "al", Email: email, PasswordHash: "hash"}
		require.NoError(t, s.CreateUser(ctx, u))
		require.NotEmpty(t, u.ID)
		assert.False(t, u.CreatedAt.IsZero())

		got, err := s.FindUserByEmail(ctx, email)
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
		assert.Equal(t, "al", got.UserName)
		assert.Equal(t, "hash", got.PasswordHash)
	})

	t.Run("duplicate email", func(t *testing.T) {
		err := s.CreateUser(ctx, &models.User{UserName: "other", Email: email, PasswordHash: "h"})
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("find by id and email", func(t *testing.T) {
		u, err := s.FindUserByEmail(ctx, email)
		require.NoError(t, err)

		got, err := s.FindUserByIDAndEmail(ctx, u.ID, email)
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)

		_, err = s.FindUserByIDAndEmail(ctx, u.ID, "someone@else.com")
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = s.FindUserByIDAndEmail(ctx, "not-an-id", email)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := s.FindUserByEmail(ctx, "nobody-"+suffix+"@x.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("create post", func(t *testing.T) {
		u, err := s.FindUserByEmail(ctx, email)
		require.NoError(t, err)

		now := time.Now().UTC().Truncate(time.Millisecond)
		p := &models.Post{UserID: u.ID, Content: "hi", CreatedAt: now, UpdatedAt: now}
		require.NoError(t, s.CreatePost(ctx, p))
		assert.NotEmpty(t, p.ID)
	})

	t.Run("concurrent registration with one email", func(t *testing.T) {
		const n = 16
		race := "race-" + suffix + "@x.com"

		var wg sync.WaitGroup
		var ok, dup atomic.Int32
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				err := s.CreateUser(ctx, &models.User{UserName: fmt.Sprintf("u%d", i), Email: race, PasswordHash: "h"})
				switch {
				case err == nil:
					ok.Add(1)
				case assert.ErrorIs(t, err, ErrDuplicateEmail):
					dup.Add(1)
				}
			}(i)
		}
		wg.Wait()

		assert.Equal(t, int32(1), ok.Load())
		assert.Equal(t, int32(n-1), dup.Load())
	})
}
