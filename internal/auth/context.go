package auth

import (
	"context"

	"github.com/ayush/postboard/backend/internal/models"
)

type ctxKey int

const (
	userKey ctxKey = iota
	tokenKey
)

// WithUser returns ctx carrying the authenticated user and the token that proved it.
func WithUser(ctx context.Context, u *models.User, token string) context.Context {
	ctx = context.WithValue(ctx, userKey, u)
	return context.WithValue(ctx, tokenKey, token)
}

func UserFrom(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey).(*models.User)
	return u, ok && u != nil
}

func TokenFrom(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(tokenKey).(string)
	return t, ok && t != ""
}
