package auth

import (
	"context"
	"errors"
	"time"

	"github.com/ayush/postboard/backend/internal/logging"
	"github.com/ayush/postboard/backend/internal/models"
	"github.com/ayush/postboard/backend/internal/store"
)

var ErrInvalidToken = errors.New("invalid token")

// UserResolver looks a token's user back up.
type UserResolver interface {
	FindUserByIDAndEmail(ctx context.Context, id, email string) (*models.User, error)
}

// Tokens issues bearer tokens and resolves them back to users. Nothing about
// an issued token is stored; validity is re-derived on every Verify.
type Tokens struct {
	codec   Codec
	users   UserResolver
	revoker Revoker
	// revokeTTL bounds denylist entries for tokens without an expiry.
	revokeTTL time.Duration
	log       logging.Logger
	now       func() time.Time
}

func NewTokens(codec Codec, users UserResolver, revoker Revoker, revokeTTL time.Duration, log logging.Logger) *Tokens {
	return &Tokens{
		codec:     codec,
		users:     users,
		revoker:   revoker,
		revokeTTL: revokeTTL,
		log:       log,
		now:       time.Now,
	}
}

func (t *Tokens) Issue(u *models.User) (string, error) {
	return t.codec.Encode(u)
}

// Verify returns the user a token belongs to. Every failure, including a
// store error, is reported as ErrInvalidToken.
func (t *Tokens) Verify(ctx context.Context, token string) (*models.User, error) {
	c, err := t.codec.Decode(token)
	if err != nil {
		t.log.Debug(ctx, "token rejected", "reason", err)
		return nil, ErrInvalidToken
	}

	revoked, err := t.revoker.IsRevoked(ctx, c.Nonce)
	if err != nil {
		t.log.Error(ctx, "revocation check failed", "err", err)
		return nil, ErrInvalidToken
	}
	if revoked {
		t.log.Debug(ctx, "token rejected", "reason", "revoked", "user_id", c.UserID)
		return nil, ErrInvalidToken
	}

	u, err := t.users.FindUserByIDAndEmail(ctx, c.UserID, c.Email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			t.log.Error(ctx, "token user lookup failed", "user_id", c.UserID, "err", err)
		}
		return nil, ErrInvalidToken
	}
	return u, nil
}

// Revoke denies token until it would have expired anyway.
func (t *Tokens) Revoke(ctx context.Context, token string) error {
	c, err := t.codec.Decode(token)
	if err != nil {
		return ErrInvalidToken
	}

	ttl := t.revokeTTL
	if !c.ExpiresAt.IsZero() {
		ttl = c.ExpiresAt.Sub(t.now())
		if ttl <= 0 {
			return nil
		}
	}
	return t.revoker.Revoke(ctx, c.Nonce, ttl)
}
