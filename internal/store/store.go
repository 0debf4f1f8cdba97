// Package store holds the Credential Store backends: users and their posts.
package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/ayush/postboard/backend/internal/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Store is the contract every backend satisfies. Email uniqueness is enforced
// by the backend itself so concurrent registrations cannot both succeed.
type Store interface {
	// CreateUser assigns u.ID and u.CreatedAt. Returns ErrDuplicateEmail if
	// the email is taken.
	CreateUser(ctx context.Context, u *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	// FindUserByIDAndEmail returns ErrNotFound for malformed ids as well as
	// for missing users.
	FindUserByIDAndEmail(ctx context.Context, id, email string) (*models.User, error)
	// CreatePost assigns p.ID.
	CreatePost(ctx context.Context, p *models.Post) error
	Close(ctx context.Context) error
}

// Open connects to the backend named by the scheme of databaseURL.
func Open(ctx context.Context, databaseURL, mongoDB string) (Store, error) {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}

	switch u.Scheme {
	case "mongodb", "mongodb+srv":
		s, err := ConnectMongo(ctx, databaseURL, mongoDB)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "postgres", "postgresql":
		s, err := ConnectPostgres(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported DATABASE_URL scheme %q", u.Scheme)
	}
}
