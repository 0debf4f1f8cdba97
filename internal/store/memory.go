package store

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ayush/postboard/backend/internal/models"
)

// MemoryStore is a process-local Store for development and tests. Ids are
// ObjectID hex strings, the same shape MongoStore hands out.
type MemoryStore struct {
	mu      sync.RWMutex
	users   map[string]models.User
	byEmail map[string]string
	posts   map[string]models.Post
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[string]models.User),
		byEmail: make(map[string]string),
		posts:   make(map[string]models.Post),
	}
}

func (s *MemoryStore) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[u.Email]; taken {
		return ErrDuplicateEmail
	}
	u.ID = primitive.NewObjectID().Hex()
	u.CreatedAt = time.Now().UTC()
	s.users[u.ID] = *u
	s.byEmail[u.Email] = u.ID
	return nil
}

func (s *MemoryStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	u := s.users[id]
	return &u, nil
}

func (s *MemoryStore) FindUserByIDAndEmail(_ context.Context, id, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok || u.Email != email {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) CreatePost(_ context.Context, p *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = primitive.NewObjectID().Hex()
	s.posts[p.ID] = *p
	return nil
}

// PostsByUser returns the posts authored by userID in no particular order.
func (s *MemoryStore) PostsByUser(userID string) []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Post
	for _, p := range s.posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out
}

func (s *MemoryStore) Close(context.Context) error { return nil }
