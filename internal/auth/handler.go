package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/ayush/postboard/backend/internal/httpx"
	"github.com/ayush/postboard/backend/internal/logging"
	"github.com/ayush/postboard/backend/internal/models"
	"github.com/ayush/postboard/backend/internal/store"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Handler holds auth-related HTTP handlers.
type Handler struct {
	users  UserStore
	hasher Hasher
	tokens *Tokens
	log    logging.Logger

	// dummyHash is compared against when the email is unknown so a missing
	// account costs the same as a wrong password.
	dummyOnce sync.Once
	dummyHash string
}

func NewHandler(users UserStore, hasher Hasher, tokens *Tokens, log logging.Logger) *Handler {
	return &Handler{users: users, hasher: hasher, tokens: tokens, log: log}
}

// Register creates a new user.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) error {
	var req models.RegisterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		return err
	}
	if strings.TrimSpace(req.UserName) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return httpx.Validation("userName, email, and password are required.")
	}

	hashed, err := h.hasher.Hash(req.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return httpx.Validation("password must be at most 72 bytes.")
	}
	if err != nil {
		return httpx.Internal(err)
	}

	user := &models.User{UserName: req.UserName, Email: req.Email, PasswordHash: hashed}
	err = h.users.CreateUser(r.Context(), user)
	if errors.Is(err, store.ErrDuplicateEmail) {
		return httpx.Conflict("Email already exists.")
	}
	if err != nil {
		return httpx.Internal(err)
	}

	h.log.Info(r.Context(), "user registered", "user_id", user.ID)
	httpx.WriteJSON(w, http.StatusCreated, models.MessageResponse{Message: "User registered successfully."})
	return nil
}

// Login checks credentials and issues a bearer token. Unknown email and wrong
// password produce the same response.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) error {
	var req models.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		return err
	}
	if req.Email == "" || req.Password == "" {
		return httpx.Validation("Email and password are required.")
	}

	user, err := h.users.FindUserByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		h.burnCompare(req.Password)
		return httpx.Authentication()
	}
	if err != nil {
		return httpx.Internal(err)
	}

	ok, err := h.hasher.Compare(user.PasswordHash, req.Password)
	if err != nil {
		return httpx.Internal(err)
	}
	if !ok {
		return httpx.Authentication()
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		return httpx.Internal(err)
	}

	httpx.WriteJSON(w, http.StatusOK, models.LoginResponse{Token: token})
	return nil
}

// Logout revokes the token the request was authenticated with.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) error {
	token, ok := TokenFrom(r.Context())
	if !ok {
		return httpx.Unauthorized("token is required for authentication.")
	}
	if err := h.tokens.Revoke(r.Context(), token); err != nil {
		return httpx.Internal(err)
	}

	httpx.WriteJSON(w, http.StatusOK, models.MessageResponse{Message: "Logged out successfully."})
	return nil
}

func (h *Handler) burnCompare(plain string) {
	h.dummyOnce.Do(func() {
		hashed, err := h.hasher.Hash("not-a-real-password")
		if err != nil {
			h.log.Warn(context.Background(), "dummy hash unavailable", "err", err)
			return
		}
		h.dummyHash = hashed
	})
	if h.dummyHash != "" {
		h.hasher.Compare(h.dummyHash, plain)
	}
}
