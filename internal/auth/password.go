package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Hasher hashes passwords one way and checks candidates against a hash.
type Hasher interface {
	Hash(plain string) (string, error)
	// Compare reports a mismatch as (false, nil).
	Compare(hash, plain string) (bool, error)
}

// BcryptHasher is a Hasher with a fixed work factor.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h *BcryptHasher) Compare(hash, plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword), errors.Is(err, bcrypt.ErrPasswordTooLong):
		return false, nil
	default:
		return false, err
	}
}
