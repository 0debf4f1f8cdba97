package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ayush/postboard/backend/internal/models"
)

const (
	// Scheme tags every token this service issues.
	Scheme = "mern"

	nonceBytes        = 16
	minSecretBytes    = 32
	legacyDelimiter   = "-"
	legacyFieldCount  = 4
	legacyNonceLength = nonceBytes * 2
)

var ErrMalformedToken = errors.New("malformed token")

// Claims is what a decoded token asserts. ExpiresAt is zero for tokens that
// never expire.
type Claims struct {
	UserID    string
	Email     string
	Nonce     string
	ExpiresAt time.Time
}

// Codec turns a user into an opaque bearer token and back.
type Codec interface {
	Encode(u *models.User) (string, error)
	Decode(token string) (Claims, error)
}

func newNonce() (string, error) {
	b := make([]byte, nonceBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read nonce: %w", err)
	}
	return hex.EncodeToString(b), nil
}

type jwtClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SignedCodec issues HS256 JWTs: iss is the scheme tag, sub the user id,
// jti the nonce. The email rides inside the signed payload.
type SignedCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSignedCodec(secret []byte, ttl time.Duration) (*SignedCodec, error) {
	if len(secret) < minSecretBytes {
		return nil, fmt.Errorf("token secret must be at least %d bytes", minSecretBytes)
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	return &SignedCodec{secret: secret, ttl: ttl, now: time.Now}, nil
}

func (c *SignedCodec) Encode(u *models.User) (string, error) {
	nonce, err := newNonce()
	if err != nil {
		return "", err
	}
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Scheme,
			Subject:   u.ID,
			ID:        nonce,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	})
	return token.SignedString(c.secret)
}

func (c *SignedCodec) Decode(token string) (Claims, error) {
	claims := &jwtClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Scheme),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return Claims{}, err
	}
	if claims.Subject == "" || claims.Email == "" || claims.ID == "" {
		return Claims{}, ErrMalformedToken
	}
	return Claims{
		UserID:    claims.Subject,
		Email:     claims.Email,
		Nonce:     claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// LegacyCodec speaks the first-generation `mern-<id>-<email>-<hex>` format. It is
// unsigned and never expires. Ids or emails containing the delimiter produce
// tokens that cannot be decoded.
type LegacyCodec struct{}

func (LegacyCodec) Encode(u *models.User) (string, error) {
	nonce, err := newNonce()
	if err != nil {
		return "", err
	}
	return strings.Join([]string{Scheme, u.ID, u.Email, nonce}, legacyDelimiter), nil
}

func (LegacyCodec) Decode(token string) (Claims, error) {
	parts := strings.Split(token, legacyDelimiter)
	if len(parts) != legacyFieldCount {
		return Claims{}, ErrMalformedToken
	}
	scheme, id, email, nonce := parts[0], parts[1], parts[2], parts[3]
	if scheme != Scheme || id == "" || email == "" || len(nonce) != legacyNonceLength {
		return Claims{}, ErrMalformedToken
	}
	if _, err := hex.DecodeString(nonce); err != nil {
		return Claims{}, ErrMalformedToken
	}
	return Claims{UserID: id, Email: email, Nonce: nonce}, nil
}
