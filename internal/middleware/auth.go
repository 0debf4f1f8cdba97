package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ayush/postboard/backend/internal/auth"
	"github.com/ayush/postboard/backend/internal/httpx"
	"github.com/ayush/postboard/backend/internal/logging"
	"github.com/ayush/postboard/backend/internal/models"
)

// TokenVerifier resolves a bearer token to its user.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*models.User, error)
}

// RequireToken rejects requests without a token (401) or with one that does
// not resolve to a user (403). On success the user and token are injected
// into the request context.
func RequireToken(tokens TokenVerifier, log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				httpx.WriteError(w, r, log, httpx.Unauthorized("token is required for authentication."))
				return
			}

			user, err := tokens.Verify(r.Context(), token)
			if err != nil {
				httpx.WriteError(w, r, log, httpx.Forbidden("Invalid or unauthorized token."))
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user, token)))
		})
	}
}

// TokenFromRequest reads the token from the `token` query parameter, then the
// older `apiKey` parameter, then an Authorization bearer header.
func TokenFromRequest(r *http.Request) string {
	q := r.URL.Query()
	if t := q.Get("token"); t != "" {
		return t
	}
	if t := q.Get("apiKey"); t != "" {
		return t
	}
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, t, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(t)
		}
	}
	return ""
}
