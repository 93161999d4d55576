package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/linkdeck/linkdeck/internal/store"
)

type contextKey string

// UserContextKey is the request-context key under which the authenticated
// *store.User is stored.
const UserContextKey contextKey = "user"

// UserFromContext returns the authenticated user, or nil outside an
// authenticated request.
func UserFromContext(ctx context.Context) *store.User {
	u, _ := ctx.Value(UserContextKey).(*store.User)
	return u
}

// BearerTokenMiddleware authenticates requests via an opaque Bearer token.
// The token's identity resolution is the only authentication mechanism; there
// are no cookies or ambient sessions.
type BearerTokenMiddleware struct {
	tokens TokenStore
	users  *store.UserStore
}

// NewBearerTokenMiddleware creates a new BearerTokenMiddleware.
func NewBearerTokenMiddleware(ts TokenStore, us *store.UserStore) *BearerTokenMiddleware {
	return &BearerTokenMiddleware{tokens: ts, users: us}
}

// Authenticate is an http.Handler middleware that extracts and validates a
// Bearer token. A valid token injects the owning *store.User into the request
// context and fires an async last_used_at update. A missing, unknown, revoked,
// or expired token gets 401 before any downstream work runs.
func (m *BearerTokenMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			writeUnauthorized(w)
			return
		}
		plaintext := strings.TrimPrefix(authHeader, "Bearer ")
		if plaintext == "" {
			writeUnauthorized(w)
			return
		}

		// Hash the plaintext token and look it up.
		hash := HashToken(plaintext)
		rec, err := m.tokens.GetByHash(r.Context(), hash)
		if err != nil {
			writeUnauthorized(w)
			return
		}

		if rec.RevokedAt.Valid {
			writeUnauthorized(w)
			return
		}

		if rec.ExpiresAt.Valid && rec.ExpiresAt.Time.Before(time.Now()) {
			writeUnauthorized(w)
			return
		}

		user, err := m.users.GetByID(r.Context(), rec.UserID)
		if err != nil {
			writeUnauthorized(w)
			return
		}

		// Update last_used_at asynchronously to avoid write overhead on every read.
		go m.tokens.UpdateLastUsed(context.Background(), rec.ID)

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// writeUnauthorized writes a 401 JSON response with {"error": "unauthorized"}.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
}
