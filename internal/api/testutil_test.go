package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/linkdeck/linkdeck/internal/api"
	"github.com/linkdeck/linkdeck/internal/auth"
	"github.com/linkdeck/linkdeck/internal/ingest"
	"github.com/linkdeck/linkdeck/internal/metadata"
	"github.com/linkdeck/linkdeck/internal/store"
	"github.com/linkdeck/linkdeck/internal/testutil"
)

// testEnv holds all stores and helpers needed for API integration tests.
type testEnv struct {
	Router     http.Handler
	LinkStore  *store.LinkStore
	UserStore  *store.UserStore
	TokenStore *auth.SQLTokenStore
}

// newTestEnv creates an in-memory SQLite test database, runs migrations,
// and wires up the full API router with real stores. The resolver is built
// from the given metadata sources; no sources means every link is created
// with empty metadata and no outbound requests.
func newTestEnv(t *testing.T, sources ...metadata.Source) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)

	ls := store.NewLinkStore(db)
	us := store.NewUserStore(db)
	ts := auth.NewSQLTokenStore(db)

	resolver := metadata.NewChainResolver(time.Second, sources...)
	svc := ingest.New(resolver, ls)
	bearerMW := auth.NewBearerTokenMiddleware(ts, us)

	router := api.NewAPIRouter(api.Deps{
		BearerAuth: bearerMW,
		Ingest:     svc,
		LinkStore:  ls,
		UserStore:  us,
		TokenStore: ts,
	})
	return &testEnv{
		Router:     router,
		LinkStore:  ls,
		UserStore:  us,
		TokenStore: ts,
	}
}

// seedUser creates a user with a real bcrypt hash and returns the record.
func seedUser(t *testing.T, env *testEnv, email, password string) *store.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u, err := env.UserStore.Create(context.Background(), email, hash)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// seedToken creates a real API token for a user and returns the plaintext Bearer value.
func seedToken(t *testing.T, env *testEnv, userID string) string {
	t.Helper()
	plaintext, hash, err := auth.GenerateToken()
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	_, err = env.TokenStore.Create(context.Background(), userID, "test-token", hash, nil)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	return plaintext
}

// authRequest adds a Bearer token to the request.
func authRequest(r *http.Request, token string) *http.Request {
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}
