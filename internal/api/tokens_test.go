package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/linkdeck/linkdeck/internal/api"
	"github.com/linkdeck/linkdeck/internal/auth"
)

func TestTokens_List_OK(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "alice@example.com", "hunter22hunter22")
	token := seedToken(t, env, user.ID)

	// Create an additional token for the user so there are at least 2.
	_, hash2, _ := auth.GenerateToken()
	_, err := env.TokenStore.Create(context.Background(), user.ID, "second-token", hash2, nil)
	if err != nil {
		t.Fatalf("create second token: %v", err)
	}

	req := httptest.NewRequest("GET", "/tokens", nil)
	authRequest(req, token)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp api.TokenListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Tokens) < 2 {
		t.Errorf("len(tokens) = %d, want >= 2", len(resp.Tokens))
	}
	// The raw body must never carry a hash.
	if strings.Contains(rec.Body.String(), "token_hash") {
		t.Error("response contains token_hash")
	}
}

func TestTokens_List_Unauthenticated(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest("GET", "/tokens", nil)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestTokens_Create_Created(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "alice@example.com", "hunter22hunter22")
	token := seedToken(t, env, user.ID)

	body := `{"name":"my-api-token"}`
	req := httptest.NewRequest("POST", "/tokens", bytes.NewBufferString(body))
	authRequest(req, token)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var resp api.TokenCreatedResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(resp.Token, "ld_") {
		t.Errorf("token = %q, want ld_ prefix", resp.Token)
	}
	if resp.Name != "my-api-token" {
		t.Errorf("name = %q, want %q", resp.Name, "my-api-token")
	}

	// The new token authenticates.
	req = httptest.NewRequest("GET", "/auth/me", nil)
	authRequest(req, resp.Token)
	rec = httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("me with new token: status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestTokens_Create_WithExpiry(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "alice@example.com", "hunter22hunter22")
	token := seedToken(t, env, user.ID)

	body := `{"name":"expiring","expires_in":"720h"}`
	req := httptest.NewRequest("POST", "/tokens", bytes.NewBufferString(body))
	authRequest(req, token)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var resp api.TokenCreatedResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ExpiresAt == nil {
		t.Fatal("expected expires_at to be set")
	}
	if !resp.ExpiresAt.After(time.Now().Add(700 * time.Hour)) {
		t.Errorf("expires_at = %v, want ~30 days out", resp.ExpiresAt)
	}
}

func TestTokens_Create_InvalidExpiry(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "alice@example.com", "hunter22hunter22")
	token := seedToken(t, env, user.ID)

	body := `{"name":"bad","expires_in":"soon"}`
	req := httptest.NewRequest("POST", "/tokens", bytes.NewBufferString(body))
	authRequest(req, token)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestTokens_Revoke_NoContent(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "alice@example.com", "hunter22hunter22")
	keeper := seedToken(t, env, user.ID)

	// Mint a second token to revoke, then confirm it stops authenticating.
	victim, victimHash, _ := auth.GenerateToken()
	rec0, err := env.TokenStore.Create(context.Background(), user.ID, "victim", victimHash, nil)
	if err != nil {
		t.Fatalf("create victim token: %v", err)
	}

	req := httptest.NewRequest("DELETE", "/tokens/"+rec0.ID, nil)
	authRequest(req, keeper)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusNoContent, rec.Body.String())
	}

	req = httptest.NewRequest("GET", "/auth/me", nil)
	authRequest(req, victim)
	rec = httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("revoked token status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestTokens_Revoke_OtherUsersTokenIs404(t *testing.T) {
	env := newTestEnv(t)
	alice := seedUser(t, env, "alice@example.com", "hunter22hunter22")
	mallory := seedUser(t, env, "mallory@example.com", "hunter22hunter22")
	_, aliceHash, _ := auth.GenerateToken()
	aliceRec, err := env.TokenStore.Create(context.Background(), alice.ID, "alice-token", aliceHash, nil)
	if err != nil {
		t.Fatalf("create alice token: %v", err)
	}
	malloryToken := seedToken(t, env, mallory.ID)

	req := httptest.NewRequest("DELETE", "/tokens/"+aliceRec.ID, nil)
	authRequest(req, malloryToken)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
