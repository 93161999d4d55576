package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/linkdeck/linkdeck/internal/auth"
	"github.com/linkdeck/linkdeck/internal/store"
)

const minPasswordLength = 8

// authAPIHandler provides registration and login handlers.
type authAPIHandler struct {
	users  *store.UserStore
	tokens auth.TokenStore
}

// registerAuthRoutes registers the unauthenticated auth routes on r.
func registerAuthRoutes(r chi.Router, users *store.UserStore, tokens auth.TokenStore) {
	h := &authAPIHandler{users: users, tokens: tokens}
	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)
}

// registerMeRoute registers GET /auth/me on an authenticated router group.
func registerMeRoute(r chi.Router) {
	r.Get("/auth/me", handleMe)
}

// Register creates a user account and returns an initial bearer token.
// POST /api/v1/auth/register
//
// @Summary      Register
// @Description  Creates an account and returns a bearer token for immediate use.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      RegisterRequest  true  "Account to create"
// @Success      201   {object}  AuthResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /auth/register [post]
func (h *authAPIHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		writeError(w, http.StatusBadRequest, "a valid email is required", "BAD_REQUEST")
		return
	}
	if len(req.Password) < minPasswordLength {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters", "BAD_REQUEST")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	user, err := h.users.Create(r.Context(), email, hash)
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "email already registered", "EMAIL_TAKEN")
			return
		}
		log.Printf("api: register %s: %v", email, err)
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	plaintext, err := h.issueToken(r, user.ID)
	if err != nil {
		log.Printf("api: issue token for %s: %v", user.ID, err)
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	writeJSON(w, http.StatusCreated, AuthResponse{Token: plaintext, User: toUserResponse(user)})
}

// Login verifies credentials and returns a fresh bearer token. Unknown email
// and wrong password are indistinguishable in the response.
// POST /api/v1/auth/login
//
// @Summary      Log in
// @Description  Exchanges email and password for a new bearer token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "Credentials"
// @Success      200   {object}  AuthResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /auth/login [post]
func (h *authAPIHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	user, err := h.users.GetByEmail(r.Context(), email)
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid email or password", "UNAUTHORIZED")
		return
	}

	plaintext, err := h.issueToken(r, user.ID)
	if err != nil {
		log.Printf("api: issue token for %s: %v", user.ID, err)
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{Token: plaintext, User: toUserResponse(user)})
}

// issueToken mints a non-expiring token named after the login surface.
func (h *authAPIHandler) issueToken(r *http.Request, userID string) (string, error) {
	plaintext, hash, err := auth.GenerateToken()
	if err != nil {
		return "", err
	}
	if _, err := h.tokens.Create(r.Context(), userID, "login", hash, nil); err != nil {
		return "", err
	}
	return plaintext, nil
}

// handleMe returns the authenticated user.
// GET /api/v1/auth/me
//
// @Summary      Current user
// @Description  Returns the account that owns the presented token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  UserResponse
// @Failure      401  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /auth/me [get]
func handleMe(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "UNAUTHORIZED")
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func toUserResponse(u *store.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}
