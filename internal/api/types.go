package api

import "time"

// --- Link types ---

// CreateLinkRequest is the request body for POST /api/v1/links.
type CreateLinkRequest struct {
	URL string `json:"url"`
}

// LinkResponse is the JSON representation of a single saved link.
type LinkResponse struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// LinkListResponse is the paginated response for GET /api/v1/links.
type LinkListResponse struct {
	Links      []LinkResponse `json:"links"`
	NextCursor *string        `json:"next_cursor"`
}

// --- Auth types ---

// RegisterRequest is the request body for POST /api/v1/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login. Token is the plaintext
// bearer token; it is never returned again.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse is the JSON representation of a user.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// --- Token types ---

// CreateTokenRequest is the request body for POST /api/v1/tokens.
// ExpiresIn is an optional Go duration string, e.g. "720h".
type CreateTokenRequest struct {
	Name      string `json:"name"`
	ExpiresIn string `json:"expires_in,omitempty"`
}

// TokenResponse is the JSON representation of an API token. The token hash is
// never exposed.
type TokenResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	LastUsedAt *time.Time `json:"last_used_at"`
	ExpiresAt  *time.Time `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

// TokenCreatedResponse is returned by POST /api/v1/tokens. Token carries the
// plaintext exactly once.
type TokenCreatedResponse struct {
	TokenResponse
	Token string `json:"token"`
}

// TokenListResponse is the response for GET /api/v1/tokens.
type TokenListResponse struct {
	Tokens []*TokenResponse `json:"tokens"`
}
