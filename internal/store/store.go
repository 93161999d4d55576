package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/linkdeck/linkdeck/internal/metadata"
)

var (
	// ErrNotFound is returned when a requested entity does not exist. Delete
	// returns it both for a missing id and for a record owned by someone
	// else, so callers cannot probe for other users' links.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email is already registered")
)

// LinkStoreIface exposes all link data operations. No handler queries the
// database directly; all access goes through this interface.
type LinkStoreIface interface {
	Create(ctx context.Context, url string, meta metadata.Metadata, ownerID string) (*Link, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Link, error)
	ListByOwnerPage(ctx context.Context, ownerID string, before time.Time, limit int) ([]*Link, error)
	DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error
}

// isUniqueConstraintError checks whether err indicates a unique constraint violation.
// Works across SQLite, PostgreSQL, and MySQL.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || // SQLite & PostgreSQL
		strings.Contains(msg, "duplicate key") || // PostgreSQL
		strings.Contains(msg, "duplicate entry") // MySQL
}
