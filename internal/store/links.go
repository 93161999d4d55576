package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/linkdeck/linkdeck/internal/metadata"
)

// Link represents a row in the links table. Records are immutable after
// creation: there is no update operation, only delete.
type Link struct {
	ID          string    `db:"id"`
	OwnerID     string    `db:"owner_id"`
	URL         string    `db:"url"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	ImageURL    string    `db:"image_url"`
	CreatedAt   time.Time `db:"created_at"`
}

// LinkStore is the sqlx-backed implementation of LinkStoreIface.
type LinkStore struct {
	db *sqlx.DB
}

func NewLinkStore(db *sqlx.DB) *LinkStore {
	return &LinkStore{db: db}
}

// q rebinds ? placeholders to the driver's native format ($1,$2,... for PostgreSQL).
func (s *LinkStore) q(query string) string { return s.db.Rebind(query) }

// Create inserts a new link owned by ownerID. The id and created_at are
// assigned here; metadata fields are stored as-is, empty strings included.
func (s *LinkStore) Create(ctx context.Context, url string, meta metadata.Metadata, ownerID string) (*Link, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO links (id, owner_id, url, title, description, image_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), id, ownerID, url, meta.Title, meta.Description, meta.ImageURL, now)
	if err != nil {
		return nil, err
	}

	return s.getByID(ctx, id)
}

func (s *LinkStore) getByID(ctx context.Context, id string) (*Link, error) {
	var l Link
	err := s.db.GetContext(ctx, &l, s.q(`SELECT * FROM links WHERE id = ?`), id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// ListByOwner returns all links owned by ownerID, newest first.
func (s *LinkStore) ListByOwner(ctx context.Context, ownerID string) ([]*Link, error) {
	var links []*Link
	err := s.db.SelectContext(ctx, &links, s.q(`
		SELECT * FROM links WHERE owner_id = ? ORDER BY created_at DESC
	`), ownerID)
	if err != nil {
		return nil, err
	}
	return links, nil
}

// ListByOwnerPage returns up to limit links owned by ownerID created strictly
// before the given cursor time, newest first. A zero before means "from the top".
func (s *LinkStore) ListByOwnerPage(ctx context.Context, ownerID string, before time.Time, limit int) ([]*Link, error) {
	if limit <= 0 {
		limit = 50
	}

	var links []*Link
	var err error
	if before.IsZero() {
		err = s.db.SelectContext(ctx, &links, s.q(`
			SELECT * FROM links WHERE owner_id = ?
			ORDER BY created_at DESC LIMIT ?
		`), ownerID, limit)
	} else {
		err = s.db.SelectContext(ctx, &links, s.q(`
			SELECT * FROM links WHERE owner_id = ? AND created_at < ?
			ORDER BY created_at DESC LIMIT ?
		`), ownerID, before, limit)
	}
	if err != nil {
		return nil, err
	}
	return links, nil
}

// DeleteByIDAndOwner removes the link only when both id and owner match.
// Zero rows affected reports ErrNotFound whether the id is unknown or the
// record belongs to another user, and nothing is mutated.
func (s *LinkStore) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error {
	res, err := s.db.ExecContext(ctx, s.q(`
		DELETE FROM links WHERE id = ? AND owner_id = ?
	`), id, ownerID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
