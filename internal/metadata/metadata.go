// Package metadata resolves best-effort title/description/preview-image
// metadata for a URL through an ordered chain of sources. A broken metadata
// source never prevents saving a link, so the chain degrades to empty fields
// instead of failing.
package metadata

import (
	"context"
	"errors"
)

// Metadata describes a URL's content. Every field may be empty.
type Metadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// IsZero reports whether no field was resolved.
func (m Metadata) IsZero() bool {
	return m.Title == "" && m.Description == "" && m.ImageURL == ""
}

// Source is a single resolution strategy in the fallback chain. A Source gets
// exactly one attempt per Resolve call; any error advances the chain.
type Source interface {
	Name() string
	Resolve(ctx context.Context, url string) (Metadata, error)
}

// Resolver produces metadata for a URL. Implementations never fail; they
// degrade to the zero value instead.
type Resolver interface {
	Resolve(ctx context.Context, url string) Metadata
}

// ErrUnconfigured signals that a source has no endpoint configured and
// should be treated as unavailable.
var ErrUnconfigured = errors.New("metadata source not configured")
