// Package ingest orchestrates link creation: validate the URL, resolve
// metadata best-effort, persist the record under the owning user.
package ingest

import (
	"context"
	"fmt"

	"github.com/linkdeck/linkdeck/internal/metadata"
	"github.com/linkdeck/linkdeck/internal/metrics"
	"github.com/linkdeck/linkdeck/internal/store"
)

// Service is the link ingestion pipeline. Resolution strictly precedes
// persistence within a call, and independent calls share no mutable state.
type Service struct {
	resolver metadata.Resolver
	links    store.LinkStoreIface
}

func New(resolver metadata.Resolver, links store.LinkStoreIface) *Service {
	return &Service{resolver: resolver, links: links}
}

// AddLink saves rawURL for ownerID and returns the stored record with its
// assigned id and created_at. A malformed URL fails fast with
// store.ErrURLInvalid before any network or storage work. Metadata failures
// never block creation; a link saved with no preview is still a success. The
// only other failure mode is a storage error, which propagates unchanged.
func (s *Service) AddLink(ctx context.Context, rawURL, ownerID string) (*store.Link, error) {
	if err := store.ValidateURL(rawURL); err != nil {
		return nil, err
	}

	meta := s.resolver.Resolve(ctx, rawURL)

	link, err := s.links.Create(ctx, rawURL, meta, ownerID)
	if err != nil {
		return nil, fmt.Errorf("create link: %w", err)
	}

	metrics.LinksCreatedTotal.Inc()
	return link, nil
}
