package metadata

import (
	"context"
	"log"
	"time"

	"github.com/linkdeck/linkdeck/internal/metrics"
)

// DefaultTimeout bounds a single source attempt when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// ChainResolver tries each source in order and returns the first result that
// arrives without error, even when all of its fields are empty. Sources get
// exactly one attempt each, with no retries, and run strictly sequentially,
// so a Resolve call issues at most len(sources) outbound requests. When every
// source fails the zero Metadata is returned.
type ChainResolver struct {
	sources []Source
	timeout time.Duration
}

// NewChainResolver builds a resolver over sources in fallback order.
func NewChainResolver(timeout time.Duration, sources ...Source) *ChainResolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ChainResolver{sources: sources, timeout: timeout}
}

// Resolve never fails. Each stage is bounded by the configured timeout so a
// hung source cannot stall the pipeline.
func (r *ChainResolver) Resolve(ctx context.Context, url string) Metadata {
	for _, src := range r.sources {
		stageCtx, cancel := context.WithTimeout(ctx, r.timeout)
		start := time.Now()
		meta, err := src.Resolve(stageCtx, url)
		metrics.MetadataResolveDuration.Observe(time.Since(start).Seconds())
		cancel()

		if err != nil {
			metrics.MetadataResolvesTotal.WithLabelValues(src.Name(), "error").Inc()
			log.Printf("metadata: %s source failed for %s: %v", src.Name(), url, err)
			continue
		}

		metrics.MetadataResolvesTotal.WithLabelValues(src.Name(), "ok").Inc()
		return meta
	}

	metrics.MetadataResolvesTotal.WithLabelValues("none", "exhausted").Inc()
	return Metadata{}
}
