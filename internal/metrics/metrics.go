package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MetadataResolvesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linkdeck_metadata_resolves_total",
		Help: "Metadata source attempts by source and outcome.",
	}, []string{"source", "outcome"})

	MetadataResolveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "linkdeck_metadata_resolve_duration_seconds",
		Help:    "Time spent in a single metadata source attempt.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})

	LinksCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linkdeck_links_created_total",
		Help: "Links successfully persisted.",
	})

	LinksDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linkdeck_links_deleted_total",
		Help: "Links removed by their owner.",
	})
)
