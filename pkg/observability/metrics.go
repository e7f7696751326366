// Package observability holds the process wide metrics and tracer
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cdecl_parse_seconds",
		Help:    "Time spent parsing one source.",
		Buckets: prometheus.DefBuckets,
	}, []string{"result"})

	ItemsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cdecl_items_total",
		Help: "Total number of declaration items emitted, by kind.",
	}, []string{"kind"})

	LinesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cdecl_lines_total",
		Help: "Total number of source lines read.",
	})

	UnmatchedTextTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cdecl_unmatched_text_total",
		Help: "Total number of parses aborted on text no pattern could consume.",
	})
)
