// Package metrics provides Prometheus metrics for thumbnail normalization and rendering.
package metrics

import (
	"errors"

	"github.com/jo-hoe/thumbnorm/internal/thumbnail"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// NormalizeTotal counts normalization attempts by outcome.
	NormalizeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "thumbnorm",
			Name:      "normalize_total",
			Help:      "Total number of thumbnail parameter normalizations",
		},
		[]string{"status"},
	)

	// RenderCacheTotal counts render cache lookups.
	RenderCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "thumbnorm",
			Name:      "render_cache_total",
			Help:      "Total number of render cache lookups",
		},
		[]string{"result"},
	)

	// RenderDuration measures thumbnail rendering duration.
	RenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "thumbnorm",
			Name:      "render_duration_seconds",
			Help:      "Duration of thumbnail renderings in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"mime_type"},
	)
)

// NormalizeStatus maps a normalization error to its metric label.
func NormalizeStatus(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, thumbnail.ErrMissingWidth):
		return "missing_width"
	case errors.Is(err, thumbnail.ErrNonPositiveWidth):
		return "non_positive_width"
	case errors.Is(err, thumbnail.ErrNonPositiveSourceWidth):
		return "non_positive_source_width"
	case errors.Is(err, thumbnail.ErrInvalidParameters):
		return "invalid_parameters"
	default:
		return "error"
	}
}

// RecordNormalize records the outcome of a normalization.
func RecordNormalize(err error) {
	NormalizeTotal.WithLabelValues(NormalizeStatus(err)).Inc()
}

// RecordRenderCache records a render cache hit or miss.
func RecordRenderCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	RenderCacheTotal.WithLabelValues(result).Inc()
}

// RecordRender records the duration of a rendering.
func RecordRender(mimeType string, seconds float64) {
	RenderDuration.WithLabelValues(mimeType).Observe(seconds)
}
