package metrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jo-hoe/thumbnorm/internal/thumbnail"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("failed to read counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{err: nil, expected: "ok"},
		{err: &thumbnail.ParamError{Op: "Normalize", Err: thumbnail.ErrMissingWidth}, expected: "missing_width"},
		{err: fmt.Errorf("wrapped: %w", thumbnail.ErrNonPositiveWidth), expected: "non_positive_width"},
		{err: thumbnail.ErrNonPositiveSourceWidth, expected: "non_positive_source_width"},
		{err: thumbnail.ErrInvalidParameters, expected: "invalid_parameters"},
		{err: errors.New("boom"), expected: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := NormalizeStatus(tt.err); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRecordNormalize(t *testing.T) {
	before := counterValue(t, NormalizeTotal.WithLabelValues("missing_width"))
	RecordNormalize(thumbnail.ErrMissingWidth)
	after := counterValue(t, NormalizeTotal.WithLabelValues("missing_width"))
	if after != before+1 {
		t.Errorf("Expected counter to increase by 1, got %v -> %v", before, after)
	}
}

func TestRecordRenderCache(t *testing.T) {
	before := counterValue(t, RenderCacheTotal.WithLabelValues("hit"))
	RecordRenderCache(true)
	if got := counterValue(t, RenderCacheTotal.WithLabelValues("hit")); got != before+1 {
		t.Errorf("Expected hit counter %v, got %v", before+1, got)
	}
}
