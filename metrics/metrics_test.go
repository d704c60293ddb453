package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewWithCounts(t *testing.T) {
	m := NewWith(prometheus.NewRegistry())

	m.DocumentsIngested.WithLabelValues("pdf").Inc()
	m.DocumentsIngested.WithLabelValues("pdf").Inc()
	m.ChunksIndexed.Add(12)
	m.QuestionsTotal.WithLabelValues("answered").Inc()
	m.QuestionsTotal.WithLabelValues("below_threshold").Inc()
	m.ExtractionsTotal.WithLabelValues("parsed").Inc()
	m.ExtractionsTotal.WithLabelValues("fallback").Inc()
	m.IngestDuration.Observe(0.25)
	m.RetrievalDuration.Observe(0.02)

	if got := testutil.ToFloat64(m.DocumentsIngested.WithLabelValues("pdf")); got != 2 {
		t.Errorf("documents ingested = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.ChunksIndexed); got != 12 {
		t.Errorf("chunks indexed = %v, want 12", got)
	}
	if got := testutil.ToFloat64(m.QuestionsTotal.WithLabelValues("answered")); got != 1 {
		t.Errorf("questions answered = %v, want 1", got)
	}
}

func TestNewWithSeparateRegistries(t *testing.T) {
	// Each instance registers on its own registry, so building two must
	// not collide.
	NewWith(prometheus.NewRegistry())
	NewWith(prometheus.NewRegistry())
}
