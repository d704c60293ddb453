// Package metrics provides Prometheus metrics for the document service
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the document pipeline
type Metrics struct {
	// Ingest metrics
	DocumentsIngested *prometheus.CounterVec // by file type
	ChunksIndexed     prometheus.Counter
	IngestDuration    prometheus.Histogram

	// Query metrics
	QuestionsTotal    *prometheus.CounterVec // by outcome: answered, below_threshold
	ExtractionsTotal  *prometheus.CounterVec // by outcome: parsed, fallback
	RetrievalDuration prometheus.Histogram
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates all metrics on the given registerer.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{}

	m.DocumentsIngested = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docintel_documents_ingested_total",
			Help: "Total number of documents parsed and indexed",
		},
		[]string{"type"},
	)

	m.ChunksIndexed = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "docintel_chunks_indexed_total",
			Help: "Total number of chunks embedded and stored",
		},
	)

	m.IngestDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "docintel_ingest_duration_seconds",
			Help:    "Duration of the parse-chunk-embed-store pipeline",
			Buckets: prometheus.DefBuckets,
		},
	)

	m.QuestionsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docintel_questions_total",
			Help: "Total number of questions asked",
		},
		[]string{"outcome"},
	)

	m.ExtractionsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docintel_extractions_total",
			Help: "Total number of structured extractions",
		},
		[]string{"outcome"},
	)

	m.RetrievalDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "docintel_retrieval_duration_seconds",
			Help:    "Duration of similarity searches",
			Buckets: prometheus.DefBuckets,
		},
	)

	return m
}
