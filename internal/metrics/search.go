package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and ingestion Prometheus metrics.
var (
	IndexRebuildsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pricedex",
			Name:      "index_rebuilds_total",
			Help:      "Total number of in-memory search index rebuilds",
		},
	)

	IndexDocuments = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pricedex",
			Name:      "index_documents",
			Help:      "Number of records in the current search index",
		},
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "pricedex",
			Name:      "search_duration_seconds",
			Help:      "In-memory fuzzy search duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	IngestRowsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pricedex",
			Name:      "ingest_rows_total",
			Help:      "Total number of price list rows ingested",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(IndexRebuildsTotal)
	prometheus.MustRegister(IndexDocuments)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(IngestRowsTotal)
	searchMetricsRegistered = true
}
