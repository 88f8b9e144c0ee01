package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aio_analyses_total",
			Help: "Total number of analysis runs by report status",
		},
		[]string{"status"},
	)

	KeywordsAnalyzed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aio_keywords_analyzed_total",
			Help: "Total number of keyword records analyzed",
		},
	)

	OverviewsFound = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aio_overviews_found_total",
			Help: "Total number of keyword results carrying an AI Overview",
		},
	)

	MalformedRecords = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aio_malformed_records_total",
			Help: "Total number of result records that could not be decoded",
		},
	)

	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "aio_analysis_duration_seconds",
			Help: "Duration of the extraction and aggregation pass in seconds",
		},
	)

	SerpFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "aio_serp_fetch_duration_seconds",
			Help:    "Duration of a single SERP provider call in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
	)

	SerpFetchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aio_serp_fetch_failures_total",
			Help: "Total number of failed SERP provider calls by reason",
		},
		[]string{"reason"},
	)

	RecordCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aio_record_cache_lookups_total",
			Help: "Record cache lookups by result",
		},
		[]string{"result"},
	)
)

// Fetch failure reasons
const (
	ReasonTimeout   = "timeout"
	ReasonStatus    = "provider_status"
	ReasonTransport = "transport"
	ReasonDecode    = "decode"
)

// Cache lookup results
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)
