// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "midnightlaundry"

var (
	// PreviewsGeneratedTotal tracks completed preview generation runs.
	// Labels:
	//   - kind: audio, video
	//   - outcome: success, failure
	PreviewsGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "previews_generated_total",
			Help:      "Total number of preview generation runs",
		},
		[]string{"kind", "outcome"},
	)

	// PreviewStageDuration tracks how long each pipeline stage takes.
	// Labels:
	//   - kind: audio, video
	//   - stage: fetch, decode, encode, upload, probe, grab, render
	PreviewStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "preview_stage_duration_seconds",
			Help:      "Duration of preview pipeline stages in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 14),
		},
		[]string{"kind", "stage"},
	)

	// CacheOperationsTotal tracks cache operations (get, set, delete).
	// Labels:
	//   - operation: get, set, delete
	//   - status: hit, miss, success, error
	//   - cache_type: redis
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Total number of cache operations",
		},
		[]string{"operation", "status", "cache_type"},
	)

	// SingleflightRequestsTotal tracks singleflight behavior.
	// Labels:
	//   - result: initiated (new execution), shared (reused result)
	SingleflightRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "singleflight_requests_total",
			Help:      "Total number of singleflight requests",
		},
		[]string{"result"},
	)
)

// Preview kind constants.
const (
	PreviewKindAudio = "audio"
	PreviewKindVideo = "video"
)

// Preview outcome constants.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Pipeline stage constants.
const (
	StageFetch  = "fetch"
	StageDecode = "decode"
	StageEncode = "encode"
	StageUpload = "upload"
	StageProbe  = "probe"
	StageGrab   = "grab"
	StageRender = "render"
)

// Cache operation status constants.
const (
	CacheStatusHit     = "hit"
	CacheStatusMiss    = "miss"
	CacheStatusSuccess = "success"
	CacheStatusError   = "error"
)

// Cache operation type constants.
const (
	CacheOpGet    = "get"
	CacheOpSet    = "set"
	CacheOpDelete = "delete"
)

// Cache type constants.
const (
	CacheTypeRedis = "redis"
)

// Singleflight result constants.
const (
	SingleflightInitiated = "initiated"
	SingleflightShared    = "shared"
)
