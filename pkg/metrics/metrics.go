// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "talent_matcher"

// Status label values
const (
	StatusSuccess     = "success"
	StatusError       = "error"
	StatusUnavailable = "unavailable"
	StatusSkipped     = "skipped"
	StatusTimeout     = "timeout"
)

var (
	// EmbeddingRequestsTotal counts embedding provider calls by outcome
	EmbeddingRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "embedding",
			Name:      "requests_total",
			Help:      "Total number of embedding provider requests",
		},
		[]string{"status"},
	)

	// EmbeddingDuration tracks provider latency
	EmbeddingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "embedding",
			Name:      "request_duration_seconds",
			Help:      "Latency of embedding provider requests",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// VectorMirrorWritesTotal counts indexed-column mirror writes
	VectorMirrorWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "vector_store",
			Name:      "mirror_writes_total",
			Help:      "Total number of vector column mirror writes",
		},
		[]string{"table", "status"},
	)

	// SearchRequestsTotal counts searches by the method that actually served them
	SearchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"kind", "method"},
	)

	// SearchStageDuration tracks per-stage retrieval latency
	SearchStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "stage_duration_seconds",
			Help:      "Latency of individual retrieval stages",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	// SearchStageFailuresTotal counts retrieval stages that degraded to no results
	SearchStageFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "stage_failures_total",
			Help:      "Total number of retrieval stages that failed and contributed nothing",
		},
		[]string{"stage"},
	)

	// CacheLookupsTotal counts candidate summary cache lookups
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Total number of candidate summary cache lookups",
		},
		[]string{"result"},
	)
)
