// Copyright 2025 SpecForge
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus metrics
var (
	promRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "specforge_requests_total",
			Help: "Total number of API requests processed",
		},
		[]string{"endpoint", "status"},
	)
	promRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "specforge_request_duration_milliseconds",
			Help:    "Request duration in milliseconds",
			Buckets: []float64{10, 50, 100, 200, 500, 1000, 2000, 5000, 10000, 30000},
		},
		[]string{"endpoint"},
	)
	promArtifactsExtracted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "specforge_artifacts_extracted_total",
			Help: "Total number of artifacts extracted from generation transcripts",
		},
	)
	promArchivesBuilt = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "specforge_archives_built_total",
			Help: "Total number of artifact archives built",
		},
	)
	promGenerationJobs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "specforge_generation_jobs_total",
			Help: "Total number of generation jobs by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(promRequestsTotal)
	prometheus.MustRegister(promRequestDuration)
	prometheus.MustRegister(promArtifactsExtracted)
	prometheus.MustRegister(promArchivesBuilt)
	prometheus.MustRegister(promGenerationJobs)
}

// serviceMetrics tracks in-process counters for the JSON /metrics
// endpoint. Prometheus metrics cover the scrape path; this endpoint
// serves dashboards that want a single JSON document.
type serviceMetrics struct {
	mu              sync.RWMutex
	startTime       time.Time
	totalRequests   int64
	successRequests int64
	failedRequests  int64
	latencies       []int64
}

func newServiceMetrics() *serviceMetrics {
	return &serviceMetrics{
		startTime: time.Now(),
		latencies: make([]int64, 0, 1000),
	}
}

func (m *serviceMetrics) record(latencyMs int64, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalRequests++
	if success {
		m.successRequests++
	} else {
		m.failedRequests++
	}
	if len(m.latencies) >= 1000 {
		m.latencies = m.latencies[1:]
	}
	m.latencies = append(m.latencies, latencyMs)
}

func (m *serviceMetrics) snapshot() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	uptime := time.Since(m.startTime).Seconds()
	successRate := float64(100.0)
	if m.totalRequests > 0 {
		successRate = float64(m.successRequests) * 100.0 / float64(m.totalRequests)
	}

	return map[string]interface{}{
		"uptime_seconds":   uptime,
		"total_requests":   m.totalRequests,
		"success_requests": m.successRequests,
		"failed_requests":  m.failedRequests,
		"success_rate":     successRate,
		"avg_latency_ms":   average(m.latencies),
		"p95_latency_ms":   percentile(m.latencies, 0.95),
		"p99_latency_ms":   percentile(m.latencies, 0.99),
	}
}

func percentile(timings []int64, p float64) float64 {
	if len(timings) == 0 {
		return 0
	}
	sorted := make([]int64, len(timings))
	copy(sorted, timings)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}
	return float64(sorted[index])
}

func average(timings []int64) float64 {
	if len(timings) == 0 {
		return 0
	}
	sum := int64(0)
	for _, t := range timings {
		sum += t
	}
	return float64(sum) / float64(len(timings))
}
