/*
 * Copyright (c) 2025, Riskdesk (https://riskdesk.io).
 *
 * Riskdesk licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the Prometheus instruments for the scoring path.
type Collector struct {
	registry *prometheus.Registry

	RiskScoreDistribution prometheus.Histogram
	EvaluationDuration    prometheus.Histogram
	HeuristicFallbacks    prometheus.Counter
	MalformedConditions   prometheus.Counter
	RescoreRuns           prometheus.Counter
}

var (
	collector *Collector
	once      sync.Once
)

// GetCollector returns the singleton metrics collector.
func GetCollector() *Collector {
	once.Do(func() {
		registry := prometheus.NewRegistry()
		collector = &Collector{
			registry: registry,
			RiskScoreDistribution: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
				Name:    "risk_score_distribution",
				Help:    "Distribution of computed item risk scores",
				Buckets: []float64{0, 20, 40, 60, 80, 100},
			}),
			EvaluationDuration: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
				Name:    "risk_evaluation_duration_seconds",
				Help:    "Time taken to evaluate the rule set against an item",
				Buckets: prometheus.DefBuckets,
			}),
			HeuristicFallbacks: promauto.With(registry).NewCounter(prometheus.CounterOpts{
				Name: "risk_heuristic_fallback_total",
				Help: "Evaluations that fell back to the fixed heuristic because no active rules existed",
			}),
			MalformedConditions: promauto.With(registry).NewCounter(prometheus.CounterOpts{
				Name: "risk_malformed_condition_total",
				Help: "Stored rule conditions that failed to decode and were replaced by the safe default",
			}),
			RescoreRuns: promauto.With(registry).NewCounter(prometheus.CounterOpts{
				Name: "risk_rescore_runs_total",
				Help: "Background rescore runs triggered by rule mutations",
			}),
		}
	})
	return collector
}

// Handler exposes the registry for the /metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
