// Copyright 2025 Kadir Pekel
//
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

package manager

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes the Mind Engine's Prometheus gauges and counters: one
// registry per process, shared across every agent's Store.
type Metrics struct {
	registry *prometheus.Registry

	activeAgents      prometheus.Gauge
	dreamsTotal       *prometheus.CounterVec
	learningsPruned   *prometheus.CounterVec
	logsTotal         *prometheus.CounterVec
	learningsApproved *prometheus.GaugeVec
	learningsPending  *prometheus.GaugeVec
	logCount          *prometheus.GaugeVec
}

// NewMetrics creates and registers the Mind Engine's metric
// collectors against a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.activeAgents = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "mind",
		Name:      "active_agents",
		Help:      "Number of agents with an open mind store.",
	})

	m.dreamsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mind",
		Name:      "dreams_total",
		Help:      "Total dream cycles run, labeled by agent.",
	}, []string{"agent_id"})

	m.learningsPruned = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mind",
		Name:      "learnings_pruned_total",
		Help:      "Total approved learnings pruned by decay, labeled by agent.",
	}, []string{"agent_id"})

	m.logsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mind",
		Name:      "logs_total",
		Help:      "Total behavioral log entries written, labeled by agent and category.",
	}, []string{"agent_id", "category"})

	m.learningsApproved = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "mind",
		Name:      "learnings_approved",
		Help:      "Approved learnings as of the last dashboard snapshot, labeled by agent.",
	}, []string{"agent_id"})

	m.learningsPending = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "mind",
		Name:      "learnings_pending",
		Help:      "Pending learnings as of the last dashboard snapshot, labeled by agent.",
	}, []string{"agent_id"})

	m.logCount = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "mind",
		Name:      "log_count",
		Help:      "Log entry count over the dashboard window, labeled by agent.",
	}, []string{"agent_id"})

	m.registry.MustRegister(
		m.activeAgents, m.dreamsTotal, m.learningsPruned, m.logsTotal,
		m.learningsApproved, m.learningsPending, m.logCount,
	)

	return m
}

// Registry returns the underlying Prometheus registry for an HTTP
// exposition handler to serve.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// SetActiveAgents updates the active-agents gauge.
func (m *Metrics) SetActiveAgents(n int) {
	m.activeAgents.Set(float64(n))
}

// RecordDream increments the per-agent dream counter and the pruned
// counter by the number of learnings removed in that cycle.
func (m *Metrics) RecordDream(agentID string, pruned int) {
	m.dreamsTotal.WithLabelValues(agentID).Inc()
	if pruned > 0 {
		m.learningsPruned.WithLabelValues(agentID).Add(float64(pruned))
	}
}

// RecordLog increments the per-agent, per-category log counter.
func (m *Metrics) RecordLog(agentID, category string) {
	m.logsTotal.WithLabelValues(agentID, category).Inc()
}

// SetDashboardGauges updates the approved/pending learning and log-count
// gauges from a freshly built DashboardSnapshot.
func (m *Metrics) SetDashboardGauges(agentID string, approved, pending, logCount int) {
	m.learningsApproved.WithLabelValues(agentID).Set(float64(approved))
	m.learningsPending.WithLabelValues(agentID).Set(float64(pending))
	m.logCount.WithLabelValues(agentID).Set(float64(logCount))
}
