// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-hybrid-sync/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "hybrid"

// Metrics holds the node's Prometheus collectors.
type Metrics struct {
	online        prometheus.Gauge
	cycles        *prometheus.CounterVec
	cycleDuration prometheus.Histogram
	tables        *prometheus.CounterVec
	changes       *prometheus.CounterVec
	conflicts     *prometheus.CounterVec
	backups       *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		online: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "connectivity_online",
			Help:      "1 when the cloud store is reachable",
		}),
		cycles: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "sync",
			Name:      "cycles_total",
			Help:      "Finished sync cycles by reason and result",
		}, []string{"reason", "result"}),
		cycleDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "sync",
			Name:      "cycle_duration_seconds",
			Help:      "Sync cycle wall time",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		tables: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "sync",
			Name:      "tables_total",
			Help:      "Per-table sync outcomes",
		}, []string{"table", "status"}),
		changes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "sync",
			Name:      "changes_total",
			Help:      "Changes applied by direction (push, pull)",
		}, []string{"direction"}),
		conflicts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "sync",
			Name:      "conflicts_total",
			Help:      "Resolved conflicts by rule and winner",
		}, []string{"rule", "winner"}),
		backups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "backup",
			Name:      "snapshots_total",
			Help:      "Backup attempts by trigger and result",
		}, []string{"trigger", "result"}),
	}
}

// NopMetrics returns collectors registered nowhere.
func NopMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

func (m *Metrics) setOnline(online bool) {
	if online {
		m.online.Set(1)
		return
	}
	m.online.Set(0)
}

func (m *Metrics) observeCycle(cycle models.SyncCycle, aborted bool) {
	result := "ok"
	switch {
	case aborted:
		result = "aborted"
	case cycle.Failed():
		result = "partial"
	}
	m.cycles.WithLabelValues(string(cycle.Reason), result).Inc()
	m.cycleDuration.Observe(cycle.FinishedAt.Sub(cycle.StartedAt).Seconds())

	for _, t := range cycle.Tables {
		m.tables.WithLabelValues(t.Table, string(t.Status)).Inc()
		m.changes.WithLabelValues("push").Add(float64(t.Pushed))
		m.changes.WithLabelValues("pull").Add(float64(t.Pulled))
	}
	for _, c := range cycle.Conflicts {
		m.conflicts.WithLabelValues(string(c.Rule), string(c.Winner)).Inc()
	}
}

func (m *Metrics) observeBackup(trigger models.BackupTrigger, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.backups.WithLabelValues(string(trigger), result).Inc()
}
