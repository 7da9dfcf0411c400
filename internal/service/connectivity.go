// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-hybrid-sync/internal/adapter"
	"github.com/MKhiriev/go-hybrid-sync/internal/config"
	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
)

const (
	defaultProbeInterval = 30 * time.Second
	defaultDebounce      = 2
)

type connectivityMonitor struct {
	cloud    adapter.CloudAdapter
	interval time.Duration
	debounce int

	mu          sync.Mutex
	online      bool
	streak      int
	onReconnect []func()

	metrics *Metrics
	logger  *logger.Logger
}

// NewConnectivityMonitor returns a monitor that starts offline and needs
// cfg.Debounce consecutive probes disagreeing with the current state to flip
// it.
func NewConnectivityMonitor(cloud adapter.CloudAdapter, cfg config.NodeConnectivity, metrics *Metrics, logger *logger.Logger) ConnectivityMonitor {
	interval := cfg.ProbeInterval
	if interval <= 0 {
		interval = defaultProbeInterval
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	metrics.setOnline(false)
	return &connectivityMonitor{
		cloud:    cloud,
		interval: interval,
		debounce: debounce,
		metrics:  metrics,
		logger:   logger,
	}
}

func (m *connectivityMonitor) IsOnline() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

func (m *connectivityMonitor) OnReconnect(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onReconnect = append(m.onReconnect, fn)
}

func (m *connectivityMonitor) Run(ctx context.Context) error {
	t := time.NewTicker(m.interval)
	defer t.Stop()

	for {
		m.probe(ctx)

		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
}

// probe pings the cloud once and feeds the result into the debouncer.
func (m *connectivityMonitor) probe(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, m.interval)
	err := m.cloud.Ping(pctx)
	cancel()

	if ctx.Err() != nil {
		return
	}
	if err != nil {
		m.logger.Debug().Err(err).Str("func", "connectivityMonitor.probe").Msg("cloud probe failed")
	}

	for _, fn := range m.observe(err == nil) {
		fn()
	}
}

// observe updates the debounced state and returns the reconnect callbacks to
// run when the state has just flipped to online.
func (m *connectivityMonitor) observe(reachable bool) []func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if reachable == m.online {
		m.streak = 0
		return nil
	}

	m.streak++
	if m.streak < m.debounce {
		return nil
	}

	m.online = reachable
	m.streak = 0
	m.metrics.setOnline(reachable)

	if !reachable {
		m.logger.Warn().Str("func", "connectivityMonitor.observe").Msg("cloud store went offline")
		return nil
	}
	m.logger.Info().Str("func", "connectivityMonitor.observe").Msg("cloud store is back online")
	return append([]func(){}, m.onReconnect...)
}
