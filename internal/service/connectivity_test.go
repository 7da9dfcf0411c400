// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-hybrid-sync/internal/adapter"
	"github.com/MKhiriev/go-hybrid-sync/internal/config"
	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
	"github.com/MKhiriev/go-hybrid-sync/internal/mock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestMonitor(t *testing.T, cfg config.NodeConnectivity) (*connectivityMonitor, *mock.MockCloudAdapter, *Metrics) {
	ctrl := gomock.NewController(t)
	cloud := mock.NewMockCloudAdapter(ctrl)
	metrics := NopMetrics()
	m := NewConnectivityMonitor(cloud, cfg, metrics, logger.Nop()).(*connectivityMonitor)
	return m, cloud, metrics
}

// ── Debounce ─────────────────────────────────────────────────────────────────

func TestConnectivityMonitor_StartsOffline(t *testing.T) {
	m, _, metrics := newTestMonitor(t, config.NodeConnectivity{})

	assert.False(t, m.IsOnline())
	assert.Equal(t, defaultProbeInterval, m.interval)
	assert.Equal(t, defaultDebounce, m.debounce)
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.online))
}

func TestConnectivityMonitor_Debounce(t *testing.T) {
	m, _, metrics := newTestMonitor(t, config.NodeConnectivity{Debounce: 2})

	var reconnects int
	m.OnReconnect(func() { reconnects++ })

	// one success is not enough
	assert.Empty(t, m.observe(true))
	assert.False(t, m.IsOnline())

	// a failure resets the streak
	assert.Empty(t, m.observe(false))
	assert.Empty(t, m.observe(true))
	assert.False(t, m.IsOnline())

	// the second consecutive success flips the state and fires callbacks
	for _, fn := range m.observe(true) {
		fn()
	}
	assert.True(t, m.IsOnline())
	assert.Equal(t, 1, reconnects)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.online))

	// staying online does not fire again
	assert.Empty(t, m.observe(true))

	// going offline needs the same streak and fires nothing
	assert.Empty(t, m.observe(false))
	assert.True(t, m.IsOnline())
	assert.Empty(t, m.observe(false))
	assert.False(t, m.IsOnline())
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.online))
	assert.Equal(t, 1, reconnects)
}

func TestConnectivityMonitor_DebounceOfOne(t *testing.T) {
	m, _, _ := newTestMonitor(t, config.NodeConnectivity{Debounce: 1})

	fns := m.observe(true)

	assert.True(t, m.IsOnline())
	assert.Empty(t, fns, "no callbacks registered")
}

// ── Probe loop ───────────────────────────────────────────────────────────────

func TestConnectivityMonitor_Run(t *testing.T) {
	m, cloud, _ := newTestMonitor(t, config.NodeConnectivity{ProbeInterval: 5 * time.Millisecond, Debounce: 2})

	var reconnected atomic.Bool
	m.OnReconnect(func() { reconnected.Store(true) })

	gomock.InOrder(
		cloud.EXPECT().Ping(gomock.Any()).Return(fmt.Errorf("%w: refused", adapter.ErrTransport)),
		cloud.EXPECT().Ping(gomock.Any()).Return(nil).MinTimes(2),
	)

	ctx, cancel := context.WithCancel(testContext())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	require.Eventually(t, reconnected.Load, 2*time.Second, 5*time.Millisecond)
	assert.True(t, m.IsOnline())

	cancel()
	require.NoError(t, <-done)
}

func TestConnectivityMonitor_ProbeHasDeadline(t *testing.T) {
	m, cloud, _ := newTestMonitor(t, config.NodeConnectivity{ProbeInterval: time.Second, Debounce: 1})

	cloud.EXPECT().Ping(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		assert.True(t, ok)
		return nil
	})

	m.probe(testContext())

	assert.True(t, m.IsOnline())
}
