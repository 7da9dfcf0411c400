// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-hybrid-sync/internal/config"
	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
	"github.com/MKhiriev/go-hybrid-sync/internal/mock"
	"github.com/MKhiriev/go-hybrid-sync/internal/service"
	"github.com/MKhiriev/go-hybrid-sync/internal/utils"
	"github.com/MKhiriev/go-hybrid-sync/internal/validators"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testVersion     = "1.4.0"
	testTokenKey    = "node-token-key"
	testTokenIssuer = "go-hybrid-sync"
)

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

// ── Node fixture ─────────────────────────────────────────────────────────────

type nodeFixture struct {
	router    *chi.Mux
	registry  *prometheus.Registry
	status    *mock.MockStatusReporter
	scheduler *mock.MockSyncScheduler
	backups   *mock.MockBackupManager
	tracker   *mock.MockChangeTracker
	settings  *config.SettingsStore
}

func newNodeFixture(t *testing.T) nodeFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	settings, err := config.NewSettingsStore(filepath.Join(t.TempDir(), "config", "settings.json"), config.Settings{
		AutoSync: true, SyncIntervalMinutes: 5, AutoBackup: true, BackupTime: "02:00",
	})
	require.NoError(t, err)

	f := nodeFixture{
		registry:  prometheus.NewRegistry(),
		status:    mock.NewMockStatusReporter(ctrl),
		scheduler: mock.NewMockSyncScheduler(ctrl),
		backups:   mock.NewMockBackupManager(ctrl),
		tracker:   mock.NewMockChangeTracker(ctrl),
		settings:  settings,
	}
	services := &service.NodeServices{
		Tracker:   f.tracker,
		Scheduler: f.scheduler,
		Backups:   f.backups,
		Status:    f.status,
		Settings:  settings,
		Validator: validators.NewChangeValidator(),
	}
	f.router = NewNodeHandler(services, f.registry, testVersion, logger.Nop()).InitNode()
	return f
}

func (f nodeFixture) do(method, target, body string) *httptest.ResponseRecorder {
	return serve(f.router, method, target, body, nil)
}

// ── Cloud fixture ────────────────────────────────────────────────────────────

type cloudFixture struct {
	router *chi.Mux
	feed   *mock.MockChangeFeedService
}

func newCloudFixture(t *testing.T) cloudFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := cloudFixture{feed: mock.NewMockChangeFeedService(ctrl)}
	cfg := &config.CloudConfig{TokenKey: testTokenKey, TokenIssuer: testTokenIssuer, Version: testVersion}
	f.router = NewCloudHandler(&service.CloudServices{ChangeFeed: f.feed}, cfg, prometheus.NewRegistry(), logger.Nop()).InitCloud()
	return f
}

// do sends an authenticated request as nodeID; an empty nodeID sends none.
func (f cloudFixture) do(t *testing.T, nodeID, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	headers := map[string]string{}
	if nodeID != "" {
		headers["Authorization"] = "Bearer " + nodeToken(t, nodeID, time.Hour)
	}
	return serve(f.router, method, target, body, headers)
}

func nodeToken(t *testing.T, nodeID string, ttl time.Duration) string {
	t.Helper()
	token, err := utils.GenerateNodeToken(testTokenIssuer, nodeID, ttl, testTokenKey)
	require.NoError(t, err)
	return token.SignedString
}

func serve(h http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
