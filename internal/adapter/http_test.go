// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-hybrid-sync/internal/config"
	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
	"github.com/MKhiriev/go-hybrid-sync/internal/utils"
	"github.com/MKhiriev/go-hybrid-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testTokenKey    = "node-token-key"
	testTokenIssuer = "go-hybrid-sync"
)

// newTestAdapter creates an httpCloudAdapter pointed at the test server.
func newTestAdapter(t *testing.T, serverURL string) *httpCloudAdapter {
	t.Helper()
	adapterCfg := config.NodeAdapter{HTTPAddress: serverURL, RequestTimeout: 2 * time.Second}
	appCfg := config.NodeApp{
		NodeID:        "clinic-07",
		TokenKey:      testTokenKey,
		TokenIssuer:   testTokenIssuer,
		TokenDuration: time.Hour,
	}

	a, err := NewHTTPCloudAdapter(adapterCfg, appCfg, logger.Nop())
	require.NoError(t, err)
	return a.(*httpCloudAdapter)
}

// requireNodeToken asserts the request carries a valid token for clinic-07.
func requireNodeToken(t *testing.T, r *http.Request) {
	t.Helper()
	raw, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
	require.NoError(t, err)
	token, err := utils.ValidateNodeToken(raw, testTokenKey, testTokenIssuer)
	require.NoError(t, err)
	assert.Equal(t, "clinic-07", token.NodeID)
}

// ── constructor ──────────────────────────────────────────────────────────────

func TestNewHTTPCloudAdapter_InvalidAddress(t *testing.T) {
	_, err := NewHTTPCloudAdapter(config.NodeAdapter{HTTPAddress: "  "}, config.NodeApp{}, logger.Nop())
	require.Error(t, err)
}

func TestNormalizeBaseURL(t *testing.T) {
	got, err := normalizeBaseURL("cloud.example.org:8080/")
	require.NoError(t, err)
	assert.Equal(t, "http://cloud.example.org:8080", got)

	got, err = normalizeBaseURL("https://cloud.example.org")
	require.NoError(t, err)
	assert.Equal(t, "https://cloud.example.org", got)
}

// ── Ping ─────────────────────────────────────────────────────────────────────

func TestPing_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ping", r.URL.Path)
		assert.Equal(t, "clinic-07", r.Header.Get("X-Node-ID"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL).Ping(context.Background())

	require.NoError(t, err)
}

func TestPing_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := newTestAdapter(t, url).Ping(context.Background())

	require.ErrorIs(t, err, ErrTransport)
	assert.True(t, IsUnreachable(err))
}

func TestPing_ServiceUnavailableIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL).Ping(context.Background())

	require.ErrorIs(t, err, ErrUnavailable)
	assert.True(t, IsUnreachable(err))
	assert.Equal(t, int32(1), calls.Load())
}

// ── ListTables ───────────────────────────────────────────────────────────────

func TestListTables_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tables", r.URL.Path)
		requireNodeToken(t, r)
		_, _ = utils.WriteJSON(w, models.TablesResponse{Tables: []string{"cases", "visits"}}, http.StatusOK)
	}))
	defer srv.Close()

	tables, err := newTestAdapter(t, srv.URL).ListTables(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"cases", "visits"}, tables)
}

func TestListTables_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("invalid token"))
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).ListTables(context.Background())

	require.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, IsUnreachable(err))
}

// ── PullChanges ──────────────────────────────────────────────────────────────

func TestPullChanges_Success(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	want := models.ChangesResponse{
		Table: "cases",
		Changes: []models.ChangeEntry{
			{Table: "cases", RecordID: "1", Operation: models.OperationUpdate, Revision: 4, Origin: models.OriginCloud, Timestamp: now, Payload: json.RawMessage(`{"v":1}`)},
		},
		HighWatermark: 4,
		HasMore:       true,
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/changes/cases", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("after"))
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		requireNodeToken(t, r)
		_, _ = utils.WriteJSON(w, want, http.StatusOK)
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).PullChanges(context.Background(), "cases", 3, 100)

	require.NoError(t, err)
	assert.Equal(t, want.HighWatermark, got.HighWatermark)
	assert.True(t, got.HasMore)
	require.Len(t, got.Changes, 1)
	assert.Equal(t, "1", got.Changes[0].RecordID)
	assert.True(t, now.Equal(got.Changes[0].Timestamp))
}

func TestPullChanges_RetriesGatewayFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = utils.WriteJSON(w, models.ChangesResponse{Table: "cases", HighWatermark: 9}, http.StatusOK)
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).PullChanges(context.Background(), "cases", 0, 10)

	require.NoError(t, err)
	assert.Equal(t, int64(9), got.HighWatermark)
	assert.Equal(t, int32(2), calls.Load())
}

// ── PushChanges ──────────────────────────────────────────────────────────────

func TestPushChanges_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/changes/cases", r.URL.Path)
		requireNodeToken(t, r)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, utils.BodyChecksum(body), r.Header.Get(utils.BodyChecksumHeader))

		var req models.PushRequest
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, int64(7), req.BaseRevision)
		assert.Len(t, req.Changes, 2)

		_, _ = utils.WriteJSON(w, models.PushResponse{Table: "cases", Applied: 2, Watermark: 9}, http.StatusOK)
	}))
	defer srv.Close()

	req := models.PushRequest{
		BaseRevision: 7,
		Changes: []models.ChangeEntry{
			{Table: "cases", RecordID: "1", Operation: models.OperationInsert, Revision: 1, Origin: models.OriginLocal, Timestamp: time.Now()},
			{Table: "cases", RecordID: "2", Operation: models.OperationDelete, Revision: 2, Origin: models.OriginLocal, Timestamp: time.Now()},
		},
	}
	got, err := newTestAdapter(t, srv.URL).PushChanges(context.Background(), "cases", req)

	require.NoError(t, err)
	assert.Equal(t, 2, got.Applied)
	assert.Equal(t, int64(9), got.Watermark)
}

func TestPushChanges_BadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("invalid batch"))
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).PushChanges(context.Background(), "cases", models.PushRequest{})

	require.ErrorIs(t, err, ErrBadRequest)
	assert.Contains(t, err.Error(), "invalid batch")
}

// ── node token ───────────────────────────────────────────────────────────────

func TestNodeToken_Cached(t *testing.T) {
	a := newTestAdapter(t, "http://localhost:1")

	first, err := a.nodeToken()
	require.NoError(t, err)
	second, err := a.nodeToken()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNodeToken_MissingKey(t *testing.T) {
	a := newTestAdapter(t, "http://localhost:1")
	a.app.TokenKey = ""

	_, err := a.nodeToken()

	require.ErrorIs(t, err, ErrUnauthorized)
}
