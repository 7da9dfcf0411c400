// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
	"github.com/MKhiriev/go-hybrid-sync/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthHandler() *Handler {
	return &Handler{tokenKey: testTokenKey, tokenIssuer: testTokenIssuer, logger: logger.Nop()}
}

func TestNodeAuth(t *testing.T) {
	foreign, err := utils.GenerateNodeToken("someone-else", "node-a", time.Hour, testTokenKey)
	require.NoError(t, err)
	wrongKey, err := utils.GenerateNodeToken(testTokenIssuer, "node-a", time.Hour, "another-key")
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantNodeID string
	}{
		{"valid token", "Bearer " + nodeToken(t, "node-a", time.Hour), http.StatusOK, "node-a"},
		{"lowercase scheme", "bearer " + nodeToken(t, "node-b", time.Hour), http.StatusOK, "node-b"},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"no token", "Bearer", http.StatusUnauthorized, ""},
		{"basic scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, ""},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized, ""},
		{"expired token", "Bearer " + nodeToken(t, "node-a", -time.Minute), http.StatusUnauthorized, ""},
		{"foreign issuer", "Bearer " + foreign.SignedString, http.StatusUnauthorized, ""},
		{"wrong signing key", "Bearer " + wrongKey.SignedString, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotNodeID string
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotNodeID, _ = utils.GetNodeIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/tables", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			newAuthHandler().nodeAuth(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, nextCalled)
			assert.Equal(t, tt.wantNodeID, gotNodeID)
		})
	}
}

func TestNodeAuth_DoesNotMutateOriginalRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/tables", nil)
	req.Header.Set("Authorization", "Bearer "+nodeToken(t, "node-a", time.Hour))

	newAuthHandler().nodeAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).
		ServeHTTP(httptest.NewRecorder(), req)

	_, found := utils.GetNodeIDFromContext(req.Context())
	assert.False(t, found)
}
