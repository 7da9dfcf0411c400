// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-hybrid-sync/internal/config"
	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
	"github.com/MKhiriev/go-hybrid-sync/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNodeHandlers(t *testing.T) {
	h, err := NewNodeHandlers(&service.NodeServices{}, config.NodeServer{HTTPAddress: ":8080"},
		prometheus.NewRegistry(), "1.0.0", logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, h.HTTP)
	assert.False(t, h.cloud)
}

func TestNewNodeHandlers_NoAddress(t *testing.T) {
	h, err := NewNodeHandlers(&service.NodeServices{}, config.NodeServer{}, prometheus.NewRegistry(), "1.0.0", logger.Nop())

	require.ErrorIs(t, err, errNoHandlersAreCreated)
	assert.Nil(t, h)
}

func TestNewCloudHandlers(t *testing.T) {
	h, err := NewCloudHandlers(&service.CloudServices{}, &config.CloudConfig{HTTPAddress: ":8081"},
		prometheus.NewRegistry(), logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, h.HTTP)
	assert.True(t, h.cloud)
}

func TestNewCloudHandlers_NoAddress(t *testing.T) {
	_, err := NewCloudHandlers(&service.CloudServices{}, &config.CloudConfig{}, prometheus.NewRegistry(), logger.Nop())

	require.ErrorIs(t, err, errNoHandlersAreCreated)
}

// The node router serves /hybrid/*; the cloud router does not.
func TestHandlers_Router(t *testing.T) {
	node, err := NewNodeHandlers(&service.NodeServices{}, config.NodeServer{HTTPAddress: ":8080"},
		prometheus.NewRegistry(), "1.0.0", logger.Nop())
	require.NoError(t, err)
	cloud, err := NewCloudHandlers(&service.CloudServices{}, &config.CloudConfig{HTTPAddress: ":8081", Version: "1.0.0"},
		prometheus.NewRegistry(), logger.Nop())
	require.NoError(t, err)

	tests := []struct {
		name     string
		handlers *Handlers
		target   string
		want     int
	}{
		{"node version", node, "/api/version", nethttp.StatusOK},
		{"cloud version", cloud, "/api/version", nethttp.StatusOK},
		{"cloud has no operator api", cloud, "/hybrid/backups", nethttp.StatusNotFound},
		{"node has no change feed", node, "/api/tables", nethttp.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.handlers.Router().ServeHTTP(w, httptest.NewRequest(nethttp.MethodGet, tt.target, nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
