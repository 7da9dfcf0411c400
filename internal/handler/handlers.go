// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	nethttp "net/http"

	"github.com/MKhiriev/go-hybrid-sync/internal/config"
	"github.com/MKhiriev/go-hybrid-sync/internal/handler/http"
	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
	"github.com/MKhiriev/go-hybrid-sync/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

// Handlers holds the transport handlers of one process role.
type Handlers struct {
	HTTP *http.Handler

	cloud bool
}

// NewNodeHandlers builds the operator API handlers of a field node.
func NewNodeHandlers(services *service.NodeServices, cfg config.NodeServer, gatherer prometheus.Gatherer, version string, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new node handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{HTTP: http.NewNodeHandler(services, gatherer, version, logger)}, nil
}

// NewCloudHandlers builds the change-feed API handlers of the cloud store.
func NewCloudHandlers(services *service.CloudServices, cfg *config.CloudConfig, gatherer prometheus.Gatherer, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new cloud handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{HTTP: http.NewCloudHandler(services, cfg, gatherer, logger), cloud: true}, nil
}

// Router returns the HTTP router matching the role the handlers were built for.
func (h *Handlers) Router() nethttp.Handler {
	if h.cloud {
		return h.HTTP.InitCloud()
	}
	return h.HTTP.InitNode()
}
