// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-hybrid-sync/internal/config"
	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
	"github.com/MKhiriev/go-hybrid-sync/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler serves one of the two HTTP surfaces: the node operator API when
// built with NewNodeHandler, or the cloud change-feed API when built with
// NewCloudHandler.
type Handler struct {
	node  *service.NodeServices
	cloud *service.CloudServices

	metrics     http.Handler
	tokenKey    string
	tokenIssuer string
	version     string

	logger *logger.Logger
}

// NewNodeHandler builds the operator API handler. Collectors in gatherer are
// exposed on /metrics.
func NewNodeHandler(services *service.NodeServices, gatherer prometheus.Gatherer, version string, logger *logger.Logger) *Handler {
	logger.Info().Msg("node http handler created")
	return &Handler{
		node:    services,
		metrics: promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
		version: version,
		logger:  logger,
	}
}

// NewCloudHandler builds the change-feed API handler. Node tokens are
// verified with cfg.TokenKey and cfg.TokenIssuer.
func NewCloudHandler(services *service.CloudServices, cfg *config.CloudConfig, gatherer prometheus.Gatherer, logger *logger.Logger) *Handler {
	logger.Info().Msg("cloud http handler created")
	return &Handler{
		cloud:       services,
		metrics:     promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
		tokenKey:    cfg.TokenKey,
		tokenIssuer: cfg.TokenIssuer,
		version:     cfg.Version,
		logger:      logger,
	}
}
