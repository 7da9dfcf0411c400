// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"time"

	"github.com/MKhiriev/go-hybrid-sync/internal/handler"
	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
)

// NewServer creates the HTTP server for handlers listening on addr. Every
// request is bounded by requestTimeout; zero selects the default.
func NewServer(handlers *handler.Handlers, addr string, requestTimeout time.Duration, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || addr == "" {
		return nil, errNoServersAreCreated
	}

	return newHTTPServer(handlers.Router(), addr, requestTimeout, logger), nil
}
