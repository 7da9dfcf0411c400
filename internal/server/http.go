// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	defaultRequestTimeout = 30 * time.Second
	shutdownTimeout       = 10 * time.Second
)

type httpServer struct {
	server *http.Server

	mu   sync.Mutex
	addr string

	logger *logger.Logger
}

func newHTTPServer(handler http.Handler, addr string, timeout time.Duration, logger *logger.Logger) *httpServer {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &httpServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           middleware.Timeout(timeout)(handler),
			ReadHeaderTimeout: timeout,
			IdleTimeout:       2 * timeout,
		},
		addr:   addr,
		logger: logger,
	}
}

func (h *httpServer) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", h.server.Addr)
	if err != nil {
		return fmt.Errorf("error listening on %s: %w", h.server.Addr, err)
	}

	h.mu.Lock()
	h.addr = listener.Addr().String()
	h.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info().Str("address", h.Addr()).Msg("launching HTTP server")
		errCh <- h.server.Serve(listener)
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTP server Serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err = h.server.Shutdown(shutdownCtx); err != nil {
		h.logger.Error().Err(err).Msg("HTTP server Shutdown")
		return fmt.Errorf("HTTP server Shutdown: %w", err)
	}
	<-errCh

	h.logger.Info().Msg("HTTP server shut down gracefully")
	return nil
}

func (h *httpServer) Addr() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.addr
}
