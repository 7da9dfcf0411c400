// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// InitNode returns the operator API router.
func (h *Handler) InitNode() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging)

	// promhttp negotiates its own compression
	router.Get("/metrics", h.metrics.ServeHTTP)
	router.Get("/api/version", h.getVersion)

	router.Group(func(r chi.Router) {
		r.Use(withGZip)

		r.Get("/hybrid/status", h.getStatus)
		r.Post("/hybrid/sync", h.requestSync)
		r.Post("/hybrid/backup", h.createBackup)
		r.Get("/hybrid/backups", h.listBackups)
		r.Put("/hybrid/config", h.updateConfig)

		r.Post("/hybrid/records/{table}/{id}", h.insertRecord)
		r.Put("/hybrid/records/{table}/{id}", h.updateRecord)
		r.Delete("/hybrid/records/{table}/{id}", h.deleteRecord)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

// InitCloud returns the change-feed API router.
func (h *Handler) InitCloud() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/ping", h.ping)
		r.Get("/api/version", h.getVersion)
		r.Get("/metrics", h.metrics.ServeHTTP)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.nodeAuth, withGZip)

		r.Get("/api/tables", h.listTables)
		r.Get("/api/changes/{table}", h.pullChanges)
		r.With(h.verifyBodyChecksum).Post("/api/changes/{table}", h.pushChanges)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
