// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-hybrid-sync/internal/app"
	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
	"github.com/MKhiriev/go-hybrid-sync/internal/utils"
	"github.com/MKhiriev/go-hybrid-sync/models"
	"github.com/go-chi/chi/v5"
)

// ping serves GET /api/ping. Nodes probe it to decide whether they are
// online, so it checks the central store rather than only the process.
func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	if err := h.cloud.ChangeFeed.Ping(r.Context()); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.ping").Msg("central store is unreachable")
		http.Error(w, app.MsgCloudUnavailable, http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) listTables(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	tables, err := h.cloud.ChangeFeed.Tables(r.Context())
	if err != nil {
		status := statusFromError(err)
		log.Err(err).Str("func", "*Handler.listTables").Msg("error listing tables")
		http.Error(w, messageFromError(err, status), status)
		return
	}

	utils.WriteJSON(w, models.TablesResponse{Tables: tables}, http.StatusOK)
}

// pullChanges serves GET /api/changes/{table}?after=N&limit=M. The caller's
// own entries are left out.
func (h *Handler) pullChanges(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	nodeID, found := utils.GetNodeIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.pullChanges").Msg("no node ID was given")
		http.Error(w, app.MsgNoNodeIDProvided, http.StatusUnauthorized)
		return
	}

	after, err := queryInt(r, "after")
	if err != nil {
		http.Error(w, app.MsgInvalidRevision, http.StatusBadRequest)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		http.Error(w, app.MsgInvalidRevision, http.StatusBadRequest)
		return
	}

	table := chi.URLParam(r, "table")
	resp, err := h.cloud.ChangeFeed.Pull(ctx, nodeID, table, after, int(limit))
	if err != nil {
		status := statusFromError(err)
		log.Err(err).Str("func", "*Handler.pullChanges").Str("table", table).Msg("error reading changes")
		http.Error(w, messageFromError(err, status), status)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

// pushChanges serves POST /api/changes/{table}. The batch is applied in one
// transaction.
func (h *Handler) pushChanges(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	nodeID, found := utils.GetNodeIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.pushChanges").Msg("no node ID was given")
		http.Error(w, app.MsgNoNodeIDProvided, http.StatusUnauthorized)
		return
	}

	var req models.PushRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		log.Err(err).Str("func", "*Handler.pushChanges").Msg("invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	table := chi.URLParam(r, "table")
	resp, err := h.cloud.ChangeFeed.Push(ctx, nodeID, table, req)
	if err != nil {
		status := statusFromError(err)
		log.Err(err).Str("func", "*Handler.pushChanges").Str("table", table).Int("status", status).Msg("push rejected")
		http.Error(w, messageFromError(err, status), status)
		return
	}

	log.Info().Str("func", "*Handler.pushChanges").
		Str("table", table).
		Int("applied", resp.Applied).
		Int64("watermark", resp.Watermark).
		Msg("changes applied")
	utils.WriteJSON(w, resp, http.StatusOK)
}

// queryInt parses a non-negative integer query parameter; a missing one is 0.
func queryInt(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidQueryParam, name, raw)
	}
	return v, nil
}
