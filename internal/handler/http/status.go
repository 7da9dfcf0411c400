// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-hybrid-sync/internal/app"
	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
	"github.com/MKhiriev/go-hybrid-sync/internal/utils"
)

// getStatus serves GET /hybrid/status. It never waits for a running cycle.
func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	doc, err := h.node.Status.Status(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.getStatus").Msg("error assembling status document")
		http.Error(w, app.MsgStatusUnavailable, statusFromError(err))
		return
	}

	utils.WriteJSON(w, doc, http.StatusOK)
}
