// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
	"github.com/MKhiriev/go-hybrid-sync/internal/utils"
	"github.com/MKhiriev/go-hybrid-sync/models"
)

// requestSync serves POST /hybrid/sync. The cycle runs in the background:
// 202 means it was started or queued, 409 that one is already running.
func (h *Handler) requestSync(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	result, err := h.node.Scheduler.RequestSync(models.SyncReasonManual)
	if err != nil {
		log.Warn().Err(err).Str("func", "*Handler.requestSync").Msg("manual sync rejected")
		utils.WriteJSON(w, result, statusFromError(err))
		return
	}

	log.Info().Str("func", "*Handler.requestSync").Msg(result.Message)
	utils.WriteJSON(w, result, http.StatusAccepted)
}
