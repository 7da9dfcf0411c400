// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-hybrid-sync/internal/app"
	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
	"github.com/MKhiriev/go-hybrid-sync/internal/utils"
	"github.com/MKhiriev/go-hybrid-sync/models"
)

// updateConfig serves PUT /hybrid/config. Omitted fields keep their value;
// the scheduler and the backup job pick the change up through the settings
// store subscribers.
func (h *Handler) updateConfig(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var update models.SettingsUpdate
	if err := utils.DecodeJSON(w, r, &update); err != nil {
		log.Err(err).Str("func", "*Handler.updateConfig").Msg("invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	if err := h.node.Validator.Validate(ctx, update); err != nil {
		log.Err(err).Str("func", "*Handler.updateConfig").Msg("settings update rejected")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	settings, err := h.node.Settings.Update(update)
	if err != nil {
		status := statusFromError(err)
		log.Err(err).Str("func", "*Handler.updateConfig").Msg("error saving settings")
		http.Error(w, messageFromError(err, status), status)
		return
	}

	log.Info().Str("func", "*Handler.updateConfig").Interface("settings", settings).Msg("settings updated")
	utils.WriteJSON(w, settings.StatusConfig(), http.StatusOK)
}
