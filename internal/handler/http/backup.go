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

// createBackup serves POST /hybrid/backup.
func (h *Handler) createBackup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	snapshot, err := h.node.Backups.CreateBackup(r.Context(), models.BackupTriggerManual)
	if err != nil {
		status := statusFromError(err)
		log.Err(err).Str("func", "*Handler.createBackup").Int("status", status).Msg(app.MsgBackupFailed)
		utils.WriteJSON(w, models.BackupResult{Success: false, Message: err.Error()}, status)
		return
	}

	utils.WriteJSON(w, models.BackupResult{
		Success: true,
		Message: app.MsgBackupCreated,
		Backup:  &snapshot,
	}, http.StatusCreated)
}

// listBackups serves GET /hybrid/backups, newest first.
func (h *Handler) listBackups(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	backups, err := h.node.Backups.List(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.listBackups").Msg("error listing backups")
		http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return
	}
	if backups == nil {
		backups = []models.BackupSnapshot{}
	}

	utils.WriteJSON(w, backups, http.StatusOK)
}
