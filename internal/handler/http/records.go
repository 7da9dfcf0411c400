// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-hybrid-sync/internal/app"
	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
	"github.com/MKhiriev/go-hybrid-sync/internal/utils"
	"github.com/MKhiriev/go-hybrid-sync/models"
	"github.com/go-chi/chi/v5"
)

// insertRecord serves POST /hybrid/records/{table}/{id}.
func (h *Handler) insertRecord(w http.ResponseWriter, r *http.Request) {
	h.writeRecord(w, r, models.OperationInsert, http.StatusCreated)
}

// updateRecord serves PUT /hybrid/records/{table}/{id}.
func (h *Handler) updateRecord(w http.ResponseWriter, r *http.Request) {
	h.writeRecord(w, r, models.OperationUpdate, http.StatusOK)
}

// deleteRecord serves DELETE /hybrid/records/{table}/{id}. The record is
// kept as a tombstone so the delete reaches the cloud.
func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	rec := models.Record{Table: chi.URLParam(r, "table"), ID: chi.URLParam(r, "id")}
	entry, err := h.node.Tracker.RecordWrite(r.Context(), rec, models.OperationDelete)
	if err != nil {
		status := statusFromError(err)
		log.Err(err).Str("func", "*Handler.deleteRecord").Msg("error deleting record")
		http.Error(w, messageFromError(err, status), status)
		return
	}

	utils.WriteJSON(w, entry, http.StatusOK)
}

func (h *Handler) writeRecord(w http.ResponseWriter, r *http.Request, op models.Operation, okStatus int) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var body models.RecordWrite
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		log.Err(err).Str("func", "*Handler.writeRecord").Msg("invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}
	if err := h.node.Validator.Validate(ctx, body); err != nil {
		log.Err(err).Str("func", "*Handler.writeRecord").Msg("record write rejected")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	rec := models.Record{
		Table:   chi.URLParam(r, "table"),
		ID:      chi.URLParam(r, "id"),
		Payload: body.Payload,
	}
	entry, err := h.node.Tracker.RecordWrite(ctx, rec, op)
	if err != nil {
		status := statusFromError(err)
		log.Err(err).Str("func", "*Handler.writeRecord").Str("operation", string(op)).Msg("error writing record")
		http.Error(w, messageFromError(err, status), status)
		return
	}

	utils.WriteJSON(w, entry, okStatus)
}
