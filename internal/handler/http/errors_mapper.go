// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-hybrid-sync/internal/app"
	"github.com/MKhiriev/go-hybrid-sync/internal/config"
	"github.com/MKhiriev/go-hybrid-sync/internal/service"
	"github.com/MKhiriev/go-hybrid-sync/internal/store"
	"github.com/MKhiriev/go-hybrid-sync/internal/validators"
)

type errorStatus struct {
	err    error
	status int
}

// errorStatusMap is ordered: errors wrap several sentinels, the first match
// wins, so specific sentinels come before the general ones they wrap.
var errorStatusMap = []errorStatus{
	{ErrInvalidQueryParam, http.StatusBadRequest},
	{ErrBodyChecksumMismatch, http.StatusBadRequest},

	{service.ErrAlreadySyncing, http.StatusConflict},
	{service.ErrSchedulerStopped, http.StatusServiceUnavailable},
	{service.ErrInsufficientSpace, http.StatusInsufficientStorage},
	{service.ErrBackupLockTimeout, http.StatusServiceUnavailable},
	{service.ErrStorageBlocked, http.StatusServiceUnavailable},
	{service.ErrInvalidRequest, http.StatusBadRequest},
	{service.ErrInvalidRecord, http.StatusBadRequest},

	{validators.ErrInvalidTable, http.StatusBadRequest},
	{validators.ErrInvalidChange, http.StatusBadRequest},
	{validators.ErrEmptyBatch, http.StatusBadRequest},
	{validators.ErrMissingPayload, http.StatusBadRequest},
	{validators.ErrChecksumMismatch, http.StatusBadRequest},
	{validators.ErrRevisionOrder, http.StatusBadRequest},
	{validators.ErrInvalidSettings, http.StatusBadRequest},
	{validators.ErrInvalidRecord, http.StatusBadRequest},
	{config.ErrInvalidSettings, http.StatusBadRequest},

	{store.ErrRecordNotFound, http.StatusNotFound},
	{store.ErrInvalidTable, http.StatusBadRequest},
	{store.ErrOutOfOrderRevision, http.StatusConflict},
	{store.ErrStorageFull, http.StatusInsufficientStorage},

	{service.ErrStorage, http.StatusInternalServerError},
	{service.ErrBackup, http.StatusInternalServerError},

	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
	{store.ErrBeginningTransaction, http.StatusInternalServerError},
	{store.ErrCommitingTransaction, http.StatusInternalServerError},
	{store.ErrExecutingStatement, http.StatusInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError},
	{store.ErrScanningRows, http.StatusInternalServerError},
}

// statusFromError maps err through errorStatusMap. Transient Postgres
// failures that would otherwise be a 500 become a 503 so nodes treat them as
// a connectivity problem and retry.
func statusFromError(err error) int {
	status := http.StatusInternalServerError
	for _, es := range errorStatusMap {
		if errors.Is(err, es.err) {
			status = es.status
			break
		}
	}
	if status == http.StatusInternalServerError && store.IsRetryable(err) {
		return http.StatusServiceUnavailable
	}
	return status
}

// messageFromError returns the text written to the response body. Client
// errors echo the error, server errors are replaced by a generic message.
func messageFromError(err error, status int) string {
	switch {
	case status < http.StatusInternalServerError:
		return err.Error()
	case status == http.StatusInsufficientStorage:
		return err.Error()
	case errors.Is(err, service.ErrSchedulerStopped),
		errors.Is(err, service.ErrBackupLockTimeout),
		errors.Is(err, service.ErrStorageBlocked):
		return err.Error()
	case store.IsRetryable(err):
		return app.MsgCloudUnavailable
	default:
		return app.MsgInternalServerError
	}
}
