// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-hybrid-sync/internal/app"
	"github.com/MKhiriev/go-hybrid-sync/internal/config"
	"github.com/MKhiriev/go-hybrid-sync/internal/service"
	"github.com/MKhiriev/go-hybrid-sync/internal/store"
	"github.com/MKhiriev/go-hybrid-sync/internal/validators"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"already syncing", service.ErrAlreadySyncing, http.StatusConflict},
		{"scheduler stopped", service.ErrSchedulerStopped, http.StatusServiceUnavailable},
		{"backup without space", fmt.Errorf("%w: %w", service.ErrBackup, service.ErrInsufficientSpace), http.StatusInsufficientStorage},
		{"backup lock timeout", fmt.Errorf("%w: %w", service.ErrBackup, service.ErrBackupLockTimeout), http.StatusServiceUnavailable},
		{"backup blocked", fmt.Errorf("%w: %w", service.ErrBackup, service.ErrStorageBlocked), http.StatusServiceUnavailable},
		{"plain backup failure", service.ErrBackup, http.StatusInternalServerError},
		{"invalid push", fmt.Errorf("%w: %w", service.ErrInvalidRequest, validators.ErrEmptyBatch), http.StatusBadRequest},
		{"invalid settings", fmt.Errorf("%w: bad clock", config.ErrInvalidSettings), http.StatusBadRequest},
		{"record not found", store.ErrRecordNotFound, http.StatusNotFound},
		{"out of order revision", store.ErrOutOfOrderRevision, http.StatusConflict},
		{"full disk under storage error", fmt.Errorf("%w: %w", service.ErrStorage, store.ErrStorageFull), http.StatusInsufficientStorage},
		{"corrupt store", fmt.Errorf("%w: %w", service.ErrStorage, store.ErrStorageCorrupt), http.StatusInternalServerError},
		{"query failure", store.ErrExecutingQuery, http.StatusInternalServerError},
		{"retryable query failure", fmt.Errorf("%w: %w", store.ErrExecutingQuery, &pgconn.PgError{Code: pgerrcode.SerializationFailure}), http.StatusServiceUnavailable},
		{"non-retryable pg error", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

func TestMessageFromError(t *testing.T) {
	invalid := fmt.Errorf("%w: record 7", validators.ErrMissingPayload)
	assert.Equal(t, invalid.Error(), messageFromError(invalid, http.StatusBadRequest))

	full := fmt.Errorf("%w: %w", service.ErrStorage, store.ErrStorageFull)
	assert.Equal(t, full.Error(), messageFromError(full, http.StatusInsufficientStorage))

	assert.Equal(t, service.ErrSchedulerStopped.Error(), messageFromError(service.ErrSchedulerStopped, http.StatusServiceUnavailable))

	retryable := &pgconn.PgError{Code: pgerrcode.DeadlockDetected, Message: "deadlock on cloud_changes"}
	assert.Equal(t, app.MsgCloudUnavailable, messageFromError(retryable, http.StatusServiceUnavailable))

	internal := errors.New(`pq: relation "cloud_changes" does not exist`)
	assert.Equal(t, app.MsgInternalServerError, messageFromError(internal, http.StatusInternalServerError))
}
