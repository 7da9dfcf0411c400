// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-hybrid-sync/internal/config"
	"github.com/MKhiriev/go-hybrid-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateConfig(t *testing.T) {
	f := newNodeFixture(t)

	var notified config.Settings
	f.settings.Subscribe(func(s config.Settings) { notified = s })

	// Act
	rr := f.do(http.MethodPut, "/hybrid/config", `{"sync_interval_minutes":15,"auto_backup":false}`)

	// Assert
	require.Equal(t, http.StatusOK, rr.Code)
	var got models.StatusConfig
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, models.StatusConfig{AutoSync: true, SyncIntervalMinutes: 15, AutoBackup: false, BackupTime: "02:00"}, got)

	assert.Equal(t, 15, f.settings.Get().SyncIntervalMinutes)
	assert.Equal(t, 15, notified.SyncIntervalMinutes)

	reloaded, err := config.LoadSettings(f.settings.Path(), config.Settings{})
	require.NoError(t, err)
	assert.False(t, reloaded.AutoBackup, "settings are persisted")
}

func TestUpdateConfig_Rejected(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed JSON", `{"auto_sync":`},
		{"unknown field", `{"retention":3}`},
		{"interval below minimum", `{"sync_interval_minutes":0}`},
		{"interval above a day", `{"sync_interval_minutes":1441}`},
		{"backup time out of range", `{"backup_time":"25:00"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newNodeFixture(t)

			rr := f.do(http.MethodPut, "/hybrid/config", tt.body)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, 5, f.settings.Get().SyncIntervalMinutes, "settings unchanged")
			assert.Equal(t, "02:00", f.settings.Get().BackupTime)
		})
	}
}
