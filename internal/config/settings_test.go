// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
	"github.com/MKhiriev/go-hybrid-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultTestSettings() Settings {
	return Settings{AutoSync: true, SyncIntervalMinutes: 5, AutoBackup: true, BackupTime: "02:00"}
}

func TestLoadSettings_CreatesMissingFile(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "config", "settings.json")

	// Act
	s, err := LoadSettings(path, defaultTestSettings())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, defaultTestSettings(), s)
	assert.FileExists(t, path)
}

func TestLoadSettings_PartialFileKeepsDefaults(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"auto_sync": false}`), 0o600))

	// Act
	s, err := LoadSettings(path, defaultTestSettings())

	// Assert
	require.NoError(t, err)
	assert.False(t, s.AutoSync)
	assert.Equal(t, 5, s.SyncIntervalMinutes)
	assert.Equal(t, "02:00", s.BackupTime)
}

func TestLoadSettings_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"sync_interval_minutes": 0}`), 0o600))

	_, err := LoadSettings(path, defaultTestSettings())
	assert.ErrorIs(t, err, ErrInvalidSettings)
}

func TestSettingsStore_UpdatePersistsAndNotifies(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "settings.json")
	store, err := NewSettingsStore(path, defaultTestSettings())
	require.NoError(t, err)

	var got Settings
	store.Subscribe(func(s Settings) { got = s })

	interval := 15
	backupTime := "03:30"

	// Act
	updated, err := store.Update(models.SettingsUpdate{SyncIntervalMinutes: &interval, BackupTime: &backupTime})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 15, updated.SyncIntervalMinutes)
	assert.Equal(t, updated, got)
	assert.Equal(t, updated, store.Get())

	onDisk, err := LoadSettings(path, Settings{})
	require.NoError(t, err)
	assert.Equal(t, updated, onDisk)
}

func TestSettingsStore_UpdateRejectsInvalid(t *testing.T) {
	store, err := NewSettingsStore(filepath.Join(t.TempDir(), "settings.json"), defaultTestSettings())
	require.NoError(t, err)

	bad := "7pm"
	current, err := store.Update(models.SettingsUpdate{BackupTime: &bad})

	assert.ErrorIs(t, err, ErrInvalidSettings)
	assert.Equal(t, defaultTestSettings(), current)
}

func TestSettingsStore_ReloadDetectsChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	store, err := NewSettingsStore(path, defaultTestSettings())
	require.NoError(t, err)

	changed, err := store.Reload()
	require.NoError(t, err)
	assert.False(t, changed)

	require.NoError(t, SaveSettings(path, Settings{AutoSync: false, SyncIntervalMinutes: 1, AutoBackup: false, BackupTime: "00:00"}))
	changed, err = store.Reload()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 1, store.Get().SyncIntervalMinutes)
}

func TestSettingsWatcher_ReloadsOnWrite(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "settings.json")
	store, err := NewSettingsStore(path, defaultTestSettings())
	require.NoError(t, err)

	var notified atomic.Int32
	store.Subscribe(func(Settings) { notified.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = NewSettingsWatcher(store, logger.Nop()).Run(ctx)
	}()
	time.Sleep(100 * time.Millisecond)

	// Act
	next := defaultTestSettings()
	next.AutoSync = false
	require.NoError(t, SaveSettings(path, next))

	// Assert
	require.Eventually(t, func() bool { return !store.Get().AutoSync }, 3*time.Second, 20*time.Millisecond)
	assert.GreaterOrEqual(t, notified.Load(), int32(1))

	cancel()
	<-done
}
