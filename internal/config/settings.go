// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/MKhiriev/go-hybrid-sync/models"
)

// Settings is the operator-editable subset of the node configuration,
// persisted at config/settings.json under the local data path.
type Settings struct {
	AutoSync            bool   `json:"auto_sync"`
	SyncIntervalMinutes int    `json:"sync_interval_minutes"`
	AutoBackup          bool   `json:"auto_backup"`
	BackupTime          string `json:"backup_time"`
}

// Validate checks the interval range and the "HH:MM" backup time.
func (s Settings) Validate() error {
	if s.SyncIntervalMinutes < 1 || s.SyncIntervalMinutes > 24*60 {
		return fmt.Errorf("%w: sync_interval_minutes must be in 1..1440, got %d", ErrInvalidSettings, s.SyncIntervalMinutes)
	}
	if _, err := ParseClock(s.BackupTime); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return nil
}

// Apply returns a copy of s with the non-nil fields of u applied.
func (s Settings) Apply(u models.SettingsUpdate) Settings {
	if u.AutoSync != nil {
		s.AutoSync = *u.AutoSync
	}
	if u.SyncIntervalMinutes != nil {
		s.SyncIntervalMinutes = *u.SyncIntervalMinutes
	}
	if u.AutoBackup != nil {
		s.AutoBackup = *u.AutoBackup
	}
	if u.BackupTime != nil {
		s.BackupTime = *u.BackupTime
	}
	return s
}

// StatusConfig converts the settings into the status panel view.
func (s Settings) StatusConfig() models.StatusConfig {
	return models.StatusConfig{
		AutoSync:            s.AutoSync,
		SyncIntervalMinutes: s.SyncIntervalMinutes,
		AutoBackup:          s.AutoBackup,
		BackupTime:          s.BackupTime,
	}
}

// LoadSettings reads the settings file at path. Fields missing from the file
// keep the value from defaults. A missing file is created from defaults.
func LoadSettings(path string, defaults Settings) (Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return defaults, SaveSettings(path, defaults)
	}
	if err != nil {
		return Settings{}, fmt.Errorf("error reading settings file: %w", err)
	}

	s := defaults
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}

	return s, s.Validate()
}

// SaveSettings writes s to path atomically (temp file and rename).
func SaveSettings(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating settings dir: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding settings: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".settings-*.json")
	if err != nil {
		return fmt.Errorf("error creating temp settings file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error closing settings: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("error replacing settings file: %w", err)
	}
	return nil
}

// SettingsStore holds the current runtime settings and notifies subscribers
// when they change, either through Update or a reload from disk.
type SettingsStore struct {
	path string

	mu          sync.RWMutex
	current     Settings
	subscribers []func(Settings)
}

// NewSettingsStore loads the settings file and returns a store around it.
func NewSettingsStore(path string, defaults Settings) (*SettingsStore, error) {
	s, err := LoadSettings(path, defaults)
	if err != nil {
		return nil, err
	}
	return &SettingsStore{path: path, current: s}, nil
}

// Path returns the settings file path.
func (s *SettingsStore) Path() string {
	return s.path
}

// Get returns the current settings.
func (s *SettingsStore) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe registers fn to be called with every new settings value.
func (s *SettingsStore) Subscribe(fn func(Settings)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Update validates and persists u on top of the current settings.
func (s *SettingsStore) Update(u models.SettingsUpdate) (Settings, error) {
	s.mu.Lock()
	next := s.current.Apply(u)
	if err := next.Validate(); err != nil {
		s.mu.Unlock()
		return s.current, err
	}
	if err := SaveSettings(s.path, next); err != nil {
		s.mu.Unlock()
		return s.current, err
	}
	s.current = next
	subs := append([]func(Settings){}, s.subscribers...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return next, nil
}

// Reload re-reads the file; an unchanged or invalid file is ignored.
func (s *SettingsStore) Reload() (bool, error) {
	s.mu.Lock()
	next, err := LoadSettings(s.path, s.current)
	if err != nil {
		s.mu.Unlock()
		return false, err
	}
	if next == s.current {
		s.mu.Unlock()
		return false, nil
	}
	s.current = next
	subs := append([]func(Settings){}, s.subscribers...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return true, nil
}
