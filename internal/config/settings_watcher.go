// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
	"github.com/fsnotify/fsnotify"
)

const settingsReloadDebounce = 200 * time.Millisecond

// SettingsWatcher reloads a [SettingsStore] when its file changes on disk.
//
// The parent directory is watched rather than the file itself so that
// atomic replace-by-rename from editors and [SaveSettings] is observed.
type SettingsWatcher struct {
	store  *SettingsStore
	logger *logger.Logger
}

// NewSettingsWatcher creates a watcher for store.
func NewSettingsWatcher(store *SettingsStore, log *logger.Logger) *SettingsWatcher {
	return &SettingsWatcher{store: store, logger: log}
}

// Run blocks until ctx is cancelled, reloading the store on file events.
func (w *SettingsWatcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating settings watcher: %w", err)
	}
	defer fsw.Close()

	dir := filepath.Dir(w.store.Path())
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("error watching settings dir: %w", err)
	}

	target := filepath.Clean(w.store.Path())
	var debounce *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(settingsReloadDebounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})
		case <-reload:
			changed, err := w.store.Reload()
			if err != nil {
				w.logger.Warn().Err(err).Str("func", "SettingsWatcher.Run").Msg("settings file ignored")
				continue
			}
			if changed {
				w.logger.Info().Str("func", "SettingsWatcher.Run").Interface("settings", w.store.Get()).Msg("settings reloaded")
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Err(err).Str("func", "SettingsWatcher.Run").Msg("settings watcher error")
		}
	}
}
