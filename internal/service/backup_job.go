// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-hybrid-sync/internal/config"
	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
	"github.com/MKhiriev/go-hybrid-sync/models"
)

// BackupJob takes the daily scheduled backup at the configured local time.
type BackupJob struct {
	backups  BackupManager
	settings func() config.Settings
	changed  chan struct{}
	now      func() time.Time

	logger *logger.Logger
}

// NewBackupJob creates a job reading its schedule from settings on every
// iteration. It is idle until Run is called.
func NewBackupJob(backups BackupManager, settings *config.SettingsStore, logger *logger.Logger) *BackupJob {
	j := &BackupJob{
		backups:  backups,
		settings: settings.Get,
		changed:  make(chan struct{}, 1),
		now:      time.Now,
		logger:   logger,
	}
	settings.Subscribe(func(config.Settings) { j.Reschedule() })
	return j
}

// Reschedule makes a running job recompute its next fire time.
func (j *BackupJob) Reschedule() {
	select {
	case j.changed <- struct{}{}:
	default:
	}
}

// Run blocks until ctx is cancelled.
func (j *BackupJob) Run(ctx context.Context) error {
	for {
		s := j.settings()
		clock, err := config.ParseClock(s.BackupTime)
		if err != nil {
			// settings are validated on load; keep the default slot
			clock = 2 * time.Hour
		}

		now := j.now()
		timer := time.NewTimer(nextDailyRun(now, clock).Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-j.changed:
			timer.Stop()
			continue
		case <-timer.C:
		}

		if !j.settings().AutoBackup {
			j.logger.Debug().Str("func", "BackupJob.Run").Msg("auto backup disabled, skipping")
			continue
		}
		if _, err := j.backups.CreateBackup(ctx, models.BackupTriggerScheduled); err != nil {
			j.logger.Err(err).Str("func", "BackupJob.Run").Msg("scheduled backup failed")
		}
	}
}

// nextDailyRun returns the first instant strictly after now at the given
// offset from local midnight.
func nextDailyRun(now time.Time, clock time.Duration) time.Time {
	y, m, d := now.Date()
	hours := int(clock / time.Hour)
	minutes := int((clock % time.Hour) / time.Minute)

	next := time.Date(y, m, d, hours, minutes, 0, 0, now.Location())
	if !next.After(now) {
		next = time.Date(y, m, d+1, hours, minutes, 0, 0, now.Location())
	}
	return next
}
