// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/MKhiriev/go-hybrid-sync/internal/config"
	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
	"github.com/MKhiriev/go-hybrid-sync/internal/store"
	"github.com/MKhiriev/go-hybrid-sync/internal/utils"
	"github.com/MKhiriev/go-hybrid-sync/models"
)

const (
	backupPrefix      = "backup_"
	backupExt         = ".db"
	backupPattern     = backupPrefix + "*" + backupExt
	backupTimeLayout  = "20060102T150405.000Z"
	backupLockTimeout = 10 * time.Second

	// backupSpaceFactor is the free space required per byte of live
	// database; a snapshot is at most the size of the source.
	backupSpaceFactor = 1.1
)

type backupManager struct {
	snapshots store.SnapshotRepository
	health    StorageHealth
	dir       string

	retentionCount int
	retentionDays  int
	lockTimeout    time.Duration

	ids     *utils.UUIDGenerator
	now     func() time.Time
	diskFn  func(path string) (models.DiskSpace, error)
	metrics *Metrics
	audit   *logger.AuditLogger
	logger  *logger.Logger
}

// BackupManagerDeps are the collaborators of the backup manager.
type BackupManagerDeps struct {
	Snapshots store.SnapshotRepository
	Health    StorageHealth
	Metrics   *Metrics
	Audit     *logger.AuditLogger
}

// NewBackupManager returns a BackupManager writing snapshots into dir.
func NewBackupManager(deps BackupManagerDeps, dir string, cfg config.NodeBackup, logger *logger.Logger) BackupManager {
	return &backupManager{
		snapshots:      deps.Snapshots,
		health:         deps.Health,
		dir:            dir,
		retentionCount: cfg.RetentionCount,
		retentionDays:  cfg.RetentionDays,
		lockTimeout:    backupLockTimeout,
		ids:            utils.NewUUIDGenerator(),
		now:            time.Now,
		diskFn:         utils.DiskUsage,
		metrics:        deps.Metrics,
		audit:          deps.Audit,
		logger:         logger,
	}
}

func (b *backupManager) Dir() string {
	return b.dir
}

func (b *backupManager) CreateBackup(ctx context.Context, trigger models.BackupTrigger) (models.BackupSnapshot, error) {
	snapshot, err := b.createBackup(ctx, trigger)
	b.metrics.observeBackup(trigger, err)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "backupManager.CreateBackup").
			Str("trigger", string(trigger)).
			Msg("backup failed")
		b.audit.Record("backup", map[string]any{"trigger": trigger, "error": err.Error()})
		return models.BackupSnapshot{}, err
	}

	b.audit.Record("backup", snapshot)
	logger.FromContext(ctx).Info().
		Str("func", "backupManager.CreateBackup").
		Str("backup_id", snapshot.BackupID).
		Str("path", snapshot.Path).
		Int64("size_bytes", snapshot.SizeBytes).
		Msg("backup created")
	return snapshot, nil
}

func (b *backupManager) createBackup(ctx context.Context, trigger models.BackupTrigger) (models.BackupSnapshot, error) {
	if !trigger.Valid() {
		return models.BackupSnapshot{}, fmt.Errorf("%w: unknown trigger %q", ErrInvalidRequest, trigger)
	}

	if err := b.checkHealth(ctx); err != nil {
		return models.BackupSnapshot{}, err
	}

	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return models.BackupSnapshot{}, fmt.Errorf("%w: create backup dir: %w", ErrBackup, err)
	}
	if err := b.checkSpace(); err != nil {
		return models.BackupSnapshot{}, err
	}

	createdAt := b.now().UTC()
	id := b.ids.Short()
	path := filepath.Join(b.dir, backupFileName(createdAt, trigger, id))

	if err := b.snapshots.Snapshot(ctx, path, b.lockTimeout); err != nil {
		switch {
		case errors.Is(err, store.ErrSnapshotLockTimeout):
			return models.BackupSnapshot{}, fmt.Errorf("%w: %w", ErrBackup, ErrBackupLockTimeout)
		case errors.Is(err, store.ErrStorageFull):
			return models.BackupSnapshot{}, fmt.Errorf("%w: %w: %w", ErrBackup, ErrInsufficientSpace, err)
		case store.IsStorageFault(err):
			b.health.ReportFault(err)
			return models.BackupSnapshot{}, fmt.Errorf("%w: %w: %w", ErrBackup, ErrStorage, err)
		}
		return models.BackupSnapshot{}, fmt.Errorf("%w: %w", ErrBackup, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return models.BackupSnapshot{}, fmt.Errorf("%w: stat snapshot: %w", ErrBackup, err)
	}

	snapshot := models.BackupSnapshot{
		BackupID:  id,
		CreatedAt: createdAt,
		SizeBytes: info.Size(),
		Path:      path,
		Trigger:   trigger,
	}

	if err := b.prune(ctx); err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "backupManager.createBackup").
			Msg("backup retention failed")
	}
	return snapshot, nil
}

// checkHealth refuses backups while a storage fault is outstanding, unless an
// integrity check shows the store has recovered.
func (b *backupManager) checkHealth(ctx context.Context) error {
	fault := b.health.Fault()
	if fault == nil {
		return nil
	}
	if err := b.snapshots.QuickCheck(ctx); err != nil {
		return fmt.Errorf("%w: %w: %w", ErrBackup, ErrStorageBlocked, fault)
	}

	b.health.Clear()
	logger.FromContext(ctx).Info().
		Str("func", "backupManager.checkHealth").
		Msg("integrity check passed, storage error cleared")
	return nil
}

func (b *backupManager) checkSpace() error {
	size, err := b.snapshots.Size()
	if err != nil {
		return fmt.Errorf("%w: database size: %w", ErrBackup, err)
	}
	space, err := b.diskFn(b.dir)
	if err != nil {
		return fmt.Errorf("%w: disk usage: %w", ErrBackup, err)
	}

	need := uint64(float64(size) * backupSpaceFactor)
	if space.Free < need {
		return fmt.Errorf("%w: %w: need %d bytes, %d free", ErrBackup, ErrInsufficientSpace, need, space.Free)
	}
	return nil
}

// prune applies the count and age retention, oldest first.
func (b *backupManager) prune(ctx context.Context) error {
	backups, err := b.List(ctx)
	if err != nil {
		return err
	}

	var cutoff time.Time
	if b.retentionDays > 0 {
		cutoff = b.now().AddDate(0, 0, -b.retentionDays)
	}

	var errs []error
	for i, backup := range backups {
		expired := b.retentionCount > 0 && i >= b.retentionCount
		if !cutoff.IsZero() && backup.CreatedAt.Before(cutoff) {
			expired = true
		}
		if !expired {
			continue
		}
		if err := os.Remove(backup.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
			continue
		}
		logger.FromContext(ctx).Debug().
			Str("func", "backupManager.prune").
			Str("backup_id", backup.BackupID).
			Time("created_at", backup.CreatedAt).
			Msg("backup removed by retention")
	}
	return errors.Join(errs...)
}

func (b *backupManager) List(_ context.Context) ([]models.BackupSnapshot, error) {
	entries, err := os.ReadDir(b.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read backup dir: %w", ErrBackup, err)
	}

	var backups []models.BackupSnapshot
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if ok, _ := filepath.Match(backupPattern, e.Name()); !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}

		snapshot := parseBackupName(e.Name())
		if snapshot.CreatedAt.IsZero() {
			snapshot.CreatedAt = info.ModTime().UTC()
		}
		snapshot.Path = filepath.Join(b.dir, e.Name())
		snapshot.SizeBytes = info.Size()
		backups = append(backups, snapshot)
	}

	slices.SortFunc(backups, func(x, y models.BackupSnapshot) int {
		if c := y.CreatedAt.Compare(x.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(y.Path, x.Path)
	})
	return backups, nil
}

func (b *backupManager) Count() (int, error) {
	count, _, err := utils.DirSize(b.dir, backupPattern)
	return count, err
}

func (b *backupManager) TotalSize() (int64, error) {
	_, size, err := utils.DirSize(b.dir, backupPattern)
	return size, err
}

func backupFileName(createdAt time.Time, trigger models.BackupTrigger, id string) string {
	return backupPrefix + createdAt.UTC().Format(backupTimeLayout) + "_" + string(trigger) + "_" + id + backupExt
}

// parseBackupName reads the fields encoded by backupFileName. Unknown names
// yield a snapshot identified by the bare file name.
func parseBackupName(name string) models.BackupSnapshot {
	base := strings.TrimSuffix(strings.TrimPrefix(name, backupPrefix), backupExt)
	snapshot := models.BackupSnapshot{BackupID: base}

	parts := strings.SplitN(base, "_", 3)
	if len(parts) != 3 {
		return snapshot
	}
	createdAt, err := time.Parse(backupTimeLayout, parts[0])
	if err != nil {
		return snapshot
	}

	snapshot.CreatedAt = createdAt
	snapshot.Trigger = models.BackupTrigger(parts[1])
	snapshot.BackupID = parts[2]
	return snapshot
}
