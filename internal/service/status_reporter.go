// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-hybrid-sync/internal/config"
	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
	"github.com/MKhiriev/go-hybrid-sync/internal/store"
	"github.com/MKhiriev/go-hybrid-sync/internal/utils"
	"github.com/MKhiriev/go-hybrid-sync/models"
)

type statusReporter struct {
	records   store.RecordRepository
	states    store.SyncStateRepository
	snapshots store.SnapshotRepository
	backups   BackupManager
	monitor   ConnectivityMonitor
	scheduler SyncScheduler
	health    StorageHealth
	settings  func() config.Settings

	dataPath string
	diskFn   func(path string) (models.DiskSpace, error)

	logger *logger.Logger
}

// StatusReporterDeps are the sources aggregated by the status reporter.
type StatusReporterDeps struct {
	Records   store.RecordRepository
	States    store.SyncStateRepository
	Snapshots store.SnapshotRepository
	Backups   BackupManager
	Monitor   ConnectivityMonitor
	Scheduler SyncScheduler
	Health    StorageHealth
	Settings  func() config.Settings
}

// NewStatusReporter returns a StatusReporter for the node rooted at
// dataPath.
func NewStatusReporter(deps StatusReporterDeps, dataPath string, logger *logger.Logger) StatusReporter {
	return &statusReporter{
		records:   deps.Records,
		states:    deps.States,
		snapshots: deps.Snapshots,
		backups:   deps.Backups,
		monitor:   deps.Monitor,
		scheduler: deps.Scheduler,
		health:    deps.Health,
		settings:  deps.Settings,
		dataPath:  dataPath,
		diskFn:    utils.DiskUsage,
		logger:    logger,
	}
}

func (r *statusReporter) Status(ctx context.Context) (models.HybridStatusDocument, error) {
	log := logger.FromContext(ctx)

	doc := models.HybridStatusDocument{
		OnlineStatus:  r.monitor.IsOnline(),
		Syncing:       r.scheduler.IsRunning(),
		LocalDataPath: r.dataPath,
		Config:        r.settings().StatusConfig(),
		SyncStatus:    []models.TableSyncStatus{},
	}

	states, err := r.states.ListSyncStates(ctx)
	if err != nil {
		return models.HybridStatusDocument{}, fmt.Errorf("list sync states: %w", wrapStorage(err))
	}
	for _, st := range states {
		doc.SyncStatus = append(doc.SyncStatus, models.TableSyncStatus{
			TableName: st.TableName,
			LastSync:  st.LastSyncTimestamp,
			SyncCount: st.SyncCount,
			Status:    st.Status,
			LastError: st.LastError,
		})
		doc.LastSync = latest(doc.LastSync, st.LastSyncTimestamp)
	}

	doc.RecordCounts, err = r.records.RecordCounts(ctx)
	if err != nil {
		return models.HybridStatusDocument{}, fmt.Errorf("count records: %w", wrapStorage(err))
	}
	if doc.RecordCounts == nil {
		doc.RecordCounts = map[string]int64{}
	}

	// the remaining sources are best effort; a failing one leaves its zero value
	if doc.DatabaseSize, err = r.snapshots.Size(); err != nil {
		log.Warn().Err(err).Str("func", "statusReporter.Status").Msg("database size unavailable")
	}
	if doc.DiskSpace, err = r.diskFn(r.dataPath); err != nil {
		log.Warn().Err(err).Str("func", "statusReporter.Status").Msg("disk usage unavailable")
	}
	if doc.BackupCount, err = r.backups.Count(); err != nil {
		log.Warn().Err(err).Str("func", "statusReporter.Status").Msg("backup count unavailable")
	}
	if doc.BackupSize, err = r.backups.TotalSize(); err != nil {
		log.Warn().Err(err).Str("func", "statusReporter.Status").Msg("backup size unavailable")
	}

	if fault := r.health.Fault(); fault != nil {
		doc.StorageError = fault.Error()
	}

	if cycle, ok := r.scheduler.LastCycle(); ok {
		doc.LastCycle = &models.CycleSummary{
			CycleID:           cycle.CycleID,
			Reason:            cycle.Reason,
			StartedAt:         cycle.StartedAt,
			FinishedAt:        cycle.FinishedAt,
			TablesProcessed:   cycle.TablesProcessed,
			ConflictsResolved: cycle.ConflictsResolved,
			Errors:            len(cycle.Errors),
		}
	}

	return doc, nil
}

func latest(a, b *time.Time) *time.Time {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case b.After(*a):
		return b
	}
	return a
}
