// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/go-hybrid-sync/internal/adapter"
	"github.com/MKhiriev/go-hybrid-sync/internal/config"
	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
	"github.com/MKhiriev/go-hybrid-sync/internal/store"
	"github.com/MKhiriev/go-hybrid-sync/internal/validators"
	"github.com/MKhiriev/go-hybrid-sync/models"
	"github.com/prometheus/client_golang/prometheus"
)

// NodeServices aggregates the field node's sync core.
type NodeServices struct {
	Tracker   ChangeTracker
	Monitor   ConnectivityMonitor
	Engine    SyncEngine
	Scheduler SyncScheduler
	Backups   BackupManager
	BackupJob *BackupJob
	Status    StatusReporter
	Health    StorageHealth
	Settings  *config.SettingsStore
	Validator validators.Validator
}

// NewNodeServices wires the sync core over the local store and the cloud
// adapter. Collectors are registered with reg; cycles and backups are
// recorded in audit.
func NewNodeServices(
	storages *store.LocalStorages,
	cloud adapter.CloudAdapter,
	settings *config.SettingsStore,
	cfg *config.NodeConfig,
	reg prometheus.Registerer,
	audit *logger.AuditLogger,
	logger *logger.Logger,
) *NodeServices {
	metrics := NewMetrics(reg)
	health := NewStorageHealth()

	tracker := NewChangeTracker(storages.Records, storages.ChangeLog, cfg.Sync.ChangePageSize, logger)
	monitor := NewConnectivityMonitor(cloud, cfg.Connectivity, metrics, logger)
	engine := NewSyncEngine(SyncEngineDeps{
		Tracker: tracker,
		Records: storages.Records,
		States:  storages.SyncState,
		Cloud:   cloud,
		Policy:  NewConflictPolicy(cfg.Sync),
		Health:  health,
	}, cfg.Sync, logger)
	scheduler := NewSyncScheduler(SyncSchedulerDeps{
		Engine:  engine,
		Monitor: monitor,
		Metrics: metrics,
		Audit:   audit,
	}, settings.Get(), logger)
	backups := NewBackupManager(BackupManagerDeps{
		Snapshots: storages.Snapshots,
		Health:    health,
		Metrics:   metrics,
		Audit:     audit,
	}, cfg.BackupDir(), cfg.Backup, logger)

	monitor.OnReconnect(func() {
		_, err := scheduler.RequestSync(models.SyncReasonReconnect)
		if err != nil && !errors.Is(err, ErrAlreadySyncing) {
			logger.Warn().Err(err).Msg("reconnect sync not queued")
		}
	})
	settings.Subscribe(scheduler.ApplySettings)

	return &NodeServices{
		Tracker:   tracker,
		Monitor:   monitor,
		Engine:    engine,
		Scheduler: scheduler,
		Backups:   backups,
		BackupJob: NewBackupJob(backups, settings, logger),
		Status: NewStatusReporter(StatusReporterDeps{
			Records:   storages.Records,
			States:    storages.SyncState,
			Snapshots: storages.Snapshots,
			Backups:   backups,
			Monitor:   monitor,
			Scheduler: scheduler,
			Health:    health,
			Settings:  settings.Get,
		}, cfg.LocalDataPath, logger),
		Health:    health,
		Settings:  settings,
		Validator: validators.NewChangeValidator(),
	}
}

// CloudServices aggregates the cloud store service.
type CloudServices struct {
	ChangeFeed ChangeFeedService
}

// NewCloudServices wires the change feed over the central store.
func NewCloudServices(storages *store.CloudStorages, cfg *config.CloudConfig, logger *logger.Logger) *CloudServices {
	return &CloudServices{
		ChangeFeed: NewChangeFeedService(storages.Changes, storages, validators.NewChangeValidator(), cfg.MaxPageSize, logger),
	}
}
