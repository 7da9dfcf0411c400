// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"database/sql"
	"iter"

	"github.com/MKhiriev/go-hybrid-sync/internal/config"
	"github.com/MKhiriev/go-hybrid-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// ChangeTracker is the single entry point through which domain modules write
// records. Every write produces exactly one change-log entry in the same
// transaction.
type ChangeTracker interface {
	// Record appends the change for rec inside tx, which the caller owns.
	// The checksum is computed from the payload and the delete flag.
	Record(ctx context.Context, tx *sql.Tx, rec models.Record, op models.Operation) (models.ChangeEntry, error)

	// RecordWrite upserts rec and appends its change in one transaction.
	RecordWrite(ctx context.Context, rec models.Record, op models.Operation) (models.ChangeEntry, error)

	// PendingSince yields the entries of table with revision strictly greater
	// than watermark, in revision order. The sequence is read lazily page by
	// page and may be ranged over again.
	PendingSince(ctx context.Context, table string, watermark int64) iter.Seq2[models.ChangeEntry, error]

	// Prune removes entries of table with revision <= upTo.
	Prune(ctx context.Context, table string, upTo int64) (int64, error)
}

// ConflictPolicy settles a record changed on both sides since the last sync.
// Implementations must be deterministic and free of side effects.
type ConflictPolicy interface {
	// Resolve returns the decision for the latest local and cloud entries of
	// one record. Winner is the origin whose state both stores end up with.
	Resolve(local, cloud models.ChangeEntry) models.ConflictResolution
}

// ConnectivityMonitor tracks whether the cloud store can be reached.
type ConnectivityMonitor interface {
	// IsOnline returns the debounced reachability state.
	IsOnline() bool

	// OnReconnect registers fn to run on every offline to online transition.
	OnReconnect(fn func())

	// Run probes the cloud until ctx is cancelled.
	Run(ctx context.Context) error
}

// SyncEngine executes reconciliation cycles.
type SyncEngine interface {
	// RunCycle reconciles every table once. Table failures are reported in
	// the returned cycle; an error is returned only when a storage fault
	// aborted the cycle, in which case the cycle describes the partial run.
	RunCycle(ctx context.Context, reason models.SyncReason) (models.SyncCycle, error)
}

// SyncScheduler decides when cycles run and guarantees that at most one runs
// at a time.
type SyncScheduler interface {
	// RequestSync asks for a cycle. It returns ErrAlreadySyncing without
	// side effects while a cycle is pending or running.
	RequestSync(reason models.SyncReason) (models.SyncRequestResult, error)

	// IsRunning reports whether a cycle is in progress.
	IsRunning() bool

	// LastCycle returns the most recently finished cycle, if any.
	LastCycle() (models.SyncCycle, bool)

	// ApplySettings reconfigures the periodic trigger.
	ApplySettings(s config.Settings)

	// Run drives the scheduler until ctx is cancelled or Stop is called.
	Run(ctx context.Context) error

	// Stop drops any queued request and makes Run return once the running
	// cycle, if any, has finished.
	Stop()
}

// BackupManager creates and prunes snapshots of the local store.
type BackupManager interface {
	// CreateBackup snapshots the local store and applies retention.
	CreateBackup(ctx context.Context, trigger models.BackupTrigger) (models.BackupSnapshot, error)

	// List returns the snapshots on disk, newest first.
	List(ctx context.Context) ([]models.BackupSnapshot, error)

	// Count returns the number of snapshots on disk.
	Count() (int, error)

	// TotalSize returns the combined size of the snapshots in bytes.
	TotalSize() (int64, error)

	// Dir returns the backup directory.
	Dir() string
}

// StorageHealth remembers the last local storage fault. While a fault is
// outstanding backups are refused; a passing integrity check clears it.
type StorageHealth interface {
	ReportFault(err error)
	Fault() error
	Clear()
}

// StatusReporter assembles the status document. It never blocks on a
// running cycle.
type StatusReporter interface {
	Status(ctx context.Context) (models.HybridStatusDocument, error)
}

// ChangeFeedService is the cloud side of the change-feed API.
type ChangeFeedService interface {
	// Ping checks the central store.
	Ping(ctx context.Context) error

	// Tables returns the tables known to the cloud.
	Tables(ctx context.Context) ([]string, error)

	// Pull returns cloud changes of table after the given revision,
	// excluding the ones nodeID wrote.
	Pull(ctx context.Context, nodeID, table string, after int64, limit int) (models.ChangesResponse, error)

	// Push validates and applies a node's batch.
	Push(ctx context.Context, nodeID, table string, req models.PushRequest) (models.PushResponse, error)
}
