// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/MKhiriev/go-hybrid-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// RecordRepository persists domain records of the local store together with
// their change-log entries.
type RecordRepository interface {
	// WriteRecord upserts rec and appends the matching change-log entry in
	// one transaction. The record revision is taken from the per-table
	// counter and returned in the entry.
	WriteRecord(ctx context.Context, rec models.Record, op models.Operation) (models.ChangeEntry, error)

	// AppendChange records a mutation inside the caller's transaction. It
	// is used by domain modules that write their own rows in tx.
	AppendChange(ctx context.Context, tx *sql.Tx, rec models.Record, op models.Operation) (models.ChangeEntry, error)

	// GetRecord returns the current state of a record, including tombstones.
	GetRecord(ctx context.Context, table, id string) (models.Record, error)

	// RecordCounts returns the number of live records per table.
	RecordCounts(ctx context.Context) (map[string]int64, error)

	// ListTables returns every table known to the local store, sorted.
	ListTables(ctx context.Context) ([]string, error)
}

// ChangeLogRepository reads and prunes the local change log.
type ChangeLogRepository interface {
	// ChangesSince returns up to limit entries of table with revision
	// strictly greater than after, ordered by revision.
	ChangesSince(ctx context.Context, table string, after int64, limit int) ([]models.ChangeEntry, error)

	// PruneChanges deletes entries of table with revision <= upTo.
	PruneChanges(ctx context.Context, table string, upTo int64) (int64, error)
}

// SyncStateRepository persists per-table sync bookkeeping.
type SyncStateRepository interface {
	// GetSyncState returns the state of table, or the initial "never"
	// state if the table never participated in a sync.
	GetSyncState(ctx context.Context, table string) (models.SyncState, error)

	// ListSyncStates returns all persisted states ordered by table name.
	ListSyncStates(ctx context.Context) ([]models.SyncState, error)

	// SaveSyncState upserts state.
	SaveSyncState(ctx context.Context, state models.SyncState) error

	// ApplyRemote applies cloud changes to the local records and saves
	// state in one transaction. Applied records are tagged with origin
	// cloud and produce no change-log entries.
	ApplyRemote(ctx context.Context, table string, changes []models.ChangeEntry, state models.SyncState) error
}

// SnapshotRepository produces point-in-time copies of the local store.
type SnapshotRepository interface {
	// Snapshot writes a consistent copy of the database to dest. It waits
	// at most lockTimeout for in-flight commits.
	Snapshot(ctx context.Context, dest string, lockTimeout time.Duration) error

	// QuickCheck runs the SQLite integrity check.
	QuickCheck(ctx context.Context) error

	// Size returns the on-disk size of the database and its WAL.
	Size() (int64, error)
}

// CloudRepository is the central store the field nodes sync against.
type CloudRepository interface {
	// ChangesSince returns up to limit change-log entries of table after the
	// given revision, skipping entries written by excludeNode. The high
	// watermark covers skipped entries too.
	ChangesSince(ctx context.Context, table string, after int64, limit int, excludeNode string) (models.ChangesResponse, error)

	// ApplyChanges applies a node's batch in one transaction and returns the
	// watermark the node may advance to.
	ApplyChanges(ctx context.Context, table, nodeID string, req models.PushRequest) (models.PushResponse, error)

	// ListTables returns the tables known to the cloud, sorted.
	ListTables(ctx context.Context) ([]string, error)
}
