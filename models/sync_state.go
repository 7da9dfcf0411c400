// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncStatus is the outcome of the last sync attempt for a table.
type SyncStatus string

const (
	SyncStatusOK    SyncStatus = "ok"
	SyncStatusError SyncStatus = "error"
	SyncStatusNever SyncStatus = "never"
)

// SyncState is the per-table sync bookkeeping kept on the field node.
//
// It is written only by the sync engine at the end of a cycle and is created
// lazily the first time a table participates in a sync.
type SyncState struct {
	// TableName is the synced table.
	TableName string `json:"table_name"`

	// LastSyncTimestamp is the wall-clock time of the last successful cycle
	// for this table, nil if it never succeeded.
	LastSyncTimestamp *time.Time `json:"last_sync"`

	// LastSyncRevisionCloud is the highest cloud revision already
	// incorporated into the local store.
	LastSyncRevisionCloud int64 `json:"last_sync_revision_cloud"`

	// LastSyncRevisionLocal is the highest local revision already
	// incorporated into the cloud store.
	LastSyncRevisionLocal int64 `json:"last_sync_revision_local"`

	// SyncCount is the number of successful cycles.
	SyncCount int64 `json:"sync_count"`

	// Status is the result of the last attempt.
	Status SyncStatus `json:"status"`

	// LastError is a human-readable description of the last failure.
	LastError string `json:"last_error,omitempty"`
}

// NewSyncState returns the initial state of a table that never synced.
func NewSyncState(table string) SyncState {
	return SyncState{TableName: table, Status: SyncStatusNever}
}
