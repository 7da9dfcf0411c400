// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// DiskSpace describes the volume holding the local data path.
type DiskSpace struct {
	Used    uint64  `json:"used"`
	Free    uint64  `json:"free"`
	Total   uint64  `json:"total"`
	Percent float64 `json:"percent"`
}

// TableSyncStatus is the per-table row of the status panel.
type TableSyncStatus struct {
	TableName string     `json:"table_name"`
	LastSync  *time.Time `json:"last_sync"`
	SyncCount int64      `json:"sync_count"`
	Status    SyncStatus `json:"status"`
	LastError string     `json:"last_error,omitempty"`
}

// StatusConfig is the operator-visible subset of the configuration.
type StatusConfig struct {
	AutoSync            bool   `json:"auto_sync"`
	SyncIntervalMinutes int    `json:"sync_interval_minutes"`
	AutoBackup          bool   `json:"auto_backup"`
	BackupTime          string `json:"backup_time"`
}

// CycleSummary is a compact view of the last finished sync cycle.
type CycleSummary struct {
	CycleID           string     `json:"cycle_id"`
	Reason            SyncReason `json:"reason"`
	StartedAt         time.Time  `json:"started_at"`
	FinishedAt        time.Time  `json:"finished_at"`
	TablesProcessed   int        `json:"tables_processed"`
	ConflictsResolved int        `json:"conflicts_resolved"`
	Errors            int        `json:"errors"`
}

// HybridStatusDocument is the aggregate served to the status panel. It is
// regenerated on every request and never persisted.
type HybridStatusDocument struct {
	OnlineStatus  bool              `json:"online_status"`
	Syncing       bool              `json:"syncing"`
	LastSync      *time.Time        `json:"last_sync"`
	DatabaseSize  int64             `json:"database_size"`
	RecordCounts  map[string]int64  `json:"record_counts"`
	DiskSpace     DiskSpace         `json:"disk_space"`
	SyncStatus    []TableSyncStatus `json:"sync_status"`
	BackupCount   int               `json:"backup_count"`
	BackupSize    int64             `json:"backup_size"`
	LocalDataPath string            `json:"local_data_path"`
	StorageError  string            `json:"storage_error,omitempty"`
	LastCycle     *CycleSummary     `json:"last_cycle,omitempty"`
	Config        StatusConfig      `json:"config"`
}
