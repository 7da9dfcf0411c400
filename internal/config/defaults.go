// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

const (
	DefaultSyncIntervalMinutes    = 5
	DefaultMaxConcurrentTableSync = 4
	DefaultChangePageSize         = 500
	DefaultConflictTieBreak       = "cloud"
	DefaultProbeIntervalSeconds   = 30
	DefaultConnectivityDebounce   = 2
	DefaultBackupTime             = "02:00"
	DefaultBackupRetentionCount   = 7
	DefaultLocalDataPath          = "./data"
	DefaultRequestTimeout         = 15 * time.Second
	DefaultNodeTokenDuration      = 24 * time.Hour
	DefaultNodeTokenIssuer        = "go-hybrid-sync"
	DefaultLogMaxSizeMB           = 50
	DefaultLogMaxBackups          = 5
	DefaultLogMaxAgeDays          = 30
)

func boolPtr(v bool) *bool { return &v }

// applyDefaults fills every zero-valued setting with its default.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.NodeID == "" {
		if host, err := os.Hostname(); err == nil {
			cfg.App.NodeID = host
		}
	}
	if cfg.App.NodeTokenIssuer == "" {
		cfg.App.NodeTokenIssuer = DefaultNodeTokenIssuer
	}
	if cfg.App.NodeTokenDuration == 0 {
		cfg.App.NodeTokenDuration = DefaultNodeTokenDuration
	}

	if cfg.Storage.LocalDataPath == "" {
		cfg.Storage.LocalDataPath = DefaultLocalDataPath
	}

	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}

	if cfg.Sync.AutoSync == nil {
		cfg.Sync.AutoSync = boolPtr(true)
	}
	if cfg.Sync.IntervalMinutes == 0 {
		cfg.Sync.IntervalMinutes = DefaultSyncIntervalMinutes
	}
	if cfg.Sync.MaxConcurrentTableSync == 0 {
		cfg.Sync.MaxConcurrentTableSync = DefaultMaxConcurrentTableSync
	}
	if cfg.Sync.ChangePageSize == 0 {
		cfg.Sync.ChangePageSize = DefaultChangePageSize
	}
	if cfg.Sync.ConflictLocalDeleteWins == nil {
		cfg.Sync.ConflictLocalDeleteWins = boolPtr(true)
	}
	if cfg.Sync.ConflictTieBreak == "" {
		cfg.Sync.ConflictTieBreak = DefaultConflictTieBreak
	}

	if cfg.Connectivity.ProbeIntervalSeconds == 0 {
		cfg.Connectivity.ProbeIntervalSeconds = DefaultProbeIntervalSeconds
	}
	if cfg.Connectivity.Debounce == 0 {
		cfg.Connectivity.Debounce = DefaultConnectivityDebounce
	}

	if cfg.Backup.AutoBackup == nil {
		cfg.Backup.AutoBackup = boolPtr(true)
	}
	if cfg.Backup.Time == "" {
		cfg.Backup.Time = DefaultBackupTime
	}
	if cfg.Backup.RetentionCount == 0 {
		cfg.Backup.RetentionCount = DefaultBackupRetentionCount
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = DefaultLogMaxSizeMB
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = DefaultLogMaxBackups
	}
	if cfg.Log.MaxAgeDays == 0 {
		cfg.Log.MaxAgeDays = DefaultLogMaxAgeDays
	}
}
