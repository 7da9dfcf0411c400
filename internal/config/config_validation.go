// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
	"time"
)

func (cfg *NodeConfig) validate() error {
	if cfg.LocalDataPath == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.App.NodeID == "" || cfg.App.TokenKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Sync.IntervalMinutes < 1 || cfg.Sync.MaxConcurrentTableSync < 1 || cfg.Sync.ChangePageSize < 1 {
		return ErrInvalidSyncConfigs
	}
	if cfg.Sync.TieBreak != "cloud" && cfg.Sync.TieBreak != "local" {
		return fmt.Errorf("%w: tie break must be cloud or local, got %q", ErrInvalidSyncConfigs, cfg.Sync.TieBreak)
	}

	if cfg.Connectivity.ProbeInterval <= 0 || cfg.Connectivity.Debounce < 1 {
		return ErrInvalidConnectivityConfigs
	}

	if cfg.Backup.RetentionCount < 1 || cfg.Backup.RetentionDays < 0 {
		return ErrInvalidBackupConfigs
	}
	if _, err := ParseClock(cfg.Backup.Time); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBackupConfigs, err)
	}

	return nil
}

func (cfg *CloudConfig) validate() error {
	if cfg.DSN == "" || strings.Contains(cfg.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.TokenKey == "" || cfg.TokenIssuer == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.MaxPageSize < 1 {
		return ErrInvalidSyncConfigs
	}

	return nil
}

// ParseClock parses a daily "HH:MM" time of day and returns its offset from
// midnight.
func ParseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
