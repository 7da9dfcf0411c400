// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the shape of the JSON
// configuration file.
type StructuredJSONConfig struct {
	App struct {
		NodeID            string   `json:"node_id"`
		NodeTokenKey      string   `json:"node_token_key"`
		NodeTokenIssuer   string   `json:"node_token_issuer"`
		NodeTokenDuration Duration `json:"node_token_duration"`
		Version           string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		LocalDataPath string `json:"local_data_path"`
		DB            struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Sync struct {
		AutoSync                *bool    `json:"auto_sync"`
		IntervalMinutes         int      `json:"sync_interval_minutes"`
		MaxConcurrentTableSync  int      `json:"max_concurrent_table_sync"`
		Tables                  []string `json:"sync_tables"`
		ChangePageSize          int      `json:"change_page_size"`
		ConflictLocalDeleteWins *bool    `json:"conflict_local_delete_wins"`
		ConflictTieBreak        string   `json:"conflict_tie_break"`
	} `json:"sync,omitempty"`

	Connectivity struct {
		ProbeIntervalSeconds int `json:"probe_interval_seconds"`
		Debounce             int `json:"debounce"`
	} `json:"connectivity,omitempty"`

	Backup struct {
		AutoBackup     *bool  `json:"auto_backup"`
		Time           string `json:"backup_time"`
		RetentionCount int    `json:"retention_count"`
		RetentionDays  int    `json:"retention_days"`
	} `json:"backup,omitempty"`

	Log struct {
		Level      string `json:"level"`
		MaxSizeMB  int    `json:"max_size_mb"`
		MaxBackups int    `json:"max_backups"`
		MaxAgeDays int    `json:"max_age_days"`
	} `json:"log,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			NodeID:            jsonCfg.App.NodeID,
			NodeTokenKey:      jsonCfg.App.NodeTokenKey,
			NodeTokenIssuer:   jsonCfg.App.NodeTokenIssuer,
			NodeTokenDuration: time.Duration(jsonCfg.App.NodeTokenDuration),
			Version:           jsonCfg.App.Version,
		},
		Storage: Storage{
			LocalDataPath: jsonCfg.Storage.LocalDataPath,
			DB:            DB{DSN: jsonCfg.Storage.DB.DSN},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Sync: Sync{
			AutoSync:                jsonCfg.Sync.AutoSync,
			IntervalMinutes:         jsonCfg.Sync.IntervalMinutes,
			MaxConcurrentTableSync:  jsonCfg.Sync.MaxConcurrentTableSync,
			Tables:                  jsonCfg.Sync.Tables,
			ChangePageSize:          jsonCfg.Sync.ChangePageSize,
			ConflictLocalDeleteWins: jsonCfg.Sync.ConflictLocalDeleteWins,
			ConflictTieBreak:        jsonCfg.Sync.ConflictTieBreak,
		},
		Connectivity: Connectivity{
			ProbeIntervalSeconds: jsonCfg.Connectivity.ProbeIntervalSeconds,
			Debounce:             jsonCfg.Connectivity.Debounce,
		},
		Backup: Backup{
			AutoBackup:     jsonCfg.Backup.AutoBackup,
			Time:           jsonCfg.Backup.Time,
			RetentionCount: jsonCfg.Backup.RetentionCount,
			RetentionDays:  jsonCfg.Backup.RetentionDays,
		},
		Log: Log{
			Level:      jsonCfg.Log.Level,
			MaxSizeMB:  jsonCfg.Log.MaxSizeMB,
			MaxBackups: jsonCfg.Log.MaxBackups,
			MaxAgeDays: jsonCfg.Log.MaxAgeDays,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
