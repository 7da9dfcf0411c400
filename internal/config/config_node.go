// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// Directory and file names under the local data path.
const (
	DataDirName      = "dados"
	DatabaseFileName = "hybrid.db"
	BackupDirName    = "backup"
	ConfigDirName    = "config"
	SettingsFileName = "settings.json"
	LogDirName       = "logs"
	NodeLogFileName  = "node.log"
	AuditLogFileName = "sync-audit.log"
)

// NodeApp holds the field node identity.
type NodeApp struct {
	NodeID        string
	TokenKey      string
	TokenIssuer   string
	TokenDuration time.Duration
	Version       string
}

// NodeServer holds the operator API listener settings.
type NodeServer struct {
	HTTPAddress    string
	RequestTimeout time.Duration
}

// NodeAdapter holds the cloud client settings.
type NodeAdapter struct {
	HTTPAddress    string
	RequestTimeout time.Duration
}

// NodeSync holds scheduler and engine settings with defaults resolved.
type NodeSync struct {
	AutoSync               bool
	IntervalMinutes        int
	MaxConcurrentTableSync int
	Tables                 []string
	ChangePageSize         int
	LocalDeleteWins        bool
	TieBreak               string
}

// NodeConnectivity holds reachability probe settings.
type NodeConnectivity struct {
	ProbeInterval time.Duration
	Debounce      int
}

// NodeBackup holds snapshot settings.
type NodeBackup struct {
	AutoBackup     bool
	Time           string
	RetentionCount int
	RetentionDays  int
}

// NodeConfig is the field node configuration assembled from
// [StructuredConfig].
type NodeConfig struct {
	App           NodeApp
	Server        NodeServer
	Adapter       NodeAdapter
	LocalDataPath string
	Sync          NodeSync
	Connectivity  NodeConnectivity
	Backup        NodeBackup
	Log           Log
}

// GetNodeConfig builds and validates the field node config view from the
// merged structured configuration.
func GetNodeConfig(args []string) (*NodeConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	nodeCfg := NewNodeConfig(cfg)
	return nodeCfg, nodeCfg.validate()
}

// NewNodeConfig maps the fields relevant to the field node runtime.
func NewNodeConfig(cfg *StructuredConfig) *NodeConfig {
	return &NodeConfig{
		App: NodeApp{
			NodeID:        cfg.App.NodeID,
			TokenKey:      cfg.App.NodeTokenKey,
			TokenIssuer:   cfg.App.NodeTokenIssuer,
			TokenDuration: cfg.App.NodeTokenDuration,
			Version:       cfg.App.Version,
		},
		Server: NodeServer{
			HTTPAddress:    cfg.Server.HTTPAddress,
			RequestTimeout: cfg.Server.RequestTimeout,
		},
		Adapter: NodeAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		LocalDataPath: cfg.Storage.LocalDataPath,
		Sync: NodeSync{
			AutoSync:               derefBool(cfg.Sync.AutoSync, true),
			IntervalMinutes:        cfg.Sync.IntervalMinutes,
			MaxConcurrentTableSync: cfg.Sync.MaxConcurrentTableSync,
			Tables:                 cfg.Sync.Tables,
			ChangePageSize:         cfg.Sync.ChangePageSize,
			LocalDeleteWins:        derefBool(cfg.Sync.ConflictLocalDeleteWins, true),
			TieBreak:               cfg.Sync.ConflictTieBreak,
		},
		Connectivity: NodeConnectivity{
			ProbeInterval: time.Duration(cfg.Connectivity.ProbeIntervalSeconds) * time.Second,
			Debounce:      cfg.Connectivity.Debounce,
		},
		Backup: NodeBackup{
			AutoBackup:     derefBool(cfg.Backup.AutoBackup, true),
			Time:           cfg.Backup.Time,
			RetentionCount: cfg.Backup.RetentionCount,
			RetentionDays:  cfg.Backup.RetentionDays,
		},
		Log: cfg.Log,
	}
}

// DatabasePath is the path of the local SQLite store.
func (c *NodeConfig) DatabasePath() string {
	return filepath.Join(c.LocalDataPath, DataDirName, DatabaseFileName)
}

// BackupDir is the directory holding backup snapshots.
func (c *NodeConfig) BackupDir() string {
	return filepath.Join(c.LocalDataPath, BackupDirName)
}

// SettingsPath is the path of the operator-editable settings file.
func (c *NodeConfig) SettingsPath() string {
	return filepath.Join(c.LocalDataPath, ConfigDirName, SettingsFileName)
}

// LogDir is the directory holding node and audit logs.
func (c *NodeConfig) LogDir() string {
	return filepath.Join(c.LocalDataPath, LogDirName)
}

// DefaultSettings returns the runtime settings implied by the static config.
func (c *NodeConfig) DefaultSettings() Settings {
	return Settings{
		AutoSync:            c.Sync.AutoSync,
		SyncIntervalMinutes: c.Sync.IntervalMinutes,
		AutoBackup:          c.Backup.AutoBackup,
		BackupTime:          c.Backup.Time,
	}
}

func derefBool(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
