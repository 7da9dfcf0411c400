// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// field node and the cloud store service. It is populated by merging values
// from environment variables, command-line flags, and an optional JSON file.
//
// Boolean settings whose default is true are pointers so that an explicit
// false from any source survives the merge.
type StructuredConfig struct {
	// App holds node identity and token settings.
	App App `envPrefix:"APP_"`

	// Storage holds the local data path and the cloud database DSN.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the inbound HTTP listener settings.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the outbound cloud API client settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Sync holds the scheduler and engine settings.
	Sync Sync `envPrefix:"SYNC_"`

	// Connectivity holds the reachability probe settings.
	Connectivity Connectivity `envPrefix:"CONNECTIVITY_"`

	// Backup holds snapshot schedule and retention settings.
	Backup Backup `envPrefix:"BACKUP_"`

	// Log holds log file rotation settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds identity and token settings.
type App struct {
	// NodeID identifies this field node to the cloud. Defaults to the host name.
	// Env: APP_NODE_ID
	NodeID string `env:"NODE_ID"`

	// NodeTokenKey signs and verifies node JWT tokens (HS256).
	// Env: APP_NODE_TOKEN_KEY
	NodeTokenKey string `env:"NODE_TOKEN_KEY"`

	// NodeTokenIssuer is the "iss" claim of node tokens.
	// Env: APP_NODE_TOKEN_ISSUER
	NodeTokenIssuer string `env:"NODE_TOKEN_ISSUER"`

	// NodeTokenDuration is how long a node token stays valid.
	// Env: APP_NODE_TOKEN_DURATION
	NodeTokenDuration time.Duration `env:"NODE_TOKEN_DURATION"`

	// Version is reported in logs at startup.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups persistence settings.
type Storage struct {
	// LocalDataPath is the root of the node's on-disk layout.
	// Env: STORAGE_LOCAL_DATA_PATH
	LocalDataPath string `env:"LOCAL_DATA_PATH"`

	// DB holds the cloud database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the cloud Postgres database.
type DB struct {
	// DSN is the PostgreSQL connection string.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds inbound HTTP settings.
type Server struct {
	// HTTPAddress is the listen address in "host:port" form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds outbound cloud API settings.
type Adapter struct {
	// HTTPAddress is the base URL of the cloud store service.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every single cloud call.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Sync holds scheduler and engine settings.
type Sync struct {
	AutoSync                *bool    `env:"AUTO_SYNC"`
	IntervalMinutes         int      `env:"INTERVAL_MINUTES"`
	MaxConcurrentTableSync  int      `env:"MAX_CONCURRENT_TABLE_SYNC"`
	Tables                  []string `env:"TABLES" envSeparator:","`
	ChangePageSize          int      `env:"CHANGE_PAGE_SIZE"`
	ConflictLocalDeleteWins *bool    `env:"CONFLICT_LOCAL_DELETE_WINS"`
	ConflictTieBreak        string   `env:"CONFLICT_TIE_BREAK"`
}

// Connectivity holds reachability probe settings.
type Connectivity struct {
	ProbeIntervalSeconds int `env:"PROBE_INTERVAL_SECONDS"`
	Debounce             int `env:"DEBOUNCE"`
}

// Backup holds snapshot settings.
type Backup struct {
	AutoBackup     *bool  `env:"AUTO_BACKUP"`
	Time           string `env:"TIME"`
	RetentionCount int    `env:"RETENTION_COUNT"`
	RetentionDays  int    `env:"RETENTION_DAYS"`
}

// Log holds log file settings.
type Log struct {
	Level      string `env:"LEVEL"`
	MaxSizeMB  int    `env:"MAX_SIZE_MB"`
	MaxBackups int    `env:"MAX_BACKUPS"`
	MaxAgeDays int    `env:"MAX_AGE_DAYS"`
}

// GetStructuredConfig loads and merges the configuration from all available
// sources in the following priority order (last source wins for non-zero
// fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Defaults are applied after merging.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
