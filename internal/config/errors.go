// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid cloud client settings
	// (for example, missing address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty local data path or cloud DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates missing node identity or token settings.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidServerConfigs indicates a missing listen address.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidSyncConfigs indicates invalid scheduler or engine settings.
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
	// ErrInvalidConnectivityConfigs indicates invalid probe settings.
	ErrInvalidConnectivityConfigs = errors.New("invalid connectivity configuration")
	// ErrInvalidBackupConfigs indicates invalid backup schedule or retention.
	ErrInvalidBackupConfigs = errors.New("invalid backup configuration")
	// ErrInvalidSettings indicates an invalid runtime settings document.
	ErrInvalidSettings = errors.New("invalid runtime settings")
)
