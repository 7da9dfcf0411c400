// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

// Sync errors. Table-level failures wrap ErrConnectivity or
// ErrConflictResolution and are isolated to their table; ErrStorage aborts the
// whole cycle.
var (
	ErrConnectivity       = errors.New("cloud store is unreachable")
	ErrConflictResolution = errors.New("change set cannot be reconciled")
	ErrStorage            = errors.New("local storage failure")
	ErrAlreadySyncing     = errors.New("a sync cycle is already running")
	ErrSchedulerStopped   = errors.New("sync scheduler is stopped")
)

// Backup errors. All of them wrap ErrBackup.
var (
	ErrBackup            = errors.New("backup failed")
	ErrInsufficientSpace = errors.New("insufficient disk space for backup")
	ErrStorageBlocked    = errors.New("storage error outstanding, backups blocked")
	ErrBackupLockTimeout = errors.New("local store is busy, try again")
)

var (
	ErrInvalidRecord  = errors.New("invalid record")
	ErrInvalidRequest = errors.New("invalid request")
)
