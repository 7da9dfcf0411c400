// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// BackupTrigger names what started a backup.
type BackupTrigger string

const (
	BackupTriggerScheduled BackupTrigger = "scheduled"
	BackupTriggerManual    BackupTrigger = "manual"
)

// Valid reports whether t is a known trigger.
func (t BackupTrigger) Valid() bool {
	return t == BackupTriggerScheduled || t == BackupTriggerManual
}

// BackupSnapshot is a point-in-time copy of the local store on disk.
type BackupSnapshot struct {
	BackupID  string        `json:"backup_id"`
	CreatedAt time.Time     `json:"created_at"`
	SizeBytes int64         `json:"size_bytes"`
	Path      string        `json:"path"`
	Trigger   BackupTrigger `json:"trigger"`
}
