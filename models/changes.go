// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// ChangesResponse is the body of GET /api/changes/{table}.
//
// HighWatermark is the highest cloud revision scanned by the request,
// including entries written by the caller itself that were filtered out.
type ChangesResponse struct {
	Table         string        `json:"table"`
	Changes       []ChangeEntry `json:"changes"`
	HighWatermark int64         `json:"high_watermark"`
	HasMore       bool          `json:"has_more"`
}

// PushRequest is the body of POST /api/changes/{table}.
//
// BaseRevision is the cloud revision the node already incorporated; the
// cloud uses it to compute a watermark that never skips foreign writes.
type PushRequest struct {
	BaseRevision int64         `json:"base_revision" validate:"gte=0"`
	Changes      []ChangeEntry `json:"changes" validate:"required,max=10000,dive"`
}

// PushResponse is the reply to a PushRequest.
type PushResponse struct {
	Table     string `json:"table"`
	Applied   int    `json:"applied"`
	Watermark int64  `json:"watermark"`
}

// TablesResponse is the body of GET /api/tables.
type TablesResponse struct {
	Tables []string `json:"tables"`
}

// SyncRequestResult is the reply to POST /hybrid/sync.
type SyncRequestResult struct {
	Accepted       bool   `json:"accepted"`
	AlreadyRunning bool   `json:"already_running,omitempty"`
	Message        string `json:"message"`
}

// BackupResult is the reply to POST /hybrid/backup.
type BackupResult struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Backup  *BackupSnapshot `json:"backup,omitempty"`
}

// RecordWrite is the body of PUT /hybrid/records/{table}/{id}.
type RecordWrite struct {
	Payload json.RawMessage `json:"payload" validate:"required,jsonpayload"`
}

// SettingsUpdate is the body of PUT /hybrid/config. Nil fields keep their
// current value.
type SettingsUpdate struct {
	AutoSync            *bool   `json:"auto_sync,omitempty"`
	SyncIntervalMinutes *int    `json:"sync_interval_minutes,omitempty" validate:"omitempty,gte=1,lte=1440"`
	AutoBackup          *bool   `json:"auto_backup,omitempty"`
	BackupTime          *string `json:"backup_time,omitempty" validate:"omitempty,datetime=15:04"`
}
