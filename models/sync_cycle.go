// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncReason names what triggered a sync cycle.
type SyncReason string

const (
	SyncReasonPeriodic  SyncReason = "periodic"
	SyncReasonReconnect SyncReason = "reconnect"
	SyncReasonManual    SyncReason = "manual"
)

// ConflictRule names the rule that settled a conflict.
type ConflictRule string

const (
	ConflictRuleLocalDelete     ConflictRule = "local_delete_precedence"
	ConflictRuleLastWriterWins  ConflictRule = "last_writer_wins"
	ConflictRuleTieBreak        ConflictRule = "tie_break"
	ConflictRuleIdenticalChange ConflictRule = "identical_change"
)

// ConflictResolution is the audit record of one record touched on both
// sides since the last sync.
type ConflictResolution struct {
	Table          string       `json:"table"`
	RecordID       string       `json:"record_id"`
	Winner         Origin       `json:"winner"`
	Rule           ConflictRule `json:"rule"`
	LocalRevision  int64        `json:"local_revision"`
	CloudRevision  int64        `json:"cloud_revision"`
	LocalOperation Operation    `json:"local_operation"`
	CloudOperation Operation    `json:"cloud_operation"`
	LocalTimestamp time.Time    `json:"local_timestamp"`
	CloudTimestamp time.Time    `json:"cloud_timestamp"`
}

// TableResult summarises one table's portion of a cycle.
type TableResult struct {
	Table        string     `json:"table"`
	Status       SyncStatus `json:"status"`
	Pushed       int        `json:"pushed"`
	Pulled       int        `json:"pulled"`
	Conflicts    int        `json:"conflicts"`
	Error        string     `json:"error,omitempty"`
	WatermarkIn  int64      `json:"watermark_local"`
	WatermarkOut int64      `json:"watermark_cloud"`
}

// SyncCycle is the ephemeral run record of one reconciliation pass.
type SyncCycle struct {
	CycleID           string               `json:"cycle_id"`
	Reason            SyncReason           `json:"reason"`
	StartedAt         time.Time            `json:"started_at"`
	FinishedAt        time.Time            `json:"finished_at"`
	TablesProcessed   int                  `json:"tables_processed"`
	ConflictsResolved int                  `json:"conflicts_resolved"`
	Conflicts         []ConflictResolution `json:"conflicts,omitempty"`
	Tables            []TableResult        `json:"tables"`
	Errors            map[string]string    `json:"errors,omitempty"`
}

// Failed reports whether any table failed in the cycle.
func (c SyncCycle) Failed() bool {
	return len(c.Errors) > 0
}
