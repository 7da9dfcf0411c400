// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// Operation is the kind of mutation captured by a ChangeEntry.
type Operation string

const (
	OperationInsert Operation = "insert"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// Valid reports whether op is insert, update or delete.
func (op Operation) Valid() bool {
	switch op {
	case OperationInsert, OperationUpdate, OperationDelete:
		return true
	}
	return false
}

// ChangeEntry is one row of a per-table change log.
//
// For a given (Table, RecordID) entries are totally ordered by Revision.
// Payload and Checksum carry the record state produced by the change so the
// opposite store can apply it without a second round-trip; both are empty
// for deletes.
type ChangeEntry struct {
	Table     string          `json:"table" validate:"required,max=128"`
	RecordID  string          `json:"record_id" validate:"required,max=256"`
	Operation Operation       `json:"operation" validate:"required,oneof=insert update delete"`
	Revision  int64           `json:"revision" validate:"gte=0"`
	Origin    Origin          `json:"origin" validate:"required,oneof=local cloud"`
	Timestamp time.Time       `json:"timestamp" validate:"required"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Checksum  string          `json:"checksum,omitempty"`
}

// IsDelete reports whether the entry deletes its record.
func (c ChangeEntry) IsDelete() bool {
	return c.Operation == OperationDelete
}

// Key returns the (table, id) key the entry refers to.
func (c ChangeEntry) Key() RecordKey {
	return RecordKey{Table: c.Table, ID: c.RecordID}
}

// ToRecord converts the entry into the record state it produces.
func (c ChangeEntry) ToRecord() Record {
	return Record{
		Table:     c.Table,
		ID:        c.RecordID,
		Revision:  c.Revision,
		Origin:    c.Origin,
		Payload:   c.Payload,
		Checksum:  c.Checksum,
		Deleted:   c.IsDelete(),
		UpdatedAt: c.Timestamp,
	}
}
