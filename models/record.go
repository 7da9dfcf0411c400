// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package models holds the data types shared by the local node, the cloud
// store service and the transport between them.
package models

import (
	"encoding/json"
	"time"
)

// Origin tags which store produced a write.
type Origin string

const (
	// OriginLocal marks writes made on the field node.
	OriginLocal Origin = "local"
	// OriginCloud marks writes received from the central cloud store.
	OriginCloud Origin = "cloud"
)

// Valid reports whether o is one of the known origins.
func (o Origin) Valid() bool {
	return o == OriginLocal || o == OriginCloud
}

// Record is a domain entity belonging to exactly one named table.
//
// The sync core does not interpret Payload: a record is an opaque keyed
// document. Revision is the logical clock of the store that holds the record,
// and Checksum is the blake2b digest of Payload and Deleted.
type Record struct {
	Table     string          `json:"table"`
	ID        string          `json:"id"`
	Revision  int64           `json:"revision"`
	Origin    Origin          `json:"origin"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Checksum  string          `json:"checksum"`
	Deleted   bool            `json:"deleted"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// RecordKey identifies a record inside the sync core.
type RecordKey struct {
	Table string
	ID    string
}

// Key returns the (table, id) key of the record.
func (r Record) Key() RecordKey {
	return RecordKey{Table: r.Table, ID: r.ID}
}
