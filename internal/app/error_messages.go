// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// node operator API and the cloud change-feed API.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgUnauthorizedNode is returned when a change-feed request carries no
	// node token or one that cannot be verified.
	MsgUnauthorizedNode = "node token is missing, expired or invalid"

	// MsgNoNodeIDProvided is returned when a handler requires the caller's
	// node ID but none is present in the request context.
	MsgNoNodeIDProvided = "no node ID provided"

	// MsgInvalidRevision is returned when the "after" or "limit" query
	// parameter is not a non-negative integer.
	MsgInvalidRevision = "after and limit must be non-negative integers"

	// MsgIntegrityCheckFailed is returned when the body checksum header does
	// not match the received body.
	MsgIntegrityCheckFailed = "integrity check failed"

	// MsgCloudUnavailable is returned when the central store rejects a
	// request with a transient error. Nodes retry on their next cycle.
	MsgCloudUnavailable = "central store is temporarily unavailable"

	// MsgSyncStarted is returned when a manual sync request was accepted.
	MsgSyncStarted = "sync started"

	// MsgBackupCreated is returned after a successful manual backup.
	MsgBackupCreated = "backup created"

	// MsgBackupFailed is the fallback message of a failed backup.
	MsgBackupFailed = "backup failed"

	// MsgStatusUnavailable is returned when the status document cannot be
	// assembled because the sync state store is unreadable.
	MsgStatusUnavailable = "status unavailable, local storage error"

	// MsgRecordNotFound is returned when a record lookup matches nothing.
	MsgRecordNotFound = "record not found"
)
