// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrRecordNotFound is returned when a (table, id) lookup matches nothing.
	ErrRecordNotFound = errors.New("record was not found")

	// ErrInvalidTable is returned for an empty or oversized table name.
	ErrInvalidTable = errors.New("invalid table name")

	// ErrOutOfOrderRevision is returned when a batch of changes for the same
	// record is not ordered by revision.
	ErrOutOfOrderRevision = errors.New("change revisions are out of order")

	// ErrSnapshotLockTimeout is returned when a snapshot cannot acquire the
	// commit gate before its deadline.
	ErrSnapshotLockTimeout = errors.New("timed out waiting for commit gate")
)

// Storage faults. These mark failures of the local store itself rather than
// of a single query: the disk is full, the file is corrupt, or the OS
// reported an I/O error. They are matched with [IsStorageFault].
var (
	ErrStorageFull    = errors.New("local storage is full")
	ErrStorageCorrupt = errors.New("local storage is corrupt")
	ErrStorageIO      = errors.New("local storage i/o failure")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")
)

// IsStorageFault reports whether err is a local storage fault.
func IsStorageFault(err error) bool {
	return errors.Is(err, ErrStorageFull) || errors.Is(err, ErrStorageCorrupt) || errors.Is(err, ErrStorageIO)
}
