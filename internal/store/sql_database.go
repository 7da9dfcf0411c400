// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
	"github.com/MKhiriev/go-hybrid-sync/migrations"
)

// ErrorClassificator inspects driver errors.
type ErrorClassificator interface {
	// Classify reports whether the failed operation may be retried.
	Classify(err error) ErrorClassification
	// Fault wraps err with a storage fault sentinel when the driver reports
	// a failure of the storage itself; other errors are returned unchanged.
	Fault(err error) error
}

// DB is a database handle shared by the repositories of one store.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
	schema             migrations.Schema
	path               string

	// gate is held exclusively around every commit. A snapshot holds it
	// shared only while it pins its read transaction, so a snapshot never
	// starts while a commit is in flight. Nil for the cloud store.
	gate *sync.RWMutex
}

// Migrate applies the pending schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.schema)
}

// fault maps driver errors to storage faults where applicable.
func (db *DB) fault(err error) error {
	if err == nil || db.errorClassificator == nil {
		return err
	}
	return db.errorClassificator.Fault(err)
}

// inTx runs fn in a transaction and commits it under the commit gate.
func (db *DB) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, db.fault(err))
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return db.fault(err)
	}

	if db.gate != nil {
		db.gate.Lock()
		defer db.gate.Unlock()
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, db.fault(err))
	}
	return nil
}

// holdGate acquires the shared side of the commit gate, polling until
// timeout elapses or ctx is done.
func (db *DB) holdGate(ctx context.Context, timeout time.Duration) (func(), error) {
	if db.gate == nil {
		return func() {}, nil
	}

	deadline := time.Now().Add(timeout)
	for {
		if db.gate.TryRLock() {
			return db.gate.RUnlock, nil
		}
		if time.Now().After(deadline) {
			return nil, ErrSnapshotLockTimeout
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(5 * time.Millisecond):
		}
	}
}
