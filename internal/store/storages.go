// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
)

// LocalStorages groups the repositories of the field node's SQLite store.
// All of them share one connection pool and commit gate.
type LocalStorages struct {
	Records   RecordRepository
	ChangeLog ChangeLogRepository
	SyncState SyncStateRepository
	Snapshots SnapshotRepository

	db *DB
}

// NewLocalStorages opens the SQLite database at path, runs pending migrations
// and wires the local repositories to it.
func NewLocalStorages(ctx context.Context, path string, logger *logger.Logger) (*LocalStorages, error) {
	logger.Info().Str("path", path).Msg("opening local store...")

	db, err := NewConnectSQLite(ctx, path, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	repo := NewLocalRepository(db, logger)
	return &LocalStorages{
		Records:   repo,
		ChangeLog: repo,
		SyncState: repo,
		Snapshots: repo,
		db:        db,
	}, nil
}

// Close releases the connection pool.
func (s *LocalStorages) Close() error {
	return s.db.Close()
}

// CloudStorages groups the repositories of the central Postgres store.
type CloudStorages struct {
	Changes CloudRepository

	db *DB
}

// NewCloudStorages connects to Postgres, runs pending migrations and wires
// the cloud repository.
func NewCloudStorages(ctx context.Context, dsn string, logger *logger.Logger) (*CloudStorages, error) {
	logger.Info().Msg("creating cloud storages...")

	db, err := NewConnectPostgres(ctx, dsn, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &CloudStorages{
		Changes: NewCloudRepository(db, logger),
		db:      db,
	}, nil
}

// Ping checks the database connection.
func (s *CloudStorages) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the connection pool.
func (s *CloudStorages) Close() error {
	return s.db.Close()
}
