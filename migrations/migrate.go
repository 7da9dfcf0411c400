// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations embeds the goose schema migrations of the local SQLite
// store and the cloud Postgres store.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

// Schema selects a migration set.
type Schema struct {
	dir     string
	dialect string
}

var (
	// Local is the field node schema (records, change log, sync state).
	Local = Schema{dir: "local", dialect: "sqlite3"}
	// Cloud is the central store schema.
	Cloud = Schema{dir: "cloud", dialect: "pgx"}
)

//go:embed local/*.sql cloud/*.sql
var embedMigrations embed.FS

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

// Migrate applies every pending migration of schema to db.
func Migrate(db *sql.DB, schema Schema) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(schema.dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, schema.dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

// Version returns the current schema version of db.
func Version(db *sql.DB, schema Schema) (int64, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect(schema.dialect); err != nil {
		return 0, fmt.Errorf("migration error setting dialect for db: %w", err)
	}
	return goose.GetDBVersion(db)
}
