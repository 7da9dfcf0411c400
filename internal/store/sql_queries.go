// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// local store (sqlite3, ? placeholders)
const (
	nextLocalRevision = `
		INSERT INTO table_revisions (table_name, revision) VALUES (?, 1)
		ON CONFLICT (table_name) DO UPDATE SET revision = table_revisions.revision + 1
		RETURNING revision;`

	upsertLocalRecord = `
		INSERT INTO records (table_name, record_id, revision, origin, payload, checksum, deleted, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (table_name, record_id) DO UPDATE SET
			revision   = excluded.revision,
			origin     = excluded.origin,
			payload    = excluded.payload,
			checksum   = excluded.checksum,
			deleted    = excluded.deleted,
			updated_at = excluded.updated_at;`

	// applyRemoteRecord is upsertLocalRecord that leaves alone a record
	// rewritten locally after the last local revision the cycle read.
	applyRemoteRecord = `
		INSERT INTO records (table_name, record_id, revision, origin, payload, checksum, deleted, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (table_name, record_id) DO UPDATE SET
			revision   = excluded.revision,
			origin     = excluded.origin,
			payload    = excluded.payload,
			checksum   = excluded.checksum,
			deleted    = excluded.deleted,
			updated_at = excluded.updated_at
		WHERE records.origin = 'cloud' OR records.revision <= ?;`

	insertLocalChange = `
		INSERT INTO change_log (table_name, record_id, operation, revision, origin, payload, checksum, changed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

	selectLocalRecord = `
		SELECT table_name, record_id, revision, origin, payload, checksum, deleted, updated_at
		FROM records
		WHERE table_name = ? AND record_id = ?;`

	pruneLocalChanges = `DELETE FROM change_log WHERE table_name = ? AND revision <= ?;`

	listLocalTables = `
		SELECT table_name FROM records
		UNION SELECT table_name FROM change_log
		UNION SELECT table_name FROM sync_state
		ORDER BY table_name;`

	upsertSyncState = `
		INSERT INTO sync_state (table_name, last_sync_timestamp, last_sync_revision_cloud, last_sync_revision_local, sync_count, status, last_error)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (table_name) DO UPDATE SET
			last_sync_timestamp      = excluded.last_sync_timestamp,
			last_sync_revision_cloud = excluded.last_sync_revision_cloud,
			last_sync_revision_local = excluded.last_sync_revision_local,
			sync_count               = excluded.sync_count,
			status                   = excluded.status,
			last_error               = excluded.last_error;`

	quickCheck        = `PRAGMA quick_check;`
	readSnapshotBegin = `BEGIN DEFERRED;`
	readSnapshotPin   = `SELECT count(*) FROM sqlite_master;`
	readSnapshotEnd   = `ROLLBACK;`
)

// cloud store (postgres, $n placeholders)
const (
	nextCloudRevision = `
		INSERT INTO cloud_table_revisions (table_name, revision) VALUES ($1, 1)
		ON CONFLICT (table_name) DO UPDATE SET revision = cloud_table_revisions.revision + 1
		RETURNING revision;`

	selectCloudRecordState = `
		SELECT checksum, deleted
		FROM cloud_records
		WHERE table_name = $1 AND record_id = $2
		FOR UPDATE;`

	upsertCloudRecord = `
		INSERT INTO cloud_records (table_name, record_id, revision, origin, node_id, payload, checksum, deleted, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (table_name, record_id) DO UPDATE SET
			revision   = EXCLUDED.revision,
			origin     = EXCLUDED.origin,
			node_id    = EXCLUDED.node_id,
			payload    = EXCLUDED.payload,
			checksum   = EXCLUDED.checksum,
			deleted    = EXCLUDED.deleted,
			updated_at = EXCLUDED.updated_at;`

	insertCloudChange = `
		INSERT INTO cloud_change_log (table_name, record_id, operation, revision, origin, node_id, payload, checksum, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`

	listCloudTables = `SELECT table_name FROM cloud_table_revisions ORDER BY table_name;`
)

var changeColumns = []string{
	"table_name", "record_id", "operation", "revision", "origin", "payload", "checksum", "changed_at",
}

// buildLocalChangesQuery selects one page of the local change log.
func buildLocalChangesQuery(table string, after int64, limit int) (string, []any, error) {
	query, args, err := sq.Select(changeColumns...).
		From("change_log").
		Where(sq.Eq{"table_name": table}).
		Where(sq.Gt{"revision": after}).
		OrderBy("revision ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildCloudChangesQuery selects one page of the cloud change log, including
// the writer node so the caller can filter its own entries.
func buildCloudChangesQuery(table string, after int64, limit int) (string, []any, error) {
	query, args, err := sq.Select(append(append([]string{}, changeColumns...), "node_id")...).
		From("cloud_change_log").
		Where(sq.Eq{"table_name": table}).
		Where(sq.Gt{"revision": after}).
		OrderBy("revision ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildForeignChangesQuery checks whether any node other than nodeID wrote
// to table in the revision range (from, to].
func buildForeignChangesQuery(table, nodeID string, from, to int64) (string, []any, error) {
	query, args, err := sq.Select("COUNT(*)").
		From("cloud_change_log").
		Where(sq.Eq{"table_name": table}).
		Where(sq.Gt{"revision": from}).
		Where(sq.LtOrEq{"revision": to}).
		Where(sq.NotEq{"node_id": nodeID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildRecordCountsQuery counts live records per table.
func buildRecordCountsQuery() (string, []any, error) {
	query, args, err := sq.Select("table_name", "COUNT(*)").
		From("records").
		Where(sq.Eq{"deleted": 0}).
		GroupBy("table_name").
		OrderBy("table_name").
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildSyncStatesQuery selects sync states, optionally of a single table.
func buildSyncStatesQuery(table string) (string, []any, error) {
	builder := sq.Select(
		"table_name", "last_sync_timestamp", "last_sync_revision_cloud",
		"last_sync_revision_local", "sync_count", "status", "last_error",
	).From("sync_state")

	if table != "" {
		builder = builder.Where(sq.Eq{"table_name": table})
	}

	query, args, err := builder.OrderBy("table_name").PlaceholderFormat(sq.Question).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
