// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
	"github.com/MKhiriev/go-hybrid-sync/models"
)

// localRepository is the SQLite-backed implementation of the field node
// repositories. Domain records of every table share the records table;
// a table is an opaque named collection.
type localRepository struct {
	*DB
	logger *logger.Logger

	// snapshotPinned, when set, runs after a snapshot has pinned its read
	// transaction and released the commit gate.
	snapshotPinned func()
}

// NewLocalRepository constructs the local store repositories over db.
func NewLocalRepository(db *DB, logger *logger.Logger) *localRepository {
	return &localRepository{
		DB:     db,
		logger: logger,
	}
}

func (l *localRepository) WriteRecord(ctx context.Context, rec models.Record, op models.Operation) (models.ChangeEntry, error) {
	log := logger.FromContext(ctx)

	var entry models.ChangeEntry
	err := l.inTx(ctx, func(tx *sql.Tx) error {
		var appendErr error
		entry, appendErr = l.AppendChange(ctx, tx, rec, op)
		return appendErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "localRepository.WriteRecord").
			Str("table", rec.Table).
			Str("record_id", rec.ID).
			Str("operation", string(op)).
			Msg("failed to write record")
		return models.ChangeEntry{}, err
	}

	return entry, nil
}

func (l *localRepository) AppendChange(ctx context.Context, tx *sql.Tx, rec models.Record, op models.Operation) (models.ChangeEntry, error) {
	log := logger.FromContext(ctx)

	if rec.Table == "" || len(rec.Table) > 128 {
		return models.ChangeEntry{}, ErrInvalidTable
	}

	revision, err := nextRevision(ctx, tx, nextLocalRevision, rec.Table)
	if err != nil {
		log.Err(err).
			Str("func", "localRepository.AppendChange").
			Str("table", rec.Table).
			Msg("failed to assign revision")
		return models.ChangeEntry{}, err
	}

	now := rec.UpdatedAt
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	rec.Revision = revision
	rec.Origin = models.OriginLocal
	rec.UpdatedAt = now
	rec.Deleted = op == models.OperationDelete
	if rec.Deleted {
		rec.Payload = nil
	}

	if _, err := tx.ExecContext(ctx, upsertLocalRecord,
		rec.Table, rec.ID, rec.Revision, rec.Origin, []byte(rec.Payload), rec.Checksum, rec.Deleted, rec.UpdatedAt,
	); err != nil {
		log.Err(err).
			Str("func", "localRepository.AppendChange").
			Str("table", rec.Table).
			Str("record_id", rec.ID).
			Msg("failed to upsert record")
		return models.ChangeEntry{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	entry := models.ChangeEntry{
		Table:     rec.Table,
		RecordID:  rec.ID,
		Operation: op,
		Revision:  revision,
		Origin:    models.OriginLocal,
		Timestamp: now,
		Payload:   rec.Payload,
		Checksum:  rec.Checksum,
	}

	if _, err := tx.ExecContext(ctx, insertLocalChange,
		entry.Table, entry.RecordID, entry.Operation, entry.Revision, entry.Origin, []byte(entry.Payload), entry.Checksum, entry.Timestamp,
	); err != nil {
		log.Err(err).
			Str("func", "localRepository.AppendChange").
			Str("table", rec.Table).
			Str("record_id", rec.ID).
			Int64("revision", revision).
			Msg("failed to append change log entry")
		return models.ChangeEntry{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return entry, nil
}

func (l *localRepository) GetRecord(ctx context.Context, table, id string) (models.Record, error) {
	log := logger.FromContext(ctx)

	var rec models.Record
	var payload []byte
	err := l.DB.QueryRowContext(ctx, selectLocalRecord, table, id).Scan(
		&rec.Table, &rec.ID, &rec.Revision, &rec.Origin, &payload, &rec.Checksum, &rec.Deleted, &rec.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "localRepository.GetRecord").
			Str("table", table).
			Str("record_id", id).
			Msg("failed to query record")
		return models.Record{}, fmt.Errorf("%w: %w", ErrScanningRow, l.fault(err))
	}
	if len(payload) > 0 {
		rec.Payload = payload
	}

	return rec, nil
}

func (l *localRepository) RecordCounts(ctx context.Context) (map[string]int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildRecordCountsQuery()
	if err != nil {
		return nil, err
	}

	rows, err := l.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "localRepository.RecordCounts").Msg("failed to query record counts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, l.fault(err))
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var table string
		var count int64
		if err := rows.Scan(&table, &count); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		counts[table] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return counts, nil
}

func (l *localRepository) ListTables(ctx context.Context) ([]string, error) {
	rows, err := l.DB.QueryContext(ctx, listLocalTables)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "localRepository.ListTables").Msg("failed to list tables")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, l.fault(err))
	}
	defer rows.Close()

	return scanStrings(rows)
}

func (l *localRepository) ChangesSince(ctx context.Context, table string, after int64, limit int) ([]models.ChangeEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildLocalChangesQuery(table, after, limit)
	if err != nil {
		return nil, err
	}

	rows, err := l.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "localRepository.ChangesSince").
			Str("table", table).
			Int64("after", after).
			Msg("failed to query change log")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, l.fault(err))
	}
	defer rows.Close()

	changes := make([]models.ChangeEntry, 0, limit)
	for rows.Next() {
		var entry models.ChangeEntry
		var payload []byte
		if err := rows.Scan(
			&entry.Table, &entry.RecordID, &entry.Operation, &entry.Revision,
			&entry.Origin, &payload, &entry.Checksum, &entry.Timestamp,
		); err != nil {
			log.Err(err).Str("func", "localRepository.ChangesSince").Msg("failed to scan change row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if len(payload) > 0 {
			entry.Payload = payload
		}
		changes = append(changes, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, l.fault(err))
	}

	return changes, nil
}

func (l *localRepository) PruneChanges(ctx context.Context, table string, upTo int64) (int64, error) {
	var pruned int64
	err := l.inTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, pruneLocalChanges, table, upTo)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		pruned, _ = result.RowsAffected()
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localRepository.PruneChanges").
			Str("table", table).
			Int64("up_to", upTo).
			Msg("failed to prune change log")
		return 0, err
	}

	return pruned, nil
}

func (l *localRepository) GetSyncState(ctx context.Context, table string) (models.SyncState, error) {
	states, err := l.querySyncStates(ctx, table)
	if err != nil {
		return models.SyncState{}, err
	}
	if len(states) == 0 {
		return models.NewSyncState(table), nil
	}
	return states[0], nil
}

func (l *localRepository) ListSyncStates(ctx context.Context) ([]models.SyncState, error) {
	return l.querySyncStates(ctx, "")
}

func (l *localRepository) querySyncStates(ctx context.Context, table string) ([]models.SyncState, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSyncStatesQuery(table)
	if err != nil {
		return nil, err
	}

	rows, err := l.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "localRepository.querySyncStates").Str("table", table).Msg("failed to query sync state")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, l.fault(err))
	}
	defer rows.Close()

	var states []models.SyncState
	for rows.Next() {
		var state models.SyncState
		var lastSync sql.NullTime
		if err := rows.Scan(
			&state.TableName, &lastSync, &state.LastSyncRevisionCloud, &state.LastSyncRevisionLocal,
			&state.SyncCount, &state.Status, &state.LastError,
		); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if lastSync.Valid {
			ts := lastSync.Time
			state.LastSyncTimestamp = &ts
		}
		states = append(states, state)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return states, nil
}

func (l *localRepository) SaveSyncState(ctx context.Context, state models.SyncState) error {
	err := l.inTx(ctx, func(tx *sql.Tx) error {
		return saveSyncState(ctx, tx, state)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localRepository.SaveSyncState").
			Str("table", state.TableName).
			Msg("failed to save sync state")
	}
	return err
}

func (l *localRepository) ApplyRemote(ctx context.Context, table string, changes []models.ChangeEntry, state models.SyncState) error {
	log := logger.FromContext(ctx)

	err := l.inTx(ctx, func(tx *sql.Tx) error {
		for _, change := range changes {
			revision, err := nextRevision(ctx, tx, nextLocalRevision, table)
			if err != nil {
				return err
			}

			rec := change.ToRecord()
			rec.Table = table
			rec.Revision = revision
			rec.Origin = models.OriginCloud

			if _, err := tx.ExecContext(ctx, applyRemoteRecord,
				rec.Table, rec.ID, rec.Revision, rec.Origin, []byte(rec.Payload), rec.Checksum, rec.Deleted, rec.UpdatedAt.UTC(),
				state.LastSyncRevisionLocal,
			); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}

		return saveSyncState(ctx, tx, state)
	})
	if err != nil {
		log.Err(err).
			Str("func", "localRepository.ApplyRemote").
			Str("table", table).
			Int("changes", len(changes)).
			Msg("failed to apply remote changes")
		return err
	}

	log.Debug().
		Str("func", "localRepository.ApplyRemote").
		Str("table", table).
		Int("changes", len(changes)).
		Msg("remote changes applied")
	return nil
}

func saveSyncState(ctx context.Context, tx *sql.Tx, state models.SyncState) error {
	var lastSync any
	if state.LastSyncTimestamp != nil {
		lastSync = state.LastSyncTimestamp.UTC()
	}

	if _, err := tx.ExecContext(ctx, upsertSyncState,
		state.TableName, lastSync, state.LastSyncRevisionCloud, state.LastSyncRevisionLocal,
		state.SyncCount, state.Status, state.LastError,
	); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// nextRevision increments the per-table counter with query and returns the
// new value.
func nextRevision(ctx context.Context, tx *sql.Tx, query, table string) (int64, error) {
	var revision int64
	if err := tx.QueryRowContext(ctx, query, table).Scan(&revision); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return revision, nil
}

func scanStrings(rows *sql.Rows) ([]string, error) {
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return out, nil
}
