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

type cloudRepository struct {
	*DB
	logger *logger.Logger
}

// NewCloudRepository constructs the Postgres-backed [CloudRepository].
func NewCloudRepository(db *DB, logger *logger.Logger) CloudRepository {
	return &cloudRepository{
		DB:     db,
		logger: logger,
	}
}

func (c *cloudRepository) ChangesSince(ctx context.Context, table string, after int64, limit int, excludeNode string) (models.ChangesResponse, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCloudChangesQuery(table, after, limit)
	if err != nil {
		return models.ChangesResponse{}, err
	}

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "cloudRepository.ChangesSince").
			Str("table", table).
			Int64("after", after).
			Str("pg_code", postgresError(err)).
			Msg("failed to query cloud change log")
		return models.ChangesResponse{}, fmt.Errorf("%w: %w", ErrExecutingQuery, c.fault(err))
	}
	defer rows.Close()

	resp := models.ChangesResponse{
		Table:         table,
		Changes:       make([]models.ChangeEntry, 0),
		HighWatermark: after,
	}

	scanned := 0
	for rows.Next() {
		var entry models.ChangeEntry
		var payload []byte
		var nodeID string
		if err := rows.Scan(
			&entry.Table, &entry.RecordID, &entry.Operation, &entry.Revision,
			&entry.Origin, &payload, &entry.Checksum, &entry.Timestamp, &nodeID,
		); err != nil {
			log.Err(err).Str("func", "cloudRepository.ChangesSince").Msg("failed to scan change row")
			return models.ChangesResponse{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		scanned++
		resp.HighWatermark = entry.Revision

		// the caller already holds its own writes
		if excludeNode != "" && nodeID == excludeNode {
			continue
		}

		if len(payload) > 0 {
			entry.Payload = payload
		}
		entry.Origin = models.OriginCloud
		resp.Changes = append(resp.Changes, entry)
	}
	if err := rows.Err(); err != nil {
		return models.ChangesResponse{}, fmt.Errorf("%w: %w", ErrScanningRows, c.fault(err))
	}

	resp.HasMore = limit > 0 && scanned == limit
	return resp, nil
}

func (c *cloudRepository) ApplyChanges(ctx context.Context, table, nodeID string, req models.PushRequest) (models.PushResponse, error) {
	log := logger.FromContext(ctx)

	if table == "" || len(table) > 128 {
		return models.PushResponse{}, ErrInvalidTable
	}

	resp := models.PushResponse{Table: table, Watermark: req.BaseRevision}

	err := c.inTx(ctx, func(tx *sql.Tx) error {
		var maxAssigned, lastIncoming int64
		applied := 0

		for _, change := range req.Changes {
			if change.Revision < lastIncoming {
				return ErrOutOfOrderRevision
			}
			lastIncoming = change.Revision

			same, err := c.sameState(ctx, tx, table, change)
			if err != nil {
				return err
			}
			if same {
				continue
			}

			revision, err := nextRevision(ctx, tx, nextCloudRevision, table)
			if err != nil {
				return err
			}

			ts := change.Timestamp
			if ts.IsZero() {
				ts = time.Now()
			}
			ts = ts.UTC()

			var payload []byte
			if !change.IsDelete() {
				payload = change.Payload
			}

			if _, err := tx.ExecContext(ctx, upsertCloudRecord,
				table, change.RecordID, revision, models.OriginLocal, nodeID, payload, change.Checksum, change.IsDelete(), ts,
			); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}

			if _, err := tx.ExecContext(ctx, insertCloudChange,
				table, change.RecordID, change.Operation, revision, models.OriginLocal, nodeID, payload, change.Checksum, ts,
			); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}

			maxAssigned = revision
			applied++
		}

		resp.Applied = applied
		if applied == 0 {
			return nil
		}

		foreign, err := c.foreignChanges(ctx, tx, table, nodeID, req.BaseRevision, maxAssigned)
		if err != nil {
			return err
		}
		// advancing past a foreign write would hide it from the node forever
		if foreign == 0 {
			resp.Watermark = maxAssigned
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "cloudRepository.ApplyChanges").
			Str("table", table).
			Str("node_id", nodeID).
			Int("changes", len(req.Changes)).
			Str("pg_code", postgresError(err)).
			Msg("failed to apply pushed changes")
		return models.PushResponse{}, err
	}

	log.Debug().
		Str("func", "cloudRepository.ApplyChanges").
		Str("table", table).
		Str("node_id", nodeID).
		Int("applied", resp.Applied).
		Int64("watermark", resp.Watermark).
		Msg("pushed changes applied")
	return resp, nil
}

// sameState reports whether the stored record already matches change, which
// makes a re-sent batch a no-op.
func (c *cloudRepository) sameState(ctx context.Context, tx *sql.Tx, table string, change models.ChangeEntry) (bool, error) {
	var checksum string
	var deleted bool
	err := tx.QueryRowContext(ctx, selectCloudRecordState, table, change.RecordID).Scan(&checksum, &deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return checksum == change.Checksum && deleted == change.IsDelete(), nil
}

func (c *cloudRepository) foreignChanges(ctx context.Context, tx *sql.Tx, table, nodeID string, from, to int64) (int64, error) {
	query, args, err := buildForeignChangesQuery(table, nodeID, from, to)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count, nil
}

func (c *cloudRepository) ListTables(ctx context.Context) ([]string, error) {
	rows, err := c.DB.QueryContext(ctx, listCloudTables)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "cloudRepository.ListTables").
			Str("pg_code", postgresError(err)).
			Msg("failed to list tables")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, c.fault(err))
	}
	defer rows.Close()

	return scanStrings(rows)
}
