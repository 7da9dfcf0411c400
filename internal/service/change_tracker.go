// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"iter"

	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
	"github.com/MKhiriev/go-hybrid-sync/internal/store"
	"github.com/MKhiriev/go-hybrid-sync/internal/utils"
	"github.com/MKhiriev/go-hybrid-sync/models"
)

const defaultChangePageSize = 500

type changeTracker struct {
	records   store.RecordRepository
	changeLog store.ChangeLogRepository
	pageSize  int

	logger *logger.Logger
}

// NewChangeTracker returns a ChangeTracker over the local store. PendingSince
// reads pageSize entries per query; a non-positive value selects the default.
func NewChangeTracker(records store.RecordRepository, changeLog store.ChangeLogRepository, pageSize int, logger *logger.Logger) ChangeTracker {
	if pageSize <= 0 {
		pageSize = defaultChangePageSize
	}
	return &changeTracker{
		records:   records,
		changeLog: changeLog,
		pageSize:  pageSize,
		logger:    logger,
	}
}

func (c *changeTracker) Record(ctx context.Context, tx *sql.Tx, rec models.Record, op models.Operation) (models.ChangeEntry, error) {
	if err := prepareRecord(&rec, op); err != nil {
		return models.ChangeEntry{}, err
	}
	return c.records.AppendChange(ctx, tx, rec, op)
}

func (c *changeTracker) RecordWrite(ctx context.Context, rec models.Record, op models.Operation) (models.ChangeEntry, error) {
	if err := prepareRecord(&rec, op); err != nil {
		return models.ChangeEntry{}, err
	}

	entry, err := c.records.WriteRecord(ctx, rec, op)
	if err != nil {
		return models.ChangeEntry{}, wrapStorage(err)
	}

	logger.FromContext(ctx).Debug().
		Str("func", "changeTracker.RecordWrite").
		Str("table", entry.Table).
		Str("record_id", entry.RecordID).
		Str("operation", string(entry.Operation)).
		Int64("revision", entry.Revision).
		Msg("change recorded")
	return entry, nil
}

func (c *changeTracker) PendingSince(ctx context.Context, table string, watermark int64) iter.Seq2[models.ChangeEntry, error] {
	return func(yield func(models.ChangeEntry, error) bool) {
		after := watermark
		for {
			page, err := c.changeLog.ChangesSince(ctx, table, after, c.pageSize)
			if err != nil {
				yield(models.ChangeEntry{}, wrapStorage(err))
				return
			}

			for _, entry := range page {
				if !yield(entry, nil) {
					return
				}
				after = entry.Revision
			}

			if len(page) < c.pageSize {
				return
			}
		}
	}
}

func (c *changeTracker) Prune(ctx context.Context, table string, upTo int64) (int64, error) {
	n, err := c.changeLog.PruneChanges(ctx, table, upTo)
	if err != nil {
		return 0, wrapStorage(err)
	}
	return n, nil
}

// prepareRecord validates rec for op and fills in its checksum.
func prepareRecord(rec *models.Record, op models.Operation) error {
	if !op.Valid() {
		return fmt.Errorf("%w: unknown operation %q", ErrInvalidRecord, op)
	}
	if rec.Table == "" || len(rec.Table) > 128 {
		return fmt.Errorf("%w: table name must be 1..128 characters", ErrInvalidRecord)
	}
	if rec.ID == "" || len(rec.ID) > 256 {
		return fmt.Errorf("%w: record id must be 1..256 characters", ErrInvalidRecord)
	}

	rec.Deleted = op == models.OperationDelete
	if rec.Deleted {
		rec.Payload = nil
	} else {
		if len(rec.Payload) == 0 {
			return fmt.Errorf("%w: %s requires a payload", ErrInvalidRecord, op)
		}
		if !json.Valid(rec.Payload) {
			return fmt.Errorf("%w: payload is not valid JSON", ErrInvalidRecord)
		}
	}

	rec.Checksum = utils.Checksum(rec.Payload, rec.Deleted)
	return nil
}

// wrapStorage tags local storage faults with ErrStorage so callers can tell
// them from ordinary query errors.
func wrapStorage(err error) error {
	if store.IsStorageFault(err) {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return err
}
