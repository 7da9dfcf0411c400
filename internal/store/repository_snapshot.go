// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
	"github.com/mattn/go-sqlite3"
)

func (l *localRepository) Snapshot(ctx context.Context, dest string, lockTimeout time.Duration) error {
	log := logger.FromContext(ctx)

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageIO, err)
	}

	src, err := l.DB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, l.fault(err))
	}
	defer src.Close()

	if err = l.pinReadSnapshot(ctx, src, lockTimeout); err != nil {
		log.Err(err).
			Str("func", "localRepository.Snapshot").
			Dur("lock_timeout", lockTimeout).
			Msg("failed to pin read snapshot")
		return err
	}
	defer src.ExecContext(context.WithoutCancel(ctx), readSnapshotEnd)

	if l.snapshotPinned != nil {
		l.snapshotPinned()
	}

	if err = copyDatabase(ctx, src, dest); err != nil {
		log.Err(err).
			Str("func", "localRepository.Snapshot").
			Str("dest", dest).
			Msg("failed to write snapshot")
		_ = os.Remove(dest)
		return fmt.Errorf("%w: %w", ErrExecutingStatement, l.fault(err))
	}

	log.Debug().Str("func", "localRepository.Snapshot").Str("dest", dest).Msg("snapshot written")
	return nil
}

// pinReadSnapshot opens a read transaction on conn while holding the shared
// side of the commit gate. In WAL mode the transaction keeps seeing the
// database as of this instant; commits resume as soon as the gate is
// released.
func (l *localRepository) pinReadSnapshot(ctx context.Context, conn *sql.Conn, timeout time.Duration) error {
	release, err := l.holdGate(ctx, timeout)
	if err != nil {
		return err
	}
	defer release()

	if _, err = conn.ExecContext(ctx, readSnapshotBegin); err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, l.fault(err))
	}

	var objects int
	if err = conn.QueryRowContext(ctx, readSnapshotPin).Scan(&objects); err != nil {
		_, _ = conn.ExecContext(context.WithoutCancel(ctx), readSnapshotEnd)
		return fmt.Errorf("%w: %w", ErrExecutingQuery, l.fault(err))
	}
	return nil
}

// copyDatabase copies the main database of src into a new file at dest with
// the SQLite online backup API. The copy runs inside the read transaction
// src already holds, so it is consistent with the pinned snapshot.
func copyDatabase(ctx context.Context, src *sql.Conn, dest string) error {
	dst, err := sql.Open("sqlite3", "file:"+dest)
	if err != nil {
		return err
	}
	defer dst.Close()

	dstConn, err := dst.Conn(ctx)
	if err != nil {
		return err
	}
	defer dstConn.Close()

	return dstConn.Raw(func(dstDriver any) error {
		return src.Raw(func(srcDriver any) error {
			to, ok := dstDriver.(*sqlite3.SQLiteConn)
			if !ok {
				return fmt.Errorf("unexpected driver connection %T", dstDriver)
			}
			from, ok := srcDriver.(*sqlite3.SQLiteConn)
			if !ok {
				return fmt.Errorf("unexpected driver connection %T", srcDriver)
			}

			backup, err := to.Backup("main", from, "main")
			if err != nil {
				return err
			}
			if _, err = backup.Step(-1); err != nil {
				_ = backup.Finish()
				return err
			}
			return backup.Finish()
		})
	})
}

func (l *localRepository) QuickCheck(ctx context.Context) error {
	rows, err := l.DB.QueryContext(ctx, quickCheck)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, l.fault(err))
	}
	defer rows.Close()

	results, err := scanStrings(rows)
	if err != nil {
		return l.fault(err)
	}

	if len(results) == 1 && results[0] == "ok" {
		return nil
	}

	logger.FromContext(ctx).Error().
		Str("func", "localRepository.QuickCheck").
		Strs("problems", results).
		Msg("integrity check failed")
	return fmt.Errorf("%w: %s", ErrStorageCorrupt, strings.Join(results, "; "))
}

func (l *localRepository) Size() (int64, error) {
	var total int64
	for _, name := range []string{l.path, l.path + "-wal"} {
		info, err := os.Stat(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrStorageIO, err)
		}
		total += info.Size()
	}
	return total, nil
}
