// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileOptions controls rotation of a log file.
type FileOptions struct {
	Dir        string
	FileName   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

func (o FileOptions) rotator() *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filepath.Join(o.Dir, o.FileName),
		MaxSize:    o.MaxSizeMB,
		MaxBackups: o.MaxBackups,
		MaxAge:     o.MaxAgeDays,
		Compress:   true,
	}
}

// NewFileLogger returns a logger that writes to stdout and to a rotated file
// under opts.Dir. The returned closer releases the file.
func NewFileLogger(role string, opts FileOptions) (*Logger, io.Closer, error) {
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, nil, err
	}

	rotator := opts.rotator()
	return newLogger(zerolog.MultiLevelWriter(os.Stdout, rotator), role), rotator, nil
}

// AuditLogger records completed sync cycles and backups as one JSON line each
// in a dedicated rotated file.
type AuditLogger struct {
	zerolog.Logger
	closer io.Closer
}

// NewAuditLogger opens the audit log described by opts.
func NewAuditLogger(opts FileOptions) (*AuditLogger, error) {
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, err
	}

	rotator := opts.rotator()
	return &AuditLogger{
		Logger: zerolog.New(rotator).With().Str("role", "audit").Timestamp().Logger(),
		closer: rotator,
	}, nil
}

// NewAuditLoggerTo writes audit records to w.
func NewAuditLoggerTo(w io.Writer) *AuditLogger {
	return &AuditLogger{Logger: zerolog.New(w).With().Str("role", "audit").Timestamp().Logger()}
}

// NopAudit discards audit records.
func NopAudit() *AuditLogger {
	return &AuditLogger{Logger: zerolog.Nop()}
}

// Record writes one audit record of the given kind with v as its body.
func (a *AuditLogger) Record(kind string, v any) {
	a.Log().Str("kind", kind).Interface("record", v).Send()
}

// Close releases the underlying file, if any.
func (a *AuditLogger) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
