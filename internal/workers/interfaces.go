// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the long-lived loops of a process side by side: the
// connectivity probe, the sync scheduler, the backup job, the settings
// watcher and the HTTP server.
package workers

import "context"

// Worker is a long-lived loop. Run blocks until ctx is cancelled and returns
// nil on a clean stop; a non-nil error stops every sibling worker.
type Worker interface {
	Run(ctx context.Context) error
}

// Func adapts a plain function to [Worker].
type Func func(ctx context.Context) error

// Run calls f(ctx).
func (f Func) Run(ctx context.Context) error { return f(ctx) }
