// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
	"golang.org/x/sync/errgroup"
)

type named struct {
	name   string
	worker Worker
}

// Workers is a set of named workers started together.
type Workers struct {
	workers []named
	logger  *logger.Logger
}

// New returns an empty set logging to logger.
func New(logger *logger.Logger) *Workers {
	return &Workers{logger: logger}
}

// Add registers w under name. Nil workers are skipped.
func (w *Workers) Add(name string, worker Worker) *Workers {
	if worker != nil {
		w.workers = append(w.workers, named{name: name, worker: worker})
	}
	return w
}

// Run starts every worker and blocks until all of them return. The first
// failure cancels the context passed to the others and is returned wrapped
// with the worker name.
func (w *Workers) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, n := range w.workers {
		g.Go(func() error {
			w.logger.Info().Str("worker", n.name).Msg("worker started")
			if err := n.worker.Run(gctx); err != nil {
				w.logger.Error().Err(err).Str("worker", n.name).Msg("worker failed")
				return fmt.Errorf("worker %s: %w", n.name, err)
			}
			w.logger.Info().Str("worker", n.name).Msg("worker stopped")
			return nil
		})
	}

	return g.Wait()
}
