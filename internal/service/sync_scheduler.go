// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-hybrid-sync/internal/config"
	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
	"github.com/MKhiriev/go-hybrid-sync/models"
)

const defaultSyncInterval = 5 * time.Minute

type syncScheduler struct {
	engine  SyncEngine
	monitor ConnectivityMonitor

	mu       sync.Mutex
	running  bool
	stopped  bool
	queued   *models.SyncReason
	last     *models.SyncCycle
	autoSync bool
	interval time.Duration

	wake     chan struct{}
	settings chan struct{}
	stop     chan struct{}
	stopOnce sync.Once

	metrics *Metrics
	audit   *logger.AuditLogger
	logger  *logger.Logger
}

// SyncSchedulerDeps are the collaborators of the scheduler.
type SyncSchedulerDeps struct {
	Engine  SyncEngine
	Monitor ConnectivityMonitor
	Metrics *Metrics
	Audit   *logger.AuditLogger
}

// NewSyncScheduler returns an idle scheduler configured from s. Cycles only
// run while Run is active.
func NewSyncScheduler(deps SyncSchedulerDeps, s config.Settings, logger *logger.Logger) SyncScheduler {
	sch := &syncScheduler{
		engine:   deps.Engine,
		monitor:  deps.Monitor,
		wake:     make(chan struct{}, 1),
		settings: make(chan struct{}, 1),
		stop:     make(chan struct{}),
		metrics:  deps.Metrics,
		audit:    deps.Audit,
		logger:   logger,
	}
	sch.autoSync, sch.interval = s.AutoSync, syncInterval(s)
	return sch
}

func syncInterval(s config.Settings) time.Duration {
	if s.SyncIntervalMinutes <= 0 {
		return defaultSyncInterval
	}
	return time.Duration(s.SyncIntervalMinutes) * time.Minute
}

func (s *syncScheduler) RequestSync(reason models.SyncReason) (models.SyncRequestResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.stopped:
		return models.SyncRequestResult{Message: "sync scheduler is stopped"}, ErrSchedulerStopped
	case s.running:
		return models.SyncRequestResult{
			AlreadyRunning: true,
			Message:        "a sync cycle is already running",
		}, ErrAlreadySyncing
	case s.queued != nil:
		return models.SyncRequestResult{
			AlreadyRunning: true,
			Message:        "a sync cycle is already pending",
		}, ErrAlreadySyncing
	}

	s.queued = &reason
	signal(s.wake)

	s.logger.Debug().Str("func", "syncScheduler.RequestSync").Str("reason", string(reason)).Msg("sync queued")
	return models.SyncRequestResult{Accepted: true, Message: "sync started"}, nil
}

func (s *syncScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *syncScheduler) LastCycle() (models.SyncCycle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return models.SyncCycle{}, false
	}
	return *s.last, true
}

func (s *syncScheduler) ApplySettings(settings config.Settings) {
	s.mu.Lock()
	s.autoSync, s.interval = settings.AutoSync, syncInterval(settings)
	s.mu.Unlock()
	signal(s.settings)
}

func (s *syncScheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.queued = nil
	s.mu.Unlock()
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *syncScheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	interval := s.interval
	s.mu.Unlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.stop:
			return nil
		case <-s.settings:
			s.mu.Lock()
			interval = s.interval
			s.mu.Unlock()
			ticker.Reset(interval)
			continue
		case <-ticker.C:
			s.periodic()
		case <-s.wake:
		}

		reason, ok := s.dequeue()
		if !ok {
			continue
		}
		s.runCycle(ctx, reason)
	}
}

// periodic queues a periodic cycle when auto sync is on and the cloud is
// reachable.
func (s *syncScheduler) periodic() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.autoSync || s.stopped || s.queued != nil {
		return
	}
	if !s.monitor.IsOnline() {
		s.logger.Debug().Str("func", "syncScheduler.periodic").Msg("offline, periodic sync skipped")
		return
	}
	reason := models.SyncReasonPeriodic
	s.queued = &reason
}

// dequeue takes the queued request and moves the scheduler to running.
func (s *syncScheduler) dequeue() (models.SyncReason, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.queued == nil || s.stopped {
		return "", false
	}
	reason := *s.queued
	s.queued = nil
	s.running = true
	return reason, true
}

// runCycle runs one cycle to completion. Cancelling ctx does not interrupt
// it; tables always reach their commit boundary.
func (s *syncScheduler) runCycle(ctx context.Context, reason models.SyncReason) {
	cycle, err := s.engine.RunCycle(context.WithoutCancel(ctx), reason)

	s.mu.Lock()
	s.running = false
	s.last = &cycle
	s.mu.Unlock()

	s.metrics.observeCycle(cycle, err != nil)
	s.audit.Record("sync_cycle", cycle)

	if err != nil {
		s.logger.Err(err).
			Str("func", "syncScheduler.runCycle").
			Str("cycle_id", cycle.CycleID).
			Str("reason", string(reason)).
			Msg("sync cycle aborted")
	}
}

// signal does a non-blocking send on a one-slot channel.
func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
