// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/MKhiriev/go-hybrid-sync/internal/adapter"
	"github.com/MKhiriev/go-hybrid-sync/internal/config"
	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
	"github.com/MKhiriev/go-hybrid-sync/internal/store"
	"github.com/MKhiriev/go-hybrid-sync/internal/utils"
	"github.com/MKhiriev/go-hybrid-sync/models"
	"golang.org/x/sync/errgroup"
)

const defaultMaxConcurrentTables = 4

type syncEngine struct {
	tracker ChangeTracker
	records store.RecordRepository
	states  store.SyncStateRepository
	cloud   adapter.CloudAdapter
	policy  ConflictPolicy
	health  StorageHealth
	ids     *utils.UUIDGenerator

	tables      []string
	concurrency int
	pageSize    int
	now         func() time.Time

	logger *logger.Logger
}

// SyncEngineDeps are the collaborators of the sync engine.
type SyncEngineDeps struct {
	Tracker ChangeTracker
	Records store.RecordRepository
	States  store.SyncStateRepository
	Cloud   adapter.CloudAdapter
	Policy  ConflictPolicy
	Health  StorageHealth
}

// NewSyncEngine returns the two-way reconciliation engine. Tables listed in
// cfg are always synced; tables found in either store are added to them.
func NewSyncEngine(deps SyncEngineDeps, cfg config.NodeSync, logger *logger.Logger) SyncEngine {
	concurrency := cfg.MaxConcurrentTableSync
	if concurrency <= 0 {
		concurrency = defaultMaxConcurrentTables
	}
	pageSize := cfg.ChangePageSize
	if pageSize <= 0 {
		pageSize = defaultChangePageSize
	}

	return &syncEngine{
		tracker:     deps.Tracker,
		records:     deps.Records,
		states:      deps.States,
		cloud:       deps.Cloud,
		policy:      deps.Policy,
		health:      deps.Health,
		ids:         utils.NewUUIDGenerator(),
		tables:      cfg.Tables,
		concurrency: concurrency,
		pageSize:    pageSize,
		now:         time.Now,
		logger:      logger,
	}
}

// tableOutcome is what one table contributes to a cycle.
type tableOutcome struct {
	result    models.TableResult
	conflicts []models.ConflictResolution
}

func (e *syncEngine) RunCycle(ctx context.Context, reason models.SyncReason) (models.SyncCycle, error) {
	cycle := models.SyncCycle{
		CycleID:   e.ids.Generate(),
		Reason:    reason,
		StartedAt: e.now().UTC(),
	}
	log := e.logger.With().Str("cycle_id", cycle.CycleID).Str("reason", string(reason)).Logger()
	ctx = log.WithContext(ctx)

	tables, err := e.discoverTables(ctx)
	if err != nil {
		cycle.FinishedAt = e.now().UTC()
		return cycle, e.abort(err)
	}

	outcomes := make([]*tableOutcome, len(tables))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, table := range tables {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			out, err := e.syncTable(gctx, table)
			outcomes[i] = out
			return err
		})
	}
	abortErr := g.Wait()

	for _, out := range outcomes {
		if out == nil {
			continue
		}
		cycle.Tables = append(cycle.Tables, out.result)
		cycle.Conflicts = append(cycle.Conflicts, out.conflicts...)
		if out.result.Status == models.SyncStatusError {
			if cycle.Errors == nil {
				cycle.Errors = make(map[string]string)
			}
			cycle.Errors[out.result.Table] = out.result.Error
		}
	}
	cycle.TablesProcessed = len(cycle.Tables)
	cycle.ConflictsResolved = len(cycle.Conflicts)
	cycle.FinishedAt = e.now().UTC()

	if abortErr != nil {
		log.Error().Err(abortErr).
			Str("func", "syncEngine.RunCycle").
			Int("tables_processed", cycle.TablesProcessed).
			Msg("sync cycle aborted")
		return cycle, e.abort(abortErr)
	}

	log.Info().
		Str("func", "syncEngine.RunCycle").
		Int("tables_processed", cycle.TablesProcessed).
		Int("conflicts_resolved", cycle.ConflictsResolved).
		Int("errors", len(cycle.Errors)).
		Dur("duration", cycle.FinishedAt.Sub(cycle.StartedAt)).
		Msg("sync cycle finished")
	return cycle, nil
}

// abort records a storage fault and returns it wrapped with ErrStorage.
func (e *syncEngine) abort(err error) error {
	if store.IsStorageFault(err) {
		e.health.ReportFault(err)
	}
	if errors.Is(err, ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}

// discoverTables returns the configured tables plus every table known locally
// or in the cloud, sorted. An unreachable cloud only narrows the list.
func (e *syncEngine) discoverTables(ctx context.Context) ([]string, error) {
	tables := slices.Clone(e.tables)

	local, err := e.records.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	tables = append(tables, local...)

	remote, err := e.cloud.ListTables(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "syncEngine.discoverTables").
			Msg("cloud table list unavailable, syncing known tables only")
	} else {
		tables = append(tables, remote...)
	}

	slices.Sort(tables)
	return slices.Compact(tables), nil
}

// syncTable reconciles one table. A returned error aborts the cycle; any
// other failure is recorded in the outcome and in the table's SyncState.
func (e *syncEngine) syncTable(ctx context.Context, table string) (*tableOutcome, error) {
	log := logger.FromContext(ctx).With().Str("table", table).Logger()
	ctx = log.WithContext(ctx)

	state, err := e.states.GetSyncState(ctx, table)
	if err != nil {
		if store.IsStorageFault(err) {
			return &tableOutcome{result: failedResult(table, state, err)}, err
		}
		log.Warn().Err(err).Str("func", "syncEngine.syncTable").Msg("failed to read sync state")
		return &tableOutcome{result: failedResult(table, models.NewSyncState(table), err)}, nil
	}

	out, err := e.reconcile(ctx, state)
	if err == nil {
		return out, nil
	}

	if store.IsStorageFault(err) {
		return &tableOutcome{result: failedResult(table, state, err)}, err
	}

	log.Warn().Err(err).Str("func", "syncEngine.syncTable").Msg("table sync failed")

	failed := state
	failed.Status = models.SyncStatusError
	failed.LastError = err.Error()
	if saveErr := e.states.SaveSyncState(ctx, failed); saveErr != nil {
		log.Err(saveErr).Str("func", "syncEngine.syncTable").Msg("failed to record table error")
		if store.IsStorageFault(saveErr) {
			return &tableOutcome{result: failedResult(table, state, err)}, saveErr
		}
	}
	return &tableOutcome{result: failedResult(table, state, err)}, nil
}

func (e *syncEngine) reconcile(ctx context.Context, state models.SyncState) (*tableOutcome, error) {
	table := state.TableName

	local, err := e.pendingLocal(ctx, table, state.LastSyncRevisionLocal)
	if err != nil {
		return nil, err
	}

	remote, highWatermark, err := e.pullCloud(ctx, table, state.LastSyncRevisionCloud)
	if err != nil {
		return nil, err
	}

	plan := e.plan(latestByRecord(local), latestByRecord(remote))

	cloudWatermark := highWatermark
	if len(plan.push) > 0 {
		resp, err := e.cloud.PushChanges(ctx, table, models.PushRequest{
			BaseRevision: highWatermark,
			Changes:      plan.push,
		})
		if err != nil {
			return nil, classifyCloudError(err)
		}
		cloudWatermark = max(cloudWatermark, resp.Watermark)
	}

	localWatermark := state.LastSyncRevisionLocal
	if n := len(local); n > 0 {
		localWatermark = max(localWatermark, local[n-1].Revision)
	}

	now := e.now().UTC()
	next := models.SyncState{
		TableName:             table,
		LastSyncTimestamp:     &now,
		LastSyncRevisionCloud: cloudWatermark,
		LastSyncRevisionLocal: localWatermark,
		SyncCount:             state.SyncCount + 1,
		Status:                models.SyncStatusOK,
	}
	if err := e.states.ApplyRemote(ctx, table, plan.pull, next); err != nil {
		return nil, wrapStorage(err)
	}

	if localWatermark > state.LastSyncRevisionLocal {
		if _, err := e.tracker.Prune(ctx, table, localWatermark); err != nil {
			logger.FromContext(ctx).Warn().Err(err).
				Str("func", "syncEngine.reconcile").
				Int64("up_to", localWatermark).
				Msg("failed to prune change log")
		}
	}

	logger.FromContext(ctx).Debug().
		Str("func", "syncEngine.reconcile").
		Int("pushed", len(plan.push)).
		Int("pulled", len(plan.pull)).
		Int("conflicts", len(plan.conflicts)).
		Int64("watermark_local", localWatermark).
		Int64("watermark_cloud", cloudWatermark).
		Msg("table synced")

	return &tableOutcome{
		result: models.TableResult{
			Table:        table,
			Status:       models.SyncStatusOK,
			Pushed:       len(plan.push),
			Pulled:       len(plan.pull),
			Conflicts:    len(plan.conflicts),
			WatermarkIn:  localWatermark,
			WatermarkOut: cloudWatermark,
		},
		conflicts: plan.conflicts,
	}, nil
}

// pendingLocal collects and validates the unsynced local entries of table.
func (e *syncEngine) pendingLocal(ctx context.Context, table string, watermark int64) ([]models.ChangeEntry, error) {
	var entries []models.ChangeEntry
	last := watermark
	for entry, err := range e.tracker.PendingSince(ctx, table, watermark) {
		if err != nil {
			return nil, err
		}
		if err := validateEntry(table, entry, last); err != nil {
			return nil, fmt.Errorf("local %w", err)
		}
		last = entry.Revision
		entries = append(entries, entry)
	}
	return entries, nil
}

// pullCloud pages through the cloud change feed of table and returns the
// validated entries with the highest scanned cloud revision.
func (e *syncEngine) pullCloud(ctx context.Context, table string, watermark int64) ([]models.ChangeEntry, int64, error) {
	var entries []models.ChangeEntry
	after := watermark
	last := watermark
	for {
		resp, err := e.cloud.PullChanges(ctx, table, after, e.pageSize)
		if err != nil {
			return nil, 0, classifyCloudError(err)
		}

		for _, entry := range resp.Changes {
			if err := validateEntry(table, entry, last); err != nil {
				return nil, 0, fmt.Errorf("cloud %w", err)
			}
			last = entry.Revision
			entries = append(entries, entry)
		}

		if resp.HighWatermark < last {
			return nil, 0, fmt.Errorf("%w: cloud watermark %d behind revision %d", ErrConflictResolution, resp.HighWatermark, last)
		}
		if !resp.HasMore || resp.HighWatermark <= after {
			return entries, max(after, resp.HighWatermark), nil
		}
		after = resp.HighWatermark
	}
}

// validateEntry rejects entries the engine cannot apply safely. prev is the
// revision of the previous entry of the same stream.
func validateEntry(table string, entry models.ChangeEntry, prev int64) error {
	switch {
	case entry.Table != table:
		return fmt.Errorf("%w: entry of table %q in %q stream", ErrConflictResolution, entry.Table, table)
	case entry.RecordID == "":
		return fmt.Errorf("%w: entry without record id", ErrConflictResolution)
	case !entry.Operation.Valid():
		return fmt.Errorf("%w: record %s has unknown operation %q", ErrConflictResolution, entry.RecordID, entry.Operation)
	case entry.Revision <= prev:
		return fmt.Errorf("%w: record %s revision %d is not after %d", ErrConflictResolution, entry.RecordID, entry.Revision, prev)
	case !entry.IsDelete() && len(entry.Payload) == 0:
		return fmt.Errorf("%w: record %s %s without payload", ErrConflictResolution, entry.RecordID, entry.Operation)
	case entry.Checksum != "" && entry.Checksum != utils.Checksum(entry.Payload, entry.IsDelete()):
		return fmt.Errorf("%w: record %s checksum mismatch", ErrConflictResolution, entry.RecordID)
	}
	return nil
}

// latestByRecord collapses entries to the last one per record id. Input is
// ordered by revision.
func latestByRecord(entries []models.ChangeEntry) map[string]models.ChangeEntry {
	latest := make(map[string]models.ChangeEntry, len(entries))
	for _, entry := range entries {
		latest[entry.RecordID] = entry
	}
	return latest
}

type tablePlan struct {
	push      []models.ChangeEntry
	pull      []models.ChangeEntry
	conflicts []models.ConflictResolution
}

// plan partitions the collapsed local and cloud changes of one table. Both
// delta lists come out ordered by the revision of their source store.
func (e *syncEngine) plan(local, remote map[string]models.ChangeEntry) tablePlan {
	var p tablePlan

	for id, l := range local {
		c, both := remote[id]
		if !both {
			p.push = append(p.push, l)
			continue
		}

		res := e.policy.Resolve(l, c)
		if res.Rule == models.ConflictRuleIdenticalChange {
			continue
		}
		p.conflicts = append(p.conflicts, res)
		if res.Winner == models.OriginLocal {
			p.push = append(p.push, l)
		} else {
			p.pull = append(p.pull, c)
		}
	}
	for id, c := range remote {
		if _, both := local[id]; !both {
			p.pull = append(p.pull, c)
		}
	}

	byRevision := func(a, b models.ChangeEntry) int { return cmp.Compare(a.Revision, b.Revision) }
	slices.SortFunc(p.push, byRevision)
	slices.SortFunc(p.pull, byRevision)
	slices.SortFunc(p.conflicts, func(a, b models.ConflictResolution) int {
		return cmp.Compare(a.LocalRevision, b.LocalRevision)
	})
	return p
}

// classifyCloudError maps adapter failures onto the engine's table errors.
func classifyCloudError(err error) error {
	switch {
	case adapter.IsUnreachable(err), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrConnectivity, err)
	case errors.Is(err, adapter.ErrBadRequest), errors.Is(err, adapter.ErrConflict):
		return fmt.Errorf("%w: %w", ErrConflictResolution, err)
	}
	return err
}

func failedResult(table string, state models.SyncState, err error) models.TableResult {
	return models.TableResult{
		Table:        table,
		Status:       models.SyncStatusError,
		Error:        err.Error(),
		WatermarkIn:  state.LastSyncRevisionLocal,
		WatermarkOut: state.LastSyncRevisionCloud,
	}
}
