// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-hybrid-sync/internal/adapter"
	"github.com/MKhiriev/go-hybrid-sync/internal/config"
	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
	"github.com/MKhiriev/go-hybrid-sync/internal/store"
	"github.com/MKhiriev/go-hybrid-sync/internal/utils"
	"github.com/MKhiriev/go-hybrid-sync/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

// ─────────────────────────────────────────────────────────────────────────────
// fakeCloud is an in-memory cloud store with the same feed semantics as the
// Postgres repository: per-table revisions, echo suppression for the calling
// node, idempotent pushes and a watermark that never skips foreign writes.
// ─────────────────────────────────────────────────────────────────────────────

type cloudRow struct {
	entry  models.ChangeEntry
	nodeID string
}

type fakeCloud struct {
	nodeID string

	mu       sync.Mutex
	log      map[string][]cloudRow
	records  map[models.RecordKey]models.ChangeEntry
	failPull map[string]error
	failPush map[string]error
	pushes   int
}

func newFakeCloud(nodeID string) *fakeCloud {
	return &fakeCloud{
		nodeID:   nodeID,
		log:      make(map[string][]cloudRow),
		records:  make(map[models.RecordKey]models.ChangeEntry),
		failPull: make(map[string]error),
		failPush: make(map[string]error),
	}
}

var _ adapter.CloudAdapter = (*fakeCloud)(nil)

func (f *fakeCloud) Ping(context.Context) error { return nil }

func (f *fakeCloud) ListTables(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tables := make([]string, 0, len(f.log))
	for t := range f.log {
		tables = append(tables, t)
	}
	slices.Sort(tables)
	return tables, nil
}

func (f *fakeCloud) PullChanges(_ context.Context, table string, after int64, limit int) (models.ChangesResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failPull[table]; err != nil {
		return models.ChangesResponse{}, err
	}

	resp := models.ChangesResponse{Table: table, Changes: []models.ChangeEntry{}, HighWatermark: after}
	scanned := 0
	for _, row := range f.log[table] {
		if row.entry.Revision <= after {
			continue
		}
		if scanned == limit {
			break
		}
		scanned++
		resp.HighWatermark = row.entry.Revision
		if row.nodeID == f.nodeID {
			continue
		}
		entry := row.entry
		entry.Origin = models.OriginCloud
		resp.Changes = append(resp.Changes, entry)
	}
	resp.HasMore = scanned == limit
	return resp, nil
}

func (f *fakeCloud) PushChanges(_ context.Context, table string, req models.PushRequest) (models.PushResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failPush[table]; err != nil {
		return models.PushResponse{}, err
	}
	f.pushes++

	resp := models.PushResponse{Table: table, Watermark: req.BaseRevision}
	var maxAssigned int64
	for _, change := range req.Changes {
		cur, ok := f.records[change.Key()]
		if ok && cur.Checksum == change.Checksum && cur.IsDelete() == change.IsDelete() {
			continue
		}
		maxAssigned = f.appendLocked(table, change, f.nodeID)
		resp.Applied++
	}
	if resp.Applied == 0 {
		return resp, nil
	}

	for _, row := range f.log[table] {
		if row.entry.Revision > req.BaseRevision && row.entry.Revision <= maxAssigned && row.nodeID != f.nodeID {
			return resp, nil
		}
	}
	resp.Watermark = maxAssigned
	return resp, nil
}

// write simulates another node writing through the cloud.
func (f *fakeCloud) write(table, id, payload string, op models.Operation, ts time.Time) models.ChangeEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry := models.ChangeEntry{Table: table, RecordID: id, Operation: op, Origin: models.OriginLocal, Timestamp: ts.UTC()}
	if op != models.OperationDelete {
		entry.Payload = json.RawMessage(payload)
	}
	entry.Checksum = utils.Checksum(entry.Payload, entry.IsDelete())
	f.appendLocked(table, entry, "other-node")
	return f.records[entry.Key()]
}

func (f *fakeCloud) appendLocked(table string, change models.ChangeEntry, nodeID string) int64 {
	revision := int64(len(f.log[table]) + 1)
	change.Table = table
	change.Revision = revision
	f.log[table] = append(f.log[table], cloudRow{entry: change, nodeID: nodeID})
	f.records[change.Key()] = change
	return revision
}

func (f *fakeCloud) record(table, id string) (models.ChangeEntry, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.records[models.RecordKey{Table: table, ID: id}]
	return e, ok
}

func (f *fakeCloud) logLen(table string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.log[table])
}

func (f *fakeCloud) pushCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pushes
}

// ─────────────────────────────────────────────────────────────────────────────
// testNode wires the real SQLite store, the change tracker and the engine.
// ─────────────────────────────────────────────────────────────────────────────

type testNode struct {
	storages *store.LocalStorages
	tracker  ChangeTracker
	engine   *syncEngine
	health   StorageHealth
	cloud    *fakeCloud
	states   *flakyStates
}

// flakyStates fails the next failApply calls to ApplyRemote, simulating a
// crash between the push and the local commit.
type flakyStates struct {
	store.SyncStateRepository

	mu        sync.Mutex
	failApply int
}

func (f *flakyStates) ApplyRemote(ctx context.Context, table string, changes []models.ChangeEntry, state models.SyncState) error {
	f.mu.Lock()
	fail := f.failApply > 0
	if fail {
		f.failApply--
	}
	f.mu.Unlock()
	if fail {
		return errors.New("node stopped before commit")
	}
	return f.SyncStateRepository.ApplyRemote(ctx, table, changes, state)
}

func newTestNode(t *testing.T, cloud *fakeCloud, tables ...string) *testNode {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dados", "hybrid.db")
	storages, err := store.NewLocalStorages(testContext(), path, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { storages.Close() })

	n := &testNode{
		storages: storages,
		health:   NewStorageHealth(),
		cloud:    cloud,
		states:   &flakyStates{SyncStateRepository: storages.SyncState},
	}
	n.tracker = NewChangeTracker(storages.Records, storages.ChangeLog, 2, logger.Nop())
	n.engine = NewSyncEngine(SyncEngineDeps{
		Tracker: n.tracker,
		Records: storages.Records,
		States:  n.states,
		Cloud:   cloud,
		Policy:  NewConflictPolicy(config.NodeSync{LocalDeleteWins: true}),
		Health:  n.health,
	}, config.NodeSync{Tables: tables, ChangePageSize: 2}, logger.Nop()).(*syncEngine)
	return n
}

func (n *testNode) write(t *testing.T, table, id, payload string, op models.Operation, ts time.Time) models.ChangeEntry {
	t.Helper()
	rec := models.Record{Table: table, ID: id, UpdatedAt: ts}
	if payload != "" {
		rec.Payload = json.RawMessage(payload)
	}
	entry, err := n.tracker.RecordWrite(testContext(), rec, op)
	require.NoError(t, err)
	return entry
}

func (n *testNode) sync(t *testing.T) models.SyncCycle {
	t.Helper()
	cycle, err := n.engine.RunCycle(testContext(), models.SyncReasonManual)
	require.NoError(t, err)
	return cycle
}

func (n *testNode) state(t *testing.T, table string) models.SyncState {
	t.Helper()
	st, err := n.storages.SyncState.GetSyncState(testContext(), table)
	require.NoError(t, err)
	return st
}

func (n *testNode) record(t *testing.T, table, id string) models.Record {
	t.Helper()
	rec, err := n.storages.Records.GetRecord(testContext(), table, id)
	require.NoError(t, err)
	return rec
}
