// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"testing"
	"time"

	"github.com/MKhiriev/go-hybrid-sync/internal/adapter"
	"github.com/MKhiriev/go-hybrid-sync/internal/config"
	"github.com/MKhiriev/go-hybrid-sync/internal/logger"
	"github.com/MKhiriev/go-hybrid-sync/internal/mock"
	"github.com/MKhiriev/go-hybrid-sync/internal/store"
	"github.com/MKhiriev/go-hybrid-sync/internal/utils"
	"github.com/MKhiriev/go-hybrid-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func tableResult(t *testing.T, cycle models.SyncCycle, table string) models.TableResult {
	t.Helper()
	for _, r := range cycle.Tables {
		if r.Table == table {
			return r
		}
	}
	t.Fatalf("table %q not in cycle", table)
	return models.TableResult{}
}

// ── Round trip ───────────────────────────────────────────────────────────────

func TestSyncEngine_PushesLocalChangesToEmptyCloud(t *testing.T) {
	cloud := newFakeCloud("node-a")
	n := newTestNode(t, cloud, "cases")

	// Arrange
	n.write(t, "cases", "1", `{"status":"open"}`, models.OperationInsert, t0)
	n.write(t, "cases", "2", `{"status":"open"}`, models.OperationInsert, t0)
	n.write(t, "cases", "3", `{"status":"closed"}`, models.OperationInsert, t0)
	n.write(t, "cases", "4", `{"status":"open"}`, models.OperationInsert, t0)
	n.write(t, "cases", "2", `{"status":"triage","owner":"ana"}`, models.OperationUpdate, t0.Add(time.Minute))
	n.write(t, "cases", "3", "", models.OperationDelete, t0.Add(2*time.Minute))

	// Act
	cycle := n.sync(t)

	// Assert
	assert.Equal(t, 1, cycle.TablesProcessed)
	assert.Empty(t, cycle.Errors)
	res := tableResult(t, cycle, "cases")
	assert.Equal(t, models.SyncStatusOK, res.Status)
	assert.Equal(t, 4, res.Pushed)
	assert.Equal(t, 0, res.Pulled)
	assert.Equal(t, 4, cloud.logLen("cases"))

	st := n.state(t, "cases")
	assert.Equal(t, models.SyncStatusOK, st.Status)
	assert.Equal(t, int64(6), st.LastSyncRevisionLocal)
	assert.Equal(t, int64(4), st.LastSyncRevisionCloud)
	assert.Equal(t, int64(1), st.SyncCount)
	require.NotNil(t, st.LastSyncTimestamp)

	pending, err := n.storages.ChangeLog.ChangesSince(testContext(), "cases", 0, 10)
	require.NoError(t, err)
	assert.Empty(t, pending, "synced entries are pruned")

	for _, id := range []string{"1", "2", "3", "4"} {
		local := n.record(t, "cases", id)
		remote, ok := cloud.record("cases", id)
		require.True(t, ok, "record %s missing in the cloud", id)
		assert.Equal(t, local.Deleted, remote.IsDelete(), "record %s deleted flag", id)
		if local.Deleted {
			assert.Empty(t, remote.Payload, "record %s", id)
			continue
		}
		assert.JSONEq(t, string(local.Payload), string(remote.Payload), "record %s payload", id)
	}

	c2, _ := cloud.record("cases", "2")
	assert.JSONEq(t, `{"status":"triage","owner":"ana"}`, string(c2.Payload))
	assert.True(t, n.record(t, "cases", "3").Deleted)
}

func TestSyncEngine_SecondCycleIsNoOp(t *testing.T) {
	cloud := newFakeCloud("node-a")
	n := newTestNode(t, cloud, "cases")
	n.write(t, "cases", "1", `{"v":1}`, models.OperationInsert, t0)
	n.sync(t)
	before := n.state(t, "cases")

	// Act
	cycle := n.sync(t)

	// Assert
	assert.Zero(t, cycle.ConflictsResolved)
	assert.Empty(t, cycle.Conflicts)
	res := tableResult(t, cycle, "cases")
	assert.Equal(t, 0, res.Pushed)
	assert.Equal(t, 0, res.Pulled)
	assert.Equal(t, 1, cloud.pushCount(), "nothing to push on the second cycle")

	after := n.state(t, "cases")
	assert.Equal(t, before.LastSyncRevisionLocal, after.LastSyncRevisionLocal)
	assert.Equal(t, before.LastSyncRevisionCloud, after.LastSyncRevisionCloud)
	assert.Equal(t, int64(2), after.SyncCount)
}

func TestSyncEngine_PullsCloudChangesAcrossPages(t *testing.T) {
	cloud := newFakeCloud("node-a")
	for i := range 5 {
		cloud.write("visits", fmt.Sprintf("v%d", i), fmt.Sprintf(`{"n":%d}`, i), models.OperationInsert, t0)
	}
	n := newTestNode(t, cloud)

	// Act
	cycle := n.sync(t)

	// Assert
	res := tableResult(t, cycle, "visits")
	assert.Equal(t, 5, res.Pulled)
	assert.Equal(t, int64(5), res.WatermarkOut)

	rec := n.record(t, "visits", "v3")
	assert.Equal(t, models.OriginCloud, rec.Origin)
	assert.JSONEq(t, `{"n":3}`, string(rec.Payload))

	pending, err := n.storages.ChangeLog.ChangesSince(testContext(), "visits", 0, 10)
	require.NoError(t, err)
	assert.Empty(t, pending, "remote writes are not re-tracked")

	again := n.sync(t)
	assert.Equal(t, 0, tableResult(t, again, "visits").Pulled)
}

func TestSyncEngine_OwnWritesAreNotPulledBack(t *testing.T) {
	cloud := newFakeCloud("node-a")
	n := newTestNode(t, cloud, "cases")
	n.write(t, "cases", "1", `{"v":1}`, models.OperationInsert, t0)
	n.write(t, "cases", "2", `{"v":1}`, models.OperationInsert, t0)
	n.write(t, "cases", "3", `{"v":1}`, models.OperationInsert, t0)
	n.sync(t)

	// Arrange: lose the cloud watermark so the node rescans its own writes
	st := n.state(t, "cases")
	st.LastSyncRevisionCloud = 0
	require.NoError(t, n.storages.SyncState.SaveSyncState(testContext(), st))

	// Act
	cycle := n.sync(t)

	// Assert
	res := tableResult(t, cycle, "cases")
	assert.Equal(t, 0, res.Pulled)
	assert.Equal(t, int64(3), res.WatermarkOut)
	assert.Equal(t, models.OriginLocal, n.record(t, "cases", "1").Origin)
}

// ── Resumption ───────────────────────────────────────────────────────────────

func TestSyncEngine_ResumesAfterCrashWithoutDuplicates(t *testing.T) {
	cloud := newFakeCloud("node-a")
	n := newTestNode(t, cloud, "cases")
	n.write(t, "cases", "1", `{"status":"open"}`, models.OperationInsert, t0)
	n.write(t, "cases", "2", `{"status":"open"}`, models.OperationInsert, t0)

	// Arrange: the push lands but the local commit does not
	n.states.failApply = 1
	first, err := n.engine.RunCycle(testContext(), models.SyncReasonManual)
	require.NoError(t, err)
	require.Contains(t, first.Errors, "cases")
	require.Equal(t, 2, cloud.logLen("cases"))

	st := n.state(t, "cases")
	assert.Equal(t, models.SyncStatusError, st.Status)
	assert.Zero(t, st.LastSyncRevisionLocal, "watermarks stay put on failure")
	assert.Zero(t, st.LastSyncRevisionCloud)

	// Act
	second := n.sync(t)

	// Assert
	assert.Empty(t, second.Errors)
	assert.Equal(t, 2, cloud.logLen("cases"), "re-sent changes are not applied twice")

	st = n.state(t, "cases")
	assert.Equal(t, models.SyncStatusOK, st.Status)
	assert.Empty(t, st.LastError)
	assert.Equal(t, int64(2), st.LastSyncRevisionLocal)
	assert.Equal(t, int64(2), st.LastSyncRevisionCloud)
	assert.Equal(t, int64(1), st.SyncCount)
}

func TestSyncEngine_ResumedCyclePullsForeignWrites(t *testing.T) {
	cloud := newFakeCloud("node-a")
	n := newTestNode(t, cloud, "cases")
	n.write(t, "cases", "1", `{"v":1}`, models.OperationInsert, t0)

	// Arrange: the first commit fails, then another node writes on top of
	// this node's already applied push
	n.states.failApply = 1
	_, err := n.engine.RunCycle(testContext(), models.SyncReasonManual)
	require.NoError(t, err)
	cloud.write("cases", "9", `{"v":9}`, models.OperationInsert, t0)

	// Act
	cycle := n.sync(t)

	// Assert
	assert.Equal(t, 1, tableResult(t, cycle, "cases").Pulled)
	assert.JSONEq(t, `{"v":9}`, string(n.record(t, "cases", "9").Payload))
}

// ── Conflicts ────────────────────────────────────────────────────────────────

func TestSyncEngine_ConcurrentEditLaterCloudWins(t *testing.T) {
	cloud := newFakeCloud("node-a")
	n := newTestNode(t, cloud, "cases")

	// Arrange: both sides start from the state of local revision 2
	n.write(t, "cases", "1", `{"status":"open"}`, models.OperationInsert, t0)
	n.write(t, "cases", "1", `{"status":"triage"}`, models.OperationUpdate, t0.Add(time.Minute))
	n.sync(t)

	t1 := t0.Add(10 * time.Minute)
	t2 := t0.Add(20 * time.Minute)
	local := n.write(t, "cases", "1", `{"status":"closed"}`, models.OperationUpdate, t1)
	require.Equal(t, int64(3), local.Revision)
	cloud.write("cases", "1", `{"status":"escalated"}`, models.OperationUpdate, t2)

	// Act
	cycle := n.sync(t)

	// Assert
	require.Equal(t, 1, cycle.ConflictsResolved)
	c := cycle.Conflicts[0]
	assert.Equal(t, "1", c.RecordID)
	assert.Equal(t, models.OriginCloud, c.Winner)
	assert.Equal(t, models.ConflictRuleLastWriterWins, c.Rule)
	assert.Equal(t, int64(3), c.LocalRevision)

	rec := n.record(t, "cases", "1")
	assert.JSONEq(t, `{"status":"escalated"}`, string(rec.Payload))
	assert.Equal(t, models.OriginCloud, rec.Origin)
	assert.Equal(t, 2, cloud.logLen("cases"), "the losing local edit is not pushed")

	again := n.sync(t)
	assert.Zero(t, again.ConflictsResolved)
}

func TestSyncEngine_ConcurrentEditLaterLocalWins(t *testing.T) {
	cloud := newFakeCloud("node-a")
	n := newTestNode(t, cloud, "cases")
	n.write(t, "cases", "1", `{"status":"open"}`, models.OperationInsert, t0)
	n.sync(t)

	cloud.write("cases", "1", `{"status":"escalated"}`, models.OperationUpdate, t0.Add(time.Minute))
	n.write(t, "cases", "1", `{"status":"closed"}`, models.OperationUpdate, t0.Add(time.Hour))

	// Act
	cycle := n.sync(t)

	// Assert
	require.Equal(t, 1, cycle.ConflictsResolved)
	assert.Equal(t, models.OriginLocal, cycle.Conflicts[0].Winner)
	c1, ok := cloud.record("cases", "1")
	require.True(t, ok)
	assert.JSONEq(t, `{"status":"closed"}`, string(c1.Payload))
	assert.Equal(t, models.OriginLocal, n.record(t, "cases", "1").Origin)
}

func TestSyncEngine_LocalDeleteBeatsLaterCloudUpdate(t *testing.T) {
	cloud := newFakeCloud("node-a")
	n := newTestNode(t, cloud, "cases")
	n.write(t, "cases", "1", `{"status":"open"}`, models.OperationInsert, t0)
	n.sync(t)

	n.write(t, "cases", "1", "", models.OperationDelete, t0.Add(5*time.Minute))
	cloud.write("cases", "1", `{"status":"reopened"}`, models.OperationUpdate, t0.Add(30*time.Minute))

	// Act
	cycle := n.sync(t)

	// Assert
	require.Equal(t, 1, cycle.ConflictsResolved)
	assert.Equal(t, models.ConflictRuleLocalDelete, cycle.Conflicts[0].Rule)
	assert.Equal(t, models.OriginLocal, cycle.Conflicts[0].Winner)

	c1, ok := cloud.record("cases", "1")
	require.True(t, ok)
	assert.True(t, c1.IsDelete())
	assert.True(t, n.record(t, "cases", "1").Deleted)
}

func TestSyncEngine_IdenticalChangesAreNotConflicts(t *testing.T) {
	cloud := newFakeCloud("node-a")
	n := newTestNode(t, cloud, "cases")
	n.write(t, "cases", "1", `{"v":1}`, models.OperationInsert, t0)
	n.sync(t)
	pushes := cloud.pushCount()

	n.write(t, "cases", "1", `{"v":2}`, models.OperationUpdate, t0.Add(time.Minute))
	cloud.write("cases", "1", `{"v":2}`, models.OperationUpdate, t0.Add(2*time.Minute))

	// Act
	cycle := n.sync(t)

	// Assert
	assert.Zero(t, cycle.ConflictsResolved)
	res := tableResult(t, cycle, "cases")
	assert.Zero(t, res.Pushed)
	assert.Zero(t, res.Pulled)
	assert.Equal(t, pushes, cloud.pushCount())
	assert.Equal(t, int64(2), n.state(t, "cases").LastSyncRevisionCloud)
}

// ── Failure isolation ────────────────────────────────────────────────────────

func TestSyncEngine_TableFailureIsIsolated(t *testing.T) {
	tests := []struct {
		name      string
		pullErr   error
		wantInLog string
	}{
		{
			name:      "transport error",
			pullErr:   fmt.Errorf("%w: connection refused", adapter.ErrTransport),
			wantInLog: "connection refused",
		},
		{
			name:      "deadline exceeded",
			pullErr:   fmt.Errorf("pull visits: %w", context.DeadlineExceeded),
			wantInLog: context.DeadlineExceeded.Error(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cloud := newFakeCloud("node-a")
			cloud.failPull["visits"] = tt.pullErr
			n := newTestNode(t, cloud, "cases", "visits")
			n.write(t, "cases", "1", `{"v":1}`, models.OperationInsert, t0)
			n.write(t, "visits", "a", `{"v":1}`, models.OperationInsert, t0)

			// Act
			cycle, err := n.engine.RunCycle(testContext(), models.SyncReasonPeriodic)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, 2, cycle.TablesProcessed)
			assert.True(t, cycle.Failed())
			require.Contains(t, cycle.Errors, "visits")
			assert.Contains(t, cycle.Errors["visits"], ErrConnectivity.Error())
			assert.NotContains(t, cycle.Errors, "cases")

			assert.Equal(t, models.SyncStatusOK, tableResult(t, cycle, "cases").Status)
			assert.Equal(t, models.SyncStatusError, tableResult(t, cycle, "visits").Status)

			cases := n.state(t, "cases")
			assert.Equal(t, models.SyncStatusOK, cases.Status)
			assert.Equal(t, int64(1), cases.LastSyncRevisionLocal, "the healthy table advances")
			assert.Equal(t, int64(1), cases.LastSyncRevisionCloud)
			assert.Equal(t, 1, cloud.logLen("cases"))

			visits := n.state(t, "visits")
			assert.Equal(t, models.SyncStatusError, visits.Status)
			assert.Contains(t, visits.LastError, tt.wantInLog)
			assert.Zero(t, visits.LastSyncRevisionLocal)
			assert.Zero(t, visits.LastSyncRevisionCloud)
			assert.Zero(t, cloud.logLen("visits"))

			// Act: the next cycle picks the table up again
			delete(cloud.failPull, "visits")
			recovered := n.sync(t)

			assert.Empty(t, recovered.Errors)
			assert.Equal(t, 1, tableResult(t, recovered, "visits").Pushed)
			assert.Equal(t, models.SyncStatusOK, n.state(t, "visits").Status)
		})
	}
}

func TestSyncEngine_RejectedPushIsConflictError(t *testing.T) {
	cloud := newFakeCloud("node-a")
	cloud.failPush["cases"] = fmt.Errorf("%w: bad batch", adapter.ErrBadRequest)
	n := newTestNode(t, cloud, "cases")
	n.write(t, "cases", "1", `{"v":1}`, models.OperationInsert, t0)

	cycle := n.sync(t)

	require.Contains(t, cycle.Errors, "cases")
	assert.Contains(t, cycle.Errors["cases"], ErrConflictResolution.Error())
}

// ── Aborts (mocked collaborators) ────────────────────────────────────────────

type engineMocks struct {
	tracker *mock.MockChangeTracker
	records *mock.MockRecordRepository
	states  *mock.MockSyncStateRepository
	cloud   *mock.MockCloudAdapter
	health  StorageHealth
}

func newMockedEngine(t *testing.T) (*syncEngine, engineMocks) {
	ctrl := gomock.NewController(t)
	m := engineMocks{
		tracker: mock.NewMockChangeTracker(ctrl),
		records: mock.NewMockRecordRepository(ctrl),
		states:  mock.NewMockSyncStateRepository(ctrl),
		cloud:   mock.NewMockCloudAdapter(ctrl),
		health:  NewStorageHealth(),
	}
	e := NewSyncEngine(SyncEngineDeps{
		Tracker: m.tracker,
		Records: m.records,
		States:  m.states,
		Cloud:   m.cloud,
		Policy:  NewConflictPolicy(config.NodeSync{}),
		Health:  m.health,
	}, config.NodeSync{}, logger.Nop()).(*syncEngine)
	return e, m
}

func seqOf(entries []models.ChangeEntry, err error) iter.Seq2[models.ChangeEntry, error] {
	return func(yield func(models.ChangeEntry, error) bool) {
		for _, e := range entries {
			if !yield(e, nil) {
				return
			}
		}
		if err != nil {
			yield(models.ChangeEntry{}, err)
		}
	}
}

func TestSyncEngine_StorageFaultAbortsCycle(t *testing.T) {
	e, m := newMockedEngine(t)
	fault := fmt.Errorf("%w: disk I/O error", store.ErrStorageIO)

	m.records.EXPECT().ListTables(gomock.Any()).Return(nil, fault)

	// Act
	_, err := e.RunCycle(testContext(), models.SyncReasonManual)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, store.ErrStorageIO)
	assert.ErrorIs(t, m.health.Fault(), store.ErrStorageIO)
}

func TestSyncEngine_StorageFaultInTableAbortsCycle(t *testing.T) {
	e, m := newMockedEngine(t)
	fault := fmt.Errorf("%w: %w", ErrStorage, store.ErrStorageFull)

	m.records.EXPECT().ListTables(gomock.Any()).Return([]string{"cases"}, nil)
	m.cloud.EXPECT().ListTables(gomock.Any()).Return(nil, errors.New("offline"))
	m.states.EXPECT().GetSyncState(gomock.Any(), "cases").Return(models.NewSyncState("cases"), nil)
	m.tracker.EXPECT().PendingSince(gomock.Any(), "cases", int64(0)).Return(seqOf(nil, fault))

	// Act
	cycle, err := e.RunCycle(testContext(), models.SyncReasonManual)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, m.health.Fault(), store.ErrStorageFull)
	require.Len(t, cycle.Tables, 1)
	assert.Equal(t, models.SyncStatusError, cycle.Tables[0].Status)
}

func TestSyncEngine_InvalidCloudEntryFailsTable(t *testing.T) {
	e, m := newMockedEngine(t)
	payload := json.RawMessage(`{"v":1}`)
	bad := models.ChangeEntry{
		Table: "cases", RecordID: "1", Operation: models.OperationUpdate,
		Revision: 1, Origin: models.OriginCloud, Timestamp: t0,
		Payload: payload, Checksum: "forged",
	}

	m.records.EXPECT().ListTables(gomock.Any()).Return([]string{"cases"}, nil)
	m.cloud.EXPECT().ListTables(gomock.Any()).Return([]string{"cases"}, nil)
	m.states.EXPECT().GetSyncState(gomock.Any(), "cases").Return(models.NewSyncState("cases"), nil)
	m.tracker.EXPECT().PendingSince(gomock.Any(), "cases", int64(0)).Return(seqOf(nil, nil))
	m.cloud.EXPECT().PullChanges(gomock.Any(), "cases", int64(0), defaultChangePageSize).
		Return(models.ChangesResponse{Table: "cases", Changes: []models.ChangeEntry{bad}, HighWatermark: 1}, nil)
	m.states.EXPECT().SaveSyncState(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, st models.SyncState) error {
			assert.Equal(t, models.SyncStatusError, st.Status)
			assert.Contains(t, st.LastError, "checksum mismatch")
			return nil
		})

	// Act
	cycle, err := e.RunCycle(testContext(), models.SyncReasonManual)

	// Assert
	require.NoError(t, err)
	assert.Contains(t, cycle.Errors["cases"], ErrConflictResolution.Error())
	assert.NoError(t, m.health.Fault())
}

func TestSyncEngine_PruneFailureDoesNotFailTable(t *testing.T) {
	e, m := newMockedEngine(t)
	payload := json.RawMessage(`{"v":1}`)
	local := models.ChangeEntry{
		Table: "cases", RecordID: "1", Operation: models.OperationInsert,
		Revision: 1, Origin: models.OriginLocal, Timestamp: t0,
		Payload: payload, Checksum: utils.Checksum(payload, false),
	}

	m.records.EXPECT().ListTables(gomock.Any()).Return([]string{"cases"}, nil)
	m.cloud.EXPECT().ListTables(gomock.Any()).Return(nil, nil)
	m.states.EXPECT().GetSyncState(gomock.Any(), "cases").Return(models.NewSyncState("cases"), nil)
	m.tracker.EXPECT().PendingSince(gomock.Any(), "cases", int64(0)).Return(seqOf([]models.ChangeEntry{local}, nil))
	m.cloud.EXPECT().PullChanges(gomock.Any(), "cases", int64(0), defaultChangePageSize).
		Return(models.ChangesResponse{Table: "cases"}, nil)
	m.cloud.EXPECT().PushChanges(gomock.Any(), "cases", models.PushRequest{Changes: []models.ChangeEntry{local}}).
		Return(models.PushResponse{Table: "cases", Applied: 1, Watermark: 7}, nil)
	m.states.EXPECT().ApplyRemote(gomock.Any(), "cases", gomock.Nil(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, _ []models.ChangeEntry, st models.SyncState) error {
			assert.Equal(t, int64(1), st.LastSyncRevisionLocal)
			assert.Equal(t, int64(7), st.LastSyncRevisionCloud)
			assert.Equal(t, int64(1), st.SyncCount)
			return nil
		})
	m.tracker.EXPECT().Prune(gomock.Any(), "cases", int64(1)).Return(int64(0), errors.New("locked"))

	// Act
	cycle, err := e.RunCycle(testContext(), models.SyncReasonManual)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, cycle.Errors)
	assert.Equal(t, 1, cycle.Tables[0].Pushed)
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func TestClassifyCloudError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"transport", fmt.Errorf("%w: refused", adapter.ErrTransport), ErrConnectivity},
		{"unavailable", adapter.ErrUnavailable, ErrConnectivity},
		{"deadline", context.DeadlineExceeded, ErrConnectivity},
		{"bad request", adapter.ErrBadRequest, ErrConflictResolution},
		{"conflict", adapter.ErrConflict, ErrConflictResolution},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyCloudError(tt.err)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	plain := errors.New("unexpected")
	assert.Equal(t, plain, classifyCloudError(plain))
}

func TestValidateEntry(t *testing.T) {
	payload := json.RawMessage(`{"v":1}`)
	valid := models.ChangeEntry{
		Table: "cases", RecordID: "1", Operation: models.OperationUpdate,
		Revision: 5, Payload: payload, Checksum: utils.Checksum(payload, false),
	}

	tests := []struct {
		name    string
		mutate  func(e *models.ChangeEntry)
		prev    int64
		wantErr bool
	}{
		{name: "valid", mutate: func(*models.ChangeEntry) {}},
		{name: "foreign table", mutate: func(e *models.ChangeEntry) { e.Table = "visits" }, wantErr: true},
		{name: "no record id", mutate: func(e *models.ChangeEntry) { e.RecordID = "" }, wantErr: true},
		{name: "unknown operation", mutate: func(e *models.ChangeEntry) { e.Operation = "merge" }, wantErr: true},
		{name: "revision not after previous", mutate: func(*models.ChangeEntry) {}, prev: 5, wantErr: true},
		{name: "update without payload", mutate: func(e *models.ChangeEntry) { e.Payload, e.Checksum = nil, "" }, wantErr: true},
		{name: "checksum mismatch", mutate: func(e *models.ChangeEntry) { e.Checksum = "x" }, wantErr: true},
		{name: "delete without payload", mutate: func(e *models.ChangeEntry) {
			e.Operation, e.Payload, e.Checksum = models.OperationDelete, nil, utils.Checksum(nil, true)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)

			err := validateEntry("cases", e, tt.prev)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrConflictResolution)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLatestByRecord(t *testing.T) {
	entries := []models.ChangeEntry{
		{RecordID: "1", Revision: 1},
		{RecordID: "2", Revision: 2},
		{RecordID: "1", Revision: 3},
	}

	latest := latestByRecord(entries)

	require.Len(t, latest, 2)
	assert.Equal(t, int64(3), latest["1"].Revision)
	assert.Equal(t, int64(2), latest["2"].Revision)
}
