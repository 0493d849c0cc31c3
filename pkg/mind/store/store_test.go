package store_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadirpekel/hector-mind/pkg/mind/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	dir := t.TempDir()
	s, err := store.OpenSQLite(filepath.Join(dir, "agent.db"), "test-agent")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAddLogAndGetLogsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	type payload struct {
		Context string `json:"context"`
		Value   int    `json:"value"`
	}
	id := s.AddLog(store.CategoryStress, payload{Context: "no, that's wrong", Value: 4}, "sess-1")
	require.Greater(t, id, int64(0))

	logs := s.GetLogs(store.CategoryStress, 7)
	require.Len(t, logs, 1)

	var got payload
	require.NoError(t, json.Unmarshal(logs[0].Payload, &got))
	assert.Equal(t, "no, that's wrong", got.Context)
	assert.Equal(t, 4, got.Value)
}

func TestGetLogCount(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, 0, s.GetLogCount(7))

	s.AddLog(store.CategoryGuidance, map[string]any{"topic": "tone"}, "")
	s.AddLog(store.CategoryEthics, map[string]any{"domain": "privacy"}, "")

	assert.Equal(t, 2, s.GetLogCount(7))
	assert.Len(t, s.GetAllLogs(7), 2)
}

func TestLogActionFiltersTrivialTools(t *testing.T) {
	s := newTestStore(t)

	id := s.LogAction("mind_dream", map[string]any{}, "")
	assert.Equal(t, int64(-1), id)

	id = s.LogAction("session_status", map[string]any{}, "")
	assert.Equal(t, int64(-1), id)

	actions := s.GetRecentActions(7, "")
	assert.Len(t, actions, 0)

	id = s.LogAction("read_file", map[string]any{"path": "/tmp/a"}, "sess")
	assert.Greater(t, id, int64(0))

	actions = s.GetRecentActions(7, "")
	require.Len(t, actions, 1)
	assert.Equal(t, "Read file: /tmp/a", actions[0].Summary)
}

func TestApproveAndRejectLearning(t *testing.T) {
	s := newTestStore(t)

	id := s.AddLearning("Be terse", "Keep replies short", "User repeatedly corrected verbosity", false)
	require.Greater(t, id, int64(0))

	assert.Len(t, s.GetPendingLearnings(), 1)
	assert.Len(t, s.GetApprovedLearnings(), 0)

	s.ApproveLearning(id)
	// idempotent: approving twice is equivalent to once
	s.ApproveLearning(id)

	assert.Len(t, s.GetPendingLearnings(), 0)
	approved := s.GetApprovedLearnings()
	require.Len(t, approved, 1)
	assert.Equal(t, "Be terse", approved[0].Title)

	s.RejectLearning(id)
	assert.Len(t, s.GetApprovedLearnings(), 0)

	titles := s.GetRejectedTitles()
	require.Len(t, titles, 1)
	assert.Equal(t, "Be terse", titles[0])
}

func TestRejectUnknownIDIsNoOp(t *testing.T) {
	s := newTestStore(t)

	id := s.AddLearning("Keep it", "content", "rationale", true)
	before := s.GetApprovedLearnings()
	require.Len(t, before, 1)

	s.RejectLearning(id + 999)

	after := s.GetApprovedLearnings()
	assert.Len(t, after, 1)
	assert.Len(t, s.GetRejectedTitles(), 0)
}

func TestActivateLearningBoostsRelevanceAndCount(t *testing.T) {
	s := newTestStore(t)

	id := s.AddLearning("X", "Y", "Z", true)
	s.ActivateLearning(id)

	approved := s.GetApprovedLearnings()
	require.Len(t, approved, 1)
	assert.InDelta(t, 1.0, approved[0].RelevanceScore, 1e-9) // already at cap
	assert.Equal(t, int64(1), approved[0].ActivationCount)
}

func TestApplyDecayDynamics(t *testing.T) {
	s := newTestStore(t)

	id := s.AddLearning("X", "Y", "Z", true)

	for i := 0; i < 5; i++ {
		s.ApplyDecay()
	}

	approved := s.GetApprovedLearnings()
	require.Len(t, approved, 1)
	assert.InDelta(t, 0.7737809375, approved[0].RelevanceScore, 1e-6)

	s.ActivateLearning(id)
	approved = s.GetApprovedLearnings()
	require.Len(t, approved, 1)
	assert.InDelta(t, 0.9237809375, approved[0].RelevanceScore, 1e-6)
	assert.Equal(t, int64(1), approved[0].ActivationCount)
}

func TestApplyDecayPrunesAfterEnoughCycles(t *testing.T) {
	s := newTestStore(t)
	s.AddLearning("X", "Y", "Z", true)

	// 0.95^n first drops below 0.1 (MinRelevance) at n=45.
	pruned := 0
	for i := 0; i < 45; i++ {
		pruned = s.ApplyDecay()
	}
	assert.Equal(t, 1, pruned)
	assert.Len(t, s.GetApprovedLearnings(), 0)
}

func TestApplyDecayOnEmptyStoreReturnsZero(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, 0, s.ApplyDecay())
}

func TestRecordAndGetRecentDreams(t *testing.T) {
	s := newTestStore(t)

	s.RecordDream(7, 3, "")
	s.RecordDream(7, 5, "")

	dreams := s.GetRecentDreams(5)
	require.Len(t, dreams, 2)
	assert.Equal(t, 5, dreams[0].LogCount) // newest first
}

func TestFormatRecentActionsEmptyWhenNoActions(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, "", s.FormatRecentActions("", 10))
}

func TestFormatActionsForDreamIncludesUsageCounts(t *testing.T) {
	s := newTestStore(t)
	s.LogAction("read_file", map[string]any{"path": "/a"}, "")
	s.LogAction("read_file", map[string]any{"path": "/b"}, "")
	s.LogAction("bash", map[string]any{"command": "ls"}, "")

	out := s.FormatActionsForDream(7)
	assert.Contains(t, out, "Tool Usage:")
	assert.Contains(t, out, "read_file: 2")
	assert.Contains(t, out, "bash: 1")
	assert.Contains(t, out, "Recent Actions:")
}

func TestPerAgentIsolation(t *testing.T) {
	dir := t.TempDir()

	a, err := store.OpenSQLite(filepath.Join(dir, "a.db"), "A")
	require.NoError(t, err)
	defer a.Close()

	b, err := store.OpenSQLite(filepath.Join(dir, "b.db"), "B")
	require.NoError(t, err)
	defer b.Close()

	a.AddLearning("only-in-a", "content", "rationale", true)

	assert.Len(t, a.GetApprovedLearnings(), 1)
	assert.Len(t, b.GetApprovedLearnings(), 0)
}

func TestStatsAggregatesAcrossTables(t *testing.T) {
	s := newTestStore(t)
	s.AddLog(store.CategoryStress, map[string]any{}, "")
	s.AddLearning("X", "Y", "Z", true)
	s.AddLearning("P", "Q", "R", false)
	s.RecordDream(7, 1, "")

	st := s.Stats(7)
	assert.Equal(t, 1, st.LogCount)
	assert.Equal(t, 1, st.ApprovedLearnings)
	assert.Equal(t, 1, st.PendingLearnings)
	assert.Equal(t, 1, st.DreamCount)
}
