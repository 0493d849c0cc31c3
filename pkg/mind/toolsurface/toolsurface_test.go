package toolsurface_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadirpekel/hector-mind/pkg/mind/store"
	"github.com/kadirpekel/hector-mind/pkg/mind/toolsurface"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	dir := t.TempDir()
	s, err := store.OpenSQLite(filepath.Join(dir, "agent.db"), "test-agent")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func findTool(t *testing.T, descriptors []toolsurface.Descriptor, name string) toolsurface.Descriptor {
	t.Helper()
	for _, d := range descriptors {
		if d.Name == name {
			return d
		}
	}
	t.Fatalf("tool %q not found", name)
	return toolsurface.Descriptor{}
}

func TestDescriptorsExposeAllNineOperations(t *testing.T) {
	s := newTestStore(t)
	surface := toolsurface.New(s, "", nil)
	descriptors := surface.Descriptors()

	assert.Len(t, descriptors, 9)
	for _, name := range []string{
		"log_stress", "confess_uncertainty", "log_ethical_refusal", "log_guidance",
		"dream", "get_learnings", "approve_learning", "reject_learning", "save_learning",
	} {
		findTool(t, descriptors, name)
	}
}

func TestLogStressClampsIntensityAndWrites(t *testing.T) {
	s := newTestStore(t)
	surface := toolsurface.New(s, "sess-1", nil)
	tool := findTool(t, surface.Descriptors(), "log_stress")

	result := tool.Execute(context.Background(), map[string]any{
		"signal_type": "correction",
		"context":     "no, that's wrong",
		"intensity":   99,
	})
	assert.Equal(t, true, result["success"])

	logs := s.GetLogs(store.CategoryStress, 7)
	require.Len(t, logs, 1)

	var payload struct {
		Intensity int `json:"intensity"`
	}
	require.NoError(t, json.Unmarshal(logs[0].Payload, &payload))
	assert.Equal(t, 5, payload.Intensity)
}

func TestLogStressRejectsMissingContext(t *testing.T) {
	s := newTestStore(t)
	surface := toolsurface.New(s, "", nil)
	tool := findTool(t, surface.Descriptors(), "log_stress")

	result := tool.Execute(context.Background(), map[string]any{"signal_type": "correction"})
	assert.Equal(t, false, result["success"])
	assert.Len(t, s.GetLogs(store.CategoryStress, 7), 0)
}

func TestConfessUncertaintySuggestsAlternative(t *testing.T) {
	s := newTestStore(t)
	surface := toolsurface.New(s, "", nil)
	tool := findTool(t, surface.Descriptors(), "confess_uncertainty")

	result := tool.Execute(context.Background(), map[string]any{
		"area":               "database schema",
		"confidence":         0.4,
		"alternative_action": "re-read the migration files",
	})
	assert.Equal(t, true, result["success"])
	assert.Contains(t, result["user_message"], "re-read the migration files")
}

func TestSaveApproveRejectLifecycle(t *testing.T) {
	s := newTestStore(t)
	surface := toolsurface.New(s, "", nil)
	descriptors := surface.Descriptors()

	save := findTool(t, descriptors, "save_learning")
	result := save.Execute(context.Background(), map[string]any{
		"title": "Be terse", "content": "Keep replies short", "rationale": "user feedback",
	})
	require.Equal(t, true, result["success"])

	pending := s.GetPendingLearnings()
	require.Len(t, pending, 1)
	id := pending[0].ID

	approve := findTool(t, descriptors, "approve_learning")
	approve.Execute(context.Background(), map[string]any{"id": float64(id)})
	assert.Len(t, s.GetApprovedLearnings(), 1)

	reject := findTool(t, descriptors, "reject_learning")
	reject.Execute(context.Background(), map[string]any{"id": float64(id)})
	assert.Len(t, s.GetApprovedLearnings(), 0)
	assert.Contains(t, s.GetRejectedTitles(), "Be terse")
}

func TestDreamToolRunsCycle(t *testing.T) {
	s := newTestStore(t)
	surface := toolsurface.New(s, "", nil)
	tool := findTool(t, surface.Descriptors(), "dream")

	result := tool.Execute(context.Background(), map[string]any{})
	assert.Equal(t, true, result["success"])
	assert.Contains(t, result["analysis_prompt"], "Dream Phase Analysis")
}

type fakeRecorder struct {
	logs   []string
	dreams int
	pruned int
}

func (f *fakeRecorder) RecordLog(agentID, category string) {
	f.logs = append(f.logs, agentID+"/"+category)
}

func (f *fakeRecorder) RecordDream(agentID string, pruned int) {
	f.dreams++
	f.pruned += pruned
}

func TestLogStressRecordsMetricWhenRecorderSet(t *testing.T) {
	s := newTestStore(t)
	rec := &fakeRecorder{}
	surface := toolsurface.New(s, "", rec)
	tool := findTool(t, surface.Descriptors(), "log_stress")

	tool.Execute(context.Background(), map[string]any{
		"signal_type": "correction",
		"context":     "no, that's wrong",
	})

	require.Len(t, rec.logs, 1)
	assert.Equal(t, "test-agent/stress", rec.logs[0])
}

func TestDreamToolRecordsMetricWhenRecorderSet(t *testing.T) {
	s := newTestStore(t)
	rec := &fakeRecorder{}
	surface := toolsurface.New(s, "", rec)
	tool := findTool(t, surface.Descriptors(), "dream")

	tool.Execute(context.Background(), map[string]any{})

	assert.Equal(t, 1, rec.dreams)
}
