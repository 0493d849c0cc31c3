package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDecayBoundaryAtPruneFloor pins the exact relevance trajectory
// from spec section 8's boundary scenario: a learning at 0.11 survives
// one decay (-> 0.1045) and is pruned on the second (-> 0.0993 < 0.1).
// This reaches into the unexported relevance column directly (white-box)
// because the public API only ever produces relevance 1.0 on creation.
func TestDecayBoundaryAtPruneFloor(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenSQLite(filepath.Join(dir, "agent.db"), "test")
	require.NoError(t, err)
	defer s.Close()

	id := s.AddLearning("boundary", "content", "rationale", true)

	ctx, cancel := bgCtx()
	defer cancel()
	_, err = s.execContext(ctx, `UPDATE mind_learnings SET relevance_score = 0.11 WHERE id = `+s.placeholder(1), id)
	require.NoError(t, err)

	pruned := s.ApplyDecay()
	assert.Equal(t, 0, pruned)
	approved := s.GetApprovedLearnings()
	require.Len(t, approved, 1)
	assert.InDelta(t, 0.1045, approved[0].RelevanceScore, 1e-9)

	pruned = s.ApplyDecay()
	assert.Equal(t, 1, pruned)
	assert.Len(t, s.GetApprovedLearnings(), 0)
}
