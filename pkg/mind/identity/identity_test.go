package identity_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadirpekel/hector-mind/pkg/mind/identity"
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

func TestPrinciplesAreImmutableRegardlessOfStoreState(t *testing.T) {
	before := append([]identity.Principle(nil), identity.Principles...)

	s := newTestStore(t)
	s.AddLearning("X", "Y", "Z", true)
	b := identity.New()
	b.Build(s, "")

	assert.Equal(t, before, identity.Principles)
	assert.Len(t, identity.Principles, 5)
}

func TestBuildWithNoApprovedLearnings(t *testing.T) {
	s := newTestStore(t)
	b := identity.New()

	out := b.Build(s, "")
	assert.Contains(t, out, "*No approved learnings yet.*")
	assert.Contains(t, out, "## Immutable Core Principles")
	assert.Contains(t, out, "## Protocol")
	assert.Contains(t, out, "## Cost Awareness")
}

func TestBuildIncludesActionMemoryOnlyWhenNonEmpty(t *testing.T) {
	s := newTestStore(t)
	b := identity.New()

	out := b.Build(s, "sess-1")
	assert.NotContains(t, out, "## Action Memory")

	s.LogAction("read_file", map[string]any{"path": "/tmp/a"}, "sess-1")
	out = b.Build(s, "sess-1")
	assert.Contains(t, out, "## Action Memory")
	assert.Contains(t, out, "Read file: /tmp/a")
}

func TestSelectiveActivationBoostsSharedVocabularyLearning(t *testing.T) {
	s := newTestStore(t)
	id := s.AddLearning("Prefer tmp paths", "Always read files under the tmp directory first", "seen often", true)

	s.LogAction("read_file", map[string]any{"path": "/tmp/directory/file"}, "sess-1")

	b := identity.New()
	b.Build(s, "sess-1")

	approved := s.GetApprovedLearnings()
	require.Len(t, approved, 1)
	assert.Equal(t, id, approved[0].ID)
	assert.Equal(t, int64(1), approved[0].ActivationCount)
}
