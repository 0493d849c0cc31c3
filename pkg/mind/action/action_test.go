package action_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kadirpekel/hector-mind/pkg/mind/action"
)

func TestIsTrivial(t *testing.T) {
	assert.True(t, action.IsTrivial("mind_dream"))
	assert.True(t, action.IsTrivial("mind_log_stress"))
	assert.True(t, action.IsTrivial("session_status"))
	assert.True(t, action.IsTrivial("memory_search"))
	assert.True(t, action.IsTrivial("memory_get"))
	assert.False(t, action.IsTrivial("read_file"))
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		tool     string
		args     map[string]any
		wantOK   bool
		contains string
	}{
		{"trivial filtered", "mind_dream", nil, false, ""},
		{"read file", "read_file", map[string]any{"path": "/tmp/a.txt"}, true, "Read file: /tmp/a.txt"},
		{"read alias", "read", map[string]any{"file_path": "/tmp/b.txt"}, true, "Read file: /tmp/b.txt"},
		{"command", "bash", map[string]any{"command": "ls -la"}, true, "Ran command: ls -la"},
		{"web fetch", "web_fetch", map[string]any{"url": "https://example.com"}, true, "Fetched: https://example.com"},
		{"unknown tool", "frobnicate", map[string]any{}, true, "Used tool: frobnicate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, ok := action.Summarize(tt.tool, tt.args)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Contains(t, summary, tt.contains)
				assert.NotEmpty(t, summary)
			}
		})
	}
}

func TestSummarizeTruncatesEmbeddedStrings(t *testing.T) {
	longCmd := ""
	for i := 0; i < 200; i++ {
		longCmd += "x"
	}
	summary, ok := action.Summarize("bash", map[string]any{"command": longCmd})
	assert.True(t, ok)
	assert.LessOrEqual(t, len([]rune(summary)), 100)
	assert.Contains(t, summary, "…")
}
