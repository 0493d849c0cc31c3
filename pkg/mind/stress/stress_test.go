package stress_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadirpekel/hector-mind/pkg/mind/stress"
)

func TestDetectRegexBoundaryPhrases(t *testing.T) {
	d := stress.New(nil)

	r := d.Detect(context.Background(), "no, that's wrong", "")
	assert.True(t, r.Detected)
	assert.Equal(t, 3, r.Intensity)
	assert.Equal(t, stress.MethodRegex, r.Method)

	r = d.Detect(context.Background(), "great, thanks!", "")
	assert.False(t, r.Detected)
	assert.Equal(t, stress.MethodNone, r.Method)

	r = d.Detect(context.Background(), "no es lo que pedí", "")
	assert.True(t, r.Detected)
	assert.Equal(t, stress.MethodRegex, r.Method)
}

type stubEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if v, ok := s.vectors[text]; ok {
		return v, nil
	}
	return []float32{0, 0, 0}, nil
}

func TestDetectSemanticFallbackAboveThreshold(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float32{
		"this is fine, no issues": {1, 0, 0},
	}}
	// every reference phrase embeds to the same near-identical vector
	for _, p := range []string{
		"No, that is not what I asked for, please fix it.",
		"I already explained this to you multiple times.",
		"This keeps failing and it is getting frustrating.",
		"You are still doing it wrong, pay attention.",
		"Stop making the same mistake over and over.",
	} {
		embedder.vectors[p] = []float32{0.99, 0.01, 0}
	}
	embedder.vectors["frustrated input"] = []float32{1, 0, 0}

	d := stress.New(embedder)
	r := d.Detect(context.Background(), "frustrated input", "provider-a")
	assert.True(t, r.Detected)
	assert.Equal(t, 2, r.Intensity)
	assert.Equal(t, stress.MethodSemantic, r.Method)
}

func TestDetectSemanticBelowThresholdReturnsNone(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float32{
		"calm unrelated text": {0, 1, 0},
	}}
	for _, p := range []string{
		"No, that is not what I asked for, please fix it.",
		"I already explained this to you multiple times.",
		"This keeps failing and it is getting frustrating.",
		"You are still doing it wrong, pay attention.",
		"Stop making the same mistake over and over.",
	} {
		embedder.vectors[p] = []float32{1, 0, 0}
	}

	d := stress.New(embedder)
	r := d.Detect(context.Background(), "calm unrelated text", "provider-a")
	assert.False(t, r.Detected)
	assert.Equal(t, stress.MethodNone, r.Method)
}

func TestDetectSemanticEmbeddingErrorFallsBackToNotDetected(t *testing.T) {
	embedder := &stubEmbedder{err: errors.New("provider unavailable")}
	d := stress.New(embedder)

	r := d.Detect(context.Background(), "anything at all", "provider-a")
	assert.False(t, r.Detected)
	assert.Equal(t, stress.MethodNone, r.Method)
}

func TestProviderKeyChangeInvalidatesReferenceCache(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float32{}}
	for _, p := range []string{
		"No, that is not what I asked for, please fix it.",
		"I already explained this to you multiple times.",
		"This keeps failing and it is getting frustrating.",
		"You are still doing it wrong, pay attention.",
		"Stop making the same mistake over and over.",
	} {
		embedder.vectors[p] = []float32{1, 0, 0}
	}
	embedder.vectors["hi"] = []float32{0, 1, 0}

	d := stress.New(embedder)
	d.Detect(context.Background(), "hi", "provider-a")
	callsAfterFirst := embedder.calls
	require.Equal(t, 6, callsAfterFirst) // 5 reference phrases + input

	d.Detect(context.Background(), "hi", "provider-a")
	assert.Equal(t, callsAfterFirst+1, embedder.calls) // cache hit: only input re-embedded

	d.Detect(context.Background(), "hi", "provider-b")
	assert.Equal(t, callsAfterFirst+1+6, embedder.calls) // provider changed: cache rebuilt
}
