// Copyright 2025 Kadir Pekel
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package stress classifies a user utterance as stressed, via a
// regex pass over English and Spanish correction/frustration idioms
// and an optional semantic fallback driven by an injected embedder.
package stress

import (
	"context"
	"math"
	"regexp"
	"sync"
)

// Method identifies which detection stage produced a result.
type Method string

const (
	MethodRegex    Method = "regex"
	MethodSemantic Method = "semantic"
	MethodNone     Method = "none"
)

// Result is the outcome of a stress classification.
type Result struct {
	Detected  bool
	Intensity int
	Method    Method
}

const semanticThreshold = 0.75

// Embedder turns text into a vector embedding, scoped to one provider.
// Implementations are supplied by the agent runtime; the detector never
// constructs one itself.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// patterns covers idioms of correction, frustration, and "I already
// told you" in English and Spanish. All matching is case-insensitive.
var patterns = compilePatterns([]string{
	`\bno[,.]?\s+that'?s\s+wrong\b`,
	`\bthat'?s\s+not\s+(what|right|correct)\b`,
	`\bi\s+(already\s+)?(said|told)\s+you\b`,
	`\bhow\s+many\s+times\s+(do|have)\s+i\s+(to\s+)?(tell|say)\b`,
	`\b(you'?re|youre)\s+(still\s+)?wrong\b`,
	`\bthis\s+is\s+(not|n't)\s+working\b`,
	`\b(stop|quit)\s+(doing|making)\s+that\b`,
	`\bfor\s+the\s+(last|third|second)\s+time\b`,
	`\bi\s+(am|'m)\s+(so\s+)?frustrated\b`,
	`\bno\s+es\s+(lo\s+que\s+ped[ií]|correcto|as[ií])(?:$|[^\pL])`,
	`\bya\s+te\s+(lo\s+)?(dije|he\s+dicho)\b`,
	`\beso\s+(est[aá]|sigue)\s+mal\b`,
	`\bcu[aá]ntas\s+veces\s+(tengo|hay)\s+que\s+decir(te)?\b`,
	`\bno\s+(funciona|est[aá]\s+funcionando)\b`,
})

func compilePatterns(raw []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(raw))
	for _, p := range raw {
		out = append(out, regexp.MustCompile(`(?i)`+p))
	}
	return out
}

// referencePhrases are embedded once per provider and compared against
// the input via cosine similarity when regex finds nothing.
var referencePhrases = []string{
	"No, that is not what I asked for, please fix it.",
	"I already explained this to you multiple times.",
	"This keeps failing and it is getting frustrating.",
	"You are still doing it wrong, pay attention.",
	"Stop making the same mistake over and over.",
}

// cache holds embeddings for referencePhrases, valid for one provider
// at a time. It is the single process-wide mutable slot the semantic
// stage owns; a provider change rebuilds it, last-write-wins on races.
type cache struct {
	mu          sync.Mutex
	providerKey string
	embeddings  [][]float32
}

// Detector classifies utterances. The zero value is ready to use with
// regex-only detection; an Embedder may be supplied for the semantic
// fallback stage.
type Detector struct {
	embedder Embedder
	cache    cache
}

// New returns a Detector. embedder may be nil, in which case only the
// regex stage ever runs.
func New(embedder Embedder) *Detector {
	return &Detector{embedder: embedder}
}

// Detect classifies text. providerKey identifies the embedding
// provider backing the semantic stage and may be empty when embedder
// is nil.
func (d *Detector) Detect(ctx context.Context, text string, providerKey string) Result {
	if detectRegex(text) {
		return Result{Detected: true, Intensity: 3, Method: MethodRegex}
	}

	if d.embedder == nil {
		return Result{Detected: false, Intensity: 0, Method: MethodNone}
	}

	return d.detectSemantic(ctx, text, providerKey)
}

func detectRegex(text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

func (d *Detector) detectSemantic(ctx context.Context, text, providerKey string) Result {
	refEmbeddings, ok := d.referenceEmbeddings(ctx, providerKey)
	if !ok {
		return Result{Detected: false, Intensity: 0, Method: MethodNone}
	}

	vec, err := d.embedder.Embed(ctx, text)
	if err != nil {
		return Result{Detected: false, Intensity: 0, Method: MethodNone}
	}

	best := 0.0
	for _, ref := range refEmbeddings {
		if sim := cosineSimilarity(vec, ref); sim > best {
			best = sim
		}
	}

	if best > semanticThreshold {
		return Result{Detected: true, Intensity: 2, Method: MethodSemantic}
	}
	return Result{Detected: false, Intensity: 0, Method: MethodNone}
}

func (d *Detector) referenceEmbeddings(ctx context.Context, providerKey string) ([][]float32, bool) {
	d.cache.mu.Lock()
	defer d.cache.mu.Unlock()

	if d.cache.providerKey == providerKey && d.cache.embeddings != nil {
		return d.cache.embeddings, true
	}

	embeddings := make([][]float32, 0, len(referencePhrases))
	for _, phrase := range referencePhrases {
		vec, err := d.embedder.Embed(ctx, phrase)
		if err != nil {
			return nil, false
		}
		embeddings = append(embeddings, vec)
	}

	d.cache.providerKey = providerKey
	d.cache.embeddings = embeddings
	return embeddings, true
}

// cosineSimilarity is the dot product over the square root of the
// product of both squared norms, with a denominator floor of 1 instead
// of a zero-norm short circuit. Vectors of different lengths score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	denom := math.Sqrt(normA * normB)
	if denom < 1 {
		denom = 1
	}
	return dot / denom
}
