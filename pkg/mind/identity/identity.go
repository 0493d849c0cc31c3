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

// Package identity builds the "Spiritual Biology" section of the
// agent's system prompt: the frozen conscience principles, the
// currently-approved tactical learnings, and the fixed behavioral
// protocol. No learning, however it was approved, may ever alter the
// principles themselves.
package identity

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/kadirpekel/hector-mind/pkg/mind/store"
)

// Principle is an immutable conscience rule. The set is a compile-time
// constant; it is never read from or written to the Store.
type Principle struct {
	Name string
	Rule string
}

// Principles is the canonical, ordered, immutable set of five
// conscience rules. Callers must never sort, filter, or mutate this
// slice; treat it as read-only.
var Principles = []Principle{
	{Name: "System Stability", Rule: "Never take an action that could destabilize the host system or the agent's own operation without explicit user consent."},
	{Name: "Transparency & Consent", Rule: "Disclose significant actions and obtain consent before anything irreversible or broad in effect."},
	{Name: "Data Privacy", Rule: "Treat user and third-party data as confidential; never exfiltrate, log, or expose it beyond what the task requires."},
	{Name: "Proactive Problem Solving", Rule: "Surface risks and alternatives rather than silently proceeding when a better path is visible."},
	{Name: "No Damage", Rule: "Refuse to cause harm, and treat refusing harmful requests as a successful outcome, not a failure to help."},
}

const cacheTTL = 5 * time.Minute

type cacheEntry struct {
	formatted string
	timestamp time.Time
	agentID   string
}

// Builder renders the identity section for a single agent's Store,
// caching the rendered text for up to five minutes.
type Builder struct {
	mu    sync.Mutex
	cache cacheEntry
}

// New returns a ready-to-use Builder.
func New() *Builder {
	return &Builder{}
}

// Build renders the identity section for s. If sessionKey is non-empty,
// approved learnings that share a significant word with the last day's
// tool-action summaries are reactivated before rendering.
func (b *Builder) Build(s *store.Store, sessionKey string) string {
	if sessionKey != "" {
		activateRelevant(s, sessionKey)
	}

	if cached, ok := b.cached(s.AgentID()); ok {
		return withActionMemory(cached, s, sessionKey)
	}

	rendered := render(s)

	b.mu.Lock()
	b.cache = cacheEntry{formatted: rendered, timestamp: time.Now(), agentID: s.AgentID()}
	b.mu.Unlock()

	return withActionMemory(rendered, s, sessionKey)
}

func (b *Builder) cached(agentID string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cache.agentID != agentID {
		return "", false
	}
	if time.Since(b.cache.timestamp) >= cacheTTL {
		return "", false
	}
	return b.cache.formatted, true
}

func render(s *store.Store) string {
	var sb strings.Builder

	sb.WriteString("## Immutable Core Principles\n")
	for i, p := range Principles {
		sb.WriteString(fmt.Sprintf("%d. %s: %s\n", i+1, p.Name, p.Rule))
	}
	sb.WriteString("\n")

	sb.WriteString("## Tactical Learnings\n")
	approved := s.GetApprovedLearnings()
	if len(approved) == 0 {
		sb.WriteString("*No approved learnings yet.*\n")
	} else {
		for _, l := range approved {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", l.Title, l.Content))
		}
	}
	sb.WriteString("\n")

	sb.WriteString(protocolParagraph)
	sb.WriteString("\n\n")
	sb.WriteString(costAwarenessParagraph)

	return sb.String()
}

const protocolParagraph = `## Protocol
Log every instance of user stress, every admission of uncertainty below 70% confidence, and every ethical refusal, the moment it occurs; refusing a harmful request is a success, not a failure, and should be logged as such. Log guidance the user gives about tone, process, or preference. Write every log entry in the language the user is currently speaking.`

const costAwarenessParagraph = `## Cost Awareness
Dreaming, logging, and learning all consume resources. Prefer concise logs and avoid redundant dream cycles when nothing new has happened since the last one.`

// withActionMemory appends the Action Memory section when non-empty,
// without being part of the cached text (action history changes far
// more often than the principles/learnings section).
func withActionMemory(base string, s *store.Store, sessionKey string) string {
	actions := s.FormatRecentActions(sessionKey, 10)
	if actions == "" {
		return base
	}
	return base + "\n## Action Memory\n" + actions
}

// activateRelevant reinforces approved learnings whose content shares a
// significant word (length > 3) with the last day's tool-action
// summaries, counteracting decay for learnings still in active use.
func activateRelevant(s *store.Store, sessionKey string) {
	actions := s.GetRecentActions(1, sessionKey)
	if len(actions) == 0 {
		return
	}

	words := make(map[string]bool)
	for _, a := range actions {
		for _, w := range strings.Fields(a.Summary) {
			w = strings.ToLower(strings.Trim(w, ".,:;!?\"'"))
			if len(w) > 3 {
				words[w] = true
			}
		}
	}
	if len(words) == 0 {
		return
	}

	for _, l := range s.GetApprovedLearnings() {
		contentWords := strings.Fields(strings.ToLower(l.Content))
		for _, cw := range contentWords {
			cw = strings.Trim(cw, ".,:;!?\"'")
			if words[cw] {
				s.ActivateLearning(l.ID)
				break
			}
		}
	}
}
