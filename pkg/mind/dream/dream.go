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

// Package dream implements the Dream Phase: it pulls recent behavioral
// signals out of a Store, composes them with the frozen conscience
// principles into a single analysis prompt, sanitizes that prompt
// against prompt-injection idioms, and records the invocation. Learning
// proposals themselves are generated by the LLM outside this package;
// the planner only builds the prompt that asks for them.
package dream

import (
	"fmt"
	"strings"

	"github.com/kadirpekel/hector-mind/pkg/mind/identity"
	"github.com/kadirpekel/hector-mind/pkg/mind/store"
)

const (
	minDays           = 1
	maxDays           = 30
	defaultDays       = 7
	maxPromptLen      = 30_000
	truncationSuffix  = "\n\n...[dream logs truncated for token budget]"
)

// Result is the outcome of a dream invocation.
type Result struct {
	LogCount int
	Pruned   int
	Prompt   string
}

// Recorder receives metrics for a completed dream cycle. Satisfied by
// *manager.Metrics; rec may be nil, in which case Run skips recording.
type Recorder interface {
	RecordDream(agentID string, pruned int)
}

// Run executes one dream cycle against s, analyzing the last daysToAnalyze
// days (clamped to [1, 30], default 7 outside that range). rec may be nil.
func Run(s *store.Store, daysToAnalyze int, rec Recorder) Result {
	days := clampDays(daysToAnalyze)

	logCount := s.GetLogCount(days)
	pruned := s.ApplyDecay()

	prompt := compose(s, days, logCount)
	prompt = sanitize(prompt)

	s.RecordDream(days, logCount, "")

	if rec != nil {
		rec.RecordDream(s.AgentID(), pruned)
	}

	return Result{LogCount: logCount, Pruned: pruned, Prompt: prompt}
}

func clampDays(days int) int {
	if days < minDays || days > maxDays {
		return defaultDays
	}
	return days
}

var logSections = []struct {
	category store.Category
	title    string
}{
	{store.CategoryStress, "Stress Signals"},
	{store.CategoryConfession, "Confessions of Uncertainty"},
	{store.CategoryEthics, "Ethical Refusals"},
	{store.CategoryGuidance, "Guidance Received"},
	{store.CategorySessionSummary, "Session Summaries"},
}

func compose(s *store.Store, days, logCount int) string {
	var b strings.Builder

	b.WriteString("# Dream Phase Analysis\n\n")
	b.WriteString(fmt.Sprintf("Analyzing the last %d day(s) of behavioral signals. ", days))
	b.WriteString(fmt.Sprintf("Total logs in window: %d.\n\n", logCount))

	for _, section := range logSections {
		entries := s.GetLogs(section.category, days)
		b.WriteString(fmt.Sprintf("## %s (%d)\n", section.title, len(entries)))
		if len(entries) == 0 {
			b.WriteString("None.\n\n")
			continue
		}
		for i, e := range entries {
			b.WriteString(fmt.Sprintf("%d. %s\n", i+1, string(e.Payload)))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Tool Actions\n")
	actions := s.FormatActionsForDream(days)
	if actions == "" {
		b.WriteString("None.\n")
	} else {
		b.WriteString(actions)
	}
	b.WriteString("\n")

	b.WriteString("## Current Approved Learnings\n")
	approved := s.GetApprovedLearnings()
	if len(approved) == 0 {
		b.WriteString("*No approved learnings yet.*\n\n")
	} else {
		for _, l := range approved {
			b.WriteString(fmt.Sprintf("- %s: %s\n", l.Title, l.Content))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Previously Rejected Learnings (DO NOT re-propose)\n")
	rejected := s.GetRejectedTitles()
	if len(rejected) == 0 {
		b.WriteString("None.\n\n")
	} else {
		for _, title := range rejected {
			b.WriteString(fmt.Sprintf("- %s\n", title))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Immutable Core Principles\n")
	for i, p := range identity.Principles {
		b.WriteString(fmt.Sprintf("%d. %s: %s\n", i+1, p.Name, p.Rule))
	}
	b.WriteString("\n")

	b.WriteString("## Analysis Instructions\n")
	b.WriteString("1. Filter out stress signals logged within 30 minutes after an ethical refusal; those are successful conscience operations, not failures to learn from.\n")
	b.WriteString("2. Identify recurring patterns across the signals above.\n")
	b.WriteString("3. Propose at most 3 new tactical learnings, each at most 50 words, addressing behavior not ethics.\n")
	b.WriteString("4. Self-critique: note any proposal that duplicates an existing or previously rejected learning.\n")
	b.WriteString("5. The Immutable Core Principles above are frozen conscience: no proposal may contradict, soften, or replace them.\n")

	return b.String()
}

// injectionPatterns are applied in order; each match is replaced with
// the literal "[filtered]". Matching is case-insensitive over the
// entire composed prompt, not only log payloads, so that an injection
// idiom buried in a stress-signal transcript cannot survive into the
// text the agent later reads as instructions.
var injectionPatterns = compileInjectionPatterns()

func sanitize(prompt string) string {
	for _, p := range injectionPatterns {
		prompt = p.ReplaceAllString(prompt, "[filtered]")
	}

	if len(prompt) > maxPromptLen {
		prompt = prompt[:maxPromptLen] + truncationSuffix
	}

	return prompt
}
