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

package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kadirpekel/hector-mind/pkg/mind/action"
)

// LogAction summarizes and appends a non-trivial tool execution. Trivial
// tools (per action.IsTrivial) write no row and return -1, matching the
// spec's trivial-tool filter invariant.
func (s *Store) LogAction(toolName string, args map[string]any, sessionKey string) int64 {
	summary, ok := action.Summarize(toolName, args)
	if !ok {
		return -1
	}

	body, err := json.Marshal(args)
	if err != nil {
		warnf("log_action.marshal", err)
		return -1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := bgCtx()
	defer cancel()

	query := `INSERT INTO mind_actions (tool_name, summary, args_snapshot, session_key, created_at) VALUES (` +
		s.placeholder(1) + `, ` + s.placeholder(2) + `, ` + s.placeholder(3) + `, ` + s.placeholder(4) + `, ` + s.placeholder(5) + `)`

	res, err := s.execContext(ctx, query, toolName, summary, string(body), sessionKey, nowMillis())
	if err != nil {
		warnf("log_action.insert", err)
		return -1
	}

	id, err := res.LastInsertId()
	if err != nil {
		warnf("log_action.last_insert_id", err)
		return -1
	}
	return id
}

// GetRecentActions returns at most 100 action records within sinceDays,
// newest first. When sessionKey is non-empty, results are restricted to
// that session.
func (s *Store) GetRecentActions(sinceDays int, sessionKey string) []ActionRecord {
	ctx, cancel := bgCtx()
	defer cancel()

	query := `SELECT id, tool_name, summary, args_snapshot, session_key, created_at FROM mind_actions
WHERE created_at >= ` + s.placeholder(1)
	args := []any{sinceCutoff(sinceDays)}

	if sessionKey != "" {
		query += ` AND session_key = ` + s.placeholder(2)
		args = append(args, sessionKey)
	}
	query += ` ORDER BY created_at DESC LIMIT 100`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		warnf("get_recent_actions", err)
		return []ActionRecord{}
	}
	defer rows.Close()

	records := make([]ActionRecord, 0)
	for rows.Next() {
		var r ActionRecord
		var argsSnapshot string
		if err := rows.Scan(&r.ID, &r.ToolName, &r.Summary, &argsSnapshot, &r.SessionKey, &r.CreatedAt); err != nil {
			warnf("scan_action_record", err)
			continue
		}
		r.ArgsSnapshot = json.RawMessage(argsSnapshot)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		warnf("get_recent_actions.rows", err)
	}
	return records
}

// FormatRecentActions renders a markdown-like bullet list of the most
// recent actions (ISO-8601 minute precision timestamps), for inclusion
// in the Identity Builder's Action Memory section.
func (s *Store) FormatRecentActions(sessionKey string, limit int) string {
	if limit <= 0 {
		limit = 20
	}

	actions := s.GetRecentActions(DefaultSinceDays, sessionKey)
	if len(actions) > limit {
		actions = actions[:limit]
	}
	if len(actions) == 0 {
		return ""
	}

	var b strings.Builder
	for _, a := range actions {
		ts := time.UnixMilli(a.CreatedAt).UTC().Format("2006-01-02T15:04")
		fmt.Fprintf(&b, "- [%s] %s\n", ts, a.Summary)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatActionsForDream renders the Dream Planner's action digest:
// a tool-usage count section (DESC by count) followed by the 30 most
// recent action summaries.
func (s *Store) FormatActionsForDream(days int) string {
	actions := s.GetRecentActions(days, "")
	if len(actions) == 0 {
		return "No actions recorded in this period."
	}

	counts := make(map[string]int)
	for _, a := range actions {
		counts[a.ToolName]++
	}
	type toolCount struct {
		name  string
		count int
	}
	usage := make([]toolCount, 0, len(counts))
	for name, count := range counts {
		usage = append(usage, toolCount{name, count})
	}
	sort.Slice(usage, func(i, j int) bool {
		if usage[i].count != usage[j].count {
			return usage[i].count > usage[j].count
		}
		return usage[i].name < usage[j].name
	})

	var b strings.Builder
	b.WriteString("Tool Usage:\n")
	for _, u := range usage {
		fmt.Fprintf(&b, "- %s: %d\n", u.name, u.count)
	}

	b.WriteString("\nRecent Actions:\n")
	top := actions
	if len(top) > 30 {
		top = top[:30]
	}
	for _, a := range top {
		ts := time.UnixMilli(a.CreatedAt).UTC().Format("2006-01-02T15:04")
		fmt.Fprintf(&b, "- [%s] %s\n", ts, a.Summary)
	}

	return strings.TrimRight(b.String(), "\n")
}
