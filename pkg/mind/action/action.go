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

// Package action maps a tool-call (name + arguments) to a one-line
// memorable summary, for display in the agent's Action Memory section
// and the Dream Planner's action digest. Trivial, internal tools
// (mind_* self-reflection tools, session/memory introspection) are
// filtered out rather than summarized.
package action

import "strings"

const trivialPrefix = "mind_"

// trivialTools never produce an action summary: they are the engine's
// own introspection surface, not agent behavior worth remembering.
var trivialTools = map[string]bool{
	"session_status": true,
	"memory_search":  true,
	"memory_get":     true,
}

// IsTrivial reports whether toolName belongs to the internal deny-list
// that log_action must reject before insertion.
func IsTrivial(toolName string) bool {
	if strings.HasPrefix(toolName, trivialPrefix) {
		return true
	}
	return trivialTools[toolName]
}

// maxSummaryLen bounds the overall one-line summary (spec: "≤ ~100 chars").
const maxSummaryLen = 100

// embeddedTruncateLen bounds strings embedded inside a summary template
// (file paths, commands, URLs), matching the "truncated 80" convention.
const embeddedTruncateLen = 80

// Summarize maps a tool invocation to a one-line summary. The second
// return value is false for trivial tools, signaling the caller
// (Store.LogAction) to skip insertion entirely and return the -1
// sentinel.
func Summarize(toolName string, args map[string]any) (string, bool) {
	if IsTrivial(toolName) {
		return "", false
	}

	var summary string
	switch toolName {
	case "read", "read_file":
		path := firstString(args, "path", "file_path")
		summary = "Read file: " + truncate(path, embeddedTruncateLen)
	case "write", "write_file":
		path := firstString(args, "path", "file_path")
		summary = "Wrote file: " + truncate(path, embeddedTruncateLen)
	case "exec", "bash", "command":
		cmd := firstString(args, "command", "action")
		summary = "Ran command: " + truncate(cmd, embeddedTruncateLen)
	case "web_fetch", "web_request":
		url := firstString(args, "url", "action")
		summary = "Fetched: " + truncate(url, embeddedTruncateLen)
	case "search", "grep_search", "search_replace":
		query := firstString(args, "query", "pattern")
		summary = "Searched: " + truncate(query, embeddedTruncateLen)
	case "apply_patch":
		path := firstString(args, "path", "file_path")
		summary = "Patched file: " + truncate(path, embeddedTruncateLen)
	default:
		summary = "Used tool: " + toolName
	}

	return truncate(summary, maxSummaryLen), true
}

// firstString returns the first non-empty string value found under
// any of the given aliases, tolerating common field-name variation
// across tool schemas (e.g. path vs file_path).
func firstString(args map[string]any, aliases ...string) string {
	for _, key := range aliases {
		if v, ok := args[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// truncate shortens s to at most n runes, appending an ellipsis when
// truncated.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 1 {
		return "…"
	}
	return string(runes[:n-1]) + "…"
}
