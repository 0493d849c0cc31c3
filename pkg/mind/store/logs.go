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
)

// AddLog serializes payload to canonical JSON and appends a LogEntry.
// Returns the new row's id, or -1 if the write failed (storage faults
// are swallowed, per the Store's error model).
func (s *Store) AddLog(category Category, payload any, sessionKey string) int64 {
	body, err := json.Marshal(payload)
	if err != nil {
		warnf("add_log.marshal", err)
		return -1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := bgCtx()
	defer cancel()

	query := `INSERT INTO mind_log (category, payload, session_key, created_at) VALUES (` +
		s.placeholder(1) + `, ` + s.placeholder(2) + `, ` + s.placeholder(3) + `, ` + s.placeholder(4) + `)`

	res, err := s.execContext(ctx, query, string(category), string(body), sessionKey, nowMillis())
	if err != nil {
		warnf("add_log.insert", err)
		return -1
	}

	id, err := res.LastInsertId()
	if err != nil {
		warnf("add_log.last_insert_id", err)
		return -1
	}
	return id
}

// GetLogs returns log entries in the given category within the last
// sinceDays (default DefaultSinceDays), newest first.
func (s *Store) GetLogs(category Category, sinceDays int) []LogEntry {
	ctx, cancel := bgCtx()
	defer cancel()

	query := `SELECT id, category, payload, session_key, created_at FROM mind_log
WHERE category = ` + s.placeholder(1) + ` AND created_at >= ` + s.placeholder(2) + `
ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, string(category), sinceCutoff(sinceDays))
	if err != nil {
		warnf("get_logs", err)
		return []LogEntry{}
	}
	defer rows.Close()

	return scanLogEntries(rows)
}

// GetAllLogs returns log entries across all categories within the
// last sinceDays, newest first.
func (s *Store) GetAllLogs(sinceDays int) []LogEntry {
	ctx, cancel := bgCtx()
	defer cancel()

	query := `SELECT id, category, payload, session_key, created_at FROM mind_log
WHERE created_at >= ` + s.placeholder(1) + `
ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, sinceCutoff(sinceDays))
	if err != nil {
		warnf("get_all_logs", err)
		return []LogEntry{}
	}
	defer rows.Close()

	return scanLogEntries(rows)
}

// GetLogCount returns the number of log entries within the last
// sinceDays.
func (s *Store) GetLogCount(sinceDays int) int {
	ctx, cancel := bgCtx()
	defer cancel()

	query := `SELECT COUNT(*) FROM mind_log WHERE created_at >= ` + s.placeholder(1)

	var count int
	if err := s.db.QueryRowContext(ctx, query, sinceCutoff(sinceDays)).Scan(&count); err != nil {
		warnf("get_log_count", err)
		return 0
	}
	return count
}

func scanLogEntries(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) []LogEntry {
	entries := make([]LogEntry, 0)
	for rows.Next() {
		var e LogEntry
		var category, payload string
		if err := rows.Scan(&e.ID, &category, &payload, &e.SessionKey, &e.CreatedAt); err != nil {
			warnf("scan_log_entry", err)
			continue
		}
		e.Category = Category(category)
		e.Payload = json.RawMessage(payload)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		warnf("scan_log_entries.rows", err)
	}
	return entries
}
