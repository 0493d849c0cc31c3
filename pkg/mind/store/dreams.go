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

// RecordDream appends a dream-phase invocation record. proposals is
// typically empty: proposal text is LLM-generated outside the engine
// and persisted separately via AddLearning/save_learning (see design
// note in SPEC_FULL.md on the open question of proposals attribution).
func (s *Store) RecordDream(daysAnalyzed, logCount int, proposals string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := bgCtx()
	defer cancel()

	query := `INSERT INTO mind_dreams (days_analyzed, log_count, proposals, created_at) VALUES (` +
		s.placeholder(1) + `, ` + s.placeholder(2) + `, ` + s.placeholder(3) + `, ` + s.placeholder(4) + `)`

	res, err := s.execContext(ctx, query, daysAnalyzed, logCount, proposals, nowMillis())
	if err != nil {
		warnf("record_dream.insert", err)
		return -1
	}

	id, err := res.LastInsertId()
	if err != nil {
		warnf("record_dream.last_insert_id", err)
		return -1
	}
	return id
}

// GetRecentDreams returns the most recent dream records, newest first.
func (s *Store) GetRecentDreams(limit int) []DreamRecord {
	if limit <= 0 {
		limit = 5
	}

	ctx, cancel := bgCtx()
	defer cancel()

	query := `SELECT id, days_analyzed, log_count, proposals, created_at FROM mind_dreams
ORDER BY created_at DESC LIMIT ` + s.placeholder(1)

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		warnf("get_recent_dreams", err)
		return []DreamRecord{}
	}
	defer rows.Close()

	dreams := make([]DreamRecord, 0)
	for rows.Next() {
		var d DreamRecord
		if err := rows.Scan(&d.ID, &d.DaysAnalyzed, &d.LogCount, &d.Proposals, &d.CreatedAt); err != nil {
			warnf("scan_dream", err)
			continue
		}
		dreams = append(dreams, d)
	}
	if err := rows.Err(); err != nil {
		warnf("get_recent_dreams.rows", err)
	}
	return dreams
}

// GetRejectedTitles returns up to 100 rejected-learning titles, newest
// first, for the dream planner's "do not re-propose" appendix.
func (s *Store) GetRejectedTitles() []string {
	ctx, cancel := bgCtx()
	defer cancel()

	query := `SELECT title FROM mind_rejected_learnings ORDER BY rejected_at DESC LIMIT 100`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		warnf("get_rejected_titles", err)
		return []string{}
	}
	defer rows.Close()

	titles := make([]string, 0)
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			warnf("scan_rejected_title", err)
			continue
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		warnf("get_rejected_titles.rows", err)
	}
	return titles
}
