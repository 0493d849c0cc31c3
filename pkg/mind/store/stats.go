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

// Stats returns aggregate counts across all tables in one call. The log
// and action counts cover the last sinceDays; the learning, dream and
// rejection counts cover the whole table.
func (s *Store) Stats(sinceDays int) Stats {
	ctx, cancel := bgCtx()
	defer cancel()

	var st Stats

	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM mind_log WHERE created_at >= `+s.placeholder(1), sinceCutoff(sinceDays))
	if err := row.Scan(&st.LogCount); err != nil {
		warnf("stats.log_count", err)
	}

	row = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM mind_learnings WHERE approved = 1`)
	if err := row.Scan(&st.ApprovedLearnings); err != nil {
		warnf("stats.approved_learnings", err)
	}

	row = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM mind_learnings WHERE approved = 0`)
	if err := row.Scan(&st.PendingLearnings); err != nil {
		warnf("stats.pending_learnings", err)
	}

	row = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM mind_dreams`)
	if err := row.Scan(&st.DreamCount); err != nil {
		warnf("stats.dream_count", err)
	}

	row = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM mind_rejected_learnings`)
	if err := row.Scan(&st.RejectedLearnings); err != nil {
		warnf("stats.rejected_learnings", err)
	}

	row = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM mind_actions WHERE created_at >= `+s.placeholder(1), sinceCutoff(sinceDays))
	if err := row.Scan(&st.ActionCount); err != nil {
		warnf("stats.action_count", err)
	}

	return st
}
