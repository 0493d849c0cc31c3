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

import "database/sql"

// AddLearning inserts a new tactical learning. Initial relevance is
// 1.0, activation count 0, last_activated equal to the creation time.
func (s *Store) AddLearning(title, content, rationale string, approved bool) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := bgCtx()
	defer cancel()

	now := nowMillis()
	approvedInt := 0
	if approved {
		approvedInt = 1
	}

	query := `INSERT INTO mind_learnings
(title, content, rationale, relevance_score, activation_count, last_activated, approved, created_at)
VALUES (` + s.placeholder(1) + `, ` + s.placeholder(2) + `, ` + s.placeholder(3) + `, ` + s.placeholder(4) + `, ` +
		s.placeholder(5) + `, ` + s.placeholder(6) + `, ` + s.placeholder(7) + `, ` + s.placeholder(8) + `)`

	res, err := s.execContext(ctx, query, title, content, rationale, 1.0, int64(0), now, approvedInt, now)
	if err != nil {
		warnf("add_learning.insert", err)
		return -1
	}

	id, err := res.LastInsertId()
	if err != nil {
		warnf("add_learning.last_insert_id", err)
		return -1
	}
	return id
}

// ApproveLearning marks a pending learning approved. No-op (not an
// error) if the id does not exist.
func (s *Store) ApproveLearning(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := bgCtx()
	defer cancel()

	query := `UPDATE mind_learnings SET approved = 1 WHERE id = ` + s.placeholder(1)
	if _, err := s.execContext(ctx, query, id); err != nil {
		warnf("approve_learning", err)
	}
}

// RejectLearning tombstones a learning (copying title+content into
// mind_rejected_learnings before deletion) and deletes the learning
// row. No-op on unknown id; produces exactly one new tombstone when
// the learning exists.
func (s *Store) RejectLearning(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := bgCtx()
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		warnf("reject_learning.begin", err)
		return
	}
	defer tx.Rollback()

	var title, content string
	selectQuery := `SELECT title, content FROM mind_learnings WHERE id = ` + s.placeholder(1)
	err = tx.QueryRowContext(ctx, selectQuery, id).Scan(&title, &content)
	if err == sql.ErrNoRows {
		return
	}
	if err != nil {
		warnf("reject_learning.select", err)
		return
	}

	insertQuery := `INSERT INTO mind_rejected_learnings (title, content, rejected_at) VALUES (` +
		s.placeholder(1) + `, ` + s.placeholder(2) + `, ` + s.placeholder(3) + `)`
	if _, err := tx.ExecContext(ctx, insertQuery, title, content, nowMillis()); err != nil {
		warnf("reject_learning.tombstone", err)
		return
	}

	deleteQuery := `DELETE FROM mind_learnings WHERE id = ` + s.placeholder(1)
	if _, err := tx.ExecContext(ctx, deleteQuery, id); err != nil {
		warnf("reject_learning.delete", err)
		return
	}

	if err := tx.Commit(); err != nil {
		warnf("reject_learning.commit", err)
	}
}

// GetApprovedLearnings returns approved learnings ordered by relevance
// descending.
func (s *Store) GetApprovedLearnings() []Learning {
	return s.queryLearnings(`WHERE approved = 1 ORDER BY relevance_score DESC`)
}

// GetPendingLearnings returns pending (not yet approved) learnings
// ordered by creation time descending.
func (s *Store) GetPendingLearnings() []Learning {
	return s.queryLearnings(`WHERE approved = 0 ORDER BY created_at DESC`)
}

func (s *Store) queryLearnings(whereOrderBy string) []Learning {
	ctx, cancel := bgCtx()
	defer cancel()

	query := `SELECT id, title, content, rationale, relevance_score, activation_count, last_activated, approved, created_at
FROM mind_learnings ` + whereOrderBy

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		warnf("query_learnings", err)
		return []Learning{}
	}
	defer rows.Close()

	learnings := make([]Learning, 0)
	for rows.Next() {
		var l Learning
		var approvedInt int
		if err := rows.Scan(&l.ID, &l.Title, &l.Content, &l.Rationale, &l.RelevanceScore,
			&l.ActivationCount, &l.LastActivated, &approvedInt, &l.CreatedAt); err != nil {
			warnf("scan_learning", err)
			continue
		}
		l.Approved = approvedInt != 0
		learnings = append(learnings, l)
	}
	if err := rows.Err(); err != nil {
		warnf("query_learnings.rows", err)
	}
	return learnings
}

// ActivateLearning atomically boosts a learning's relevance by
// ReactivationBoost (capped at 1.0), increments its activation count,
// and sets last_activated to now.
func (s *Store) ActivateLearning(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := bgCtx()
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		warnf("activate_learning.begin", err)
		return
	}
	defer tx.Rollback()

	var relevance float64
	selectQuery := `SELECT relevance_score FROM mind_learnings WHERE id = ` + s.placeholder(1)
	if err := tx.QueryRowContext(ctx, selectQuery, id).Scan(&relevance); err != nil {
		if err != sql.ErrNoRows {
			warnf("activate_learning.select", err)
		}
		return
	}

	newRelevance := clampRelevance(relevance + ReactivationBoost)

	updateQuery := `UPDATE mind_learnings SET relevance_score = ` + s.placeholder(1) +
		`, activation_count = activation_count + 1, last_activated = ` + s.placeholder(2) +
		` WHERE id = ` + s.placeholder(3)
	if _, err := tx.ExecContext(ctx, updateQuery, newRelevance, nowMillis(), id); err != nil {
		warnf("activate_learning.update", err)
		return
	}

	if err := tx.Commit(); err != nil {
		warnf("activate_learning.commit", err)
	}
}

// ApplyDecay multiplies every approved learning's relevance by
// DecayFactor, prunes approved learnings that fall below MinRelevance,
// and returns the number pruned. Runs as a single transaction.
func (s *Store) ApplyDecay() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := bgCtx()
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		warnf("apply_decay.begin", err)
		return 0
	}
	defer tx.Rollback()

	decayQuery := `UPDATE mind_learnings SET relevance_score = relevance_score * ` + s.placeholder(1) + ` WHERE approved = 1`
	if _, err := tx.ExecContext(ctx, decayQuery, DecayFactor); err != nil {
		warnf("apply_decay.update", err)
		return 0
	}

	pruneQuery := `DELETE FROM mind_learnings WHERE approved = 1 AND relevance_score < ` + s.placeholder(1)
	res, err := tx.ExecContext(ctx, pruneQuery, MinRelevance)
	if err != nil {
		warnf("apply_decay.prune", err)
		return 0
	}

	pruned, err := res.RowsAffected()
	if err != nil {
		warnf("apply_decay.rows_affected", err)
		pruned = 0
	}

	if err := tx.Commit(); err != nil {
		warnf("apply_decay.commit", err)
		return 0
	}

	return int(pruned)
}

func clampRelevance(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	if v < 0.0 {
		return 0.0
	}
	return v
}
