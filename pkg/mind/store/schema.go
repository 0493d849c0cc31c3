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

import "context"

// idColumn returns the dialect-specific auto-increment primary key
// column definition, mirroring the three-way switch in
// pkg/memory/session_service_sql.go's initSchema.
func (s *Store) idColumn() string {
	switch s.dialect {
	case DialectPostgres:
		return "SERIAL PRIMARY KEY"
	case DialectMySQL:
		return "BIGINT PRIMARY KEY AUTO_INCREMENT"
	default:
		return "INTEGER PRIMARY KEY AUTOINCREMENT"
	}
}

// initSchema creates the five Mind Engine tables and their indices if
// they do not already exist. Schema creation is idempotent by design
// (CREATE TABLE IF NOT EXISTS / CREATE INDEX IF NOT EXISTS), per
// spec section 6: no migrations, only additive, read-compatible
// schema evolution.
func (s *Store) initSchema() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30_000_000_000)
	defer cancel()

	id := s.idColumn()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS mind_log (
	id ` + id + `,
	category VARCHAR(32) NOT NULL,
	payload TEXT NOT NULL,
	session_key VARCHAR(255),
	created_at BIGINT NOT NULL
);`,
		`CREATE INDEX IF NOT EXISTS idx_mind_log_category_created ON mind_log(category, created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_mind_log_created ON mind_log(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_mind_log_session ON mind_log(session_key);`,

		`CREATE TABLE IF NOT EXISTS mind_actions (
	id ` + id + `,
	tool_name VARCHAR(255) NOT NULL,
	summary VARCHAR(200) NOT NULL,
	args_snapshot TEXT,
	session_key VARCHAR(255),
	created_at BIGINT NOT NULL
);`,
		`CREATE INDEX IF NOT EXISTS idx_mind_actions_session ON mind_actions(session_key);`,
		`CREATE INDEX IF NOT EXISTS idx_mind_actions_created ON mind_actions(created_at);`,

		`CREATE TABLE IF NOT EXISTS mind_learnings (
	id ` + id + `,
	title VARCHAR(255) NOT NULL,
	content TEXT NOT NULL,
	rationale TEXT,
	relevance_score DOUBLE PRECISION NOT NULL,
	activation_count BIGINT NOT NULL,
	last_activated BIGINT NOT NULL,
	approved SMALLINT NOT NULL,
	created_at BIGINT NOT NULL
);`,
		`CREATE INDEX IF NOT EXISTS idx_mind_learnings_approved ON mind_learnings(approved);`,

		`CREATE TABLE IF NOT EXISTS mind_dreams (
	id ` + id + `,
	days_analyzed INT NOT NULL,
	log_count INT NOT NULL,
	proposals TEXT,
	created_at BIGINT NOT NULL
);`,

		`CREATE TABLE IF NOT EXISTS mind_rejected_learnings (
	id ` + id + `,
	title VARCHAR(255) NOT NULL,
	content TEXT,
	rejected_at BIGINT NOT NULL
);`,
	}

	// DOUBLE PRECISION is not a MySQL synonym issue (MySQL accepts it),
	// but SQLite ignores type affinity entirely so this is safe across
	// all three dialects without a further per-dialect branch.
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}
