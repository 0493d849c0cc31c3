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
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	// Database drivers. Sqlite is the default per-agent backend (one file
	// per agent, per spec); mysql/postgres are carried over from the
	// teacher's multi-dialect session store so the same Store can back
	// onto a shared database when an operator wants one, following
	// pkg/memory/session_service_sql.go's SQLSessionService exactly.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Dialect identifies the SQL backend in use.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
)

// Store is the Mind Engine's persistent per-agent repository. It owns
// its database handle and all mutations; the Manager owns the registry
// of Stores, one per agent.
type Store struct {
	db      *sql.DB
	dialect Dialect
	agentID string
	mu      sync.Mutex
}

// OpenSQLite opens (and creates, if necessary) a single-file SQLite
// store at path for the given agent. This is the default persistence
// layout described in spec section 6: <data_dir>/mind/<agent_id>.db.
func OpenSQLite(path string, agentID string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=10000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}

	// SQLite only supports one writer at a time; serializing through a
	// single connection avoids "database is locked" errors, matching
	// pkg/config/dbpool.go's DBPool.createPool.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	return New(db, DialectSQLite, agentID)
}

// New wraps an existing *sql.DB as a Store, creating the schema if
// needed. dialect selects the placeholder syntax and auto-increment
// clause used when creating tables and writing queries.
func New(db *sql.DB, dialect Dialect, agentID string) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("mind store: database connection is required")
	}
	if agentID == "" {
		agentID = "main"
	}

	switch dialect {
	case DialectSQLite, DialectPostgres, DialectMySQL:
	default:
		return nil, fmt.Errorf("mind store: unsupported dialect %q", dialect)
	}

	s := &Store{db: db, dialect: dialect, agentID: agentID}

	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("mind store: init schema: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection. Idempotent: closing
// an already-closed Store returns nil.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	if err != nil && err != sql.ErrConnDone {
		return err
	}
	return nil
}

// AgentID returns the normalized agent identifier this Store was
// opened for.
func (s *Store) AgentID() string {
	return s.agentID
}

// placeholder returns the positional placeholder for argument index n
// (1-based) in the store's dialect.
func (s *Store) placeholder(n int) string {
	if s.dialect == DialectPostgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

func sinceCutoff(days int) int64 {
	if days <= 0 {
		days = DefaultSinceDays
	}
	return nowMillis() - int64(days)*86_400_000
}

// warnf logs a storage fault. Every write path is wrapped so that a
// disk or driver failure never escapes into the agent's reasoning
// loop; this is the only place such errors surface.
func warnf(op string, err error) {
	if err == nil {
		return
	}
	slog.Warn("mind store operation failed", "op", op, "error", err)
}

func (s *Store) execContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, query, args...)
}

const ctxTimeout = 5 * time.Second

func bgCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), ctxTimeout)
}
