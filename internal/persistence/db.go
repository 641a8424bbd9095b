// Package persistence provides SQLite-based agent storage.
package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/lifesim/internal/agents"
	"github.com/talgya/lifesim/internal/engine"
)

// DB wraps a SQLite connection. Inside InTx, q is the open transaction.
type DB struct {
	conn *sqlx.DB
	q    sqlx.ExtContext
}

var _ engine.Store = (*DB)(nil)

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("database path is required")
	}
	// Writers take the lock at BEGIN so busy_timeout covers them.
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn, q: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS agents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		happiness INTEGER NOT NULL,
		satisfaction INTEGER NOT NULL,
		stress INTEGER NOT NULL,
		loyalty INTEGER NOT NULL,
		trust INTEGER NOT NULL,
		social_need INTEGER NOT NULL,
		financial_need INTEGER NOT NULL,
		recognition_need INTEGER NOT NULL,
		autonomy_need INTEGER NOT NULL,
		security_need INTEGER NOT NULL,
		adaptability INTEGER,
		expertise INTEGER,
		negotiation_skill INTEGER
	);

	CREATE TABLE IF NOT EXISTS personality_profiles (
		agent_id INTEGER PRIMARY KEY REFERENCES agents(id) ON DELETE CASCADE,
		openness INTEGER NOT NULL,
		conscientiousness INTEGER NOT NULL,
		extraversion INTEGER NOT NULL,
		agreeableness INTEGER NOT NULL,
		neuroticism INTEGER NOT NULL,
		impulsiveness INTEGER NOT NULL,
		risk_taking INTEGER NOT NULL,
		empathy INTEGER NOT NULL,
		leadership INTEGER NOT NULL,
		independence INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS memories (
		id TEXT PRIMARY KEY,
		agent_id INTEGER NOT NULL REFERENCES agents(id) ON DELETE CASCADE,
		memory_type TEXT NOT NULL,
		content TEXT NOT NULL,
		emotional_impact INTEGER NOT NULL,
		importance INTEGER NOT NULL,
		memory_date INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS relationships (
		agent1_id INTEGER NOT NULL REFERENCES agents(id) ON DELETE CASCADE,
		agent2_id INTEGER NOT NULL REFERENCES agents(id) ON DELETE CASCADE,
		positivity INTEGER NOT NULL,
		PRIMARY KEY (agent1_id, agent2_id),
		CHECK (agent1_id < agent2_id)
	);

	CREATE TABLE IF NOT EXISTS agent_history (
		id TEXT PRIMARY KEY,
		agent_id INTEGER NOT NULL REFERENCES agents(id) ON DELETE CASCADE,
		happiness INTEGER NOT NULL,
		satisfaction INTEGER NOT NULL,
		stress INTEGER NOT NULL,
		loyalty INTEGER NOT NULL,
		trust INTEGER NOT NULL,
		note TEXT NOT NULL,
		recorded_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_memories_agent_importance ON memories(agent_id, importance DESC, memory_date DESC);
	CREATE INDEX IF NOT EXISTS idx_history_agent ON agent_history(agent_id, recorded_at DESC);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// InTx runs fn inside a transaction. Nested calls join the outer transaction.
func (db *DB) InTx(ctx context.Context, fn func(engine.Store) error) error {
	if _, nested := db.q.(*sqlx.Tx); nested {
		return fn(db)
	}

	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&DB{conn: db.conn, q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func notFound(err error, format string, args ...any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), agents.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
