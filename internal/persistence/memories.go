package persistence

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/talgya/lifesim/internal/agents"
)

type memoryRow struct {
	ID              string            `db:"id"`
	AgentID         agents.AgentID    `db:"agent_id"`
	Type            agents.MemoryType `db:"memory_type"`
	Content         string            `db:"content"`
	EmotionalImpact int               `db:"emotional_impact"`
	Importance      int               `db:"importance"`
	Date            int64             `db:"memory_date"`
}

type historyRow struct {
	ID           string         `db:"id"`
	AgentID      agents.AgentID `db:"agent_id"`
	Happiness    int            `db:"happiness"`
	Satisfaction int            `db:"satisfaction"`
	Stress       int            `db:"stress"`
	Loyalty      int            `db:"loyalty"`
	Trust        int            `db:"trust"`
	Note         string         `db:"note"`
	RecordedAt   int64          `db:"recorded_at"`
}

// AppendMemory stores m. Memories are never updated once written.
func (db *DB) AppendMemory(ctx context.Context, m agents.Memory) (agents.Memory, error) {
	_, err := db.q.ExecContext(ctx, `INSERT INTO memories
		(id, agent_id, memory_type, content, emotional_impact, importance, memory_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.AgentID, m.Type, m.Content, m.EmotionalImpact, m.Importance, toMillis(m.Date),
	)
	if err != nil {
		return agents.Memory{}, fmt.Errorf("insert memory for agent %d: %w", m.AgentID, err)
	}
	return m, nil
}

// TopMemoriesByImportance returns up to limit memories, most important first
// and most recent first among equals.
func (db *DB) TopMemoriesByImportance(ctx context.Context, id agents.AgentID, limit int) ([]agents.Memory, error) {
	var rows []memoryRow
	err := sqlx.SelectContext(ctx, db.q, &rows, `SELECT id, agent_id, memory_type, content,
		emotional_impact, importance, memory_date
		FROM memories WHERE agent_id = ?
		ORDER BY importance DESC, memory_date DESC, rowid ASC
		LIMIT ?`, id, limit)
	if err != nil {
		return nil, fmt.Errorf("select memories for agent %d: %w", id, err)
	}

	out := make([]agents.Memory, len(rows))
	for i, r := range rows {
		out[i] = agents.Memory{
			ID:              r.ID,
			AgentID:         r.AgentID,
			Type:            r.Type,
			Content:         r.Content,
			EmotionalImpact: r.EmotionalImpact,
			Importance:      r.Importance,
			Date:            fromMillis(r.Date),
		}
	}
	return out, nil
}

// AppendHistory stores an audit snapshot.
func (db *DB) AppendHistory(ctx context.Context, s agents.HistorySnapshot) error {
	_, err := db.q.ExecContext(ctx, `INSERT INTO agent_history
		(id, agent_id, happiness, satisfaction, stress, loyalty, trust, note, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.AgentID, s.Happiness, s.Satisfaction, s.Stress, s.Loyalty, s.Trust, s.Note, toMillis(s.RecordedAt),
	)
	if err != nil {
		return fmt.Errorf("insert history for agent %d: %w", s.AgentID, err)
	}
	return nil
}

// History returns up to limit snapshots, most recent first.
func (db *DB) History(ctx context.Context, id agents.AgentID, limit int) ([]agents.HistorySnapshot, error) {
	var rows []historyRow
	err := sqlx.SelectContext(ctx, db.q, &rows, `SELECT id, agent_id, happiness, satisfaction,
		stress, loyalty, trust, note, recorded_at
		FROM agent_history WHERE agent_id = ?
		ORDER BY recorded_at DESC, rowid DESC
		LIMIT ?`, id, limit)
	if err != nil {
		return nil, fmt.Errorf("select history for agent %d: %w", id, err)
	}

	out := make([]agents.HistorySnapshot, len(rows))
	for i, r := range rows {
		out[i] = agents.HistorySnapshot{
			ID:           r.ID,
			AgentID:      r.AgentID,
			Happiness:    r.Happiness,
			Satisfaction: r.Satisfaction,
			Stress:       r.Stress,
			Loyalty:      r.Loyalty,
			Trust:        r.Trust,
			Note:         r.Note,
			RecordedAt:   fromMillis(r.RecordedAt),
		}
	}
	return out, nil
}
