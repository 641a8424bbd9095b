package persistence

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/talgya/lifesim/internal/agents"
)

type agentRow struct {
	ID        agents.AgentID   `db:"id"`
	Name      string           `db:"name"`
	Type      agents.AgentType `db:"type"`
	CreatedAt int64            `db:"created_at"`

	agents.Emotions
	agents.Aptitudes
}

func (r agentRow) agent() *agents.Agent {
	return &agents.Agent{
		ID:        r.ID,
		Name:      r.Name,
		Type:      r.Type,
		CreatedAt: fromMillis(r.CreatedAt),
		Emotions:  r.Emotions,
		Aptitudes: r.Aptitudes,
	}
}

const agentColumns = `id, name, type, created_at,
	happiness, satisfaction, stress, loyalty, trust,
	social_need, financial_need, recognition_need, autonomy_need, security_need,
	adaptability, expertise, negotiation_skill`

// GetAgent loads one agent.
func (db *DB) GetAgent(ctx context.Context, id agents.AgentID) (*agents.Agent, error) {
	var row agentRow
	err := sqlx.GetContext(ctx, db.q, &row, "SELECT "+agentColumns+" FROM agents WHERE id = ?", id)
	if err != nil {
		return nil, notFound(err, "get agent %d", id)
	}
	return row.agent(), nil
}

// ListAgentIDs returns every agent id in ascending order.
func (db *DB) ListAgentIDs(ctx context.Context) ([]agents.AgentID, error) {
	var ids []agents.AgentID
	if err := sqlx.SelectContext(ctx, db.q, &ids, "SELECT id FROM agents ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	return ids, nil
}

// CreateAgent inserts a and returns its assigned id.
func (db *DB) CreateAgent(ctx context.Context, a *agents.Agent) (agents.AgentID, error) {
	res, err := db.q.ExecContext(ctx, `INSERT INTO agents
		(name, type, created_at,
		 happiness, satisfaction, stress, loyalty, trust,
		 social_need, financial_need, recognition_need, autonomy_need, security_need,
		 adaptability, expertise, negotiation_skill)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Name, a.Type, toMillis(a.CreatedAt),
		a.Happiness, a.Satisfaction, a.Stress, a.Loyalty, a.Trust,
		a.SocialNeed, a.FinancialNeed, a.RecognitionNeed, a.AutonomyNeed, a.SecurityNeed,
		a.Adaptability, a.Expertise, a.NegotiationSkill,
	)
	if err != nil {
		return 0, fmt.Errorf("insert agent %q: %w", a.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert agent %q: %w", a.Name, err)
	}
	return agents.AgentID(id), nil
}

// UpdateAgent overwrites the agent's emotional attributes and aptitudes.
func (db *DB) UpdateAgent(ctx context.Context, id agents.AgentID, e agents.Emotions, ap agents.Aptitudes) error {
	res, err := db.q.ExecContext(ctx, `UPDATE agents SET
		happiness = ?, satisfaction = ?, stress = ?, loyalty = ?, trust = ?,
		social_need = ?, financial_need = ?, recognition_need = ?, autonomy_need = ?, security_need = ?,
		adaptability = ?, expertise = ?, negotiation_skill = ?
		WHERE id = ?`,
		e.Happiness, e.Satisfaction, e.Stress, e.Loyalty, e.Trust,
		e.SocialNeed, e.FinancialNeed, e.RecognitionNeed, e.AutonomyNeed, e.SecurityNeed,
		ap.Adaptability, ap.Expertise, ap.NegotiationSkill,
		id,
	)
	if err != nil {
		return fmt.Errorf("update agent %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update agent %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("update agent %d: %w", id, agents.ErrNotFound)
	}
	return nil
}

// GetPersonalityProfile loads the agent's personality.
func (db *DB) GetPersonalityProfile(ctx context.Context, id agents.AgentID) (*agents.PersonalityProfile, error) {
	var p agents.PersonalityProfile
	err := sqlx.GetContext(ctx, db.q, &p, `SELECT agent_id, openness, conscientiousness, extraversion,
		agreeableness, neuroticism, impulsiveness, risk_taking, empathy, leadership, independence
		FROM personality_profiles WHERE agent_id = ?`, id)
	if err != nil {
		return nil, notFound(err, "get profile %d", id)
	}
	return &p, nil
}

// CreateProfile stores a personality profile.
func (db *DB) CreateProfile(ctx context.Context, p agents.PersonalityProfile) error {
	_, err := sqlx.NamedExecContext(ctx, db.q, `INSERT INTO personality_profiles
		(agent_id, openness, conscientiousness, extraversion, agreeableness, neuroticism,
		 impulsiveness, risk_taking, empathy, leadership, independence)
		VALUES (:agent_id, :openness, :conscientiousness, :extraversion, :agreeableness, :neuroticism,
		 :impulsiveness, :risk_taking, :empathy, :leadership, :independence)`, p)
	if err != nil {
		return fmt.Errorf("insert profile %d: %w", p.AgentID, err)
	}
	return nil
}

// GetRelationship loads the relationship between a and b in either order.
func (db *DB) GetRelationship(ctx context.Context, a, b agents.AgentID) (*agents.Relationship, error) {
	lo, hi := agents.RelationshipKey(a, b)
	var r agents.Relationship
	err := sqlx.GetContext(ctx, db.q, &r,
		"SELECT agent1_id, agent2_id, positivity FROM relationships WHERE agent1_id = ? AND agent2_id = ?",
		lo, hi,
	)
	if err != nil {
		return nil, notFound(err, "get relationship %d-%d", lo, hi)
	}
	return &r, nil
}

// UpsertRelationship inserts or replaces a relationship.
func (db *DB) UpsertRelationship(ctx context.Context, r agents.Relationship) error {
	lo, hi := agents.RelationshipKey(r.Agent1, r.Agent2)
	_, err := db.q.ExecContext(ctx, `INSERT INTO relationships (agent1_id, agent2_id, positivity)
		VALUES (?, ?, ?)
		ON CONFLICT(agent1_id, agent2_id) DO UPDATE SET positivity = excluded.positivity`,
		lo, hi, r.Positivity,
	)
	if err != nil {
		return fmt.Errorf("upsert relationship %d-%d: %w", lo, hi, err)
	}
	return nil
}
