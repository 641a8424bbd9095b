package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/talgya/lifesim/internal/agents"
	"github.com/talgya/lifesim/internal/cognition"
)

// Decide scores every option in dctx for the agent, picks one, and records a
// history snapshot of the agent's emotional state alongside the reasoning.
func (e *Engine) Decide(ctx context.Context, id agents.AgentID, dctx cognition.Context) (cognition.Decision, error) {
	if err := validateContext(dctx); err != nil {
		return cognition.Decision{}, err
	}

	agent, err := loadAgent(ctx, e.store, id)
	if err != nil {
		return cognition.Decision{}, err
	}
	profile, err := e.profile(ctx, id)
	if err != nil {
		return cognition.Decision{}, err
	}
	memories, err := e.store.TopMemoriesByImportance(ctx, id, agents.DecisionMemoryLimit)
	if err != nil {
		return cognition.Decision{}, storeErr(err, ErrAgentNotFound)
	}
	var rel *agents.Relationship
	if dctx.RelatedAgentID != nil {
		rel, err = e.store.GetRelationship(ctx, id, *dctx.RelatedAgentID)
		if errors.Is(err, agents.ErrNotFound) {
			rel, err = nil, nil
		}
		if err != nil {
			return cognition.Decision{}, storeErr(err, ErrAgentNotFound)
		}
	}

	decision, err := cognition.Decide(cognition.Inputs{
		Agent:        agent,
		Profile:      profile,
		Memories:     memories,
		Relationship: rel,
	}, dctx)
	if err != nil {
		return cognition.Decision{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	snap := agents.HistorySnapshot{
		ID:           uuid.NewString(),
		AgentID:      id,
		Happiness:    agent.Happiness,
		Satisfaction: agent.Satisfaction,
		Stress:       agent.Stress,
		Loyalty:      agent.Loyalty,
		Trust:        agent.Trust,
		Note:         cognition.DecisionNote(dctx.Type, decision),
		RecordedAt:   e.now().UTC(),
	}
	err = e.store.InTx(ctx, func(tx Store) error {
		return tx.AppendHistory(ctx, snap)
	})
	if err != nil {
		return cognition.Decision{}, storeErr(err, ErrAgentNotFound)
	}

	e.metrics.RecordDecision(dctx.Type, decision.Confidence)
	slog.Debug("agent decided",
		"agent_id", id,
		"type", dctx.Type,
		"option", decision.ChosenOption.ID,
		"confidence", decision.Confidence,
	)
	return decision, nil
}

func validateContext(dctx cognition.Context) error {
	if len(dctx.Options) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidInput, cognition.ErrNoOptions)
	}
	for i, opt := range dctx.Options {
		if opt.RiskLevel < 0 || opt.RiskLevel > 100 {
			return invalid("option %d risk_level %d outside [0, 100]", i, opt.RiskLevel)
		}
		if opt.PotentialReward < 0 || opt.PotentialReward > 100 {
			return invalid("option %d potential_reward %d outside [0, 100]", i, opt.PotentialReward)
		}
	}
	return nil
}

// ProcessOutcome applies the emotional consequences of a resolved decision
// and remembers it. A missing agent is an error, as it is for Decide.
func (e *Engine) ProcessOutcome(ctx context.Context, id agents.AgentID, outcome, decisionType, reasoning string) error {
	o, err := cognition.ParseOutcome(outcome)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	err = e.store.InTx(ctx, func(tx Store) error {
		agent, err := loadAgent(ctx, tx, id)
		if err != nil {
			return err
		}
		cognition.ApplyOutcome(&agent.Emotions, o)
		if err := tx.UpdateAgent(ctx, id, agent.Emotions, agent.Aptitudes); err != nil {
			return err
		}
		_, err = tx.AppendMemory(ctx, e.newMemory(cognition.OutcomeMemory(id, o, decisionType, reasoning)))
		return err
	})
	if err != nil {
		return storeErr(err, ErrAgentNotFound)
	}

	e.metrics.RecordOutcome(string(o))
	slog.Debug("outcome processed", "agent_id", id, "outcome", o, "type", decisionType)
	return nil
}
