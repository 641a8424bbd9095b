package engine

import (
	"context"
	"errors"
	"log/slog"

	"github.com/talgya/lifesim/internal/actions"
	"github.com/talgya/lifesim/internal/agents"
)

// Bounds on a single time-passage step.
const (
	MinPassageMinutes = 1
	MaxPassageMinutes = 1440
)

// ListActionCatalog returns every action an agent could perform.
func (e *Engine) ListActionCatalog() []actions.Definition {
	return actions.Catalog()
}

// AvailableActions returns the catalog actions whose requirements state meets.
func (e *Engine) AvailableActions(state agents.SimulationState) []actions.Definition {
	return actions.Available(state)
}

// RecommendedActions ranks available actions by how much they relieve the
// most deficient needs.
func (e *Engine) RecommendedActions(state agents.SimulationState) []actions.Definition {
	return actions.Recommended(state)
}

// GetSimulationState derives the agent's current needs, skills and mood.
func (e *Engine) GetSimulationState(ctx context.Context, id agents.AgentID) (agents.SimulationState, error) {
	agent, err := loadAgent(ctx, e.store, id)
	if err != nil {
		return agents.SimulationState{}, err
	}
	return agents.DeriveState(agent), nil
}

// ExecuteAction performs actionID for the agent, persisting the resulting
// needs and skills and an event memory. It returns the re-derived state.
func (e *Engine) ExecuteAction(ctx context.Context, id agents.AgentID, actionID string) (agents.SimulationState, error) {
	def, ok := actions.Lookup(actionID)
	if !ok {
		e.metrics.RecordAction("unknown", "not_found")
		return agents.SimulationState{}, ErrActionNotFound
	}

	var agent *agents.Agent
	err := e.store.InTx(ctx, func(tx Store) error {
		var err error
		agent, err = loadAgent(ctx, tx, id)
		if err != nil {
			return err
		}

		state := agents.DeriveState(agent)
		if !def.Satisfied(state) {
			return ErrRequirementsNotMet
		}

		next, changed := actions.Apply(def, state)
		agents.WriteNeeds(&agent.Emotions, next.Needs)
		agents.WriteSkills(&agent.Aptitudes, next.Skills, changed)
		if err := tx.UpdateAgent(ctx, id, agent.Emotions, agent.Aptitudes); err != nil {
			return err
		}

		content, impact, importance := actions.CompletionMemory(def)
		_, err = tx.AppendMemory(ctx, e.newMemory(agents.Memory{
			AgentID:         id,
			Type:            agents.MemoryEvent,
			Content:         content,
			EmotionalImpact: impact,
			Importance:      importance,
		}))
		return err
	})
	if err != nil {
		err = storeErr(err, ErrAgentNotFound)
		e.metrics.RecordAction(def.ID, actionResult(err))
		return agents.SimulationState{}, err
	}

	e.metrics.RecordAction(def.ID, "ok")
	slog.Debug("action executed", "agent_id", id, "action", def.ID)
	return agents.DeriveState(agent), nil
}

func actionResult(err error) string {
	switch {
	case errors.Is(err, ErrRequirementsNotMet):
		return "requirements_not_met"
	case errors.Is(err, ErrAgentNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// SimulateTimePassage decays the agent's needs by minutes of elapsed time and
// persists the result.
func (e *Engine) SimulateTimePassage(ctx context.Context, id agents.AgentID, minutes int) (agents.SimulationState, error) {
	if minutes < MinPassageMinutes || minutes > MaxPassageMinutes {
		return agents.SimulationState{}, invalid("minutes %d outside [%d, %d]", minutes, MinPassageMinutes, MaxPassageMinutes)
	}

	var agent *agents.Agent
	err := e.store.InTx(ctx, func(tx Store) error {
		var err error
		agent, err = loadAgent(ctx, tx, id)
		if err != nil {
			return err
		}
		decayed := agents.ApplyDecay(agents.DeriveState(agent), float64(minutes))
		agents.WriteNeeds(&agent.Emotions, decayed.Needs)
		return tx.UpdateAgent(ctx, id, agent.Emotions, agent.Aptitudes)
	})
	if err != nil {
		return agents.SimulationState{}, storeErr(err, ErrAgentNotFound)
	}

	e.metrics.RecordDecay()
	return agents.DeriveState(agent), nil
}

// GenerateAutonomousAction picks what the agent would do on its own: usually
// the top recommendation, otherwise a random one. ok is false when nothing is
// recommended.
func (e *Engine) GenerateAutonomousAction(ctx context.Context, id agents.AgentID) (def actions.Definition, ok bool, err error) {
	agent, err := loadAgent(ctx, e.store, id)
	if err != nil {
		return actions.Definition{}, false, err
	}
	def, ok = actions.PickAutonomous(actions.Recommended(agents.DeriveState(agent)), e.rng)
	return def, ok, nil
}
