package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/talgya/lifesim/internal/agents"
)

// CreateAgent stores a new agent with starting emotional attributes and a
// freshly drawn personality. An empty name gets a random one; an empty kind
// gets a random agent type.
func (e *Engine) CreateAgent(ctx context.Context, name, kind string) (*agents.Agent, agents.PersonalityProfile, error) {
	var agentType agents.AgentType
	if kind == "" {
		agentType = e.spawner.RandomType()
	} else {
		t, err := agents.ParseAgentType(kind)
		if err != nil {
			return nil, agents.PersonalityProfile{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		agentType = t
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = e.spawner.RandomName()
	}

	agent := e.spawner.NewAgent(name, agentType)
	agent.CreatedAt = e.now().UTC()

	var profile agents.PersonalityProfile
	err := e.store.InTx(ctx, func(tx Store) error {
		id, err := tx.CreateAgent(ctx, agent)
		if err != nil {
			return err
		}
		agent.ID = id
		profile = e.spawner.NewProfile(id)
		return tx.CreateProfile(ctx, profile)
	})
	if err != nil {
		return nil, agents.PersonalityProfile{}, storeErr(err, ErrAgentNotFound)
	}

	e.cacheProfile(profile)
	slog.Debug("agent created", "agent_id", agent.ID, "name", agent.Name, "type", agent.Type)
	return agent, profile, nil
}

// Populate creates count agents with random names and types.
func (e *Engine) Populate(ctx context.Context, count int) ([]*agents.Agent, error) {
	created := make([]*agents.Agent, 0, count)
	for i := 0; i < count; i++ {
		a, _, err := e.CreateAgent(ctx, "", "")
		if err != nil {
			return created, err
		}
		created = append(created, a)
	}
	return created, nil
}
