package engine

import (
	"context"

	"github.com/talgya/lifesim/internal/agents"
)

// SetRelationship records how positively two agents regard each other.
// The pair is unordered and positivity is clamped to [0, 100].
func (e *Engine) SetRelationship(ctx context.Context, a, b agents.AgentID, positivity int) (agents.Relationship, error) {
	if a == b {
		return agents.Relationship{}, invalid("agent %d cannot relate to itself", a)
	}

	lo, hi := agents.RelationshipKey(a, b)
	rel := agents.Relationship{
		Agent1:     lo,
		Agent2:     hi,
		Positivity: agents.ClampInt(positivity, 0, 100),
	}

	err := e.store.InTx(ctx, func(tx Store) error {
		for _, id := range []agents.AgentID{lo, hi} {
			if _, err := loadAgent(ctx, tx, id); err != nil {
				return err
			}
		}
		return tx.UpsertRelationship(ctx, rel)
	})
	if err != nil {
		return agents.Relationship{}, storeErr(err, ErrAgentNotFound)
	}
	return rel, nil
}
