package engine

import (
	"context"

	"github.com/talgya/lifesim/internal/agents"
)

// Store is the persistence collaborator the engine reads and writes through.
// Lookups of missing rows return an error wrapping agents.ErrNotFound.
type Store interface {
	GetAgent(ctx context.Context, id agents.AgentID) (*agents.Agent, error)
	GetPersonalityProfile(ctx context.Context, id agents.AgentID) (*agents.PersonalityProfile, error)
	TopMemoriesByImportance(ctx context.Context, id agents.AgentID, limit int) ([]agents.Memory, error)
	GetRelationship(ctx context.Context, a, b agents.AgentID) (*agents.Relationship, error)
	History(ctx context.Context, id agents.AgentID, limit int) ([]agents.HistorySnapshot, error)
	ListAgentIDs(ctx context.Context) ([]agents.AgentID, error)

	// UpdateAgent overwrites the agent's emotional attributes and aptitudes.
	UpdateAgent(ctx context.Context, id agents.AgentID, e agents.Emotions, ap agents.Aptitudes) error
	AppendMemory(ctx context.Context, m agents.Memory) (agents.Memory, error)
	AppendHistory(ctx context.Context, s agents.HistorySnapshot) error
	CreateAgent(ctx context.Context, a *agents.Agent) (agents.AgentID, error)
	CreateProfile(ctx context.Context, p agents.PersonalityProfile) error
	UpsertRelationship(ctx context.Context, r agents.Relationship) error

	// InTx runs fn against a Store bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(Store) error) error
}
