package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/talgya/lifesim/internal/agents"
)

// memStore is an in-memory Store. InTx snapshots state and restores it when
// the callback fails.
type memStore struct {
	mu sync.Mutex

	nextID        agents.AgentID
	agents        map[agents.AgentID]agents.Agent
	profiles      map[agents.AgentID]agents.PersonalityProfile
	memories      []agents.Memory
	relationships map[[2]agents.AgentID]agents.Relationship
	history       []agents.HistorySnapshot

	// failWith, when set, is returned by every call.
	failWith error
	// failUpdate, when set, is returned by UpdateAgent only.
	failUpdate  error
	profileGets int
}

func newMemStore() *memStore {
	return &memStore{
		agents:        map[agents.AgentID]agents.Agent{},
		profiles:      map[agents.AgentID]agents.PersonalityProfile{},
		relationships: map[[2]agents.AgentID]agents.Relationship{},
	}
}

func (s *memStore) put(a agents.Agent) agents.AgentID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == 0 {
		s.nextID++
		a.ID = s.nextID
	} else if a.ID > s.nextID {
		s.nextID = a.ID
	}
	s.agents[a.ID] = a
	return a.ID
}

func (s *memStore) agent(id agents.AgentID) agents.Agent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.agents[id]
}

func (s *memStore) memoriesFor(id agents.AgentID) []agents.Memory {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []agents.Memory
	for _, m := range s.memories {
		if m.AgentID == id {
			out = append(out, m)
		}
	}
	return out
}

func notFound(kind string, id any) error {
	return fmt.Errorf("%s %v: %w", kind, id, agents.ErrNotFound)
}

func (s *memStore) GetAgent(_ context.Context, id agents.AgentID) (*agents.Agent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	a, ok := s.agents[id]
	if !ok {
		return nil, notFound("agent", id)
	}
	return &a, nil
}

func (s *memStore) GetPersonalityProfile(_ context.Context, id agents.AgentID) (*agents.PersonalityProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	s.profileGets++
	p, ok := s.profiles[id]
	if !ok {
		return nil, notFound("profile", id)
	}
	return &p, nil
}

func (s *memStore) TopMemoriesByImportance(_ context.Context, id agents.AgentID, limit int) ([]agents.Memory, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return agents.ImportantMemories(s.memoriesFor(id), limit), nil
}

func (s *memStore) GetRelationship(_ context.Context, a, b agents.AgentID) (*agents.Relationship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	lo, hi := agents.RelationshipKey(a, b)
	r, ok := s.relationships[[2]agents.AgentID{lo, hi}]
	if !ok {
		return nil, notFound("relationship", [2]agents.AgentID{lo, hi})
	}
	return &r, nil
}

func (s *memStore) History(_ context.Context, id agents.AgentID, limit int) ([]agents.HistorySnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	var out []agents.HistorySnapshot
	for i := len(s.history) - 1; i >= 0 && len(out) < limit; i-- {
		if s.history[i].AgentID == id {
			out = append(out, s.history[i])
		}
	}
	return out, nil
}

func (s *memStore) ListAgentIDs(context.Context) ([]agents.AgentID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	ids := make([]agents.AgentID, 0, len(s.agents))
	for id := range s.agents {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *memStore) UpdateAgent(_ context.Context, id agents.AgentID, e agents.Emotions, ap agents.Aptitudes) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	if s.failUpdate != nil {
		return s.failUpdate
	}
	a, ok := s.agents[id]
	if !ok {
		return notFound("agent", id)
	}
	a.Emotions = e
	a.Aptitudes = ap
	s.agents[id] = a
	return nil
}

func (s *memStore) AppendMemory(_ context.Context, m agents.Memory) (agents.Memory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return agents.Memory{}, s.failWith
	}
	s.memories = append(s.memories, m)
	return m, nil
}

func (s *memStore) AppendHistory(_ context.Context, h agents.HistorySnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	s.history = append(s.history, h)
	return nil
}

func (s *memStore) CreateAgent(_ context.Context, a *agents.Agent) (agents.AgentID, error) {
	if s.failWith != nil {
		return 0, s.failWith
	}
	return s.put(*a), nil
}

func (s *memStore) CreateProfile(_ context.Context, p agents.PersonalityProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	s.profiles[p.AgentID] = p
	return nil
}

func (s *memStore) UpsertRelationship(_ context.Context, r agents.Relationship) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	s.relationships[[2]agents.AgentID{r.Agent1, r.Agent2}] = r
	return nil
}

func (s *memStore) InTx(_ context.Context, fn func(Store) error) error {
	s.mu.Lock()
	savedAgents := make(map[agents.AgentID]agents.Agent, len(s.agents))
	for k, v := range s.agents {
		savedAgents[k] = v
	}
	savedMemories := append([]agents.Memory(nil), s.memories...)
	savedHistory := append([]agents.HistorySnapshot(nil), s.history...)
	savedNext := s.nextID
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.agents = savedAgents
		s.memories = savedMemories
		s.history = savedHistory
		s.nextID = savedNext
		s.mu.Unlock()
		return err
	}
	return nil
}
