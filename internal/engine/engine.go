// Package engine is the agent cognition core: it loads agents through a
// Store, runs the needs, action and decision rules over them, and writes the
// results back. Operations do not lock; callers serialize mutating calls per
// agent with AgentLocks.
package engine

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"

	"github.com/talgya/lifesim/internal/agents"
	"github.com/talgya/lifesim/internal/entropy"
	"github.com/talgya/lifesim/internal/telemetry"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// Options tune an Engine. The zero value is usable.
type Options struct {
	Metrics         *telemetry.Metrics
	ProfileCacheTTL time.Duration // 0 disables profile caching
	Now             func() time.Time
}

// Engine exposes the cognition and life-simulation operations.
type Engine struct {
	store   Store
	rng     entropy.Source
	spawner *agents.Spawner
	metrics *telemetry.Metrics
	now     func() time.Time

	// Profiles never change after creation, so they are safe to cache.
	profiles *cache.Cache
}

// New creates an engine over store, drawing randomness from rng.
func New(store Store, rng entropy.Source, opts Options) *Engine {
	e := &Engine{
		store:   store,
		rng:     rng,
		spawner: agents.NewSpawner(rng),
		metrics: opts.Metrics,
		now:     opts.Now,
	}
	if e.now == nil {
		e.now = time.Now
	}
	if opts.ProfileCacheTTL > 0 {
		e.profiles = cache.New(opts.ProfileCacheTTL, 2*opts.ProfileCacheTTL)
	}
	return e
}

// AgentIDs lists every stored agent.
func (e *Engine) AgentIDs(ctx context.Context) ([]agents.AgentID, error) {
	ids, err := e.store.ListAgentIDs(ctx)
	if err != nil {
		return nil, storeErr(err, ErrAgentNotFound)
	}
	return ids, nil
}

// GetAgent returns the stored agent.
func (e *Engine) GetAgent(ctx context.Context, id agents.AgentID) (*agents.Agent, error) {
	return loadAgent(ctx, e.store, id)
}

func loadAgent(ctx context.Context, s Store, id agents.AgentID) (*agents.Agent, error) {
	a, err := s.GetAgent(ctx, id)
	if err != nil {
		return nil, storeErr(err, ErrAgentNotFound)
	}
	return a, nil
}

// profile returns the agent's personality, or nil when none is stored.
func (e *Engine) profile(ctx context.Context, id agents.AgentID) (*agents.PersonalityProfile, error) {
	key := strconv.FormatUint(uint64(id), 10)
	if e.profiles != nil {
		if p, ok := e.profiles.Get(key); ok {
			cp := p.(agents.PersonalityProfile)
			return &cp, nil
		}
	}

	p, err := e.store.GetPersonalityProfile(ctx, id)
	if errors.Is(err, agents.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err, ErrAgentNotFound)
	}
	if e.profiles != nil {
		e.profiles.Set(key, *p, cache.DefaultExpiration)
	}
	return p, nil
}

func (e *Engine) cacheProfile(p agents.PersonalityProfile) {
	if e.profiles == nil {
		return
	}
	e.profiles.Set(strconv.FormatUint(uint64(p.AgentID), 10), p, cache.DefaultExpiration)
}

// newMemory stamps a memory with an id and the current time.
func (e *Engine) newMemory(m agents.Memory) agents.Memory {
	m.ID = uuid.NewString()
	m.Date = e.now().UTC()
	return m
}

func listLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

// Memories returns the agent's most important memories.
func (e *Engine) Memories(ctx context.Context, id agents.AgentID, limit int) ([]agents.Memory, error) {
	if _, err := loadAgent(ctx, e.store, id); err != nil {
		return nil, err
	}
	mems, err := e.store.TopMemoriesByImportance(ctx, id, listLimit(limit))
	if err != nil {
		return nil, storeErr(err, ErrAgentNotFound)
	}
	return mems, nil
}

// History returns the agent's decision snapshots, most recent first.
func (e *Engine) History(ctx context.Context, id agents.AgentID, limit int) ([]agents.HistorySnapshot, error) {
	if _, err := loadAgent(ctx, e.store, id); err != nil {
		return nil, err
	}
	hist, err := e.store.History(ctx, id, listLimit(limit))
	if err != nil {
		return nil, storeErr(err, ErrAgentNotFound)
	}
	return hist, nil
}
