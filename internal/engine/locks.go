package engine

import (
	"sync"

	"github.com/talgya/lifesim/internal/agents"
)

// AgentLocks serializes mutating calls per agent. The zero value is ready
// to use. Entries are dropped once no caller holds or waits on them.
type AgentLocks struct {
	mu    sync.Mutex
	locks map[agents.AgentID]*agentLock
}

type agentLock struct {
	mu   sync.Mutex
	refs int
}

// Lock blocks until the agent's lock is held and returns its release func.
func (l *AgentLocks) Lock(id agents.AgentID) (unlock func()) {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[agents.AgentID]*agentLock)
	}
	al, ok := l.locks[id]
	if !ok {
		al = &agentLock{}
		l.locks[id] = al
	}
	al.refs++
	l.mu.Unlock()

	al.mu.Lock()
	return func() {
		al.mu.Unlock()
		l.mu.Lock()
		al.refs--
		if al.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

// Len reports how many agents currently have a lock entry.
func (l *AgentLocks) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
