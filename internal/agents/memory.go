// Agent memory log: append-only records of notable experiences.
// The decision scorer reads the most important entries as context.
package agents

import (
	"sort"
	"time"
)

// MemoryType classifies a memory.
type MemoryType string

const (
	MemoryEvent       MemoryType = "event"
	MemoryInteraction MemoryType = "interaction"
	MemoryKnowledge   MemoryType = "knowledge"
	MemoryEmotion     MemoryType = "emotion"
	MemorySkill       MemoryType = "skill"
	MemoryTrauma      MemoryType = "trauma"
	MemoryAchievement MemoryType = "achievement"
)

// DecisionMemoryLimit is how many memories the decision scorer considers.
const DecisionMemoryLimit = 10

// Memory records a notable experience in an agent's life.
type Memory struct {
	ID              string     `json:"id" db:"id"`
	AgentID         AgentID    `json:"agent_id" db:"agent_id"`
	Type            MemoryType `json:"memory_type" db:"memory_type"`
	Content         string     `json:"content" db:"content"`
	EmotionalImpact int        `json:"emotional_impact" db:"emotional_impact"` // -100–100
	Importance      int        `json:"importance" db:"importance"`
	Date            time.Time  `json:"memory_date" db:"memory_date"`
}

// NewMemory builds a memory with its impact clamped to [-100, 100].
func NewMemory(agentID AgentID, kind MemoryType, content string, impact, importance int, at time.Time) Memory {
	return Memory{
		AgentID:         agentID,
		Type:            kind,
		Content:         content,
		EmotionalImpact: ClampInt(impact, -100, 100),
		Importance:      importance,
		Date:            at,
	}
}

// ImportantMemories returns the top N memories by importance. Equal
// importance keeps the more recent memory first.
func ImportantMemories(memories []Memory, count int) []Memory {
	if len(memories) == 0 || count <= 0 {
		return nil
	}

	sorted := make([]Memory, len(memories))
	copy(sorted, memories)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Importance != sorted[j].Importance {
			return sorted[i].Importance > sorted[j].Importance
		}
		return sorted[i].Date.After(sorted[j].Date)
	})

	if count > len(sorted) {
		count = len(sorted)
	}
	return sorted[:count]
}
