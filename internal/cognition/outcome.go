package cognition

import (
	"fmt"

	"github.com/talgya/lifesim/internal/agents"
)

// Outcome is how a past decision resolved.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
	OutcomeNeutral Outcome = "neutral"
)

// ParseOutcome validates s.
func ParseOutcome(s string) (Outcome, error) {
	switch o := Outcome(s); o {
	case OutcomeSuccess, OutcomeFailure, OutcomeNeutral:
		return o, nil
	}
	return "", fmt.Errorf("unknown outcome %q", s)
}

// ApplyOutcome adjusts emotional attributes for a resolved decision.
// Neutral outcomes leave them unchanged.
func ApplyOutcome(e *agents.Emotions, o Outcome) {
	switch o {
	case OutcomeSuccess:
		e.Happiness += 10
		e.Satisfaction += 15
		e.Stress -= 10
	case OutcomeFailure:
		e.Happiness -= 15
		e.Satisfaction -= 20
		e.Stress += 20
	}
	e.Clamp()
}

// OutcomeMemory builds the memory recorded when a decision resolves.
// Successes are remembered as achievements and failures as trauma.
func OutcomeMemory(agentID agents.AgentID, o Outcome, decisionType, reasoning string) agents.Memory {
	kind, impact, importance := agents.MemoryEvent, 0, 50
	switch o {
	case OutcomeSuccess:
		kind, impact = agents.MemoryAchievement, 30
	case OutcomeFailure:
		kind, impact, importance = agents.MemoryTrauma, -30, 70
	}
	content := fmt.Sprintf("Made a %s decision: %s. Outcome: %s", decisionType, reasoning, o)
	return agents.Memory{
		AgentID:         agentID,
		Type:            kind,
		Content:         content,
		EmotionalImpact: impact,
		Importance:      importance,
	}
}

// DecisionNote is the audit note stored with the history snapshot of a decision.
func DecisionNote(decisionType string, d Decision) string {
	return fmt.Sprintf("Decision (%s): chose %q. %s", decisionType, d.ChosenOption.Description, d.Reasoning)
}
