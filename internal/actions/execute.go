package actions

import (
	"sort"

	"github.com/talgya/lifesim/internal/agents"
)

const (
	actionMemoryImportance = 3
	funMemoryImpact        = 20
)

// Apply returns the state after performing d, plus the skills it changed
// in a stable order. Needs clamp to [0, 100] and skills to [0, 10]. The
// input state is not modified.
func Apply(d Definition, state agents.SimulationState) (agents.SimulationState, []agents.Skill) {
	next := state.Clone()
	for need, delta := range d.NeedEffects {
		next.Needs.Adjust(need, delta)
	}

	changed := make([]agents.Skill, 0, len(d.SkillEffects))
	for skill, gain := range d.SkillEffects {
		next.Skills.Gain(skill, gain)
		changed = append(changed, skill)
	}
	sort.Slice(changed, func(i, j int) bool { return changed[i] < changed[j] })

	return agents.NewState(next.Needs, next.Skills), changed
}

// CompletionMemory describes the event memory recorded after performing d.
// Actions that raise fun are remembered fondly.
func CompletionMemory(d Definition) (content string, impact, importance int) {
	impact = 0
	if d.NeedEffects[agents.NeedFun] > 0 {
		impact = funMemoryImpact
	}
	return "Performed action: " + d.Name, impact, actionMemoryImportance
}
