package actions

import (
	"sort"

	"github.com/talgya/lifesim/internal/agents"
	"github.com/talgya/lifesim/internal/entropy"
)

const (
	// MaxRecommendations caps the recommended list.
	MaxRecommendations = 5
	// deficitNeeds is how many of the lowest needs drive recommendation scores.
	deficitNeeds = 3
	// topPickChance is the probability an autonomous agent takes the best
	// recommendation. Draws strictly below it pick the top entry.
	topPickChance = 0.7
)

// Satisfied reports whether state meets every requirement of d.
func (d Definition) Satisfied(state agents.SimulationState) bool {
	if d.Requirements == nil {
		return true
	}
	for need, min := range d.Requirements.MinNeeds {
		if state.Needs[need] < min {
			return false
		}
	}
	for skill, min := range d.Requirements.MinSkills {
		if state.Skills[skill] < min {
			return false
		}
	}
	return true
}

// Available returns the catalog actions whose requirements state satisfies,
// in catalog order.
func Available(state agents.SimulationState) []Definition {
	var out []Definition
	for _, d := range Catalog() {
		if d.Satisfied(state) {
			out = append(out, d)
		}
	}
	return out
}

// LowestNeeds returns the count lowest-valued needs. Ties keep canonical order.
func LowestNeeds(state agents.SimulationState, count int) []agents.Need {
	needs := make([]agents.Need, len(agents.AllNeeds))
	copy(needs, agents.AllNeeds[:])
	sort.SliceStable(needs, func(i, j int) bool {
		return state.Needs[needs[i]] < state.Needs[needs[j]]
	})
	if count > len(needs) {
		count = len(needs)
	}
	return needs[:count]
}

// ReliefScore measures how much d relieves the given deficient needs:
// the sum of positive effects weighted by each need's deficit.
func ReliefScore(d Definition, state agents.SimulationState, deficient []agents.Need) float64 {
	var score float64
	for _, n := range deficient {
		effect := d.NeedEffects[n]
		if effect <= 0 {
			continue
		}
		score += effect * (100 - state.Needs[n]) / 100
	}
	return score
}

// Recommended ranks available actions by relief of the three lowest needs,
// best first, and returns at most MaxRecommendations. Equal scores keep
// catalog order.
func Recommended(state agents.SimulationState) []Definition {
	available := Available(state)
	if len(available) == 0 {
		return nil
	}

	deficient := LowestNeeds(state, deficitNeeds)
	scores := make(map[string]float64, len(available))
	for _, d := range available {
		scores[d.ID] = ReliefScore(d, state, deficient)
	}

	sort.SliceStable(available, func(i, j int) bool {
		return scores[available[i].ID] > scores[available[j].ID]
	})

	if len(available) > MaxRecommendations {
		available = available[:MaxRecommendations]
	}
	return available
}

// PickAutonomous chooses from a recommendation list: the top entry when the
// first draw is below 0.7, otherwise a uniform pick over the whole list.
func PickAutonomous(recommended []Definition, rng entropy.Source) (Definition, bool) {
	if len(recommended) == 0 {
		return Definition{}, false
	}
	if rng.Float() < topPickChance {
		return recommended[0], true
	}
	i := int(rng.Float() * float64(len(recommended)))
	if i >= len(recommended) {
		i = len(recommended) - 1
	}
	return recommended[i], true
}
