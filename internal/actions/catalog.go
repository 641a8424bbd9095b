// Package actions holds the static life-simulation action catalog and the
// selection rules that rank actions against an agent's current needs.
package actions

import "github.com/talgya/lifesim/internal/agents"

// Category groups actions by purpose.
type Category string

const (
	CategorySelfCare Category = "self_care"
	CategorySocial   Category = "social"
	CategoryWork     Category = "work"
	CategoryLeisure  Category = "leisure"
	CategorySkill    Category = "skill"
)

// Requirements are the minimum need and skill levels an action demands.
type Requirements struct {
	MinNeeds  map[agents.Need]float64  `json:"min_needs,omitempty"`
	MinSkills map[agents.Skill]float64 `json:"min_skills,omitempty"`
}

// Definition describes one action an agent can perform.
type Definition struct {
	ID           string                   `json:"id"`
	Name         string                   `json:"name"`
	Category     Category                 `json:"category"`
	Duration     int                      `json:"duration"` // minutes
	NeedEffects  map[agents.Need]float64  `json:"need_effects"`
	SkillEffects map[agents.Skill]float64 `json:"skill_effects,omitempty"`
	Requirements *Requirements            `json:"requirements,omitempty"`
}

// catalog is never handed out directly; Catalog and Lookup return copies.
var catalog = []Definition{
	{
		ID: "eat_meal", Name: "Eat a Meal", Category: CategorySelfCare, Duration: 30,
		NeedEffects: map[agents.Need]float64{agents.NeedHunger: 50, agents.NeedEnergy: 5, agents.NeedComfort: 10},
	},
	{
		ID: "grab_snack", Name: "Grab a Snack", Category: CategorySelfCare, Duration: 10,
		NeedEffects: map[agents.Need]float64{agents.NeedHunger: 15, agents.NeedFun: 2},
	},
	{
		ID: "sleep", Name: "Sleep", Category: CategorySelfCare, Duration: 480,
		NeedEffects: map[agents.Need]float64{agents.NeedEnergy: 80, agents.NeedComfort: 20, agents.NeedHunger: -10, agents.NeedBladder: -20},
	},
	{
		ID: "take_nap", Name: "Take a Nap", Category: CategorySelfCare, Duration: 60,
		NeedEffects: map[agents.Need]float64{agents.NeedEnergy: 25, agents.NeedComfort: 5},
	},
	{
		ID: "take_shower", Name: "Take a Shower", Category: CategorySelfCare, Duration: 20,
		NeedEffects: map[agents.Need]float64{agents.NeedHygiene: 60, agents.NeedComfort: 5, agents.NeedEnergy: 5},
	},
	{
		ID: "use_bathroom", Name: "Use the Bathroom", Category: CategorySelfCare, Duration: 5,
		NeedEffects: map[agents.Need]float64{agents.NeedBladder: 100, agents.NeedHygiene: -5},
	},
	{
		ID: "chat_with_friend", Name: "Chat with a Friend", Category: CategorySocial, Duration: 30,
		NeedEffects:  map[agents.Need]float64{agents.NeedSocial: 30, agents.NeedFun: 10},
		SkillEffects: map[agents.Skill]float64{agents.SkillCharisma: 0.1},
	},
	{
		ID: "call_family", Name: "Call Family", Category: CategorySocial, Duration: 20,
		NeedEffects: map[agents.Need]float64{agents.NeedSocial: 20, agents.NeedComfort: 5},
	},
	{
		ID: "host_party", Name: "Host a Party", Category: CategorySocial, Duration: 180,
		NeedEffects:  map[agents.Need]float64{agents.NeedSocial: 50, agents.NeedFun: 40, agents.NeedEnergy: -20, agents.NeedHygiene: -10},
		SkillEffects: map[agents.Skill]float64{agents.SkillCharisma: 0.5},
		Requirements: &Requirements{
			MinNeeds:  map[agents.Need]float64{agents.NeedEnergy: 40},
			MinSkills: map[agents.Skill]float64{agents.SkillCharisma: 4},
		},
	},
	{
		ID: "work_shift", Name: "Work a Shift", Category: CategoryWork, Duration: 480,
		NeedEffects:  map[agents.Need]float64{agents.NeedEnergy: -30, agents.NeedFun: -10, agents.NeedHunger: -20, agents.NeedSocial: 10},
		SkillEffects: map[agents.Skill]float64{agents.SkillLogic: 0.5},
		Requirements: &Requirements{
			MinNeeds: map[agents.Need]float64{agents.NeedEnergy: 30, agents.NeedHunger: 20},
		},
	},
	{
		ID: "negotiate_deal", Name: "Negotiate a Deal", Category: CategoryWork, Duration: 90,
		NeedEffects:  map[agents.Need]float64{agents.NeedEnergy: -15, agents.NeedSocial: 15, agents.NeedFun: 5},
		SkillEffects: map[agents.Skill]float64{agents.SkillCharisma: 0.5, agents.SkillLogic: 0.2},
		Requirements: &Requirements{
			MinNeeds:  map[agents.Need]float64{agents.NeedEnergy: 25},
			MinSkills: map[agents.Skill]float64{agents.SkillCharisma: 3},
		},
	},
	{
		ID: "watch_tv", Name: "Watch TV", Category: CategoryLeisure, Duration: 60,
		NeedEffects: map[agents.Need]float64{agents.NeedFun: 25, agents.NeedComfort: 10, agents.NeedEnergy: 5},
	},
	{
		ID: "play_game", Name: "Play a Game", Category: CategoryLeisure, Duration: 90,
		NeedEffects: map[agents.Need]float64{agents.NeedFun: 40, agents.NeedSocial: 5, agents.NeedEnergy: -5},
	},
	{
		ID: "relax", Name: "Relax in a Comfy Chair", Category: CategoryLeisure, Duration: 30,
		NeedEffects: map[agents.Need]float64{agents.NeedComfort: 30, agents.NeedEnergy: 10},
	},
	{
		ID: "cook_gourmet", Name: "Cook a Gourmet Meal", Category: CategorySkill, Duration: 90,
		NeedEffects:  map[agents.Need]float64{agents.NeedHunger: 60, agents.NeedFun: 10, agents.NeedEnergy: -5},
		SkillEffects: map[agents.Skill]float64{agents.SkillCooking: 0.5},
		Requirements: &Requirements{
			MinSkills: map[agents.Skill]float64{agents.SkillCooking: 4},
		},
	},
	{
		ID: "read_book", Name: "Read a Book", Category: CategorySkill, Duration: 60,
		NeedEffects:  map[agents.Need]float64{agents.NeedFun: 15, agents.NeedComfort: 5},
		SkillEffects: map[agents.Skill]float64{agents.SkillLogic: 0.3},
	},
	{
		ID: "exercise", Name: "Exercise", Category: CategorySkill, Duration: 60,
		NeedEffects:  map[agents.Need]float64{agents.NeedEnergy: -15, agents.NeedHygiene: -20, agents.NeedFun: 10},
		SkillEffects: map[agents.Skill]float64{agents.SkillFitness: 0.5},
		Requirements: &Requirements{
			MinNeeds: map[agents.Need]float64{agents.NeedEnergy: 30},
		},
	},
}

// Catalog returns a copy of every action definition in catalog order.
func Catalog() []Definition {
	out := make([]Definition, len(catalog))
	for i := range catalog {
		out[i] = catalog[i].clone()
	}
	return out
}

// Lookup returns a copy of the action with the given id.
func Lookup(id string) (Definition, bool) {
	for i := range catalog {
		if catalog[i].ID == id {
			return catalog[i].clone(), true
		}
	}
	return Definition{}, false
}

func (d Definition) clone() Definition {
	out := d
	out.NeedEffects = copyMap(d.NeedEffects)
	out.SkillEffects = copyMap(d.SkillEffects)
	if d.Requirements != nil {
		out.Requirements = &Requirements{
			MinNeeds:  copyMap(d.Requirements.MinNeeds),
			MinSkills: copyMap(d.Requirements.MinSkills),
		}
	}
	return out
}

func copyMap[K comparable](m map[K]float64) map[K]float64 {
	if m == nil {
		return nil
	}
	out := make(map[K]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
