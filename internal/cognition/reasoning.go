package cognition

import (
	"fmt"
	"strings"

	"github.com/talgya/lifesim/internal/agents"
)

const (
	lowRiskCeiling  = 40
	highRiskFloor   = 60
	traitHigh       = 60
	traitLow        = 40
	influenceMargin = 5.0
)

type reasonRule struct {
	applies  func(p agents.PersonalityProfile, opt Option, b Breakdown) bool
	sentence string
}

// reasonRules are evaluated in order; every rule that applies contributes
// its sentence.
var reasonRules = []reasonRule{
	{
		applies: func(p agents.PersonalityProfile, opt Option, _ Breakdown) bool {
			return p.Conscientiousness > traitHigh && opt.RiskLevel < lowRiskCeiling
		},
		sentence: "I prefer a careful, well-planned approach with manageable risk.",
	},
	{
		applies: func(p agents.PersonalityProfile, opt Option, _ Breakdown) bool {
			return p.Openness > traitHigh && opt.RiskLevel > highRiskFloor
		},
		sentence: "I'm drawn to bold new opportunities, even when they're risky.",
	},
	{
		applies: func(p agents.PersonalityProfile, opt Option, _ Breakdown) bool {
			return p.Agreeableness > traitHigh && opt.RequiresCooperation
		},
		sentence: "Working together with others feels like the right way forward.",
	},
	{
		applies: func(p agents.PersonalityProfile, opt Option, _ Breakdown) bool {
			return p.Agreeableness < traitLow && opt.RequiresConflict
		},
		sentence: "I'm not afraid of confrontation when it gets results.",
	},
	{
		applies: func(p agents.PersonalityProfile, opt Option, _ Breakdown) bool {
			return p.Neuroticism > traitHigh && opt.RiskLevel < lowRiskCeiling
		},
		sentence: "I'd rather avoid anything that could go badly wrong.",
	},
	{
		applies: func(_ agents.PersonalityProfile, _ Option, b Breakdown) bool {
			return b.Stress < -influenceMargin
		},
		sentence: "I'm under too much stress to take big chances right now.",
	},
	{
		applies: func(_ agents.PersonalityProfile, _ Option, b Breakdown) bool {
			return b.Trust > influenceMargin
		},
		sentence: "I trust the people involved in this.",
	},
	{
		applies: func(_ agents.PersonalityProfile, _ Option, b Breakdown) bool {
			return b.Mood > influenceMargin
		},
		sentence: "I'm in a good mood and optimistic about the payoff.",
	},
}

// Explain describes why opt was chosen given the agent's profile and the
// option's score breakdown.
func Explain(p agents.PersonalityProfile, opt Option, b Breakdown) string {
	var reasons []string
	for _, r := range reasonRules {
		if r.applies(p, opt, b) {
			reasons = append(reasons, r.sentence)
		}
	}
	if len(reasons) == 0 {
		return fmt.Sprintf("After weighing my options, %q seemed like the best choice.", opt.Description)
	}
	return strings.Join(reasons, " ")
}
