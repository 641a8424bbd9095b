// Package cognition implements personality-weighted decision making: each
// option in a decision context is scored from the agent's traits, emotions,
// relationships and memories, and the best one is chosen and explained.
package cognition

import (
	"errors"

	"github.com/talgya/lifesim/internal/agents"
)

// ErrNoOptions is returned when a decision context has nothing to choose from.
var ErrNoOptions = errors.New("decision context has no options")

const (
	baseScore = 50.0

	traumaRiskThreshold        = 70
	achievementRewardThreshold = 70
	traumaPenalty              = 10.0
	achievementBonus           = 5.0
)

// Option is one candidate choice within a decision context.
type Option struct {
	ID                  string `json:"id"`
	Description         string `json:"description"`
	RiskLevel           int    `json:"risk_level"`       // 0–100
	PotentialReward     int    `json:"potential_reward"` // 0–100
	RequiresCooperation bool   `json:"requires_cooperation"`
	RequiresConflict    bool   `json:"requires_conflict"`
}

// Context is a decision to be made: a type tag and an ordered option list.
type Context struct {
	Type           string          `json:"type"`
	Options        []Option        `json:"options"`
	RelatedAgentID *agents.AgentID `json:"related_agent_id,omitempty"`
}

// Inputs is everything the scorer knows about the deciding agent.
// A nil Profile scores every trait as 50; a nil Relationship adds no trust term.
type Inputs struct {
	Agent        *agents.Agent
	Profile      *agents.PersonalityProfile
	Memories     []agents.Memory
	Relationship *agents.Relationship
}

// Breakdown holds each additive term of an option's score.
type Breakdown struct {
	Openness          float64 `json:"openness"`
	Conscientiousness float64 `json:"conscientiousness"`
	Extraversion      float64 `json:"extraversion"`
	Agreeableness     float64 `json:"agreeableness"`
	Neuroticism       float64 `json:"neuroticism"`
	RiskTaking        float64 `json:"risk_taking"`
	Impulsiveness     float64 `json:"impulsiveness"`
	Mood              float64 `json:"mood"`
	Stress            float64 `json:"stress"`
	Trust             float64 `json:"trust"`
	Memory            float64 `json:"memory"`
}

// Personality sums the trait-driven terms.
func (b Breakdown) Personality() float64 {
	return b.Openness + b.Conscientiousness + b.Extraversion + b.Agreeableness +
		b.Neuroticism + b.RiskTaking + b.Impulsiveness
}

// Emotional sums the mood and stress terms.
func (b Breakdown) Emotional() float64 {
	return b.Mood + b.Stress
}

// Score is the evaluated desirability of one option.
type Score struct {
	OptionID             string    `json:"option_id"`
	Total                float64   `json:"total"` // clamped to [0, 100]
	PersonalityInfluence float64   `json:"personality_influence"`
	EmotionalInfluence   float64   `json:"emotional_influence"`
	Breakdown            Breakdown `json:"breakdown"`
}

// deviation maps a 0–100 trait to [-1, 1] around the midpoint.
func deviation(v int) float64 {
	return (float64(v) - 50) / 50
}

// ScoreOption computes the weighted score of opt for the agent in in.
// Memories are used as given; callers pass the most important ones.
func ScoreOption(in Inputs, opt Option) Score {
	p := agents.NeutralProfile(0)
	if in.Profile != nil {
		p = *in.Profile
	}
	risk := float64(opt.RiskLevel)
	reward := float64(opt.PotentialReward)

	var b Breakdown
	if opt.RiskLevel > 50 {
		b.Openness = deviation(p.Openness) * 15
	}
	b.Conscientiousness = deviation(p.Conscientiousness) * (100 - risk) / 5
	if opt.RequiresCooperation {
		b.Extraversion = deviation(p.Extraversion) * 10
	}
	switch {
	case opt.RequiresConflict:
		b.Agreeableness = -deviation(p.Agreeableness) * 15
	case opt.RequiresCooperation:
		b.Agreeableness = deviation(p.Agreeableness) * 10
	}
	b.Neuroticism = -deviation(p.Neuroticism) * risk / 5
	b.RiskTaking = deviation(p.RiskTaking) * risk / 5
	b.Impulsiveness = deviation(p.Impulsiveness) * reward / 10

	if in.Agent != nil {
		b.Mood = deviation(in.Agent.Happiness) * reward / 10
		b.Stress = -(float64(in.Agent.Stress) / 100) * risk / 5
	}
	if in.Relationship != nil {
		b.Trust = deviation(in.Relationship.Positivity) * 10
	}
	for _, m := range in.Memories {
		if m.Type == agents.MemoryTrauma && opt.RiskLevel > traumaRiskThreshold {
			b.Memory -= traumaPenalty
		}
		if m.Type == agents.MemoryAchievement && opt.PotentialReward > achievementRewardThreshold {
			b.Memory += achievementBonus
		}
	}

	total := baseScore + b.Personality() + b.Emotional() + b.Trust + b.Memory
	return Score{
		OptionID:             opt.ID,
		Total:                agents.Clamp(total, 0, 100),
		PersonalityInfluence: b.Personality(),
		EmotionalInfluence:   b.Emotional(),
		Breakdown:            b,
	}
}

// Decision is the outcome of evaluating a context.
type Decision struct {
	ChosenOption         Option  `json:"chosen_option"`
	Reasoning            string  `json:"reasoning"`
	Confidence           float64 `json:"confidence"`
	PersonalityInfluence float64 `json:"personality_influence"`
	EmotionalInfluence   float64 `json:"emotional_influence"`
	Scores               []Score `json:"scores"`
}

// Decide scores every option, picks the highest total (first wins ties),
// explains the choice and reports confidence.
func Decide(in Inputs, ctx Context) (Decision, error) {
	if len(ctx.Options) == 0 {
		return Decision{}, ErrNoOptions
	}

	in.Memories = agents.ImportantMemories(in.Memories, agents.DecisionMemoryLimit)

	scores := make([]Score, len(ctx.Options))
	best := 0
	for i, opt := range ctx.Options {
		scores[i] = ScoreOption(in, opt)
		if scores[i].Total > scores[best].Total {
			best = i
		}
	}

	chosen := scores[best]
	p := agents.NeutralProfile(0)
	if in.Profile != nil {
		p = *in.Profile
	}

	return Decision{
		ChosenOption:         ctx.Options[best],
		Reasoning:            Explain(p, ctx.Options[best], chosen.Breakdown),
		Confidence:           Confidence(scores, best),
		PersonalityInfluence: chosen.PersonalityInfluence,
		EmotionalInfluence:   chosen.EmotionalInfluence,
		Scores:               scores,
	}, nil
}

// Confidence grows with the margin between the chosen score and the
// runner-up: min(100, 50 + margin*2). A single option is fully confident.
func Confidence(scores []Score, best int) float64 {
	if len(scores) < 2 {
		return 100
	}
	second := -1.0
	for i, s := range scores {
		if i == best {
			continue
		}
		if s.Total > second {
			second = s.Total
		}
	}
	c := 50 + (scores[best].Total-second)*2
	if c > 100 {
		return 100
	}
	return c
}
