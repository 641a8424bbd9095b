package cognition

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/talgya/lifesim/internal/agents"
)

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func scenarioInputs() Inputs {
	profile := agents.NeutralProfile(1)
	profile.Openness = 80
	profile.Neuroticism = 20
	return Inputs{
		Agent:   &agents.Agent{ID: 1, Emotions: agents.Emotions{Happiness: 70, Stress: 20}},
		Profile: &profile,
	}
}

func TestScoreOptionScenario(t *testing.T) {
	opt := Option{ID: "bold", Description: "Launch a bold venture", RiskLevel: 80, PotentialReward: 70}
	s := ScoreOption(scenarioInputs(), opt)

	if !closeTo(s.Breakdown.Openness, 9) {
		t.Fatalf("expected openness 9, got %v", s.Breakdown.Openness)
	}
	if !closeTo(s.Breakdown.Conscientiousness, 0) {
		t.Fatalf("expected conscientiousness 0, got %v", s.Breakdown.Conscientiousness)
	}
	if !closeTo(s.Breakdown.Neuroticism, 9.6) {
		t.Fatalf("expected neuroticism 9.6, got %v", s.Breakdown.Neuroticism)
	}
	if !closeTo(s.Breakdown.Mood, 2.8) {
		t.Fatalf("expected mood 2.8, got %v", s.Breakdown.Mood)
	}
	if !closeTo(s.Breakdown.Stress, -3.2) {
		t.Fatalf("expected stress -3.2, got %v", s.Breakdown.Stress)
	}
	if !closeTo(s.Total, 68.2) {
		t.Fatalf("expected total 68.2, got %v", s.Total)
	}
	if !closeTo(s.PersonalityInfluence, 18.6) {
		t.Fatalf("expected personality influence 18.6, got %v", s.PersonalityInfluence)
	}
	if !closeTo(s.EmotionalInfluence, -0.4) {
		t.Fatalf("expected emotional influence -0.4, got %v", s.EmotionalInfluence)
	}
}

func TestScoreOptionNilProfileIsNeutral(t *testing.T) {
	in := Inputs{Agent: &agents.Agent{Emotions: agents.Emotions{Happiness: 50, Stress: 0}}}
	s := ScoreOption(in, Option{RiskLevel: 90, PotentialReward: 90, RequiresCooperation: true})
	if !closeTo(s.Total, 50) {
		t.Fatalf("expected neutral total 50, got %v", s.Total)
	}
}

func TestScoreOptionSocialTerms(t *testing.T) {
	p := agents.NeutralProfile(1)
	p.Extraversion = 100
	p.Agreeableness = 100
	in := Inputs{Agent: &agents.Agent{Emotions: agents.Emotions{Happiness: 50}}, Profile: &p}

	coop := ScoreOption(in, Option{RiskLevel: 0, RequiresCooperation: true})
	if !closeTo(coop.Breakdown.Extraversion, 10) || !closeTo(coop.Breakdown.Agreeableness, 10) {
		t.Fatalf("unexpected cooperation terms %+v", coop.Breakdown)
	}

	// Conflict takes precedence over cooperation for agreeableness.
	both := ScoreOption(in, Option{RiskLevel: 0, RequiresCooperation: true, RequiresConflict: true})
	if !closeTo(both.Breakdown.Agreeableness, -15) {
		t.Fatalf("expected agreeableness -15 for conflict, got %v", both.Breakdown.Agreeableness)
	}

	solo := ScoreOption(in, Option{RiskLevel: 0})
	if solo.Breakdown.Extraversion != 0 || solo.Breakdown.Agreeableness != 0 {
		t.Fatalf("expected no social terms, got %+v", solo.Breakdown)
	}
}

func TestScoreOptionRelationshipAndMemories(t *testing.T) {
	in := Inputs{
		Agent:        &agents.Agent{Emotions: agents.Emotions{Happiness: 50}},
		Relationship: &agents.Relationship{Agent1: 1, Agent2: 2, Positivity: 90},
		Memories: []agents.Memory{
			{Type: agents.MemoryTrauma},
			{Type: agents.MemoryTrauma},
			{Type: agents.MemoryAchievement},
			{Type: agents.MemoryEvent},
		},
	}

	s := ScoreOption(in, Option{RiskLevel: 75, PotentialReward: 75})
	if !closeTo(s.Breakdown.Trust, 8) {
		t.Fatalf("expected trust 8, got %v", s.Breakdown.Trust)
	}
	if !closeTo(s.Breakdown.Memory, -15) {
		t.Fatalf("expected memory -15, got %v", s.Breakdown.Memory)
	}

	// At the thresholds nothing fires.
	s = ScoreOption(in, Option{RiskLevel: 70, PotentialReward: 70})
	if s.Breakdown.Memory != 0 {
		t.Fatalf("expected no memory term at thresholds, got %v", s.Breakdown.Memory)
	}
}

func TestScoreOptionClamps(t *testing.T) {
	p := agents.PersonalityProfile{Conscientiousness: 100, Neuroticism: 0, RiskTaking: 100, Impulsiveness: 100, Openness: 100}
	in := Inputs{
		Agent:   &agents.Agent{Emotions: agents.Emotions{Happiness: 100}},
		Profile: &p,
		Memories: []agents.Memory{
			{Type: agents.MemoryAchievement}, {Type: agents.MemoryAchievement},
		},
	}
	if s := ScoreOption(in, Option{RiskLevel: 60, PotentialReward: 100}); s.Total != 100 {
		t.Fatalf("expected total clamped to 100, got %v", s.Total)
	}

	low := agents.PersonalityProfile{Conscientiousness: 0, Neuroticism: 100, RiskTaking: 0, Impulsiveness: 0}
	in = Inputs{
		Agent:    &agents.Agent{Emotions: agents.Emotions{Happiness: 0, Stress: 100}},
		Profile:  &low,
		Memories: []agents.Memory{{Type: agents.MemoryTrauma}, {Type: agents.MemoryTrauma}},
	}
	if s := ScoreOption(in, Option{RiskLevel: 100, PotentialReward: 100}); s.Total != 0 {
		t.Fatalf("expected total clamped to 0, got %v", s.Total)
	}
}

func TestDecidePicksHighest(t *testing.T) {
	in := scenarioInputs()
	ctx := Context{
		Type: "investment",
		Options: []Option{
			{ID: "safe", Description: "Keep savings", RiskLevel: 10, PotentialReward: 10},
			{ID: "bold", Description: "Launch a bold venture", RiskLevel: 80, PotentialReward: 70},
		},
	}

	d, err := Decide(in, ctx)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if d.ChosenOption.ID != "bold" {
		t.Fatalf("expected bold, got %s", d.ChosenOption.ID)
	}
	if len(d.Scores) != 2 {
		t.Fatalf("expected 2 scores, got %d", len(d.Scores))
	}
	want := math.Min(100, 50+(d.Scores[1].Total-d.Scores[0].Total)*2)
	if !closeTo(d.Confidence, want) {
		t.Fatalf("expected confidence %v, got %v", want, d.Confidence)
	}
	if !strings.Contains(d.Reasoning, "bold new opportunities") {
		t.Fatalf("expected openness reasoning, got %q", d.Reasoning)
	}
}

func TestDecideTieKeepsFirst(t *testing.T) {
	in := Inputs{Agent: &agents.Agent{Emotions: agents.Emotions{Happiness: 50}}}
	ctx := Context{Options: []Option{
		{ID: "a", RiskLevel: 30},
		{ID: "b", RiskLevel: 30},
	}}
	d, err := Decide(in, ctx)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if d.ChosenOption.ID != "a" {
		t.Fatalf("expected first option on tie, got %s", d.ChosenOption.ID)
	}
	if d.Confidence != 50 {
		t.Fatalf("expected confidence 50 on tie, got %v", d.Confidence)
	}
}

func TestDecideSingleOption(t *testing.T) {
	d, err := Decide(scenarioInputs(), Context{Options: []Option{{ID: "only", Description: "Only way"}}})
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if d.Confidence != 100 {
		t.Fatalf("expected confidence 100, got %v", d.Confidence)
	}
}

func TestDecideNoOptions(t *testing.T) {
	_, err := Decide(scenarioInputs(), Context{Type: "empty"})
	if !errors.Is(err, ErrNoOptions) {
		t.Fatalf("expected ErrNoOptions, got %v", err)
	}
}

func TestDecideUsesTopTenMemories(t *testing.T) {
	var memories []agents.Memory
	for i := 0; i < 10; i++ {
		memories = append(memories, agents.Memory{Type: agents.MemoryEvent, Importance: 60})
	}
	memories = append(memories, agents.Memory{Type: agents.MemoryTrauma, Importance: 1})

	in := Inputs{Agent: &agents.Agent{Emotions: agents.Emotions{Happiness: 50}}, Memories: memories}
	d, err := Decide(in, Context{Options: []Option{{ID: "risky", RiskLevel: 90}}})
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if d.Scores[0].Breakdown.Memory != 0 {
		t.Fatalf("expected low-importance trauma to be ignored, got %v", d.Scores[0].Breakdown.Memory)
	}
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		name   string
		totals []float64
		best   int
		want   float64
	}{
		{name: "margin fifteen", totals: []float64{70, 55}, best: 0, want: 80},
		{name: "runner up is max of rest", totals: []float64{40, 70, 60}, best: 1, want: 70},
		{name: "capped", totals: []float64{90, 10}, best: 0, want: 100},
		{name: "single", totals: []float64{12}, best: 0, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := make([]Score, len(tt.totals))
			for i, v := range tt.totals {
				scores[i] = Score{Total: v}
			}
			if got := Confidence(scores, tt.best); !closeTo(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestExplain(t *testing.T) {
	p := agents.NeutralProfile(1)
	p.Conscientiousness = 70
	p.Neuroticism = 70
	safe := Option{Description: "Keep savings", RiskLevel: 10}

	got := Explain(p, safe, Breakdown{Stress: -6, Trust: 8, Mood: 6})
	want := []string{
		"careful, well-planned",
		"avoid anything that could go badly wrong",
		"too much stress",
		"I trust the people",
		"good mood",
	}
	last := -1
	for _, w := range want {
		idx := strings.Index(got, w)
		if idx < 0 {
			t.Fatalf("expected %q in %q", w, got)
		}
		if idx < last {
			t.Fatalf("expected rule order preserved in %q", got)
		}
		last = idx
	}

	fallback := Explain(agents.NeutralProfile(1), safe, Breakdown{})
	if fallback != `After weighing my options, "Keep savings" seemed like the best choice.` {
		t.Fatalf("unexpected fallback %q", fallback)
	}

	p = agents.NeutralProfile(1)
	p.Agreeableness = 30
	fight := Explain(p, Option{RequiresConflict: true, RiskLevel: 50}, Breakdown{})
	if !strings.Contains(fight, "confrontation") {
		t.Fatalf("expected conflict reasoning, got %q", fight)
	}
	p.Agreeableness = 70
	team := Explain(p, Option{RequiresCooperation: true, RiskLevel: 50}, Breakdown{})
	if !strings.Contains(team, "Working together") {
		t.Fatalf("expected cooperation reasoning, got %q", team)
	}
}

func TestApplyOutcome(t *testing.T) {
	tests := []struct {
		outcome Outcome
		start   agents.Emotions
		want    agents.Emotions
	}{
		{
			outcome: OutcomeFailure,
			start:   agents.Emotions{Happiness: 60, Satisfaction: 60, Stress: 40},
			want:    agents.Emotions{Happiness: 45, Satisfaction: 40, Stress: 60},
		},
		{
			outcome: OutcomeSuccess,
			start:   agents.Emotions{Happiness: 95, Satisfaction: 90, Stress: 5},
			want:    agents.Emotions{Happiness: 100, Satisfaction: 100, Stress: 0},
		},
		{
			outcome: OutcomeNeutral,
			start:   agents.Emotions{Happiness: 33, Satisfaction: 44, Stress: 55},
			want:    agents.Emotions{Happiness: 33, Satisfaction: 44, Stress: 55},
		},
	}
	for _, tt := range tests {
		t.Run(string(tt.outcome), func(t *testing.T) {
			e := tt.start
			ApplyOutcome(&e, tt.outcome)
			if e != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, e)
			}
		})
	}
}

func TestOutcomeMemory(t *testing.T) {
	m := OutcomeMemory(7, OutcomeFailure, "hiring", "I trust the people involved in this.")
	if m.Type != agents.MemoryTrauma || m.Importance != 70 || m.EmotionalImpact != -30 {
		t.Fatalf("unexpected failure memory %+v", m)
	}
	if m.Content != "Made a hiring decision: I trust the people involved in this.. Outcome: failure" {
		t.Fatalf("unexpected content %q", m.Content)
	}

	m = OutcomeMemory(7, OutcomeSuccess, "hiring", "r")
	if m.Type != agents.MemoryAchievement || m.Importance != 50 || m.EmotionalImpact != 30 {
		t.Fatalf("unexpected success memory %+v", m)
	}
	m = OutcomeMemory(7, OutcomeNeutral, "hiring", "r")
	if m.Type != agents.MemoryEvent || m.Importance != 50 || m.EmotionalImpact != 0 {
		t.Fatalf("unexpected neutral memory %+v", m)
	}
}

func TestParseOutcome(t *testing.T) {
	if _, err := ParseOutcome("success"); err != nil {
		t.Fatalf("parse success: %v", err)
	}
	if _, err := ParseOutcome("meh"); err == nil {
		t.Fatal("expected error for unknown outcome")
	}
}
