// Agent spawning creates new agents with neutral emotional attributes
// and a personality drawn from a clamped normal distribution.
package agents

import (
	"math"

	"github.com/talgya/lifesim/internal/entropy"
)

const (
	traitMean   = 50.0
	traitStdDev = 15.0
)

// Spawner creates agents and their personality profiles.
type Spawner struct {
	rng entropy.Source
}

// NewSpawner creates an agent spawner drawing from rng.
func NewSpawner(rng entropy.Source) *Spawner {
	return &Spawner{rng: rng}
}

// NewAgent returns an unsaved agent with starting emotional attributes.
// Every need attribute starts at the midpoint; stress starts slightly low.
func (s *Spawner) NewAgent(name string, kind AgentType) *Agent {
	return &Agent{
		Name: name,
		Type: kind,
		Emotions: Emotions{
			Happiness:       50,
			Satisfaction:    50,
			Stress:          30,
			Loyalty:         50,
			Trust:           50,
			SocialNeed:      50,
			FinancialNeed:   50,
			RecognitionNeed: 50,
			AutonomyNeed:    50,
			SecurityNeed:    50,
		},
	}
}

// NewProfile draws every trait from N(50, 15), rounded and clamped to [0, 100].
func (s *Spawner) NewProfile(id AgentID) PersonalityProfile {
	return PersonalityProfile{
		AgentID:           id,
		Openness:          s.trait(),
		Conscientiousness: s.trait(),
		Extraversion:      s.trait(),
		Agreeableness:     s.trait(),
		Neuroticism:       s.trait(),
		Impulsiveness:     s.trait(),
		RiskTaking:        s.trait(),
		Empathy:           s.trait(),
		Leadership:        s.trait(),
		Independence:      s.trait(),
	}
}

func (s *Spawner) trait() int {
	v := entropy.Normal(s.rng, traitMean, traitStdDev)
	return ClampInt(int(math.Round(v)), 0, 100)
}

var firstNames = []string{
	"Ada", "Bram", "Cora", "Dell", "Esme", "Finn", "Greta", "Hugo",
	"Ines", "Jonah", "Kira", "Lev", "Mara", "Nico", "Orla", "Piet",
}

var lastNames = []string{
	"Ashford", "Brennan", "Calloway", "Dunmore", "Ellery", "Fairbanks",
	"Garrick", "Holloway", "Ingram", "Jessup", "Kettering", "Lockwood",
}

var spawnTypes = []AgentType{
	TypeCustomer, TypeSupplier, TypeEmployee, TypePartner, TypeInvestor, TypeCompetitor,
}

// RandomName returns a generated full name.
func (s *Spawner) RandomName() string {
	first := firstNames[s.pick(len(firstNames))]
	last := lastNames[s.pick(len(lastNames))]
	return first + " " + last
}

// RandomType returns one of the agent types, uniformly.
func (s *Spawner) RandomType() AgentType {
	return spawnTypes[s.pick(len(spawnTypes))]
}

func (s *Spawner) pick(n int) int {
	i := int(s.rng.Float() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
