// Life-simulation needs model. Needs and skills are not stored directly:
// they are translated from the agent's persisted attributes and written back
// through the inverse translation. Keep all of that mapping in this file.
package agents

import "math"

// Need names one of the seven simulated needs.
type Need string

const (
	NeedHunger  Need = "hunger"
	NeedEnergy  Need = "energy"
	NeedHygiene Need = "hygiene"
	NeedBladder Need = "bladder"
	NeedSocial  Need = "social"
	NeedFun     Need = "fun"
	NeedComfort Need = "comfort"
)

// AllNeeds lists the needs in canonical order. Iteration that affects
// results (ranking, tie breaks) always follows this order.
var AllNeeds = [...]Need{NeedHunger, NeedEnergy, NeedHygiene, NeedBladder, NeedSocial, NeedFun, NeedComfort}

// Skill names a simulated skill.
type Skill string

const (
	SkillCooking  Skill = "cooking"
	SkillLogic    Skill = "logic"
	SkillCharisma Skill = "charisma"
	SkillFitness  Skill = "fitness"
)

const (
	maxNeed  = 100.0
	maxSkill = 10.0

	// aptitudePerSkill converts between a 0–100 aptitude and a 0–10 skill.
	aptitudePerSkill = 10.0
	// defaultSkill is used when the source aptitude was never recorded.
	defaultSkill = 3.0
)

// decayPerHour is how much each need drops per simulated hour.
var decayPerHour = map[Need]float64{
	NeedHunger:  2.5,
	NeedEnergy:  1.8,
	NeedHygiene: 1.2,
	NeedBladder: 3.0,
	NeedSocial:  1.5,
	NeedFun:     2.0,
	NeedComfort: 1.0,
}

// Needs maps each need to a value in [0, 100].
type Needs map[Need]float64

// Skills maps each skill to a value in [0, 10].
type Skills map[Skill]float64

// Mood is the five-level classification of the mean need value.
type Mood string

const (
	MoodVeryHappy Mood = "very_happy"
	MoodHappy     Mood = "happy"
	MoodFine      Mood = "fine"
	MoodSad       Mood = "sad"
	MoodVerySad   Mood = "very_sad"
)

// Rank orders moods from 0 (very sad) to 4 (very happy).
func (m Mood) Rank() int {
	switch m {
	case MoodVeryHappy:
		return 4
	case MoodHappy:
		return 3
	case MoodFine:
		return 2
	case MoodSad:
		return 1
	default:
		return 0
	}
}

// Moodlet is a transient emotional flag recomputed on every derivation.
type Moodlet struct {
	Name      string `json:"name"`
	Intensity int    `json:"intensity"`
}

// SimulationState is the derived life-simulation view of an agent.
type SimulationState struct {
	Needs          Needs     `json:"needs"`
	Skills         Skills    `json:"skills"`
	Mood           Mood      `json:"mood"`
	Moodlets       []Moodlet `json:"moodlets"`
	CurrentAction  *string   `json:"current_action"`
	ActionProgress float64   `json:"action_progress"`
}

// DeriveState translates an agent's persisted attributes into a SimulationState.
func DeriveState(a *Agent) SimulationState {
	needs := Needs{
		NeedHunger:  float64(100 - a.FinancialNeed),
		NeedEnergy:  float64(100 - a.Stress),
		NeedHygiene: float64(a.Satisfaction),
		NeedBladder: 100,
		NeedSocial:  float64(100 - a.SocialNeed),
		NeedFun:     float64(a.Happiness),
		NeedComfort: float64(a.Satisfaction),
	}
	for n, v := range needs {
		needs[n] = Clamp(v, 0, maxNeed)
	}

	skills := Skills{
		SkillCooking:  skillFrom(a.Adaptability),
		SkillLogic:    skillFrom(a.Expertise),
		SkillCharisma: skillFrom(a.NegotiationSkill),
	}

	return NewState(needs, skills)
}

// NewState builds a state from needs and skills, computing mood and moodlets.
func NewState(needs Needs, skills Skills) SimulationState {
	return SimulationState{
		Needs:    needs,
		Skills:   skills,
		Mood:     ClassifyMood(needs),
		Moodlets: MoodletsFor(needs),
	}
}

func skillFrom(aptitude *int) float64 {
	if aptitude == nil {
		return defaultSkill
	}
	return Clamp(float64(*aptitude)/aptitudePerSkill, 0, maxSkill)
}

// WriteNeeds stores needs back into the emotional attributes they were
// derived from. Hygiene and comfort share satisfaction, so it receives their
// mean. Bladder has no backing attribute.
func WriteNeeds(e *Emotions, needs Needs) {
	e.FinancialNeed = round(100 - needs[NeedHunger])
	e.Stress = round(100 - needs[NeedEnergy])
	e.Satisfaction = round((needs[NeedHygiene] + needs[NeedComfort]) / 2)
	e.SocialNeed = round(100 - needs[NeedSocial])
	e.Happiness = round(needs[NeedFun])
	e.Clamp()
}

// WriteSkills stores the listed skills back into their source aptitudes.
// Skills without a backing aptitude are ignored.
func WriteSkills(ap *Aptitudes, skills Skills, changed []Skill) {
	for _, s := range changed {
		v := ClampInt(round(skills[s]*aptitudePerSkill), 0, 100)
		switch s {
		case SkillCooking:
			ap.Adaptability = &v
		case SkillLogic:
			ap.Expertise = &v
		case SkillCharisma:
			ap.NegotiationSkill = &v
		}
	}
}

func round(v float64) int {
	return int(math.Round(v))
}

// MeanNeed returns the arithmetic mean of all seven needs.
func MeanNeed(needs Needs) float64 {
	var sum float64
	for _, n := range AllNeeds {
		sum += needs[n]
	}
	return sum / float64(len(AllNeeds))
}

// ClassifyMood maps the mean need to a mood by descending thresholds.
func ClassifyMood(needs Needs) Mood {
	avg := MeanNeed(needs)
	switch {
	case avg >= 80:
		return MoodVeryHappy
	case avg >= 60:
		return MoodHappy
	case avg >= 40:
		return MoodFine
	case avg >= 20:
		return MoodSad
	default:
		return MoodVerySad
	}
}

// MoodletsFor returns the moodlets triggered by need extremes.
func MoodletsFor(needs Needs) []Moodlet {
	moodlets := []Moodlet{}
	if needs[NeedHunger] < 20 {
		moodlets = append(moodlets, Moodlet{Name: "Starving", Intensity: 3})
	}
	if needs[NeedEnergy] < 20 {
		moodlets = append(moodlets, Moodlet{Name: "Exhausted", Intensity: 3})
	}
	if needs[NeedSocial] < 20 {
		moodlets = append(moodlets, Moodlet{Name: "Lonely", Intensity: 2})
	}
	if needs[NeedFun] > 80 {
		moodlets = append(moodlets, Moodlet{Name: "Having a Blast", Intensity: 2})
	}
	return moodlets
}

// ApplyDecay returns a copy of state with every need reduced by its hourly
// rate scaled to minutesPassed, floored at zero. The input is not modified.
func ApplyDecay(state SimulationState, minutesPassed float64) SimulationState {
	hours := minutesPassed / 60
	needs := make(Needs, len(AllNeeds))
	for _, n := range AllNeeds {
		needs[n] = Clamp(state.Needs[n]-decayPerHour[n]*hours, 0, maxNeed)
	}
	skills := make(Skills, len(state.Skills))
	for s, v := range state.Skills {
		skills[s] = v
	}
	return NewState(needs, skills)
}

// Clone returns a deep copy of the state's maps.
func (s SimulationState) Clone() SimulationState {
	needs := make(Needs, len(s.Needs))
	for n, v := range s.Needs {
		needs[n] = v
	}
	skills := make(Skills, len(s.Skills))
	for k, v := range s.Skills {
		skills[k] = v
	}
	out := NewState(needs, skills)
	out.CurrentAction = s.CurrentAction
	out.ActionProgress = s.ActionProgress
	return out
}

// Adjust adds delta to need in place, clamped to [0, 100].
func (n Needs) Adjust(need Need, delta float64) {
	n[need] = Clamp(n[need]+delta, 0, maxNeed)
}

// Gain adds gain to skill k in place, clamped to [0, 10].
func (s Skills) Gain(k Skill, gain float64) {
	s[k] = Clamp(s[k]+gain, 0, maxSkill)
}
