// Package agents provides the agent data model: emotional attributes,
// personality, memories, relationships and the needs/skills life model
// derived from them.
package agents

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned (wrapped) by stores when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// AgentID is a unique identifier for an agent.
type AgentID uint64

// AgentType is the business role an agent plays.
type AgentType string

const (
	TypeCustomer   AgentType = "customer"
	TypeSupplier   AgentType = "supplier"
	TypeEmployee   AgentType = "employee"
	TypePartner    AgentType = "partner"
	TypeInvestor   AgentType = "investor"
	TypeCompetitor AgentType = "competitor"
)

// ParseAgentType validates s against the known agent types.
func ParseAgentType(s string) (AgentType, error) {
	switch t := AgentType(s); t {
	case TypeCustomer, TypeSupplier, TypeEmployee, TypePartner, TypeInvestor, TypeCompetitor:
		return t, nil
	}
	return "", fmt.Errorf("unknown agent type %q", s)
}

// Emotions holds the persisted emotional attributes of an agent.
// Every field is kept within [0, 100].
type Emotions struct {
	Happiness       int `json:"happiness" db:"happiness"`
	Satisfaction    int `json:"satisfaction" db:"satisfaction"`
	Stress          int `json:"stress" db:"stress"`
	Loyalty         int `json:"loyalty" db:"loyalty"`
	Trust           int `json:"trust" db:"trust"`
	SocialNeed      int `json:"social_need" db:"social_need"`
	FinancialNeed   int `json:"financial_need" db:"financial_need"`
	RecognitionNeed int `json:"recognition_need" db:"recognition_need"`
	AutonomyNeed    int `json:"autonomy_need" db:"autonomy_need"`
	SecurityNeed    int `json:"security_need" db:"security_need"`
}

// Clamp forces every attribute into [0, 100].
func (e *Emotions) Clamp() {
	for _, f := range []*int{
		&e.Happiness, &e.Satisfaction, &e.Stress, &e.Loyalty, &e.Trust,
		&e.SocialNeed, &e.FinancialNeed, &e.RecognitionNeed, &e.AutonomyNeed, &e.SecurityNeed,
	} {
		*f = ClampInt(*f, 0, 100)
	}
}

// Aptitudes are the optional attributes skills are derived from.
// Nil means the attribute was never recorded for this agent.
type Aptitudes struct {
	Adaptability     *int `json:"adaptability,omitempty" db:"adaptability"`
	Expertise        *int `json:"expertise,omitempty" db:"expertise"`
	NegotiationSkill *int `json:"negotiation_skill,omitempty" db:"negotiation_skill"`
}

// Agent is a simulated business actor.
type Agent struct {
	ID        AgentID   `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Type      AgentType `json:"type" db:"type"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Emotions
	Aptitudes
}

// PersonalityProfile holds the Big Five plus behavioral traits, each in [0, 100].
// Fixed at creation.
type PersonalityProfile struct {
	AgentID           AgentID `json:"agent_id" db:"agent_id"`
	Openness          int     `json:"openness" db:"openness"`
	Conscientiousness int     `json:"conscientiousness" db:"conscientiousness"`
	Extraversion      int     `json:"extraversion" db:"extraversion"`
	Agreeableness     int     `json:"agreeableness" db:"agreeableness"`
	Neuroticism       int     `json:"neuroticism" db:"neuroticism"`
	Impulsiveness     int     `json:"impulsiveness" db:"impulsiveness"`
	RiskTaking        int     `json:"risk_taking" db:"risk_taking"`
	Empathy           int     `json:"empathy" db:"empathy"`
	Leadership        int     `json:"leadership" db:"leadership"`
	Independence      int     `json:"independence" db:"independence"`
}

// NeutralProfile returns a profile with every trait at 50. Scoring uses it
// when an agent has no stored profile.
func NeutralProfile(id AgentID) PersonalityProfile {
	return PersonalityProfile{
		AgentID:           id,
		Openness:          50,
		Conscientiousness: 50,
		Extraversion:      50,
		Agreeableness:     50,
		Neuroticism:       50,
		Impulsiveness:     50,
		RiskTaking:        50,
		Empathy:           50,
		Leadership:        50,
		Independence:      50,
	}
}

// Relationship is the symmetric bond between two agents.
// Agent1 is always the smaller id.
type Relationship struct {
	Agent1     AgentID `json:"agent1_id" db:"agent1_id"`
	Agent2     AgentID `json:"agent2_id" db:"agent2_id"`
	Positivity int     `json:"positivity" db:"positivity"` // 0–100, trust proxy
}

// RelationshipKey orders a pair of agent ids so (a,b) and (b,a) share a key.
func RelationshipKey(a, b AgentID) (AgentID, AgentID) {
	if a > b {
		return b, a
	}
	return a, b
}

// HistorySnapshot is an audit record of an agent's emotional state at a decision.
type HistorySnapshot struct {
	ID           string    `json:"id" db:"id"`
	AgentID      AgentID   `json:"agent_id" db:"agent_id"`
	Happiness    int       `json:"happiness" db:"happiness"`
	Satisfaction int       `json:"satisfaction" db:"satisfaction"`
	Stress       int       `json:"stress" db:"stress"`
	Loyalty      int       `json:"loyalty" db:"loyalty"`
	Trust        int       `json:"trust" db:"trust"`
	Note         string    `json:"note" db:"note"`
	RecordedAt   time.Time `json:"recorded_at" db:"recorded_at"`
}

// ClampInt restricts v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
