package domain

import (
	"time"

	"github.com/google/uuid"
)

// Kind identifies which analysis pipeline produced an assessment.
// Using a custom type prevents string typos in the business logic.
type Kind string

// RiskLevel helps clients visualize the danger (e.g., Green, Yellow, Red).
type RiskLevel string

// TimeOfDay is the bucket the call arrived in. It is always supplied by the
// caller; the engine never reads a clock, so identical input yields
// identical output.
type TimeOfDay string

const (
	KindCall Kind = "CALL"
	KindSMS  Kind = "SMS"
)

const (
	LevelLow      RiskLevel = "LOW"      // Score 0-24
	LevelMedium   RiskLevel = "MEDIUM"   // Score 25-49
	LevelHigh     RiskLevel = "HIGH"     // Score 50-74
	LevelCritical RiskLevel = "CRITICAL" // Score 75-100
)

const (
	TimeNight    TimeOfDay = "night"
	TimeMorning  TimeOfDay = "morning"
	TimeBusiness TimeOfDay = "business"
	TimeEvening  TimeOfDay = "evening"
)

// LevelForScore maps a clamped 0-100 score to its discrete level.
// Boundaries are inclusive on the lower bound of each tier.
func LevelForScore(score float64) RiskLevel {
	switch {
	case score >= 75:
		return LevelCritical
	case score >= 50:
		return LevelHigh
	case score >= 25:
		return LevelMedium
	default:
		return LevelLow
	}
}

// CallInput is the raw call metadata handed to the engine.
// Immutable once created; produced by the input layer.
type CallInput struct {
	PhoneNumber string    `json:"phone_number"`
	Duration    int       `json:"duration"`       // seconds
	Frequency   int       `json:"call_frequency"` // calls from this number in the past 24h
	Unknown     bool      `json:"is_unknown"`     // not in the user's contacts
	TimeOfDay   TimeOfDay `json:"time_of_day"`
}

// MessageInput is a raw SMS/MMS message plus its sender identifier.
type MessageInput struct {
	Text   string `json:"message_text"`
	Sender string `json:"sender"`
}

// Finding is one explanatory cause with the points it contributed to the
// score. Findings never reference a feature that is absent from the vector
// used to produce the score.
type Finding struct {
	Cause        string  `json:"cause"`
	Contribution float64 `json:"contribution"`
}

// URLFinding is the result of analyzing a single URL. Derived once per URL,
// never mutated after creation.
type URLFinding struct {
	URL   string  `json:"url"`
	Score float64 `json:"risk_score"` // 0-100

	IPLiteral           bool `json:"is_ip_literal"`
	MissingHTTPS        bool `json:"missing_https"`
	Shortener           bool `json:"is_shortener"`
	RiskyTLD            bool `json:"risky_tld"`
	ExcessiveSubdomains bool `json:"excessive_subdomains"`
	SuspiciousKeyword   bool `json:"suspicious_keyword"`
	AtSymbol            bool `json:"has_at_symbol"`
	ExcessiveHyphens    bool `json:"excessive_hyphens"`
	NonstandardPort     bool `json:"nonstandard_port"`
	Trusted             bool `json:"is_trusted"`
	Malformed           bool `json:"is_malformed"`

	Factors []string `json:"risk_factors"`
}

// Suspicious reports whether the URL alone crosses the engagement threshold.
func (f URLFinding) Suspicious() bool {
	return f.Score >= 50
}

// RiskAssessment is the final verdict for one input. Created once per
// analysis request, owned by the caller and never mutated afterwards; any
// change requires a fresh assessment.
type RiskAssessment struct {
	ID    uuid.UUID `json:"id"`
	Kind  Kind      `json:"kind"`
	Score float64   `json:"risk_score"` // clamped to [0,100]
	Level RiskLevel `json:"risk_level"`

	// Findings are ordered by descending contribution, ties broken by the
	// weight table declaration order, so output is reproducible.
	Findings        []Finding `json:"findings"`
	Recommendations []string  `json:"recommendations"`

	Features *FeatureVector `json:"features"`

	// URLFindings is populated for message assessments only.
	URLFindings []URLFinding `json:"url_findings,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// IsScam applies the engagement threshold used across the system.
func (a *RiskAssessment) IsScam() bool {
	return a.Score >= 50
}

// NewRiskAssessment is a factory for a finished assessment.
func NewRiskAssessment(kind Kind, score float64, findings []Finding, recs []string, features *FeatureVector, urls []URLFinding) *RiskAssessment {
	return &RiskAssessment{
		ID:              uuid.New(),
		Kind:            kind,
		Score:           score,
		Level:           LevelForScore(score),
		Findings:        findings,
		Recommendations: recs,
		Features:        features,
		URLFindings:     urls,
		CreatedAt:       time.Now().UTC(),
	}
}

// OverallAssessment blends a call and a message assessment into one combined
// report. SMS carries the higher weight: content-based signals are judged
// higher confidence than metadata-based ones.
type OverallAssessment struct {
	Score           float64         `json:"overall_risk_score"`
	Level           RiskLevel       `json:"risk_level"`
	Sources         []Kind          `json:"risk_sources"`
	Findings        []Finding       `json:"findings"`
	Recommendations []string        `json:"recommendations"`
	Call            *RiskAssessment `json:"call_analysis,omitempty"`
	SMS             *RiskAssessment `json:"sms_analysis,omitempty"`
}
