package domain

import (
	"time"

	"github.com/google/uuid"
)

// CallRecord is the persisted form of a call assessment.
// This struct maps to the 'call_analysis' table in ScyllaDB.
type CallRecord struct {
	ID            uuid.UUID `json:"id" db:"id"`
	PhoneNumber   string    `json:"phone_number" db:"phone_number"`
	Duration      int       `json:"duration" db:"duration"`
	Frequency     int       `json:"call_frequency" db:"call_frequency"`
	Unknown       bool      `json:"is_unknown" db:"is_unknown"`
	International bool      `json:"is_international" db:"is_international"`
	Score         float64   `json:"risk_score" db:"risk_score"`
	Level         RiskLevel `json:"risk_level" db:"risk_level"`
	IsScam        bool      `json:"is_scam" db:"is_scam"`
	Findings      []string  `json:"findings" db:"findings"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// MessageRecord is the persisted form of a message assessment.
// This struct maps to the 'sms_analysis' table in ScyllaDB.
type MessageRecord struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Sender    string    `json:"sender" db:"sender"`
	Text      string    `json:"message_text" db:"message_text"`
	HasURL    bool      `json:"has_url" db:"has_url"`
	URLs      []string  `json:"urls" db:"urls"`
	Score     float64   `json:"risk_score" db:"risk_score"`
	Level     RiskLevel `json:"risk_level" db:"risk_level"`
	IsScam    bool      `json:"is_scam" db:"is_scam"`
	Findings  []string  `json:"findings" db:"findings"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PhoneRisk is the last known verdict for a number, served from cache or
// storage on lookup. A number with no history reads as LOW with zero score.
type PhoneRisk struct {
	PhoneNumber string    `json:"phone_number"`
	Score       float64   `json:"risk_score"`
	Level       RiskLevel `json:"risk_level"`
	LastSeen    time.Time `json:"last_seen"`
	KnownNumber bool      `json:"known_number"` // false when no history exists
}

// Statistics aggregates analysis volume for reporting.
type Statistics struct {
	TotalCalls    int64 `json:"total_calls"`
	CallScams     int64 `json:"call_scams"`
	TotalMessages int64 `json:"total_messages"`
	MessageScams  int64 `json:"message_scams"`
}

// NewCallRecord flattens an assessment for storage.
func NewCallRecord(in CallInput, a *RiskAssessment) *CallRecord {
	return &CallRecord{
		ID:            a.ID,
		PhoneNumber:   in.PhoneNumber,
		Duration:      in.Duration,
		Frequency:     in.Frequency,
		Unknown:       in.Unknown,
		International: a.Features.Active("is_international"),
		Score:         a.Score,
		Level:         a.Level,
		IsScam:        a.IsScam(),
		Findings:      findingCauses(a.Findings),
		CreatedAt:     a.CreatedAt,
	}
}

// NewMessageRecord flattens a message assessment for storage.
func NewMessageRecord(in MessageInput, a *RiskAssessment) *MessageRecord {
	urls := make([]string, 0, len(a.URLFindings))
	for _, u := range a.URLFindings {
		urls = append(urls, u.URL)
	}
	return &MessageRecord{
		ID:        a.ID,
		Sender:    in.Sender,
		Text:      in.Text,
		HasURL:    len(urls) > 0,
		URLs:      urls,
		Score:     a.Score,
		Level:     a.Level,
		IsScam:    a.IsScam(),
		Findings:  findingCauses(a.Findings),
		CreatedAt: a.CreatedAt,
	}
}

func findingCauses(findings []Finding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Cause)
	}
	return out
}
