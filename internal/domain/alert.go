package domain

// Alert is the user-facing rendering of an assessment: a fixed template per
// risk level with the findings interpolated into the body. Pure data, no I/O.
type Alert struct {
	Level             RiskLevel `json:"alert_level"`
	Title             string    `json:"title"`
	SeverityColor     string    `json:"severity_color"` // hex, for UI badges
	Message           string    `json:"message"`
	RecommendedAction string    `json:"recommended_action"`
	Score             float64   `json:"risk_score"`
	Recommendations   []string  `json:"recommendations"`
	EducationalNote   string    `json:"educational_note"`
	SafetyTips        []string  `json:"safety_tips"`
}
