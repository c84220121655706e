package engine

import (
	"strings"

	"github.com/rgdevment/scam-shield/internal/domain"
)

type alertTemplate struct {
	title   string
	color   string
	message string
	action  string
}

var alertTemplates = map[domain.RiskLevel]alertTemplate{
	domain.LevelCritical: {
		title:   "CRITICAL THREAT DETECTED",
		color:   "#dc3545",
		message: "This communication shows strong indicators of a scam. DO NOT ENGAGE.",
		action:  "BLOCK AND REPORT",
	},
	domain.LevelHigh: {
		title:   "HIGH RISK WARNING",
		color:   "#fd7e14",
		message: "Multiple scam indicators detected. Exercise extreme caution.",
		action:  "DO NOT RESPOND",
	},
	domain.LevelMedium: {
		title:   "MEDIUM RISK ALERT",
		color:   "#ffc107",
		message: "Some suspicious patterns detected. Verify before taking action.",
		action:  "VERIFY SOURCE",
	},
	domain.LevelLow: {
		title:   "LOW RISK",
		color:   "#28a745",
		message: "No significant threats detected, but remain vigilant.",
		action:  "PROCEED WITH CAUTION",
	},
}

const educationalNote = "Scammers create urgency, impersonate authority, and ask for " +
	"personal or payment details to bypass critical thinking. Verify through official " +
	"channels before acting on any unexpected call or message."

var safetyTips = map[domain.Kind][]string{
	domain.KindCall: {
		"Legitimate organizations won't ask for passwords over the phone",
		"Government agencies don't demand immediate payment by gift cards or wire transfer",
		"If a caller claims to be from a company, hang up and call the official number",
		"Be wary of robocalls claiming you've won a prize",
	},
	domain.KindSMS: {
		"Don't click on shortened URLs from unknown numbers",
		"Banks will never ask you to verify account details via SMS link",
		"Check the sender's number - legitimate companies use consistent numbers",
		"Look for spelling errors and grammatical mistakes in messages",
	},
}

var generalTips = []string{
	"Never share personal information over the phone unless you initiated the call",
	"Be suspicious of urgent requests for money or information",
	"Verify caller identity through official channels",
	"Don't click on links from unknown sources",
	"Enable two-factor authentication on all accounts",
}

// Composer turns an assessment into user-facing alert text. Pure mapping
// from risk level to a fixed template with the findings interpolated.
type Composer struct{}

// NewComposer returns the alert composer.
func NewComposer() *Composer {
	return &Composer{}
}

// Compose renders the alert for a single assessment.
func (c *Composer) Compose(a *domain.RiskAssessment) domain.Alert {
	return c.compose(a.Level, a.Score, a.Findings, a.Recommendations, tipsFor(a.Kind))
}

// ComposeOverall renders the alert for a combined call+SMS report.
func (c *Composer) ComposeOverall(o *domain.OverallAssessment) domain.Alert {
	tips := generalTips
	if o.SMS != nil {
		tips = tipsFor(domain.KindSMS)
	} else if o.Call != nil {
		tips = tipsFor(domain.KindCall)
	}
	return c.compose(o.Level, o.Score, o.Findings, o.Recommendations, tips)
}

func (c *Composer) compose(level domain.RiskLevel, score float64, findings []domain.Finding, recs []string, tips []string) domain.Alert {
	tpl, ok := alertTemplates[level]
	if !ok {
		tpl = alertTemplates[domain.LevelMedium]
	}

	message := tpl.message
	if causes := topCauses(findings, 3); len(causes) > 0 {
		message += " Detected: " + strings.Join(causes, "; ") + "."
	}

	if len(tips) > 5 {
		tips = tips[:5]
	}
	return domain.Alert{
		Level:             level,
		Title:             tpl.title,
		SeverityColor:     tpl.color,
		Message:           message,
		RecommendedAction: tpl.action,
		Score:             score,
		Recommendations:   recs,
		EducationalNote:   educationalNote,
		SafetyTips:        tips,
	}
}

func tipsFor(kind domain.Kind) []string {
	if tips, ok := safetyTips[kind]; ok {
		return tips
	}
	return generalTips
}

func topCauses(findings []domain.Finding, n int) []string {
	causes := make([]string, 0, n)
	for _, f := range findings {
		causes = append(causes, f.Cause)
		if len(causes) == n {
			break
		}
	}
	return causes
}
