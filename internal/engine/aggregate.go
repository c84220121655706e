package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/rgdevment/scam-shield/internal/domain"
	"github.com/rgdevment/scam-shield/internal/engine/features"
)

// BlendWeights are the fixed splits between signal pools. Each input kind
// draws from disjoint pools, so the same signal never counts twice toward
// the numeric score.
type BlendWeights struct {
	CallModel   float64 `yaml:"call_model"`
	CallRules   float64 `yaml:"call_rules"`
	SMSModel    float64 `yaml:"sms_model"`
	SMSURL      float64 `yaml:"sms_url"`
	OverallCall float64 `yaml:"overall_call"`
	// OverallSMS is the larger share: content-based signals are judged
	// higher confidence than call metadata.
	OverallSMS float64 `yaml:"overall_sms"`
}

// DefaultBlendWeights are the shipped splits.
func DefaultBlendWeights() BlendWeights {
	return BlendWeights{
		CallModel:   0.5,
		CallRules:   0.5,
		SMSModel:    0.6,
		SMSURL:      0.4,
		OverallCall: 0.45,
		OverallSMS:  0.55,
	}
}

// Aggregator combines the scoring pools into a final assessment.
type Aggregator struct {
	weights BlendWeights
}

// NewAggregator validates that each weight pair partitions its pool.
func NewAggregator(w BlendWeights) (*Aggregator, error) {
	pairs := []struct {
		name string
		a, b float64
	}{
		{"call", w.CallModel, w.CallRules},
		{"sms", w.SMSModel, w.SMSURL},
		{"overall", w.OverallCall, w.OverallSMS},
	}
	for _, p := range pairs {
		if p.a < 0 || p.b < 0 || math.Abs(p.a+p.b-1) > 1e-9 {
			return nil, fmt.Errorf("engine: %s blend weights must be non-negative and sum to 1", p.name)
		}
	}
	return &Aggregator{weights: w}, nil
}

// AggregateCall blends the model probability and the unclamped rule score.
func (g *Aggregator) AggregateCall(probability, ruleScore float64, ruleFindings []domain.Finding, v *domain.FeatureVector) *domain.RiskAssessment {
	score := clamp(probability*100*g.weights.CallModel + ruleScore*g.weights.CallRules)
	findings := rankFindings(ruleFindings)
	recs := callRecommendations(domain.LevelForScore(score), v)
	return domain.NewRiskAssessment(domain.KindCall, score, findings, recs, v, nil)
}

// AggregateMessage blends the model probability with the mean URL sub-score.
// Rule findings are merged for explanation only; their points are already
// represented by the model and URL pools.
func (g *Aggregator) AggregateMessage(probability float64, ruleFindings []domain.Finding, urls []domain.URLFinding, v *domain.FeatureVector) *domain.RiskAssessment {
	urlMean := v.Get(features.FeatAvgURLRisk)
	score := clamp(probability*100*g.weights.SMSModel + urlMean*g.weights.SMSURL)

	findings := ruleFindings
	if n := suspiciousCount(urls); n > 0 {
		findings = append(findings, domain.Finding{
			Cause:        fmt.Sprintf("Contains %d suspicious URL(s)", n),
			Contribution: urlMean * g.weights.SMSURL,
		})
	}
	findings = rankFindings(findings)
	recs := messageRecommendations(domain.LevelForScore(score), v)
	return domain.NewRiskAssessment(domain.KindSMS, score, findings, recs, v, urls)
}

// Combine blends an existing call and message assessment into one overall
// report. Either side may be nil; a single source passes through unweighted.
func (g *Aggregator) Combine(call, sms *domain.RiskAssessment) *domain.OverallAssessment {
	overall := &domain.OverallAssessment{Call: call, SMS: sms}

	switch {
	case call != nil && sms != nil:
		overall.Score = clamp(call.Score*g.weights.OverallCall + sms.Score*g.weights.OverallSMS)
		overall.Sources = []domain.Kind{domain.KindCall, domain.KindSMS}
	case call != nil:
		overall.Score = call.Score
		overall.Sources = []domain.Kind{domain.KindCall}
	case sms != nil:
		overall.Score = sms.Score
		overall.Sources = []domain.Kind{domain.KindSMS}
	}
	overall.Level = domain.LevelForScore(overall.Score)

	if call != nil {
		for _, f := range call.Findings {
			overall.Findings = append(overall.Findings, domain.Finding{Cause: "Call: " + f.Cause, Contribution: f.Contribution})
		}
		overall.Recommendations = append(overall.Recommendations, call.Recommendations...)
	}
	if sms != nil {
		for _, f := range sms.Findings {
			overall.Findings = append(overall.Findings, domain.Finding{Cause: "SMS: " + f.Cause, Contribution: f.Contribution})
		}
		overall.Recommendations = append(overall.Recommendations, sms.Recommendations...)
	}
	overall.Recommendations = dedupe(overall.Recommendations, 8)

	return overall
}

// rankFindings orders by descending contribution; the stable sort keeps the
// weight-table declaration order on ties, so output is reproducible.
func rankFindings(findings []domain.Finding) []domain.Finding {
	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Contribution > findings[j].Contribution
	})
	return findings
}

func callRecommendations(level domain.RiskLevel, v *domain.FeatureVector) []string {
	var recs []string
	switch level {
	case domain.LevelCritical, domain.LevelHigh:
		recs = append(recs,
			"Do NOT answer calls from this number",
			"Block this number immediately",
			"Do NOT call back",
			"Report to your phone carrier or FTC",
		)
		if v.Active(features.FeatInternational) {
			recs = append(recs, "Enable international call blocking on your device")
		}
	case domain.LevelMedium:
		recs = append(recs,
			"Exercise caution when answering",
			"Do not provide personal information",
			"Ask for caller credentials and verify independently",
			"Consider blocking if they call repeatedly",
		)
	default:
		recs = append(recs,
			"Call appears relatively safe",
			"Still verify identity if they request sensitive information",
		)
	}
	return append(recs,
		"Never share passwords, PINs, or account numbers over the phone",
		"Legitimate organizations will not pressure you for immediate action",
	)
}

func messageRecommendations(level domain.RiskLevel, v *domain.FeatureVector) []string {
	var recs []string
	switch level {
	case domain.LevelCritical, domain.LevelHigh:
		recs = append(recs,
			"Do NOT click any links in this message",
			"Do NOT reply or provide any personal information",
			"Delete this message immediately",
			"Block the sender",
		)
		if v.Active(features.FeatMentionsAccount) {
			recs = append(recs, "Contact your bank/service provider directly using official contact info")
		}
	case domain.LevelMedium:
		recs = append(recs,
			"Exercise caution with this message",
			"Verify the sender through official channels",
			"Do not click links unless you can verify the source",
		)
	default:
		recs = append(recs,
			"Message appears relatively safe",
			"Still verify sender if requesting sensitive information",
		)
	}
	return append(recs, "Never share passwords, PINs, or security codes via SMS")
}

func suspiciousCount(urls []domain.URLFinding) int {
	n := 0
	for _, u := range urls {
		if u.Suspicious() {
			n++
		}
	}
	return n
}

func dedupe(items []string, limit int) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
		if len(out) == limit {
			break
		}
	}
	return out
}

func clamp(score float64) float64 {
	return math.Min(100, math.Max(0, score))
}
