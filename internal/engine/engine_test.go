package engine_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgdevment/scam-shield/internal/domain"
	"github.com/rgdevment/scam-shield/internal/engine"
	"github.com/rgdevment/scam-shield/internal/engine/features"
)

type fixedPredictor struct {
	names []string
	prob  float64
}

func (f *fixedPredictor) FeatureNames() []string { return f.names }

func (f *fixedPredictor) PredictProbability(_ []float64) (float64, error) {
	return f.prob, nil
}

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	eng, err := engine.New(engine.DefaultConfig(), nil, nil)
	require.NoError(t, err)
	return eng
}

func TestAnalyzeCallScamPattern(t *testing.T) {
	eng := newEngine(t)

	// Very short repeated calls from an unknown international number at
	// night: every heuristic fires at once.
	a := eng.AnalyzeCall(domain.CallInput{
		PhoneNumber: "+234-555-1234",
		Duration:    5,
		Frequency:   3,
		Unknown:     true,
		TimeOfDay:   domain.TimeNight,
	})

	assert.Equal(t, 100.0, a.Score)
	assert.Equal(t, domain.LevelCritical, a.Level)
	assert.True(t, a.IsScam())
	assert.Equal(t, domain.KindCall, a.Kind)
	assert.NotEmpty(t, a.Findings)
	assert.Contains(t, a.Recommendations, "Block this number immediately")
	assert.Contains(t, a.Recommendations, "Enable international call blocking on your device")
	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.False(t, a.CreatedAt.IsZero())

	// Findings come ranked by contribution.
	for i := 1; i < len(a.Findings); i++ {
		assert.GreaterOrEqual(t, a.Findings[i-1].Contribution, a.Findings[i].Contribution)
	}
}

func TestAnalyzeCallLegitimatePattern(t *testing.T) {
	eng := newEngine(t)

	// A two-minute call from a known domestic number during business hours.
	a := eng.AnalyzeCall(domain.CallInput{
		PhoneNumber: "312-867-5309",
		Duration:    120,
		Frequency:   1,
		Unknown:     false,
		TimeOfDay:   domain.TimeBusiness,
	})

	assert.InDelta(t, 17.5, a.Score, 1e-9)
	assert.Equal(t, domain.LevelLow, a.Level)
	assert.False(t, a.IsScam())
	assert.Empty(t, a.Findings)
	assert.Contains(t, a.Recommendations, "Call appears relatively safe")
}

func TestAnalyzeMessagePhishingPattern(t *testing.T) {
	eng := newEngine(t)

	a := eng.AnalyzeMessage(domain.MessageInput{
		Text:   "URGENT: Your account has been suspended! Verify your identity now at http://bit.ly/verify-account",
		Sender: "88888",
	})

	// With no predictor the model pool contributes a neutral 30; the
	// shortened phishing link carries the rest.
	assert.InDelta(t, 54.0, a.Score, 1e-9)
	assert.Equal(t, domain.LevelHigh, a.Level)
	assert.True(t, a.IsScam())
	require.Len(t, a.URLFindings, 1)
	assert.True(t, a.URLFindings[0].Shortener)
	assert.GreaterOrEqual(t, a.URLFindings[0].Score, 60.0)

	var urlFinding bool
	for _, f := range a.Findings {
		if strings.Contains(f.Cause, "suspicious URL") {
			urlFinding = true
		}
	}
	assert.True(t, urlFinding)
	assert.Contains(t, a.Recommendations, "Do NOT click any links in this message")
	assert.Contains(t, a.Recommendations, "Contact your bank/service provider directly using official contact info")
}

func TestAnalyzeMessageLegitimateNotification(t *testing.T) {
	cfg := engine.DefaultConfig()
	low := &fixedPredictor{names: features.MessageSchema(), prob: 0.05}
	eng, err := engine.New(cfg, nil, low)
	require.NoError(t, err)

	a := eng.AnalyzeMessage(domain.MessageInput{
		Text:   "Hi! Your package was shipped and should arrive tomorrow. Track it at https://www.amazon.com/progress-tracker/package/ref=ABC123",
		Sender: "Amazon",
	})

	assert.Less(t, a.Score, 25.0)
	assert.Equal(t, domain.LevelLow, a.Level)
	assert.False(t, a.IsScam())
	require.Len(t, a.URLFindings, 1)
	assert.True(t, a.URLFindings[0].Trusted)
	assert.Less(t, a.URLFindings[0].Score, 25.0)
}

func TestAnalyzeMessageNeutralFallbackWithoutPredictor(t *testing.T) {
	eng := newEngine(t)

	// No links and no predictor: the score is exactly the neutral model
	// pool share.
	a := eng.AnalyzeMessage(domain.MessageInput{
		Text:   "See you at dinner tonight?",
		Sender: "Maria",
	})
	assert.InDelta(t, 30.0, a.Score, 1e-9)
	assert.Equal(t, domain.LevelMedium, a.Level)
}

func TestAnalyzeCallIsDeterministic(t *testing.T) {
	eng := newEngine(t)
	in := domain.CallInput{
		PhoneNumber: "+234-555-1234",
		Duration:    5,
		Frequency:   3,
		Unknown:     true,
		TimeOfDay:   domain.TimeNight,
	}

	first := eng.AnalyzeCall(in)
	second := eng.AnalyzeCall(in)

	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Level, second.Level)
	assert.Equal(t, first.Findings, second.Findings)
	assert.Equal(t, first.Features.Map(), second.Features.Map())
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCombine(t *testing.T) {
	eng := newEngine(t)

	call := eng.AnalyzeCall(domain.CallInput{
		PhoneNumber: "+234-555-1234",
		Duration:    5,
		Frequency:   3,
		Unknown:     true,
		TimeOfDay:   domain.TimeNight,
	})
	sms := eng.AnalyzeMessage(domain.MessageInput{
		Text:   "URGENT: Your account has been suspended! Verify your identity now at http://bit.ly/verify-account",
		Sender: "88888",
	})

	t.Run("both sources", func(t *testing.T) {
		overall := eng.Combine(call, sms)
		want := call.Score*0.45 + sms.Score*0.55
		assert.InDelta(t, want, overall.Score, 1e-9)
		assert.Equal(t, []domain.Kind{domain.KindCall, domain.KindSMS}, overall.Sources)

		var hasCallPrefix, hasSMSPrefix bool
		for _, f := range overall.Findings {
			if strings.HasPrefix(f.Cause, "Call: ") {
				hasCallPrefix = true
			}
			if strings.HasPrefix(f.Cause, "SMS: ") {
				hasSMSPrefix = true
			}
		}
		assert.True(t, hasCallPrefix)
		assert.True(t, hasSMSPrefix)
		assert.LessOrEqual(t, len(overall.Recommendations), 8)
	})

	t.Run("call only passes through", func(t *testing.T) {
		overall := eng.Combine(call, nil)
		assert.Equal(t, call.Score, overall.Score)
		assert.Equal(t, []domain.Kind{domain.KindCall}, overall.Sources)
	})

	t.Run("sms only passes through", func(t *testing.T) {
		overall := eng.Combine(nil, sms)
		assert.Equal(t, sms.Score, overall.Score)
		assert.Equal(t, []domain.Kind{domain.KindSMS}, overall.Sources)
	})
}

func TestNewAggregatorRejectsBadWeights(t *testing.T) {
	cases := []engine.BlendWeights{
		{CallModel: 0.7, CallRules: 0.5, SMSModel: 0.6, SMSURL: 0.4, OverallCall: 0.45, OverallSMS: 0.55},
		{CallModel: -0.5, CallRules: 1.5, SMSModel: 0.6, SMSURL: 0.4, OverallCall: 0.45, OverallSMS: 0.55},
		{CallModel: 0.5, CallRules: 0.5, SMSModel: 1, SMSURL: 0.4, OverallCall: 0.45, OverallSMS: 0.55},
	}
	for _, w := range cases {
		_, err := engine.NewAggregator(w)
		assert.Error(t, err)
	}
}

func TestComposeAlert(t *testing.T) {
	eng := newEngine(t)

	critical := eng.AnalyzeCall(domain.CallInput{
		PhoneNumber: "+234-555-1234",
		Duration:    5,
		Frequency:   3,
		Unknown:     true,
		TimeOfDay:   domain.TimeNight,
	})
	alert := eng.ComposeAlert(critical)

	assert.Equal(t, domain.LevelCritical, alert.Level)
	assert.Equal(t, "CRITICAL THREAT DETECTED", alert.Title)
	assert.Equal(t, "#dc3545", alert.SeverityColor)
	assert.Equal(t, "BLOCK AND REPORT", alert.RecommendedAction)
	assert.Equal(t, critical.Score, alert.Score)
	assert.Contains(t, alert.Message, "Detected: ")
	assert.NotEmpty(t, alert.EducationalNote)
	assert.LessOrEqual(t, len(alert.SafetyTips), 5)

	low := eng.AnalyzeCall(domain.CallInput{
		PhoneNumber: "312-867-5309",
		Duration:    120,
		Frequency:   1,
		TimeOfDay:   domain.TimeBusiness,
	})
	alert = eng.ComposeAlert(low)
	assert.Equal(t, "LOW RISK", alert.Title)
	assert.Equal(t, "#28a745", alert.SeverityColor)
	assert.NotContains(t, alert.Message, "Detected:")
}

func TestComposeOverallAlert(t *testing.T) {
	eng := newEngine(t)

	sms := eng.AnalyzeMessage(domain.MessageInput{
		Text:   "URGENT: Your account has been suspended! Verify your identity now at http://bit.ly/verify-account",
		Sender: "88888",
	})
	overall := eng.Combine(nil, sms)
	alert := eng.ComposeOverallAlert(overall)

	assert.Equal(t, overall.Level, alert.Level)
	assert.Equal(t, overall.Score, alert.Score)
	assert.Contains(t, alert.SafetyTips, "Don't click on shortened URLs from unknown numbers")
}
