package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgdevment/scam-shield/internal/domain"
	"github.com/rgdevment/scam-shield/internal/engine/features"
	"github.com/rgdevment/scam-shield/internal/engine/rules"
)

func callVector(t *testing.T) *domain.FeatureVector {
	t.Helper()
	return domain.NewFeatureVector(domain.KindCall, features.CallSchema())
}

func TestNewScorerValidation(t *testing.T) {
	t.Run("no tables", func(t *testing.T) {
		_, err := rules.NewScorer()
		assert.Error(t, err)
	})

	t.Run("empty table", func(t *testing.T) {
		_, err := rules.NewScorer(rules.WeightTable{Version: "v1", Kind: domain.KindCall})
		assert.Error(t, err)
	})

	t.Run("unknown feature", func(t *testing.T) {
		_, err := rules.NewScorer(rules.WeightTable{
			Version: "v1",
			Kind:    domain.KindCall,
			Rules:   []rules.Rule{{Feature: "no_such_feature", Points: 10}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no_such_feature")
	})

	t.Run("unknown guard", func(t *testing.T) {
		_, err := rules.NewScorer(rules.WeightTable{
			Version: "v1",
			Kind:    domain.KindCall,
			Rules:   []rules.Rule{{Feature: features.FeatUnknown, Unless: "no_such_guard", Points: 10}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no_such_guard")
	})

	t.Run("duplicate kind", func(t *testing.T) {
		table := rules.WeightTable{
			Version: "v1",
			Kind:    domain.KindCall,
			Rules:   []rules.Rule{{Feature: features.FeatUnknown, Points: 10}},
		}
		_, err := rules.NewScorer(table, table)
		assert.Error(t, err)
	})
}

func TestScoreActivation(t *testing.T) {
	scorer, err := rules.NewScorer(rules.WeightTable{
		Version: "v1",
		Kind:    domain.KindCall,
		Rules: []rules.Rule{
			{Feature: features.FeatUnknown, Points: 20, Finding: "Caller not in contacts"},
			{Feature: features.FeatFrequency, Over: 4, Points: 15, Finding: "Excessive calls"},
		},
	})
	require.NoError(t, err)

	v := callVector(t)
	v.SetBool(features.FeatUnknown, true)
	v.Set(features.FeatFrequency, 4) // not over the threshold

	score, findings := scorer.Score(v)
	assert.Equal(t, 20.0, score)
	require.Len(t, findings, 1)
	assert.Equal(t, "Caller not in contacts", findings[0].Cause)
	assert.Equal(t, 20.0, findings[0].Contribution)

	v.Set(features.FeatFrequency, 5)
	score, findings = scorer.Score(v)
	assert.Equal(t, 35.0, score)
	assert.Len(t, findings, 2)
}

func TestScoreGuard(t *testing.T) {
	scorer, err := rules.NewScorer(rules.WeightTable{
		Version: "v1",
		Kind:    domain.KindCall,
		Rules: []rules.Rule{
			{Feature: features.FeatNormalCall, Unless: features.FeatUnknown, Points: -15},
		},
	})
	require.NoError(t, err)

	v := callVector(t)
	v.SetBool(features.FeatNormalCall, true)

	score, findings := scorer.Score(v)
	assert.Equal(t, -15.0, score)
	assert.Empty(t, findings, "discount rules carry no finding")

	v.SetBool(features.FeatUnknown, true)
	score, _ = scorer.Score(v)
	assert.Equal(t, 0.0, score, "guard suppresses the discount")
}

func TestScorePerUnitCap(t *testing.T) {
	scorer, err := rules.NewScorer(rules.WeightTable{
		Version: "v1",
		Kind:    domain.KindSMS,
		Rules: []rules.Rule{
			{Feature: features.FeatScamKeywords, Points: 10, PerUnit: true, Cap: 30, Finding: "Scam phrases"},
		},
	})
	require.NoError(t, err)

	cases := []struct {
		hits float64
		want float64
	}{
		{0, 0},
		{1, 10},
		{3, 30},
		{7, 30},
	}

	for _, tc := range cases {
		v := domain.NewFeatureVector(domain.KindSMS, features.MessageSchema())
		v.Set(features.FeatScamKeywords, tc.hits)
		score, _ := scorer.Score(v)
		assert.Equal(t, tc.want, score, "hits %v", tc.hits)
	}
}

func TestScoreUnconfiguredKind(t *testing.T) {
	scorer, err := rules.NewScorer(rules.DefaultCallTable())
	require.NoError(t, err)

	v := domain.NewFeatureVector(domain.KindSMS, features.MessageSchema())
	score, findings := scorer.Score(v)
	assert.Equal(t, 0.0, score)
	assert.Empty(t, findings)
}

func TestDefaultTablesValidate(t *testing.T) {
	scorer, err := rules.NewScorer(rules.DefaultCallTable(), rules.DefaultMessageTable())
	require.NoError(t, err)
	assert.Equal(t, "call-v1", scorer.Version(domain.KindCall))
	assert.Equal(t, "sms-v1", scorer.Version(domain.KindSMS))
}

func TestDefaultCallTableKnownScam(t *testing.T) {
	scorer, err := rules.NewScorer(rules.DefaultCallTable())
	require.NoError(t, err)

	v := callVector(t)
	v.SetBool(features.FeatUnknown, true)
	v.SetBool(features.FeatInternational, true)
	v.SetBool(features.FeatRiskyCountry, true)
	v.SetBool(features.FeatUnknownIntl, true)
	v.SetBool(features.FeatVeryShortCall, true)
	v.SetBool(features.FeatRepeatedCalls, true)
	v.SetBool(features.FeatShortAndRepeated, true)

	score, findings := scorer.Score(v)
	assert.Greater(t, score, 100.0)
	assert.NotEmpty(t, findings)
	for _, f := range findings {
		assert.Positive(t, f.Contribution)
		assert.NotEmpty(t, f.Cause)
	}
}
