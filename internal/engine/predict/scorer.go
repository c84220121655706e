// Package predict wraps an externally fitted probability estimator. The
// engine treats the model as an opaque capability; this package owns the
// one hazard that cannot be delegated: keeping the named feature vector and
// the model's positional input aligned.
package predict

import (
	"fmt"
	"log"

	"github.com/rgdevment/scam-shield/internal/domain"
)

// NeutralProbability is returned when no predictor is configured or a
// prediction fails: maximum uncertainty, so the aggregator always receives
// a usable value.
const NeutralProbability = 0.5

// Predictor is the consumed capability. It declares the feature names, in
// order, that it was fit against.
type Predictor interface {
	FeatureNames() []string
	PredictProbability(features []float64) (float64, error)
}

// Scorer projects a named feature vector into the predictor's declared
// positional order. Construction fails loudly when the predictor expects a
// feature the schema does not carry; positional convention is never trusted.
type Scorer struct {
	predictor Predictor
	expected  []string
}

// NewScorer builds the adapter. A nil predictor is a valid configuration,
// not an error; such a scorer always returns NeutralProbability.
func NewScorer(predictor Predictor, schema []string) (*Scorer, error) {
	if predictor == nil {
		return &Scorer{}, nil
	}
	known := make(map[string]struct{}, len(schema))
	for _, name := range schema {
		known[name] = struct{}{}
	}
	expected := predictor.FeatureNames()
	if len(expected) == 0 {
		return nil, fmt.Errorf("predict: predictor declares no features")
	}
	for i, name := range expected {
		if _, ok := known[name]; !ok {
			return nil, fmt.Errorf("predict: predictor feature %d (%q) is not part of the schema", i, name)
		}
	}
	return &Scorer{predictor: predictor, expected: expected}, nil
}

// Score returns the scam probability in [0,1] for the vector. Prediction
// failures degrade to NeutralProbability and are logged, never raised.
func (s *Scorer) Score(v *domain.FeatureVector) float64 {
	if s.predictor == nil {
		return NeutralProbability
	}
	projected := make([]float64, len(s.expected))
	for i, name := range s.expected {
		projected[i] = v.Get(name)
	}
	prob, err := s.predictor.PredictProbability(projected)
	if err != nil {
		log.Printf("⚠️  predictor failed, falling back to neutral probability: %v", err)
		return NeutralProbability
	}
	if prob < 0 {
		return 0
	}
	if prob > 1 {
		return 1
	}
	return prob
}

// Enabled reports whether a real predictor backs this scorer.
func (s *Scorer) Enabled() bool {
	return s.predictor != nil
}
