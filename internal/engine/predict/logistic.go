package predict

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v2"
)

// LogisticModel is a fitted logistic-regression predictor with named
// coefficients, the portable export format of the offline training step.
type LogisticModel struct {
	names   []string
	weights []float64
	bias    float64
}

type modelFile struct {
	Features []string           `yaml:"features"`
	Bias     float64            `yaml:"bias"`
	Weights  map[string]float64 `yaml:"weights"`
}

// LoadLogisticModel reads a YAML coefficients file. Every declared feature
// must have a weight; a partial file is a configuration error.
func LoadLogisticModel(path string) (*LogisticModel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("predict: failed to read model file: %w", err)
	}
	var file modelFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("predict: failed to parse model file: %w", err)
	}
	return NewLogisticModel(file.Features, file.Weights, file.Bias)
}

// NewLogisticModel builds a model from named coefficients.
func NewLogisticModel(names []string, weights map[string]float64, bias float64) (*LogisticModel, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("predict: model declares no features")
	}
	aligned := make([]float64, len(names))
	for i, name := range names {
		w, ok := weights[name]
		if !ok {
			return nil, fmt.Errorf("predict: model is missing a weight for feature %q", name)
		}
		aligned[i] = w
	}
	return &LogisticModel{names: append([]string(nil), names...), weights: aligned, bias: bias}, nil
}

// FeatureNames returns the fit-time feature order.
func (m *LogisticModel) FeatureNames() []string {
	return append([]string(nil), m.names...)
}

// PredictProbability applies the sigmoid of the linear combination.
func (m *LogisticModel) PredictProbability(features []float64) (float64, error) {
	if len(features) != len(m.weights) {
		return 0, fmt.Errorf("predict: expected %d features, got %d", len(m.weights), len(features))
	}
	z := m.bias
	for i, x := range features {
		z += m.weights[i] * x
	}
	return 1 / (1 + math.Exp(-z)), nil
}
