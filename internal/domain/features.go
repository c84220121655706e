package domain

import (
	"encoding/json"
	"fmt"
)

// FeatureVector is an ordered mapping of named numeric features. The name
// order is fixed per input kind and is the contract between the extractors
// and any fitted predictor: predictor adapters project the mapping into a
// positional array by name and fail at construction time on a mismatch,
// so feature-order drift can never silently corrupt predictions.
type FeatureVector struct {
	kind   Kind
	names  []string
	values map[string]float64
}

// NewFeatureVector creates a vector with the given schema. Every feature
// starts at zero so the vector arity is fixed regardless of input content.
func NewFeatureVector(kind Kind, names []string) *FeatureVector {
	values := make(map[string]float64, len(names))
	for _, n := range names {
		values[n] = 0
	}
	return &FeatureVector{kind: kind, names: names, values: values}
}

// Set assigns a feature value. Setting a name that is not part of the schema
// is a caller contract violation and panics.
func (v *FeatureVector) Set(name string, value float64) {
	if _, ok := v.values[name]; !ok {
		panic(fmt.Sprintf("feature %q is not part of the %s schema", name, v.kind))
	}
	v.values[name] = value
}

// SetBool assigns 1 or 0.
func (v *FeatureVector) SetBool(name string, value bool) {
	if value {
		v.Set(name, 1)
	} else {
		v.Set(name, 0)
	}
}

// Get returns a feature value; unknown names panic for the same reason Set does.
func (v *FeatureVector) Get(name string) float64 {
	val, ok := v.values[name]
	if !ok {
		panic(fmt.Sprintf("feature %q is not part of the %s schema", name, v.kind))
	}
	return val
}

// Has reports whether the schema contains the named feature.
func (v *FeatureVector) Has(name string) bool {
	_, ok := v.values[name]
	return ok
}

// Active reports whether a boolean-style feature is set.
func (v *FeatureVector) Active(name string) bool {
	return v.Get(name) >= 1
}

// Kind returns the input kind the schema belongs to.
func (v *FeatureVector) Kind() Kind {
	return v.kind
}

// Names returns the schema order. The returned slice is a copy.
func (v *FeatureVector) Names() []string {
	out := make([]string, len(v.names))
	copy(out, v.names)
	return out
}

// Values returns the feature values in schema order.
func (v *FeatureVector) Values() []float64 {
	out := make([]float64, len(v.names))
	for i, n := range v.names {
		out[i] = v.values[n]
	}
	return out
}

// MarshalJSON renders the vector as a name-to-value object.
func (v *FeatureVector) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Map())
}

// Map returns a name-to-value copy, mostly for serialization.
func (v *FeatureVector) Map() map[string]float64 {
	out := make(map[string]float64, len(v.values))
	for k, val := range v.values {
		out[k] = val
	}
	return out
}
