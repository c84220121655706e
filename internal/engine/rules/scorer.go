// Package rules computes the heuristic risk contribution from an extracted
// feature vector. Weights live in explicit, versioned tables rather than
// scattered literals, so they are testable and tunable without touching the
// scoring logic.
package rules

import (
	"fmt"
	"math"

	"github.com/rgdevment/scam-shield/internal/domain"
	"github.com/rgdevment/scam-shield/internal/engine/features"
)

// Rule is one additive contribution. Rules are independent of each other;
// interactions exist only as features the extractors materialize.
type Rule struct {
	// Feature names the vector entry that activates the rule.
	Feature string `yaml:"feature"`
	// Over is the exclusive activation threshold. Zero works for boolean
	// features.
	Over float64 `yaml:"over"`
	// Unless names a guard feature; when it is active the rule is skipped.
	Unless string `yaml:"unless,omitempty"`
	// Points are added when the rule activates. For PerUnit rules they are
	// multiplied by the feature value and capped by Cap.
	Points  float64 `yaml:"points"`
	PerUnit bool    `yaml:"per_unit,omitempty"`
	Cap     float64 `yaml:"cap,omitempty"`
	// Finding is the human-readable cause string. Discount rules leave it
	// empty and emit no finding.
	Finding string `yaml:"finding,omitempty"`
}

// WeightTable is the named, versioned set of rules for one input kind.
type WeightTable struct {
	Version string      `yaml:"version"`
	Kind    domain.Kind `yaml:"kind"`
	Rules   []Rule      `yaml:"rules"`
}

// Scorer applies a weight table per kind. The output score is deliberately
// not clamped here: the aggregator wants to see the true magnitude before
// blending.
type Scorer struct {
	tables map[domain.Kind]WeightTable
}

// NewScorer validates the tables against the feature schemas and builds the
// scorer. A rule referencing an unknown feature is an integration error and
// fails here, keeping findings traceable to the vector that scored them.
func NewScorer(tables ...WeightTable) (*Scorer, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("rules: no weight tables configured")
	}
	byKind := make(map[domain.Kind]WeightTable, len(tables))
	for _, table := range tables {
		if len(table.Rules) == 0 {
			return nil, fmt.Errorf("rules: table %s/%s has no rules", table.Kind, table.Version)
		}
		known := make(map[string]struct{})
		for _, name := range features.SchemaFor(table.Kind) {
			known[name] = struct{}{}
		}
		for _, rule := range table.Rules {
			if _, ok := known[rule.Feature]; !ok {
				return nil, fmt.Errorf("rules: table %s/%s references unknown feature %q", table.Kind, table.Version, rule.Feature)
			}
			if rule.Unless != "" {
				if _, ok := known[rule.Unless]; !ok {
					return nil, fmt.Errorf("rules: table %s/%s guard references unknown feature %q", table.Kind, table.Version, rule.Unless)
				}
			}
		}
		if _, dup := byKind[table.Kind]; dup {
			return nil, fmt.Errorf("rules: duplicate table for kind %s", table.Kind)
		}
		byKind[table.Kind] = table
	}
	return &Scorer{tables: byKind}, nil
}

// Score sums the active rules for the vector's kind. Returns the unclamped
// total and the findings with their individual contributions, in table
// declaration order.
func (s *Scorer) Score(v *domain.FeatureVector) (float64, []domain.Finding) {
	table, ok := s.tables[v.Kind()]
	if !ok {
		return 0, nil
	}

	var total float64
	var findings []domain.Finding
	for _, rule := range table.Rules {
		value := v.Get(rule.Feature)
		if value <= rule.Over {
			continue
		}
		if rule.Unless != "" && v.Active(rule.Unless) {
			continue
		}
		points := rule.Points
		if rule.PerUnit {
			points = rule.Points * value
			if rule.Cap > 0 {
				points = math.Min(points, rule.Cap)
			}
		}
		total += points
		if rule.Finding != "" {
			findings = append(findings, domain.Finding{Cause: rule.Finding, Contribution: points})
		}
	}
	return total, findings
}

// Version returns the version string of the table for a kind, for reporting.
func (s *Scorer) Version(kind domain.Kind) string {
	return s.tables[kind].Version
}
