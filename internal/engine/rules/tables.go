package rules

import (
	"github.com/rgdevment/scam-shield/internal/domain"
	"github.com/rgdevment/scam-shield/internal/engine/features"
)

// DefaultCallTable is the shipped call weight table. Declaration order
// doubles as the tie-break order for equally weighted findings.
func DefaultCallTable() WeightTable {
	return WeightTable{
		Version: "call-v1",
		Kind:    domain.KindCall,
		Rules: []Rule{
			{Feature: features.FeatUnknown, Points: 20, Finding: "Number is not in your contacts"},
			{Feature: features.FeatUnknownIntl, Points: 25, Finding: "International call from an unknown number"},
			{Feature: features.FeatRiskyCountry, Points: 30, Finding: "Call originates from a high-risk country"},
			{Feature: features.FeatVeryShortCall, Points: 15, Finding: "Very short call duration (possible robocall)"},
			{Feature: features.FeatExcessiveCalls, Points: 15, Finding: "Excessive call frequency in the past 24 hours"},
			{Feature: features.FeatRepeatedCalls, Points: 10, Finding: "Multiple calls from this number"},
			{Feature: features.FeatRepeatedDigits, Points: 10, Finding: "Number contains repeated digit patterns"},
			{Feature: features.FeatSequentialDigits, Points: 10, Finding: "Number contains sequential digits"},
			{Feature: features.FeatSuspiciousTime, Points: 15, Finding: "Call at unusual time (late night/early morning)"},
			{Feature: features.FeatShortAndRepeated, Points: 20, Finding: "Short repeated calls (screening or harassment pattern)"},
			// Discounts for benign patterns. No finding: absence of risk is
			// not a cause.
			{Feature: features.FeatNormalCall, Unless: features.FeatUnknown, Points: -15},
			{Feature: features.FeatLongCall, Points: -10},
		},
	}
}

// DefaultMessageTable is the shipped message weight table. URL risk is
// absent on purpose: the aggregator blends it from its own weight pool so
// the same signal never counts twice.
func DefaultMessageTable() WeightTable {
	return WeightTable{
		Version: "sms-v1",
		Kind:    domain.KindSMS,
		Rules: []Rule{
			{Feature: features.FeatScamKeywords, PerUnit: true, Points: 10, Cap: 30, Finding: "Contains common scam keywords"},
			{Feature: features.FeatHasUrgency, Points: 15, Finding: "Uses urgent language to pressure immediate action"},
			{Feature: features.FeatRequestsAction, Points: 10, Finding: "Requests immediate action (click, call, or reply)"},
			{Feature: features.FeatMentionsMoney, Points: 15, Finding: "Mentions money, prizes, or payments"},
			{Feature: features.FeatMentionsAccount, Points: 12, Finding: "Mentions financial or account information"},
			{Feature: features.FeatHasThreat, Points: 20, Finding: "Contains threatening language"},
			{Feature: features.FeatExclamations, Over: 2, Points: 10, Finding: "Excessive use of exclamation marks"},
			{Feature: features.FeatUppercaseRatio, Over: 0.3, Points: 10, Finding: "Excessive use of capital letters"},
			{Feature: features.FeatSenderShortcode, Unless: features.FeatLegitKeywords, Points: 10, Finding: "Sent from a short code (common in scams)"},
			{Feature: features.FeatLegitKeywords, Points: -20},
		},
	}
}
