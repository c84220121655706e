// Package features turns raw call and message inputs into fixed-shape,
// named feature vectors. The name ordering per kind is the contract any
// fitted predictor is trained against; it is declared once here and
// validated by the predictor adapter, never assumed positionally.
package features

import "github.com/rgdevment/scam-shield/internal/domain"

// Category groups scam keywords by the manipulation tactic they signal.
// Category membership drives the derived flags, not just presence.
type Category string

const (
	CategoryUrgency       Category = "urgency"
	CategoryFinancial     Category = "financial"
	CategoryAccount       Category = "account"
	CategoryThreat        Category = "threat"
	CategoryRequest       Category = "request"
	CategoryTooGood       Category = "too_good_to_be_true"
	CategoryImpersonation Category = "impersonation"
)

// Call feature names, in schema order.
const (
	FeatDuration         = "duration"
	FeatFrequency        = "call_frequency"
	FeatUnknown          = "is_unknown"
	FeatInternational    = "is_international"
	FeatRiskyCountry     = "is_risky_country"
	FeatVeryShortCall    = "very_short_call"
	FeatShortCall        = "short_call"
	FeatNormalCall       = "normal_call"
	FeatLongCall         = "long_call"
	FeatSingleCall       = "single_call"
	FeatRepeatedCalls    = "repeated_calls"
	FeatExcessiveCalls   = "excessive_calls"
	FeatRepeatedDigits   = "has_repeated_digits"
	FeatSequentialDigits = "has_sequential_digits"
	FeatNumberLength     = "number_length"
	FeatTimeRisk         = "time_risk"
	FeatSuspiciousTime   = "suspicious_time"
	FeatUnknownIntl      = "unknown_and_international"
	FeatShortAndRepeated = "short_and_repeated"
)

// Message feature names, in schema order.
const (
	FeatLength          = "length"
	FeatWordCount       = "word_count"
	FeatExclamations    = "exclamation_count"
	FeatQuestions       = "question_count"
	FeatUppercaseRatio  = "uppercase_ratio"
	FeatDigitCount      = "digit_count"
	FeatScamKeywords    = "scam_keyword_count"
	FeatLegitKeywords   = "legitimate_keyword_count"
	FeatHasURLs         = "has_urls"
	FeatURLCount        = "url_count"
	FeatAvgURLRisk      = "avg_url_risk"
	FeatHasUrgency      = "has_urgency"
	FeatRequestsAction  = "requests_action"
	FeatMentionsMoney   = "mentions_money"
	FeatMentionsAccount = "mentions_account"
	FeatHasThreat       = "has_threat"
	FeatSenderNumeric   = "sender_is_numeric"
	FeatSenderShortcode = "sender_is_shortcode"
)

var callSchema = []string{
	FeatDuration, FeatFrequency, FeatUnknown, FeatInternational, FeatRiskyCountry,
	FeatVeryShortCall, FeatShortCall, FeatNormalCall, FeatLongCall,
	FeatSingleCall, FeatRepeatedCalls, FeatExcessiveCalls,
	FeatRepeatedDigits, FeatSequentialDigits, FeatNumberLength,
	FeatTimeRisk, FeatSuspiciousTime,
	FeatUnknownIntl, FeatShortAndRepeated,
}

var messageSchema = []string{
	FeatLength, FeatWordCount, FeatExclamations, FeatQuestions,
	FeatUppercaseRatio, FeatDigitCount,
	FeatScamKeywords, FeatLegitKeywords,
	FeatHasURLs, FeatURLCount, FeatAvgURLRisk,
	FeatHasUrgency, FeatRequestsAction, FeatMentionsMoney,
	FeatMentionsAccount, FeatHasThreat,
	FeatSenderNumeric, FeatSenderShortcode,
}

// CallSchema returns the call feature names in their fixed order.
func CallSchema() []string {
	return append([]string(nil), callSchema...)
}

// MessageSchema returns the message feature names in their fixed order.
func MessageSchema() []string {
	return append([]string(nil), messageSchema...)
}

// SchemaFor returns the schema of the given kind.
func SchemaFor(kind domain.Kind) []string {
	if kind == domain.KindSMS {
		return MessageSchema()
	}
	return CallSchema()
}
