package features

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/rgdevment/scam-shield/internal/domain"
)

// CallConfig is the fixed lookup data the call extractor consults.
type CallConfig struct {
	// RiskyCallingCodes are E.164 calling codes (without "+") commonly seen
	// in scam call campaigns.
	RiskyCallingCodes []string `yaml:"risky_calling_codes"`
	// HomeCallingCode is the code considered domestic.
	HomeCallingCode string `yaml:"home_calling_code"`
}

// CallExtractor derives the call feature vector. Pure function of its input:
// no clock reads, no hidden state, safe for concurrent use.
type CallExtractor struct {
	riskyCodes []string // sorted longest-first for prefix matching
	home       string
}

// NewCallExtractor validates the country table and builds the extractor.
func NewCallExtractor(cfg CallConfig) (*CallExtractor, error) {
	if len(cfg.RiskyCallingCodes) == 0 {
		return nil, errors.New("features: risky calling-code table is empty")
	}
	if cfg.HomeCallingCode == "" {
		return nil, errors.New("features: home calling code is not configured")
	}
	codes := append([]string(nil), cfg.RiskyCallingCodes...)
	sort.Slice(codes, func(i, j int) bool { return len(codes[i]) > len(codes[j]) })
	return &CallExtractor{riskyCodes: codes, home: cfg.HomeCallingCode}, nil
}

// Extract builds the feature vector for one call. Numbers that cannot be
// parsed for a country code are treated as domestic, never as an error.
func (e *CallExtractor) Extract(in domain.CallInput) *domain.FeatureVector {
	v := domain.NewFeatureVector(domain.KindCall, callSchema)

	duration := in.Duration
	if duration < 0 {
		duration = 0
	}
	frequency := in.Frequency
	if frequency < 0 {
		frequency = 0
	}

	clean := cleanNumber(in.PhoneNumber)
	digits := strings.TrimPrefix(strings.TrimPrefix(clean, "+"), "00")

	code := e.callingCode(in.PhoneNumber, clean)
	international := code != "" && code != e.home
	riskyCountry := false
	for _, risky := range e.riskyCodes {
		if code == risky {
			riskyCountry = true
			break
		}
	}

	v.Set(FeatDuration, float64(duration))
	v.Set(FeatFrequency, float64(frequency))
	v.SetBool(FeatUnknown, in.Unknown)
	v.SetBool(FeatInternational, international)
	v.SetBool(FeatRiskyCountry, riskyCountry)

	// Duration buckets: mutually exclusive, exactly one true for any
	// non-negative duration.
	v.SetBool(FeatVeryShortCall, duration < 10)
	v.SetBool(FeatShortCall, duration >= 10 && duration < 30)
	v.SetBool(FeatNormalCall, duration >= 30 && duration < 300)
	v.SetBool(FeatLongCall, duration >= 300)

	// Frequency buckets: monotonic, excessive implies repeated.
	v.SetBool(FeatSingleCall, frequency == 1)
	v.SetBool(FeatRepeatedCalls, frequency >= 2)
	v.SetBool(FeatExcessiveCalls, frequency >= 5)

	v.SetBool(FeatRepeatedDigits, hasRepeatedRun(digits, 3))
	v.SetBool(FeatSequentialDigits, hasSequentialRun(digits, 3))
	v.Set(FeatNumberLength, float64(len(clean)))

	timeRisk := timeRiskFor(in.TimeOfDay)
	v.Set(FeatTimeRisk, float64(timeRisk))
	v.SetBool(FeatSuspiciousTime, timeRisk >= 3)

	v.SetBool(FeatUnknownIntl, in.Unknown && international)
	v.SetBool(FeatShortAndRepeated, duration < 30 && frequency >= 2)

	return v
}

// callingCode resolves the calling code of a number, or "" for numbers with
// no international prefix. phonenumbers does the heavy lifting; numbers it
// rejects fall back to prefix matching against the configured tables.
func (e *CallExtractor) callingCode(raw, clean string) string {
	var digits string
	switch {
	case strings.HasPrefix(clean, "+"):
		digits = clean[1:]
	case strings.HasPrefix(clean, "00") && len(clean) > 10:
		digits = clean[2:]
	default:
		return ""
	}

	if num, err := phonenumbers.Parse(raw, ""); err == nil && num.GetCountryCode() != 0 {
		return strconv.Itoa(int(num.GetCountryCode()))
	}
	for _, code := range e.riskyCodes {
		if strings.HasPrefix(digits, code) {
			return code
		}
	}
	if strings.HasPrefix(digits, e.home) {
		return e.home
	}
	if len(digits) >= 3 {
		return digits[:3]
	}
	return digits
}

func cleanNumber(number string) string {
	replacer := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")
	return replacer.Replace(strings.TrimSpace(number))
}

// hasRepeatedRun reports a run of the same digit of at least n.
func hasRepeatedRun(digits string, n int) bool {
	run := 0
	var prev rune
	for _, r := range digits {
		if r < '0' || r > '9' {
			run = 0
			continue
		}
		if r == prev && run > 0 {
			run++
		} else {
			run = 1
		}
		prev = r
		if run >= n {
			return true
		}
	}
	return false
}

// hasSequentialRun reports an ascending or descending digit run of at
// least n, e.g. "123" or "765".
func hasSequentialRun(digits string, n int) bool {
	asc, desc := 0, 0
	var prev rune
	seen := false
	for _, r := range digits {
		if r < '0' || r > '9' {
			asc, desc, seen = 0, 0, false
			continue
		}
		if seen && r == prev+1 {
			asc++
		} else {
			asc = 1
		}
		if seen && r == prev-1 {
			desc++
		} else {
			desc = 1
		}
		prev = r
		seen = true
		if asc >= n || desc >= n {
			return true
		}
	}
	return false
}

// timeRiskFor scores how far the bucket sits from business hours. Unknown
// buckets read as a middle-of-the-road 2.
func timeRiskFor(bucket domain.TimeOfDay) int {
	switch bucket {
	case domain.TimeBusiness:
		return 1
	case domain.TimeEvening:
		return 2
	case domain.TimeNight, domain.TimeMorning:
		return 3
	default:
		return 2
	}
}
