// Package engine fuses rule-based heuristics, an optional fitted predictor
// and URL sub-analysis into one calibrated, explainable risk verdict.
package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/rgdevment/scam-shield/internal/engine/features"
	"github.com/rgdevment/scam-shield/internal/engine/rules"
	"github.com/rgdevment/scam-shield/internal/engine/urlcheck"
)

// Config bundles every lookup table the engine consults. All of it is data,
// injected at construction time; components never read process-wide state.
type Config struct {
	URL     urlcheck.Config        `yaml:"url"`
	Call    features.CallConfig    `yaml:"call"`
	Message features.MessageConfig `yaml:"message"`
	Blend   BlendWeights           `yaml:"blend"`
	// Weight tables default to the shipped versions when empty.
	CallTable    *rules.WeightTable `yaml:"call_table,omitempty"`
	MessageTable *rules.WeightTable `yaml:"message_table,omitempty"`
}

// DefaultConfig returns the shipped tables.
func DefaultConfig() Config {
	return Config{
		URL: urlcheck.Config{
			Shorteners: []string{
				"bit.ly", "tinyurl.com", "goo.gl", "ow.ly", "t.co",
				"is.gd", "buff.ly", "adf.ly", "bit.do", "short.link",
			},
			RiskyTLDs: []string{"tk", "ml", "ga", "cf", "gq", "xyz", "top"},
			SuspiciousKeywords: []string{
				"verify", "account", "secure", "update", "confirm", "login",
				"banking", "password", "suspend", "limited", "unusual",
				"click", "urgent", "alert", "winner", "prize", "reward",
				"free", "claim", "refund", "tax", "paypal", "amazon",
			},
			TrustedDomains: []string{
				"google.com", "facebook.com", "amazon.com", "apple.com",
				"microsoft.com", "linkedin.com", "twitter.com", "instagram.com",
				"youtube.com", "wikipedia.org", "github.com",
			},
		},
		Call: features.CallConfig{
			// Calling codes commonly seen in scam call campaigns.
			RiskyCallingCodes: []string{"375", "371", "254", "234", "233", "880", "92", "62", "84"},
			HomeCallingCode:   "1",
		},
		Message: features.MessageConfig{
			Keywords: map[features.Category][]string{
				features.CategoryUrgency: {
					"urgent", "immediately", "act now", "limited time",
					"expires", "hurry", "don't delay", "last chance", "final notice",
				},
				features.CategoryFinancial: {
					"refund", "rebate", "prize", "winner", "congratulations",
					"cash", "money", "payment", "$",
				},
				features.CategoryAccount: {
					"account", "bank", "card", "password",
					"verify account", "confirm identity", "update payment",
				},
				features.CategoryThreat: {
					"legal action", "arrest", "warrant", "law enforcement",
					"suspend", "terminate", "penalties", "locked", "blocked",
				},
				features.CategoryRequest: {
					"click", "reply", "confirm", "verify", "validate",
				},
				features.CategoryTooGood: {
					"free", "gift card", "cash prize", "selected", "chosen",
					"inheritance", "million",
				},
				features.CategoryImpersonation: {
					"paypal", "amazon", "irs", "government", "federal",
					"social security", "medicare",
				},
			},
			LegitimateKeywords: []string{
				"unsubscribe", "opt-out", "terms and conditions", "privacy policy",
			},
		},
		Blend: DefaultBlendWeights(),
	}
}

// LoadConfig reads a YAML table file and merges it over the defaults.
// Sections the file omits keep their shipped values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("engine: failed to read config file: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return cfg, fmt.Errorf("engine: failed to parse config file: %w", err)
	}

	if len(file.URL.Shorteners) > 0 {
		cfg.URL.Shorteners = file.URL.Shorteners
	}
	if len(file.URL.RiskyTLDs) > 0 {
		cfg.URL.RiskyTLDs = file.URL.RiskyTLDs
	}
	if len(file.URL.SuspiciousKeywords) > 0 {
		cfg.URL.SuspiciousKeywords = file.URL.SuspiciousKeywords
	}
	if len(file.URL.TrustedDomains) > 0 {
		cfg.URL.TrustedDomains = file.URL.TrustedDomains
	}
	if len(file.Call.RiskyCallingCodes) > 0 {
		cfg.Call.RiskyCallingCodes = file.Call.RiskyCallingCodes
	}
	if file.Call.HomeCallingCode != "" {
		cfg.Call.HomeCallingCode = file.Call.HomeCallingCode
	}
	if len(file.Message.Keywords) > 0 {
		cfg.Message.Keywords = file.Message.Keywords
	}
	if len(file.Message.LegitimateKeywords) > 0 {
		cfg.Message.LegitimateKeywords = file.Message.LegitimateKeywords
	}
	if file.Blend != (BlendWeights{}) {
		cfg.Blend = file.Blend
	}
	cfg.CallTable = file.CallTable
	cfg.MessageTable = file.MessageTable

	return cfg, nil
}
