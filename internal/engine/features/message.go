package features

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/rgdevment/scam-shield/internal/domain"
	"github.com/rgdevment/scam-shield/internal/engine/urlcheck"
)

var (
	urlPattern    = regexp.MustCompile(`https?://[^\s<>"']+`)
	domainPattern = regexp.MustCompile(`(?:www\.)?(?:[a-zA-Z0-9-]+\.)+[a-zA-Z]{2,}(?:/[^\s<>"']*)?`)
)

// MessageConfig carries the categorized keyword tables the message
// extractor consults.
type MessageConfig struct {
	// Keywords maps a tactic category to its phrases. Matching is
	// case-insensitive substring matching.
	Keywords map[Category][]string `yaml:"keywords"`
	// LegitimateKeywords are negative indicators common in lawful bulk
	// messaging (opt-out notices and the like).
	LegitimateKeywords []string `yaml:"legitimate_keywords"`
}

// flagged maps categories to the feature flag they switch on.
var flagged = map[Category]string{
	CategoryUrgency:   FeatHasUrgency,
	CategoryRequest:   FeatRequestsAction,
	CategoryFinancial: FeatMentionsMoney,
	CategoryAccount:   FeatMentionsAccount,
	CategoryThreat:    FeatHasThreat,
}

// MessageExtractor derives the message feature vector, invoking the URL
// analyzer for every embedded link. Immutable after construction.
type MessageExtractor struct {
	keywords map[Category][]string
	legit    []string
	urls     *urlcheck.Analyzer
}

// NewMessageExtractor validates the keyword tables and builds the extractor.
// Every flag-bearing category must be present so findings stay traceable to
// features.
func NewMessageExtractor(cfg MessageConfig, urls *urlcheck.Analyzer) (*MessageExtractor, error) {
	if len(cfg.Keywords) == 0 {
		return nil, errors.New("features: scam keyword table is empty")
	}
	for cat := range flagged {
		if len(cfg.Keywords[cat]) == 0 {
			return nil, errors.New("features: keyword category " + string(cat) + " is empty")
		}
	}
	if urls == nil {
		return nil, errors.New("features: url analyzer is required")
	}
	keywords := make(map[Category][]string, len(cfg.Keywords))
	for cat, words := range cfg.Keywords {
		lowered := make([]string, 0, len(words))
		for _, w := range words {
			lowered = append(lowered, strings.ToLower(w))
		}
		keywords[cat] = lowered
	}
	legit := make([]string, 0, len(cfg.LegitimateKeywords))
	for _, w := range cfg.LegitimateKeywords {
		legit = append(legit, strings.ToLower(w))
	}
	return &MessageExtractor{keywords: keywords, legit: legit, urls: urls}, nil
}

// Extract builds the feature vector and the per-URL findings for a message.
// Empty text is valid input and produces an all-zero vector.
func (e *MessageExtractor) Extract(in domain.MessageInput) (*domain.FeatureVector, []domain.URLFinding) {
	v := domain.NewFeatureVector(domain.KindSMS, messageSchema)
	text := in.Text
	lowered := strings.ToLower(text)

	v.Set(FeatLength, float64(len(text)))
	v.Set(FeatWordCount, float64(len(strings.Fields(text))))
	v.Set(FeatExclamations, float64(strings.Count(text, "!")))
	v.Set(FeatQuestions, float64(strings.Count(text, "?")))
	v.Set(FeatUppercaseRatio, uppercaseRatio(text))
	v.Set(FeatDigitCount, float64(countDigits(text)))

	total := 0
	for cat, words := range e.keywords {
		hits := countHits(lowered, words)
		total += hits
		if flag, ok := flagged[cat]; ok {
			v.SetBool(flag, hits > 0)
		}
	}
	v.Set(FeatScamKeywords, float64(total))
	v.Set(FeatLegitKeywords, float64(countHits(lowered, e.legit)))

	urls := ExtractURLs(text)
	findings := e.urls.AnalyzeAll(urls)
	v.SetBool(FeatHasURLs, len(urls) > 0)
	v.Set(FeatURLCount, float64(len(urls)))
	v.Set(FeatAvgURLRisk, meanScore(findings))

	sender := cleanNumber(in.Sender)
	senderDigits := strings.TrimPrefix(sender, "+")
	v.SetBool(FeatSenderNumeric, senderDigits != "" && isAllDigits(senderDigits))
	v.SetBool(FeatSenderShortcode, senderDigits != "" && isAllDigits(senderDigits) && len(senderDigits) <= 6)

	return v, findings
}

// ExtractURLs pulls URLs out of free text: explicit http(s) links first,
// then bare domains, which get an http scheme prepended.
func ExtractURLs(text string) []string {
	urls := urlPattern.FindAllString(text, -1)
	for _, candidate := range domainPattern.FindAllString(text, -1) {
		contained := false
		for _, u := range urls {
			if strings.Contains(u, candidate) {
				contained = true
				break
			}
		}
		if !contained {
			urls = append(urls, "http://"+candidate)
		}
	}
	return urls
}

func countHits(lowered string, words []string) int {
	n := 0
	for _, w := range words {
		if w != "" && strings.Contains(lowered, w) {
			n++
		}
	}
	return n
}

// uppercaseRatio is upper letters over all letters, 0 when the text has no
// letters. Keeps the vector arity fixed: never NaN, never missing.
func uppercaseRatio(text string) float64 {
	letters, upper := 0, 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(upper) / float64(letters)
}

func countDigits(text string) int {
	n := 0
	for _, r := range text {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func meanScore(findings []domain.URLFinding) float64 {
	if len(findings) == 0 {
		return 0
	}
	var sum float64
	for _, f := range findings {
		sum += f.Score
	}
	return sum / float64(len(findings))
}
