// Package urlcheck performs static, lexical URL risk analysis. It never
// touches the network: live-fetching a suspect URL is out of scope and would
// introduce unbounded latency and safety concerns.
package urlcheck

import (
	"errors"
	"fmt"
	"math"
	"net"
	"net/url"
	"strings"

	"github.com/rgdevment/scam-shield/internal/domain"
)

// Weighted contributions per check, clamped to [0,100] after summing.
const (
	pointsIPLiteral    = 30
	pointsMissingHTTPS = 15
	pointsShortener    = 25
	pointsRiskyTLD     = 25
	pointsSubdomains   = 20
	pointsKeyword      = 10 // per keyword found
	pointsAtSymbol     = 35
	pointsHyphens      = 15
	pointsDigit        = 10 // per digit in the registrable label
	pointsPort         = 20
	pointsLongHost     = 15
	pointsLongPath     = 10
	pointsManyParams   = 15
	trustedDiscount    = 30
)

// Config carries the lookup tables the analyzer consults. They are fixed
// data injected at construction time, never process-wide mutable state.
type Config struct {
	Shorteners         []string `yaml:"shorteners"`
	RiskyTLDs          []string `yaml:"risky_tlds"`
	SuspiciousKeywords []string `yaml:"suspicious_keywords"`
	TrustedDomains     []string `yaml:"trusted_domains"`
}

// Analyzer evaluates URLs against its configured tables. Safe for
// concurrent use: all state is immutable after construction.
type Analyzer struct {
	shorteners map[string]struct{}
	riskyTLDs  map[string]struct{}
	keywords   []string
	trusted    map[string]struct{}
}

// New validates the tables and builds an analyzer. Empty tables are an
// integration error and fail here, before any analysis runs.
func New(cfg Config) (*Analyzer, error) {
	if len(cfg.Shorteners) == 0 {
		return nil, errors.New("urlcheck: shortener table is empty")
	}
	if len(cfg.RiskyTLDs) == 0 {
		return nil, errors.New("urlcheck: risky TLD table is empty")
	}
	if len(cfg.SuspiciousKeywords) == 0 {
		return nil, errors.New("urlcheck: suspicious keyword table is empty")
	}
	a := &Analyzer{
		shorteners: toSet(cfg.Shorteners),
		riskyTLDs:  toSet(cfg.RiskyTLDs),
		keywords:   append([]string(nil), cfg.SuspiciousKeywords...),
		trusted:    toSet(cfg.TrustedDomains),
	}
	return a, nil
}

// Analyze accepts any string. Input that does not parse as a URL degrades to
// a maximal-suspicion malformed finding rather than an error.
func (a *Analyzer) Analyze(raw string) domain.URLFinding {
	finding := domain.URLFinding{URL: raw}

	trimmed := strings.TrimSpace(raw)
	withScheme := trimmed
	lower := strings.ToLower(trimmed)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		withScheme = "http://" + trimmed
	}

	parsed, err := url.Parse(withScheme)
	if err != nil || trimmed == "" || parsed.Hostname() == "" {
		finding.Malformed = true
		finding.Score = 100
		finding.Factors = append(finding.Factors, "URL could not be parsed")
		return finding
	}

	host := strings.ToLower(parsed.Hostname())
	var score float64
	add := func(points float64, factor string) {
		score += points
		finding.Factors = append(finding.Factors, factor)
	}

	if isIPLiteral(host) {
		finding.IPLiteral = true
		add(pointsIPLiteral, "Uses IP address instead of domain name")
	}
	if parsed.Scheme != "https" {
		finding.MissingHTTPS = true
		add(pointsMissingHTTPS, "Not using secure HTTPS protocol")
	}

	registrable := registrableDomain(host)
	if _, ok := a.shorteners[registrable]; ok {
		finding.Shortener = true
		add(pointsShortener, "Uses URL shortening service (hides destination)")
	}
	if tld := lastLabel(host); !finding.IPLiteral {
		if _, ok := a.riskyTLDs[tld]; ok {
			finding.RiskyTLD = true
			add(pointsRiskyTLD, fmt.Sprintf("Uses risky top-level domain (.%s)", tld))
		}
	}

	if hits := a.keywordHits(strings.ToLower(withScheme)); len(hits) > 0 {
		finding.SuspiciousKeyword = true
		add(float64(len(hits))*pointsKeyword, "Contains suspicious keywords: "+strings.Join(hits, ", "))
	}

	if len(host) > 40 {
		add(pointsLongHost, "Unusually long domain name")
	}
	if subs := subdomainLabels(host); len(subs) > 2 {
		finding.ExcessiveSubdomains = true
		add(pointsSubdomains, fmt.Sprintf("Multiple subdomains detected (%d)", len(subs)))
	}
	if strings.Contains(trimmed, "@") {
		finding.AtSymbol = true
		add(pointsAtSymbol, "Contains @ symbol (potential domain masking)")
	}
	if strings.Count(host, "-") > 2 {
		finding.ExcessiveHyphens = true
		add(pointsHyphens, "Excessive hyphens in domain")
	}
	if !finding.IPLiteral {
		if n := digitCount(brandLabel(host)); n > 0 {
			add(float64(n)*pointsDigit, "Contains numbers in domain name")
		}
	}
	if len(parsed.Path) > 100 {
		add(pointsLongPath, "Unusually long URL path")
	}
	if params := parsed.Query(); len(params) > 5 {
		add(pointsManyParams, fmt.Sprintf("Many query parameters (%d)", len(params)))
	}
	if port := parsed.Port(); port != "" && port != "80" && port != "443" {
		finding.NonstandardPort = true
		add(pointsPort, "Uses non-standard port: "+port)
	}

	if _, ok := a.trusted[registrable]; ok {
		finding.Trusted = true
		score = math.Max(0, score-trustedDiscount)
		finding.Factors = append(finding.Factors, "Domain is on trusted list")
	}

	finding.Score = math.Min(100, math.Max(0, score))
	return finding
}

// AnalyzeAll analyzes every URL, preserving input order. A malformed entry
// degrades to a high-risk finding instead of aborting the batch.
func (a *Analyzer) AnalyzeAll(raws []string) []domain.URLFinding {
	findings := make([]domain.URLFinding, 0, len(raws))
	for _, raw := range raws {
		findings = append(findings, a.Analyze(raw))
	}
	return findings
}

func (a *Analyzer) keywordHits(lowered string) []string {
	var hits []string
	for _, kw := range a.keywords {
		if strings.Contains(lowered, kw) {
			hits = append(hits, kw)
		}
	}
	return hits
}

func isIPLiteral(host string) bool {
	return net.ParseIP(host) != nil
}

// registrableDomain approximates the effective domain as the last two
// labels, e.g. "login.secure.bank.tk" -> "bank.tk".
func registrableDomain(host string) string {
	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return host
	}
	return strings.Join(labels[len(labels)-2:], ".")
}

// brandLabel is the label scammers typo-squat, e.g. "amaz0n" in
// "www.amaz0n-security.com".
func brandLabel(host string) string {
	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return host
	}
	return labels[len(labels)-2]
}

func subdomainLabels(host string) []string {
	labels := strings.Split(host, ".")
	if len(labels) <= 2 {
		return nil
	}
	return labels[:len(labels)-2]
}

func lastLabel(host string) string {
	labels := strings.Split(host, ".")
	return labels[len(labels)-1]
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[strings.ToLower(strings.TrimSpace(item))] = struct{}{}
	}
	return set
}
