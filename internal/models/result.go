package models

import (
	"fmt"
	"strings"
	"time"
)

// Verdict is the overall classification of a URL
type Verdict string

const (
	VerdictSafe       Verdict = "SAFE"
	VerdictSuspicious Verdict = "SUSPICIOUS"
	VerdictUnsafe     Verdict = "UNSAFE"
)

// Verdicts lists every verdict from least to most severe
var Verdicts = []Verdict{VerdictSafe, VerdictSuspicious, VerdictUnsafe}

// Severity ranks the verdict; higher is worse
func (v Verdict) Severity() int {
	switch v {
	case VerdictSuspicious:
		return 1
	case VerdictUnsafe:
		return 2
	default:
		return 0
	}
}

// AtLeast reports whether v is as severe as other or worse
func (v Verdict) AtLeast(other Verdict) bool {
	return v.Severity() >= other.Severity()
}

// ParseVerdict accepts a verdict name in any case
func ParseVerdict(s string) (Verdict, error) {
	v := Verdict(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Verdicts {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown verdict %q (want safe, suspicious or unsafe)", s)
}

// Finding explains one fired rule
type Finding struct {
	RuleID   string `json:"rule_id"`
	Category string `json:"category"`
	Weight   int    `json:"weight"`
	Message  string `json:"message"`
}

// AnalysisResult is the outcome of analyzing one URL string
type AnalysisResult struct {
	Score       int       `json:"score"`
	SafePercent int       `json:"safe_percent"`
	Verdict     Verdict   `json:"verdict"`
	Findings    []Finding `json:"findings"`
}

// Messages returns the finding messages in order
func (r AnalysisResult) Messages() []string {
	messages := make([]string, len(r.Findings))
	for i, f := range r.Findings {
		messages[i] = f.Message
	}
	return messages
}

// ScanRecord is one analyzed line of a batch scan
type ScanRecord struct {
	URL               string         `json:"url"`
	Host              string         `json:"host"`
	RegistrableDomain string         `json:"registrable_domain,omitempty"`
	Result            AnalysisResult `json:"result"`
	CheckedAt         time.Time      `json:"checked_at"`
}
