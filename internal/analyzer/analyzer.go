package analyzer

import (
	"github.com/Sla0ui/linkrisk/internal/detector"
	"github.com/Sla0ui/linkrisk/internal/models"
	"github.com/Sla0ui/linkrisk/internal/normalizer"
)

const (
	maxScore            = 100
	suspiciousBelowSafe = 80
	unsafeBelowSafe     = 50
)

// Analyzer scores URL strings against a rule catalogue. It holds no mutable
// state and is safe for concurrent use.
type Analyzer struct {
	catalogue *detector.Catalogue
}

// New creates an Analyzer over catalogue
func New(catalogue *detector.Catalogue) *Analyzer {
	return &Analyzer{catalogue: catalogue}
}

// Default returns an Analyzer over the built-in catalogue
func Default() *Analyzer {
	return New(detector.Default())
}

// Analyze scores raw with the default analyzer
func Analyze(raw string) models.AnalysisResult {
	return Default().Analyze(raw)
}

// Analyze evaluates every rule against raw in catalogue order. It never fails.
func (a *Analyzer) Analyze(raw string) models.AnalysisResult {
	subject := a.catalogue.Subject(normalizer.Normalize(raw))

	total := 0
	findings := []models.Finding{}
	for _, rule := range a.catalogue.Rules() {
		if !rule.Matches(subject) {
			continue
		}
		total += rule.Weight
		findings = append(findings, models.Finding{
			RuleID:   rule.ID,
			Category: string(rule.Category),
			Weight:   rule.Weight,
			Message:  rule.Message,
		})
	}

	score := min(maxScore, total)
	safePercent := max(0, maxScore-score)

	return models.AnalysisResult{
		Score:       score,
		SafePercent: safePercent,
		Verdict:     VerdictFor(safePercent),
		Findings:    findings,
	}
}

// VerdictFor maps a safe percentage to a verdict; stricter checks override earlier ones
func VerdictFor(safePercent int) models.Verdict {
	verdict := models.VerdictSafe
	if safePercent < suspiciousBelowSafe {
		verdict = models.VerdictSuspicious
	}
	if safePercent < unsafeBelowSafe {
		verdict = models.VerdictUnsafe
	}
	return verdict
}
