package engine

import (
	"math"

	"github.com/issamHaimour5/ReportPilot-1/internal/domain"
)

// confidenceUpdate is one pending rule confidence write.
type confidenceUpdate struct {
	RuleID     string
	Confidence int
}

// Weighted average: history dominates, fresh evidence nudges.
const (
	historyWeight = 0.7
	patternWeight = 0.3
)

// reconcile recomputes confidence for every rule whose type has a freshly
// detected pattern. Rules without a matching pattern this pass are left
// untouched; confidence never decays purely from absence of data. Updates
// are emitted only when the computed value differs from the stored one, so
// an unchanged log reconciles to zero writes.
func reconcile(rules []*domain.AutomationRule, patterns map[domain.RuleType]Pattern) []confidenceUpdate {
	var updates []confidenceUpdate

	for _, rule := range rules {
		pattern, ok := patterns[rule.Type]
		if !ok {
			continue
		}

		blended := float64(rule.Confidence)*historyWeight + float64(pattern.Confidence)*patternWeight
		next := domain.ClampConfidence(int(math.Round(blended)))

		if next != rule.Confidence {
			updates = append(updates, confidenceUpdate{RuleID: rule.ID, Confidence: next})
		}
	}

	return updates
}
