package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/issamHaimour5/ReportPilot-1/internal/domain"
)

// synthesisThreshold is the strict lower bound a pattern's confidence must
// exceed before it becomes a rule.
const synthesisThreshold = 50

// synthesize turns sufficiently confident patterns into new rule drafts.
// Pattern confidence is capped to 100 on the way in; applications start at
// zero and the rule is born active.
func synthesize(patterns map[domain.RuleType]Pattern) []*domain.AutomationRule {
	var drafts []*domain.AutomationRule

	if p, ok := patterns[domain.RuleTypeTiming]; ok && p.Confidence > synthesisThreshold {
		drafts = append(drafts, &domain.AutomationRule{
			ID:    uuid.NewString(),
			Title: "Optimal Report Timing",
			Description: fmt.Sprintf("User prefers reports on %s at %d:00",
				time.Weekday(p.Day), p.Hour),
			Type:         domain.RuleTypeTiming,
			Condition:    domain.MustJSON(domain.TimingCondition{Day: p.Day, Hour: p.Hour}),
			Action:       domain.MustJSON(domain.TimingAction{Schedule: "auto", Notify: true}),
			Confidence:   domain.ClampConfidence(p.Confidence),
			Applications: 0,
			IsActive:     true,
		})
	}

	if p, ok := patterns[domain.RuleTypeFormat]; ok && p.Confidence > synthesisThreshold {
		drafts = append(drafts, &domain.AutomationRule{
			ID:    uuid.NewString(),
			Title: "Preferred Report Format",
			Description: fmt.Sprintf("User prefers %s format for reports",
				strings.ToUpper(p.Format)),
			Type:         domain.RuleTypeFormat,
			Condition:    domain.MustJSON(domain.FormatCondition{ReportType: "all"}),
			Action:       domain.MustJSON(domain.FormatAction{DefaultFormat: p.Format}),
			Confidence:   domain.ClampConfidence(p.Confidence),
			Applications: 0,
			IsActive:     true,
		})
	}

	return drafts
}
