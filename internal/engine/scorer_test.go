package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/issamHaimour5/ReportPilot-1/internal/domain"
)

func timingRule(id string, confidence int) *domain.AutomationRule {
	return &domain.AutomationRule{
		ID:         id,
		Title:      "Optimal Report Timing",
		Type:       domain.RuleTypeTiming,
		Confidence: confidence,
		IsActive:   true,
	}
}

func TestReconcile_WeightedAverage(t *testing.T) {
	rules := []*domain.AutomationRule{timingRule("r1", 80)}
	patterns := map[domain.RuleType]Pattern{
		domain.RuleTypeTiming: {Confidence: 40},
	}

	updates := reconcile(rules, patterns)

	// round(80*0.7 + 40*0.3) = round(68) = 68
	assert.Len(t, updates, 1)
	assert.Equal(t, "r1", updates[0].RuleID)
	assert.Equal(t, 68, updates[0].Confidence)
}

func TestReconcile_ClampsToHundred(t *testing.T) {
	rules := []*domain.AutomationRule{timingRule("r1", 95)}
	patterns := map[domain.RuleType]Pattern{
		// Pattern confidence is uncapped upstream (subset*10 can exceed 100).
		domain.RuleTypeTiming: {Confidence: 500},
	}

	updates := reconcile(rules, patterns)

	assert.Len(t, updates, 1)
	assert.Equal(t, 100, updates[0].Confidence)
}

func TestReconcile_NoWriteWhenUnchanged(t *testing.T) {
	// round(60*0.7 + 60*0.3) = 60: the value does not move, so no update
	// is emitted and a second pass over an unchanged log is a no-op.
	rules := []*domain.AutomationRule{timingRule("r1", 60)}
	patterns := map[domain.RuleType]Pattern{
		domain.RuleTypeTiming: {Confidence: 60},
	}

	assert.Empty(t, reconcile(rules, patterns))
}

func TestReconcile_SkipsRulesWithoutPattern(t *testing.T) {
	rules := []*domain.AutomationRule{
		timingRule("r1", 80),
		{ID: "r2", Type: domain.RuleTypeFormat, Confidence: 70},
		{ID: "r3", Type: domain.RuleTypePriority, Confidence: 30},
	}
	patterns := map[domain.RuleType]Pattern{
		domain.RuleTypeTiming: {Confidence: 40},
	}

	updates := reconcile(rules, patterns)

	// Absence of a pattern never decays confidence.
	assert.Len(t, updates, 1)
	assert.Equal(t, "r1", updates[0].RuleID)
}

func TestReconcile_ConfidenceStaysInRangeOverManyPasses(t *testing.T) {
	rule := timingRule("r1", 10)
	patterns := map[domain.RuleType]Pattern{
		domain.RuleTypeTiming: {Confidence: 990},
	}

	for i := 0; i < 50; i++ {
		updates := reconcile([]*domain.AutomationRule{rule}, patterns)
		if len(updates) == 0 {
			break
		}
		rule.Confidence = updates[0].Confidence
		assert.GreaterOrEqual(t, rule.Confidence, 0)
		assert.LessOrEqual(t, rule.Confidence, 100)
	}

	assert.Equal(t, 100, rule.Confidence)
}
