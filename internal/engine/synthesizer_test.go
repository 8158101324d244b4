package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/issamHaimour5/ReportPilot-1/internal/domain"
)

func TestSynthesize_TimingThresholdIsStrict(t *testing.T) {
	// 5 eligible events ⇒ confidence exactly 50 ⇒ no rule.
	patterns := map[domain.RuleType]Pattern{
		domain.RuleTypeTiming: {Confidence: 50, Hour: 9, Day: 1},
	}
	assert.Empty(t, synthesize(patterns))

	// 6 eligible events ⇒ confidence 60 ⇒ a rule with that confidence.
	patterns[domain.RuleTypeTiming] = Pattern{Confidence: 60, Hour: 9, Day: 1}
	drafts := synthesize(patterns)

	require.Len(t, drafts, 1)
	draft := drafts[0]
	assert.Equal(t, domain.RuleTypeTiming, draft.Type)
	assert.Equal(t, 60, draft.Confidence)
	assert.Equal(t, 0, draft.Applications)
	assert.True(t, draft.IsActive)
	assert.Contains(t, draft.Description, "Monday")
	assert.Contains(t, draft.Description, "9:00")

	var cond domain.TimingCondition
	require.NoError(t, json.Unmarshal(draft.Condition, &cond))
	assert.Equal(t, domain.TimingCondition{Day: 1, Hour: 9}, cond)

	var action domain.TimingAction
	require.NoError(t, json.Unmarshal(draft.Action, &action))
	assert.Equal(t, domain.TimingAction{Schedule: "auto", Notify: true}, action)
}

func TestSynthesize_FormatRule(t *testing.T) {
	// 4 events with context.format = "pdf" ⇒ confidence 60.
	patterns := map[domain.RuleType]Pattern{
		domain.RuleTypeFormat: {Confidence: 60, Format: "pdf"},
	}

	drafts := synthesize(patterns)

	require.Len(t, drafts, 1)
	draft := drafts[0]
	assert.Equal(t, domain.RuleTypeFormat, draft.Type)
	assert.Equal(t, 60, draft.Confidence)
	assert.Contains(t, draft.Description, "PDF")

	var cond domain.FormatCondition
	require.NoError(t, json.Unmarshal(draft.Condition, &cond))
	assert.Equal(t, "all", cond.ReportType)

	var action domain.FormatAction
	require.NoError(t, json.Unmarshal(draft.Action, &action))
	assert.Equal(t, "pdf", action.DefaultFormat)
}

func TestSynthesize_ConfidenceCappedAtHundred(t *testing.T) {
	patterns := map[domain.RuleType]Pattern{
		domain.RuleTypeTiming: {Confidence: 130, Hour: 9, Day: 1},
	}

	drafts := synthesize(patterns)

	require.Len(t, drafts, 1)
	assert.Equal(t, 100, drafts[0].Confidence)
}

func TestSynthesize_NoPatternsNoDrafts(t *testing.T) {
	assert.Empty(t, synthesize(map[domain.RuleType]Pattern{}))
}
