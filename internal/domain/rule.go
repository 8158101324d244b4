package domain

import "encoding/json"

// RuleType determines the expected shape of a rule's condition and action
// documents. Shapes are never mixed across types.
type RuleType string

const (
	RuleTypeTiming   RuleType = "timing"
	RuleTypeFormat   RuleType = "format"
	RuleTypePriority RuleType = "priority"
	RuleTypeMetrics  RuleType = "metrics"
)

// AutomationRule is a persisted, user-visible artifact describing a detected
// preference. Condition and Action are open-schema JSON documents whose keys
// depend on Type; they are built from the typed structs below and only
// serialized at the storage boundary.
//
// Applications is owned by the rule-application caller and is only ever
// incremented there; this codebase never decreases it.
type AutomationRule struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Type         RuleType        `json:"type"`
	Condition    json.RawMessage `json:"condition"`
	Action       json.RawMessage `json:"action"`
	Confidence   int             `json:"confidence"` // always clamped to [0,100]
	Applications int             `json:"applications"`
	IsActive     bool            `json:"is_active"`
}

// TimingCondition is the condition document for RuleTypeTiming.
// Day uses time.Weekday numbering (0=Sunday).
type TimingCondition struct {
	Day  int `json:"day"`
	Hour int `json:"hour"`
}

// TimingAction is the action document for RuleTypeTiming.
type TimingAction struct {
	Schedule string `json:"schedule"`
	Notify   bool   `json:"notify"`
}

// FormatCondition is the condition document for RuleTypeFormat.
type FormatCondition struct {
	ReportType string `json:"reportType"`
}

// FormatAction is the action document for RuleTypeFormat.
type FormatAction struct {
	DefaultFormat string `json:"defaultFormat"`
}

// MustJSON marshals a condition/action struct into its persisted document
// form. The input structs cannot fail to marshal.
func MustJSON(v interface{}) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

// ClampConfidence clamps a confidence score to the valid [0,100] range.
func ClampConfidence(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
