package domain

import "time"

// BehaviorEvent is an immutable record of one user action with contextual
// metadata. Events are append-only: once written they are never mutated or
// deleted, and their order within the log is insertion order.
type BehaviorEvent struct {
	ID        string                 `json:"id" ch:"event_id"`
	UserID    string                 `json:"user_id" ch:"user_id"`
	Action    string                 `json:"action" ch:"action"`
	Context   map[string]interface{} `json:"context"`
	Timestamp time.Time              `json:"timestamp"`
}

// FormatHint returns the "format" value carried in the event context, if any.
// Only string values count; a numeric or missing format is ignored.
func (e *BehaviorEvent) FormatHint() (string, bool) {
	if e.Context == nil {
		return "", false
	}
	v, ok := e.Context["format"].(string)
	return v, ok
}
