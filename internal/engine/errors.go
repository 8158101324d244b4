package engine

import "fmt"

// ValidationError rejects a track call before any event is appended.
// Handlers surface it as a client error.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s must not be empty", e.Field)
}
