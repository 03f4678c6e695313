package services

import "fmt"

// ValidationError represents bad input: non-positive routing time, malformed
// priority, missing required data. No mutation happens when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NotFoundError represents an unknown row identifier or entity key
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

// InvalidTransitionError names the (action, current status) pair that made a
// lifecycle call inapplicable
type InvalidTransitionError struct {
	Action string
	Status string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s an order with status %q", e.Action, e.Status)
}
