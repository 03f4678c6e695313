package services

import "strings"

// Canonical priority values. Historically the input data carried 'A', 0,
// 'Urgent', None and bare numbers interchangeably; ingestion collapses all of
// them onto this closed set.
const (
	PriorityUrgent = "Urgent"
	PriorityA      = "A"
	PriorityB      = "B"
	PriorityC      = "C"
)

// lowestUrgency sorts missing/none priorities after everything else
const lowestUrgency = 999

// ParsePriority normalizes a raw priority value onto the closed enum.
// Empty/nil means no priority. "0" is a legacy alias for Urgent.
func ParsePriority(raw *string) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return nil, nil
	}
	var p string
	switch strings.ToLower(s) {
	case "urgent", "0":
		p = PriorityUrgent
	case "a", "1":
		p = PriorityA
	case "b", "2":
		p = PriorityB
	case "c", "3":
		p = PriorityC
	default:
		return nil, &ValidationError{Field: "priority", Reason: "must be one of Urgent, A, B, C or empty"}
	}
	return &p, nil
}

// PriorityKey maps a canonical priority to its sort ordinal: Urgent first,
// then A, B, C; anything else sorts last.
func PriorityKey(p *string) int {
	if p == nil {
		return lowestUrgency
	}
	switch *p {
	case PriorityUrgent:
		return 0
	case PriorityA:
		return 1
	case PriorityB:
		return 2
	case PriorityC:
		return 3
	}
	return lowestUrgency
}
