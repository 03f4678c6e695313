package utils

import (
	"fmt"
	"strings"
)

// InputError represents an input validation error
type InputError struct {
	Code    string
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// ValidateNumeric checks a numeric input against optional bounds
func ValidateNumeric(value float64, min, max *float64, field string) error {
	if min != nil && value < *min {
		return &InputError{
			Code:    "OUT_OF_RANGE",
			Message: fmt.Sprintf("%s must be >= %g", field, *min),
		}
	}
	if max != nil && value > *max {
		return &InputError{
			Code:    "OUT_OF_RANGE",
			Message: fmt.Sprintf("%s must be <= %g", field, *max),
		}
	}
	return nil
}

// ValidateText checks a text input for presence and maximum length and
// returns the trimmed value
func ValidateText(value string, maxLength int, field string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", &InputError{
			Code:    "REQUIRED",
			Message: fmt.Sprintf("%s is required", field),
		}
	}
	if maxLength > 0 && len(trimmed) > maxLength {
		return "", &InputError{
			Code:    "TOO_LONG",
			Message: fmt.Sprintf("%s too long (max %d chars)", field, maxLength),
		}
	}
	return trimmed, nil
}
