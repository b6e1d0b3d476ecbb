package validation

import (
	"strings"
	"time"
)

// ValidateCycleName validates a cycle name
func ValidateCycleName(name string) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return failf("name is required")
	}

	if len(trimmed) > 100 {
		return failf("name is too long (max 100 characters)")
	}

	return nil
}

// ValidateCycleDates validates a cycle's date window
func ValidateCycleDates(startDate, endDate time.Time) error {
	if startDate.IsZero() || endDate.IsZero() {
		return failf("start and end dates are required")
	}

	if !endDate.After(startDate) {
		return failf("end date must be after start date")
	}

	if endDate.Sub(startDate) > 366*24*time.Hour {
		return failf("cycle cannot be longer than one year")
	}

	return nil
}
