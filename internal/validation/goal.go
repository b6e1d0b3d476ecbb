package validation

import (
	"strings"

	"github.com/momentumhq/momentum/internal/model"
)

// ValidateGoalTitle validates a goal title
func ValidateGoalTitle(title string) error {
	trimmed := strings.TrimSpace(title)

	if trimmed == "" {
		return failf("title is required")
	}

	if len(trimmed) > 200 {
		return failf("title is too long (max 200 characters)")
	}

	return nil
}

// ValidateGoalRange validates a goal's value range and direction
func ValidateGoalRange(startValue, targetValue float64, direction string) error {
	if direction != model.DirectionIncrease && direction != model.DirectionDecrease {
		return failf("direction must be increase or decrease")
	}

	if direction == model.DirectionIncrease && targetValue < startValue {
		return failf("target value must be at or above start value for an increasing goal")
	}

	if direction == model.DirectionDecrease && targetValue > startValue {
		return failf("target value must be at or below start value for a decreasing goal")
	}

	return nil
}
