package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/momentumhq/momentum/internal/model"
)

func TestValidateGoalTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{"valid", "Run 120 miles", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too long", strings.Repeat("a", 201), true},
		{"max length", strings.Repeat("a", 200), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGoalTitle(tt.title)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGoalTitle(%q) error = %v, wantErr %v", tt.title, err, tt.wantErr)
			}
		})
	}
}

func TestValidateGoalRange(t *testing.T) {
	tests := []struct {
		name      string
		start     float64
		target    float64
		direction string
		wantErr   bool
	}{
		{"increase valid", 0, 12, model.DirectionIncrease, false},
		{"increase inverted", 12, 0, model.DirectionIncrease, true},
		{"decrease valid", 90, 80, model.DirectionDecrease, false},
		{"decrease inverted", 80, 90, model.DirectionDecrease, true},
		{"equal values allowed", 5, 5, model.DirectionIncrease, false},
		{"unknown direction", 0, 10, "sideways", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGoalRange(tt.start, tt.target, tt.direction)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGoalRange() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCycleDates(t *testing.T) {
	start := time.Date(2026, time.January, 6, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr bool
	}{
		{"valid twelve weeks", start, start.AddDate(0, 0, 84), false},
		{"end before start", start, start.AddDate(0, 0, -7), true},
		{"end equals start", start, start, true},
		{"zero start", time.Time{}, start, true},
		{"over a year", start, start.AddDate(1, 1, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCycleDates(tt.start, tt.end)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCycleDates() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
