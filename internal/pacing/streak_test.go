package pacing

import (
	"testing"
	"time"
)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday maps to itself", date(2026, time.February, 9), date(2026, time.February, 9)},
		{"wednesday maps back", date(2026, time.February, 11), date(2026, time.February, 9)},
		{"sunday maps to prior monday", date(2026, time.February, 15), date(2026, time.February, 9)},
		{"time of day stripped", time.Date(2026, time.February, 12, 18, 30, 0, 0, time.UTC), date(2026, time.February, 9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekStart(tt.in); !got.Equal(tt.want) {
				t.Errorf("WeekStart(%s) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestStreak(t *testing.T) {
	now := date(2026, time.February, 15) // week of Feb 9
	week := func(n int) time.Time {
		return date(2026, time.February, 9).AddDate(0, 0, -7*n)
	}

	tests := []struct {
		name        string
		weeks       []time.Time
		wantStreak  int
		wantCurrent bool
	}{
		{"no check-ins", nil, 0, false},
		{"three consecutive with gap before", []time.Time{week(0), week(1), week(2), week(4)}, 3, true},
		{"current week only", []time.Time{week(0)}, 1, true},
		{"unlogged current week resets the run", []time.Time{week(1), week(2)}, 0, false},
		{"gap breaks run", []time.Time{week(0), week(2), week(3)}, 1, true},
		{"only old check-ins", []time.Time{week(5), week(6)}, 0, false},
		{"future week does not count", []time.Time{week(-1)}, 0, false},
		{"mid-week dates normalize", []time.Time{now, now.AddDate(0, 0, -7)}, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			streak, current := Streak(tt.weeks, now)
			if streak != tt.wantStreak {
				t.Errorf("streak = %d, want %d", streak, tt.wantStreak)
			}
			if current != tt.wantCurrent {
				t.Errorf("currentWeekLogged = %v, want %v", current, tt.wantCurrent)
			}
		})
	}
}
