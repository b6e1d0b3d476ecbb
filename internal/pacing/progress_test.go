package pacing

import (
	"math"
	"testing"
	"time"

	"github.com/momentumhq/momentum/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name      string
		start     float64
		target    float64
		current   float64
		direction string
		want      float64
	}{
		{"halfway increase", 0, 12, 6, model.DirectionIncrease, 0.5},
		{"complete increase", 0, 10, 10, model.DirectionIncrease, 1},
		{"overshoot clamps to one", 0, 10, 15, model.DirectionIncrease, 1},
		{"regression clamps to zero", 5, 10, 2, model.DirectionIncrease, 0},
		{"halfway decrease", 90, 80, 85, model.DirectionDecrease, 0.5},
		{"decrease moved wrong way", 90, 80, 95, model.DirectionDecrease, 0},
		{"decrease overshoot clamps", 90, 80, 70, model.DirectionDecrease, 1},
		{"zero range is complete", 7, 7, 0, model.DirectionIncrease, 1},
		{"zero range ignores current", 7, 7, 100, model.DirectionDecrease, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &model.Goal{
				StartValue:   tt.start,
				TargetValue:  tt.target,
				CurrentValue: tt.current,
				Direction:    tt.direction,
			}
			got := Progress(g)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Progress() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestProgressAlwaysClamped(t *testing.T) {
	values := []float64{-1000, -1, 0, 0.5, 10, 1000}
	for _, v := range values {
		g := &model.Goal{StartValue: 0, TargetValue: 10, CurrentValue: v, Direction: model.DirectionIncrease}
		got := Progress(g)
		if got < 0 || got > 1 {
			t.Errorf("Progress() with current=%f = %f, outside [0,1]", v, got)
		}
	}
}

func TestProgressAt(t *testing.T) {
	g := &model.Goal{StartValue: 0, TargetValue: 24, CurrentValue: 20, Direction: model.DirectionIncrease}

	if got := ProgressAt(g, 6); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("ProgressAt(6) = %f, want 0.25", got)
	}
	// The override leaves the stored current value untouched.
	if got := Progress(g); math.Abs(got-20.0/24.0) > 1e-9 {
		t.Errorf("Progress() after override = %f, want %f", got, 20.0/24.0)
	}
}

func TestTimeProgress(t *testing.T) {
	start := date(2026, time.January, 6)
	end := date(2026, time.March, 31)

	tests := []struct {
		name string
		now  time.Time
		want float64
	}{
		{"before start", date(2026, time.January, 1), 0},
		{"at start", start, 0},
		{"at end", end, 1},
		{"after end", date(2026, time.June, 1), 1},
		{"mid cycle", date(2026, time.February, 15), 40.0 / 84.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TimeProgress(start, end, tt.now)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("TimeProgress() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestTimeProgressMonotonic(t *testing.T) {
	start := date(2026, time.January, 6)
	end := date(2026, time.March, 31)

	prev := -1.0
	for now := start.AddDate(0, 0, -7); now.Before(end.AddDate(0, 0, 14)); now = now.AddDate(0, 0, 1) {
		got := TimeProgress(start, end, now)
		if got < prev {
			t.Fatalf("TimeProgress decreased at %s: %f < %f", now.Format(time.DateOnly), got, prev)
		}
		prev = got
	}
}

func TestTimeProgressDegenerateWindow(t *testing.T) {
	day := date(2026, time.January, 6)

	if got := TimeProgress(day, day, day); got != 1 {
		t.Errorf("zero-length window: TimeProgress() = %f, want 1", got)
	}
	if got := TimeProgress(day, day.AddDate(0, 0, -7), day); got != 1 {
		t.Errorf("inverted window: TimeProgress() = %f, want 1", got)
	}
}
