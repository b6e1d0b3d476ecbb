// Package pacing computes progress ratios, pacing deltas, streaks, and
// score aggregates from goal and check-in snapshots. All functions are
// pure: they operate on values fetched by the caller and never touch
// storage or the clock themselves.
package pacing

import (
	"math"
	"time"

	"github.com/momentumhq/momentum/internal/model"
)

// Progress converts a goal's start/current/target values into a clamped
// [0,1] completion ratio. A goal whose start equals its target is
// treated as complete regardless of current value.
func Progress(goal *model.Goal) float64 {
	return ProgressAt(goal, goal.CurrentValue)
}

// ProgressAt computes the completion ratio using value in place of the
// goal's stored current value. Check-in history replays use this with
// each week's recorded value.
func ProgressAt(goal *model.Goal, value float64) float64 {
	total := math.Abs(goal.TargetValue - goal.StartValue)
	if total == 0 {
		return 1
	}

	var completed float64
	if goal.Direction == model.DirectionDecrease {
		completed = goal.StartValue - value
	} else {
		completed = value - goal.StartValue
	}

	return clamp(completed/total, 0, 1)
}

// TimeProgress converts a cycle's date window into a clamped [0,1]
// elapsed-time ratio at now. A zero-length or inverted window is
// treated as fully elapsed, matching the degenerate-range policy of
// Progress.
func TimeProgress(start, end, now time.Time) float64 {
	total := end.Sub(start)
	if total <= 0 {
		return 1
	}

	elapsed := now.Sub(start)
	return clamp(float64(elapsed)/float64(total), 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
