package pacing

import (
	"sort"
	"time"

	"github.com/momentumhq/momentum/internal/model"
)

// MaxFocusGoals caps the number of behind-pace goals surfaced on the
// dashboard.
const MaxFocusGoals = 3

// FocusGoal pairs a goal with its pacing numbers for display.
type FocusGoal struct {
	Goal     *model.Goal `json:"goal"`
	Progress float64     `json:"progress"`
	Expected float64     `json:"expected"`
	Gap      float64     `json:"gap"`
}

// FocusGoals ranks the active goals of a cycle by how far behind pace
// they are. Only goals with a positive gap (expected ahead of actual)
// are included, worst first, truncated to MaxFocusGoals. Ties keep the
// caller's fetch order.
func FocusGoals(goals []*model.Goal, cycle *model.Cycle, now time.Time) []FocusGoal {
	expected := TimeProgress(cycle.StartDate, cycle.EndDate, now)

	var behind []FocusGoal
	for _, g := range goals {
		if g.IsArchived() {
			continue
		}
		actual := Progress(g)
		gap := expected - actual
		if gap <= 0 {
			continue
		}
		behind = append(behind, FocusGoal{
			Goal:     g,
			Progress: actual,
			Expected: expected,
			Gap:      gap,
		})
	}

	sort.SliceStable(behind, func(i, j int) bool {
		return behind[i].Gap > behind[j].Gap
	})

	if len(behind) > MaxFocusGoals {
		behind = behind[:MaxFocusGoals]
	}
	return behind
}
