package pacing

import (
	"math"
	"testing"
	"time"

	"github.com/momentumhq/momentum/internal/model"
)

func testCycle() *model.Cycle {
	return &model.Cycle{
		StartDate: date(2026, time.January, 6),
		EndDate:   date(2026, time.March, 31),
	}
}

func incGoal(id string, start, target, current float64) *model.Goal {
	return &model.Goal{
		ID:           id,
		StartValue:   start,
		TargetValue:  target,
		CurrentValue: current,
		Direction:    model.DirectionIncrease,
	}
}

func TestFocusGoalsExcludesOnPace(t *testing.T) {
	cycle := testCycle()
	now := date(2026, time.February, 15) // expected ≈ 0.476

	goals := []*model.Goal{
		incGoal("ahead", 0, 12, 6),   // progress 0.5, ahead of pace
		incGoal("behind", 0, 24, 2),  // progress ≈ 0.083, gap ≈ 0.39
		incGoal("done", 0, 10, 10),   // complete
		incGoal("stalled", 0, 10, 0), // gap ≈ 0.476
	}

	focus := FocusGoals(goals, cycle, now)
	if len(focus) != 2 {
		t.Fatalf("len(focus) = %d, want 2", len(focus))
	}
	if focus[0].Goal.ID != "stalled" || focus[1].Goal.ID != "behind" {
		t.Errorf("focus order = [%s, %s], want [stalled, behind]", focus[0].Goal.ID, focus[1].Goal.ID)
	}
	for _, f := range focus {
		if f.Gap <= 0 {
			t.Errorf("goal %s has gap %f, want > 0", f.Goal.ID, f.Gap)
		}
	}
	if math.Abs(focus[1].Gap-(40.0/84.0-2.0/24.0)) > 1e-9 {
		t.Errorf("gap for behind = %f, want %f", focus[1].Gap, 40.0/84.0-2.0/24.0)
	}
}

func TestFocusGoalsTruncatesToThree(t *testing.T) {
	cycle := testCycle()
	now := date(2026, time.March, 1)

	goals := []*model.Goal{
		incGoal("a", 0, 100, 0),
		incGoal("b", 0, 100, 5),
		incGoal("c", 0, 100, 10),
		incGoal("d", 0, 100, 15),
		incGoal("e", 0, 100, 20),
	}

	focus := FocusGoals(goals, cycle, now)
	if len(focus) != MaxFocusGoals {
		t.Fatalf("len(focus) = %d, want %d", len(focus), MaxFocusGoals)
	}
	for i := 1; i < len(focus); i++ {
		if focus[i].Gap > focus[i-1].Gap {
			t.Errorf("focus not sorted descending at %d: %f > %f", i, focus[i].Gap, focus[i-1].Gap)
		}
	}
	if focus[0].Goal.ID != "a" {
		t.Errorf("worst goal = %s, want a", focus[0].Goal.ID)
	}
}

func TestFocusGoalsStableForEqualGaps(t *testing.T) {
	cycle := testCycle()
	now := date(2026, time.February, 15)

	goals := []*model.Goal{
		incGoal("first", 0, 100, 10),
		incGoal("second", 0, 100, 10),
		incGoal("third", 0, 100, 10),
	}

	focus := FocusGoals(goals, cycle, now)
	if len(focus) != 3 {
		t.Fatalf("len(focus) = %d, want 3", len(focus))
	}
	for i, want := range []string{"first", "second", "third"} {
		if focus[i].Goal.ID != want {
			t.Errorf("focus[%d] = %s, want %s (fetch order)", i, focus[i].Goal.ID, want)
		}
	}
}

func TestFocusGoalsSkipsArchived(t *testing.T) {
	cycle := testCycle()
	now := date(2026, time.March, 1)
	archivedAt := date(2026, time.February, 1)

	stalled := incGoal("stalled", 0, 100, 0)
	stalled.ArchivedAt = &archivedAt

	focus := FocusGoals([]*model.Goal{stalled}, cycle, now)
	if len(focus) != 0 {
		t.Errorf("len(focus) = %d, want 0 for archived goal", len(focus))
	}
}

func TestFocusGoalsEmptyInput(t *testing.T) {
	focus := FocusGoals(nil, testCycle(), date(2026, time.February, 15))
	if len(focus) != 0 {
		t.Errorf("len(focus) = %d, want 0", len(focus))
	}
}
