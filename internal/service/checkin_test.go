package service

import (
	"errors"
	"testing"
	"time"

	"github.com/momentumhq/momentum/internal/model"
	"github.com/momentumhq/momentum/internal/repository"
)

func TestSubmitNormalizesWeekStart(t *testing.T) {
	env := newTestEnv(t)
	cycle := env.mustCycle(t, date(2026, 1, 5), date(2026, 3, 30))
	goal := env.mustGoal(t, cycle.ID, "Run 100 km", 0, 100, model.DirectionIncrease)

	// Thursday afternoon
	submitted := time.Date(2026, 1, 15, 14, 30, 0, 0, time.UTC)
	checkIn, err := env.checkIns.Submit(env.userID, CheckInInput{
		CycleID:   cycle.ID,
		WeekStart: submitted,
		Updates:   map[string]GoalUpdateInput{goal.ID: {Value: 20}},
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	want := date(2026, 1, 12) // Monday of that week
	if !checkIn.WeekStart.Equal(want) {
		t.Errorf("WeekStart = %v, want %v", checkIn.WeekStart, want)
	}
}

func TestSubmitRejectsEmptyUpdates(t *testing.T) {
	env := newTestEnv(t)
	cycle := env.mustCycle(t, date(2026, 1, 5), date(2026, 3, 30))

	_, err := env.checkIns.Submit(env.userID, CheckInInput{
		CycleID:   cycle.ID,
		WeekStart: date(2026, 1, 12),
		Updates:   map[string]GoalUpdateInput{},
	})
	if !errors.Is(err, ErrNoGoalUpdates) {
		t.Errorf("expected ErrNoGoalUpdates, got %v", err)
	}
}

func TestSubmitRejectsGoalFromAnotherCycle(t *testing.T) {
	env := newTestEnv(t)
	cycle := env.mustCycle(t, date(2026, 1, 5), date(2026, 3, 30))
	env.mustGoal(t, cycle.ID, "Run 100 km", 0, 100, model.DirectionIncrease)

	// Second cycle needs the first archived (free plan allows one active)
	if err := env.cycles.Archive(env.userID, cycle.ID); err != nil {
		t.Fatalf("Archive failed: %v", err)
	}
	other := env.mustCycle(t, date(2026, 4, 6), date(2026, 6, 29))
	strayGoal := env.mustGoal(t, other.ID, "Read 6 books", 0, 6, model.DirectionIncrease)

	_, err := env.checkIns.Submit(env.userID, CheckInInput{
		CycleID:   other.ID,
		WeekStart: date(2026, 4, 6),
		Updates: map[string]GoalUpdateInput{
			strayGoal.ID: {Value: 1},
			"not-a-goal": {Value: 2},
		},
	})
	if !errors.Is(err, repository.ErrGoalNotFound) {
		t.Errorf("expected ErrGoalNotFound for stray goal ID, got %v", err)
	}
}

func TestSubmitRejectsArchivedCycle(t *testing.T) {
	env := newTestEnv(t)
	cycle := env.mustCycle(t, date(2026, 1, 5), date(2026, 3, 30))
	goal := env.mustGoal(t, cycle.ID, "Run 100 km", 0, 100, model.DirectionIncrease)

	if err := env.cycles.Archive(env.userID, cycle.ID); err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	_, err := env.checkIns.Submit(env.userID, CheckInInput{
		CycleID:   cycle.ID,
		WeekStart: date(2026, 1, 12),
		Updates:   map[string]GoalUpdateInput{goal.ID: {Value: 5}},
	})
	if !errors.Is(err, ErrCycleArchived) {
		t.Errorf("expected ErrCycleArchived, got %v", err)
	}
}

func TestResubmitSameWeekReplaces(t *testing.T) {
	env := newTestEnv(t)
	cycle := env.mustCycle(t, date(2026, 1, 5), date(2026, 3, 30))
	goal := env.mustGoal(t, cycle.ID, "Run 100 km", 0, 100, model.DirectionIncrease)

	week := date(2026, 1, 12)
	first, err := env.checkIns.Submit(env.userID, CheckInInput{
		CycleID:   cycle.ID,
		WeekStart: week,
		Notes:     "first",
		Updates:   map[string]GoalUpdateInput{goal.ID: {Value: 10}},
	})
	if err != nil {
		t.Fatalf("first Submit failed: %v", err)
	}

	second, err := env.checkIns.Submit(env.userID, CheckInInput{
		CycleID:   cycle.ID,
		WeekStart: week.AddDate(0, 0, 3), // same week, different day
		Notes:     "revised",
		Updates:   map[string]GoalUpdateInput{goal.ID: {Value: 16}},
	})
	if err != nil {
		t.Fatalf("second Submit failed: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("resubmit created new check-in %s, want %s", second.ID, first.ID)
	}
	if second.Notes != "revised" {
		t.Errorf("Notes = %q, want %q", second.Notes, "revised")
	}
	if len(second.Updates) != 1 || second.Updates[0].Value != 16 {
		t.Errorf("expected single update with value 16, got %+v", second.Updates)
	}

	all, err := env.checkIns.ByCycle(env.userID, cycle.ID)
	if err != nil {
		t.Fatalf("ByCycle failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 check-in after resubmit, got %d", len(all))
	}
}

func TestSubmitLeavesGoalCurrentValueAlone(t *testing.T) {
	env := newTestEnv(t)
	cycle := env.mustCycle(t, date(2026, 1, 5), date(2026, 3, 30))
	goal := env.mustGoal(t, cycle.ID, "Run 100 km", 0, 100, model.DirectionIncrease)

	_, err := env.checkIns.Submit(env.userID, CheckInInput{
		CycleID:   cycle.ID,
		WeekStart: date(2026, 1, 12),
		Updates:   map[string]GoalUpdateInput{goal.ID: {Value: 42}},
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	got, err := env.goals.ByID(env.userID, goal.ID)
	if err != nil {
		t.Fatalf("goal ByID failed: %v", err)
	}
	if got.CurrentValue != 0 {
		t.Errorf("CurrentValue = %f, want 0 (check-ins record history only)", got.CurrentValue)
	}
}

func TestForWeekReturnsNotFoundWhenUnlogged(t *testing.T) {
	env := newTestEnv(t)
	cycle := env.mustCycle(t, date(2026, 1, 5), date(2026, 3, 30))

	_, err := env.checkIns.ForWeek(env.userID, cycle.ID, date(2026, 1, 14))
	if !errors.Is(err, repository.ErrCheckInNotFound) {
		t.Errorf("expected ErrCheckInNotFound, got %v", err)
	}
}
