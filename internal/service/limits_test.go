package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/momentumhq/momentum/internal/model"
	"github.com/momentumhq/momentum/internal/validation"
)

func TestFreePlanAllowsOneActiveCycle(t *testing.T) {
	env := newTestEnv(t)
	env.mustCycle(t, date(2026, 1, 5), date(2026, 3, 30))

	_, err := env.cycles.Create(env.userID, CycleInput{
		Name:      "Second cycle",
		StartDate: date(2026, 4, 6),
		EndDate:   date(2026, 6, 29),
	})
	if !errors.Is(err, ErrCycleLimitReached) {
		t.Errorf("expected ErrCycleLimitReached, got %v", err)
	}
}

func TestArchivingFreesUpTheCycleSlot(t *testing.T) {
	env := newTestEnv(t)
	cycle := env.mustCycle(t, date(2026, 1, 5), date(2026, 3, 30))

	if err := env.cycles.Archive(env.userID, cycle.ID); err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	if _, err := env.cycles.Create(env.userID, CycleInput{
		Name:      "Next cycle",
		StartDate: date(2026, 4, 6),
		EndDate:   date(2026, 6, 29),
	}); err != nil {
		t.Errorf("expected cycle creation after archive, got %v", err)
	}
}

func TestFreePlanGoalLimit(t *testing.T) {
	env := newTestEnv(t)
	cycle := env.mustCycle(t, date(2026, 1, 5), date(2026, 3, 30))

	for i := 0; i < 5; i++ {
		env.mustGoal(t, cycle.ID, fmt.Sprintf("Goal %d", i+1), 0, 10, model.DirectionIncrease)
	}

	_, err := env.goals.Create(env.userID, GoalInput{
		CycleID:     cycle.ID,
		Title:       "One too many",
		TargetValue: 10,
		Direction:   model.DirectionIncrease,
	})
	if !errors.Is(err, ErrGoalLimitReached) {
		t.Errorf("expected ErrGoalLimitReached, got %v", err)
	}
}

func TestGoalCreateValidatesRange(t *testing.T) {
	env := newTestEnv(t)
	cycle := env.mustCycle(t, date(2026, 1, 5), date(2026, 3, 30))

	// Decrease goal whose target is above its start is inconsistent
	_, err := env.goals.Create(env.userID, GoalInput{
		CycleID:     cycle.ID,
		Title:       "Backwards",
		StartValue:  70,
		TargetValue: 80,
		Direction:   model.DirectionDecrease,
	})
	if !errors.Is(err, validation.ErrInvalid) {
		t.Errorf("expected validation.ErrInvalid, got %v", err)
	}
}

func TestGoalCreateRejectsArchivedCycle(t *testing.T) {
	env := newTestEnv(t)
	cycle := env.mustCycle(t, date(2026, 1, 5), date(2026, 3, 30))

	if err := env.cycles.Archive(env.userID, cycle.ID); err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	_, err := env.goals.Create(env.userID, GoalInput{
		CycleID:     cycle.ID,
		Title:       "Too late",
		TargetValue: 10,
		Direction:   model.DirectionIncrease,
	})
	if !errors.Is(err, ErrCycleArchived) {
		t.Errorf("expected ErrCycleArchived, got %v", err)
	}
}

func TestCycleCreateValidatesDates(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.cycles.Create(env.userID, CycleInput{
		Name:      "Inverted",
		StartDate: date(2026, 3, 30),
		EndDate:   date(2026, 1, 5),
	})
	if !errors.Is(err, validation.ErrInvalid) {
		t.Errorf("expected validation.ErrInvalid, got %v", err)
	}
}
