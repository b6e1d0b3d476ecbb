package repository

import (
	"errors"
	"testing"
)

func TestArchiveGoalExcludesFromActiveQueries(t *testing.T) {
	database := setupTestDB(t)
	user := seedUser(t, database)
	cycle := seedCycle(t, database, user.ID, weekOf(2026, 1, 5), weekOf(2026, 3, 30))

	repo := NewGoalRepository(database)
	kept := seedGoal(t, database, user.ID, cycle.ID, "Run 100 km")
	dropped := seedGoal(t, database, user.ID, cycle.ID, "Read 6 books")

	if err := repo.Archive(user.ID, dropped.ID); err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	active, err := repo.ByCycle(user.ID, cycle.ID, false)
	if err != nil {
		t.Fatalf("ByCycle failed: %v", err)
	}
	if len(active) != 1 || active[0].ID != kept.ID {
		t.Errorf("expected only the unarchived goal, got %d goals", len(active))
	}

	all, err := repo.ByCycle(user.ID, cycle.ID, true)
	if err != nil {
		t.Fatalf("ByCycle includeArchived failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 goals including archived, got %d", len(all))
	}

	count, err := repo.CountActiveInCycle(user.ID, cycle.ID)
	if err != nil {
		t.Fatalf("CountActiveInCycle failed: %v", err)
	}
	if count != 1 {
		t.Errorf("CountActiveInCycle = %d, want 1", count)
	}
}

func TestActiveByUserSkipsArchivedCycles(t *testing.T) {
	database := setupTestDB(t)
	user := seedUser(t, database)

	cycleRepo := NewCycleRepository(database)
	repo := NewGoalRepository(database)

	live := seedCycle(t, database, user.ID, weekOf(2026, 1, 5), weekOf(2026, 3, 30))
	old := seedCycle(t, database, user.ID, weekOf(2025, 9, 1), weekOf(2025, 11, 24))
	seedGoal(t, database, user.ID, live.ID, "Run 100 km")
	seedGoal(t, database, user.ID, old.ID, "Old goal")

	if err := cycleRepo.Archive(user.ID, old.ID); err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	goals, err := repo.ActiveByUser(user.ID)
	if err != nil {
		t.Fatalf("ActiveByUser failed: %v", err)
	}
	if len(goals) != 1 {
		t.Fatalf("expected 1 active goal, got %d", len(goals))
	}
	if goals[0].Title != "Run 100 km" {
		t.Errorf("Title = %q, want %q", goals[0].Title, "Run 100 km")
	}
}

func TestGoalNotFoundForOtherUser(t *testing.T) {
	database := setupTestDB(t)
	user := seedUser(t, database)
	other := seedUser(t, database)
	cycle := seedCycle(t, database, user.ID, weekOf(2026, 1, 5), weekOf(2026, 3, 30))

	repo := NewGoalRepository(database)
	goal := seedGoal(t, database, user.ID, cycle.ID, "Run 100 km")

	if _, err := repo.ByID(other.ID, goal.ID); !errors.Is(err, ErrGoalNotFound) {
		t.Errorf("expected ErrGoalNotFound, got %v", err)
	}
}
