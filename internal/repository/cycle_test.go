package repository

import (
	"errors"
	"testing"
	"time"
)

func TestCurrentPicksRunningCycle(t *testing.T) {
	database := setupTestDB(t)
	user := seedUser(t, database)

	repo := NewCycleRepository(database)

	// Past, running, and future cycles
	seedCycle(t, database, user.ID, weekOf(2025, 9, 1), weekOf(2025, 11, 24))
	running := seedCycle(t, database, user.ID, weekOf(2026, 1, 5), weekOf(2026, 3, 30))
	seedCycle(t, database, user.ID, weekOf(2026, 6, 1), weekOf(2026, 8, 24))

	now := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)
	got, err := repo.Current(user.ID, now)
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if got.ID != running.ID {
		t.Errorf("Current = %s, want %s", got.ID, running.ID)
	}
}

func TestCurrentIgnoresArchivedCycles(t *testing.T) {
	database := setupTestDB(t)
	user := seedUser(t, database)

	repo := NewCycleRepository(database)
	cycle := seedCycle(t, database, user.ID, weekOf(2026, 1, 5), weekOf(2026, 3, 30))

	if err := repo.Archive(user.ID, cycle.ID); err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	now := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)
	if _, err := repo.Current(user.ID, now); !errors.Is(err, ErrCycleNotFound) {
		t.Errorf("expected ErrCycleNotFound, got %v", err)
	}
}

func TestCountActiveExcludesArchived(t *testing.T) {
	database := setupTestDB(t)
	user := seedUser(t, database)

	repo := NewCycleRepository(database)
	seedCycle(t, database, user.ID, weekOf(2026, 1, 5), weekOf(2026, 3, 30))
	archived := seedCycle(t, database, user.ID, weekOf(2025, 9, 1), weekOf(2025, 11, 24))

	if err := repo.Archive(user.ID, archived.ID); err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	count, err := repo.CountActive(user.ID)
	if err != nil {
		t.Fatalf("CountActive failed: %v", err)
	}
	if count != 1 {
		t.Errorf("CountActive = %d, want 1", count)
	}
}

func TestCyclesScopedToUser(t *testing.T) {
	database := setupTestDB(t)
	user := seedUser(t, database)
	other := seedUser(t, database)

	repo := NewCycleRepository(database)
	seedCycle(t, database, user.ID, weekOf(2026, 1, 5), weekOf(2026, 3, 30))
	seedCycle(t, database, other.ID, weekOf(2026, 1, 5), weekOf(2026, 3, 30))

	cycles, err := repo.Cycles(user.ID, true)
	if err != nil {
		t.Fatalf("Cycles failed: %v", err)
	}
	if len(cycles) != 1 {
		t.Errorf("expected 1 cycle for user, got %d", len(cycles))
	}
}
