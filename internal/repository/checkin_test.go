package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momentumhq/momentum/internal/model"
)

func weekOf(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func buildCheckIn(userID, cycleID string, weekStart time.Time, notes string, updates ...*model.WeeklyGoalUpdate) *model.WeeklyCheckIn {
	now := time.Now().UTC()
	for _, u := range updates {
		u.ID = uuid.New().String()
		u.CreatedAt = now
	}
	return &model.WeeklyCheckIn{
		ID:        uuid.New().String(),
		UserID:    userID,
		CycleID:   cycleID,
		WeekStart: weekStart,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
		Updates:   updates,
	}
}

func TestUpsertCreatesCheckInWithUpdates(t *testing.T) {
	database := setupTestDB(t)
	user := seedUser(t, database)
	cycle := seedCycle(t, database, user.ID, weekOf(2026, 1, 5), weekOf(2026, 3, 30))
	goal := seedGoal(t, database, user.ID, cycle.ID, "Run 100 km")

	repo := NewCheckInRepository(database)
	checkIn := buildCheckIn(user.ID, cycle.ID, weekOf(2026, 1, 12), "good week",
		&model.WeeklyGoalUpdate{GoalID: goal.ID, Value: 12},
	)
	if err := repo.Upsert(checkIn); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	got, err := repo.ByID(user.ID, checkIn.ID)
	if err != nil {
		t.Fatalf("ByID failed: %v", err)
	}
	if got.Notes != "good week" {
		t.Errorf("Notes = %q, want %q", got.Notes, "good week")
	}
	if len(got.Updates) != 1 {
		t.Fatalf("expected 1 update, got %d", len(got.Updates))
	}
	if got.Updates[0].Value != 12 {
		t.Errorf("Value = %f, want 12", got.Updates[0].Value)
	}
	if got.Updates[0].Goal == nil || got.Updates[0].Goal.Title != "Run 100 km" {
		t.Error("expected goal attached to update")
	}
}

func TestUpsertSameWeekReplacesInsteadOfDuplicating(t *testing.T) {
	database := setupTestDB(t)
	user := seedUser(t, database)
	cycle := seedCycle(t, database, user.ID, weekOf(2026, 1, 5), weekOf(2026, 3, 30))
	goal := seedGoal(t, database, user.ID, cycle.ID, "Run 100 km")

	repo := NewCheckInRepository(database)
	week := weekOf(2026, 1, 12)

	first := buildCheckIn(user.ID, cycle.ID, week, "first pass",
		&model.WeeklyGoalUpdate{GoalID: goal.ID, Value: 10},
	)
	if err := repo.Upsert(first); err != nil {
		t.Fatalf("first Upsert failed: %v", err)
	}

	second := buildCheckIn(user.ID, cycle.ID, week, "revised",
		&model.WeeklyGoalUpdate{GoalID: goal.ID, Value: 14},
	)
	if err := repo.Upsert(second); err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}

	// The stored row keeps the original ID
	if second.ID != first.ID {
		t.Errorf("resubmitted check-in ID = %s, want original %s", second.ID, first.ID)
	}

	count, err := repo.CountByUser(user.ID)
	if err != nil {
		t.Fatalf("CountByUser failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 check-in after resubmit, got %d", count)
	}

	got, err := repo.ByCycleAndWeek(user.ID, cycle.ID, week)
	if err != nil {
		t.Fatalf("ByCycleAndWeek failed: %v", err)
	}
	if got.Notes != "revised" {
		t.Errorf("Notes = %q, want %q", got.Notes, "revised")
	}
	if len(got.Updates) != 1 {
		t.Fatalf("expected 1 update after resubmit, got %d", len(got.Updates))
	}
	if got.Updates[0].Value != 14 {
		t.Errorf("Value = %f, want 14", got.Updates[0].Value)
	}
}

func TestByCycleOrdersOldestFirst(t *testing.T) {
	database := setupTestDB(t)
	user := seedUser(t, database)
	cycle := seedCycle(t, database, user.ID, weekOf(2026, 1, 5), weekOf(2026, 3, 30))
	goal := seedGoal(t, database, user.ID, cycle.ID, "Run 100 km")

	repo := NewCheckInRepository(database)
	weeks := []time.Time{weekOf(2026, 1, 19), weekOf(2026, 1, 5), weekOf(2026, 1, 12)}
	for i, week := range weeks {
		ci := buildCheckIn(user.ID, cycle.ID, week, "",
			&model.WeeklyGoalUpdate{GoalID: goal.ID, Value: float64(i)},
		)
		if err := repo.Upsert(ci); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}

	got, err := repo.ByCycle(user.ID, cycle.ID)
	if err != nil {
		t.Fatalf("ByCycle failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 check-ins, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].WeekStart.Before(got[i-1].WeekStart) {
			t.Errorf("check-ins out of order at index %d", i)
		}
	}
}

func TestWeekStartsNewestFirst(t *testing.T) {
	database := setupTestDB(t)
	user := seedUser(t, database)
	cycle := seedCycle(t, database, user.ID, weekOf(2026, 1, 5), weekOf(2026, 3, 30))
	goal := seedGoal(t, database, user.ID, cycle.ID, "Run 100 km")

	repo := NewCheckInRepository(database)
	for _, week := range []time.Time{weekOf(2026, 1, 5), weekOf(2026, 1, 12)} {
		ci := buildCheckIn(user.ID, cycle.ID, week, "",
			&model.WeeklyGoalUpdate{GoalID: goal.ID, Value: 1},
		)
		if err := repo.Upsert(ci); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}

	weeks, err := repo.WeekStarts(user.ID)
	if err != nil {
		t.Fatalf("WeekStarts failed: %v", err)
	}
	if len(weeks) != 2 {
		t.Fatalf("expected 2 weeks, got %d", len(weeks))
	}
	if !weeks[0].After(weeks[1]) {
		t.Errorf("expected newest week first, got %v then %v", weeks[0], weeks[1])
	}
}

func TestRecentUpdatesNewestFirstWithGoals(t *testing.T) {
	database := setupTestDB(t)
	user := seedUser(t, database)
	other := seedUser(t, database)
	cycle := seedCycle(t, database, user.ID, weekOf(2026, 1, 5), weekOf(2026, 3, 30))
	goal := seedGoal(t, database, user.ID, cycle.ID, "Run 100 km")
	otherCycle := seedCycle(t, database, other.ID, weekOf(2026, 1, 5), weekOf(2026, 3, 30))
	otherGoal := seedGoal(t, database, other.ID, otherCycle.ID, "Someone else's goal")

	repo := NewCheckInRepository(database)
	for i, week := range []time.Time{weekOf(2026, 1, 5), weekOf(2026, 1, 12), weekOf(2026, 1, 19)} {
		ci := buildCheckIn(user.ID, cycle.ID, week, "",
			&model.WeeklyGoalUpdate{GoalID: goal.ID, Value: float64(10 * (i + 1))},
		)
		if err := repo.Upsert(ci); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}
	stray := buildCheckIn(other.ID, otherCycle.ID, weekOf(2026, 1, 12), "",
		&model.WeeklyGoalUpdate{GoalID: otherGoal.ID, Value: 99},
	)
	if err := repo.Upsert(stray); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	updates, err := repo.RecentUpdates(user.ID, 2)
	if err != nil {
		t.Fatalf("RecentUpdates failed: %v", err)
	}
	if len(updates) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(updates))
	}
	if updates[0].Value != 30 || updates[1].Value != 20 {
		t.Errorf("values = %f, %f, want newest first 30, 20", updates[0].Value, updates[1].Value)
	}
	for _, u := range updates {
		if u.Goal == nil || u.Goal.Title != "Run 100 km" {
			t.Errorf("update %s missing its goal", u.ID)
		}
	}
}

func TestDeleteCheckInScopedToUser(t *testing.T) {
	database := setupTestDB(t)
	user := seedUser(t, database)
	other := seedUser(t, database)
	cycle := seedCycle(t, database, user.ID, weekOf(2026, 1, 5), weekOf(2026, 3, 30))
	goal := seedGoal(t, database, user.ID, cycle.ID, "Run 100 km")

	repo := NewCheckInRepository(database)
	ci := buildCheckIn(user.ID, cycle.ID, weekOf(2026, 1, 12), "",
		&model.WeeklyGoalUpdate{GoalID: goal.ID, Value: 5},
	)
	if err := repo.Upsert(ci); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if err := repo.Delete(other.ID, ci.ID); !errors.Is(err, ErrCheckInNotFound) {
		t.Errorf("expected ErrCheckInNotFound for other user, got %v", err)
	}

	if err := repo.Delete(user.ID, ci.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := repo.ByID(user.ID, ci.ID); !errors.Is(err, ErrCheckInNotFound) {
		t.Errorf("expected ErrCheckInNotFound after delete, got %v", err)
	}
}
