package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/momentumhq/momentum/internal/db"
	"github.com/momentumhq/momentum/internal/model"
)

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := db.RunMigrations(database.DB, "sqlite"); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}

	return database
}

func seedUser(t *testing.T, database *sqlx.DB) *model.User {
	t.Helper()

	user := &model.User{
		ID:        uuid.New().String(),
		Email:     uuid.New().String() + "@example.com",
		CreatedAt: time.Now().UTC(),
	}
	if err := NewUserRepository(database).Create(user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedCycle(t *testing.T, database *sqlx.DB, userID string, start, end time.Time) *model.Cycle {
	t.Helper()

	now := time.Now().UTC()
	cycle := &model.Cycle{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      "Test cycle",
		StartDate: start,
		EndDate:   end,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := NewCycleRepository(database).Create(cycle); err != nil {
		t.Fatalf("failed to seed cycle: %v", err)
	}
	return cycle
}

func seedGoal(t *testing.T, database *sqlx.DB, userID, cycleID, title string) *model.Goal {
	t.Helper()

	now := time.Now().UTC()
	goal := &model.Goal{
		ID:          uuid.New().String(),
		UserID:      userID,
		CycleID:     cycleID,
		Title:       title,
		Unit:        "km",
		StartValue:  0,
		TargetValue: 100,
		Direction:   model.DirectionIncrease,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := NewGoalRepository(database).Create(goal); err != nil {
		t.Fatalf("failed to seed goal: %v", err)
	}
	return goal
}
