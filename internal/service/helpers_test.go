package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/momentumhq/momentum/internal/db"
	"github.com/momentumhq/momentum/internal/model"
	"github.com/momentumhq/momentum/internal/repository"
)

// testEnv wires the goal-tracking services against a throwaway sqlite
// database, the same way app.New does in production.
type testEnv struct {
	db         *sqlx.DB
	cycles     *CycleService
	goals      *GoalService
	categories *CategoryService
	checkIns   *CheckInService
	dashboard  *DashboardService
	userID     string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := db.RunMigrations(database.DB, "sqlite"); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}

	user := &model.User{
		ID:        uuid.New().String(),
		Email:     uuid.New().String() + "@example.com",
		CreatedAt: time.Now().UTC(),
	}
	if err := repository.NewUserRepository(database).Create(user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	subscriptionService := NewSubscriptionService(repository.NewSubscriptionRepository(database))
	if err := subscriptionService.CreateFreeSubscription(user.ID); err != nil {
		t.Fatalf("failed to create subscription: %v", err)
	}

	cycleRepo := repository.NewCycleRepository(database)
	goalRepo := repository.NewGoalRepository(database)
	categoryRepo := repository.NewCategoryRepository(database)
	checkInRepo := repository.NewCheckInRepository(database)

	return &testEnv{
		db:         database,
		cycles:     NewCycleService(cycleRepo, goalRepo, subscriptionService),
		goals:      NewGoalService(goalRepo, cycleRepo, categoryRepo, subscriptionService),
		categories: NewCategoryService(categoryRepo),
		checkIns:   NewCheckInService(checkInRepo, cycleRepo, goalRepo),
		dashboard:  NewDashboardService(cycleRepo, goalRepo, categoryRepo, checkInRepo),
		userID:     user.ID,
	}
}

func (e *testEnv) mustCycle(t *testing.T, start, end time.Time) *model.Cycle {
	t.Helper()

	cycle, err := e.cycles.Create(e.userID, CycleInput{
		Name:      "Test cycle",
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		t.Fatalf("failed to create cycle: %v", err)
	}
	return cycle
}

func (e *testEnv) mustGoal(t *testing.T, cycleID, title string, start, target float64, direction string) *model.Goal {
	t.Helper()

	goal, err := e.goals.Create(e.userID, GoalInput{
		CycleID:     cycleID,
		Title:       title,
		StartValue:  start,
		TargetValue: target,
		Direction:   direction,
	})
	if err != nil {
		t.Fatalf("failed to create goal %q: %v", title, err)
	}
	return goal
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
