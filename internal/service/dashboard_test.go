package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/momentumhq/momentum/internal/model"
	"github.com/momentumhq/momentum/internal/pacing"
)

func TestDashboardEmptyAccount(t *testing.T) {
	env := newTestEnv(t)

	d, err := env.dashboard.Dashboard(context.Background(), env.userID, date(2026, 2, 15))
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}

	if !d.LifeScore.Empty {
		t.Error("expected empty life score with no goals")
	}
	if d.CurrentCycle != nil {
		t.Error("expected no current cycle")
	}
	if d.Streak != 0 {
		t.Errorf("Streak = %d, want 0", d.Streak)
	}
}

func TestDashboardWithRunningCycle(t *testing.T) {
	env := newTestEnv(t)
	cycle := env.mustCycle(t, date(2026, 1, 5), date(2026, 3, 30))
	run := env.mustGoal(t, cycle.ID, "Run 120 km", 0, 120, model.DirectionIncrease)
	read := env.mustGoal(t, cycle.ID, "Read 6 books", 0, 6, model.DirectionIncrease)

	// Two consecutive logged weeks ending at now's week
	weeks := []time.Time{date(2026, 1, 26), date(2026, 2, 2)}
	for i, week := range weeks {
		_, err := env.checkIns.Submit(env.userID, CheckInInput{
			CycleID:   cycle.ID,
			WeekStart: week,
			Updates: map[string]GoalUpdateInput{
				run.ID:  {Value: float64(20 * (i + 1))},
				read.ID: {Value: float64(i + 1)},
			},
		})
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}

	now := time.Date(2026, 2, 4, 10, 0, 0, 0, time.UTC) // Wednesday of the second week
	d, err := env.dashboard.Dashboard(context.Background(), env.userID, now)
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}

	if d.CurrentCycle == nil || d.CurrentCycle.Cycle.ID != cycle.ID {
		t.Fatal("expected the running cycle on the dashboard")
	}
	if d.Streak != 2 {
		t.Errorf("Streak = %d, want 2", d.Streak)
	}
	if !d.CurrentWeekLogged {
		t.Error("expected current week to count as logged")
	}
	if d.LifeScore.Empty {
		t.Error("life score should not be empty with active goals")
	}
	if d.Sparkline.Synthetic {
		t.Error("sparkline should be real with check-in history")
	}
	if len(d.Sparkline.Points) != 2 {
		t.Errorf("expected 2 sparkline points, got %d", len(d.Sparkline.Points))
	}
	if len(d.FocusGoals) == 0 || len(d.FocusGoals) > pacing.MaxFocusGoals {
		t.Errorf("FocusGoals count = %d, want 1..%d", len(d.FocusGoals), pacing.MaxFocusGoals)
	}
	if len(d.RecentActivity) != 4 {
		t.Fatalf("expected 4 activity entries, got %d", len(d.RecentActivity))
	}
	for _, entry := range d.RecentActivity {
		if entry.Title == "" {
			t.Errorf("activity entry %s has no goal title", entry.ID)
		}
		if !strings.HasPrefix(entry.Detail, "Updated to ") {
			t.Errorf("Detail = %q, want an update entry", entry.Detail)
		}
	}
}

func TestDashboardActivityFallsBackToGoalCreation(t *testing.T) {
	env := newTestEnv(t)
	cycle := env.mustCycle(t, date(2026, 1, 5), date(2026, 3, 30))
	env.mustGoal(t, cycle.ID, "Run 120 km", 0, 120, model.DirectionIncrease)
	env.mustGoal(t, cycle.ID, "Read 6 books", 0, 6, model.DirectionIncrease)

	d, err := env.dashboard.Dashboard(context.Background(), env.userID, date(2026, 2, 15))
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}

	if len(d.RecentActivity) != 2 {
		t.Fatalf("expected 2 fallback entries, got %d", len(d.RecentActivity))
	}
	for _, entry := range d.RecentActivity {
		if entry.Detail != "Goal created" {
			t.Errorf("Detail = %q, want %q", entry.Detail, "Goal created")
		}
	}
}

func TestDashboardFocusGoalsCarryCategory(t *testing.T) {
	env := newTestEnv(t)
	cycle := env.mustCycle(t, date(2026, 1, 5), date(2026, 3, 30))

	categories, err := env.categories.Categories(env.userID)
	if err != nil {
		t.Fatalf("Categories failed: %v", err)
	}

	_, err = env.goals.Create(env.userID, GoalInput{
		CycleID:     cycle.ID,
		CategoryID:  &categories[0].ID,
		Title:       "Run 120 km",
		StartValue:  0,
		TargetValue: 120,
		Direction:   model.DirectionIncrease,
	})
	if err != nil {
		t.Fatalf("goal create failed: %v", err)
	}

	d, err := env.dashboard.Dashboard(context.Background(), env.userID, date(2026, 2, 15))
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}

	if len(d.FocusGoals) != 1 {
		t.Fatalf("expected 1 focus goal, got %d", len(d.FocusGoals))
	}
	got := d.FocusGoals[0].Goal.Category
	if got == nil || got.Name != categories[0].Name {
		t.Errorf("focus goal category = %+v, want %q", got, categories[0].Name)
	}
}

func TestDashboardSyntheticSparklineWithoutCheckIns(t *testing.T) {
	env := newTestEnv(t)
	cycle := env.mustCycle(t, date(2026, 1, 5), date(2026, 3, 30))
	env.mustGoal(t, cycle.ID, "Run 120 km", 0, 120, model.DirectionIncrease)

	d, err := env.dashboard.Dashboard(context.Background(), env.userID, date(2026, 2, 15))
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}

	if !d.Sparkline.Synthetic {
		t.Error("expected synthetic sparkline with no check-ins")
	}
	if len(d.Sparkline.Points) != pacing.SparklinePoints {
		t.Errorf("expected %d synthetic points, got %d", pacing.SparklinePoints, len(d.Sparkline.Points))
	}
}
