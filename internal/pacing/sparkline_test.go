package pacing

import (
	"math"
	"testing"
	"time"

	"github.com/momentumhq/momentum/internal/model"
)

func checkIn(weekStart time.Time, updates ...*model.WeeklyGoalUpdate) *model.WeeklyCheckIn {
	return &model.WeeklyCheckIn{WeekStart: weekStart, Updates: updates}
}

func update(goal *model.Goal, value float64) *model.WeeklyGoalUpdate {
	return &model.WeeklyGoalUpdate{Goal: goal, Value: value}
}

func TestBuildSparklineAveragesUpdates(t *testing.T) {
	cycle := testCycle()
	now := date(2026, time.February, 15)

	g1 := incGoal("g1", 0, 10, 8)
	g2 := incGoal("g2", 0, 100, 90)

	checkIns := []*model.WeeklyCheckIn{
		checkIn(date(2026, time.January, 12), update(g1, 2), update(g2, 10)), // avg of 0.2, 0.1
		checkIn(date(2026, time.January, 19), update(g1, 5), update(g2, 50)), // avg of 0.5, 0.5
	}

	s := BuildSparkline(cycle, checkIns, now)
	if s.Synthetic {
		t.Fatal("Synthetic = true, want false with real check-ins")
	}
	if len(s.Points) != 2 {
		t.Fatalf("len(points) = %d, want 2", len(s.Points))
	}
	if math.Abs(s.Points[0].Value-15) > 1e-9 {
		t.Errorf("points[0].Value = %f, want 15", s.Points[0].Value)
	}
	if math.Abs(s.Points[1].Value-50) > 1e-9 {
		t.Errorf("points[1].Value = %f, want 50", s.Points[1].Value)
	}
	if s.Points[0].Label != "Jan 12" {
		t.Errorf("points[0].Label = %q, want %q", s.Points[0].Label, "Jan 12")
	}
}

func TestBuildSparklineKeepsMostRecentEight(t *testing.T) {
	cycle := testCycle()
	now := date(2026, time.March, 30)
	g := incGoal("g", 0, 12, 12)

	var checkIns []*model.WeeklyCheckIn
	for i := 0; i < 12; i++ {
		ws := cycle.StartDate.AddDate(0, 0, 7*i)
		checkIns = append(checkIns, checkIn(ws, update(g, float64(i))))
	}

	s := BuildSparkline(cycle, checkIns, now)
	if len(s.Points) != SparklinePoints {
		t.Fatalf("len(points) = %d, want %d", len(s.Points), SparklinePoints)
	}
	// Oldest four weeks trimmed, newest kept.
	if math.Abs(s.Points[len(s.Points)-1].Value-11.0/12.0*100) > 1e-9 {
		t.Errorf("last point = %f, want %f", s.Points[len(s.Points)-1].Value, 11.0/12.0*100)
	}
	if math.Abs(s.Points[0].Value-4.0/12.0*100) > 1e-9 {
		t.Errorf("first point = %f, want %f", s.Points[0].Value, 4.0/12.0*100)
	}
}

func TestBuildSparklineSyntheticRamp(t *testing.T) {
	cycle := testCycle()
	now := date(2026, time.February, 15)

	s := BuildSparkline(cycle, nil, now)
	if !s.Synthetic {
		t.Fatal("Synthetic = false, want true with no check-ins")
	}
	if len(s.Points) != SparklinePoints {
		t.Fatalf("len(points) = %d, want %d", len(s.Points), SparklinePoints)
	}
	if s.Points[0].Value != 0 {
		t.Errorf("ramp starts at %f, want 0", s.Points[0].Value)
	}
	want := 40.0 / 84.0 * 100
	if math.Abs(s.Points[len(s.Points)-1].Value-want) > 1e-9 {
		t.Errorf("ramp ends at %f, want %f", s.Points[len(s.Points)-1].Value, want)
	}
	for i := 1; i < len(s.Points); i++ {
		if s.Points[i].Value < s.Points[i-1].Value {
			t.Errorf("ramp not non-decreasing at %d", i)
		}
	}
}

func TestBuildSparklinePlotsEmptyCheckInsAtZero(t *testing.T) {
	cycle := testCycle()
	now := date(2026, time.February, 15)
	g := incGoal("g", 0, 10, 8)

	checkIns := []*model.WeeklyCheckIn{
		checkIn(date(2026, time.January, 12)),
		checkIn(date(2026, time.January, 19), update(g, 5)),
	}

	s := BuildSparkline(cycle, checkIns, now)
	if s.Synthetic {
		t.Fatal("Synthetic = true, want false with real check-ins")
	}
	if len(s.Points) != 2 {
		t.Fatalf("len(points) = %d, want 2", len(s.Points))
	}
	if s.Points[0].Value != 0 {
		t.Errorf("empty week = %f, want 0", s.Points[0].Value)
	}
	if s.Points[0].Label != "Jan 12" {
		t.Errorf("empty week label = %q, want %q", s.Points[0].Label, "Jan 12")
	}
}
