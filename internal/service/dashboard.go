package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/momentumhq/momentum/internal/model"
	"github.com/momentumhq/momentum/internal/pacing"
	"github.com/momentumhq/momentum/internal/repository"
)

const (
	recentActivityLimit     = 5
	recentGoalFallbackLimit = 3
)

type DashboardService struct {
	cycleRepo    repository.CycleRepository
	goalRepo     repository.GoalRepository
	categoryRepo repository.CategoryRepository
	checkInRepo  repository.CheckInRepository
}

func NewDashboardService(
	cycleRepo repository.CycleRepository,
	goalRepo repository.GoalRepository,
	categoryRepo repository.CategoryRepository,
	checkInRepo repository.CheckInRepository,
) *DashboardService {
	return &DashboardService{
		cycleRepo:    cycleRepo,
		goalRepo:     goalRepo,
		categoryRepo: categoryRepo,
		checkInRepo:  checkInRepo,
	}
}

// CycleSummary is the current cycle annotated with its pacing numbers.
type CycleSummary struct {
	Cycle        *model.Cycle `json:"cycle"`
	TimeProgress float64      `json:"timeProgress"`
	WeeksLeft    int          `json:"weeksLeft"`
}

// ActivityEntry is one line in the dashboard's activity feed: a logged
// goal update, or a goal creation when nothing has been logged yet.
type ActivityEntry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Detail    string    `json:"detail"`
	Timestamp time.Time `json:"timestamp"`
}

type Dashboard struct {
	LifeScore         pacing.LifeScore   `json:"lifeScore"`
	CurrentCycle      *CycleSummary      `json:"currentCycle"`
	FocusGoals        []pacing.FocusGoal `json:"focusGoals"`
	Streak            int                `json:"streak"`
	CurrentWeekLogged bool               `json:"currentWeekLogged"`
	Sparkline         pacing.Sparkline   `json:"sparkline"`
	RecentActivity    []ActivityEntry    `json:"recentActivity"`
}

// Dashboard assembles the landing view for a user at now. The
// independent reads fan out concurrently; each computation works on
// its own fetched snapshot.
func (s *DashboardService) Dashboard(ctx context.Context, userID string, now time.Time) (*Dashboard, error) {
	var (
		activeGoals []*model.Goal
		weekStarts  []time.Time
		activity    []ActivityEntry
		current     *model.Cycle
	)

	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		activeGoals, err = s.goalRepo.ActiveByUser(userID)
		return err
	})

	g.Go(func() error {
		var err error
		weekStarts, err = s.checkInRepo.WeekStarts(userID)
		return err
	})

	g.Go(func() error {
		var err error
		activity, err = s.recentActivity(userID)
		return err
	})

	g.Go(func() error {
		cycle, err := s.cycleRepo.Current(userID, now)
		if err == repository.ErrCycleNotFound {
			return nil // no running cycle is a normal state
		}
		current = cycle
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		LifeScore:      pacing.ComputeLifeScore(activeGoals),
		RecentActivity: activity,
	}
	dashboard.Streak, dashboard.CurrentWeekLogged = pacing.Streak(weekStarts, now)

	if current == nil {
		return dashboard, nil
	}

	cycleGoals, err := s.goalRepo.ByCycle(userID, current.ID, false)
	if err != nil {
		return nil, err
	}
	if err := attachCategories(s.categoryRepo, userID, cycleGoals); err != nil {
		return nil, err
	}
	checkIns, err := s.checkInRepo.ByCycle(userID, current.ID)
	if err != nil {
		return nil, err
	}

	dashboard.CurrentCycle = &CycleSummary{
		Cycle:        current,
		TimeProgress: pacing.TimeProgress(current.StartDate, current.EndDate, now),
		WeeksLeft:    weeksLeft(current.EndDate, now),
	}
	dashboard.FocusGoals = pacing.FocusGoals(cycleGoals, current, now)
	dashboard.Sparkline = pacing.BuildSparkline(current, checkIns, now)

	return dashboard, nil
}

// recentActivity builds the feed from the latest goal updates; an
// account with goals but no logged values falls back to goal-creation
// entries so the feed is never empty while there is anything to show.
func (s *DashboardService) recentActivity(userID string) ([]ActivityEntry, error) {
	updates, err := s.checkInRepo.RecentUpdates(userID, recentActivityLimit)
	if err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		entries := make([]ActivityEntry, 0, len(updates))
		for _, u := range updates {
			entry := ActivityEntry{
				ID:        u.ID,
				Detail:    "Updated to " + formatValue(u.Value, ""),
				Timestamp: u.CreatedAt,
			}
			if u.Goal != nil {
				entry.Title = u.Goal.Title
				entry.Detail = "Updated to " + formatValue(u.Value, u.Goal.Unit)
			}
			entries = append(entries, entry)
		}
		return entries, nil
	}

	goals, err := s.goalRepo.RecentByUser(userID, recentGoalFallbackLimit)
	if err != nil {
		return nil, err
	}

	entries := make([]ActivityEntry, 0, len(goals))
	for _, g := range goals {
		entries = append(entries, ActivityEntry{
			ID:        g.ID,
			Title:     g.Title,
			Detail:    "Goal created",
			Timestamp: g.CreatedAt,
		})
	}
	return entries, nil
}

func weeksLeft(end, now time.Time) int {
	if !end.After(now) {
		return 0
	}
	days := int(end.Sub(now).Hours() / 24)
	return (days + 6) / 7
}
