package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momentumhq/momentum/internal/model"
	"github.com/momentumhq/momentum/internal/pacing"
	"github.com/momentumhq/momentum/internal/repository"
)

var (
	ErrNoGoalUpdates = errors.New("check-in needs at least one goal update")
)

type CheckInService struct {
	repo      repository.CheckInRepository
	cycleRepo repository.CycleRepository
	goalRepo  repository.GoalRepository
}

func NewCheckInService(
	repo repository.CheckInRepository,
	cycleRepo repository.CycleRepository,
	goalRepo repository.GoalRepository,
) *CheckInService {
	return &CheckInService{
		repo:      repo,
		cycleRepo: cycleRepo,
		goalRepo:  goalRepo,
	}
}

type GoalUpdateInput struct {
	Value float64 `json:"value"`
	Notes string  `json:"notes"`
}

type CheckInInput struct {
	CycleID   string                     `json:"cycleId"`
	WeekStart time.Time                  `json:"weekStart"`
	Notes     string                     `json:"notes"`
	Updates   map[string]GoalUpdateInput `json:"updates"` // keyed by goal ID
}

// Submit records the week's check-in for a cycle. Submitting the same
// week again replaces the previous notes and values. Recorded values
// live in the check-in history; the goal's displayed current value is
// left alone.
func (s *CheckInService) Submit(userID string, input CheckInInput) (*model.WeeklyCheckIn, error) {
	if len(input.Updates) == 0 {
		return nil, ErrNoGoalUpdates
	}

	// Verify cycle ownership
	cycle, err := s.cycleRepo.ByID(userID, input.CycleID)
	if err != nil {
		return nil, err
	}
	if cycle.IsArchived() {
		return nil, ErrCycleArchived
	}

	// Every referenced goal must belong to the cycle.
	goals, err := s.goalRepo.ByCycle(userID, input.CycleID, true)
	if err != nil {
		return nil, err
	}
	inCycle := make(map[string]bool, len(goals))
	for _, g := range goals {
		inCycle[g.ID] = true
	}
	for goalID := range input.Updates {
		if !inCycle[goalID] {
			return nil, repository.ErrGoalNotFound
		}
	}

	now := time.Now()
	checkIn := &model.WeeklyCheckIn{
		ID:        uuid.New().String(),
		UserID:    userID,
		CycleID:   input.CycleID,
		WeekStart: pacing.WeekStart(input.WeekStart),
		Notes:     input.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, g := range goals {
		u, ok := input.Updates[g.ID]
		if !ok {
			continue
		}
		checkIn.Updates = append(checkIn.Updates, &model.WeeklyGoalUpdate{
			ID:        uuid.New().String(),
			GoalID:    g.ID,
			Value:     u.Value,
			Notes:     u.Notes,
			CreatedAt: now,
		})
	}

	if err := s.repo.Upsert(checkIn); err != nil {
		return nil, fmt.Errorf("failed to save check-in: %w", err)
	}

	return s.repo.ByID(userID, checkIn.ID)
}

func (s *CheckInService) ByID(userID, checkInID string) (*model.WeeklyCheckIn, error) {
	return s.repo.ByID(userID, checkInID)
}

func (s *CheckInService) ByCycle(userID, cycleID string) ([]*model.WeeklyCheckIn, error) {
	// Verify cycle ownership
	if _, err := s.cycleRepo.ByID(userID, cycleID); err != nil {
		return nil, err
	}

	return s.repo.ByCycle(userID, cycleID)
}

// ForWeek returns the check-in covering the week containing at, or
// ErrCheckInNotFound when the week is unlogged.
func (s *CheckInService) ForWeek(userID, cycleID string, at time.Time) (*model.WeeklyCheckIn, error) {
	if _, err := s.cycleRepo.ByID(userID, cycleID); err != nil {
		return nil, err
	}

	return s.repo.ByCycleAndWeek(userID, cycleID, pacing.WeekStart(at))
}

func (s *CheckInService) Delete(userID, checkInID string) error {
	return s.repo.Delete(userID, checkInID)
}
