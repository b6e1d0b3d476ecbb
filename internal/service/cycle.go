package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momentumhq/momentum/internal/model"
	"github.com/momentumhq/momentum/internal/repository"
	"github.com/momentumhq/momentum/internal/validation"
)

var (
	ErrCycleLimitReached = errors.New("free plan cycle limit reached")
)

type CycleService struct {
	repo                repository.CycleRepository
	goalRepo            repository.GoalRepository
	subscriptionService *SubscriptionService
}

func NewCycleService(
	repo repository.CycleRepository,
	goalRepo repository.GoalRepository,
	subscriptionService *SubscriptionService,
) *CycleService {
	return &CycleService{
		repo:                repo,
		goalRepo:            goalRepo,
		subscriptionService: subscriptionService,
	}
}

type CycleInput struct {
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

func (s *CycleService) Create(userID string, input CycleInput) (*model.Cycle, error) {
	if err := validation.ValidateCycleName(input.Name); err != nil {
		return nil, err
	}
	if err := validation.ValidateCycleDates(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	subscription, err := s.subscriptionService.Subscription(userID)
	if err != nil {
		return nil, err
	}

	// Check active cycle limit based on plan
	limit := subscription.ActiveCycleLimit()
	if limit != -1 { // -1 means unlimited
		count, err := s.repo.CountActive(userID)
		if err != nil {
			return nil, err
		}

		if count >= limit {
			return nil, ErrCycleLimitReached
		}
	}

	now := time.Now()
	cycle := &model.Cycle{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      input.Name,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.repo.Create(cycle)
	if err != nil {
		return nil, fmt.Errorf("failed to create cycle: %w", err)
	}

	return cycle, nil
}

func (s *CycleService) ByID(userID, cycleID string) (*model.Cycle, error) {
	return s.repo.ByID(userID, cycleID)
}

func (s *CycleService) Cycles(userID string, includeArchived bool) ([]*model.Cycle, error) {
	cycles, err := s.repo.Cycles(userID, includeArchived)
	if err != nil {
		return nil, err
	}

	for _, c := range cycles {
		count, err := s.goalRepo.CountActiveInCycle(userID, c.ID)
		if err != nil {
			return nil, err
		}
		c.GoalCount = count
	}

	return cycles, nil
}

// Current returns the cycle running right now, or ErrCycleNotFound.
func (s *CycleService) Current(userID string, now time.Time) (*model.Cycle, error) {
	return s.repo.Current(userID, now)
}

func (s *CycleService) Update(userID, cycleID string, input CycleInput) (*model.Cycle, error) {
	if err := validation.ValidateCycleName(input.Name); err != nil {
		return nil, err
	}
	if err := validation.ValidateCycleDates(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	// Verify ownership
	cycle, err := s.repo.ByID(userID, cycleID)
	if err != nil {
		return nil, err
	}

	cycle.Name = input.Name
	cycle.StartDate = input.StartDate
	cycle.EndDate = input.EndDate
	cycle.UpdatedAt = time.Now()

	if err := s.repo.Update(cycle); err != nil {
		return nil, err
	}

	return cycle, nil
}

func (s *CycleService) Archive(userID, cycleID string) error {
	return s.repo.Archive(userID, cycleID)
}

func (s *CycleService) Delete(userID, cycleID string) error {
	// Verify ownership
	_, err := s.repo.ByID(userID, cycleID)
	if err != nil {
		return err
	}

	return s.repo.Delete(userID, cycleID)
}
