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
	ErrGoalLimitReached = errors.New("free plan goal limit reached")
	ErrCycleArchived    = errors.New("cycle is archived")
)

type GoalService struct {
	repo                repository.GoalRepository
	cycleRepo           repository.CycleRepository
	categoryRepo        repository.CategoryRepository
	subscriptionService *SubscriptionService
}

func NewGoalService(
	repo repository.GoalRepository,
	cycleRepo repository.CycleRepository,
	categoryRepo repository.CategoryRepository,
	subscriptionService *SubscriptionService,
) *GoalService {
	return &GoalService{
		repo:                repo,
		cycleRepo:           cycleRepo,
		categoryRepo:        categoryRepo,
		subscriptionService: subscriptionService,
	}
}

type GoalInput struct {
	CycleID     string  `json:"cycleId"`
	CategoryID  *string `json:"categoryId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	StartValue  float64 `json:"startValue"`
	TargetValue float64 `json:"targetValue"`
	Direction   string  `json:"direction"`
}

func (s *GoalService) Create(userID string, input GoalInput) (*model.Goal, error) {
	if err := validation.ValidateGoalTitle(input.Title); err != nil {
		return nil, err
	}
	if err := validation.ValidateGoalRange(input.StartValue, input.TargetValue, input.Direction); err != nil {
		return nil, err
	}

	// Verify cycle ownership
	cycle, err := s.cycleRepo.ByID(userID, input.CycleID)
	if err != nil {
		return nil, err
	}
	if cycle.IsArchived() {
		return nil, ErrCycleArchived
	}

	if input.CategoryID != nil {
		// Verify category ownership
		if _, err := s.categoryRepo.ByID(userID, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	subscription, err := s.subscriptionService.Subscription(userID)
	if err != nil {
		return nil, err
	}

	// Check goal limit based on plan
	limit := subscription.GoalLimit()
	if limit != -1 { // -1 means unlimited
		count, err := s.repo.CountActiveInCycle(userID, input.CycleID)
		if err != nil {
			return nil, err
		}

		if count >= limit {
			return nil, ErrGoalLimitReached
		}
	}

	now := time.Now()
	goal := &model.Goal{
		ID:           uuid.New().String(),
		UserID:       userID,
		CycleID:      input.CycleID,
		CategoryID:   input.CategoryID,
		Title:        input.Title,
		Description:  input.Description,
		Unit:         input.Unit,
		StartValue:   input.StartValue,
		TargetValue:  input.TargetValue,
		CurrentValue: input.StartValue,
		Direction:    input.Direction,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.repo.Create(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return goal, nil
}

func (s *GoalService) ByID(userID, goalID string) (*model.Goal, error) {
	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	if err := attachCategories(s.categoryRepo, userID, []*model.Goal{goal}); err != nil {
		return nil, err
	}

	return goal, nil
}

func (s *GoalService) ByCycle(userID, cycleID string, includeArchived bool) ([]*model.Goal, error) {
	// Verify cycle ownership
	if _, err := s.cycleRepo.ByID(userID, cycleID); err != nil {
		return nil, err
	}

	goals, err := s.repo.ByCycle(userID, cycleID, includeArchived)
	if err != nil {
		return nil, err
	}

	if err := attachCategories(s.categoryRepo, userID, goals); err != nil {
		return nil, err
	}

	return goals, nil
}

func (s *GoalService) Update(userID, goalID string, input GoalInput) (*model.Goal, error) {
	if err := validation.ValidateGoalTitle(input.Title); err != nil {
		return nil, err
	}
	if err := validation.ValidateGoalRange(input.StartValue, input.TargetValue, input.Direction); err != nil {
		return nil, err
	}

	// Verify ownership
	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		if _, err := s.categoryRepo.ByID(userID, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	goal.CategoryID = input.CategoryID
	goal.Title = input.Title
	goal.Description = input.Description
	goal.Unit = input.Unit
	goal.StartValue = input.StartValue
	goal.TargetValue = input.TargetValue
	goal.Direction = input.Direction
	goal.UpdatedAt = time.Now()

	if err := s.repo.Update(goal); err != nil {
		return nil, err
	}

	return goal, nil
}

// UpdateCurrentValue sets the goal's displayed current value directly,
// outside of a weekly check-in.
func (s *GoalService) UpdateCurrentValue(userID, goalID string, value float64) (*model.Goal, error) {
	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	goal.CurrentValue = value
	goal.UpdatedAt = time.Now()

	if err := s.repo.Update(goal); err != nil {
		return nil, err
	}

	return goal, nil
}

func (s *GoalService) Archive(userID, goalID string) error {
	return s.repo.Archive(userID, goalID)
}

func (s *GoalService) Delete(userID, goalID string) error {
	// Verify ownership
	_, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return err
	}

	return s.repo.Delete(userID, goalID)
}

// attachCategories resolves each goal's CategoryID into a typed
// Category. Shared by every read path that serves goals, so focus
// goals and coaching snapshots carry the category too.
func attachCategories(categoryRepo repository.CategoryRepository, userID string, goals []*model.Goal) error {
	needed := false
	for _, g := range goals {
		if g.CategoryID != nil {
			needed = true
			break
		}
	}
	if !needed {
		return nil
	}

	categories, err := categoryRepo.Categories(userID)
	if err != nil {
		return err
	}

	byID := make(map[string]*model.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	for _, g := range goals {
		if g.CategoryID != nil {
			g.Category = byID[*g.CategoryID]
		}
	}

	return nil
}
