package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/momentumhq/momentum/internal/model"
	"github.com/momentumhq/momentum/internal/repository"
	"github.com/momentumhq/momentum/internal/validation"
)

// defaultCategories are created for a user the first time their
// category list is read, so goal forms always have something to pick.
var defaultCategories = []model.Category{
	{Name: "Health", Color: "#22c55e", Icon: "heart-pulse", SortOrder: 0},
	{Name: "Career", Color: "#3b82f6", Icon: "briefcase", SortOrder: 1},
	{Name: "Finance", Color: "#f59e0b", Icon: "wallet", SortOrder: 2},
	{Name: "Personal", Color: "#8b5cf6", Icon: "user", SortOrder: 3},
	{Name: "Relationships", Color: "#ec4899", Icon: "users", SortOrder: 4},
	{Name: "Learning", Color: "#06b6d4", Icon: "book-open", SortOrder: 5},
}

type CategoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

type CategoryInput struct {
	Name      string `json:"name"`
	Color     string `json:"color"`
	Icon      string `json:"icon"`
	SortOrder int    `json:"sortOrder"`
}

func (s *CategoryService) Create(userID string, input CategoryInput) (*model.Category, error) {
	if err := validation.ValidateName(input.Name); err != nil {
		return nil, err
	}

	category := &model.Category{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      input.Name,
		Color:     input.Color,
		Icon:      input.Icon,
		SortOrder: input.SortOrder,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(category); err != nil {
		return nil, err
	}

	return category, nil
}

// Categories returns the user's categories, seeding the defaults on
// first access so a fresh account never sees an empty list.
func (s *CategoryService) Categories(userID string) ([]*model.Category, error) {
	categories, err := s.repo.Categories(userID)
	if err != nil {
		return nil, err
	}
	if len(categories) > 0 {
		return categories, nil
	}

	now := time.Now()
	for _, def := range defaultCategories {
		category := def
		category.ID = uuid.New().String()
		category.UserID = userID
		category.CreatedAt = now
		if err := s.repo.Create(&category); err != nil {
			return nil, err
		}
	}

	return s.repo.Categories(userID)
}

func (s *CategoryService) Update(userID, categoryID string, input CategoryInput) (*model.Category, error) {
	if err := validation.ValidateName(input.Name); err != nil {
		return nil, err
	}

	// Verify ownership
	category, err := s.repo.ByID(userID, categoryID)
	if err != nil {
		return nil, err
	}

	category.Name = input.Name
	category.Color = input.Color
	category.Icon = input.Icon
	category.SortOrder = input.SortOrder

	if err := s.repo.Update(category); err != nil {
		return nil, err
	}

	return category, nil
}

func (s *CategoryService) Delete(userID, categoryID string) error {
	return s.repo.Delete(userID, categoryID)
}
