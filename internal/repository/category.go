package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/momentumhq/momentum/internal/model"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
)

type CategoryRepository interface {
	Create(category *model.Category) error
	ByID(userID, categoryID string) (*model.Category, error)
	Categories(userID string) ([]*model.Category, error)
	Update(category *model.Category) error
	Delete(userID, categoryID string) error
}

type categoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *model.Category) error {
	query := `INSERT INTO categories (id, user_id, name, color, icon, sort_order, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		category.ID,
		category.UserID,
		category.Name,
		category.Color,
		category.Icon,
		category.SortOrder,
		category.CreatedAt,
	)

	return err
}

func (r *categoryRepository) ByID(userID, categoryID string) (*model.Category, error) {
	category := &model.Category{}
	query := `SELECT * FROM categories WHERE id = $1 AND user_id = $2`

	err := r.db.Get(category, query, categoryID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrCategoryNotFound
	}

	return category, err
}

func (r *categoryRepository) Categories(userID string) ([]*model.Category, error) {
	var categories []*model.Category
	query := `SELECT * FROM categories WHERE user_id = $1 ORDER BY sort_order ASC, name ASC`

	err := r.db.Select(&categories, query, userID)
	if err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *categoryRepository) Update(category *model.Category) error {
	query := `UPDATE categories SET name = $1, color = $2, icon = $3, sort_order = $4
	          WHERE id = $5 AND user_id = $6`

	result, err := r.db.Exec(query,
		category.Name,
		category.Color,
		category.Icon,
		category.SortOrder,
		category.ID,
		category.UserID,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

func (r *categoryRepository) Delete(userID, categoryID string) error {
	query := `DELETE FROM categories WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(query, categoryID, userID)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrCategoryNotFound
	}

	return nil
}
