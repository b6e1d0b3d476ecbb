package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/momentumhq/momentum/internal/model"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	Create(goal *model.Goal) error
	ByID(userID, goalID string) (*model.Goal, error)
	ByCycle(userID, cycleID string, includeArchived bool) ([]*model.Goal, error)
	ActiveByUser(userID string) ([]*model.Goal, error)
	RecentByUser(userID string, limit int) ([]*model.Goal, error)
	CountActiveInCycle(userID, cycleID string) (int, error)
	Update(goal *model.Goal) error
	Archive(userID, goalID string) error
	Delete(userID, goalID string) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(goal *model.Goal) error {
	query := `INSERT INTO goals (id, user_id, cycle_id, category_id, title, description, unit,
	                             start_value, target_value, current_value, direction, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.Exec(query,
		goal.ID,
		goal.UserID,
		goal.CycleID,
		goal.CategoryID,
		goal.Title,
		goal.Description,
		goal.Unit,
		goal.StartValue,
		goal.TargetValue,
		goal.CurrentValue,
		goal.Direction,
		goal.CreatedAt,
		goal.UpdatedAt,
	)

	return err
}

func (r *goalRepository) ByID(userID, goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1 AND user_id = $2`

	err := r.db.Get(goal, query, goalID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}

	return goal, err
}

func (r *goalRepository) ByCycle(userID, cycleID string, includeArchived bool) ([]*model.Goal, error) {
	var goals []*model.Goal

	query := `SELECT * FROM goals WHERE user_id = $1 AND cycle_id = $2`
	if !includeArchived {
		query += ` AND archived_at IS NULL`
	}
	query += ` ORDER BY created_at ASC`

	err := r.db.Select(&goals, query, userID, cycleID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

// ActiveByUser returns the unarchived goals belonging to the user's
// unarchived cycles, in creation order. This is the goal set the life
// score is computed over.
func (r *goalRepository) ActiveByUser(userID string) ([]*model.Goal, error) {
	var goals []*model.Goal

	query := `SELECT g.* FROM goals g
	          JOIN cycles c ON c.id = g.cycle_id
	          WHERE g.user_id = $1 AND g.archived_at IS NULL AND c.archived_at IS NULL
	          ORDER BY g.created_at ASC`

	err := r.db.Select(&goals, query, userID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

// RecentByUser returns the user's most recently created goals,
// archived or not, newest first.
func (r *goalRepository) RecentByUser(userID string, limit int) ([]*model.Goal, error) {
	var goals []*model.Goal

	query := `SELECT * FROM goals WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`

	err := r.db.Select(&goals, query, userID, limit)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) CountActiveInCycle(userID, cycleID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM goals WHERE user_id = $1 AND cycle_id = $2 AND archived_at IS NULL`
	err := r.db.QueryRow(query, userID, cycleID).Scan(&count)
	return count, err
}

func (r *goalRepository) Update(goal *model.Goal) error {
	query := `UPDATE goals
	          SET category_id = $1, title = $2, description = $3, unit = $4,
	              start_value = $5, target_value = $6, current_value = $7, direction = $8, updated_at = $9
	          WHERE id = $10 AND user_id = $11`

	result, err := r.db.Exec(query,
		goal.CategoryID,
		goal.Title,
		goal.Description,
		goal.Unit,
		goal.StartValue,
		goal.TargetValue,
		goal.CurrentValue,
		goal.Direction,
		time.Now(),
		goal.ID,
		goal.UserID,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func (r *goalRepository) Archive(userID, goalID string) error {
	query := `UPDATE goals SET archived_at = $1, updated_at = $1 WHERE id = $2 AND user_id = $3 AND archived_at IS NULL`
	result, err := r.db.Exec(query, time.Now(), goalID, userID)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func (r *goalRepository) Delete(userID, goalID string) error {
	query := `DELETE FROM goals WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(query, goalID, userID)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}
