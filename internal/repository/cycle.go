package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/momentumhq/momentum/internal/model"
)

var (
	ErrCycleNotFound = errors.New("cycle not found")
)

type CycleRepository interface {
	Create(cycle *model.Cycle) error
	ByID(userID, cycleID string) (*model.Cycle, error)
	Cycles(userID string, includeArchived bool) ([]*model.Cycle, error)
	// Current returns the unarchived cycle whose date window contains
	// now, preferring the most recently started. ErrCycleNotFound when
	// none is running.
	Current(userID string, now time.Time) (*model.Cycle, error)
	CountActive(userID string) (int, error)
	Update(cycle *model.Cycle) error
	Archive(userID, cycleID string) error
	Delete(userID, cycleID string) error
}

type cycleRepository struct {
	db *sqlx.DB
}

func NewCycleRepository(db *sqlx.DB) CycleRepository {
	return &cycleRepository{db: db}
}

func (r *cycleRepository) Create(cycle *model.Cycle) error {
	query := `INSERT INTO cycles (id, user_id, name, start_date, end_date, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		cycle.ID,
		cycle.UserID,
		cycle.Name,
		cycle.StartDate,
		cycle.EndDate,
		cycle.CreatedAt,
		cycle.UpdatedAt,
	)

	return err
}

func (r *cycleRepository) ByID(userID, cycleID string) (*model.Cycle, error) {
	cycle := &model.Cycle{}
	query := `SELECT * FROM cycles WHERE id = $1 AND user_id = $2`

	err := r.db.Get(cycle, query, cycleID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrCycleNotFound
	}

	return cycle, err
}

func (r *cycleRepository) Cycles(userID string, includeArchived bool) ([]*model.Cycle, error) {
	var cycles []*model.Cycle

	query := `SELECT * FROM cycles WHERE user_id = $1`
	if !includeArchived {
		query += ` AND archived_at IS NULL`
	}
	query += ` ORDER BY start_date DESC`

	err := r.db.Select(&cycles, query, userID)
	if err != nil {
		return nil, err
	}

	return cycles, nil
}

func (r *cycleRepository) Current(userID string, now time.Time) (*model.Cycle, error) {
	cycle := &model.Cycle{}
	query := `SELECT * FROM cycles
	          WHERE user_id = $1 AND archived_at IS NULL AND start_date <= $2 AND end_date >= $2
	          ORDER BY start_date DESC LIMIT 1`

	err := r.db.Get(cycle, query, userID, now)
	if err == sql.ErrNoRows {
		return nil, ErrCycleNotFound
	}

	return cycle, err
}

func (r *cycleRepository) CountActive(userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM cycles WHERE user_id = $1 AND archived_at IS NULL`
	err := r.db.QueryRow(query, userID).Scan(&count)
	return count, err
}

func (r *cycleRepository) Update(cycle *model.Cycle) error {
	query := `UPDATE cycles
	          SET name = $1, start_date = $2, end_date = $3, updated_at = $4
	          WHERE id = $5 AND user_id = $6`

	result, err := r.db.Exec(query,
		cycle.Name,
		cycle.StartDate,
		cycle.EndDate,
		time.Now(),
		cycle.ID,
		cycle.UserID,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrCycleNotFound
	}

	return nil
}

func (r *cycleRepository) Archive(userID, cycleID string) error {
	query := `UPDATE cycles SET archived_at = $1, updated_at = $1 WHERE id = $2 AND user_id = $3 AND archived_at IS NULL`
	result, err := r.db.Exec(query, time.Now(), cycleID, userID)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrCycleNotFound
	}

	return nil
}

func (r *cycleRepository) Delete(userID, cycleID string) error {
	query := `DELETE FROM cycles WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(query, cycleID, userID)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrCycleNotFound
	}

	return nil
}
