package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/momentumhq/momentum/internal/model"
)

var (
	ErrCheckInNotFound = errors.New("check-in not found")
)

type CheckInRepository interface {
	// Upsert atomically creates or updates the check-in for its
	// (cycle, week start) key along with its per-goal update rows.
	// Repeated submissions for the same week replace notes and values
	// instead of inserting duplicates. The check-in's ID is rewritten
	// to the stored row's ID when an existing week is updated.
	Upsert(checkIn *model.WeeklyCheckIn) error
	ByID(userID, checkInID string) (*model.WeeklyCheckIn, error)
	ByCycleAndWeek(userID, cycleID string, weekStart time.Time) (*model.WeeklyCheckIn, error)
	// ByCycle returns the cycle's check-ins oldest first, each with
	// its goal updates and their goals attached.
	ByCycle(userID, cycleID string) ([]*model.WeeklyCheckIn, error)
	// RecentUpdates returns the user's latest goal update rows, newest
	// first, each with its goal attached. This feeds the activity view.
	RecentUpdates(userID string, limit int) ([]*model.WeeklyGoalUpdate, error)
	WeekStarts(userID string) ([]time.Time, error)
	CountByUser(userID string) (int, error)
	Delete(userID, checkInID string) error
}

type checkInRepository struct {
	db *sqlx.DB
}

func NewCheckInRepository(db *sqlx.DB) CheckInRepository {
	return &checkInRepository{db: db}
}

func (r *checkInRepository) Upsert(checkIn *model.WeeklyCheckIn) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO weekly_check_ins (id, user_id, cycle_id, week_start, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          ON CONFLICT (cycle_id, week_start) DO UPDATE
	          SET notes = excluded.notes, updated_at = excluded.updated_at`

	_, err = tx.Exec(query,
		checkIn.ID,
		checkIn.UserID,
		checkIn.CycleID,
		checkIn.WeekStart,
		checkIn.Notes,
		checkIn.CreatedAt,
		checkIn.UpdatedAt,
	)
	if err != nil {
		return err
	}

	// On conflict the pre-existing row keeps its ID; the update rows
	// below must reference that one.
	var storedID string
	err = tx.QueryRow(
		`SELECT id FROM weekly_check_ins WHERE cycle_id = $1 AND week_start = $2`,
		checkIn.CycleID, checkIn.WeekStart,
	).Scan(&storedID)
	if err != nil {
		return err
	}
	checkIn.ID = storedID

	updateQuery := `INSERT INTO weekly_goal_updates (id, check_in_id, goal_id, value, notes, created_at)
	                VALUES ($1, $2, $3, $4, $5, $6)
	                ON CONFLICT (goal_id, check_in_id) DO UPDATE
	                SET value = excluded.value, notes = excluded.notes`

	for _, u := range checkIn.Updates {
		u.CheckInID = storedID
		_, err = tx.Exec(updateQuery,
			u.ID,
			u.CheckInID,
			u.GoalID,
			u.Value,
			u.Notes,
			u.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *checkInRepository) ByID(userID, checkInID string) (*model.WeeklyCheckIn, error) {
	checkIn := &model.WeeklyCheckIn{}
	query := `SELECT * FROM weekly_check_ins WHERE id = $1 AND user_id = $2`

	err := r.db.Get(checkIn, query, checkInID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrCheckInNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.attachUpdates([]*model.WeeklyCheckIn{checkIn}); err != nil {
		return nil, err
	}

	return checkIn, nil
}

func (r *checkInRepository) ByCycleAndWeek(userID, cycleID string, weekStart time.Time) (*model.WeeklyCheckIn, error) {
	checkIn := &model.WeeklyCheckIn{}
	query := `SELECT * FROM weekly_check_ins WHERE user_id = $1 AND cycle_id = $2 AND week_start = $3`

	err := r.db.Get(checkIn, query, userID, cycleID, weekStart)
	if err == sql.ErrNoRows {
		return nil, ErrCheckInNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.attachUpdates([]*model.WeeklyCheckIn{checkIn}); err != nil {
		return nil, err
	}

	return checkIn, nil
}

func (r *checkInRepository) ByCycle(userID, cycleID string) ([]*model.WeeklyCheckIn, error) {
	var checkIns []*model.WeeklyCheckIn
	query := `SELECT * FROM weekly_check_ins WHERE user_id = $1 AND cycle_id = $2 ORDER BY week_start ASC`

	err := r.db.Select(&checkIns, query, userID, cycleID)
	if err != nil {
		return nil, err
	}

	if err := r.attachUpdates(checkIns); err != nil {
		return nil, err
	}

	return checkIns, nil
}

func (r *checkInRepository) RecentUpdates(userID string, limit int) ([]*model.WeeklyGoalUpdate, error) {
	var updates []*model.WeeklyGoalUpdate
	query := `SELECT u.* FROM weekly_goal_updates u
	          JOIN goals g ON g.id = u.goal_id
	          WHERE g.user_id = $1
	          ORDER BY u.created_at DESC, u.id DESC LIMIT $2`

	err := r.db.Select(&updates, query, userID, limit)
	if err != nil {
		return nil, err
	}

	goalIDs := make([]string, 0, len(updates))
	seen := make(map[string]bool, len(updates))
	for _, u := range updates {
		if !seen[u.GoalID] {
			seen[u.GoalID] = true
			goalIDs = append(goalIDs, u.GoalID)
		}
	}

	if len(goalIDs) > 0 {
		query, args, err := sqlx.In(`SELECT * FROM goals WHERE id IN (?)`, goalIDs)
		if err != nil {
			return nil, err
		}

		var rows []*model.Goal
		if err := r.db.Select(&rows, r.db.Rebind(query), args...); err != nil {
			return nil, err
		}
		goals := make(map[string]*model.Goal, len(rows))
		for _, g := range rows {
			goals[g.ID] = g
		}
		for _, u := range updates {
			u.Goal = goals[u.GoalID]
		}
	}

	return updates, nil
}

func (r *checkInRepository) WeekStarts(userID string) ([]time.Time, error) {
	var weeks []time.Time
	query := `SELECT week_start FROM weekly_check_ins WHERE user_id = $1 ORDER BY week_start DESC`

	err := r.db.Select(&weeks, query, userID)
	if err != nil {
		return nil, err
	}

	return weeks, nil
}

func (r *checkInRepository) CountByUser(userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM weekly_check_ins WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&count)
	return count, err
}

func (r *checkInRepository) Delete(userID, checkInID string) error {
	query := `DELETE FROM weekly_check_ins WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(query, checkInID, userID)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrCheckInNotFound
	}

	return nil
}

// attachUpdates fills in each check-in's goal updates and their goals.
func (r *checkInRepository) attachUpdates(checkIns []*model.WeeklyCheckIn) error {
	if len(checkIns) == 0 {
		return nil
	}

	ids := make([]string, len(checkIns))
	byID := make(map[string]*model.WeeklyCheckIn, len(checkIns))
	for i, ci := range checkIns {
		ids[i] = ci.ID
		byID[ci.ID] = ci
	}

	query, args, err := sqlx.In(`SELECT * FROM weekly_goal_updates WHERE check_in_id IN (?) ORDER BY created_at ASC`, ids)
	if err != nil {
		return err
	}

	var updates []*model.WeeklyGoalUpdate
	if err := r.db.Select(&updates, r.db.Rebind(query), args...); err != nil {
		return err
	}

	goalIDs := make([]string, 0, len(updates))
	seen := make(map[string]bool, len(updates))
	for _, u := range updates {
		if !seen[u.GoalID] {
			seen[u.GoalID] = true
			goalIDs = append(goalIDs, u.GoalID)
		}
	}

	goals := make(map[string]*model.Goal, len(goalIDs))
	if len(goalIDs) > 0 {
		query, args, err := sqlx.In(`SELECT * FROM goals WHERE id IN (?)`, goalIDs)
		if err != nil {
			return err
		}

		var rows []*model.Goal
		if err := r.db.Select(&rows, r.db.Rebind(query), args...); err != nil {
			return err
		}
		for _, g := range rows {
			goals[g.ID] = g
		}
	}

	for _, u := range updates {
		u.Goal = goals[u.GoalID]
		if ci, ok := byID[u.CheckInID]; ok {
			ci.Updates = append(ci.Updates, u)
		}
	}

	return nil
}
