package model

import "time"

// WeeklyCheckIn is one user's snapshot for one (cycle, week). The storage
// layer enforces uniqueness on (cycle_id, week_start); resubmitting the same
// week updates in place.
type WeeklyCheckIn struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"-"`
	CycleID   string    `db:"cycle_id" json:"cycleId"`
	WeekStart time.Time `db:"week_start" json:"weekStart"`
	Notes     string    `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	// Loaded alongside the check-in, never stored on this row
	Updates []*WeeklyGoalUpdate `db:"-" json:"updates,omitempty"`
}

// WeeklyGoalUpdate records a point-in-time value for one goal within one
// check-in. These rows are the authoritative progress history used for
// sparklines; they do not mutate the goal's current value.
type WeeklyGoalUpdate struct {
	ID        string    `db:"id" json:"id"`
	CheckInID string    `db:"check_in_id" json:"-"`
	GoalID    string    `db:"goal_id" json:"goalId"`
	Value     float64   `db:"value" json:"value"`
	Notes     string    `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	// Resolved at fetch time for history/activity views
	Goal *Goal `db:"-" json:"-"`
}
