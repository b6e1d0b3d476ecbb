package model

import (
	"time"
)

// Cycle is a time-boxed window (typically 12 weeks) that owns a set of goals.
type Cycle struct {
	ID         string     `db:"id" json:"id"`
	UserID     string     `db:"user_id" json:"-"`
	Name       string     `db:"name" json:"name"`
	StartDate  time.Time  `db:"start_date" json:"startDate"`
	EndDate    time.Time  `db:"end_date" json:"endDate"`
	ArchivedAt *time.Time `db:"archived_at" json:"archivedAt,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updatedAt"`

	// Computed fields (not in database)
	GoalCount int `db:"-" json:"goalCount"`
}

func (c *Cycle) IsArchived() bool {
	return c.ArchivedAt != nil
}
