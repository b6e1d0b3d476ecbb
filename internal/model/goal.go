package model

import (
	"time"
)

const (
	DirectionIncrease = "increase"
	DirectionDecrease = "decrease"
)

// Goal is a quantitative target inside a cycle. Progress moves from
// StartValue toward TargetValue in the given direction; CurrentValue is the
// latest directly reported value, while weekly check-in updates keep their
// own history.
type Goal struct {
	ID           string     `db:"id" json:"id"`
	UserID       string     `db:"user_id" json:"-"`
	CycleID      string     `db:"cycle_id" json:"cycleId"`
	CategoryID   *string    `db:"category_id" json:"-"`
	Title        string     `db:"title" json:"title"`
	Description  string     `db:"description" json:"description,omitempty"`
	Unit         string     `db:"unit" json:"unit,omitempty"`
	StartValue   float64    `db:"start_value" json:"startValue"`
	TargetValue  float64    `db:"target_value" json:"targetValue"`
	CurrentValue float64    `db:"current_value" json:"currentValue"`
	Direction    string     `db:"direction" json:"direction"`
	ArchivedAt   *time.Time `db:"archived_at" json:"archivedAt,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`

	// Resolved at fetch time, never stored
	Category *Category `db:"-" json:"category,omitempty"`
}

func (g *Goal) IsArchived() bool {
	return g.ArchivedAt != nil
}
