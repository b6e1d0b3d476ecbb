package model

import "time"

const (
	InsightTypeWeeklySummary = "weekly_summary"
)

// Insight is a cached AI coaching note. Content is the raw markdown returned
// by the model; ContentHTML is the rendered version served to clients.
type Insight struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"-"`
	Type        string    `db:"type" json:"type"`
	Content     string    `db:"content" json:"content"`
	ContentHTML string    `db:"content_html" json:"contentHtml"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
