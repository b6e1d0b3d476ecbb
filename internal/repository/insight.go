package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/momentumhq/momentum/internal/model"
)

var (
	ErrInsightNotFound = errors.New("insight not found")
)

type InsightRepository interface {
	Create(insight *model.Insight) error
	// LatestSince returns the user's newest insight of the given type
	// created at or after cutoff. ErrInsightNotFound when the cache
	// window is empty.
	LatestSince(userID, insightType string, cutoff time.Time) (*model.Insight, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type insightRepository struct {
	db *sqlx.DB
}

func NewInsightRepository(db *sqlx.DB) InsightRepository {
	return &insightRepository{db: db}
}

func (r *insightRepository) Create(insight *model.Insight) error {
	query := `INSERT INTO insights (id, user_id, type, content, content_html, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		insight.ID,
		insight.UserID,
		insight.Type,
		insight.Content,
		insight.ContentHTML,
		insight.CreatedAt,
	)

	return err
}

func (r *insightRepository) LatestSince(userID, insightType string, cutoff time.Time) (*model.Insight, error) {
	insight := &model.Insight{}
	query := `SELECT * FROM insights
	          WHERE user_id = $1 AND type = $2 AND created_at >= $3
	          ORDER BY created_at DESC LIMIT 1`

	err := r.db.Get(insight, query, userID, insightType, cutoff)
	if err == sql.ErrNoRows {
		return nil, ErrInsightNotFound
	}

	return insight, err
}

func (r *insightRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM insights WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
