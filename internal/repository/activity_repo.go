package repository

import (
	"context"
	"time"

	"github.com/EGASHIRAAkihide/karada/internal/models"
)

type ActivityRepository struct {
	db DBTX
}

func NewActivityRepository(db DBTX) *ActivityRepository {
	return &ActivityRepository{db: db}
}

type CreateActivityInput struct {
	UserID   int64
	Action   string
	Target   *string
	Metadata map[string]any
}

func (r *ActivityRepository) Create(ctx context.Context, input CreateActivityInput) (*models.Activity, error) {
	query := `
		INSERT INTO activities (user_id, action, target, metadata)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, action, target, metadata, created_at
	`
	var activity models.Activity
	err := r.db.QueryRow(ctx, query, input.UserID, input.Action, input.Target, input.Metadata).Scan(
		&activity.ID,
		&activity.UserID,
		&activity.Action,
		&activity.Target,
		&activity.Metadata,
		&activity.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

// ActivityListFilter narrows the audit listing. Zero values mean no filter.
type ActivityListFilter struct {
	Action string
	Date   *time.Time
	Limit  int
}

func (r *ActivityRepository) List(ctx context.Context, filter ActivityListFilter) ([]models.Activity, error) {
	query := `
		SELECT id, user_id, action, target, metadata, created_at
		FROM activities
		WHERE ($1 = '' OR action = $1)
		  AND ($2::date IS NULL OR created_at::date = $2::date)
		ORDER BY created_at DESC
		LIMIT $3
	`
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx, query, filter.Action, filter.Date, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := make([]models.Activity, 0)
	for rows.Next() {
		var activity models.Activity
		if err := rows.Scan(
			&activity.ID,
			&activity.UserID,
			&activity.Action,
			&activity.Target,
			&activity.Metadata,
			&activity.CreatedAt,
		); err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *ActivityRepository) ListRecent(ctx context.Context, limit int) ([]models.Activity, error) {
	return r.List(ctx, ActivityListFilter{Limit: limit})
}
