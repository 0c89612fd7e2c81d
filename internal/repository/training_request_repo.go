package repository

import (
	"context"

	"github.com/EGASHIRAAkihide/karada/internal/models"
)

type TrainingRequestRepository struct {
	db DBTX
}

func NewTrainingRequestRepository(db DBTX) *TrainingRequestRepository {
	return &TrainingRequestRepository{db: db}
}

type CreateTrainingRequestInput struct {
	UserID     int64
	Name       string
	Age        int
	Gender     string
	Goal       string
	Experience string
	Equipment  string
	Concerns   string
	Prompt     string
}

func (r *TrainingRequestRepository) Create(ctx context.Context, input CreateTrainingRequestInput) (*models.TrainingRequest, error) {
	query := `
		INSERT INTO training_requests (user_id, name, age, gender, goal, experience, equipment, concerns, prompt)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, user_id, name, age, gender, goal, experience, equipment, concerns, prompt, created_at
	`
	var request models.TrainingRequest
	err := r.db.QueryRow(ctx, query,
		input.UserID,
		input.Name,
		input.Age,
		input.Gender,
		input.Goal,
		input.Experience,
		input.Equipment,
		input.Concerns,
		input.Prompt,
	).Scan(
		&request.ID,
		&request.UserID,
		&request.Name,
		&request.Age,
		&request.Gender,
		&request.Goal,
		&request.Experience,
		&request.Equipment,
		&request.Concerns,
		&request.Prompt,
		&request.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *TrainingRequestRepository) ListByUserID(ctx context.Context, userID int64) ([]models.TrainingRequest, error) {
	query := `
		SELECT id, user_id, name, age, gender, goal, experience, equipment, concerns, prompt, created_at
		FROM training_requests
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]models.TrainingRequest, 0)
	for rows.Next() {
		var request models.TrainingRequest
		if err := rows.Scan(
			&request.ID,
			&request.UserID,
			&request.Name,
			&request.Age,
			&request.Gender,
			&request.Goal,
			&request.Experience,
			&request.Equipment,
			&request.Concerns,
			&request.Prompt,
			&request.CreatedAt,
		); err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *TrainingRequestRepository) GetByID(ctx context.Context, id int64) (*models.TrainingRequest, error) {
	query := `
		SELECT id, user_id, name, age, gender, goal, experience, equipment, concerns, prompt, created_at
		FROM training_requests
		WHERE id = $1
	`
	var request models.TrainingRequest
	err := r.db.QueryRow(ctx, query, id).Scan(
		&request.ID,
		&request.UserID,
		&request.Name,
		&request.Age,
		&request.Gender,
		&request.Goal,
		&request.Experience,
		&request.Equipment,
		&request.Concerns,
		&request.Prompt,
		&request.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *TrainingRequestRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM training_requests WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
