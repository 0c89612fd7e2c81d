package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/EGASHIRAAkihide/karada/internal/models"
)

type WorkoutRepository struct {
	db DBTX
}

func NewWorkoutRepository(db DBTX) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

type WorkoutInput struct {
	ClientID       int64
	Date           time.Time
	ExerciseName   string
	SetsRepsWeight string
	Notes          *string
}

func (r *WorkoutRepository) Create(ctx context.Context, input WorkoutInput) (*models.Workout, error) {
	query := `
		INSERT INTO workouts (client_id, date, exercise_name, sets_reps_weight, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, client_id, date, exercise_name, sets_reps_weight, notes, created_at
	`
	return r.scanOne(r.db.QueryRow(ctx, query,
		input.ClientID,
		input.Date,
		input.ExerciseName,
		input.SetsRepsWeight,
		input.Notes,
	))
}

func (r *WorkoutRepository) ListByClientID(ctx context.Context, clientID int64) ([]models.Workout, error) {
	query := `
		SELECT id, client_id, date, exercise_name, sets_reps_weight, notes, created_at
		FROM workouts
		WHERE client_id = $1
		ORDER BY date DESC, created_at DESC
	`
	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := make([]models.Workout, 0)
	for rows.Next() {
		var workout models.Workout
		if err := rows.Scan(
			&workout.ID,
			&workout.ClientID,
			&workout.Date,
			&workout.ExerciseName,
			&workout.SetsRepsWeight,
			&workout.Notes,
			&workout.CreatedAt,
		); err != nil {
			return nil, err
		}
		workouts = append(workouts, workout)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (r *WorkoutRepository) GetByID(ctx context.Context, id int64) (*models.Workout, error) {
	query := `
		SELECT id, client_id, date, exercise_name, sets_reps_weight, notes, created_at
		FROM workouts
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *WorkoutRepository) Update(ctx context.Context, id int64, input WorkoutInput) (*models.Workout, error) {
	query := `
		UPDATE workouts
		SET date = $1,
			exercise_name = $2,
			sets_reps_weight = $3,
			notes = $4
		WHERE id = $5
		RETURNING id, client_id, date, exercise_name, sets_reps_weight, notes, created_at
	`
	return r.scanOne(r.db.QueryRow(ctx, query,
		input.Date,
		input.ExerciseName,
		input.SetsRepsWeight,
		input.Notes,
		id,
	))
}

func (r *WorkoutRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM workouts WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *WorkoutRepository) scanOne(row pgx.Row) (*models.Workout, error) {
	var workout models.Workout
	err := row.Scan(
		&workout.ID,
		&workout.ClientID,
		&workout.Date,
		&workout.ExerciseName,
		&workout.SetsRepsWeight,
		&workout.Notes,
		&workout.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &workout, nil
}
