package repository

import (
	"context"

	"github.com/EGASHIRAAkihide/karada/internal/models"
)

type ProfileRepository struct {
	db DBTX
}

func NewProfileRepository(db DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) CreateEmpty(ctx context.Context, userID int64, role string) error {
	query := `INSERT INTO profiles (user_id, role) VALUES ($1, $2)`
	_, err := r.db.Exec(ctx, query, userID, role)
	return err
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	query := `
		SELECT id, user_id, name, email, role, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	var profile models.Profile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Name,
		&profile.Email,
		&profile.Role,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

type UpdateProfileInput struct {
	Name  string
	Email string
	Role  string
}

func (r *ProfileRepository) Update(ctx context.Context, userID int64, req UpdateProfileInput) (*models.Profile, error) {
	query := `
		UPDATE profiles
		SET name = $1,
			email = $2,
			role = $3,
			updated_at = NOW()
		WHERE user_id = $4
		RETURNING id, user_id, name, email, role, created_at, updated_at
	`
	var profile models.Profile
	err := r.db.QueryRow(ctx, query, req.Name, req.Email, req.Role, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Name,
		&profile.Email,
		&profile.Role,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
