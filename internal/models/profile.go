package models

import "time"

// Profile holds the self-service account data shown on the dashboard.
// A row is created empty during registration and filled in by its owner.
type Profile struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      *string   `json:"name"`
	Email     *string   `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
