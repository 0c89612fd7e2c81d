package models

import "time"

type Workout struct {
	ID             int64     `json:"id"`
	ClientID       int64     `json:"client_id"`
	Date           time.Time `json:"date"`
	ExerciseName   string    `json:"exercise_name"`
	SetsRepsWeight string    `json:"sets_reps_weight"`
	Notes          *string   `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
}
