package models

import "time"

// TrainingRequest stores a generated training-plan prompt together with the
// form inputs it was built from.
type TrainingRequest struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Name       string    `json:"name"`
	Age        int       `json:"age"`
	Gender     string    `json:"gender"`
	Goal       string    `json:"goal"`
	Experience string    `json:"experience"`
	Equipment  string    `json:"equipment"`
	Concerns   string    `json:"concerns"`
	Prompt     string    `json:"prompt"`
	CreatedAt  time.Time `json:"created_at"`
}
