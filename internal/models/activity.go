package models

import "time"

// Activity is an append-only audit record. Rows are written as a side effect
// of other mutations and never updated.
type Activity struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"user_id"`
	Action    string         `json:"action"`
	Target    *string        `json:"target"`
	Metadata  map[string]any `json:"metadata"`
	CreatedAt time.Time      `json:"created_at"`
}
