// Package scores persists per-model bias scores for media items.
package scores

import (
	"time"

	"github.com/google/uuid"
)

// Score is one model's rating of one media item along one bias category.
// Score values are stored as returned by the model and are not clamped.
type Score struct {
	ID           uuid.UUID `json:"id"`
	MediaID      uuid.UUID `json:"media_id"`
	CategoryID   uuid.UUID `json:"category_id"`
	CategoryName string    `json:"category_name"`
	Score        float64   `json:"score"`
	Explanation  string    `json:"explanation"`
	Model        string    `json:"model"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateCommand carries the data needed to insert a new score row.
type CreateCommand struct {
	MediaID     uuid.UUID
	CategoryID  uuid.UUID
	Score       float64
	Explanation string
	Model       string
}
