package categories

import (
	"time"

	"github.com/google/uuid"
)

// BiasCategory is one named bias dimension with the rubric used to prompt models.
// Name is unique and is the key model output is matched against.
type BiasCategory struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewsCategory is a news aggregator topic the ingestion job pulls headlines for.
type NewsCategory struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
}

// SeedResult reports how many rows a catalog seed touched.
type SeedResult struct {
	Bias int `json:"bias"`
	News int `json:"news"`
}
