// Package media implements the media domain: articles submitted by users or
// ingested from the news aggregator, which are the subjects of bias scoring.
package media

import (
	"time"

	"github.com/google/uuid"
)

// TypeArticle is the media type recorded for news articles.
const TypeArticle = "article"

// Media is a live media item awaiting or carrying bias scores.
type Media struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	URL           string     `json:"url"`
	Source        string     `json:"source"`
	Description   *string    `json:"description"`
	ImageURL      *string    `json:"image_url"`
	MediaType     string     `json:"media_type"`
	CategoryID    *uuid.UUID `json:"category_id"`
	UserSubmitted bool       `json:"is_user_submitted"`
	ExternalID    *string    `json:"external_id"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CreateCommand carries the data needed to register a new media item.
// An empty MediaType defaults to TypeArticle.
type CreateCommand struct {
	Title         string
	URL           string
	Source        string
	Description   *string
	ImageURL      *string
	MediaType     string
	CategoryID    *uuid.UUID
	UserSubmitted bool
	ExternalID    *string
}
