package scores

import (
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/JaimeStill/biaslens/pkg/query"
	"github.com/JaimeStill/biaslens/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "scores", "s").
	Project("id", "ID").
	Project("media_id", "MediaID").
	Project("category_id", "CategoryID").
	Project("score", "Score").
	Project("explanation", "Explanation").
	Project("model", "Model").
	Project("created_at", "CreatedAt").
	Join("public", "bias_categories", "c", "JOIN", "c.id = s.category_id").
	Project("name", "CategoryName")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for score queries.
// Nil fields are ignored. All fields use exact matching.
type Filters struct {
	MediaID    *uuid.UUID `json:"media_id,omitempty"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	Model      *string    `json:"model,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("MediaID", f.MediaID).
		WhereEquals("CategoryID", f.CategoryID).
		WhereEquals("Model", f.Model)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// A malformed UUID returns an error wrapping ErrInvalidFilter.
func FiltersFromQuery(values url.Values) (Filters, error) {
	var f Filters

	if v := values.Get("media_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return f, fmt.Errorf("%w: media_id %q", ErrInvalidFilter, v)
		}
		f.MediaID = &id
	}

	if v := values.Get("category_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return f, fmt.Errorf("%w: category_id %q", ErrInvalidFilter, v)
		}
		f.CategoryID = &id
	}

	if m := values.Get("model"); m != "" {
		f.Model = &m
	}

	return f, nil
}

func scanScore(s repository.Scanner) (Score, error) {
	var sc Score
	err := s.Scan(
		&sc.ID,
		&sc.MediaID,
		&sc.CategoryID,
		&sc.Score,
		&sc.Explanation,
		&sc.Model,
		&sc.CreatedAt,
		&sc.CategoryName,
	)
	return sc, err
}
