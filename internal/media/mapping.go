package media

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/biaslens/pkg/query"
	"github.com/JaimeStill/biaslens/pkg/repository"
)

const columns = "id, title, url, source, description, image_url, media_type, category_id, is_user_submitted, external_id, created_at"

var projection = query.
	NewProjectionMap("public", "media", "m").
	Project("id", "ID").
	Project("title", "Title").
	Project("url", "URL").
	Project("source", "Source").
	Project("description", "Description").
	Project("image_url", "ImageURL").
	Project("media_type", "MediaType").
	Project("category_id", "CategoryID").
	Project("is_user_submitted", "UserSubmitted").
	Project("external_id", "ExternalID").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for media queries.
// Nil fields are ignored. Source uses case-insensitive contains matching.
type Filters struct {
	Source        *string `json:"source,omitempty"`
	MediaType     *string `json:"media_type,omitempty"`
	UserSubmitted *bool   `json:"is_user_submitted,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("Source", f.Source).
		WhereEquals("MediaType", f.MediaType).
		WhereEquals("UserSubmitted", f.UserSubmitted)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("source"); s != "" {
		f.Source = &s
	}

	if mt := values.Get("media_type"); mt != "" {
		f.MediaType = &mt
	}

	if us := values.Get("user_submitted"); us != "" {
		if v, err := strconv.ParseBool(us); err == nil {
			f.UserSubmitted = &v
		}
	}

	return f
}

func scanMedia(s repository.Scanner) (Media, error) {
	var m Media
	err := s.Scan(
		&m.ID,
		&m.Title,
		&m.URL,
		&m.Source,
		&m.Description,
		&m.ImageURL,
		&m.MediaType,
		&m.CategoryID,
		&m.UserSubmitted,
		&m.ExternalID,
		&m.CreatedAt,
	)
	return m, err
}
