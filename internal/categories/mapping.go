package categories

import (
	"github.com/JaimeStill/biaslens/pkg/query"
	"github.com/JaimeStill/biaslens/pkg/repository"
)

var biasProjection = query.
	NewProjectionMap("public", "bias_categories", "bc").
	Project("id", "ID").
	Project("name", "Name").
	Project("description", "Description").
	Project("created_at", "CreatedAt")

var newsProjection = query.
	NewProjectionMap("public", "news_categories", "nc").
	Project("id", "ID").
	Project("name", "Name").
	Project("enabled", "Enabled").
	Project("created_at", "CreatedAt")

var byName = query.SortField{Field: "Name"}

func scanBias(s repository.Scanner) (BiasCategory, error) {
	var c BiasCategory
	err := s.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	return c, err
}

func scanNews(s repository.Scanner) (NewsCategory, error) {
	var c NewsCategory
	err := s.Scan(&c.ID, &c.Name, &c.Enabled, &c.CreatedAt)
	return c, err
}
