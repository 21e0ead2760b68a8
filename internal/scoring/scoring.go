// Package scoring turns article text into per-category bias scores by
// prompting hosted language models. Provider transports live in the gemini
// and chat subpackages and plug in through the Completer interface.
package scoring

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrNotConfigured is returned by a Completer whose provider has no API key.
var ErrNotConfigured = errors.New("provider not configured")

// Rubric is one bias category offered to the model for scoring.
type Rubric struct {
	ID          uuid.UUID
	Name        string
	Description string
}

// CategoryScore is a single score as returned by a model. Category is the
// model-supplied name and has not been checked against known categories.
type CategoryScore struct {
	Category    string  `json:"category"`
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
}

// Result is a model's full response for one article.
type Result struct {
	Scores  []CategoryScore `json:"scores"`
	Summary string          `json:"summary"`
}

// Resolved is a score whose category matched a known rubric.
type Resolved struct {
	CategoryID  uuid.UUID
	Category    string
	Score       float64
	Explanation string
}

// Reason explains why a returned score could not be attributed.
type Reason string

// Unscoreable reasons.
const (
	ReasonUnknownCategory   Reason = "unknown category"
	ReasonDuplicateCategory Reason = "duplicate category"
)

// Unscoreable is a returned score that was dropped during resolution.
type Unscoreable struct {
	Category string `json:"category"`
	Reason   Reason `json:"reason"`
}

// Resolve matches each returned score to a rubric by trimmed, case-insensitive
// name. Scores naming an unknown category, or repeating a category already
// resolved, are returned as Unscoreable. Resolved scores keep response order.
func (r *Result) Resolve(rubrics []Rubric) ([]Resolved, []Unscoreable) {
	index := make(map[string]Rubric, len(rubrics))
	for _, rb := range rubrics {
		index[normalize(rb.Name)] = rb
	}

	var (
		resolved    []Resolved
		unscoreable []Unscoreable
		seen        = make(map[uuid.UUID]struct{}, len(rubrics))
	)

	for _, s := range r.Scores {
		rb, ok := index[normalize(s.Category)]
		if !ok {
			unscoreable = append(unscoreable, Unscoreable{Category: s.Category, Reason: ReasonUnknownCategory})
			continue
		}
		if _, dup := seen[rb.ID]; dup {
			unscoreable = append(unscoreable, Unscoreable{Category: s.Category, Reason: ReasonDuplicateCategory})
			continue
		}
		seen[rb.ID] = struct{}{}

		resolved = append(resolved, Resolved{
			CategoryID:  rb.ID,
			Category:    rb.Name,
			Score:       s.Score,
			Explanation: s.Explanation,
		})
	}

	return resolved, unscoreable
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
