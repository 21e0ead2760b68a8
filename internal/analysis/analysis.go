// Package analysis orchestrates one bias analysis: extract article text, load
// the bias categories, fan the text out to every model provider, and persist
// the attributable scores.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/biaslens/internal/categories"
	"github.com/JaimeStill/biaslens/internal/extractor"
	"github.com/JaimeStill/biaslens/internal/scores"
	"github.com/JaimeStill/biaslens/internal/scoring"
)

// Extractor fetches article text for a URL.
type Extractor interface {
	Extract(ctx context.Context, url string) (*extractor.Article, error)
}

// CategoryReader lists the bias categories offered to models.
type CategoryReader interface {
	ListBias(ctx context.Context) ([]categories.BiasCategory, error)
}

// ScoreWriter persists a single score row.
type ScoreWriter interface {
	Create(ctx context.Context, cmd scores.CreateCommand) (*scores.Score, error)
}

// Scorer is one model provider. Score returns nil on failure.
type Scorer interface {
	Name() string
	Score(ctx context.Context, content string, rubrics []scoring.Rubric) *scoring.Result
}

// Command identifies the media item to analyze. All four identifying fields
// are required. Content, when set, is used instead of fetching URL.
type Command struct {
	MediaID string
	URL     string
	Title   string
	Source  string
	Content string
}

// Analysis is the outcome of one run. Results holds one entry per provider;
// a nil entry means that provider failed.
type Analysis struct {
	MediaID     uuid.UUID                  `json:"media_id"`
	Results     map[string]*scoring.Result `json:"results"`
	Persisted   int                        `json:"persisted"`
	Unscoreable int                        `json:"unscoreable"`
	DurationMS  int64                      `json:"duration_ms"`
}

// Succeeded reports whether the named provider returned a result.
func (a *Analysis) Succeeded(provider string) bool {
	return a.Results[provider] != nil
}

// Orchestrator runs analyses against a fixed set of scorers.
type Orchestrator struct {
	extractor  Extractor
	categories CategoryReader
	scores     ScoreWriter
	scorers    []Scorer
	logger     *slog.Logger
}

// New creates an Orchestrator.
func New(
	ext Extractor,
	cats CategoryReader,
	sw ScoreWriter,
	scorers []Scorer,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		extractor:  ext,
		categories: cats,
		scores:     sw,
		scorers:    scorers,
		logger:     logger.With("system", "analysis"),
	}
}

// Providers returns the scorer names in fan-out order.
func (o *Orchestrator) Providers() []string {
	names := make([]string, len(o.scorers))
	for i, s := range o.scorers {
		names[i] = s.Name()
	}
	return names
}

// Analyze runs the full pipeline for cmd. It fails only on invalid input,
// extraction failure, category load failure, or when every scorer fails.
// Each resolved (provider, category) pair appends one score row; re-running
// an analysis appends again.
func (o *Orchestrator) Analyze(ctx context.Context, cmd Command) (*Analysis, error) {
	start := time.Now()

	mediaID, err := validate(cmd)
	if err != nil {
		return nil, err
	}

	logger := o.logger.With("media_id", mediaID)

	content := strings.TrimSpace(cmd.Content)
	if content == "" {
		article, err := o.extractor.Extract(ctx, cmd.URL)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNoContent, err)
		}
		content = strings.TrimSpace(article.Text)
	}
	if content == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoContent, cmd.URL)
	}

	cats, err := o.categories.ListBias(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCategoriesUnavailable, err)
	}
	if len(cats) == 0 {
		return nil, fmt.Errorf("%w: none defined", ErrCategoriesUnavailable)
	}
	rubrics := toRubrics(cats)

	logger.InfoContext(ctx, "analysis started",
		"title", cmd.Title,
		"source", cmd.Source,
		"chars", len(content),
		"categories", len(rubrics),
	)

	results := o.fanOut(ctx, content, rubrics)

	analysis := &Analysis{
		MediaID: mediaID,
		Results: make(map[string]*scoring.Result, len(o.scorers)),
	}
	succeeded := 0
	for i, s := range o.scorers {
		analysis.Results[s.Name()] = results[i]
		if results[i] != nil {
			succeeded++
		}
	}

	if succeeded == 0 {
		logger.ErrorContext(ctx, "every model failed", "providers", len(o.scorers))
		return nil, ErrAllModelsFailed
	}

	analysis.Persisted, analysis.Unscoreable = o.persist(ctx, logger, mediaID, analysis.Results, rubrics)
	analysis.DurationMS = time.Since(start).Milliseconds()

	logger.InfoContext(ctx, "analysis complete",
		"succeeded", succeeded,
		"failed", len(o.scorers)-succeeded,
		"persisted", analysis.Persisted,
		"unscoreable", analysis.Unscoreable,
		"duration", time.Since(start),
	)

	return analysis, nil
}

func (o *Orchestrator) fanOut(ctx context.Context, content string, rubrics []scoring.Rubric) []*scoring.Result {
	results := make([]*scoring.Result, len(o.scorers))

	var g errgroup.Group
	for i, s := range o.scorers {
		g.Go(func() error {
			results[i] = s.Score(ctx, content, rubrics)
			return nil
		})
	}
	g.Wait()

	return results
}

// persist writes resolved scores concurrently across providers and in order
// within one provider. Insert failures are logged and do not stop siblings.
func (o *Orchestrator) persist(
	ctx context.Context,
	logger *slog.Logger,
	mediaID uuid.UUID,
	results map[string]*scoring.Result,
	rubrics []scoring.Rubric,
) (int, int) {
	var (
		g           errgroup.Group
		persisted   atomic.Int64
		unscoreable int
	)

	for provider, result := range results {
		if result == nil {
			continue
		}

		resolved, dropped := result.Resolve(rubrics)
		for _, u := range dropped {
			logger.WarnContext(ctx, "unscoreable category dropped",
				"provider", provider,
				"category", u.Category,
				"reason", u.Reason,
			)
		}
		unscoreable += len(dropped)

		g.Go(func() error {
			for _, r := range resolved {
				_, err := o.scores.Create(ctx, scores.CreateCommand{
					MediaID:     mediaID,
					CategoryID:  r.CategoryID,
					Score:       r.Score,
					Explanation: r.Explanation,
					Model:       provider,
				})
				if err != nil {
					logger.ErrorContext(ctx, "score insert failed",
						"provider", provider,
						"category", r.Category,
						"error", err,
					)
					continue
				}
				persisted.Add(1)
			}
			return nil
		})
	}
	g.Wait()

	return int(persisted.Load()), unscoreable
}

func validate(cmd Command) (uuid.UUID, error) {
	fields := []struct{ name, value string }{
		{"media id", cmd.MediaID},
		{"url", cmd.URL},
		{"title", cmd.Title},
		{"source", cmd.Source},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return uuid.Nil, fmt.Errorf("%w: %s is required", ErrInvalidInput, f.name)
		}
	}

	id, err := uuid.Parse(cmd.MediaID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: media id %q", ErrInvalidInput, cmd.MediaID)
	}
	return id, nil
}

func toRubrics(cats []categories.BiasCategory) []scoring.Rubric {
	rubrics := make([]scoring.Rubric, len(cats))
	for i, c := range cats {
		rubrics[i] = scoring.Rubric{ID: c.ID, Name: c.Name, Description: c.Description}
	}
	return rubrics
}
