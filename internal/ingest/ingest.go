// Package ingest pulls fresh headlines from the news aggregator into the
// live media table and samples them for bias analysis.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/JaimeStill/biaslens/internal/analysis"
	"github.com/JaimeStill/biaslens/internal/categories"
	"github.com/JaimeStill/biaslens/internal/media"
)

// ErrNoCategories is returned when no news category is enabled.
var ErrNoCategories = errors.New("no enabled news categories")

// NewsSource lists headlines for one news category.
type NewsSource interface {
	Latest(ctx context.Context, category string) ([]Headline, error)
}

// CategoryLister lists the enabled news categories.
type CategoryLister interface {
	ListNews(ctx context.Context) ([]categories.NewsCategory, error)
}

// MediaCreator inserts live media rows.
type MediaCreator interface {
	Create(ctx context.Context, cmd media.CreateCommand) (*media.Media, error)
}

// Analyzer runs a bias analysis and names the providers it fans out to.
type Analyzer interface {
	Analyze(ctx context.Context, cmd analysis.Command) (*analysis.Analysis, error)
	Providers() []string
}

// ModelTally counts per-provider outcomes across sampled analyses.
type ModelTally struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Report summarizes one ingestion run.
type Report struct {
	Categories  int                    `json:"categories"`
	FetchFailed int                    `json:"fetch_failed"`
	Fetched     int                    `json:"fetched"`
	Unique      int                    `json:"unique"`
	Inserted    int                    `json:"inserted"`
	Sampled     int                    `json:"sampled"`
	Analyzed    int                    `json:"analyzed"`
	Failed      int                    `json:"failed"`
	Models      map[string]*ModelTally `json:"models"`
	DurationMS  int64                  `json:"duration_ms"`
}

// Candidate is a fetched headline tagged with the news category it came from.
type Candidate struct {
	Headline   Headline
	CategoryID uuid.UUID
}

// Ingester runs ingestion.
type Ingester struct {
	news     NewsSource
	cats     CategoryLister
	media    MediaCreator
	analyzer Analyzer
	fetches  *rate.Limiter
	analyses *rate.Limiter
	logger   *slog.Logger
}

// New creates an Ingester. requestDelay spaces aggregator calls and
// analysisDelay spaces sampled analyses.
func New(
	news NewsSource,
	cats CategoryLister,
	store MediaCreator,
	analyzer Analyzer,
	requestDelay, analysisDelay time.Duration,
	logger *slog.Logger,
) *Ingester {
	return &Ingester{
		news:     news,
		cats:     cats,
		media:    store,
		analyzer: analyzer,
		fetches:  limiter(requestDelay),
		analyses: limiter(analysisDelay),
		logger:   logger.With("system", "ingest"),
	}
}

func limiter(every time.Duration) *rate.Limiter {
	if every <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(every), 1)
}

// Ingest fetches headlines for every enabled news category, deduplicates them
// by aggregator id (last seen wins), and inserts each survivor as live media.
// A category fetch failure or a row insert failure is logged and skipped.
func (i *Ingester) Ingest(ctx context.Context) ([]media.Media, error) {
	return i.ingest(ctx, &Report{})
}

// Run ingests, then analyzes at most one inserted article per news category,
// one at a time.
func (i *Ingester) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := &Report{Models: make(map[string]*ModelTally)}
	for _, p := range i.analyzer.Providers() {
		report.Models[p] = &ModelTally{}
	}

	inserted, err := i.ingest(ctx, report)
	if err != nil {
		return nil, err
	}

	sample := Sample(inserted)
	report.Sampled = len(sample)

	for _, m := range sample {
		if err := i.analyses.Wait(ctx); err != nil {
			return nil, fmt.Errorf("wait for analysis slot: %w", err)
		}

		result, err := i.analyzer.Analyze(ctx, analysis.Command{
			MediaID: m.ID.String(),
			URL:     m.URL,
			Title:   m.Title,
			Source:  m.Source,
		})
		if err != nil {
			report.Failed++
			if errors.Is(err, analysis.ErrAllModelsFailed) {
				for _, tally := range report.Models {
					tally.Failed++
				}
			}
			i.logger.WarnContext(ctx, "sampled analysis failed", "media_id", m.ID, "error", err)
			continue
		}

		report.Analyzed++
		for p, tally := range report.Models {
			if result.Succeeded(p) {
				tally.Succeeded++
			} else {
				tally.Failed++
			}
		}
	}

	report.DurationMS = time.Since(start).Milliseconds()
	i.logger.InfoContext(ctx, "ingestion complete",
		"inserted", report.Inserted,
		"sampled", report.Sampled,
		"analyzed", report.Analyzed,
		"failed", report.Failed,
	)
	return report, nil
}

func (i *Ingester) ingest(ctx context.Context, report *Report) ([]media.Media, error) {
	cats, err := i.cats.ListNews(ctx)
	if err != nil {
		return nil, fmt.Errorf("list news categories: %w", err)
	}
	if len(cats) == 0 {
		return nil, ErrNoCategories
	}
	report.Categories = len(cats)

	var fetched []Candidate
	for _, c := range cats {
		if err := i.fetches.Wait(ctx); err != nil {
			return nil, fmt.Errorf("wait for fetch slot: %w", err)
		}

		headlines, err := i.news.Latest(ctx, c.Name)
		if errors.Is(err, ErrNotConfigured) {
			return nil, err
		}
		if err != nil {
			report.FetchFailed++
			i.logger.WarnContext(ctx, "category fetch failed", "category", c.Name, "error", err)
			continue
		}

		i.logger.InfoContext(ctx, "category fetched", "category", c.Name, "headlines", len(headlines))
		for _, h := range headlines {
			fetched = append(fetched, Candidate{Headline: h, CategoryID: c.ID})
		}
	}
	report.Fetched = len(fetched)

	unique := Dedup(fetched)
	report.Unique = len(unique)

	inserted := make([]media.Media, 0, len(unique))
	for _, c := range unique {
		m, err := i.media.Create(ctx, toCommand(c))
		if err != nil {
			i.logger.WarnContext(ctx, "headline insert failed",
				"article_id", c.Headline.ArticleID,
				"title", c.Headline.Title,
				"error", err,
			)
			continue
		}
		inserted = append(inserted, *m)
	}
	report.Inserted = len(inserted)

	i.logger.InfoContext(ctx, "headlines ingested",
		"fetched", report.Fetched,
		"unique", report.Unique,
		"inserted", report.Inserted,
	)
	return inserted, nil
}

// Dedup collapses candidates sharing an aggregator id. The last occurrence
// wins and keeps the position of the first. Candidates without an id or a
// link are dropped.
func Dedup(items []Candidate) []Candidate {
	index := make(map[string]int, len(items))
	out := make([]Candidate, 0, len(items))

	for _, c := range items {
		key := strings.TrimSpace(c.Headline.ArticleID)
		if key == "" {
			key = strings.TrimSpace(c.Headline.Link)
		}
		if key == "" || strings.TrimSpace(c.Headline.Link) == "" {
			continue
		}

		if pos, ok := index[key]; ok {
			out[pos] = c
			continue
		}
		index[key] = len(out)
		out = append(out, c)
	}
	return out
}

// Sample returns the first inserted article of each news category, in order.
func Sample(items []media.Media) []media.Media {
	seen := make(map[uuid.UUID]struct{})
	var out []media.Media

	for _, m := range items {
		if m.CategoryID == nil {
			continue
		}
		if _, ok := seen[*m.CategoryID]; ok {
			continue
		}
		seen[*m.CategoryID] = struct{}{}
		out = append(out, m)
	}
	return out
}

func toCommand(c Candidate) media.CreateCommand {
	h := c.Headline
	categoryID := c.CategoryID

	var externalID *string
	if id := strings.TrimSpace(h.ArticleID); id != "" {
		externalID = &id
	}

	title := strings.TrimSpace(h.Title)
	if title == "" {
		title = h.Link
	}

	return media.CreateCommand{
		Title:         title,
		URL:           h.Link,
		Source:        sourceName(h),
		Description:   h.Description,
		ImageURL:      h.ImageURL,
		MediaType:     media.TypeArticle,
		CategoryID:    &categoryID,
		UserSubmitted: false,
		ExternalID:    externalID,
	}
}

func sourceName(h Headline) string {
	if s := strings.TrimSpace(h.SourceID); s != "" {
		return s
	}
	if u, err := url.Parse(h.Link); err == nil {
		return strings.TrimPrefix(u.Hostname(), "www.")
	}
	return ""
}
