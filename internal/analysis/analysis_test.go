package analysis_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/biaslens/internal/analysis"
	"github.com/JaimeStill/biaslens/internal/categories"
	"github.com/JaimeStill/biaslens/internal/extractor"
	"github.com/JaimeStill/biaslens/internal/scores"
	"github.com/JaimeStill/biaslens/internal/scoring"
)

type fakeExtractor struct {
	calls int
	text  string
	err   error
}

func (f *fakeExtractor) Extract(_ context.Context, url string) (*extractor.Article, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &extractor.Article{URL: url, Title: "Extracted", Source: "example.com", Text: f.text}, nil
}

type fakeCategories struct {
	cats []categories.BiasCategory
	err  error
}

func (f *fakeCategories) ListBias(context.Context) ([]categories.BiasCategory, error) {
	return f.cats, f.err
}

type fakeScores struct {
	mu      sync.Mutex
	created []scores.CreateCommand
	failFor string
}

func (f *fakeScores) Create(_ context.Context, cmd scores.CreateCommand) (*scores.Score, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cmd.Model == f.failFor {
		return nil, errors.New("insert failed")
	}
	f.created = append(f.created, cmd)
	return &scores.Score{ID: uuid.New(), MediaID: cmd.MediaID, Model: cmd.Model}, nil
}

type fakeScorer struct {
	name   string
	result *scoring.Result
}

func (f fakeScorer) Name() string { return f.name }

func (f fakeScorer) Score(context.Context, string, []scoring.Rubric) *scoring.Result {
	return f.result
}

var (
	political      = categories.BiasCategory{ID: uuid.New(), Name: "Political", Description: "left/right"}
	sensationalism = categories.BiasCategory{ID: uuid.New(), Name: "Sensationalism", Description: "sober/sensational"}
)

func twoScores() *scoring.Result {
	return &scoring.Result{
		Scores: []scoring.CategoryScore{
			{Category: "political", Score: -0.2},
			{Category: "Sensationalism", Score: 0.6},
		},
		Summary: "ok",
	}
}

type fixture struct {
	ext    *fakeExtractor
	cats   *fakeCategories
	scores *fakeScores
}

func newFixture() *fixture {
	return &fixture{
		ext:    &fakeExtractor{text: "Body text."},
		cats:   &fakeCategories{cats: []categories.BiasCategory{political, sensationalism}},
		scores: &fakeScores{},
	}
}

func (f *fixture) orchestrator(scorers ...analysis.Scorer) *analysis.Orchestrator {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return analysis.New(f.ext, f.cats, f.scores, scorers, logger)
}

func validCommand() analysis.Command {
	return analysis.Command{
		MediaID: uuid.NewString(),
		URL:     "https://example.com/story",
		Title:   "Story",
		Source:  "example.com",
	}
}

func TestAnalyzePartialSuccess(t *testing.T) {
	f := newFixture()
	withUnknown := twoScores()
	withUnknown.Scores = append(withUnknown.Scores, scoring.CategoryScore{Category: "Economic", Score: 0.1})

	o := f.orchestrator(
		fakeScorer{"gemini", twoScores()},
		fakeScorer{"groq", nil},
		fakeScorer{"openrouter", withUnknown},
		fakeScorer{"openai", nil},
	)

	cmd := validCommand()
	a, err := o.Analyze(context.Background(), cmd)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if len(a.Results) != 4 {
		t.Fatalf("results = %d entries, want 4", len(a.Results))
	}
	if !a.Succeeded("gemini") || a.Succeeded("groq") || a.Results["openai"] != nil {
		t.Errorf("unexpected provider outcomes: %+v", a.Results)
	}
	if a.Persisted != 4 {
		t.Errorf("persisted = %d, want 4", a.Persisted)
	}
	if a.Unscoreable != 1 {
		t.Errorf("unscoreable = %d, want 1", a.Unscoreable)
	}
	if f.ext.calls != 1 {
		t.Errorf("extract calls = %d, want 1", f.ext.calls)
	}

	for _, c := range f.scores.created {
		if c.MediaID.String() != cmd.MediaID {
			t.Errorf("score media id = %s", c.MediaID)
		}
		if c.CategoryID != political.ID && c.CategoryID != sensationalism.ID {
			t.Errorf("score category id = %s not a known category", c.CategoryID)
		}
	}
}

func TestAnalyzeReanalysisAppends(t *testing.T) {
	f := newFixture()
	o := f.orchestrator(fakeScorer{"gemini", twoScores()})

	cmd := validCommand()
	for range 2 {
		if _, err := o.Analyze(context.Background(), cmd); err != nil {
			t.Fatalf("Analyze: %v", err)
		}
	}

	if len(f.scores.created) != 4 {
		t.Errorf("rows = %d, want 4 after two runs", len(f.scores.created))
	}
}

func TestAnalyzeInsertFailureIsolated(t *testing.T) {
	f := newFixture()
	f.scores.failFor = "groq"
	o := f.orchestrator(fakeScorer{"gemini", twoScores()}, fakeScorer{"groq", twoScores()})

	a, err := o.Analyze(context.Background(), validCommand())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if a.Persisted != 2 {
		t.Errorf("persisted = %d, want 2", a.Persisted)
	}
}

func TestAnalyzeUsesSuppliedContent(t *testing.T) {
	f := newFixture()
	o := f.orchestrator(fakeScorer{"gemini", twoScores()})

	cmd := validCommand()
	cmd.Content = "Already extracted."
	if _, err := o.Analyze(context.Background(), cmd); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if f.ext.calls != 0 {
		t.Errorf("extract calls = %d, want 0", f.ext.calls)
	}
}

func TestAnalyzeFatalErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*fixture, *analysis.Command)
		scorer analysis.Scorer
		want   error
	}{
		{
			name:   "missing title",
			mutate: func(_ *fixture, c *analysis.Command) { c.Title = " " },
			scorer: fakeScorer{"gemini", twoScores()},
			want:   analysis.ErrInvalidInput,
		},
		{
			name:   "malformed media id",
			mutate: func(_ *fixture, c *analysis.Command) { c.MediaID = "abc" },
			scorer: fakeScorer{"gemini", twoScores()},
			want:   analysis.ErrInvalidInput,
		},
		{
			name:   "extraction failed",
			mutate: func(f *fixture, _ *analysis.Command) { f.ext.err = extractor.ErrNoContent },
			scorer: fakeScorer{"gemini", twoScores()},
			want:   analysis.ErrNoContent,
		},
		{
			name:   "empty extraction",
			mutate: func(f *fixture, _ *analysis.Command) { f.ext.text = "   " },
			scorer: fakeScorer{"gemini", twoScores()},
			want:   analysis.ErrNoContent,
		},
		{
			name:   "category store down",
			mutate: func(f *fixture, _ *analysis.Command) { f.cats.err = errors.New("db down") },
			scorer: fakeScorer{"gemini", twoScores()},
			want:   analysis.ErrCategoriesUnavailable,
		},
		{
			name:   "all models failed",
			mutate: func(*fixture, *analysis.Command) {},
			scorer: fakeScorer{"gemini", nil},
			want:   analysis.ErrAllModelsFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			cmd := validCommand()
			tt.mutate(f, &cmd)

			_, err := f.orchestrator(tt.scorer).Analyze(context.Background(), cmd)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if len(f.scores.created) != 0 {
				t.Errorf("no scores should be written, got %d", len(f.scores.created))
			}
		})
	}
}
