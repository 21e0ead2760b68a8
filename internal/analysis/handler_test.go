package analysis_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/biaslens/internal/analysis"
	"github.com/JaimeStill/biaslens/internal/media"
	"github.com/JaimeStill/biaslens/pkg/routes"
)

type mockAnalyzer struct {
	analyzeFn func(ctx context.Context, cmd analysis.Command) (*analysis.Analysis, error)
}

func (m *mockAnalyzer) Analyze(ctx context.Context, cmd analysis.Command) (*analysis.Analysis, error) {
	return m.analyzeFn(ctx, cmd)
}

type mockMedia struct {
	createFn func(ctx context.Context, cmd media.CreateCommand) (*media.Media, error)
	findFn   func(ctx context.Context, id uuid.UUID) (*media.Media, error)
}

func (m *mockMedia) Create(ctx context.Context, cmd media.CreateCommand) (*media.Media, error) {
	return m.createFn(ctx, cmd)
}

func (m *mockMedia) Find(ctx context.Context, id uuid.UUID) (*media.Media, error) {
	return m.findFn(ctx, id)
}

func setupAnalyzeMux(a *mockAnalyzer, m *mockMedia, ext analysis.Extractor) *http.ServeMux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := analysis.NewHandler(a, m, ext, logger, 1<<20)
	mux := http.NewServeMux()
	routes.Register(mux, h.Routes())
	return mux
}

func post(mux *http.ServeMux, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	mux.ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeHandlerNewSubmission(t *testing.T) {
	var created media.CreateCommand
	var got analysis.Command
	id := uuid.New()

	m := &mockMedia{
		createFn: func(_ context.Context, cmd media.CreateCommand) (*media.Media, error) {
			created = cmd
			return &media.Media{ID: id, Title: cmd.Title, URL: cmd.URL, Source: cmd.Source, UserSubmitted: true}, nil
		},
	}
	a := &mockAnalyzer{
		analyzeFn: func(_ context.Context, cmd analysis.Command) (*analysis.Analysis, error) {
			got = cmd
			return &analysis.Analysis{MediaID: id, Persisted: 3}, nil
		},
	}
	ext := &fakeExtractor{text: "Body text."}

	rec := post(setupAnalyzeMux(a, m, ext), `{"url":"https://example.com/story"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	if !created.UserSubmitted || created.Title != "Extracted" || created.Source != "example.com" {
		t.Errorf("created = %+v", created)
	}
	if got.MediaID != id.String() || got.Content != "Body text." {
		t.Errorf("analyze command = %+v", got)
	}
	if ext.calls != 1 {
		t.Errorf("extract calls = %d, want 1", ext.calls)
	}

	var resp analysis.Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Media.ID != id || resp.Analysis.Persisted != 3 {
		t.Errorf("response = %+v", resp)
	}
}

func TestAnalyzeHandlerExistingMedia(t *testing.T) {
	id := uuid.New()
	var got analysis.Command

	m := &mockMedia{
		findFn: func(_ context.Context, mid uuid.UUID) (*media.Media, error) {
			if mid != id {
				return nil, media.ErrNotFound
			}
			return &media.Media{ID: id, Title: "Stored Title", Source: "stored.com"}, nil
		},
	}
	a := &mockAnalyzer{
		analyzeFn: func(_ context.Context, cmd analysis.Command) (*analysis.Analysis, error) {
			got = cmd
			return &analysis.Analysis{MediaID: id}, nil
		},
	}
	ext := &fakeExtractor{text: "unused"}
	mux := setupAnalyzeMux(a, m, ext)

	rec := post(mux, `{"url":"https://stored.com/a","mediaId":"`+id.String()+`","title":"Override"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got.Title != "Override" || got.Source != "stored.com" || got.Content != "" {
		t.Errorf("analyze command = %+v", got)
	}
	if ext.calls != 0 {
		t.Errorf("handler should leave extraction to the orchestrator, calls = %d", ext.calls)
	}

	rec = post(mux, `{"url":"https://stored.com/a","mediaId":"`+uuid.NewString()+`"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown media status = %d, want 404", rec.Code)
	}
}

func TestAnalyzeHandlerErrors(t *testing.T) {
	okMedia := &mockMedia{
		createFn: func(_ context.Context, cmd media.CreateCommand) (*media.Media, error) {
			return &media.Media{ID: uuid.New(), Title: cmd.Title, Source: cmd.Source}, nil
		},
	}

	tests := []struct {
		name     string
		body     string
		extErr   error
		analyzeE error
		want     int
	}{
		{name: "malformed body", body: `{`, want: http.StatusBadRequest},
		{name: "missing url", body: `{}`, want: http.StatusBadRequest},
		{name: "invalid url", body: `{"url":"not a url"}`, want: http.StatusBadRequest},
		{name: "invalid media id", body: `{"url":"https://a.com/x","mediaId":"nope"}`, want: http.StatusBadRequest},
		{name: "extraction failed", body: `{"url":"https://a.com/x"}`, extErr: errors.New("404"), want: http.StatusBadRequest},
		{name: "all models failed", body: `{"url":"https://a.com/x"}`, analyzeE: analysis.ErrAllModelsFailed, want: http.StatusInternalServerError},
		{name: "categories unavailable", body: `{"url":"https://a.com/x"}`, analyzeE: analysis.ErrCategoriesUnavailable, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &mockAnalyzer{
				analyzeFn: func(context.Context, analysis.Command) (*analysis.Analysis, error) {
					if tt.analyzeE != nil {
						return nil, tt.analyzeE
					}
					return &analysis.Analysis{}, nil
				},
			}
			ext := &fakeExtractor{text: "Body.", err: tt.extErr}

			rec := post(setupAnalyzeMux(a, okMedia, ext), tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
