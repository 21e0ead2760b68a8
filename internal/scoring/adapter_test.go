package scoring_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/JaimeStill/biaslens/internal/config"
	"github.com/JaimeStill/biaslens/internal/scoring"
)

type call struct {
	model  string
	prompt string
}

type fakeCompleter struct {
	mu        sync.Mutex
	calls     []call
	responses map[string]string
	errs      map[string]error
	block     bool
	panics    bool
}

func (f *fakeCompleter) Complete(ctx context.Context, model, prompt string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call{model, prompt})
	f.mu.Unlock()

	if f.panics {
		panic("provider client exploded")
	}
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if err := f.errs[model]; err != nil {
		return "", err
	}
	return f.responses[model], nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const validJSON = `{"scores":[{"category":"Political","score":0.25,"explanation":"mild"}],"summary":"ok"}`

func TestAdapterFallsBackAcrossModels(t *testing.T) {
	fc := &fakeCompleter{
		errs:      map[string]error{"first": errors.New("503")},
		responses: map[string]string{"second": "  ", "third": "<think>hmm</think>```json\n" + validJSON + "\n```", "fourth": validJSON},
	}
	cfg := &config.ProviderConfig{Models: []string{"first", "second", "third", "fourth"}, Timeout: "1s"}
	a := scoring.NewAdapter("gemini", fc, cfg, discard())

	result := a.Score(context.Background(), "text", rubrics())
	if result == nil {
		t.Fatal("expected result")
	}
	if result.Summary != "ok" || len(result.Scores) != 1 || result.Scores[0].Score != 0.25 {
		t.Errorf("result = %+v", result)
	}

	if len(fc.calls) != 3 {
		t.Errorf("calls = %d, want 3 (stop at first non-empty text)", len(fc.calls))
	}
	if a.Name() != "gemini" {
		t.Errorf("name = %q", a.Name())
	}
}

func TestAdapterFailuresReturnNil(t *testing.T) {
	tests := []struct {
		name string
		fc   *fakeCompleter
	}{
		{"not configured", &fakeCompleter{errs: map[string]error{"m": scoring.ErrNotConfigured}}},
		{"empty response", &fakeCompleter{responses: map[string]string{"m": ""}}},
		{"undecodable", &fakeCompleter{responses: map[string]string{"m": "I cannot help with that."}}},
		{"no scores", &fakeCompleter{responses: map[string]string{"m": `{"scores":[],"summary":"x"}`}}},
		{"panic", &fakeCompleter{panics: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.ProviderConfig{Models: []string{"m"}, Timeout: "1s"}
			a := scoring.NewAdapter("groq", tt.fc, cfg, discard())
			if got := a.Score(context.Background(), "text", rubrics()); got != nil {
				t.Errorf("Score = %+v, want nil", got)
			}
		})
	}
}

func TestAdapterTruncatesContent(t *testing.T) {
	fc := &fakeCompleter{responses: map[string]string{"m": validJSON}}
	cfg := &config.ProviderConfig{Models: []string{"m"}, MaxContentChars: 100, Timeout: "1s"}
	a := scoring.NewAdapter("groq", fc, cfg, discard())

	body := strings.Repeat("a", 90) + ". " + strings.Repeat("b", 200)
	if a.Score(context.Background(), body, rubrics()) == nil {
		t.Fatal("expected result")
	}

	prompt := fc.calls[0].prompt
	if strings.Contains(prompt, strings.Repeat("b", 5)) {
		t.Error("content beyond the sentence boundary should be truncated")
	}
	if !strings.Contains(prompt, strings.Repeat("a", 90)+".") {
		t.Error("truncated content should end at the sentence terminator")
	}
}

func TestAdapterAppliesTimeout(t *testing.T) {
	fc := &fakeCompleter{block: true}
	cfg := &config.ProviderConfig{Models: []string{"slow", "slower"}, Timeout: "20ms"}
	a := scoring.NewAdapter("openai", fc, cfg, discard())

	start := time.Now()
	if got := a.Score(context.Background(), "text", rubrics()); got != nil {
		t.Errorf("Score = %+v, want nil", got)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Score took %s, timeout not applied", elapsed)
	}
	if len(fc.calls) != 2 {
		t.Errorf("calls = %d, want each model attempted once", len(fc.calls))
	}
}
