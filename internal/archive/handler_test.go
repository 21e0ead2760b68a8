package archive_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/biaslens/internal/archive"
	"github.com/JaimeStill/biaslens/pkg/routes"
)

type mockRunner struct {
	runFn func(ctx context.Context, opts archive.Options) (*archive.Result, error)
}

func (m *mockRunner) Run(ctx context.Context, opts archive.Options) (*archive.Result, error) {
	return m.runFn(ctx, opts)
}

func setupMux(r *mockRunner) *http.ServeMux {
	h := archive.NewHandler(r, slog.New(slog.NewTextHandler(io.Discard, nil)))
	mux := http.NewServeMux()
	routes.Register(mux, h.Routes())
	return mux
}

func TestHandlerRun(t *testing.T) {
	var got archive.Options
	r := &mockRunner{
		runFn: func(_ context.Context, opts archive.Options) (*archive.Result, error) {
			got = opts
			return &archive.Result{Processed: 4, DryRun: opts.DryRun}, nil
		},
	}

	rec := httptest.NewRecorder()
	setupMux(r).ServeHTTP(rec, httptest.NewRequest("POST", "/archive?batch_size=4&dry_run=true", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got.BatchSize != 4 || !got.DryRun {
		t.Errorf("options = %+v", got)
	}

	var body archive.Result
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Processed != 4 || !body.DryRun {
		t.Errorf("body = %+v", body)
	}
}

func TestHandlerRunErrors(t *testing.T) {
	r := &mockRunner{
		runFn: func(context.Context, archive.Options) (*archive.Result, error) {
			return nil, errors.New("candidate query failed")
		},
	}
	mux := setupMux(r)

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"zero batch", "/archive?batch_size=0", http.StatusBadRequest},
		{"non-numeric batch", "/archive?batch_size=ten", http.StatusBadRequest},
		{"bad dry run", "/archive?dry_run=perhaps", http.StatusBadRequest},
		{"fatal run error", "/archive", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest("POST", tt.target, nil))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
