package categories_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/biaslens/internal/categories"
	"github.com/JaimeStill/biaslens/pkg/routes"
)

type mockSystem struct {
	listBiasFn func(ctx context.Context) ([]categories.BiasCategory, error)
	findBiasFn func(ctx context.Context, id uuid.UUID) (*categories.BiasCategory, error)
	listNewsFn func(ctx context.Context) ([]categories.NewsCategory, error)
	seedFn     func(ctx context.Context, c *categories.Catalog) (*categories.SeedResult, error)
}

func (m *mockSystem) Handler() *categories.Handler {
	return categories.NewHandler(m, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (m *mockSystem) ListBias(ctx context.Context) ([]categories.BiasCategory, error) {
	return m.listBiasFn(ctx)
}

func (m *mockSystem) FindBias(ctx context.Context, id uuid.UUID) (*categories.BiasCategory, error) {
	return m.findBiasFn(ctx, id)
}

func (m *mockSystem) ListNews(ctx context.Context) ([]categories.NewsCategory, error) {
	return m.listNewsFn(ctx)
}

func (m *mockSystem) Seed(ctx context.Context, c *categories.Catalog) (*categories.SeedResult, error) {
	return m.seedFn(ctx, c)
}

func setupMux(sys *mockSystem) *http.ServeMux {
	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler().Routes())
	return mux
}

func sampleBias() categories.BiasCategory {
	return categories.BiasCategory{
		ID:          uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		Name:        "Political",
		Description: "-1 left, +1 right",
		CreatedAt:   time.Now().Truncate(time.Second),
	}
}

func TestHandlerListBias(t *testing.T) {
	c := sampleBias()
	sys := &mockSystem{
		listBiasFn: func(context.Context) ([]categories.BiasCategory, error) {
			return []categories.BiasCategory{c}, nil
		},
	}

	rec := httptest.NewRecorder()
	setupMux(sys).ServeHTTP(rec, httptest.NewRequest("GET", "/categories", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got []categories.BiasCategory
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Political" {
		t.Errorf("got %+v", got)
	}

	t.Run("store failure returns 500", func(t *testing.T) {
		sys.listBiasFn = func(context.Context) ([]categories.BiasCategory, error) {
			return nil, errors.New("connection refused")
		}
		rec := httptest.NewRecorder()
		setupMux(sys).ServeHTTP(rec, httptest.NewRequest("GET", "/categories", nil))
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", rec.Code)
		}
	})
}

func TestHandlerListNews(t *testing.T) {
	sys := &mockSystem{
		listNewsFn: func(context.Context) ([]categories.NewsCategory, error) {
			return []categories.NewsCategory{{ID: uuid.New(), Name: "sports", Enabled: true}}, nil
		},
	}

	rec := httptest.NewRecorder()
	setupMux(sys).ServeHTTP(rec, httptest.NewRequest("GET", "/categories/news", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got []categories.NewsCategory
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Name != "sports" {
		t.Errorf("got %+v", got)
	}
}

func TestHandlerFindBias(t *testing.T) {
	c := sampleBias()
	sys := &mockSystem{
		findBiasFn: func(_ context.Context, id uuid.UUID) (*categories.BiasCategory, error) {
			if id != c.ID {
				return nil, categories.ErrNotFound
			}
			return &c, nil
		},
	}
	mux := setupMux(sys)

	tests := []struct {
		name string
		path string
		want int
	}{
		{"found", "/categories/" + c.ID.String(), http.StatusOK},
		{"not found", "/categories/" + uuid.NewString(), http.StatusNotFound},
		{"invalid uuid", "/categories/not-a-uuid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
