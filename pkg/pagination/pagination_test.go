package pagination_test

import (
	"net/url"
	"testing"

	"github.com/JaimeStill/biaslens/pkg/pagination"
)

func defaultConfig() pagination.Config {
	return pagination.Config{DefaultPageSize: 25, MaxPageSize: 100}
}

func TestConfigFinalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := pagination.Config{}
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("finalize failed: %v", err)
		}
		if cfg.DefaultPageSize != 20 || cfg.MaxPageSize != 100 {
			t.Errorf("cfg = %+v", cfg)
		}
	})

	t.Run("max above ceiling", func(t *testing.T) {
		cfg := pagination.Config{DefaultPageSize: 20, MaxPageSize: pagination.PageSizeCeiling + 1}
		if err := cfg.Finalize(nil); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("TEST_PAGE_SIZE", "15")
		t.Setenv("TEST_MAX_PAGE_SIZE", "50")
		cfg := pagination.Config{}
		env := &pagination.Env{DefaultPageSize: "TEST_PAGE_SIZE", MaxPageSize: "TEST_MAX_PAGE_SIZE"}
		if err := cfg.Finalize(env); err != nil {
			t.Fatalf("finalize failed: %v", err)
		}
		if cfg.DefaultPageSize != 15 || cfg.MaxPageSize != 50 {
			t.Errorf("cfg = %+v", cfg)
		}
	})

	t.Run("default exceeds max", func(t *testing.T) {
		cfg := pagination.Config{DefaultPageSize: 200, MaxPageSize: 100}
		if err := cfg.Finalize(nil); err == nil {
			t.Error("expected validation error")
		}
	})
}

func TestConfigClamp(t *testing.T) {
	cfg := defaultConfig()
	for _, tt := range []struct{ in, want int }{
		{0, 25},
		{-3, 25},
		{40, 40},
		{1000, 100},
	} {
		if got := cfg.Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		page     int
		pageSize int
	}{
		{"empty uses defaults", "", 1, 25},
		{"explicit values", "page=3&page_size=10", 3, 10},
		{"size clamped to max", "page_size=1000", 1, 100},
		{"negative page normalized", "page=-2", 1, 25},
		{"garbage falls back", "page=x&page_size=y", 1, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			req := pagination.PageRequestFromQuery(values, defaultConfig())
			if req.Page != tt.page || req.PageSize != tt.pageSize {
				t.Errorf("got page=%d size=%d, want page=%d size=%d", req.Page, req.PageSize, tt.page, tt.pageSize)
			}
		})
	}

	t.Run("search and sort", func(t *testing.T) {
		values, _ := url.ParseQuery("search=election&sort=-created_at")
		req := pagination.PageRequestFromQuery(values, defaultConfig())
		if req.Search == nil || *req.Search != "election" {
			t.Errorf("search = %v", req.Search)
		}
		if len(req.Sort) != 1 || !req.Sort[0].Descending {
			t.Errorf("sort = %+v", req.Sort)
		}
	})

	t.Run("blank search ignored", func(t *testing.T) {
		values, _ := url.ParseQuery("search=%20%20")
		req := pagination.PageRequestFromQuery(values, defaultConfig())
		if req.Search != nil {
			t.Errorf("search = %q, want nil", *req.Search)
		}
	})
}

func TestNewPageResult(t *testing.T) {
	result := pagination.NewPageResult[string](nil, 51, 2, 25)
	if result.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", result.TotalPages)
	}
	if result.Data == nil {
		t.Error("Data should be an empty slice, not nil")
	}
	if !result.HasMore {
		t.Error("page 2 of 3 should have more")
	}

	last := pagination.NewPageResult([]string{"a"}, 51, 3, 25)
	if last.HasMore {
		t.Error("last page should not have more")
	}

	empty := pagination.NewPageResult[string](nil, 0, 1, 25)
	if empty.TotalPages != 1 || empty.HasMore {
		t.Errorf("empty = %+v", empty)
	}
}
