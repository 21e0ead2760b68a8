package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/biaslens/pkg/lifecycle"
	"github.com/JaimeStill/biaslens/pkg/routes"
	"github.com/JaimeStill/biaslens/pkg/storage"
)

type memStore struct {
	blobs map[string]string
}

func (m *memStore) Start(*lifecycle.Coordinator) error { return nil }

func (m *memStore) Upload(_ context.Context, key string, r io.Reader, _ string) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.blobs[key] = string(b)
	return nil
}

func (m *memStore) Download(_ context.Context, key string) (io.ReadCloser, error) {
	if err := storage.ValidateKey(key); err != nil {
		return nil, err
	}
	b, ok := m.blobs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(strings.NewReader(b)), nil
}

func newSnapshotMux(store storage.System) *http.ServeMux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mux := http.NewServeMux()
	routes.Register(mux, newSnapshotHandler(store, logger).routes())
	return mux
}

func TestSnapshotDownload(t *testing.T) {
	store := &memStore{blobs: map[string]string{
		"archive/2026/03/14/abc.json": `{"archived_id":"abc"}`,
	}}
	mux := newSnapshotMux(store)

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"found", "/snapshots/2026/03/14/abc.json", http.StatusOK},
		{"missing", "/snapshots/2026/03/14/nope.json", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestSnapshotDownloadHeaders(t *testing.T) {
	store := &memStore{blobs: map[string]string{
		"archive/2026/03/14/abc.json": `{"archived_id":"abc"}`,
	}}
	mux := newSnapshotMux(store)

	req := httptest.NewRequest(http.MethodGet, "/snapshots/2026/03/14/abc.json", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "abc.json") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if body := rec.Body.String(); body != `{"archived_id":"abc"}` {
		t.Errorf("body = %q", body)
	}
}
