package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/biaslens/internal/extractor"
	"github.com/JaimeStill/biaslens/internal/media"
	"github.com/JaimeStill/biaslens/pkg/handlers"
	"github.com/JaimeStill/biaslens/pkg/routes"
)

// Analyzer runs an analysis.
type Analyzer interface {
	Analyze(ctx context.Context, cmd Command) (*Analysis, error)
}

// MediaStore creates and loads media rows for the analyze endpoint.
type MediaStore interface {
	Create(ctx context.Context, cmd media.CreateCommand) (*media.Media, error)
	Find(ctx context.Context, id uuid.UUID) (*media.Media, error)
}

// Request is the body of POST /analyze. Without MediaID the article is
// registered as user-submitted media before analysis.
type Request struct {
	URL     string `json:"url"`
	Title   string `json:"title,omitempty"`
	Source  string `json:"source,omitempty"`
	MediaID string `json:"mediaId,omitempty"`
}

// MediaSummary identifies the analyzed media item in a response.
type MediaSummary struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	URL    string    `json:"url"`
	Source string    `json:"source"`
}

// Response is the body returned by a successful analysis.
type Response struct {
	Success  bool         `json:"success"`
	Media    MediaSummary `json:"media"`
	Analysis *Analysis    `json:"analysis"`
}

// Handler serves the analyze endpoint.
type Handler struct {
	analyzer  Analyzer
	media     MediaStore
	extractor Extractor
	logger    *slog.Logger
	maxBody   int64
}

// NewHandler creates a Handler. maxBody caps the request body size.
func NewHandler(
	analyzer Analyzer,
	store MediaStore,
	ext Extractor,
	logger *slog.Logger,
	maxBody int64,
) *Handler {
	return &Handler{
		analyzer:  analyzer,
		media:     store,
		extractor: ext,
		logger:    logger.With("handler", "analysis"),
		maxBody:   maxBody,
	}
}

// Routes returns the route group definition for the analyze endpoint.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/analyze",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Analyze},
		},
	}
}

// Analyze registers or loads the media item and runs a full analysis.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	if _, err := extractor.ParseURL(req.URL); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var (
		m       *media.Media
		content string
		status  int
		err     error
	)

	if strings.TrimSpace(req.MediaID) == "" {
		m, content, status, err = h.register(r.Context(), req)
	} else {
		m, status, err = h.load(r.Context(), req)
	}
	if err != nil {
		handlers.RespondError(w, h.logger, status, err)
		return
	}

	title := firstNonEmpty(req.Title, m.Title)
	source := firstNonEmpty(req.Source, m.Source)

	result, err := h.analyzer.Analyze(r.Context(), Command{
		MediaID: m.ID.String(),
		URL:     req.URL,
		Title:   title,
		Source:  source,
		Content: content,
	})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{
		Success: true,
		Media: MediaSummary{
			ID:     m.ID,
			Title:  title,
			URL:    req.URL,
			Source: source,
		},
		Analysis: result,
	})
}

func (h *Handler) register(ctx context.Context, req Request) (*media.Media, string, int, error) {
	article, err := h.extractor.Extract(ctx, req.URL)
	if err != nil {
		return nil, "", http.StatusBadRequest, fmt.Errorf("%w: %w", ErrNoContent, err)
	}

	cmd := media.CreateCommand{
		Title:         firstNonEmpty(req.Title, article.Title, req.URL),
		URL:           req.URL,
		Source:        firstNonEmpty(req.Source, article.Source),
		Description:   optional(article.Description),
		ImageURL:      optional(article.ImageURL),
		MediaType:     media.TypeArticle,
		UserSubmitted: true,
	}

	m, err := h.media.Create(ctx, cmd)
	if err != nil {
		return nil, "", media.MapHTTPStatus(err), err
	}
	return m, article.Text, 0, nil
}

func (h *Handler) load(ctx context.Context, req Request) (*media.Media, int, error) {
	id, err := uuid.Parse(req.MediaID)
	if err != nil {
		return nil, http.StatusBadRequest, ErrInvalidInput
	}

	m, err := h.media.Find(ctx, id)
	if err != nil {
		return nil, media.MapHTTPStatus(err), err
	}
	return m, 0, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
