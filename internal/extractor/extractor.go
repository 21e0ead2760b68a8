// Package extractor fetches article pages and reduces them to readable text
// plus the metadata needed to register a media item.
package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/JaimeStill/biaslens/internal/config"
)

// Errors returned by Extract. Callers treat both as "no content".
var (
	ErrInvalidURL = errors.New("invalid article url")
	ErrNoContent  = errors.New("no article content")
)

// Article is the cleaned result of fetching one page.
type Article struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Source      string `json:"source"`
	Text        string `json:"-"`
}

// Extractor fetches and parses article pages.
type Extractor struct {
	client    *http.Client
	maxBody   int64
	userAgent string
	logger    *slog.Logger
}

// New creates an Extractor from configuration. A nil client gets one with
// the configured timeout.
func New(cfg *config.ExtractorConfig, client *http.Client, logger *slog.Logger) *Extractor {
	if client == nil {
		client = &http.Client{Timeout: cfg.TimeoutDuration()}
	}
	return &Extractor{
		client:    client,
		maxBody:   cfg.MaxBodySizeBytes(),
		userAgent: cfg.UserAgent,
		logger:    logger.With("system", "extractor"),
	}
}

// Extract fetches rawURL and returns its readable text and metadata.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*Article, error) {
	u, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}

	doc, err := e.fetch(ctx, u.String())
	if err != nil {
		e.logger.WarnContext(ctx, "article fetch failed", "url", u.String(), "error", err)
		return nil, fmt.Errorf("%w: %w", ErrNoContent, err)
	}

	article := Parse(doc, u)
	if article.Text == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoContent, u.String())
	}

	e.logger.DebugContext(ctx, "article extracted",
		"url", article.URL,
		"source", article.Source,
		"chars", len(article.Text),
	)
	return article, nil
}

// ParseURL validates that rawURL is an absolute http or https URL.
func ParseURL(rawURL string) (*url.URL, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidURL)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	return u, nil
}

// SourceName returns the hostname of u without a leading "www.".
func SourceName(u *url.URL) string {
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

func (e *Extractor) fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	start := time.Now()
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("page returned %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, e.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > e.maxBody {
		return nil, fmt.Errorf("body exceeds %d bytes", e.maxBody)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	e.logger.DebugContext(ctx, "page fetched", "url", pageURL, "bytes", len(body), "duration", time.Since(start))
	return doc, nil
}
