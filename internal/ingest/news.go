package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/JaimeStill/biaslens/internal/config"
	"github.com/JaimeStill/biaslens/pkg/formatting"
)

// ErrNotConfigured is returned when no news API key is set.
var ErrNotConfigured = errors.New("news api key not configured")

const defaultMaxResponse = 2 << 20

// Headline is one article as listed by the news aggregator.
type Headline struct {
	ArticleID   string  `json:"article_id"`
	Title       string  `json:"title"`
	Link        string  `json:"link"`
	SourceID    string  `json:"source_id"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
}

type newsResponse struct {
	Status  string          `json:"status"`
	Results json.RawMessage `json:"results"`
}

type newsError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// NewsClient queries a NewsData.io-style latest-headlines endpoint.
type NewsClient struct {
	baseURL  string
	apiKey   string
	language string
	maxBody  int64
	client   *http.Client
}

// NewNewsClient creates a NewsClient. A nil client gets one with the
// configured timeout. Responses larger than max_response_size are rejected.
func NewNewsClient(cfg *config.NewsConfig, client *http.Client) *NewsClient {
	if client == nil {
		client = &http.Client{Timeout: cfg.TimeoutDuration()}
	}
	maxBody := cfg.MaxResponseSizeBytes()
	if maxBody <= 0 {
		maxBody = defaultMaxResponse
	}
	return &NewsClient{
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		language: cfg.Language,
		maxBody:  maxBody,
		client:   client,
	}
}

// Latest returns the current headlines for a news category.
func (c *NewsClient) Latest(ctx context.Context, category string) ([]Headline, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	q := u.Query()
	q.Set("apikey", c.apiKey)
	q.Set("category", category)
	if c.language != "" {
		q.Set("language", c.language)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request headlines: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("response exceeds %d bytes", c.maxBody)
	}

	var parsed newsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode response (status %d): %s", resp.StatusCode, formatting.Truncate(string(body), 200))
	}

	if resp.StatusCode != http.StatusOK || parsed.Status != "success" {
		var ne newsError
		_ = json.Unmarshal(parsed.Results, &ne)
		return nil, fmt.Errorf("news api %s (status %d): %s", parsed.Status, resp.StatusCode, ne.Message)
	}

	var headlines []Headline
	if err := json.Unmarshal(parsed.Results, &headlines); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	return headlines, nil
}
