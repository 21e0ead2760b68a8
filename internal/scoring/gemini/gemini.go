// Package gemini implements a scoring.Completer over the Google Generative AI SDK.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/JaimeStill/biaslens/internal/config"
	"github.com/JaimeStill/biaslens/internal/scoring"
)

// Completer sends prompts to Gemini models. A Completer created without an
// API key holds no client and fails every call with scoring.ErrNotConfigured.
type Completer struct {
	client      *genai.Client
	temperature float32
	maxTokens   int32
}

// New creates a Completer from provider configuration.
func New(ctx context.Context, cfg *config.ProviderConfig, opts ...option.ClientOption) (*Completer, error) {
	c := &Completer{
		temperature: float32(cfg.Temperature),
		maxTokens:   int32(cfg.MaxTokens),
	}

	if !cfg.Configured() {
		return c, nil
	}

	opts = append([]option.ClientOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	c.client = client

	return c, nil
}

// Complete generates a JSON response from the named model.
func (c *Completer) Complete(ctx context.Context, model, prompt string) (string, error) {
	if c.client == nil {
		return "", scoring.ErrNotConfigured
	}

	m := c.client.GenerativeModel(model)
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(scoring.SystemInstruction)},
	}
	m.ResponseMIMEType = "application/json"
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:     genai.Ptr(c.temperature),
		MaxOutputTokens: genai.Ptr(c.maxTokens),
	}

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return responseText(resp), nil
}

// Close releases the underlying client.
func (c *Completer) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
		if b.Len() > 0 {
			break
		}
	}
	return b.String()
}
