package gemini_test

import (
	"context"
	"errors"
	"testing"

	"github.com/JaimeStill/biaslens/internal/config"
	"github.com/JaimeStill/biaslens/internal/scoring"
	"github.com/JaimeStill/biaslens/internal/scoring/gemini"
)

func TestUnconfiguredCompleter(t *testing.T) {
	c, err := gemini.New(context.Background(), &config.ProviderConfig{Temperature: 0.2, MaxTokens: 256})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := c.Complete(context.Background(), "gemini-2.0-flash", "prompt"); !errors.Is(err, scoring.ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}

	if err := c.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
