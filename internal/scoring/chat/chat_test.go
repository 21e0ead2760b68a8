package chat_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/biaslens/internal/config"
	"github.com/JaimeStill/biaslens/internal/scoring"
	"github.com/JaimeStill/biaslens/internal/scoring/chat"
)

func providerConfig(t *testing.T, baseURL, apiKey string) *config.ProviderConfig {
	t.Helper()
	cfg := &config.ProviderConfig{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Models:  []string{"default-model"},
	}
	agent, err := config.NewChatAgent(config.ProviderGroq, cfg, nil)
	if err != nil {
		t.Fatalf("NewChatAgent: %v", err)
	}
	cfg.Agent = agent
	return cfg
}

func TestComplete(t *testing.T) {
	var (
		gotPath string
		gotBody map[string]any
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"c1","object":"chat.completion","model":"llama-3.1-8b-instant","choices":[{"index":0,"message":{"role":"assistant","content":"{\"scores\":[]}"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	c := chat.New(providerConfig(t, srv.URL+"/v1/", "k-123"))

	text, err := c.Complete(context.Background(), "llama-3.1-8b-instant", "score this")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if text != `{"scores":[]}` {
		t.Errorf("text = %q", text)
	}
	if gotPath != "/v1/chat/completions" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody["model"] != "llama-3.1-8b-instant" {
		t.Errorf("model = %v, want the attempted model", gotBody["model"])
	}

	msgs, ok := gotBody["messages"].([]any)
	if !ok || len(msgs) == 0 {
		t.Fatalf("messages = %+v", gotBody["messages"])
	}
	last, _ := msgs[len(msgs)-1].(map[string]any)
	if content, _ := last["content"].(string); !strings.Contains(content, "score this") {
		t.Errorf("prompt not sent, last message = %+v", last)
	}
}

func TestCompleteErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	t.Run("status", func(t *testing.T) {
		c := chat.New(providerConfig(t, srv.URL, "k"))
		if _, err := c.Complete(context.Background(), "m", "p"); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("not configured", func(t *testing.T) {
		c := chat.New(providerConfig(t, srv.URL, ""))
		_, err := c.Complete(context.Background(), "m", "p")
		if !errors.Is(err, scoring.ErrNotConfigured) {
			t.Errorf("err = %v, want ErrNotConfigured", err)
		}
	})
}
