// Package chat implements a scoring.Completer for OpenAI-compatible chat
// completion APIs (Groq, OpenRouter, OpenAI) through go-agents.
package chat

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/JaimeStill/biaslens/internal/config"
	"github.com/JaimeStill/biaslens/internal/scoring"
)

// Completer sends prompts through a go-agents chat agent. An agent is created
// per call so each fallback attempt targets its own model.
type Completer struct {
	agent      gaconfig.AgentConfig
	configured bool
}

// New creates a Completer from a finalized provider configuration.
func New(cfg *config.ProviderConfig) *Completer {
	return &Completer{
		agent:      cfg.Agent,
		configured: cfg.Configured(),
	}
}

// Complete sends prompt to model and returns the response content.
func (c *Completer) Complete(ctx context.Context, model, prompt string) (string, error) {
	if !c.configured {
		return "", scoring.ErrNotConfigured
	}

	a, err := agent.New(c.forModel(model))
	if err != nil {
		return "", fmt.Errorf("create agent: %w", err)
	}

	resp, err := a.Chat(ctx, scoring.SystemInstruction+"\n\n"+prompt)
	if err != nil {
		return "", fmt.Errorf("chat call: %w", err)
	}

	return resp.Content(), nil
}

func (c *Completer) forModel(model string) *gaconfig.AgentConfig {
	cfg := c.agent
	m := gaconfig.ModelConfig{}
	if c.agent.Model != nil {
		m = *c.agent.Model
	}
	m.Name = model
	cfg.Model = &m
	return &cfg
}
