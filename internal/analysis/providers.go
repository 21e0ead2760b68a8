package analysis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/biaslens/internal/config"
	"github.com/JaimeStill/biaslens/internal/scoring"
	"github.com/JaimeStill/biaslens/internal/scoring/chat"
	"github.com/JaimeStill/biaslens/internal/scoring/gemini"
)

// Providers holds the four configured model adapters in fan-out order.
type Providers struct {
	adapters []*scoring.Adapter
	gemini   *gemini.Completer
}

// NewProviders builds an adapter for every provider. Providers without an
// API key are still built and fail every call, counting as model failures.
func NewProviders(ctx context.Context, cfg *config.ProvidersConfig, logger *slog.Logger) (*Providers, error) {
	gc, err := gemini.New(ctx, &cfg.Gemini)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}

	p := &Providers{
		gemini: gc,
		adapters: []*scoring.Adapter{
			scoring.NewAdapter(config.ProviderGemini, gc, &cfg.Gemini, logger),
			scoring.NewAdapter(config.ProviderGroq, chat.New(&cfg.Groq), &cfg.Groq, logger),
			scoring.NewAdapter(config.ProviderOpenRouter, chat.New(&cfg.OpenRouter), &cfg.OpenRouter, logger),
			scoring.NewAdapter(config.ProviderOpenAI, chat.New(&cfg.OpenAI), &cfg.OpenAI, logger),
		},
	}

	for name, pc := range cfg.All() {
		if !pc.Configured() {
			logger.Warn("provider has no api key; its calls will fail", "provider", name)
		}
	}

	return p, nil
}

// Scorers returns the adapters as orchestrator scorers.
func (p *Providers) Scorers() []Scorer {
	scorers := make([]Scorer, len(p.adapters))
	for i, a := range p.adapters {
		scorers[i] = a
	}
	return scorers
}

// Close releases provider clients.
func (p *Providers) Close() error {
	return p.gemini.Close()
}
