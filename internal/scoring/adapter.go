package scoring

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/JaimeStill/biaslens/internal/config"
	"github.com/JaimeStill/biaslens/pkg/formatting"
)

// Completer sends a single prompt to one model and returns its raw text.
type Completer interface {
	Complete(ctx context.Context, model, prompt string) (string, error)
}

// Adapter scores article text through one provider. It tries each configured
// model in order and stops at the first that returns non-empty text.
type Adapter struct {
	name      string
	completer Completer
	models    []string
	maxChars  int
	timeout   time.Duration
	logger    *slog.Logger
}

// NewAdapter binds a completer to the model list, truncation budget, and
// per-attempt timeout from cfg.
func NewAdapter(name string, completer Completer, cfg *config.ProviderConfig, logger *slog.Logger) *Adapter {
	return &Adapter{
		name:      name,
		completer: completer,
		models:    cfg.Models,
		maxChars:  cfg.MaxContentChars,
		timeout:   cfg.TimeoutDuration(),
		logger:    logger.With("system", "scoring", "provider", name),
	}
}

// Name returns the provider name.
func (a *Adapter) Name() string {
	return a.name
}

// Score prompts the provider with content and rubrics. It returns nil on any
// failure: transport errors, empty output, undecodable JSON, or a response
// with no scores. Failures are logged and never returned. A panic in the
// completer or decode path is recovered into a nil result.
func (a *Adapter) Score(ctx context.Context, content string, rubrics []Rubric) (scored *Result) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.ErrorContext(ctx, "scoring panicked", "panic", r)
			scored = nil
		}
	}()

	if a.maxChars > 0 {
		content = formatting.TruncateSentence(content, a.maxChars)
	}
	prompt := BuildPrompt(content, rubrics)

	raw, model := a.complete(ctx, prompt)
	if raw == "" {
		return nil
	}

	result, err := formatting.Parse[Result](raw)
	if err != nil {
		a.logger.WarnContext(ctx, "response decode failed", "model", model, "error", err)
		return nil
	}

	if len(result.Scores) == 0 {
		a.logger.WarnContext(ctx, "response contained no scores", "model", model)
		return nil
	}

	a.logger.InfoContext(ctx, "article scored", "model", model, "scores", len(result.Scores))
	return &result
}

func (a *Adapter) complete(ctx context.Context, prompt string) (string, string) {
	for _, model := range a.models {
		text, err := a.attempt(ctx, model, prompt)
		if err != nil {
			a.logger.WarnContext(ctx, "model call failed", "model", model, "error", err)
			if ctx.Err() != nil {
				return "", ""
			}
			continue
		}

		if strings.TrimSpace(text) == "" {
			a.logger.WarnContext(ctx, "model returned empty text", "model", model)
			continue
		}

		return text, model
	}

	a.logger.WarnContext(ctx, "no model produced output", "models", a.models)
	return "", ""
}

func (a *Adapter) attempt(ctx context.Context, model, prompt string) (string, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	return a.completer.Complete(ctx, model, prompt)
}
