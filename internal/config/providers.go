package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// Provider names. These double as the keys of an analysis result.
const (
	ProviderGemini     = "gemini"
	ProviderGroq       = "groq"
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
)

// ProviderConfig holds the settings for one hosted model provider.
// Models are tried in order until one returns non-empty text.
// MaxContentChars truncates article text before prompting; zero disables truncation.
// Temperature and MaxTokens tune Gemini generation; chat providers use the
// go-agents model defaults. Agent is derived during Finalize for chat providers.
type ProviderConfig struct {
	APIKey          string   `toml:"api_key"`
	BaseURL         string   `toml:"base_url"`
	Models          []string `toml:"models"`
	MaxContentChars int      `toml:"max_content_chars"`
	MaxTokens       int      `toml:"max_tokens"`
	Temperature     float64  `toml:"temperature"`
	Timeout         string   `toml:"timeout"`

	Agent gaconfig.AgentConfig `toml:"-"`
}

// ProviderEnv maps provider config fields to environment variable names.
type ProviderEnv struct {
	APIKey          string
	BaseURL         string
	Models          string
	MaxContentChars string
	Timeout         string
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *ProviderConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Configured reports whether an API key is present.
func (c *ProviderConfig) Configured() bool {
	return c.APIKey != ""
}

// Finalize fills unset fields from defaults, applies environment overrides, and validates.
func (c *ProviderConfig) Finalize(env *ProviderEnv, defaults ProviderConfig) error {
	c.loadDefaults(defaults)
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ProviderConfig) Merge(overlay *ProviderConfig) {
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if len(overlay.Models) > 0 {
		c.Models = overlay.Models
	}
	if overlay.MaxContentChars != 0 {
		c.MaxContentChars = overlay.MaxContentChars
	}
	if overlay.MaxTokens != 0 {
		c.MaxTokens = overlay.MaxTokens
	}
	if overlay.Temperature != 0 {
		c.Temperature = overlay.Temperature
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *ProviderConfig) loadDefaults(d ProviderConfig) {
	if c.BaseURL == "" {
		c.BaseURL = d.BaseURL
	}
	if len(c.Models) == 0 {
		c.Models = slices.Clone(d.Models)
	}
	if c.MaxContentChars == 0 {
		c.MaxContentChars = d.MaxContentChars
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = d.MaxTokens
	}
	if c.Temperature == 0 {
		c.Temperature = d.Temperature
	}
	if c.Timeout == "" {
		c.Timeout = d.Timeout
	}
}

func (c *ProviderConfig) loadEnv(env *ProviderEnv) {
	if env.APIKey != "" {
		if v := os.Getenv(env.APIKey); v != "" {
			c.APIKey = v
		}
	}
	if env.BaseURL != "" {
		if v := os.Getenv(env.BaseURL); v != "" {
			c.BaseURL = v
		}
	}
	if env.Models != "" {
		if v := os.Getenv(env.Models); v != "" {
			models := make([]string, 0)
			for m := range strings.SplitSeq(v, ",") {
				if trimmed := strings.TrimSpace(m); trimmed != "" {
					models = append(models, trimmed)
				}
			}
			c.Models = models
		}
	}
	if env.MaxContentChars != "" {
		if v := os.Getenv(env.MaxContentChars); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.MaxContentChars = n
			}
		}
	}
	if env.Timeout != "" {
		if v := os.Getenv(env.Timeout); v != "" {
			c.Timeout = v
		}
	}
}

func (c *ProviderConfig) validate() error {
	if len(c.Models) == 0 {
		return fmt.Errorf("at least one model required")
	}
	if c.MaxContentChars < 0 {
		return fmt.Errorf("max_content_chars must not be negative")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}

// ProvidersConfig holds the four provider bindings used by the analysis pipeline.
type ProvidersConfig struct {
	Gemini     ProviderConfig `toml:"gemini"`
	Groq       ProviderConfig `toml:"groq"`
	OpenRouter ProviderConfig `toml:"openrouter"`
	OpenAI     ProviderConfig `toml:"openai"`
}

var providerDefaults = map[string]ProviderConfig{
	ProviderGemini: {
		Models:      []string{"gemini-2.0-flash", "gemini-1.5-flash", "gemini-1.5-flash-8b"},
		MaxTokens:   2048,
		Temperature: 0.2,
		Timeout:     "2m",
	},
	ProviderGroq: {
		BaseURL:         "https://api.groq.com/openai/v1",
		Models:          []string{"llama-3.1-8b-instant"},
		MaxContentChars: 6000,
		Timeout:         "2m",
	},
	ProviderOpenRouter: {
		BaseURL: "https://openrouter.ai/api/v1",
		Models:  []string{"meta-llama/llama-3.3-70b-instruct:free", "mistralai/mistral-7b-instruct:free"},
		Timeout: "2m",
	},
	ProviderOpenAI: {
		BaseURL: "https://api.openai.com/v1",
		Models:  []string{"gpt-4o-mini"},
		Timeout: "2m",
	},
}

func providerEnv(name string) *ProviderEnv {
	prefix := "BIASLENS_" + strings.ToUpper(name) + "_"
	return &ProviderEnv{
		APIKey:          prefix + "API_KEY",
		BaseURL:         prefix + "BASE_URL",
		Models:          prefix + "MODELS",
		MaxContentChars: prefix + "MAX_CONTENT_CHARS",
		Timeout:         prefix + "TIMEOUT",
	}
}

// All returns the provider configs keyed by provider name.
func (c *ProvidersConfig) All() map[string]*ProviderConfig {
	return map[string]*ProviderConfig{
		ProviderGemini:     &c.Gemini,
		ProviderGroq:       &c.Groq,
		ProviderOpenRouter: &c.OpenRouter,
		ProviderOpenAI:     &c.OpenAI,
	}
}

// Finalize finalizes every provider with its defaults and environment mapping,
// then derives the go-agents configuration of each chat provider.
func (c *ProvidersConfig) Finalize() error {
	for name, p := range c.All() {
		if err := p.Finalize(providerEnv(name), providerDefaults[name]); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if name == ProviderGemini {
			continue
		}
		agent, err := NewChatAgent(name, p, agentEnv(name))
		if err != nil {
			return fmt.Errorf("%s agent: %w", name, err)
		}
		p.Agent = agent
	}
	return nil
}

// Merge overwrites non-zero fields from overlay for each provider.
func (c *ProvidersConfig) Merge(overlay *ProvidersConfig) {
	c.Gemini.Merge(&overlay.Gemini)
	c.Groq.Merge(&overlay.Groq)
	c.OpenRouter.Merge(&overlay.OpenRouter)
	c.OpenAI.Merge(&overlay.OpenAI)
}
