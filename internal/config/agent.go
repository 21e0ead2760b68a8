package config

import (
	"fmt"
	"os"
	"strings"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// ChatAgentProvider is the go-agents provider used for the OpenAI-compatible
// chat providers. It appends /v1 to the base URL and posts to /chat/completions.
const ChatAgentProvider = "ollama"

// AgentEnv maps go-agents provider settings to environment variable names.
type AgentEnv struct {
	ProviderName string
	Deployment   string
	APIVersion   string
	AuthType     string
}

func agentEnv(name string) *AgentEnv {
	prefix := "BIASLENS_" + strings.ToUpper(name) + "_AGENT_"
	return &AgentEnv{
		ProviderName: prefix + "PROVIDER",
		Deployment:   prefix + "DEPLOYMENT",
		APIVersion:   prefix + "API_VERSION",
		AuthType:     prefix + "AUTH_TYPE",
	}
}

// NewChatAgent builds the go-agents configuration for a chat provider from its
// provider settings and finalizes it. The first configured model is the
// agent's default; callers override it per model attempt.
func NewChatAgent(name string, p *ProviderConfig, env *AgentEnv) (gaconfig.AgentConfig, error) {
	options := map[string]any{"auth_type": "bearer"}
	if p.APIKey != "" {
		options["token"] = p.APIKey
	}

	c := gaconfig.AgentConfig{
		Name: name,
		Provider: &gaconfig.ProviderConfig{
			Name:    ChatAgentProvider,
			BaseURL: agentBaseURL(p.BaseURL),
			Options: options,
		},
		Model: &gaconfig.ModelConfig{},
	}
	if len(p.Models) > 0 {
		c.Model.Name = p.Models[0]
	}

	if err := FinalizeAgent(&c, env); err != nil {
		return c, err
	}
	return c, nil
}

// FinalizeAgent applies the three-phase finalize pattern to a go-agents AgentConfig:
// defaults from go-agents DefaultAgentConfig, environment variable overrides, and validation.
func FinalizeAgent(c *gaconfig.AgentConfig, env *AgentEnv) error {
	loadAgentDefaults(c)
	if env != nil {
		loadAgentEnv(c, env)
	}
	return validateAgent(c)
}

func agentBaseURL(u string) string {
	return strings.TrimSuffix(strings.TrimSuffix(u, "/"), "/v1")
}

func loadAgentDefaults(c *gaconfig.AgentConfig) {
	defaults := gaconfig.DefaultAgentConfig()
	defaults.Merge(c)
	*c = defaults
}

func loadAgentEnv(c *gaconfig.AgentConfig, env *AgentEnv) {
	if c.Provider == nil {
		c.Provider = &gaconfig.ProviderConfig{}
	}
	if c.Provider.Options == nil {
		c.Provider.Options = make(map[string]any)
	}
	if c.Model == nil {
		c.Model = &gaconfig.ModelConfig{}
	}
	if v := os.Getenv(env.ProviderName); v != "" {
		c.Provider.Name = v
	}

	setOption := func(envVar, key string) {
		if v := os.Getenv(envVar); v != "" {
			c.Provider.Options[key] = v
		}
	}

	setOption(env.Deployment, "deployment")
	setOption(env.APIVersion, "api_version")
	setOption(env.AuthType, "auth_type")
}

func validateAgent(c *gaconfig.AgentConfig) error {
	if c.Name == "" {
		return fmt.Errorf("name required")
	}
	if c.Provider == nil {
		return fmt.Errorf("provider required")
	}
	if c.Provider.Name == "" {
		return fmt.Errorf("provider name required")
	}
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("provider base_url required")
	}
	if c.Model == nil || c.Model.Name == "" {
		return fmt.Errorf("model required")
	}
	return nil
}
