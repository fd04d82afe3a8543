package llm

import (
	"fmt"
	"strings"

	"github.com/helmcode/jira-ai/pkg/config"
	apperrors "github.com/helmcode/jira-ai/pkg/errors"
)

// Provider names accepted in llm.provider
const (
	ProviderClaude = "claude"
	ProviderOpenAI = "openai"
)

// NewFromConfig creates the completion provider named in the config. A
// missing API key is not an error here: the provider reports it on the
// first request, which lets the analysis fall back to the heuristic.
func NewFromConfig(cfg config.LLMConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case ProviderOpenAI, "":
		model := cfg.Model
		if model == "" {
			model = config.DefaultOpenAIModel
		}
		return NewOpenAIWithModel(cfg.APIKey, model).
			WithEndpoint(cfg.Endpoint).
			WithTimeout(cfg.Timeout), nil

	case ProviderClaude:
		model := cfg.Model
		if model == "" {
			model = config.DefaultClaudeModel
		}
		return NewClaudeWithModel(cfg.APIKey, model).
			WithEndpoint(cfg.Endpoint).
			WithTimeout(cfg.Timeout), nil

	default:
		return nil, apperrors.NewConfig(
			fmt.Sprintf("unsupported LLM provider: %s (supported: %s, %s)", cfg.Provider, ProviderClaude, ProviderOpenAI), nil)
	}
}

// GetAvailableProviders returns a list of available LLM providers
func GetAvailableProviders() []string {
	return []string{ProviderClaude, ProviderOpenAI}
}
