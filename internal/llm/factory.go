package llm

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/abhisek/masquerade/internal/store"
)

// NewProvider builds the configured provider wrapped as
// retry → recording → vendor, so every attempt is recorded.
// The mock provider is returned bare.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, logger *log.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini, "")
	case ProviderMock:
		return NewMockProvider(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("init %s provider: %w", cfg.Provider, err)
	}
	return WithRetry(WithRecording(base, cfg.Provider, events, logger), cfg.Retry), nil
}

// ProviderInfo describes one provider for listings.
type ProviderInfo struct {
	Name       string
	Model      string
	Configured bool
}

// Providers lists every vendor with the model cfg would use and whether
// its API key is present.
func Providers(cfg Config) []ProviderInfo {
	return []ProviderInfo{
		{ProviderAnthropic, resolveModel(cfg.Anthropic.Model, anthropicAliases), cfg.Anthropic.APIKey != ""},
		{ProviderOpenAI, resolveModel(cfg.OpenAI.Model, openaiAliases), cfg.OpenAI.APIKey != ""},
		{ProviderGemini, resolveModel(cfg.Gemini.Model, geminiAliases), cfg.Gemini.APIKey != ""},
		{ProviderOpenRouter, cfg.OpenRouter.Model, cfg.OpenRouter.APIKey != ""},
	}
}
