package llm

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != ProviderAnthropic || cfg.Anthropic.Model != "claude-haiku" {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.Retry.MaxAttempts != 3 || cfg.Retry.InitialWait != time.Second || cfg.Timeout != time.Minute {
		t.Fatalf("retry defaults = %+v timeout %s", cfg.Retry, cfg.Timeout)
	}
}

func TestConfig_FromVars(t *testing.T) {
	cfg, err := parseConfig(map[string]string{
		"MASQUERADE_LLM_PROVIDER":        "openai",
		"MASQUERADE_LLM_OPENAI_API_KEY":  "sk-test",
		"MASQUERADE_LLM_OPENAI_BASE_URL": "http://localhost:8080/v1",
		"MASQUERADE_LLM_RETRY_ATTEMPTS":  "5",
		"MASQUERADE_LLM_GEMINI_MODEL":    "gemini-pro",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Provider != ProviderOpenAI || cfg.OpenAI.APIKey != "sk-test" || cfg.OpenAI.BaseURL != "http://localhost:8080/v1" {
		t.Fatalf("openai = %+v", cfg.OpenAI)
	}
	if cfg.Retry.MaxAttempts != 5 || cfg.Gemini.Model != "gemini-pro" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.ModelFor() != "gpt-4o-mini" {
		t.Fatalf("model = %s", cfg.ModelFor())
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "MASQUERADE_LLM_ANTHROPIC_API_KEY") {
		t.Fatalf("err = %v", err)
	}
	cfg.Provider = "parrot"
	if err := cfg.Validate(); err == nil {
		t.Fatal("unknown provider accepted")
	}
	cfg.Provider = ProviderMock
	if err := cfg.Validate(); err != nil {
		t.Fatalf("mock: %v", err)
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("found a provider with no keys")
	}
	t.Setenv("GEMINI_API_KEY", "g")
	t.Setenv("OPENROUTER_API_KEY", "o")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != ProviderGemini || cfg.Gemini.APIKey != "g" {
		t.Fatalf("cfg = %+v ok=%v", cfg, ok)
	}
}

func TestNewProvider_Mock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock
	p, err := NewProvider(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	if _, ok := p.(*MockProvider); !ok {
		t.Fatalf("got %T", p)
	}

	cfg.Provider = ProviderOpenAI
	if _, err := NewProvider(context.Background(), cfg, nil, nil); err == nil {
		t.Fatal("openai without key accepted")
	}
}

func TestProvidersAndPricing(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gemini.APIKey = "g"
	list := Providers(cfg)
	if len(list) != 4 || list[2].Name != ProviderGemini || !list[2].Configured || list[0].Configured {
		t.Fatalf("providers = %+v", list)
	}
	for _, p := range list {
		if _, ok := LookupCost(p.Model); !ok {
			t.Errorf("no price for default %s model %s", p.Name, p.Model)
		}
	}
	c, _ := LookupCost("gpt-4o-mini")
	if got := c.Cost(Usage{InputTokens: 1_000_000, OutputTokens: 1_000_000}); math.Abs(got-0.75) > 1e-9 {
		t.Fatalf("cost = %v", got)
	}
}
