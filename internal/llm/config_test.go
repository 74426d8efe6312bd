package llm

import "testing"

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("XINYUN_AI_PROVIDER", "openai")
	t.Setenv("XINYUN_OPENAI_API_KEY", "sk-test")
	t.Setenv("XINYUN_OPENAI_MODEL", "gpt-4o")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" {
		t.Errorf("provider = %q", cfg.Provider)
	}
	if cfg.OpenAI.APIKey != "sk-test" || cfg.OpenAI.Model != "gpt-4o" {
		t.Errorf("openai config = %+v", cfg.OpenAI)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != "gemini" {
		t.Errorf("default provider = %q, want gemini", cfg.Provider)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("retry attempts = %d", cfg.Retry.MaxAttempts)
	}
	if cfg.Timeout == 0 {
		t.Error("timeout unset")
	}
}

func TestValidateMissingKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "anthropic"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate accepted missing anthropic key")
	}
	cfg.Provider = "something-else"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate accepted unknown provider")
	}
	cfg.Provider = "mock"
	if err := cfg.Validate(); err != nil {
		t.Errorf("mock provider should not need a key: %v", err)
	}
}

func TestDiscoverConfigProbesStandardVars(t *testing.T) {
	for _, v := range []string{
		"XINYUN_AI_PROVIDER", "XINYUN_GEMINI_API_KEY", "XINYUN_OPENAI_API_KEY",
		"XINYUN_ANTHROPIC_API_KEY", "XINYUN_OPENROUTER_API_KEY",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(v, "")
	}

	if _, ok := DiscoverConfig(); ok {
		t.Fatal("DiscoverConfig found a provider with no keys set")
	}

	t.Setenv("OPENAI_API_KEY", "sk-fallback")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-fallback" {
		t.Errorf("cfg = %+v, ok = %v", cfg, ok)
	}

	// Gemini takes priority when both are present.
	t.Setenv("GEMINI_API_KEY", "g-key")
	cfg, ok = DiscoverConfig()
	if !ok || cfg.Provider != "gemini" {
		t.Errorf("cfg = %+v, ok = %v, want gemini preferred", cfg, ok)
	}

	// Explicit XINYUN_ configuration beats discovery.
	t.Setenv("XINYUN_AI_PROVIDER", "openai")
	t.Setenv("XINYUN_OPENAI_API_KEY", "sk-explicit")
	cfg, ok = DiscoverConfig()
	if !ok || cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-explicit" {
		t.Errorf("cfg = %+v, ok = %v, want explicit openai", cfg, ok)
	}
}
