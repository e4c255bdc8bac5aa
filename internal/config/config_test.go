package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"subfix/internal/config"
)

func isolateEnv(t *testing.T) string {
	t.Helper()
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	for _, key := range []string{"SUBFIX_API_KEY", "OPENROUTER_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY", "API_KEY"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Chdir(t.TempDir())
	return tempHome
}

func TestLoadDefaultConfigUsesEnvAPIKey(t *testing.T) {
	isolateEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "test-key")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if cfg.LLM.APIKey != "test-key" {
		t.Fatalf("expected API key from env, got %q", cfg.LLM.APIKey)
	}
	if cfg.LLM.Provider != config.ProviderOpenRouter {
		t.Fatalf("unexpected provider: %q", cfg.LLM.Provider)
	}
	if cfg.LLM.BaseURL != "https://openrouter.ai/api/v1/chat/completions" {
		t.Fatalf("unexpected base url: %q", cfg.LLM.BaseURL)
	}
	if cfg.Correction.BatchSize != 15 {
		t.Fatalf("expected default batch size 15, got %d", cfg.Correction.BatchSize)
	}
	if cfg.Correction.OutputPrefix != "fixed_" {
		t.Fatalf("expected default output prefix, got %q", cfg.Correction.OutputPrefix)
	}
	if cfg.LLM.ThinkingBudget != 4000 {
		t.Fatalf("expected default thinking budget, got %d", cfg.LLM.ThinkingBudget)
	}
	if err := cfg.RequireLLM(); err != nil {
		t.Fatalf("RequireLLM returned error: %v", err)
	}
}

func TestLoadWithoutAPIKeyStillValid(t *testing.T) {
	isolateEnv(t)

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	err = cfg.RequireLLM()
	if err == nil {
		t.Fatal("expected RequireLLM to fail without api key")
	}
	if !strings.Contains(err.Error(), "OPENROUTER_API_KEY") {
		t.Fatalf("expected env hint in error, got %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	isolateEnv(t)
	configPath := filepath.Join(t.TempDir(), "subfix.toml")

	type payload struct {
		LLM struct {
			Provider string `toml:"provider"`
			APIKey   string `toml:"api_key"`
		} `toml:"llm"`
		Correction struct {
			BatchSize int `toml:"batch_size"`
		} `toml:"correction"`
	}
	custom := payload{}
	custom.LLM.Provider = "Gemini"
	custom.LLM.APIKey = "abc123"
	custom.Correction.BatchSize = 20
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.LLM.Provider != config.ProviderGemini {
		t.Fatalf("expected provider normalized to gemini, got %q", cfg.LLM.Provider)
	}
	if cfg.LLM.Model != "gemini-3-pro-preview" {
		t.Fatalf("expected gemini default model, got %q", cfg.LLM.Model)
	}
	if cfg.LLM.BaseURL != "https://generativelanguage.googleapis.com" {
		t.Fatalf("expected gemini default base url, got %q", cfg.LLM.BaseURL)
	}
	if cfg.Correction.BatchSize != 20 {
		t.Fatalf("expected batch size 20, got %d", cfg.Correction.BatchSize)
	}
}

func TestConfigFileWinsOverEnvAPIKey(t *testing.T) {
	isolateEnv(t)
	configPath := filepath.Join(t.TempDir(), "subfix.toml")
	if err := os.WriteFile(configPath, []byte("[llm]\napi_key = \"file-key\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("OPENROUTER_API_KEY", "env-key")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LLM.APIKey != "file-key" {
		t.Fatalf("expected file key, got %q", cfg.LLM.APIKey)
	}
}

func TestDotEnvProvidesFallback(t *testing.T) {
	isolateEnv(t)
	if err := os.WriteFile(".env", []byte("GEMINI_API_KEY=dotenv-key\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("GEMINI_API_KEY") })
	if err := os.WriteFile("subfix.toml", []byte("[llm]\nprovider = \"gemini\"\n"), 0o644); err != nil {
		t.Fatalf("write project config: %v", err)
	}

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || filepath.Base(resolved) != "subfix.toml" {
		t.Fatalf("expected project config to be used, got %q (exists=%v)", resolved, exists)
	}
	if cfg.LLM.APIKey != "dotenv-key" {
		t.Fatalf("expected key from .env, got %q", cfg.LLM.APIKey)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(*config.Config){
		"llm.provider":             func(c *config.Config) { c.LLM.Provider = "bogus" },
		"correction.batch_size":    func(c *config.Config) { c.Correction.BatchSize = -1 },
		"correction.output_prefix": func(c *config.Config) { c.Correction.OutputPrefix = "out/" },
		"logging.level":            func(c *config.Config) { c.Logging.Level = "verbose" },
		"llm.thinking_budget":      func(c *config.Config) { c.LLM.ThinkingBudget = 1 << 20 },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			cfg := config.Default()
			cfg.LLM.Model = "demo"
			mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error for %s", field)
			}
			if !strings.Contains(err.Error(), field) {
				t.Fatalf("expected %q in error, got %v", field, err)
			}
		})
	}
}

func TestCreateSample(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "batch_size = 15") {
		t.Fatalf("expected sample to document batch size, got %q", contents)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.Correction.ReasonLanguage != "Chinese" {
		t.Fatalf("unexpected reason language %q", cfg.Correction.ReasonLanguage)
	}
}

func TestMarshalMasksAPIKey(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.APIKey = "secret"
	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if strings.Contains(string(data), "secret") {
		t.Fatalf("expected api key to be masked, got %s", data)
	}
}
