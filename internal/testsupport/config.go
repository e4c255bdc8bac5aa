package testsupport

import (
	"path/filepath"
	"testing"

	"subfix/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a validated config with a test API key and a log file
// under a per-test temp directory.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.LLM.APIKey = "test"
	cfgVal.LLM.BaseURL = "http://127.0.0.1:0/chat/completions"
	cfgVal.LLM.Model = "test-model"
	cfgVal.LLM.TimeoutSeconds = 5
	cfgVal.Logging.File = filepath.Join(base, "logs", "subfix.log")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return builder.cfg
}

// WithProvider selects the LLM provider and points it at baseURL.
func WithProvider(provider, baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.LLM.Provider = provider
		b.cfg.LLM.BaseURL = baseURL
	}
}
