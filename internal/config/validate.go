package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable. A missing API key is not a
// validation error because commands such as "show" never contact the service;
// use RequireLLM before building a correction client.
func (c *Config) Validate() error {
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateCorrection(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateLLM() error {
	switch c.LLM.Provider {
	case ProviderOpenRouter, ProviderGemini:
	default:
		return fmt.Errorf("llm.provider must be %q or %q, got %q", ProviderOpenRouter, ProviderGemini, c.LLM.Provider)
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model must be set")
	}
	if c.LLM.ThinkingBudget > maxThinkingBudget {
		return fmt.Errorf("llm.thinking_budget must be <= %d", maxThinkingBudget)
	}
	return nil
}

func (c *Config) validateCorrection() error {
	if c.Correction.BatchSize <= 0 {
		return errors.New("correction.batch_size must be positive")
	}
	if strings.ContainsAny(c.Correction.OutputPrefix, `/\`) {
		return errors.New("correction.output_prefix must not contain path separators")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}

// RequireLLM reports a configuration error when no API key is available.
func (c *Config) RequireLLM() error {
	if strings.TrimSpace(c.LLM.APIKey) != "" {
		return nil
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = defaultConfigPath
	}
	envHint := "OPENROUTER_API_KEY"
	if c.LLM.Provider == ProviderGemini {
		envHint = "GEMINI_API_KEY"
	}
	return fmt.Errorf("llm.api_key is required. Set %s env var or edit %s (create with 'subfix config init')", envHint, defaultPath)
}
