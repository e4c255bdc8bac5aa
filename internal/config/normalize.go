package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeLLM()
	c.normalizeCorrection()
	return c.normalizeLogging()
}

func (c *Config) normalizeLLM() {
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	if c.LLM.Provider == "" {
		c.LLM.Provider = defaultProvider
	}
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	switch c.LLM.Provider {
	case ProviderGemini:
		if c.LLM.BaseURL == "" {
			c.LLM.BaseURL = defaultGeminiBaseURL
		}
		if c.LLM.Model == "" {
			c.LLM.Model = defaultGeminiModel
		}
	default:
		if c.LLM.BaseURL == "" {
			c.LLM.BaseURL = defaultOpenRouterBaseURL
		}
		if c.LLM.Model == "" {
			c.LLM.Model = defaultOpenRouterModel
		}
	}
	c.LLM.Referer = strings.TrimSpace(c.LLM.Referer)
	c.LLM.Title = strings.TrimSpace(c.LLM.Title)
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeoutSeconds
	}
	if c.LLM.ThinkingBudget < 0 {
		c.LLM.ThinkingBudget = 0
	}
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = apiKeyFromEnv(c.LLM.Provider)
	}
}

func apiKeyFromEnv(provider string) string {
	keys := []string{"SUBFIX_API_KEY", "OPENROUTER_API_KEY"}
	if provider == ProviderGemini {
		keys = []string{"SUBFIX_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY", "API_KEY"}
	}
	for _, key := range keys {
		if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func (c *Config) normalizeCorrection() {
	if c.Correction.BatchSize == 0 {
		c.Correction.BatchSize = defaultBatchSize
	}
	if c.Correction.OutputPrefix == "" {
		c.Correction.OutputPrefix = defaultOutputPrefix
	}
	c.Correction.ReasonLanguage = strings.TrimSpace(c.Correction.ReasonLanguage)
	if c.Correction.ReasonLanguage == "" {
		c.Correction.ReasonLanguage = defaultReasonLanguage
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.File) != "" {
		path, err := expandPath(strings.TrimSpace(c.Logging.File))
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = path
	}
	return nil
}
