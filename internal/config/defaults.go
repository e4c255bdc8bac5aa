package config

// Supported llm.provider values.
const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
)

const (
	defaultConfigPath        = "~/.config/subfix/config.toml"
	defaultProvider          = ProviderOpenRouter
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1/chat/completions"
	defaultOpenRouterModel   = "google/gemini-3-pro-preview"
	defaultGeminiBaseURL     = "https://generativelanguage.googleapis.com"
	defaultGeminiModel       = "gemini-3-pro-preview"
	defaultLLMReferer        = "https://github.com/subfix/subfix"
	defaultLLMTitle          = "SubFix"
	defaultLLMTimeoutSeconds = 120
	defaultThinkingBudget    = 4000
	defaultBatchSize         = 15
	defaultOutputPrefix      = "fixed_"
	defaultReasonLanguage    = "Chinese"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	maxThinkingBudget        = 32768
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		LLM: LLM{
			Provider:       defaultProvider,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
			ThinkingBudget: defaultThinkingBudget,
		},
		Correction: Correction{
			BatchSize:      defaultBatchSize,
			OutputPrefix:   defaultOutputPrefix,
			ReasonLanguage: defaultReasonLanguage,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
