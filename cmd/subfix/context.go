package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"subfix/internal/config"
	"subfix/internal/correction"
	"subfix/internal/logging"
	"subfix/internal/services"
	"subfix/internal/services/gemini"
	"subfix/internal/services/llm"
	"subfix/internal/workflow"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "load", "", err)
			return
		}
		if c.logLevelFlag != nil {
			if level := strings.ToLower(strings.TrimSpace(*c.logLevelFlag)); level != "" {
				cfg.Logging.Level = level
				if err := cfg.Validate(); err != nil {
					c.configErr = services.Wrap(services.ErrConfiguration, "config", "log level flag", "", err)
					return
				}
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "prepare directories", "", err)
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = fmt.Errorf("init logger: %w", err)
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// completionBackend is a correction service provider client.
type completionBackend interface {
	correction.Completer
	HealthCheck(ctx context.Context) error
	Model() string
}

func newCompleter(cfg *config.Config) (completionBackend, error) {
	if err := cfg.RequireLLM(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "config", "llm", "", err)
	}
	llmCfg := cfg.GetLLM()
	switch llmCfg.Provider {
	case config.ProviderGemini:
		return gemini.NewClient(gemini.Config{
			APIKey:         llmCfg.APIKey,
			BaseURL:        llmCfg.BaseURL,
			Model:          llmCfg.Model,
			TimeoutSeconds: llmCfg.TimeoutSeconds,
			ThinkingBudget: llmCfg.ThinkingBudget,
		}), nil
	default:
		return llm.NewClient(llm.Config{
			APIKey:         llmCfg.APIKey,
			BaseURL:        llmCfg.BaseURL,
			Model:          llmCfg.Model,
			Referer:        llmCfg.Referer,
			Title:          llmCfg.Title,
			TimeoutSeconds: llmCfg.TimeoutSeconds,
		}), nil
	}
}

// pipeline bundles the objects one correct invocation needs.
type pipeline struct {
	client  *correction.Client
	session *workflow.Session
	model   string
}

func (c *commandContext) newPipeline(batchSize int) (*pipeline, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	completer, err := newCompleter(cfg)
	if err != nil {
		return nil, err
	}
	if batchSize <= 0 {
		batchSize = cfg.Correction.BatchSize
	}
	client := correction.NewClient(completer,
		correction.WithReasonLanguage(cfg.Correction.ReasonLanguage),
		correction.WithLogger(logger),
	)
	orchestrator := workflow.NewOrchestrator(client, batchSize, logger)
	session := workflow.NewSession(orchestrator,
		workflow.WithOutputPrefix(cfg.Correction.OutputPrefix),
		workflow.WithSessionLogger(logger),
	)
	return &pipeline{client: client, session: session, model: completer.Model()}, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
