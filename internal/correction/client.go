package correction

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"subfix/internal/logging"
	"subfix/internal/services"
	"subfix/internal/services/llm"
	"subfix/internal/subtitles"
)

// Completer sends one JSON-mode request to a language model.
type Completer interface {
	Complete(ctx context.Context, request llm.Request) (string, error)
}

// Client turns subtitle batches into correction items.
type Client struct {
	completer      Completer
	reasonLanguage string
	sourceLanguage string
	logger         *slog.Logger
}

// Option customizes the client.
type Option func(*Client)

// WithReasonLanguage sets the language the service explains corrections in.
func WithReasonLanguage(language string) Option {
	return func(c *Client) {
		c.reasonLanguage = language
	}
}

// WithSourceLanguage names the subtitle language in the prompt.
func WithSourceLanguage(language string) Option {
	return func(c *Client) {
		c.sourceLanguage = language
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient builds a correction client on top of completer.
func NewClient(completer Completer, opts ...Option) *Client {
	client := &Client{
		completer:      completer,
		reasonLanguage: defaultReasonLanguage,
		logger:         logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, "correction")
	return client
}

// SetSourceLanguage updates the subtitle language named in later prompts.
func (c *Client) SetSourceLanguage(language string) {
	c.sourceLanguage = language
}

// Correct asks the service which records in batch need fixing. An empty batch
// returns no items without contacting the service.
func (c *Client) Correct(ctx context.Context, batch []subtitles.Record) ([]Item, error) {
	if len(batch) == 0 {
		return []Item{}, nil
	}
	ctx = services.WithRequestID(ctx, uuid.NewString())
	logger := logging.WithContext(ctx, c.logger)

	request := llm.Request{
		System:     SystemPrompt(c.reasonLanguage),
		User:       UserPrompt(batch, c.sourceLanguage),
		Schema:     ResponseSchema(),
		SchemaName: SchemaName,
	}
	logger.Debug("correction request",
		logging.Int("records", len(batch)),
		logging.Int("prompt_bytes", len(request.User)),
	)

	started := time.Now()
	content, err := c.completer.Complete(ctx, request)
	if err != nil {
		return nil, services.Wrap(services.ErrCorrectionService, "analyzing", "correct batch", "request failed", err)
	}
	items, err := DecodeItems(content)
	if err != nil {
		return nil, services.Wrap(services.ErrCorrectionService, "analyzing", "correct batch", "invalid reply", err)
	}
	logger.Debug("correction reply",
		logging.Int("corrections", len(items)),
		logging.Int("response_bytes", len(content)),
		logging.Duration("elapsed", time.Since(started)),
	)
	return items, nil
}
