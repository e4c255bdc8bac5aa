package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"subfix/internal/services/llm"
)

const (
	defaultBaseURL     = "https://generativelanguage.googleapis.com"
	defaultModel       = "gemini-3-pro-preview"
	defaultHTTPTimeout = 120 * time.Second
	apiVersionPath     = "v1beta/models"
	jsonMIMEType       = "application/json"
)

// Config captures the runtime settings for the Gemini API.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	TimeoutSeconds int
	// ThinkingBudget caps reasoning tokens; zero leaves the model default.
	ThinkingBudget int
}

// Client issues generateContent requests.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a Gemini client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	cfg.Model = strings.TrimSpace(cfg.Model)
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{cfg: cfg, httpClient: &http.Client{Timeout: timeout}}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Model reports the configured model identifier.
func (c *Client) Model() string {
	return c.cfg.Model
}

type part struct {
	Text    string `json:"text"`
	Thought bool   `json:"thought,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type thinkingConfig struct {
	ThinkingBudget int `json:"thinkingBudget"`
}

type generationConfig struct {
	ResponseMIMEType string          `json:"responseMimeType"`
	ResponseSchema   map[string]any  `json:"responseSchema,omitempty"`
	ThinkingConfig   *thinkingConfig `json:"thinkingConfig,omitempty"`
}

type generateRequest struct {
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// Complete sends the request and returns the model's JSON text.
func (c *Client) Complete(ctx context.Context, request llm.Request) (string, error) {
	system := strings.TrimSpace(request.System)
	user := strings.TrimSpace(request.User)
	if user == "" {
		return "", errors.New("gemini complete: user prompt required")
	}
	if c.cfg.APIKey == "" {
		return "", errors.New("gemini complete: api key required")
	}

	payload := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: user}}}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: jsonMIMEType,
			ResponseSchema:   openAPISchema(request.Schema),
		},
	}
	if system != "" {
		payload.SystemInstruction = &content{Parts: []part{{Text: system}}}
	}
	if c.cfg.ThinkingBudget > 0 {
		payload.GenerationConfig.ThinkingConfig = &thinkingConfig{ThinkingBudget: c.cfg.ThinkingBudget}
	}

	body, err := c.do(ctx, http.MethodPost, c.modelPath()+":generateContent", payload)
	if err != nil {
		return "", fmt.Errorf("gemini complete: %w", err)
	}
	var decoded generateResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("gemini complete: decode response: %w", err)
	}
	text, finishReason := candidateText(decoded)
	if text != "" {
		return text, nil
	}
	refusal := ""
	if decoded.PromptFeedback != nil {
		refusal = decoded.PromptFeedback.BlockReason
	}
	return "", &llm.EmptyContentError{
		Op:           "gemini complete",
		FinishReason: finishReason,
		Refusal:      refusal,
		Snippet:      llm.SummarizePayload(string(body)),
	}
}

// HealthCheck fetches the model resource, which verifies the key and model name
// without spending generation tokens.
func (c *Client) HealthCheck(ctx context.Context) error {
	if c.cfg.APIKey == "" {
		return errors.New("gemini health: api key required")
	}
	body, err := c.do(ctx, http.MethodGet, c.modelPath(), nil)
	if err != nil {
		return fmt.Errorf("gemini health: %w", err)
	}
	var model struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &model); err != nil || strings.TrimSpace(model.Name) == "" {
		return fmt.Errorf("gemini health: unexpected response: %s", llm.SummarizePayload(string(body)))
	}
	return nil
}

func (c *Client) modelPath() string {
	return apiVersionPath + "/" + url.PathEscape(c.cfg.Model)
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+"/"+path, reader)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http error (timeout=%s): %w", c.httpClient.Timeout, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode/100 != 2 {
		return nil, &llm.StatusError{Provider: "gemini", StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

func candidateText(resp generateResponse) (string, string) {
	var finishReason string
	for _, candidate := range resp.Candidates {
		if finishReason == "" {
			finishReason = candidate.FinishReason
		}
		var sb strings.Builder
		for _, p := range candidate.Content.Parts {
			if p.Thought {
				continue
			}
			sb.WriteString(p.Text)
		}
		if text := strings.TrimSpace(sb.String()); text != "" {
			return text, finishReason
		}
	}
	return "", finishReason
}

// openAPISchema converts a JSON Schema into the OpenAPI subset Gemini expects,
// where type names are upper case.
func openAPISchema(schema map[string]any) map[string]any {
	if schema == nil {
		return nil
	}
	out := make(map[string]any, len(schema))
	for key, value := range schema {
		switch v := value.(type) {
		case string:
			if key == "type" {
				v = strings.ToUpper(v)
			}
			out[key] = v
		case map[string]any:
			if key == "properties" {
				props := make(map[string]any, len(v))
				for name, prop := range v {
					if m, ok := prop.(map[string]any); ok {
						props[name] = openAPISchema(m)
					} else {
						props[name] = prop
					}
				}
				out[key] = props
				continue
			}
			out[key] = openAPISchema(v)
		default:
			out[key] = value
		}
	}
	return out
}
