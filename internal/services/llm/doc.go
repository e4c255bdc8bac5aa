// Package llm provides an OpenRouter (OpenAI-compatible) chat client that
// returns JSON payloads.
//
// # Entry Points
//
// NewClient: construct client from Config.
// Client.Complete: send system/user prompts plus an optional response schema,
// receive the raw JSON content.
// Client.HealthCheck: verify API key and model availability.
// DecodeLLMJSON: decode model output, tolerating code fences and prose.
//
// Requests are single attempts. Callers decide how a failure affects their
// run; there is no retry or backoff here.
package llm
