// Package gemini talks to the Google Generative Language API
// (models/{model}:generateContent) in JSON mode.
//
// Requests carry the response schema as responseSchema and an optional
// thinking budget. Like the llm package, every call is a single attempt.
package gemini
