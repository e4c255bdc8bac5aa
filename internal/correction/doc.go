// Package correction asks an LLM to find speech-recognition errors in a batch
// of subtitle records.
//
// Client.Correct builds the prompt for one batch, sends it through a
// Completer (the OpenRouter or Gemini client), and validates the structured
// reply into Items. Any failure is reported as services.ErrCorrectionService;
// a batch either yields all of its items or none.
package correction
