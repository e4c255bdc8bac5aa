package main

import (
	"testing"

	"subfix/internal/config"
	"subfix/internal/subtitles"
	"subfix/internal/testsupport"
)

func parseSample(t *testing.T) []subtitles.Record {
	t.Helper()
	records, err := subtitles.Parse(testsupport.SRT(3))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return records
}

func TestHealthOpenRouter(t *testing.T) {
	env := setupCLITestEnv(t, config.ProviderOpenRouter, func(int, map[string]any) (string, int) {
		return `{"ok":true}`, 200
	})

	out, _, err := runCLI(t, []string{"health"}, env.configPath)
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	requireContains(t, out, "Reachable")
	requireContains(t, out, "[OK]")
	requireContains(t, out, "openrouter")
}

func TestHealthGemini(t *testing.T) {
	env := setupCLITestEnv(t, config.ProviderGemini, testsupport.NoCorrections)

	out, _, err := runCLI(t, []string{"health"}, env.configPath)
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	requireContains(t, out, "gemini")
	if len(env.server.Requests()) != 0 {
		t.Fatal("gemini health check must not generate content")
	}
}

func TestHealthReportsFailure(t *testing.T) {
	env := setupCLITestEnv(t, config.ProviderOpenRouter, func(int, map[string]any) (string, int) {
		return "denied", 401
	})

	out, _, err := runCLI(t, []string{"health"}, env.configPath)
	if err == nil {
		t.Fatal("expected health failure")
	}
	requireContains(t, out, "[ERROR]")
}
