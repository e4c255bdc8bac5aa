package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subfix/internal/config"
	"subfix/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	server     *testsupport.CompletionServer
}

func setupCLITestEnv(t *testing.T, provider string, reply testsupport.Reply) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Chdir(base)

	var server *testsupport.CompletionServer
	if provider == config.ProviderGemini {
		server = testsupport.NewGeminiServer(t, reply)
	} else {
		server = testsupport.NewOpenRouterServer(t, reply)
	}
	cfg := testsupport.NewConfig(t, testsupport.WithProvider(provider, server.URL))

	configPath := filepath.Join(homeDir, ".config", "subfix", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base, server: server}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[llm]\nprovider = %q\napi_key = %q\nbase_url = %q\nmodel = %q\ntimeout_seconds = %d\n\n"+
			"[correction]\nbatch_size = %d\n\n[logging]\nlevel = \"error\"\nfile = %q\n",
		cfg.LLM.Provider,
		cfg.LLM.APIKey,
		cfg.LLM.BaseURL,
		cfg.LLM.Model,
		cfg.LLM.TimeoutSeconds,
		cfg.Correction.BatchSize,
		cfg.Logging.File,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
