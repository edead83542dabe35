package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI executes the root command with args and returns captured stdout.
func runCLI(t *testing.T, args []string, configPath string) (string, error) {
	t.Helper()

	if configPath != "" {
		args = append(args, "--config", configPath)
	}
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// writeTestConfig writes a minimal config pointing every path at dirs under
// base and returns its path.
func writeTestConfig(t *testing.T, base string) string {
	t.Helper()

	path := filepath.Join(base, "reelmatch.toml")
	content := fmt.Sprintf(`[paths]
cache_dir = %q
log_dir = %q

[tmdb]
api_key = "test-key"
`, filepath.Join(base, "cache"), filepath.Join(base, "logs"))
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write test config: %v", err)
	}
	return path
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("output %q does not contain %q", haystack, needle)
	}
}

func TestRootCommandShowsHelp(t *testing.T) {
	out, err := runCLI(t, nil, writeTestConfig(t, t.TempDir()))
	if err != nil {
		t.Fatalf("root command: %v", err)
	}
	requireContains(t, out, "match")
	requireContains(t, out, "cache")
}

func TestMatchCommandRequiresArgs(t *testing.T) {
	_, err := runCLI(t, []string{"match"}, writeTestConfig(t, t.TempDir()))
	if err == nil {
		t.Fatal("expected error for missing title argument")
	}
}
