package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// SRT renders n numbered subtitle blocks, two seconds apart, with text
// "line <n>".
func SRT(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		if i > 1 {
			b.WriteString("\n")
		}
		start := (i - 1) * 2
		fmt.Fprintf(&b, "%d\n%s --> %s\nline %d\n", i, timestamp(start), timestamp(start+1), i)
	}
	return b.String()
}

func timestamp(seconds int) string {
	return fmt.Sprintf("%02d:%02d:%02d,000", seconds/3600, seconds/60%60, seconds%60)
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteSRT writes an n-block subtitle file named name into a temp directory
// and returns its path.
func WriteSRT(t testing.TB, name string, n int) string {
	t.Helper()
	return WriteFile(t, filepath.Join(t.TempDir(), name), SRT(n))
}
