package journal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAppendWritesOneLinePerEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather.log")
	j := New(path)

	if err := j.Append([]byte(`{"city":"London"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := j.Append([]byte(`{"city":"Paris"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading journal: %v", err)
	}

	if !strings.HasSuffix(string(data), "\n") {
		t.Error("journal must be newline-terminated")
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != `{"city":"London"}` || lines[1] != `{"city":"Paris"}` {
		t.Fatalf("unexpected journal content: %q", lines)
	}
}

func TestAppendFailureIsReported(t *testing.T) {
	j := New(filepath.Join(t.TempDir(), "missing-dir", "weather.log"))
	if err := j.Append([]byte(`{}`)); err == nil {
		t.Fatal("expected an error for an unwritable path")
	}
}
