package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSafeWriteFileReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := SafeWriteFile(path, []byte("sample_cap: 500\n")); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := SafeWriteFile(path, []byte("sample_cap: 100\n")); err != nil {
		t.Fatalf("second write: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil || string(b) != "sample_cap: 100\n" {
		t.Fatalf("got %q, %v", b, err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestSafeWriteFileMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "report.md")
	if err := SafeWriteFile(path, []byte("x")); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestPrettyJSONIndents(t *testing.T) {
	b, err := PrettyJSON(map[string]int{"bookings": 3})
	if err != nil {
		t.Fatalf("PrettyJSON: %v", err)
	}
	if !strings.Contains(string(b), "\n  \"bookings\": 3") {
		t.Fatalf("unexpected output: %s", b)
	}
	if _, err := PrettyJSON(func() {}); err == nil {
		t.Fatalf("expected marshal error for a func value")
	}
}
