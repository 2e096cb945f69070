package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"courseplan/internal/charset"
)

// WriteFile writes content to dir/name and returns the full path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	return WriteBytes(t, dir, name, []byte(content))
}

// WriteBytes writes raw bytes to dir/name and returns the full path.
func WriteBytes(t testing.TB, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// Encode converts UTF-8 text to label's byte form.
func Encode(t testing.TB, label, text string) []byte {
	t.Helper()

	enc, err := charset.Lookup(label)
	if err != nil {
		t.Fatalf("lookup %s: %v", label, err)
	}
	out, err := enc.NewEncoder().String(text)
	if err != nil {
		t.Fatalf("encode as %s: %v", label, err)
	}
	return []byte(out)
}

// WriteCSV joins rows with newlines, encodes them as label and writes the
// result to dir/name.
func WriteCSV(t testing.TB, dir, name, label string, rows ...string) string {
	t.Helper()
	return WriteBytes(t, dir, name, Encode(t, label, strings.Join(rows, "\n")+"\n"))
}

// ReadFile returns the contents of path.
func ReadFile(t testing.TB, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
