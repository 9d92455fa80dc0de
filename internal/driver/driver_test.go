package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
}

func TestParseSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.q")
	writeFile(t, path, "version 1.0\r\nqubits 2\r\nh q[0]\r\n")

	res, err := Parse(path, 10)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !res.Result.Succeeded() {
		t.Fatalf("diagnostics: %v", res.Result.Errors.Strings())
	}
	if res.Result.Root == nil || len(res.Result.Root.Statements) != 3 {
		t.Fatalf("unexpected tree: %+v", res.Result.Root)
	}
	// CRLF normalized before the engine sees the bytes
	if strings.Contains(string(res.Src), "\r") {
		t.Error("driver handed unnormalized bytes to formatters")
	}
}

func TestParseMissingFile(t *testing.T) {
	res, err := Parse(filepath.Join(t.TempDir(), "nope.q"), 10)
	if err != nil {
		t.Fatalf("Parse must not fault on a missing file: %v", err)
	}
	if res.Result.Root != nil {
		t.Error("expected no root")
	}
	if res.Result.Errors.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %v", res.Result.Errors.Strings())
	}
}

func TestParseDirOrdersAndIsolatesResults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.q"), "h q[0\n")
	writeFile(t, filepath.Join(dir, "a.q"), "version 1.0\nqubits 1\n")
	writeFile(t, filepath.Join(dir, "c.q"), "??\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a source file")

	results, err := ParseDir(context.Background(), dir, 10, 4)
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	for i, base := range []string{"a.q", "b.q", "c.q"} {
		if filepath.Base(results[i].Path) != base {
			t.Errorf("result %d = %s, want %s", i, results[i].Path, base)
		}
	}

	if !results[0].Result.Succeeded() {
		t.Errorf("a.q should be clean: %v", results[0].Result.Errors.Strings())
	}
	for _, idx := range []int{1, 2} {
		r := results[idx]
		if r.Result.Succeeded() {
			t.Errorf("%s should have diagnostics", r.Path)
			continue
		}
		for _, msg := range r.Result.Errors.Strings() {
			if !strings.HasPrefix(msg, r.Path+":") {
				t.Errorf("diagnostic %q leaked into %s", msg, r.Path)
			}
		}
	}
}

func TestParseDirEmpty(t *testing.T) {
	results, err := ParseDir(context.Background(), t.TempDir(), 10, 0)
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	if results != nil {
		t.Errorf("expected no results, got %d", len(results))
	}
}
