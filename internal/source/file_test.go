package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeStripsBOMAndCRLF(t *testing.T) {
	raw := []byte("\xEF\xBB\xBFversion 1.0\r\nqubits 2\r\n")

	content, flags := Normalize(raw)
	if flags&HadBOM == 0 {
		t.Error("expected HadBOM flag")
	}
	if flags&NormalizedCRLF == 0 {
		t.Error("expected NormalizedCRLF flag")
	}
	if string(content) != "version 1.0\nqubits 2\n" {
		t.Errorf("normalized content = %q", content)
	}
}

func TestNormalizeKeepsLoneCR(t *testing.T) {
	content, flags := Normalize([]byte("a\rb"))
	if flags != 0 {
		t.Errorf("flags = %v, want 0", flags)
	}
	if string(content) != "a\rb" {
		t.Errorf("content = %q, want %q", content, "a\rb")
	}
}

func TestReadFileNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.q")
	if err := os.WriteFile(path, []byte("qubits 1\r\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	content, flags, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(content) != "qubits 1\n" {
		t.Errorf("content = %q", content)
	}
	if flags&NormalizedCRLF == 0 {
		t.Error("expected NormalizedCRLF flag")
	}
}

func TestLine(t *testing.T) {
	content := []byte("first\nsecond\n\nfourth")

	cases := []struct {
		lineNum uint32
		want    string
	}{
		{0, ""},
		{1, "first"},
		{2, "second"},
		{3, ""},
		{4, "fourth"},
		{5, ""},
	}
	for _, tc := range cases {
		if got := Line(content, tc.lineNum); got != tc.want {
			t.Errorf("Line(%d) = %q, want %q", tc.lineNum, got, tc.want)
		}
	}
}
