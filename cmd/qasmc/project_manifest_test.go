package main

import (
	"os"
	"path/filepath"
	"testing"

	"qasm/internal/parse"
)

func TestFindQasmTomlWalksUpward(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "circuits")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	manifest := filepath.Join(root, "qasm.toml")
	if err := os.WriteFile(manifest, []byte("[project]\nname = \"demo\"\n"), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	found, ok, err := findQasmToml(nested)
	if err != nil {
		t.Fatalf("findQasmToml: %v", err)
	}
	if !ok {
		t.Fatal("manifest not found from nested directory")
	}
	if found != manifest {
		t.Errorf("found %q, want %q", found, manifest)
	}
}

func TestLoadProjectManifest(t *testing.T) {
	root := t.TempDir()
	content := `[project]
name = "bell-pair"

[diagnostics]
max = 25
color = "off"
`
	if err := os.WriteFile(filepath.Join(root, "qasm.toml"), []byte(content), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	m, ok, err := loadProjectManifest(root)
	if err != nil {
		t.Fatalf("loadProjectManifest: %v", err)
	}
	if !ok {
		t.Fatal("expected a manifest")
	}
	if m.Config.Project.Name != "bell-pair" {
		t.Errorf("name = %q", m.Config.Project.Name)
	}
	if m.Config.Diagnostics.Max != 25 || m.Config.Diagnostics.Color != "off" {
		t.Errorf("diagnostics section = %+v", m.Config.Diagnostics)
	}
	if m.Root != root {
		t.Errorf("root = %q, want %q", m.Root, root)
	}
}

func TestResolveSettingsPrecedence(t *testing.T) {
	manifest := &projectManifest{
		Config: projectConfig{
			Diagnostics: diagnosticsSection{Max: 25, Color: "off"},
		},
	}

	if got := resolveMaxDiagnostics(0, nil); got != parse.DefaultMaxDiagnostics {
		t.Errorf("default max = %d", got)
	}
	if got := resolveMaxDiagnostics(0, manifest); got != 25 {
		t.Errorf("manifest max = %d, want 25", got)
	}
	if got := resolveMaxDiagnostics(7, manifest); got != 7 {
		t.Errorf("flag max = %d, want 7", got)
	}

	if got := resolveColorMode("auto", manifest); got != "off" {
		t.Errorf("manifest color = %q, want off", got)
	}
	if got := resolveColorMode("on", manifest); got != "on" {
		t.Errorf("flag color = %q, want on", got)
	}
	if got := resolveColorMode("auto", nil); got != "auto" {
		t.Errorf("default color = %q, want auto", got)
	}
}
