package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"qasm/internal/parse"
)

// projectManifest — настройки проекта из qasm.toml, если он найден.
type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Project     projectSection     `toml:"project"`
	Diagnostics diagnosticsSection `toml:"diagnostics"`
}

type projectSection struct {
	Name string `toml:"name"`
}

type diagnosticsSection struct {
	Max   int    `toml:"max"`
	Color string `toml:"color"`
}

// findQasmToml ищет qasm.toml вверх по дереву от startDir.
func findQasmToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "qasm.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findQasmToml(startDir)
	if err != nil || !ok {
		return nil, false, err
	}

	var config projectConfig
	if _, err := toml.DecodeFile(manifestPath, &config); err != nil {
		return nil, false, fmt.Errorf("failed to parse %s: %w", manifestPath, err)
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: config,
	}, true, nil
}

// manifestStartDir picks where the upward qasm.toml search begins for a
// target path.
func manifestStartDir(target string) string {
	st, err := os.Stat(target)
	if err == nil && st.IsDir() {
		return target
	}
	return filepath.Dir(target)
}

// resolveMaxDiagnostics: явный флаг > манифест > умолчание.
func resolveMaxDiagnostics(flagValue int, manifest *projectManifest) int {
	if flagValue > 0 {
		return flagValue
	}
	if manifest != nil && manifest.Config.Diagnostics.Max > 0 {
		return manifest.Config.Diagnostics.Max
	}
	return parse.DefaultMaxDiagnostics
}

// resolveColorMode: явный флаг > манифест > auto.
func resolveColorMode(flagValue string, manifest *projectManifest) string {
	if flagValue != "" && flagValue != "auto" {
		return flagValue
	}
	if manifest != nil && manifest.Config.Diagnostics.Color != "" {
		return manifest.Config.Diagnostics.Color
	}
	return "auto"
}
