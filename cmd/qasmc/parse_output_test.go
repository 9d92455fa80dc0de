package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"qasm/internal/diagfmt"
	"qasm/internal/driver"
	"qasm/internal/parse"
)

func parseToFileResult(t *testing.T, path, content string) driver.FileResult {
	t.Helper()
	res, err := parse.Text(content, path, parse.Options{})
	if err != nil {
		t.Fatalf("parse.Text(%q): %v", path, err)
	}
	return driver.FileResult{Path: path, Src: []byte(content), Result: res}
}

func TestRenderParseResultsTree(t *testing.T) {
	results := []driver.FileResult{
		parseToFileResult(t, "a.q", "version 1.0\nqubits 1\n"),
		parseToFileResult(t, "b.q", "h q[0\n"),
	}

	var out, errOut bytes.Buffer
	hadErrors, err := renderParseResults(&out, &errOut, results, "tree", diagfmt.PrettyOpts{}, false)
	if err != nil {
		t.Fatalf("renderParseResults: %v", err)
	}
	if !hadErrors {
		t.Fatal("expected hadErrors for b.q")
	}
	if !strings.Contains(out.String(), "== a.q ==") || !strings.Contains(out.String(), "== b.q ==") {
		t.Errorf("tree output missing file separators:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Root <a.q:") {
		t.Errorf("tree output missing tree dump:\n%s", out.String())
	}
	if !strings.Contains(errOut.String(), "b.q:") {
		t.Errorf("diagnostics missing from error stream:\n%s", errOut.String())
	}
}

func TestRenderParseResultsJSON(t *testing.T) {
	results := []driver.FileResult{
		parseToFileResult(t, "a.q", "version 1.0\n"),
		parseToFileResult(t, "b.q", "h q[0\n"),
	}

	var out, errOut bytes.Buffer
	hadErrors, err := renderParseResults(&out, &errOut, results, "json", diagfmt.PrettyOpts{}, false)
	if err != nil {
		t.Fatalf("renderParseResults: %v", err)
	}
	if !hadErrors {
		t.Fatal("expected hadErrors for b.q")
	}
	if errOut.Len() != 0 {
		t.Errorf("json format wrote to the error stream: %s", errOut.String())
	}

	var decoded []diagfmt.DiagnosticOutput
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out.String())
	}
	if len(decoded) == 0 {
		t.Fatal("expected at least one diagnostic in JSON output")
	}
	if decoded[0].File != "b.q" {
		t.Errorf("diagnostic file = %q, want %q", decoded[0].File, "b.q")
	}
	if strings.Contains(out.String(), "Root <") {
		t.Errorf("json format must not include the tree dump:\n%s", out.String())
	}
}

func TestRenderParseResultsPretty(t *testing.T) {
	results := []driver.FileResult{parseToFileResult(t, "b.q", "h q[0\n")}

	var out, errOut bytes.Buffer
	hadErrors, err := renderParseResults(&out, &errOut, results, "pretty", diagfmt.PrettyOpts{}, false)
	if err != nil {
		t.Fatalf("renderParseResults: %v", err)
	}
	if !hadErrors {
		t.Fatal("expected hadErrors")
	}
	if out.Len() != 0 {
		t.Errorf("pretty format must not dump trees to stdout:\n%s", out.String())
	}
	if !strings.Contains(errOut.String(), "b.q:") {
		t.Errorf("diagnostics missing from error stream:\n%s", errOut.String())
	}
}

func TestRenderParseResultsUnknownFormat(t *testing.T) {
	var out, errOut bytes.Buffer
	if _, err := renderParseResults(&out, &errOut, nil, "yaml", diagfmt.PrettyOpts{}, false); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}

func TestParseCmdRegistersFormatFlag(t *testing.T) {
	f := parseCmd.Flags().Lookup("format")
	if f == nil {
		t.Fatal("parse command has no format flag")
	}
	if f.DefValue != "tree" {
		t.Errorf("format default = %q, want %q", f.DefValue, "tree")
	}
}
