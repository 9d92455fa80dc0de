package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"qasm/internal/ast"
	"qasm/internal/diag"
	"qasm/internal/diagfmt"
	"qasm/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.q|directory>",
	Short: "Parse a qasm source file or directory and output the tree",
	Long:  `Parse analyzes a qasm source file or all *.q files in a directory and outputs their syntax trees`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "output format (pretty|json|tree)")
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	settings, err := loadSettings(cmd, filePath)
	if err != nil {
		return err
	}

	st, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	var results []driver.FileResult
	if st.IsDir() {
		jobs, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return fmt.Errorf("failed to get jobs flag: %w", err)
		}
		results, err = driver.ParseDir(cmd.Context(), filePath, settings.maxDiagnostics, jobs)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
	} else {
		r, err := driver.Parse(filePath, settings.maxDiagnostics)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		results = []driver.FileResult{*r}
	}

	prettyOpts := diagfmt.PrettyOpts{
		Color:   useColor(settings.colorMode, os.Stderr),
		Context: true,
	}
	hadErrors, err := renderParseResults(os.Stdout, os.Stderr, results, format, prettyOpts, quiet)
	if err != nil {
		return err
	}
	if hadErrors {
		os.Exit(1)
	}
	return nil
}

// renderParseResults пишет деревья в out, диагностику в errOut.
func renderParseResults(out, errOut io.Writer, results []driver.FileResult, format string, prettyOpts diagfmt.PrettyOpts, quiet bool) (bool, error) {
	hadErrors := false
	switch format {
	case "pretty", "tree":
		for _, r := range results {
			if r.Result.Succeeded() {
				continue
			}
			hadErrors = true
			if err := diagfmt.Pretty(errOut, r.Result.Errors.Items(), r.Src, prettyOpts); err != nil {
				return false, err
			}
		}
	case "json":
		all := make([]diag.Diagnostic, 0)
		for _, r := range results {
			if !r.Result.Succeeded() {
				hadErrors = true
				all = append(all, r.Result.Errors.Items()...)
			}
		}
		if err := diagfmt.JSON(out, all); err != nil {
			return false, err
		}
	default:
		return false, fmt.Errorf("unknown format: %s", format)
	}

	if format != "tree" {
		return hadErrors, nil
	}
	for idx, r := range results {
		if !quiet && len(results) > 1 {
			if _, err := fmt.Fprintf(out, "== %s ==\n", r.Path); err != nil {
				return false, err
			}
		}
		if err := ast.Fprint(out, r.Result.Root); err != nil {
			return false, err
		}
		if !quiet && idx < len(results)-1 {
			if _, err := fmt.Fprintln(out); err != nil {
				return false, err
			}
		}
	}
	return hadErrors, nil
}

// settings собраны из флагов и qasm.toml.
type settings struct {
	maxDiagnostics int
	colorMode      string
}

func loadSettings(cmd *cobra.Command, target string) (settings, error) {
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return settings{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return settings{}, fmt.Errorf("failed to get color flag: %w", err)
	}

	manifest, _, err := loadProjectManifest(manifestStartDir(target))
	if err != nil {
		return settings{}, err
	}
	return settings{
		maxDiagnostics: resolveMaxDiagnostics(maxDiagnostics, manifest),
		colorMode:      resolveColorMode(colorFlag, manifest),
	}, nil
}
