package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"qasm/internal/diag"
	"qasm/internal/diagfmt"
	"qasm/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.q|directory>",
	Short: "Check qasm sources for syntax errors",
	Long:  `Check parses a qasm source file or all *.q files in a directory and reports diagnostics; unchanged files are answered from the disk cache`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("no-cache", false, "disable the persistent check cache")
}

func runCheck(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	settings, err := loadSettings(cmd, filePath)
	if err != nil {
		return err
	}

	var cache *driver.DiskCache
	if !noCache {
		// Недоступный кеш не мешает проверке.
		cache, _ = driver.OpenDiskCache("qasmc")
	}

	st, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	var results []driver.CheckResult
	if st.IsDir() {
		jobs, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return fmt.Errorf("failed to get jobs flag: %w", err)
		}
		results, err = driver.CheckDir(cmd.Context(), filePath, settings.maxDiagnostics, jobs, cache)
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
	} else {
		r, err := driver.Check(filePath, settings.maxDiagnostics, cache)
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
		results = []driver.CheckResult{*r}
	}

	hadErrors := false
	switch format {
	case "pretty":
		prettyOpts := diagfmt.PrettyOpts{
			Color:   useColor(settings.colorMode, os.Stderr),
			Context: true,
		}
		for _, r := range results {
			if r.Clean() {
				continue
			}
			hadErrors = true
			if err := diagfmt.Pretty(os.Stderr, r.Diagnostics, r.Src, prettyOpts); err != nil {
				return err
			}
		}
	case "json":
		all := make([]diag.Diagnostic, 0)
		for _, r := range results {
			if !r.Clean() {
				hadErrors = true
			}
			all = append(all, r.Diagnostics...)
		}
		if err := diagfmt.JSON(os.Stdout, all); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !quiet && format == "pretty" {
		clean := 0
		for _, r := range results {
			if r.Clean() {
				clean++
			}
		}
		fmt.Fprintf(os.Stdout, "%d file(s) checked, %d clean\n", len(results), clean)
	}

	if hadErrors {
		os.Exit(1)
	}
	return nil
}
