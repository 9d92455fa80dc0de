// Package diagfmt renders parse diagnostics for the CLI. Formatting lives
// here so the diag package stays a pure data model.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"qasm/internal/diag"
	"qasm/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой печатает:
//
//	<path>:<line>:<col>: error: <message>
//
// затем, если есть исходник и включён контекст, строку с подчёркиванием
// ^~~~ по диапазону. Цвет включается опцией.
func Pretty(w io.Writer, diags []diag.Diagnostic, src []byte, opts PrettyOpts) error {
	errLabel := color.New(color.FgRed, color.Bold)
	locLabel := color.New(color.Bold)
	if opts.Color {
		errLabel.EnableColor()
		locLabel.EnableColor()
	} else {
		errLabel.DisableColor()
		locLabel.DisableColor()
	}

	for _, d := range diags {
		_, err := fmt.Fprintf(w, "%s %s %s\n",
			locLabel.Sprintf("%s:", d.Loc.String()),
			errLabel.Sprint("error:"),
			d.Message)
		if err != nil {
			return err
		}
		if opts.Context && src != nil {
			if err := printContext(w, d.Loc, src); err != nil {
				return err
			}
		}
	}
	return nil
}

// printContext prints the first line of the range with a caret underline.
// Multi-line ranges underline to the end of the first line.
func printContext(w io.Writer, loc source.Location, src []byte) error {
	if loc.FirstLine == 0 || loc.FirstColumn == 0 {
		return nil
	}
	line := source.Line(src, loc.FirstLine)
	if line == "" && loc.FirstColumn > 1 {
		return nil
	}

	gutter := fmt.Sprintf("%4d | ", loc.FirstLine)
	if _, err := fmt.Fprintf(w, "%s%s\n", gutter, line); err != nil {
		return err
	}

	first := int(loc.FirstColumn)
	last := first
	if loc.LastLine == loc.FirstLine && int(loc.LastColumn) >= first {
		last = int(loc.LastColumn)
	}
	if first > len(line)+1 {
		first = len(line) + 1
		last = first
	}
	if last > len(line)+1 {
		last = len(line) + 1
	}

	// ширина в терминальных ячейках, не в байтах
	pad := runewidth.StringWidth(line[:min(first-1, len(line))])
	width := runewidth.StringWidth(sliceCols(line, first, last))
	if width < 1 {
		width = 1
	}

	underline := strings.Repeat(" ", pad) + "^" + strings.Repeat("~", width-1)
	_, err := fmt.Fprintf(w, "     | %s\n", underline)
	return err
}

// sliceCols returns the byte slice of line between 1-based columns
// [first, last], clamped to the line.
func sliceCols(line string, first, last int) string {
	if first < 1 {
		first = 1
	}
	if last > len(line) {
		last = len(line)
	}
	if first > last {
		return ""
	}
	return line[first-1 : last]
}
