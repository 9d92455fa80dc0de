package diagfmt

import (
	"encoding/json"
	"io"

	"qasm/internal/diag"
)

// DiagnosticOutput is the stable machine-readable shape of one diagnostic.
type DiagnosticOutput struct {
	File        string `json:"file"`
	FirstLine   uint32 `json:"first_line,omitempty"`
	FirstColumn uint32 `json:"first_column,omitempty"`
	LastLine    uint32 `json:"last_line,omitempty"`
	LastColumn  uint32 `json:"last_column,omitempty"`
	Message     string `json:"message"`
	Rendered    string `json:"rendered"`
}

// JSON writes diagnostics as an indented JSON array in detection order.
func JSON(w io.Writer, diags []diag.Diagnostic) error {
	out := make([]DiagnosticOutput, 0, len(diags))
	for _, d := range diags {
		out = append(out, DiagnosticOutput{
			File:        d.Loc.Filename,
			FirstLine:   d.Loc.FirstLine,
			FirstColumn: d.Loc.FirstColumn,
			LastLine:    d.Loc.LastLine,
			LastColumn:  d.Loc.LastColumn,
			Message:     d.Message,
			Rendered:    d.String(),
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
