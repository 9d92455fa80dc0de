package ast

import (
	"fmt"
	"io"
)

// Fprint writes an indented tree dump of root, one node per line, with the
// source range of every node. Used by `qasmc parse --format tree`.
func Fprint(w io.Writer, root *Root) error {
	if root == nil {
		_, err := fmt.Fprintln(w, "<no tree>")
		return err
	}
	if _, err := fmt.Fprintf(w, "Root <%s>\n", root.Location.String()); err != nil {
		return err
	}
	for _, s := range root.Statements {
		if err := printStmt(w, s); err != nil {
			return err
		}
	}
	return nil
}

func printStmt(w io.Writer, s Statement) error {
	var err error
	switch st := s.(type) {
	case *VersionStmt:
		_, err = fmt.Fprintf(w, "  Version %d.%d <%s>\n", st.Major, st.Minor, st.Location.String())
	case *QubitsStmt:
		_, err = fmt.Fprintf(w, "  Qubits %d <%s>\n", st.Count, st.Location.String())
	case *SubcircuitStmt:
		_, err = fmt.Fprintf(w, "  Subcircuit %s x%d <%s>\n", st.Name, st.Iterations, st.Location.String())
	case *InstructionStmt:
		if _, err = fmt.Fprintf(w, "  Instruction %s <%s>\n", st.Name, st.Location.String()); err != nil {
			return err
		}
		for i := range st.Operands {
			op := &st.Operands[i]
			_, err = fmt.Fprintf(w, "    Operand %s %q <%s>\n", op.Kind, op.Text, op.Location.String())
			if err != nil {
				return err
			}
		}
	case *ErrorStmt:
		_, err = fmt.Fprintf(w, "  Error %q <%s>\n", st.Text, st.Location.String())
	default:
		_, err = fmt.Fprintf(w, "  <unknown statement> <%s>\n", s.Loc().String())
	}
	return err
}
