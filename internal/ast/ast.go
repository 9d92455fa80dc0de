// Package ast defines the syntax tree the grammar engine produces.
//
// The parse layer treats *Root as an opaque handle: it stores whatever the
// engine reports and hands it to the caller, who takes ownership of the
// whole subtree.
package ast

import "qasm/internal/source"

// Node is implemented by every tree node.
type Node interface {
	// Loc returns the node's source range for provenance display.
	Loc() *source.Location
}

// Root is the top of a parsed program. Statements may include ErrorStmt
// placeholders when the engine recovered from syntax errors.
type Root struct {
	Location   source.Location
	Statements []Statement
}

func (r *Root) Loc() *source.Location { return &r.Location }

// Statement is one top-level construct.
type Statement interface {
	Node
	stmt()
}

// VersionStmt is a `version <major>.<minor>` declaration.
type VersionStmt struct {
	Location source.Location
	Major    uint32
	Minor    uint32
}

// QubitsStmt is a `qubits <count>` resource declaration.
type QubitsStmt struct {
	Location source.Location
	Count    uint32
}

// SubcircuitStmt is a `.<name>(<iterations>)` marker.
type SubcircuitStmt struct {
	Location   source.Location
	Name       string
	Iterations uint32 // 1 если не указано
}

// InstructionStmt is a named gate or directive with operands.
type InstructionStmt struct {
	Location source.Location
	Name     string
	Operands []Operand
}

// ErrorStmt is the placeholder the engine synthesizes for a region it
// skipped while recovering from a syntax error.
type ErrorStmt struct {
	Location source.Location
	Text     string
}

func (s *VersionStmt) Loc() *source.Location     { return &s.Location }
func (s *QubitsStmt) Loc() *source.Location      { return &s.Location }
func (s *SubcircuitStmt) Loc() *source.Location  { return &s.Location }
func (s *InstructionStmt) Loc() *source.Location { return &s.Location }
func (s *ErrorStmt) Loc() *source.Location       { return &s.Location }

func (*VersionStmt) stmt()     {}
func (*QubitsStmt) stmt()      {}
func (*SubcircuitStmt) stmt()  {}
func (*InstructionStmt) stmt() {}
func (*ErrorStmt) stmt()       {}

// OperandKind discriminates instruction operands.
type OperandKind uint8

const (
	OperandIdent OperandKind = iota
	OperandInt
	OperandFloat
	OperandQubitRef
	OperandBitRef
)

func (k OperandKind) String() string {
	switch k {
	case OperandIdent:
		return "ident"
	case OperandInt:
		return "int"
	case OperandFloat:
		return "float"
	case OperandQubitRef:
		return "qubit"
	case OperandBitRef:
		return "bit"
	}
	return "unknown"
}

// Operand is one instruction argument. For register references First/Last
// carry the index range (`q[2]` → 2..2, `q[0:3]` → 0..3); Text keeps the
// literal spelling for display.
type Operand struct {
	Location source.Location
	Kind     OperandKind
	Text     string
	First    uint32
	Last     uint32
}

func (o *Operand) Loc() *source.Location { return &o.Location }

// HasErrors reports whether the tree contains at least one ErrorStmt.
func (r *Root) HasErrors() bool {
	for _, s := range r.Statements {
		if _, ok := s.(*ErrorStmt); ok {
			return true
		}
	}
	return false
}
