// Package testkit bundles invariant checks shared by grammar and parse
// tests.
package testkit

import (
	"fmt"

	"qasm/internal/ast"
)

// CheckLocationInvariants runs a minimal set of location invariants on a
// parsed tree:
// 1) the root location is known and names the expected source
// 2) every statement location is known and carries the same source name
// 3) the root location covers the union of statement locations
func CheckLocationInvariants(root *ast.Root, name string) error {
	if root == nil {
		return fmt.Errorf("nil root")
	}
	if !root.Location.Known() {
		return fmt.Errorf("root location unset: %s", root.Location.String())
	}
	if root.Location.Filename != name {
		return fmt.Errorf("root names %q, want %q", root.Location.Filename, name)
	}

	union := root.Location
	for i, s := range root.Statements {
		loc := *s.Loc()
		if !loc.Known() {
			return fmt.Errorf("statement %d location unset", i)
		}
		if loc.Filename != name {
			return fmt.Errorf("statement %d names %q, want %q", i, loc.Filename, name)
		}
		union = union.Cover(loc)
	}

	if union != root.Location {
		return fmt.Errorf("root location %s does not cover statements (union %s)",
			root.Location.String(), union.String())
	}
	return nil
}
