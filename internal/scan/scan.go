// Package scan declares the boundary with the grammar-driven scanning
// engine. The engine owns every token and production decision, including
// error recovery; the parse layer only supplies bytes, relays callbacks,
// and guarantees the session lifecycle.
package scan

import (
	"io"

	"qasm/internal/ast"
	"qasm/internal/source"
)

// Hooks receives the engine's two callback channels during a run.
// Implementations must treat calls as attempt-local: the engine never
// invokes hooks of one attempt from another.
type Hooks interface {
	// SyntaxError reports one detected problem at loc. The engine may call
	// it any number of times; detection order must be preserved by the
	// implementation.
	SyntaxError(loc source.Location, msg string)

	// Complete delivers the finished tree root, possibly containing
	// error-placeholder nodes. Called at most once per run.
	Complete(root *ast.Root)
}

// Engine builds per-attempt reentrant sessions. Implementations must keep
// no cross-attempt state so that concurrent attempts stay independent.
type Engine interface {
	// Open constructs the reentrant state for one attempt, reading input
	// from r. name is used only for locations in diagnostics. A non-nil
	// error means engine initialization failed and no scan is possible;
	// the caller reports it as a diagnostic, not a fault.
	Open(r io.Reader, name string, hooks Hooks) (Session, error)
}

// Session is the opaque per-attempt engine state between a successful Open
// and Close.
type Session interface {
	// Run drives the scan/parse loop to completion. Recoverable problems
	// are reported through Hooks; a non-nil error signals an unrecoverable
	// engine fault and nothing more may be assumed about the session
	// except that Close is still required.
	Run() error

	// Close releases buffers and engine state. The caller invokes it
	// exactly once per session, on every exit path.
	Close() error
}
