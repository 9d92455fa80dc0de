// Package parse drives one grammar-engine attempt end-to-end: it builds
// the engine session for the chosen input source, runs the scan loop,
// collects syntax errors and the (possibly partial) tree, and guarantees
// session teardown on every exit path.
package parse

import (
	"fmt"
	"io"
	"os"
	"strings"

	"qasm/internal/ast"
	"qasm/internal/diag"
	"qasm/internal/grammar"
	"qasm/internal/scan"
	"qasm/internal/source"
)

// DefaultName is used for diagnostics when the caller gives no source name.
const DefaultName = "<unknown>"

// DefaultMaxDiagnostics caps the bag when Options leaves it at zero.
const DefaultMaxDiagnostics = 100

// Result of one parse attempt.
//
// Root may be set even when parsing was not entirely successful, in which
// case the tree contains one or more error-placeholder nodes. The attempt
// succeeded if and only if Errors is empty; never infer success from Root
// alone.
type Result struct {
	Root   *ast.Root
	Errors *diag.Bag
}

// Succeeded reports whether the attempt recorded no diagnostics.
func (r Result) Succeeded() bool {
	return r.Errors.Empty()
}

// Options configure one attempt. The zero value selects the built-in
// grammar engine and the default diagnostic cap.
type Options struct {
	// Engine overrides the grammar engine driving the attempt.
	Engine scan.Engine
	// MaxDiagnostics caps the error bag; 0 means DefaultMaxDiagnostics.
	MaxDiagnostics int
}

// File parses the named file, using the path as the diagnostic source
// name. A file that cannot be opened yields a Result with no root and one
// diagnostic naming the failure; the error return is reserved for
// unrecoverable engine faults.
func File(path string, opts Options) (Result, error) {
	return run(input{kind: inputPath, path: path, name: path}, opts)
}

// Reader parses an already-open handle positioned at the desired start.
// name is used purely for diagnostics; the handle is borrowed and never
// closed here.
func Reader(r io.Reader, name string, opts Options) (Result, error) {
	return run(input{kind: inputReader, reader: r, name: name}, opts)
}

// Text parses the given string as the entire source, with no file I/O.
func Text(data string, name string, opts Options) (Result, error) {
	return run(input{kind: inputText, text: data, name: name}, opts)
}

type inputKind uint8

const (
	inputPath inputKind = iota
	inputReader
	inputText
)

// input — размеченный вариант источника: путь, открытый handle или текст.
type input struct {
	kind   inputKind
	path   string
	reader io.Reader
	text   string
	name   string
}

// helper owns the resources of one attempt: the file opened for a path
// input, the engine session, and the result under construction. It is the
// engine's callback target.
type helper struct {
	engine scan.Engine
	name   string
	file   *os.File // открыт здесь только для inputPath
	sess   scan.Session
	result Result
}

// run is the single orchestrator behind the three façades.
func run(in input, opts Options) (Result, error) {
	engine := opts.Engine
	if engine == nil {
		engine = grammar.New()
	}
	maxDiags := opts.MaxDiagnostics
	if maxDiags == 0 {
		maxDiags = DefaultMaxDiagnostics
	}
	name := in.name
	if name == "" {
		name = DefaultName
	}

	h := &helper{
		engine: engine,
		name:   name,
		result: Result{Errors: diag.NewBag(maxDiags)},
	}
	// Teardown runs on every exit path, including engine faults.
	defer h.close()

	if err := h.construct(in); err != nil {
		h.result.Errors.Add(source.NewLocation(name, 0, 0, 0, 0), err.Error())
		return h.result, nil
	}

	if err := h.sess.Run(); err != nil {
		return h.result, fmt.Errorf("engine fault while scanning %s: %w", name, err)
	}
	return h.result, nil
}

// construct acquires the input source and initializes the engine session.
// Any failure here is an input-acquisition failure: the caller records it
// as a diagnostic and the attempt finishes without scanning.
func (h *helper) construct(in input) error {
	var r io.Reader
	switch in.kind {
	case inputPath:
		f, err := os.Open(in.path)
		if err != nil {
			return err
		}
		h.file = f
		r = f
	case inputReader:
		r = in.reader
	case inputText:
		r = strings.NewReader(in.text)
	}

	sess, err := h.engine.Open(r, h.name, h)
	if err != nil {
		return err
	}
	h.sess = sess
	return nil
}

// close releases the session and any file opened here, exactly once.
// Release failures are surfaced as diagnostics, not faults.
func (h *helper) close() {
	if h.sess != nil {
		if err := h.sess.Close(); err != nil {
			h.result.Errors.Addf(source.NewLocation(h.name, 0, 0, 0, 0), "closing scanner: %s", err)
		}
		h.sess = nil
	}
	if h.file != nil {
		if err := h.file.Close(); err != nil {
			h.result.Errors.Addf(source.NewLocation(h.name, 0, 0, 0, 0), "closing %s: %s", h.name, err)
		}
		h.file = nil
	}
}

// SyntaxError implements scan.Hooks: every engine report lands in the bag
// in detection order.
func (h *helper) SyntaxError(loc source.Location, msg string) {
	h.result.Errors.Add(loc, msg)
}

// Complete implements scan.Hooks. The first reported root wins; the
// engine contract allows at most one completion per attempt, so any
// extras are ignored.
func (h *helper) Complete(root *ast.Root) {
	if h.result.Root == nil {
		h.result.Root = root
	}
}
