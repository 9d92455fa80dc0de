// Package grammar is the built-in scanning engine for the qasm surface
// syntax. It implements scan.Engine: the parse layer drives it through the
// open/run/close lifecycle and receives syntax errors and the finished
// tree through callbacks. All token and recovery decisions live here.
package grammar

import (
	"errors"
	"fmt"
	"io"

	"qasm/internal/ast"
	"qasm/internal/scan"
	"qasm/internal/source"
)

// Engine is stateless; every attempt gets its own session, so concurrent
// attempts never share scanner state.
type Engine struct{}

// New returns the built-in engine.
func New() *Engine {
	return &Engine{}
}

// Open reads and normalizes the whole input up front and builds the
// per-attempt session. A read failure is an initialization error: no scan
// is attempted and no session is returned.
func (e *Engine) Open(r io.Reader, name string, hooks scan.Hooks) (scan.Session, error) {
	if hooks == nil {
		return nil, errors.New("grammar: nil hooks")
	}
	content, _, err := source.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", name, err)
	}
	return &session{
		name:  name,
		hooks: hooks,
		cur:   newCursor(content),
	}, nil
}

// session — реентерабельное состояние одной попытки разбора.
type session struct {
	name   string
	hooks  scan.Hooks
	cur    cursor
	closed bool
}

// Run scans statements until EOF and reports the root via Complete. Syntax
// errors go through Hooks.SyntaxError and leave an ErrorStmt placeholder
// in the tree, so a root is produced even for ill-formed input.
func (s *session) Run() error {
	if s.closed {
		return errors.New("grammar: session is closed")
	}

	root := &ast.Root{Location: source.NewLocation(s.name, 1, 1, 1, 1)}
	for {
		s.skipTrivia()
		if s.cur.eof() {
			break
		}
		stmt := s.scanStatement()
		if stmt != nil {
			root.Statements = append(root.Statements, stmt)
			root.Location = root.Location.Cover(*stmt.Loc())
		}
	}

	s.hooks.Complete(root)
	return nil
}

// Close releases the input buffer. The parse layer calls it exactly once.
func (s *session) Close() error {
	if s.closed {
		return errors.New("grammar: session closed twice")
	}
	s.closed = true
	s.cur.content = nil
	return nil
}

// skipTrivia проматывает пробелы, разделители операторов и комментарии.
func (s *session) skipTrivia() {
	for !s.cur.eof() {
		switch s.cur.peek() {
		case ' ', '\t', '\r', '\n', ';':
			s.cur.bump()
		case '#':
			for !s.cur.eof() && s.cur.peek() != '\n' {
				s.cur.bump()
			}
		default:
			return
		}
	}
}

// skipSpaces проматывает только пробелы и табы внутри оператора.
func (s *session) skipSpaces() {
	for !s.cur.eof() {
		if b := s.cur.peek(); b == ' ' || b == '\t' {
			s.cur.bump()
			continue
		}
		return
	}
}

// atStatementEnd reports whether the cursor sits at a statement boundary,
// consuming any padding spaces first.
func (s *session) atStatementEnd() bool {
	s.skipSpaces()
	if s.cur.eof() {
		return true
	}
	switch s.cur.peek() {
	case '\n', ';', '#':
		return true
	}
	return false
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
