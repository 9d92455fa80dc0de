package grammar

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"qasm/internal/ast"
	"qasm/internal/source"
)

// scanStatement распознаёт один оператор по первому токену.
// On a syntax error it reports through hooks and returns an ErrorStmt
// covering the skipped region, so the caller always gets a node.
func (s *session) scanStatement() ast.Statement {
	start := s.cur
	startLoc := s.cur.point(s.name)

	ch := s.cur.peek()
	switch {
	case ch == '.':
		return s.scanSubcircuit(start, startLoc)
	case isIdentStart(ch):
		word, wordLoc := s.scanWord()
		loc := startLoc.Cover(wordLoc)
		switch word {
		case "version":
			return s.scanVersion(start, loc)
		case "qubits":
			return s.scanQubits(start, loc)
		default:
			return s.scanInstruction(start, loc, word)
		}
	default:
		s.hooks.SyntaxError(startLoc, fmt.Sprintf("unexpected character %q", rune(ch)))
		return s.resync(start, startLoc)
	}
}

// resync — восстановление после ошибки: проматываем до конца оператора
// и строим placeholder с пропущенным текстом.
func (s *session) resync(start cursor, loc source.Location) *ast.ErrorStmt {
	for !s.cur.eof() && s.cur.peek() != '\n' && s.cur.peek() != ';' {
		loc = loc.Cover(s.cur.point(s.name))
		s.cur.bump()
	}
	text := strings.TrimSpace(string(s.cur.content[start.off:s.cur.off]))
	return &ast.ErrorStmt{Location: loc, Text: text}
}

// scanWord consumes an identifier/keyword and returns it with its range.
func (s *session) scanWord() (string, source.Location) {
	loc := s.cur.point(s.name)
	startOff := s.cur.off
	for !s.cur.eof() && isIdentContinue(s.cur.peek()) {
		loc.ExpandToInclude(s.cur.line, s.cur.col)
		s.cur.bump()
	}
	return string(s.cur.content[startOff:s.cur.off]), loc
}

// scanUint consumes a decimal literal fitting in uint32.
func (s *session) scanUint(what string) (uint32, source.Location, bool) {
	loc := s.cur.point(s.name)
	startOff := s.cur.off
	for !s.cur.eof() && isDigit(s.cur.peek()) {
		loc.ExpandToInclude(s.cur.line, s.cur.col)
		s.cur.bump()
	}
	text := string(s.cur.content[startOff:s.cur.off])
	if text == "" {
		s.hooks.SyntaxError(loc, "expected "+what)
		return 0, loc, false
	}
	v, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		s.hooks.SyntaxError(loc, fmt.Sprintf("invalid %s %q", what, text))
		return 0, loc, false
	}
	v32, err := safecast.Conv[uint32](v)
	if err != nil {
		s.hooks.SyntaxError(loc, fmt.Sprintf("%s %q out of range", what, text))
		return 0, loc, false
	}
	return v32, loc, true
}

func (s *session) scanVersion(start cursor, loc source.Location) ast.Statement {
	s.skipSpaces()
	major, numLoc, ok := s.scanUint("version number")
	if !ok {
		return s.resync(start, loc)
	}
	loc = loc.Cover(numLoc)

	var minor uint32
	if s.cur.peek() == '.' {
		s.cur.bump()
		minor, numLoc, ok = s.scanUint("version minor number")
		if !ok {
			return s.resync(start, loc)
		}
		loc = loc.Cover(numLoc)
	}

	if !s.atStatementEnd() {
		s.hooks.SyntaxError(s.cur.point(s.name), "expected end of statement after version")
		return s.resync(start, loc)
	}
	return &ast.VersionStmt{Location: loc, Major: major, Minor: minor}
}

func (s *session) scanQubits(start cursor, loc source.Location) ast.Statement {
	s.skipSpaces()
	count, numLoc, ok := s.scanUint("qubit count")
	if !ok {
		return s.resync(start, loc)
	}
	loc = loc.Cover(numLoc)

	if !s.atStatementEnd() {
		s.hooks.SyntaxError(s.cur.point(s.name), "expected end of statement after qubit count")
		return s.resync(start, loc)
	}
	return &ast.QubitsStmt{Location: loc, Count: count}
}

// scanSubcircuit — маркер подсхемы: `.name` или `.name(<повторы>)`.
func (s *session) scanSubcircuit(start cursor, loc source.Location) ast.Statement {
	loc.ExpandToInclude(s.cur.line, s.cur.col)
	s.cur.bump() // '.'

	if !isIdentStart(s.cur.peek()) {
		s.hooks.SyntaxError(s.cur.point(s.name), "expected subcircuit name after '.'")
		return s.resync(start, loc)
	}
	name, nameLoc := s.scanWord()
	loc = loc.Cover(nameLoc)

	iterations := uint32(1)
	if s.cur.peek() == '(' {
		s.cur.bump()
		n, numLoc, ok := s.scanUint("iteration count")
		if !ok {
			return s.resync(start, loc)
		}
		loc = loc.Cover(numLoc)
		if s.cur.peek() != ')' {
			s.hooks.SyntaxError(s.cur.point(s.name), "unterminated iteration count, expected ')'")
			return s.resync(start, loc)
		}
		loc.ExpandToInclude(s.cur.line, s.cur.col)
		s.cur.bump()
		iterations = n
	}

	if !s.atStatementEnd() {
		s.hooks.SyntaxError(s.cur.point(s.name), "expected end of statement after subcircuit")
		return s.resync(start, loc)
	}
	return &ast.SubcircuitStmt{Location: loc, Name: name, Iterations: iterations}
}

// scanInstruction — инструкция с операндами через запятую.
func (s *session) scanInstruction(start cursor, loc source.Location, name string) ast.Statement {
	stmt := &ast.InstructionStmt{Name: name}

	if !s.atStatementEnd() {
		for {
			op, ok := s.scanOperand()
			if !ok {
				return s.resync(start, loc)
			}
			loc = loc.Cover(op.Location)
			stmt.Operands = append(stmt.Operands, op)

			s.skipSpaces()
			if s.cur.peek() != ',' {
				break
			}
			s.cur.bump()
		}
		if !s.atStatementEnd() {
			s.hooks.SyntaxError(s.cur.point(s.name), "expected ',' or end of statement")
			return s.resync(start, loc)
		}
	}

	stmt.Location = loc
	return stmt
}

func (s *session) scanOperand() (ast.Operand, bool) {
	s.skipSpaces()
	ch := s.cur.peek()
	switch {
	case isIdentStart(ch):
		startOff := s.cur.off
		word, loc := s.scanWord()
		if s.cur.peek() == '[' {
			return s.scanRegisterRef(startOff, word, loc)
		}
		return ast.Operand{Location: loc, Kind: ast.OperandIdent, Text: word}, true
	case isDigit(ch), ch == '-', ch == '+':
		return s.scanNumber()
	default:
		s.hooks.SyntaxError(s.cur.point(s.name), fmt.Sprintf("expected operand, got %q", rune(ch)))
		return ast.Operand{}, false
	}
}

// scanRegisterRef — ссылка на регистр: q[i], b[i] или q[a:b].
func (s *session) scanRegisterRef(startOff int, word string, loc source.Location) (ast.Operand, bool) {
	var kind ast.OperandKind
	switch word {
	case "q":
		kind = ast.OperandQubitRef
	case "b":
		kind = ast.OperandBitRef
	default:
		s.hooks.SyntaxError(loc, fmt.Sprintf("unknown register %q, expected q or b", word))
		return ast.Operand{}, false
	}

	loc.ExpandToInclude(s.cur.line, s.cur.col)
	s.cur.bump() // '['

	first, numLoc, ok := s.scanUint("register index")
	if !ok {
		return ast.Operand{}, false
	}
	loc = loc.Cover(numLoc)

	last := first
	if s.cur.peek() == ':' {
		s.cur.bump()
		last, numLoc, ok = s.scanUint("register index")
		if !ok {
			return ast.Operand{}, false
		}
		loc = loc.Cover(numLoc)
	}

	if s.cur.peek() != ']' {
		s.hooks.SyntaxError(s.cur.point(s.name), "unterminated register index, expected ']'")
		return ast.Operand{}, false
	}
	loc.ExpandToInclude(s.cur.line, s.cur.col)
	s.cur.bump()

	return ast.Operand{
		Location: loc,
		Kind:     kind,
		Text:     string(s.cur.content[startOff:s.cur.off]),
		First:    first,
		Last:     last,
	}, true
}

// scanNumber — целое или вещественное, со знаком.
func (s *session) scanNumber() (ast.Operand, bool) {
	loc := s.cur.point(s.name)
	startOff := s.cur.off

	if b := s.cur.peek(); b == '-' || b == '+' {
		loc.ExpandToInclude(s.cur.line, s.cur.col)
		s.cur.bump()
	}

	digits := 0
	for !s.cur.eof() && isDigit(s.cur.peek()) {
		loc.ExpandToInclude(s.cur.line, s.cur.col)
		s.cur.bump()
		digits++
	}

	kind := ast.OperandInt
	if s.cur.peek() == '.' {
		kind = ast.OperandFloat
		loc.ExpandToInclude(s.cur.line, s.cur.col)
		s.cur.bump()
		for !s.cur.eof() && isDigit(s.cur.peek()) {
			loc.ExpandToInclude(s.cur.line, s.cur.col)
			s.cur.bump()
			digits++
		}
	}

	text := string(s.cur.content[startOff:s.cur.off])
	if digits == 0 {
		s.hooks.SyntaxError(loc, fmt.Sprintf("malformed number %q", text))
		return ast.Operand{}, false
	}
	return ast.Operand{Location: loc, Kind: kind, Text: text}, true
}
