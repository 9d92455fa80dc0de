package grammar

import "qasm/internal/source"

// cursor — позиция в нормализованном исходнике с учётом строк/колонок.
// Line/Col are 1-based, matching the location model.
type cursor struct {
	content []byte
	off     int
	line    uint32
	col     uint32
}

func newCursor(content []byte) cursor {
	return cursor{content: content, line: 1, col: 1}
}

func (c *cursor) eof() bool {
	return c.off >= len(c.content)
}

// peek читает текущий байт, если есть, иначе возвращает 0
func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.content[c.off]
}

// bump consumes one byte, keeping line/col accounting in step.
func (c *cursor) bump() byte {
	b := c.content[c.off]
	c.off++
	if b == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	return b
}

// point returns the current scan position as a collapsed location.
func (c *cursor) point(name string) source.Location {
	return source.NewLocation(name, c.line, c.col, c.line, c.col)
}
