package source

import (
	"fmt"
	"strings"
)

// Location is a half-open line/column range in a named source.
// A value of 0 for any line or column means "unknown": it renders as such
// and never participates in range comparisons.
type Location struct {
	Filename    string
	FirstLine   uint32
	FirstColumn uint32
	LastLine    uint32
	LastColumn  uint32
}

// NewLocation constructs a location; pass 0 for any bound that is unknown.
func NewLocation(filename string, firstLine, firstColumn, lastLine, lastColumn uint32) Location {
	return Location{
		Filename:    filename,
		FirstLine:   firstLine,
		FirstColumn: firstColumn,
		LastLine:    lastLine,
		LastColumn:  lastColumn,
	}
}

// ExpandToInclude grows the range so that it covers the given point.
// Unset bounds are initialized to the point; otherwise the first bound only
// moves backward and the last bound only moves forward, so repeated calls
// form a monotonic union over every point seen.
func (l *Location) ExpandToInclude(line, column uint32) {
	if l.FirstLine == 0 || l.FirstColumn == 0 {
		l.FirstLine = line
		l.FirstColumn = column
	} else if line < l.FirstLine {
		l.FirstLine = line
		l.FirstColumn = column
	} else if line == l.FirstLine && column < l.FirstColumn {
		l.FirstColumn = column
	}

	if l.LastLine == 0 || l.LastColumn == 0 {
		l.LastLine = line
		l.LastColumn = column
	} else if line > l.LastLine {
		l.LastLine = line
		l.LastColumn = column
	} else if line == l.LastLine && column > l.LastColumn {
		l.LastColumn = column
	}
}

// Cover returns the union of both ranges. Locations with different
// filenames cannot be merged; l wins.
func (l Location) Cover(other Location) Location {
	if l.Filename != other.Filename {
		return l
	}
	out := l
	if other.FirstLine != 0 && other.FirstColumn != 0 {
		out.ExpandToInclude(other.FirstLine, other.FirstColumn)
	}
	if other.LastLine != 0 && other.LastColumn != 0 {
		out.ExpandToInclude(other.LastLine, other.LastColumn)
	}
	return out
}

// Known reports whether the range carries at least a first line.
func (l Location) Known() bool {
	return l.FirstLine != 0
}

// String renders the location for diagnostics. The range collapses to a
// single line:column when first and last coincide, degrades to line numbers
// when columns are unknown, and to the bare filename when nothing is known.
// A fully-empty location renders as "<unknown>".
func (l Location) String() string {
	var b strings.Builder
	if l.Filename != "" {
		b.WriteString(l.Filename)
	} else {
		b.WriteString("<unknown>")
	}
	switch {
	case l.FirstLine == 0:
		// только имя файла
	case l.FirstColumn == 0:
		if l.LastLine == 0 || l.LastLine == l.FirstLine {
			fmt.Fprintf(&b, ":%d", l.FirstLine)
		} else {
			fmt.Fprintf(&b, ":%d..%d", l.FirstLine, l.LastLine)
		}
	case l.LastLine == 0 || l.LastColumn == 0,
		l.LastLine == l.FirstLine && l.LastColumn == l.FirstColumn:
		fmt.Fprintf(&b, ":%d:%d", l.FirstLine, l.FirstColumn)
	default:
		fmt.Fprintf(&b, ":%d:%d..%d:%d", l.FirstLine, l.FirstColumn, l.LastLine, l.LastColumn)
	}
	return b.String()
}
