// Package diag holds the diagnostic sink a parse attempt accumulates into.
//
// A Bag is append-only for the duration of one attempt and preserves
// detection order. An attempt is successful if and only if its Bag is
// empty; callers must not infer success from the presence of a syntax
// tree, which may contain recovery placeholders.
package diag

import (
	"fmt"

	"qasm/internal/source"
)

// Diagnostic is one reported problem tied to a source location.
type Diagnostic struct {
	Loc     source.Location
	Message string
}

// String renders the self-contained form used in error lists:
// "<location>: <message>".
func (d Diagnostic) String() string {
	return d.Loc.String() + ": " + d.Message
}

// Bag is an ordered, append-only collection of diagnostics for a single
// parse attempt. Not safe for concurrent use; each attempt owns its own.
type Bag struct {
	items []Diagnostic
	max   int
}

// NewBag creates an empty bag. max caps the number of retained entries;
// 0 means unlimited.
func NewBag(max int) *Bag {
	return &Bag{max: max}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если диагностика не добавлена (достигнут лимит).
func (b *Bag) Add(loc source.Location, msg string) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, Diagnostic{Loc: loc, Message: msg})
	return true
}

// Addf formats and appends a diagnostic.
func (b *Bag) Addf(loc source.Location, format string, args ...any) bool {
	return b.Add(loc, fmt.Sprintf(format, args...))
}

// Len returns the number of recorded diagnostics.
func (b *Bag) Len() int {
	return len(b.items)
}

// Empty reports whether the attempt recorded no problems.
func (b *Bag) Empty() bool {
	return len(b.items) == 0
}

// Items возвращает read-only slice диагностик.
// ВАЖНО: не модифицируйте возвращаемый срез!
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Strings renders every entry in detection order.
func (b *Bag) Strings() []string {
	out := make([]string, len(b.items))
	for i, d := range b.items {
		out[i] = d.String()
	}
	return out
}
