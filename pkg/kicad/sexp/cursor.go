// Package sexp walks KiCad s-expression board text without building a full
// tree. A Cursor points at one record; moving it yields a new Cursor and
// leaves the original untouched, so callers backtrack by keeping the old
// value around.
package sexp

import (
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/kicad/sexp/kicadsexp"
)

type cursorState uint8

const (
	stateBefore cursorState = iota
	stateOn
	stateExhausted
)

// Cursor is a position inside a board buffer. The zero value is exhausted.
type Cursor struct {
	buf   []byte
	pos   int
	state cursorState
}

// Open returns a cursor positioned before the first top-level record of buf.
func Open(buf []byte) Cursor {
	return Cursor{buf: buf, state: stateBefore}
}

// AtEnd reports whether a sibling search ran past the last record of its
// parent (or of the buffer).
func (c Cursor) AtEnd() bool {
	return c.state == stateExhausted
}

// Offset returns the byte offset of the current record's opening paren.
func (c Cursor) Offset() int {
	return c.pos
}

// Next moves to the following sibling record. When there is none the
// returned cursor is exhausted and ok is false.
func (c Cursor) Next() (Cursor, bool) {
	from := 0
	switch c.state {
	case stateExhausted:
		return c, false
	case stateOn:
		end := c.matchClose()
		if end < 0 {
			return c.exhausted(len(c.buf)), false
		}
		from = end + 1
	}

	for i := from; i < len(c.buf); i++ {
		switch c.buf[i] {
		case '(':
			return Cursor{buf: c.buf, pos: i, state: stateOn}, true
		case ')':
			return c.exhausted(i), false
		case '"':
			i = skipQuoted(c.buf, i)
		case '\\':
			i++
		}
	}
	return c.exhausted(len(c.buf)), false
}

// NextNamed moves to the first following sibling called name. On failure the
// receiver is returned unchanged.
func (c Cursor) NextNamed(name string) (Cursor, bool) {
	for n, ok := c.Next(); ok; n, ok = n.Next() {
		if n.Name() == name {
			return n, true
		}
	}
	return c, false
}

// Child descends to the first nested record. On failure the receiver is
// returned unchanged.
func (c Cursor) Child() (Cursor, bool) {
	if c.state != stateOn {
		return c, false
	}
	for i := c.pos + 1; i < len(c.buf); i++ {
		switch c.buf[i] {
		case '(':
			return Cursor{buf: c.buf, pos: i, state: stateOn}, true
		case ')':
			return c, false
		case '"':
			i = skipQuoted(c.buf, i)
		case '\\':
			i++
		}
	}
	return c, false
}

// ChildNamed descends to the first nested record called name. On failure the
// receiver is returned unchanged.
func (c Cursor) ChildNamed(name string) (Cursor, bool) {
	child, ok := c.Child()
	if !ok {
		return c, false
	}
	if child.Name() == name {
		return child, true
	}
	if n, ok := child.NextNamed(name); ok {
		return n, true
	}
	return c, false
}

// Name returns the identifier following the opening paren, or "" when the
// cursor is not on a record.
func (c Cursor) Name() string {
	if c.state != stateOn {
		return ""
	}
	start := c.pos + 1
	end := start
	for end < len(c.buf) {
		ch := c.buf[end]
		if ch == ')' || ch == '(' || ch == ' ' || ch < 0x20 || ch == 0x7f {
			break
		}
		end++
	}
	return string(c.buf[start:end])
}

// Text returns the record from its opening paren through the matching close.
// An unterminated record runs to the end of the buffer.
func (c Cursor) Text() string {
	if c.state != stateOn {
		return ""
	}
	end := c.matchClose()
	if end < 0 {
		return string(c.buf[c.pos:])
	}
	return string(c.buf[c.pos : end+1])
}

// Record decodes the current record's atoms and nested lists.
func (c Cursor) Record() (*kicadsexp.List, error) {
	return kicadsexp.ParseRecord(c.Text())
}

func (c Cursor) exhausted(at int) Cursor {
	return Cursor{buf: c.buf, pos: at, state: stateExhausted}
}

// matchClose returns the offset of the paren closing the current record, or
// -1 when the buffer ends first.
func (c Cursor) matchClose() int {
	depth := 0
	for i := c.pos; i < len(c.buf); i++ {
		switch c.buf[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		case '"':
			i = skipQuoted(c.buf, i)
		case '\\':
			i++
		}
	}
	return -1
}

// skipQuoted returns the offset of the quote closing the string opened at i.
func skipQuoted(buf []byte, i int) int {
	for i++; i < len(buf); i++ {
		switch buf[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return len(buf)
}
