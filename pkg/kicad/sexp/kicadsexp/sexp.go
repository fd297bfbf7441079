// Package kicadsexp decodes the text of a single KiCad record into a small
// tree of atoms and lists. Record boundaries are located by the cursor in the
// parent package; this package only looks inside one record at a time.
package kicadsexp

import "strings"

// Sexp is a decoded node: an Atom or a *List.
type Sexp interface {
	// IsLeaf reports whether the node is an atom.
	IsLeaf() bool
	String() string
}

// Atom is a bare symbol or a quoted string with its escapes resolved.
type Atom struct {
	Value  string
	Quoted bool
	Pos    int
}

func (a Atom) IsLeaf() bool { return true }

func (a Atom) String() string {
	if a.Quoted {
		return `"` + strings.ReplaceAll(a.Value, `"`, `\"`) + `"`
	}
	return a.Value
}

// List is a parenthesised sequence. Element 0 is normally the record name.
type List struct {
	elements []Sexp
	Pos      int
}

func (l *List) IsLeaf() bool { return false }

func (l *List) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, elem := range l.elements {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(elem.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Get returns the element at index, or nil when out of range.
func (l *List) Get(index int) Sexp {
	if index < 0 || index >= len(l.elements) {
		return nil
	}
	return l.elements[index]
}

// Len returns the number of elements.
func (l *List) Len() int {
	return len(l.elements)
}

// Name returns the leading atom of the list, or "" for an anonymous list.
func (l *List) Name() string {
	if a, ok := l.Get(0).(Atom); ok && !a.Quoted {
		return a.Value
	}
	return ""
}

// Atoms returns the values of the atoms directly inside the list, skipping
// the name and any nested lists.
func (l *List) Atoms() []string {
	var out []string
	for _, elem := range l.elements[min(1, len(l.elements)):] {
		if a, ok := elem.(Atom); ok {
			out = append(out, a.Value)
		}
	}
	return out
}

// Lists returns the nested lists named name.
func (l *List) Lists(name string) []*List {
	var out []*List
	for _, elem := range l.elements {
		if sub, ok := elem.(*List); ok && sub.Name() == name {
			out = append(out, sub)
		}
	}
	return out
}

// ParseString decodes every top-level expression in s.
func ParseString(s string) ([]Sexp, error) {
	return NewParser(s).ParseAll()
}

// ParseRecord decodes s, which must hold exactly one list.
func ParseRecord(s string) (*List, error) {
	p := NewParser(s)
	exprs, err := p.ParseAll()
	if err != nil {
		return nil, err
	}
	if len(exprs) != 1 {
		return nil, &SyntaxError{Pos: 0, Msg: "expected a single record"}
	}
	l, ok := exprs[0].(*List)
	if !ok {
		return nil, &SyntaxError{Pos: 0, Msg: "expected a list"}
	}
	return l, nil
}
