package config

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// maxRangeLines bounds the expansion of a single range term.
const maxRangeLines = 100000

var lineLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`},
	{Name: "Punct", Pattern: `[\[\]:,;]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// lineList is a list of mesh line terms, optionally in brackets:
//
//	[0 1.5 -2:0.25:2, 10:12]
type lineList struct {
	Open  bool        `parser:"@'['?"`
	Terms []*lineTerm `parser:"( @@ ( ( ',' | ';' )? @@ )* )?"`
	Close bool        `parser:"@']'?"`
}

// lineTerm is a single value, start:stop or start:step:stop.
type lineTerm struct {
	Pos    lexer.Position
	Values []float64 `parser:"@Number ( ':' @Number )*"`
}

var lineParser = participle.MustBuild[lineList](
	participle.Lexer(lineLexer),
	participle.Elide("Whitespace"),
)

// ParseLineSpec expands a mesh line expression into coordinates. Terms are
// numbers or ranges in the start:stop and start:step:stop forms; a range
// whose step points away from stop is empty.
func ParseLineSpec(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	list, err := lineParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("config: mesh lines %q: %w", s, err)
	}
	if list.Open != list.Close {
		return nil, fmt.Errorf("config: mesh lines %q: unbalanced brackets", s)
	}

	var out []float64
	for _, t := range list.Terms {
		vs, err := t.expand()
		if err != nil {
			return nil, fmt.Errorf("config: mesh lines %q: %s: %w", s, t.Pos, err)
		}
		out = append(out, vs...)
	}
	return out, nil
}

func (t *lineTerm) expand() ([]float64, error) {
	var start, step, stop float64
	switch len(t.Values) {
	case 1:
		return []float64{t.Values[0]}, nil
	case 2:
		start, step, stop = t.Values[0], 1, t.Values[1]
	case 3:
		start, step, stop = t.Values[0], t.Values[1], t.Values[2]
	default:
		return nil, fmt.Errorf("range has %d parts", len(t.Values))
	}
	if step == 0 {
		return nil, fmt.Errorf("zero step")
	}

	span := (stop - start) / step
	if span < 0 {
		return nil, nil
	}
	n := int(math.Floor(span+1e-9)) + 1
	if n > maxRangeLines {
		return nil, fmt.Errorf("range expands to %d lines", n)
	}
	vs := make([]float64, n)
	for i := range vs {
		vs[i] = start + float64(i)*step
	}
	return vs, nil
}

// LineSpec is a list of mesh coordinates. In JSON it is a number, a line
// expression string or an array of either.
type LineSpec []float64

// UnmarshalJSON implements json.Unmarshaler.
func (l *LineSpec) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	items, ok := raw.([]any)
	if !ok {
		items = []any{raw}
	}

	var out LineSpec
	for _, it := range items {
		switch v := it.(type) {
		case nil:
		case float64:
			out = append(out, v)
		case string:
			vs, err := ParseLineSpec(v)
			if err != nil {
				return err
			}
			out = append(out, vs...)
		default:
			return fmt.Errorf("config: mesh lines: unexpected %T", it)
		}
	}
	*l = out
	return nil
}
