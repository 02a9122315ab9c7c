// Package rangeexpr parses byte selectors written in range notation:
//
//	5       the byte at offset 5
//	2..7    bytes 2 through 6
//	2..=7   bytes 2 through 7
//	2..     bytes 2 to the end
//	..7     the first 7 bytes
//	..=7    the first 8 bytes
//	..      everything
package rangeexpr

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/invakid404/rawstring/rawstr"
)

var selectorLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "RangeOp", Pattern: `\.\.=?`},
	{Name: "Int", Pattern: `\d+`},
})

type expr struct {
	Start *bound `parser:"@@?"`
	Op    string `parser:"( @RangeOp"`
	End   *bound `parser:"  @@? )?"`
}

type bound struct {
	Value int `parser:"@Int"`
}

var parser = participle.MustBuild[expr](
	participle.Lexer(selectorLexer),
	participle.Elide("Whitespace"),
)

// Selector is a parsed selector. It picks either a single byte or a range.
type Selector struct {
	isPos bool
	pos   rawstr.Pos
	rng   rawstr.Range
}

// Parse parses s into a Selector.
func Parse(s string) (Selector, error) {
	if strings.TrimSpace(s) == "" {
		return Selector{}, fmt.Errorf("empty selector")
	}

	e, err := parser.ParseString("", s)
	if err != nil {
		return Selector{}, fmt.Errorf("invalid selector %q: %w", s, err)
	}

	switch e.Op {
	case "":
		if e.Start == nil {
			return Selector{}, fmt.Errorf("invalid selector %q", s)
		}
		return Selector{isPos: true, pos: rawstr.Pos(e.Start.Value)}, nil
	case "..":
		switch {
		case e.Start != nil && e.End != nil:
			return Selector{rng: rawstr.Span(e.Start.Value, e.End.Value)}, nil
		case e.Start != nil:
			return Selector{rng: rawstr.From(e.Start.Value)}, nil
		case e.End != nil:
			return Selector{rng: rawstr.To(e.End.Value)}, nil
		default:
			return Selector{rng: rawstr.Full()}, nil
		}
	default:
		if e.End == nil {
			return Selector{}, fmt.Errorf("invalid selector %q: inclusive range needs an end", s)
		}
		if e.Start == nil {
			return Selector{rng: rawstr.ToInclusive(e.End.Value)}, nil
		}
		return Selector{rng: rawstr.Inclusive(e.Start.Value, e.End.Value)}, nil
	}
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Selector {
	sel, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return sel
}

// IsPos reports whether the selector picks a single byte.
func (s Selector) IsPos() bool {
	return s.isPos
}

func (s Selector) Pos() rawstr.Pos {
	return s.pos
}

func (s Selector) Range() rawstr.Range {
	return s.rng
}

func (s Selector) String() string {
	if s.isPos {
		return fmt.Sprint(int(s.pos))
	}
	return s.rng.String()
}
