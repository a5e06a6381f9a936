// Package buffalo holds the small shared types of the buffalo parsing
// library: symbol identifiers, source locations, tokens and the value
// tokens handed to semantic actions.
//
// Grammars are declared with package grammar and parsed with package
// driver. This package carries no behaviour beyond diagnostic rendering.
package buffalo

import (
	"fmt"
	"strings"
)

// TerminalID identifies a terminal within a single grammar. IDs are
// assigned in declaration order and are strictly increasing. The zero
// value is not a valid terminal.
type TerminalID int

// NonTerminalID identifies a non-terminal within a single grammar.
// IDs of terminals and non-terminals are distinct types and must never
// be compared with each other.
type NonTerminalID int

const (
	TerminalNil    = TerminalID(0)
	NonTerminalNil = NonTerminalID(0)
)

func (id TerminalID) Int() int {
	return int(id)
}

func (id NonTerminalID) Int() int {
	return int(id)
}

// Associativity is the tie-breaker for shift/reduce conflicts between a
// rule and a lookahead terminal of equal precedence.
type Associativity int

const (
	None Associativity = iota
	Left
	Right
)

func (a Associativity) String() string {
	switch a {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "none"
}

// Location is a byte range into a source buffer. Begin and End are
// positions between characters, so End-Begin is the length of the span
// and Begin == End denotes a zero-width location.
type Location struct {
	Buffer string
	Begin  int
	End    int
}

func (l Location) Len() int {
	return l.End - l.Begin
}

// Snippet returns the span of the location with up to padding characters
// of surrounding context on each side.
func (l Location) Snippet(padding int) string {
	start := l.Begin - padding
	if start < 0 {
		start = 0
	}
	end := l.End + padding
	if end > len(l.Buffer) {
		end = len(l.Buffer)
	}
	return l.Buffer[start:end]
}

// Annotate renders the snippet with a caret under the start of the span
// and a tilde per spanned character.
func (l Location) Annotate(padding int) string {
	start := l.Begin - padding
	if start < 0 {
		start = 0
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\t%v\n", l.Snippet(padding))
	fmt.Fprintf(&b, "\t%v^%v", strings.Repeat(" ", l.Begin-start), strings.Repeat("~", l.Len()))
	return b.String()
}

func (l Location) String() string {
	return fmt.Sprintf("%v-%v", l.Begin, l.End)
}

// Token is a lexeme recognised by the tokenizer: the matched terminal,
// the raw text and where in the buffer it was found.
type Token struct {
	Terminal TerminalID
	Raw      string
	Location Location
}

func (t Token) Len() int {
	return t.Location.Len()
}

// ValueToken carries a semantic value together with the location that
// produced it. Reasoners receive a Token and yield a value; transducers
// receive the value tokens of a rule's children and yield the parent's.
type ValueToken[V any] struct {
	Raw      string
	Location Location
	Value    V
}
