package driver

import (
	"unicode"
	"unicode/utf8"

	"github.com/NateSeymour/buffalo"
	"github.com/NateSeymour/buffalo/grammar"
)

// lexer is the state-aware tokenizer of a parse. Given the current
// parser state it tries only the terminals that have an ACTION entry in
// that state, in precedence (declaration) order, and returns the first
// prefix match. Whitespace between tokens is consumed silently.
type lexer[V any] struct {
	gram  *grammar.Grammar[V]
	ptab  *grammar.ParsingTable
	input string
	pos   int
}

func newLexer[V any](g *grammar.Grammar[V], ptab *grammar.ParsingTable, input string) *lexer[V] {
	return &lexer[V]{
		gram:  g,
		ptab:  ptab,
		input: input,
	}
}

func (l *lexer[V]) skipSpace() {
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		l.pos += size
	}
}

// next returns the token at the current position, given the parser
// state. At the end of the buffer it produces the end-of-stream token
// with a zero-width location.
func (l *lexer[V]) next(state int) (buffalo.Token, error) {
	l.skipSpace()

	if l.pos >= len(l.input) {
		return buffalo.Token{
			Terminal: l.gram.EOS().ID(),
			Location: buffalo.Location{
				Buffer: l.input,
				Begin:  l.pos,
				End:    l.pos,
			},
		}, nil
	}

	for _, id := range l.ptab.LegalTerminals(state) {
		t := l.gram.Terminal(id)
		if t == nil || t.IsEOS() {
			continue
		}
		n, ok := t.MatchPrefix(l.input[l.pos:])
		if !ok || n == 0 {
			continue
		}
		return buffalo.Token{
			Terminal: id,
			Raw:      l.input[l.pos : l.pos+n],
			Location: buffalo.Location{
				Buffer: l.input,
				Begin:  l.pos,
				End:    l.pos + n,
			},
		}, nil
	}

	return buffalo.Token{}, &buffalo.UnrecognisedInputError{
		Location: buffalo.Location{
			Buffer: l.input,
			Begin:  l.pos,
			End:    l.pos,
		},
	}
}

// consume advances the lexer past a token returned by next.
func (l *lexer[V]) consume(tok buffalo.Token) {
	l.pos = tok.Location.End
}
