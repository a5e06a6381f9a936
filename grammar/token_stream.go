package grammar

import (
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/NateSeymour/buffalo"
)

// TokenStream is a state-independent scanner over an input in which
// every declared terminal is legal. Candidates are tried in declaration
// order, first match wins; whitespace between tokens is consumed
// silently. It exists for grammar debugging and the token-dump surface
// of the CLI; parsing itself uses the state-aware tokenizer of package
// driver.
type TokenStream[V any] struct {
	terminals []*Terminal[V]
	input     string
	pos       int
}

func (s *TokenStream[V]) skipSpace() {
	for s.pos < len(s.input) {
		r, size := utf8.DecodeRuneInString(s.input[s.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		s.pos += size
	}
}

// Next returns the next token. At the end of the input it returns
// io.EOF; input no terminal matches yields an UnrecognisedInputError.
func (s *TokenStream[V]) Next() (buffalo.Token, error) {
	s.skipSpace()
	if s.pos >= len(s.input) {
		return buffalo.Token{}, io.EOF
	}

	for _, t := range s.terminals {
		if t.eos {
			continue
		}
		n, ok := t.MatchPrefix(s.input[s.pos:])
		if !ok || n == 0 {
			continue
		}
		tok := buffalo.Token{
			Terminal: t.id,
			Raw:      s.input[s.pos : s.pos+n],
			Location: buffalo.Location{
				Buffer: s.input,
				Begin:  s.pos,
				End:    s.pos + n,
			},
		}
		s.pos += n
		return tok, nil
	}

	return buffalo.Token{}, &buffalo.UnrecognisedInputError{
		Location: buffalo.Location{
			Buffer: s.input,
			Begin:  s.pos,
			End:    s.pos,
		},
	}
}

// All drains the stream and returns every token up to the end of the
// input.
func (s *TokenStream[V]) All() ([]buffalo.Token, error) {
	var toks []buffalo.Token
	for {
		tok, err := s.Next()
		if err == io.EOF {
			return toks, nil
		}
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
	}
}
