package grammar

import (
	"regexp"
)

// Matcher recognises the lexeme of one terminal at the head of the
// input. Implementations report the length in bytes of the prefix they
// accept. The zero length with ok == true is treated by the tokenizer as
// no match.
type Matcher interface {
	MatchPrefix(input string) (length int, ok bool)
}

// regexpMatcher adapts the host regexp engine to the Matcher contract.
// The pattern is compiled once, anchored to the start of the input, and
// keeps the engine's leftmost-first semantics: among alternatives the
// first that matches wins, which is not always the longest.
type regexpMatcher struct {
	re *regexp.Regexp
}

func newRegexpMatcher(pattern string) (*regexpMatcher, error) {
	re, err := regexp.Compile(`\A(?:` + pattern + `)`)
	if err != nil {
		return nil, err
	}
	return &regexpMatcher{re: re}, nil
}

func (m *regexpMatcher) MatchPrefix(input string) (int, bool) {
	loc := m.re.FindStringIndex(input)
	if loc == nil {
		return 0, false
	}
	return loc[1], true
}
