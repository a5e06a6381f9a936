package grammar

import (
	"github.com/NateSeymour/buffalo"
)

type symKind uint8

const (
	symKindNil symKind = iota
	symKindTerminal
	symKindNonTerminal
)

// sym is a tagged reference to either a terminal or a non-terminal.
// Rule sequences and automaton transitions are stored in terms of syms
// so that grammar structures can be moved and copied freely without
// relying on stable addresses.
type sym struct {
	kind symKind
	num  int
}

func termSym(id buffalo.TerminalID) sym {
	return sym{kind: symKindTerminal, num: id.Int()}
}

func nonTermSym(id buffalo.NonTerminalID) sym {
	return sym{kind: symKindNonTerminal, num: id.Int()}
}

func (s sym) isNil() bool {
	return s.kind == symKindNil
}

func (s sym) isTerminal() bool {
	return s.kind == symKindTerminal
}

func (s sym) isNonTerminal() bool {
	return s.kind == symKindNonTerminal
}

func (s sym) terminal() buffalo.TerminalID {
	if s.kind != symKindTerminal {
		return buffalo.TerminalNil
	}
	return buffalo.TerminalID(s.num)
}

func (s sym) nonTerminal() buffalo.NonTerminalID {
	if s.kind != symKindNonTerminal {
		return buffalo.NonTerminalNil
	}
	return buffalo.NonTerminalID(s.num)
}

// key gives a total order over symbols. The automaton sorts transition
// symbols by key so that state numbering is reproducible between builds.
func (s sym) key() int64 {
	return int64(s.kind)<<32 | int64(s.num)
}
