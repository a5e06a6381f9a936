package grammar

import (
	"github.com/NateSeymour/buffalo"
)

// firstSet maps each non-terminal to the set of terminals a derivation
// of it can begin with.
type firstSet struct {
	set map[buffalo.NonTerminalID]*terminalSet
}

func (fst *firstSet) find(nt buffalo.NonTerminalID) *terminalSet {
	return fst.set[nt]
}

// genFirstSet computes FIRST by chaotic iteration over the flattened
// production list until no set changes. Since empty productions are
// rejected at Build, only the head symbol of each sequence contributes:
// a terminal head is added directly, a non-terminal head contributes
// its own FIRST.
func genFirstSet[V any](rules []*Rule[V]) *firstSet {
	fst := &firstSet{
		set: map[buffalo.NonTerminalID]*terminalSet{},
	}
	for _, prod := range rules {
		if _, ok := fst.set[prod.lhs.id]; ok {
			continue
		}
		fst.set[prod.lhs.id] = newTerminalSet()
	}

	for {
		more := false
		for _, prod := range rules {
			e := fst.set[prod.lhs.id]
			head := prod.syms[0]
			if head.isTerminal() {
				if e.add(head.terminal()) {
					more = true
				}
				continue
			}
			if head.nonTerminal() == prod.lhs.id {
				continue
			}
			if e.merge(fst.set[head.nonTerminal()]) {
				more = true
			}
		}
		if !more {
			break
		}
	}

	return fst
}
