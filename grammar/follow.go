package grammar

import (
	"github.com/NateSeymour/buffalo"
)

// followSet maps each non-terminal to the set of terminals that can
// appear immediately after a derivation of it in a sentential form.
type followSet struct {
	set map[buffalo.NonTerminalID]*terminalSet
}

func (flw *followSet) find(nt buffalo.NonTerminalID) *terminalSet {
	return flw.set[nt]
}

// genFollowSet seeds FOLLOW(start) with the end-of-stream terminal and
// iterates to fixed point: for every occurrence of a non-terminal X in
// a production of N, the symbol after X contributes (a terminal itself,
// or FIRST of a non-terminal), and FOLLOW(N) flows into FOLLOW(X) when
// X is last in the sequence.
func genFollowSet[V any](g *Grammar[V]) *followSet {
	flw := &followSet{
		set: map[buffalo.NonTerminalID]*terminalSet{},
	}
	for _, prod := range g.rules {
		if _, ok := flw.set[prod.lhs.id]; ok {
			continue
		}
		flw.set[prod.lhs.id] = newTerminalSet()
	}

	flw.set[g.start.id].add(g.eos.id)

	for {
		more := false
		for _, prod := range g.rules {
			for i, s := range prod.syms {
				if !s.isNonTerminal() {
					continue
				}
				e := flw.set[s.nonTerminal()]

				if i == len(prod.syms)-1 {
					if e.merge(flw.set[prod.lhs.id]) {
						more = true
					}
					continue
				}

				next := prod.syms[i+1]
				if next.isTerminal() {
					if e.add(next.terminal()) {
						more = true
					}
					continue
				}
				if e.merge(g.first.find(next.nonTerminal())) {
					more = true
				}
			}
		}
		if !more {
			break
		}
	}

	return flw
}
