package grammar

import (
	"github.com/NateSeymour/buffalo"
)

type ActionType string

const (
	ActionTypeShift  = ActionType("shift")
	ActionTypeReduce = ActionType("reduce")
	ActionTypeAccept = ActionType("accept")
	ActionTypeError  = ActionType("error")
)

// actionEntry packs one ACTION cell into an int: shift actions are the
// negated target state, reduce actions the rule number, 0 is the error
// (absent) entry and accept is a sentinel. A shift into state 0 cannot
// occur because every transition target kernel has an advanced item.
type actionEntry int

const (
	actionEntryEmpty  = actionEntry(0)
	actionEntryAccept = actionEntry(1 << 30)
)

func newShiftActionEntry(state stateNum) actionEntry {
	return actionEntry(state.Int() * -1)
}

func newReduceActionEntry(rule ruleNum) actionEntry {
	return actionEntry(rule.Int())
}

func (e actionEntry) isEmpty() bool {
	return e == actionEntryEmpty
}

func (e actionEntry) describe() (ActionType, stateNum, ruleNum) {
	if e == actionEntryEmpty {
		return ActionTypeError, stateNumInitial, ruleNumNil
	}
	if e == actionEntryAccept {
		return ActionTypeAccept, stateNumInitial, ruleNumNil
	}
	if e < 0 {
		return ActionTypeShift, stateNum(e * -1), ruleNumNil
	}
	return ActionTypeReduce, stateNumInitial, ruleNum(e)
}

// goToEntry packs one GOTO cell: 0 is the error entry, a registered
// target state s is stored as s+1 so that state 0 remains addressable.
type goToEntry uint

const goToEntryEmpty = goToEntry(0)

func newGoToEntry(state stateNum) goToEntry {
	return goToEntry(state.Int() + 1)
}

func (e goToEntry) describe() (stateNum, bool) {
	if e == goToEntryEmpty {
		return stateNumInitial, false
	}
	return stateNum(e - 1), true
}

// ParsingTable is the compiled, immutable ACTION/GOTO pair of a
// grammar. Rows are states; ACTION columns are terminal ids, GOTO
// columns non-terminal ids.
type ParsingTable struct {
	actionTable      []actionEntry
	goToTable        []goToEntry
	stateCount       int
	terminalCount    int
	nonTerminalCount int

	InitialState int
}

func (t *ParsingTable) StateCount() int {
	return t.stateCount
}

// Action looks up the ACTION entry for a state and lookahead terminal.
// The returned state is meaningful for shifts, the rule number for
// reductions.
func (t *ParsingTable) Action(state int, term buffalo.TerminalID) (ActionType, int, int) {
	if state < 0 || state >= t.stateCount || term.Int() < 0 || term.Int() >= t.terminalCount {
		return ActionTypeError, 0, 0
	}
	ty, s, r := t.actionTable[state*t.terminalCount+term.Int()].describe()
	return ty, s.Int(), r.Int()
}

// GoTo looks up the GOTO entry for a state and non-terminal.
func (t *ParsingTable) GoTo(state int, nt buffalo.NonTerminalID) (int, bool) {
	if state < 0 || state >= t.stateCount || nt.Int() < 0 || nt.Int() >= t.nonTerminalCount {
		return 0, false
	}
	s, ok := t.goToTable[state*t.nonTerminalCount+nt.Int()].describe()
	return s.Int(), ok
}

// LegalTerminals returns the terminals with an ACTION entry in the
// given state, in ascending id order, which is declaration (and thus
// precedence) order. The tokenizer tries candidates in exactly this
// order.
func (t *ParsingTable) LegalTerminals(state int) []buffalo.TerminalID {
	if state < 0 || state >= t.stateCount {
		return nil
	}
	var terms []buffalo.TerminalID
	base := state * t.terminalCount
	for col := 0; col < t.terminalCount; col++ {
		if t.actionTable[base+col].isEmpty() {
			continue
		}
		terms = append(terms, buffalo.TerminalID(col))
	}
	return terms
}

func (t *ParsingTable) readAction(row int, col int) actionEntry {
	return t.actionTable[row*t.terminalCount+col]
}

func (t *ParsingTable) writeAction(row int, col int, act actionEntry) {
	t.actionTable[row*t.terminalCount+col] = act
}

func (t *ParsingTable) writeGoTo(row int, col int, e goToEntry) {
	t.goToTable[row*t.nonTerminalCount+col] = e
}

// Compile enumerates the LR(0) canonical collection for g and compiles
// the SLR(1) ACTION and GOTO tables. Shift/reduce conflicts are
// resolved by the precedence/associativity policy; unresolved conflicts
// abort compilation with a diagnostic.
func Compile[V any](g *Grammar[V]) (*ParsingTable, error) {
	automaton := genLR0Automaton(g)
	b := &lrTableBuilder[V]{
		gram:      g,
		automaton: automaton,
	}
	return b.build()
}

type lrTableBuilder[V any] struct {
	gram      *Grammar[V]
	automaton *lr0Automaton
}

func (b *lrTableBuilder[V]) build() (*ParsingTable, error) {
	termCount := b.gram.maxTerm + 1
	nonTermCount := b.gram.maxNonTerm + 1
	states := b.automaton.stateList

	ptab := &ParsingTable{
		actionTable:      make([]actionEntry, len(states)*termCount),
		goToTable:        make([]goToEntry, len(states)*nonTermCount),
		stateCount:       len(states),
		terminalCount:    termCount,
		nonTerminalCount: nonTermCount,
		InitialState:     stateNumInitial.Int(),
	}

	for _, state := range states {
		for _, s := range state.nextSyms {
			next := b.automaton.states[state.next[s]]
			if s.isTerminal() {
				ptab.writeAction(state.num.Int(), s.terminal().Int(), newShiftActionEntry(next.num))
			} else {
				ptab.writeGoTo(state.num.Int(), s.nonTerminal().Int(), newGoToEntry(next.num))
			}
		}

		for _, rn := range state.reducible {
			rule := b.gram.Rule(rn.Int())
			flw := b.gram.follow.find(rule.lhs.id)
			for _, la := range flw.values() {
				if err := b.writeReduceAction(ptab, state, la, rn); err != nil {
					return nil, err
				}
			}
		}
	}

	// Implicit augmentation. With a canonical transition on the start
	// non-terminal out of state 0, the accept entry lives in that
	// transition's target; otherwise state 0 doubles as the
	// post-reduction state of the start non-terminal. The accept entry
	// is written last and wins over a reduce on end-of-stream.
	initial := states[0]
	eos := b.gram.eos.id
	if kid, ok := initial.next[nonTermSym(b.gram.start.id)]; ok {
		t := b.automaton.states[kid]
		ptab.writeAction(t.num.Int(), eos.Int(), actionEntryAccept)
	} else {
		ptab.writeAction(stateNumInitial.Int(), eos.Int(), actionEntryAccept)
		ptab.writeGoTo(stateNumInitial.Int(), b.gram.start.id.Int(), newGoToEntry(stateNumInitial))
	}

	return ptab, nil
}

// writeReduceAction writes a reduce entry for rule rn under lookahead
// la, resolving conflicts: precedence decides first (a lower value
// binds tighter; a rule without precedence falls through), then the
// lookahead's associativity (left prefers reduce, right prefers shift,
// none is fatal). A reduce over a different reduce is always fatal.
func (b *lrTableBuilder[V]) writeReduceAction(ptab *ParsingTable, state *lrState, la buffalo.TerminalID, rn ruleNum) error {
	rule := b.gram.Rule(rn.Int())
	act := ptab.readAction(state.num.Int(), la.Int())
	if act.isEmpty() {
		ptab.writeAction(state.num.Int(), la.Int(), newReduceActionEntry(rn))
		return nil
	}

	ty, next, prev := act.describe()
	switch ty {
	case ActionTypeReduce:
		if prev == rn {
			return nil
		}
		return &ReduceReduceConflictError{
			State:     state.num.Int(),
			RuleNumA:  prev.Int(),
			RuleNumB:  rn.Int(),
			RuleA:     b.gram.Rule(prev.Int()).String(),
			RuleB:     rule.String(),
			Lookahead: b.gram.Terminal(la).name,
			Closure:   b.renderClosure(state),
		}
	case ActionTypeShift:
		term := b.gram.Terminal(la)
		if rule.precedence >= 0 && rule.precedence != term.precedence {
			if rule.precedence < term.precedence {
				ptab.writeAction(state.num.Int(), la.Int(), newReduceActionEntry(rn))
				tracer().Debugf("state %v: shift/reduce on %v resolved by precedence: reduce %v", state.num, term.name, rule)
			} else {
				tracer().Debugf("state %v: shift/reduce on %v resolved by precedence: shift", state.num, term.name)
			}
			return nil
		}
		switch term.assoc {
		case buffalo.Left:
			ptab.writeAction(state.num.Int(), la.Int(), newReduceActionEntry(rn))
			tracer().Debugf("state %v: shift/reduce on %v resolved by associativity: reduce %v", state.num, term.name, rule)
		case buffalo.Right:
			tracer().Debugf("state %v: shift/reduce on %v resolved by associativity: shift", state.num, term.name)
		default:
			return &ShiftReduceConflictError{
				State:       state.num.Int(),
				RuleNum:     rn.Int(),
				Rule:        rule.stringWithDot(rule.Len()),
				Lookahead:   term.name,
				ShiftTarget: next.Int(),
				Closure:     b.renderClosure(state),
			}
		}
	}
	return nil
}

func (b *lrTableBuilder[V]) renderClosure(state *lrState) []string {
	items := make([]string, 0, len(state.closure))
	for _, item := range state.closure {
		items = append(items, b.gram.Rule(item.rule.Int()).stringWithDot(item.dot))
	}
	return items
}
