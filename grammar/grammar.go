// Package grammar implements the grammar-definition surface of buffalo
// and the SLR(1) construction pipeline: terminals bound to lexeme
// patterns, non-terminals made of production rules, reachability
// registration, FIRST/FOLLOW analysis, the LR(0) canonical collection
// and the compiled ACTION/GOTO tables.
package grammar

import (
	"fmt"
	"sort"

	"github.com/NateSeymour/buffalo"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'buffalo.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("buffalo.grammar")
}

// Reasoner turns a matched lexeme into a semantic value. A terminal
// without a reasoner produces the zero value of V.
type Reasoner[V any] func(tok buffalo.Token) V

// Transducer combines the value tokens of a rule's children into the
// parent's value. The children slice is only valid for the duration of
// the call.
type Transducer[V any] func(children []buffalo.ValueToken[V]) V

// Symbol is a reference to a terminal or a non-terminal, usable in a
// rule sequence. Only *Terminal and *NonTerminal implement it.
type Symbol[V any] interface {
	symbol() sym
}

// Terminal is a grammar symbol recognised by a lexeme pattern.
// Terminals take their precedence from declaration order: the earlier a
// terminal is declared, the tighter it binds.
type Terminal[V any] struct {
	id         buffalo.TerminalID
	name       string
	pattern    string
	matcher    Matcher
	reasoner   Reasoner[V]
	precedence int
	assoc      buffalo.Associativity
	eos        bool
}

func (t *Terminal[V]) symbol() sym {
	return termSym(t.id)
}

func (t *Terminal[V]) ID() buffalo.TerminalID {
	return t.id
}

func (t *Terminal[V]) Name() string {
	return t.name
}

// Pattern returns the source pattern of the default matcher, or the
// empty string for terminals bound to a user-supplied Matcher.
func (t *Terminal[V]) Pattern() string {
	return t.pattern
}

func (t *Terminal[V]) Precedence() int {
	return t.precedence
}

func (t *Terminal[V]) Associativity() buffalo.Associativity {
	return t.assoc
}

// IsEOS reports whether t is the distinguished end-of-stream terminal
// of its grammar.
func (t *Terminal[V]) IsEOS() bool {
	return t.eos
}

// Left marks the terminal left-associative and returns it.
func (t *Terminal[V]) Left() *Terminal[V] {
	t.assoc = buffalo.Left
	return t
}

// Right marks the terminal right-associative and returns it.
func (t *Terminal[V]) Right() *Terminal[V] {
	t.assoc = buffalo.Right
	return t
}

// Reason attaches a reasoner and returns the terminal.
func (t *Terminal[V]) Reason(fn Reasoner[V]) *Terminal[V] {
	t.reasoner = fn
	return t
}

// MatchPrefix reports how many bytes of input the terminal's pattern
// accepts at the head of the input.
func (t *Terminal[V]) MatchPrefix(input string) (int, bool) {
	if t.matcher == nil {
		return 0, false
	}
	return t.matcher.MatchPrefix(input)
}

// NonTerminal is a grammar symbol defined by an ordered list of
// production rules.
type NonTerminal[V any] struct {
	id    buffalo.NonTerminalID
	name  string
	rules []*Rule[V]
}

func (n *NonTerminal[V]) symbol() sym {
	return nonTermSym(n.id)
}

func (n *NonTerminal[V]) ID() buffalo.NonTerminalID {
	return n.id
}

func (n *NonTerminal[V]) Name() string {
	return n.name
}

// Rule appends a production rule with the given symbol sequence and
// returns it, so that a transducer can be attached with Do. Rules keep
// their declaration order within the non-terminal.
func (n *NonTerminal[V]) Rule(seq ...Symbol[V]) *Rule[V] {
	r := newRule(n, seq)
	n.rules = append(n.rules, r)
	return r
}

type ruleNum int

const ruleNumNil = ruleNum(0)

func (n ruleNum) Int() int {
	return int(n)
}

// Rule is one production of a non-terminal. The precedence of a rule is
// the precedence of the last terminal in its sequence, or -1 when the
// sequence contains no terminal.
type Rule[V any] struct {
	num        ruleNum
	lhs        *NonTerminal[V]
	seq        []Symbol[V]
	syms       []sym
	names      []string
	transducer Transducer[V]
	precedence int
}

func newRule[V any](lhs *NonTerminal[V], seq []Symbol[V]) *Rule[V] {
	r := &Rule[V]{
		lhs:        lhs,
		seq:        seq,
		precedence: -1,
	}
	for _, s := range seq {
		v := sym{}
		name := "<nil>"
		switch x := s.(type) {
		case *Terminal[V]:
			if x != nil {
				v = x.symbol()
				name = x.name
				r.precedence = x.precedence
			}
		case *NonTerminal[V]:
			if x != nil {
				v = x.symbol()
				name = x.name
			}
		}
		r.syms = append(r.syms, v)
		r.names = append(r.names, name)
	}
	return r
}

// Do attaches a transducer and returns the rule. A rule without a
// transducer yields the zero value of V, except for single-symbol alias
// rules, which pass their only child's value through.
func (r *Rule[V]) Do(fn Transducer[V]) *Rule[V] {
	r.transducer = fn
	return r
}

func (r *Rule[V]) LHS() *NonTerminal[V] {
	return r.lhs
}

func (r *Rule[V]) Len() int {
	return len(r.syms)
}

// Num is the 1-based position of the rule in the flattened production
// list. It is 0 until the rule's grammar has been built.
func (r *Rule[V]) Num() int {
	return r.num.Int()
}

func (r *Rule[V]) Precedence() int {
	return r.precedence
}

func (r *Rule[V]) String() string {
	return r.stringWithDot(-1)
}

func (r *Rule[V]) stringWithDot(dot int) string {
	s := r.lhs.name + " ->"
	for i, name := range r.names {
		if i == dot {
			s += " ·"
		}
		s += " " + name
	}
	if dot == len(r.names) {
		s += " ·"
	}
	return s
}

// Builder owns the identifier supply of one grammar and collects the
// declared symbols. Terminal and non-terminal IDs are minted strictly
// increasing in declaration order.
type Builder[V any] struct {
	termNum    int
	nonTermNum int
	terminals  []*Terminal[V]
	nonTerms   []*NonTerminal[V]
	errs       []error
}

func NewBuilder[V any]() *Builder[V] {
	return &Builder[V]{}
}

func (b *Builder[V]) freshTerminalID() buffalo.TerminalID {
	b.termNum++
	return buffalo.TerminalID(b.termNum)
}

func (b *Builder[V]) freshNonTerminalID() buffalo.NonTerminalID {
	b.nonTermNum++
	return buffalo.NonTerminalID(b.nonTermNum)
}

// Terminal declares a terminal recognised by a regular expression.
// Pattern errors are deferred and surface from Build.
func (b *Builder[V]) Terminal(name, pattern string) *Terminal[V] {
	var t *Terminal[V]
	m, err := newRegexpMatcher(pattern)
	if err != nil {
		b.errs = append(b.errs, &DefinitionError{
			Reason: fmt.Sprintf("terminal %v has a malformed pattern %q", name, pattern),
			Cause:  err,
		})
		t = b.TerminalMatched(name, nil)
	} else {
		t = b.TerminalMatched(name, m)
	}
	t.pattern = pattern
	return t
}

// TerminalMatched declares a terminal recognised by a user-supplied
// matcher, for lexemes the default regexp engine cannot express.
func (b *Builder[V]) TerminalMatched(name string, m Matcher) *Terminal[V] {
	t := &Terminal[V]{
		id:         b.freshTerminalID(),
		name:       name,
		matcher:    m,
		precedence: len(b.terminals),
		assoc:      buffalo.None,
	}
	b.terminals = append(b.terminals, t)
	return t
}

// NonTerminal declares an empty non-terminal. Rules are added with
// NonTerminal.Rule, which permits (mutually) recursive references.
func (b *Builder[V]) NonTerminal(name string) *NonTerminal[V] {
	n := &NonTerminal[V]{
		id:   b.freshNonTerminalID(),
		name: name,
	}
	b.nonTerms = append(b.nonTerms, n)
	return n
}

// Tokens returns a state-independent token stream over the input that
// treats every terminal declared so far as legal, earliest declared
// wins. It is meant for grammar debugging; parsing uses the state-aware
// tokenizer of package driver.
func (b *Builder[V]) Tokens(input string) *TokenStream[V] {
	terms := make([]*Terminal[V], len(b.terminals))
	copy(terms, b.terminals)
	return &TokenStream[V]{
		terminals: terms,
		input:     input,
	}
}

// Grammar is the closed set of symbols reachable from the start
// non-terminal, the flattened production list and the computed FIRST
// and FOLLOW sets. A Grammar is immutable after Build and may be shared
// between goroutines.
type Grammar[V any] struct {
	start        *NonTerminal[V]
	eos          *Terminal[V]
	terminals    map[buffalo.TerminalID]*Terminal[V]
	nonTerminals map[buffalo.NonTerminalID]*NonTerminal[V]
	rules        []*Rule[V]
	first        *firstSet
	follow       *followSet
	maxTerm      int
	maxNonTerm   int
}

// Build closes the grammar over every symbol reachable from start,
// assigns rule numbers, creates the end-of-stream terminal and computes
// FIRST and FOLLOW. Deferred declaration errors surface here.
func (b *Builder[V]) Build(start *NonTerminal[V]) (*Grammar[V], error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	if start == nil {
		return nil, &DefinitionError{Reason: "start non-terminal must be non-nil"}
	}

	g := &Grammar[V]{
		start:        start,
		terminals:    map[buffalo.TerminalID]*Terminal[V]{},
		nonTerminals: map[buffalo.NonTerminalID]*NonTerminal[V]{},
	}

	g.eos = &Terminal[V]{
		id:         b.freshTerminalID(),
		name:       "<eos>",
		precedence: len(b.terminals),
		eos:        true,
	}
	b.terminals = append(b.terminals, g.eos)
	g.terminals[g.eos.id] = g.eos

	if err := g.register(start); err != nil {
		return nil, err
	}

	for id := range g.terminals {
		if id.Int() > g.maxTerm {
			g.maxTerm = id.Int()
		}
	}
	for id := range g.nonTerminals {
		if id.Int() > g.maxNonTerm {
			g.maxNonTerm = id.Int()
		}
	}

	g.first = genFirstSet(g.rules)
	g.follow = genFollowSet(g)

	tracer().Debugf("built grammar %v: %d terminals, %d non-terminals, %d rules",
		start.name, len(g.terminals), len(g.nonTerminals), len(g.rules))

	return g, nil
}

// register walks the symbol graph depth-first from nt, inserting every
// reachable non-terminal and every mentioned terminal, and flattening
// production rules in discovery order.
func (g *Grammar[V]) register(nt *NonTerminal[V]) error {
	if _, ok := g.nonTerminals[nt.id]; ok {
		return nil
	}
	g.nonTerminals[nt.id] = nt

	if len(nt.rules) == 0 {
		return &DefinitionError{
			Reason: fmt.Sprintf("non-terminal %v has no production rules", nt.name),
		}
	}

	for _, r := range nt.rules {
		if r.Len() == 0 {
			return &DefinitionError{
				Reason: fmt.Sprintf("non-terminal %v has an empty production; empty rules are not supported", nt.name),
			}
		}

		r.num = ruleNum(len(g.rules) + 1)
		g.rules = append(g.rules, r)

		for i, s := range r.seq {
			switch x := s.(type) {
			case *Terminal[V]:
				if x == nil {
					return nilSymbolError(r, i)
				}
				g.terminals[x.id] = x
			case *NonTerminal[V]:
				if x == nil {
					return nilSymbolError(r, i)
				}
				if err := g.register(x); err != nil {
					return err
				}
			default:
				return nilSymbolError(r, i)
			}
		}
	}

	return nil
}

func nilSymbolError[V any](r *Rule[V], pos int) error {
	return &DefinitionError{
		Reason: fmt.Sprintf("rule %v references a nil symbol at position %v", r, pos),
	}
}

func (g *Grammar[V]) Start() *NonTerminal[V] {
	return g.start
}

// EOS returns the distinguished end-of-stream terminal of the grammar.
func (g *Grammar[V]) EOS() *Terminal[V] {
	return g.eos
}

// Terminal resolves a terminal id. It returns nil for ids that are not
// part of the grammar.
func (g *Grammar[V]) Terminal(id buffalo.TerminalID) *Terminal[V] {
	return g.terminals[id]
}

// Terminals returns the grammar's terminals in declaration order, the
// end-of-stream terminal last.
func (g *Grammar[V]) Terminals() []*Terminal[V] {
	terms := make([]*Terminal[V], 0, len(g.terminals))
	for _, t := range g.terminals {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		return terms[i].id < terms[j].id
	})
	return terms
}

// NonTerminals returns the reachable non-terminals in declaration order.
func (g *Grammar[V]) NonTerminals() []*NonTerminal[V] {
	nts := make([]*NonTerminal[V], 0, len(g.nonTerminals))
	for _, n := range g.nonTerminals {
		nts = append(nts, n)
	}
	sort.Slice(nts, func(i, j int) bool {
		return nts[i].id < nts[j].id
	})
	return nts
}

// Rules returns the flattened production list. The rule at index i has
// number i+1.
func (g *Grammar[V]) Rules() []*Rule[V] {
	return g.rules
}

// Rule resolves a rule number. It returns nil for numbers outside the
// production list.
func (g *Grammar[V]) Rule(num int) *Rule[V] {
	if num < 1 || num > len(g.rules) {
		return nil
	}
	return g.rules[num-1]
}

func (g *Grammar[V]) HasNonTerminal(nt *NonTerminal[V]) bool {
	_, ok := g.nonTerminals[nt.id]
	return ok
}

func (g *Grammar[V]) NonTerminalHasFirst(nt *NonTerminal[V], t *Terminal[V]) bool {
	e := g.first.find(nt.id)
	return e != nil && e.contains(t.id)
}

func (g *Grammar[V]) NonTerminalHasFollow(nt *NonTerminal[V], t *Terminal[V]) bool {
	e := g.follow.find(nt.id)
	return e != nil && e.contains(t.id)
}

// EvalTerminal runs the reasoner of the token's terminal. Terminals
// without a reasoner produce the zero value of V.
func (g *Grammar[V]) EvalTerminal(tok buffalo.Token) V {
	t := g.terminals[tok.Terminal]
	if t == nil || t.reasoner == nil {
		var zero V
		return zero
	}
	return t.reasoner(tok)
}

// EvalRule runs the transducer of rule num over the children. Rules
// without a transducer pass a single child's value through and yield
// the zero value of V otherwise.
func (g *Grammar[V]) EvalRule(num int, children []buffalo.ValueToken[V]) V {
	r := g.Rule(num)
	if r == nil || r.transducer == nil {
		if r != nil && r.Len() == 1 && len(children) == 1 {
			return children[0].Value
		}
		var zero V
		return zero
	}
	return r.transducer(children)
}
