// Package driver implements the runtime half of buffalo: a state-aware
// tokenizer and the SLR(1) shift/reduce driver over a compiled parsing
// table. A Parser is immutable and may be shared; every Parse call owns
// its own value stack and tokenizer state.
package driver

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/NateSeymour/buffalo"
	"github.com/NateSeymour/buffalo/grammar"
)

// tracer traces with key 'buffalo.driver'.
func tracer() tracing.Trace {
	return tracing.Select("buffalo.driver")
}

// Parser is a compiled SLR(1) parser for one grammar.
type Parser[V any] struct {
	gram *grammar.Grammar[V]
	ptab *grammar.ParsingTable
}

// New compiles the parsing tables for g and returns a parser. Grammar
// conflicts surface here as *grammar.ShiftReduceConflictError or
// *grammar.ReduceReduceConflictError.
func New[V any](g *grammar.Grammar[V]) (*Parser[V], error) {
	ptab, err := grammar.Compile(g)
	if err != nil {
		return nil, err
	}
	return &Parser[V]{
		gram: g,
		ptab: ptab,
	}, nil
}

// NewWithTable assembles a parser from a previously compiled table.
func NewWithTable[V any](g *grammar.Grammar[V], ptab *grammar.ParsingTable) *Parser[V] {
	return &Parser[V]{
		gram: g,
		ptab: ptab,
	}
}

func (p *Parser[V]) Grammar() *grammar.Grammar[V] {
	return p.gram
}

func (p *Parser[V]) Table() *grammar.ParsingTable {
	return p.ptab
}

// Parse runs the shift/reduce loop over the input and returns the
// semantic value of the start non-terminal, or the first parse error.
func (p *Parser[V]) Parse(input string) (V, error) {
	run := &parse[V]{
		p:   p,
		lex: newLexer(p.gram, p.ptab, input),
	}
	return run.run()
}

// We store pairs of state ids and value tokens on the parse stack. The
// initial entry carries no token.
type stackItem[V any] struct {
	state int
	tok   buffalo.ValueToken[V]
}

// parse owns the value stack and the token record of one Parse call.
type parse[V any] struct {
	p      *Parser[V]
	lex    *lexer[V]
	stack  []stackItem[V]
	tokens []buffalo.Token
}

func (r *parse[V]) top() int {
	return r.stack[len(r.stack)-1].state
}

func (r *parse[V]) run() (V, error) {
	var zero V

	r.stack = append(r.stack, stackItem[V]{state: r.p.ptab.InitialState})

	// The lookahead survives reductions; only a shift consumes it.
	var look *buffalo.Token
	for {
		if look == nil {
			tok, err := r.lex.next(r.top())
			if err != nil {
				return zero, err
			}
			r.tokens = append(r.tokens, tok)
			look = &tok
		}

		ty, next, rn := r.p.ptab.Action(r.top(), look.Terminal)
		switch ty {
		case grammar.ActionTypeAccept:
			tracer().Debugf("accept in state %d", r.top())
			if len(r.stack) < 2 {
				return zero, nil
			}
			return r.stack[len(r.stack)-1].tok.Value, nil

		case grammar.ActionTypeShift:
			value := r.p.gram.EvalTerminal(*look)
			r.stack = append(r.stack, stackItem[V]{
				state: next,
				tok: buffalo.ValueToken[V]{
					Raw:      look.Raw,
					Location: look.Location,
					Value:    value,
				},
			})
			r.lex.consume(*look)
			tracer().Debugf("shift %q into state %d", look.Raw, next)
			look = nil

		case grammar.ActionTypeReduce:
			rule := r.p.gram.Rule(rn)
			k := rule.Len()
			base := len(r.stack) - k
			if base < 1 {
				return zero, fmt.Errorf("parse stack underflow reducing %v", rule)
			}
			children := make([]buffalo.ValueToken[V], k)
			for i := 0; i < k; i++ {
				children[i] = r.stack[base+i].tok
			}
			r.stack = r.stack[:base]

			value := r.p.gram.EvalRule(rn, children)
			loc := buffalo.Location{
				Buffer: r.lex.input,
				Begin:  children[0].Location.Begin,
				End:    children[k-1].Location.End,
			}

			gotoState, ok := r.p.ptab.GoTo(r.top(), rule.LHS().ID())
			if !ok {
				return zero, fmt.Errorf("missing GOTO entry in state %d for %v", r.top(), rule.LHS().Name())
			}
			r.stack = append(r.stack, stackItem[V]{
				state: gotoState,
				tok: buffalo.ValueToken[V]{
					Raw:      r.lex.input[loc.Begin:loc.End],
					Location: loc,
					Value:    value,
				},
			})
			tracer().Debugf("reduce %v, goto state %d", rule, gotoState)

		default:
			return zero, &buffalo.UnexpectedTokenError{
				Location: look.Location,
				Expected: r.expected(r.top()),
			}
		}
	}
}

// expected summarises the terminals legal in a state for error
// reporting.
func (r *parse[V]) expected(state int) []string {
	var names []string
	for _, id := range r.p.ptab.LegalTerminals(state) {
		t := r.p.gram.Terminal(id)
		if t == nil {
			continue
		}
		names = append(names, t.Name())
	}
	return names
}
