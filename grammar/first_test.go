package grammar

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/NateSeymour/buffalo"
)

func TestGenFirstSet(t *testing.T) {
	eg := newExprGrammar()
	g, err := eg.build()
	if err != nil {
		t.Fatal(err)
	}

	headTerms := []buffalo.TerminalID{eg.lParen.ID(), eg.id.ID()}

	tests := []struct {
		nt    *NonTerminal[int]
		first []buffalo.TerminalID
	}{
		{nt: eg.expr, first: headTerms},
		{nt: eg.term, first: headTerms},
		{nt: eg.factor, first: headTerms},
	}
	for _, tt := range tests {
		e := g.first.find(tt.nt.ID())
		if e == nil {
			t.Fatalf("FIRST(%v) was not computed", tt.nt.Name())
		}
		if diff := cmp.Diff(tt.first, e.values()); diff != "" {
			t.Fatalf("unexpected FIRST(%v):\n%v", tt.nt.Name(), diff)
		}
	}
}

func TestGenFirstSetThroughChain(t *testing.T) {
	b := NewBuilder[int]()
	a := b.Terminal("a", `a`)
	c := b.Terminal("c", `c`)

	// s : a_or_c a, FIRST(s) must flow through the chain of
	// non-terminal heads.
	aOrC := b.NonTerminal("a_or_c")
	aOrC.Rule(a)
	aOrC.Rule(c)
	s := b.NonTerminal("s")
	s.Rule(aOrC, a)

	g, err := b.Build(s)
	if err != nil {
		t.Fatal(err)
	}

	want := []buffalo.TerminalID{a.ID(), c.ID()}
	if diff := cmp.Diff(want, g.first.find(s.ID()).values()); diff != "" {
		t.Fatalf("unexpected FIRST(s):\n%v", diff)
	}

	for _, term := range []*Terminal[int]{a, c} {
		if !g.NonTerminalHasFirst(s, term) {
			t.Fatalf("FIRST(s) is missing %v", term.Name())
		}
	}
}
