package grammar

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/NateSeymour/buffalo"
)

func TestGenFollowSet(t *testing.T) {
	eg := newExprGrammar()
	g, err := eg.build()
	if err != nil {
		t.Fatal(err)
	}

	eos := g.EOS().ID()

	tests := []struct {
		nt     *NonTerminal[int]
		follow []buffalo.TerminalID
	}{
		{
			nt:     eg.expr,
			follow: []buffalo.TerminalID{eg.add.ID(), eg.rParen.ID(), eos},
		},
		{
			nt:     eg.term,
			follow: []buffalo.TerminalID{eg.add.ID(), eg.mul.ID(), eg.rParen.ID(), eos},
		},
		{
			nt:     eg.factor,
			follow: []buffalo.TerminalID{eg.add.ID(), eg.mul.ID(), eg.rParen.ID(), eos},
		},
	}
	for _, tt := range tests {
		e := g.follow.find(tt.nt.ID())
		if e == nil {
			t.Fatalf("FOLLOW(%v) was not computed", tt.nt.Name())
		}
		if diff := cmp.Diff(tt.follow, e.values()); diff != "" {
			t.Fatalf("unexpected FOLLOW(%v):\n%v", tt.nt.Name(), diff)
		}
	}
}

func TestFollowOfStartContainsEOS(t *testing.T) {
	b := NewBuilder[int]()
	a := b.Terminal("a", `a`)
	s := b.NonTerminal("s")
	s.Rule(a)

	g, err := b.Build(s)
	if err != nil {
		t.Fatal(err)
	}

	if !g.NonTerminalHasFollow(s, g.EOS()) {
		t.Fatal("FOLLOW(start) must contain the end-of-stream terminal")
	}
}
