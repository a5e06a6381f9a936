package grammar

import (
	"errors"
	"testing"
)

func TestIdentifierSupply(t *testing.T) {
	b := NewBuilder[int]()

	t1 := b.Terminal("a", `a`)
	t2 := b.Terminal("b", `b`)
	n1 := b.NonTerminal("A")
	n2 := b.NonTerminal("B")

	if t1.ID() >= t2.ID() {
		t.Fatalf("terminal ids must be strictly increasing: %v, %v", t1.ID(), t2.ID())
	}
	if n1.ID() >= n2.ID() {
		t.Fatalf("non-terminal ids must be strictly increasing: %v, %v", n1.ID(), n2.ID())
	}
	if t1.Precedence() >= t2.Precedence() {
		t.Fatalf("precedence must follow declaration order: %v, %v", t1.Precedence(), t2.Precedence())
	}
}

func TestGrammarRegistration(t *testing.T) {
	eg := newExprGrammar()
	g, err := eg.build()
	if err != nil {
		t.Fatal(err)
	}

	for _, nt := range []*NonTerminal[int]{eg.expr, eg.term, eg.factor} {
		if !g.HasNonTerminal(nt) {
			t.Fatalf("non-terminal %v is missing from the grammar", nt.Name())
		}
	}
	for _, term := range []*Terminal[int]{eg.add, eg.mul, eg.lParen, eg.rParen, eg.id} {
		if g.Terminal(term.ID()) != term {
			t.Fatalf("terminal %v is missing from the grammar", term.Name())
		}
	}

	if g.EOS() == nil || !g.EOS().IsEOS() {
		t.Fatal("grammar has no end-of-stream terminal")
	}

	rules := g.Rules()
	if len(rules) != 6 {
		t.Fatalf("want 6 flattened rules, got %v", len(rules))
	}
	for i, r := range rules {
		if r.Num() != i+1 {
			t.Fatalf("rule %v has number %v", i, r.Num())
		}
	}

	// A rule inherits the precedence of its last terminal; rules with no
	// terminal have none.
	tests := []struct {
		rule *Rule[int]
		prec int
	}{
		{rule: eg.expr.rules[0], prec: eg.add.Precedence()},
		{rule: eg.expr.rules[1], prec: -1},
		{rule: eg.term.rules[0], prec: eg.mul.Precedence()},
		{rule: eg.factor.rules[0], prec: eg.rParen.Precedence()},
		{rule: eg.factor.rules[1], prec: eg.id.Precedence()},
	}
	for _, tt := range tests {
		if tt.rule.Precedence() != tt.prec {
			t.Fatalf("%v: want precedence %v, got %v", tt.rule, tt.prec, tt.rule.Precedence())
		}
	}
}

func TestUnreachableSymbolsAreDropped(t *testing.T) {
	eg := newExprGrammar()
	sub := eg.b.Terminal("sub", `-`)
	orphan := eg.b.NonTerminal("orphan")
	orphan.Rule(sub)

	g, err := eg.build()
	if err != nil {
		t.Fatal(err)
	}

	if g.Terminal(sub.ID()) != nil {
		t.Fatal("unreachable terminal was registered")
	}
	if g.HasNonTerminal(orphan) {
		t.Fatal("unreachable non-terminal was registered")
	}
}

func TestDefinitionErrors(t *testing.T) {
	tests := []struct {
		caption string
		build   func() error
	}{
		{
			caption: "nil start",
			build: func() error {
				b := NewBuilder[int]()
				_, err := b.Build(nil)
				return err
			},
		},
		{
			caption: "empty production",
			build: func() error {
				b := NewBuilder[int]()
				s := b.NonTerminal("s")
				s.Rule()
				_, err := b.Build(s)
				return err
			},
		},
		{
			caption: "non-terminal without rules",
			build: func() error {
				b := NewBuilder[int]()
				a := b.Terminal("a", `a`)
				s := b.NonTerminal("s")
				empty := b.NonTerminal("empty")
				s.Rule(a, empty)
				_, err := b.Build(s)
				return err
			},
		},
		{
			caption: "malformed pattern",
			build: func() error {
				b := NewBuilder[int]()
				a := b.Terminal("a", `[`)
				s := b.NonTerminal("s")
				s.Rule(a)
				_, err := b.Build(s)
				return err
			},
		},
	}
	for _, tt := range tests {
		err := tt.build()
		if err == nil {
			t.Fatalf("%v: expected a definition error", tt.caption)
		}
		var defErr *DefinitionError
		if !errors.As(err, &defErr) {
			t.Fatalf("%v: want *DefinitionError, got %T: %v", tt.caption, err, err)
		}
	}
}

// Ports the follow-set consistency scenario of the statement-list
// grammar: keywords, an identifier list, function definitions and a
// statement list.
func TestStatementListGrammar(t *testing.T) {
	b := NewBuilder[any]()

	kwGiven := b.Terminal("given", `given`)
	kwPlot := b.Terminal("plot", `plot`)
	number := b.Terminal("NUMBER", `\d+(\.\d+)?`)
	identifier := b.Terminal("IDENTIFIER", `[a-zA-Z]+`)
	opExp := b.Terminal("^", `\^`).Right()
	opAsn := b.Terminal(":=", `:=`).Left()
	parOpen := b.Terminal("(", `\(`)
	parClose := b.Terminal(")", `\)`)
	stmtDelim := b.Terminal(";", `;`)
	separator := b.Terminal(",", `,`)

	expression := b.NonTerminal("expression")
	expression.Rule(number)
	expression.Rule(identifier)
	expression.Rule(parOpen, expression, parClose)
	expression.Rule(expression, opExp, expression)

	identifierList := b.NonTerminal("identifier_list")
	identifierList.Rule(identifier)
	identifierList.Rule(identifierList, separator, identifier)

	functionDefinition := b.NonTerminal("function_definition")
	functionDefinition.Rule(kwGiven, identifier, parOpen, identifierList, parClose, opAsn, expression)
	functionDefinition.Rule(kwGiven, identifier, parOpen, parClose, opAsn, expression)

	plotCommand := b.NonTerminal("plot_command")
	plotCommand.Rule(kwPlot, identifier)

	statement := b.NonTerminal("statement")
	statement.Rule(functionDefinition, stmtDelim)
	statement.Rule(plotCommand, stmtDelim)

	statementList := b.NonTerminal("statement_list")
	statementList.Rule(statement)
	statementList.Rule(statementList, statement)

	program := b.NonTerminal("program")
	program.Rule(statementList)

	g, err := b.Build(program)
	if err != nil {
		t.Fatal(err)
	}

	for _, nt := range []*NonTerminal[any]{functionDefinition, plotCommand, statement} {
		if !g.HasNonTerminal(nt) {
			t.Fatalf("non-terminal %v is missing from the grammar", nt.Name())
		}
	}

	firstTests := []struct {
		nt   *NonTerminal[any]
		term *Terminal[any]
	}{
		{nt: functionDefinition, term: kwGiven},
		{nt: plotCommand, term: kwPlot},
		{nt: statement, term: kwGiven},
		{nt: statement, term: kwPlot},
	}
	for _, tt := range firstTests {
		if !g.NonTerminalHasFirst(tt.nt, tt.term) {
			t.Fatalf("FIRST(%v) is missing %v", tt.nt.Name(), tt.term.Name())
		}
	}

	followTests := []struct {
		nt   *NonTerminal[any]
		term *Terminal[any]
	}{
		{nt: functionDefinition, term: stmtDelim},
		{nt: statementList, term: kwGiven},
		{nt: statementList, term: kwPlot},
	}
	for _, tt := range followTests {
		if !g.NonTerminalHasFollow(tt.nt, tt.term) {
			t.Fatalf("FOLLOW(%v) is missing %v", tt.nt.Name(), tt.term.Name())
		}
	}

	if _, err := Compile(g); err != nil {
		t.Fatalf("the statement-list grammar must compile without conflicts: %v", err)
	}
}

func TestRuleString(t *testing.T) {
	eg := newExprGrammar()
	if _, err := eg.build(); err != nil {
		t.Fatal(err)
	}

	r := eg.expr.rules[0]
	if got, want := r.String(), "expr -> expr add term"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if got, want := r.stringWithDot(1), "expr -> expr · add term"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if got, want := r.stringWithDot(3), "expr -> expr add term ·"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}
