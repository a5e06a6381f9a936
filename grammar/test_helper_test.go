package grammar

// exprGrammar builds the classic arithmetic grammar used across the
// construction tests:
//
//	expr   : expr add term | term
//	term   : term mul factor | factor
//	factor : l_paren expr r_paren | id
type exprGrammar struct {
	b *Builder[int]

	add    *Terminal[int]
	mul    *Terminal[int]
	lParen *Terminal[int]
	rParen *Terminal[int]
	id     *Terminal[int]

	expr   *NonTerminal[int]
	term   *NonTerminal[int]
	factor *NonTerminal[int]
}

func newExprGrammar() *exprGrammar {
	b := NewBuilder[int]()
	eg := &exprGrammar{
		b:      b,
		add:    b.Terminal("add", `\+`),
		mul:    b.Terminal("mul", `\*`),
		lParen: b.Terminal("l_paren", `\(`),
		rParen: b.Terminal("r_paren", `\)`),
		id:     b.Terminal("id", `[A-Za-z_][0-9A-Za-z_]*`),
		expr:   b.NonTerminal("expr"),
		term:   b.NonTerminal("term"),
		factor: b.NonTerminal("factor"),
	}
	eg.expr.Rule(eg.expr, eg.add, eg.term)
	eg.expr.Rule(eg.term)
	eg.term.Rule(eg.term, eg.mul, eg.factor)
	eg.term.Rule(eg.factor)
	eg.factor.Rule(eg.lParen, eg.expr, eg.rParen)
	eg.factor.Rule(eg.id)
	return eg
}

func (eg *exprGrammar) build() (*Grammar[int], error) {
	return eg.b.Build(eg.expr)
}
