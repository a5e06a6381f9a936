package main

import (
	"math"
	"strconv"

	"github.com/NateSeymour/buffalo"
	"github.com/NateSeymour/buffalo/driver"
	"github.com/NateSeymour/buffalo/grammar"
)

// calculator bundles the example arithmetic grammar with its compiled
// parser. Operators bind tighter the earlier they are declared, so the
// declaration order below gives ^ precedence over * and /, which in
// turn bind tighter than + and -.
type calculator struct {
	builder *grammar.Builder[float64]
	gram    *grammar.Grammar[float64]
	parser  *driver.Parser[float64]
}

func newCalculator() (*calculator, error) {
	b := grammar.NewBuilder[float64]()

	number := b.Terminal("NUMBER", `\d+(\.\d+)?`).Reason(func(tok buffalo.Token) float64 {
		v, _ := strconv.ParseFloat(tok.Raw, 64)
		return v
	})

	opExp := b.Terminal("^", `\^`).Right()
	opMul := b.Terminal("*", `\*`).Left()
	opDiv := b.Terminal("/", `/`).Left()
	opAdd := b.Terminal("+", `\+`).Left()
	opSub := b.Terminal("-", `-`).Left()

	parOpen := b.Terminal("(", `\(`)
	parClose := b.Terminal(")", `\)`)

	expr := b.NonTerminal("expression")
	expr.Rule(number).Do(func(xs []buffalo.ValueToken[float64]) float64 {
		return xs[0].Value
	})
	expr.Rule(parOpen, expr, parClose).Do(func(xs []buffalo.ValueToken[float64]) float64 {
		return xs[1].Value
	})
	expr.Rule(expr, opExp, expr).Do(func(xs []buffalo.ValueToken[float64]) float64 {
		return math.Pow(xs[0].Value, xs[2].Value)
	})
	expr.Rule(expr, opMul, expr).Do(func(xs []buffalo.ValueToken[float64]) float64 {
		return xs[0].Value * xs[2].Value
	})
	expr.Rule(expr, opDiv, expr).Do(func(xs []buffalo.ValueToken[float64]) float64 {
		return xs[0].Value / xs[2].Value
	})
	expr.Rule(expr, opAdd, expr).Do(func(xs []buffalo.ValueToken[float64]) float64 {
		return xs[0].Value + xs[2].Value
	})
	expr.Rule(expr, opSub, expr).Do(func(xs []buffalo.ValueToken[float64]) float64 {
		return xs[0].Value - xs[2].Value
	})

	statement := b.NonTerminal("statement")
	statement.Rule(expr)

	g, err := b.Build(statement)
	if err != nil {
		return nil, err
	}
	p, err := driver.New(g)
	if err != nil {
		return nil, err
	}

	return &calculator{
		builder: b,
		gram:    g,
		parser:  p,
	}, nil
}
