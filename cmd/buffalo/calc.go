package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var calcFlags = struct {
	tokens *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "calc <expression>",
		Short:   "Evaluate an arithmetic expression",
		Example: `  buffalo calc "18 + 2^(1 + 1) * 4"`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runCalc,
	}
	calcFlags.tokens = cmd.Flags().Bool("tokens", false, "dump the token stream instead of evaluating")
	rootCmd.AddCommand(cmd)
}

func runCalc(cmd *cobra.Command, args []string) error {
	calc, err := newCalculator()
	if err != nil {
		return fmt.Errorf("cannot build the calculator grammar: %w", err)
	}

	input := strings.Join(args, " ")

	if *calcFlags.tokens {
		toks, err := calc.builder.Tokens(input).All()
		if err != nil {
			return err
		}
		for _, tok := range toks {
			name := calc.gram.Terminal(tok.Terminal).Name()
			fmt.Printf("%4v  %-10v %q\n", tok.Location, name, tok.Raw)
		}
		return nil
	}

	v, err := calc.parser.Parse(input)
	if err != nil {
		return err
	}
	fmt.Println(v)
	return nil
}
