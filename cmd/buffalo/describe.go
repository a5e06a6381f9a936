package main

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Describe the calculator grammar and its parsing tables",
		Args:  cobra.NoArgs,
		RunE:  runDescribe,
	}
	rootCmd.AddCommand(cmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	calc, err := newCalculator()
	if err != nil {
		return fmt.Errorf("cannot build the calculator grammar: %w", err)
	}

	pterm.DefaultSection.Println("Terminals")
	terms := pterm.TableData{
		{"ID", "NAME", "PATTERN", "PRECEDENCE", "ASSOCIATIVITY"},
	}
	for _, t := range calc.gram.Terminals() {
		terms = append(terms, []string{
			strconv.Itoa(t.ID().Int()),
			t.Name(),
			t.Pattern(),
			strconv.Itoa(t.Precedence()),
			t.Associativity().String(),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(terms).Render(); err != nil {
		return err
	}

	pterm.DefaultSection.Println("Production rules")
	for _, r := range calc.gram.Rules() {
		fmt.Printf("%3d: %v\n", r.Num(), r)
	}

	pterm.DefaultSection.Println("Parsing tables")
	fmt.Printf("start:  %v\n", calc.gram.Start().Name())
	fmt.Printf("states: %d\n", calc.parser.Table().StateCount())

	return nil
}
