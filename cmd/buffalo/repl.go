package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Evaluate expressions interactively",
		Args:  cobra.NoArgs,
		RunE:  runRepl,
	}
	rootCmd.AddCommand(cmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	calc, err := newCalculator()
	if err != nil {
		return fmt.Errorf("cannot build the calculator grammar: %w", err)
	}

	rl, err := readline.New("calc> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	pterm.Info.Println("buffalo calculator, quit with <ctrl>D")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}

		v, err := calc.parser.Parse(line)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		fmt.Println(v)
	}
}
