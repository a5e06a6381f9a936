package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "buffalo",
	Short: "Explore the buffalo SLR(1) parsing library",
	Long: `buffalo drives the example calculator grammar that ships with the
parsing library:
- Evaluates arithmetic expressions from the command line or a REPL.
- Describes the grammar and its compiled parsing tables.
  This feature is primarily aimed at debugging grammars.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	return rootCmd.Execute()
}
