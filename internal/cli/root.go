// Package cli implements the csift command tree. Single-file commands print
// extraction results to stdout; scan runs the whole pipeline over a tree and
// persists result files and the fact database.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "csift",
	Short: "csift - lexical fact extraction from C/C++ source",
	Long: `csift sifts C/C++ source text for structural facts without parsing it:
comment-stripped sources, compile-switch case expansions, #define tables,
magic numbers, struct declarations and their initializers, constant tables,
and a function call graph.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
