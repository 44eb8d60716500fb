package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/csift/csift/internal/extract"
)

var definesMacrosOnly bool

var definesCmd = &cobra.Command{
	Use:   "defines <file>...",
	Short: "List #define directives",
	Long: `Extracts #define directives with backslash continuations joined and
normalized, split into simple definitions and function-like macros.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			stripped, err := readStripped(path)
			if err != nil {
				return err
			}

			definitions, macros := extract.ExtractDefines(stripped)
			if !definesMacrosOnly {
				for _, d := range definitions {
					fmt.Printf("%s:%d: %s\n", path, d.Line, d.Text)
				}
			}
			for _, m := range macros {
				fmt.Printf("%s:%d: [macro] %s\n", path, m.Line, m.Text)
			}
		}
		return nil
	},
}

func init() {
	definesCmd.Flags().BoolVar(&definesMacrosOnly, "macros", false, "only list function-like macros")
	rootCmd.AddCommand(definesCmd)
}
