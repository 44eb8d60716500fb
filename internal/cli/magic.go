package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/csift/csift/internal/extract"
)

var magicIgnore []string

var magicCmd = &cobra.Command{
	Use:   "magic <file>...",
	Short: "List numeric literals with their positions",
	Long: `Finds hex, binary, octal, float, and decimal literals in code (comments
and string literals are masked out first) and prints line, column, the
literal, and the line it sits on.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ignore := make(map[string]bool, len(magicIgnore))
		for _, lit := range magicIgnore {
			ignore[lit] = true
		}

		for _, path := range args {
			stripped, err := readStripped(path)
			if err != nil {
				return err
			}

			for _, n := range extract.ExtractMagicNumbers(stripped) {
				if ignore[n.Literal] {
					continue
				}
				fmt.Printf("%s:%d:%d: %s\t%s\n", path, n.Line, n.Column, n.Literal, n.Context)
			}
		}
		return nil
	},
}

func init() {
	magicCmd.Flags().StringSliceVar(&magicIgnore, "ignore", nil, "literals to skip (e.g. --ignore 0,1)")
	rootCmd.AddCommand(magicCmd)
}
