package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var stripCmd = &cobra.Command{
	Use:   "strip <file>...",
	Short: "Print source with comments removed",
	Long: `Removes line and block comments while preserving string and character
literals and the file's line count. Block comments spanning N lines are
replaced by N newlines so downstream line numbers stay valid.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			stripped, err := readStripped(path)
			if err != nil {
				return err
			}
			fmt.Print(stripped)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stripCmd)
}
