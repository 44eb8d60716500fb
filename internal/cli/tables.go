package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/csift/csift/internal/extract"
)

var tablesCmd = &cobra.Command{
	Use:   "tables <file>...",
	Short: "List initialized array (table) declarations",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			stripped, err := readStripped(path)
			if err != nil {
				return err
			}

			for _, t := range extract.ExtractTables(stripped) {
				fmt.Printf("%s:%d: %s\n%s\n\n", path, t.Line, t.Name, t.Text)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}
