package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/csift/csift/internal/extract"
)

var callsCmd = &cobra.Command{
	Use:   "calls <file>...",
	Short: "List function call edges in call-site order",
	Long: `Prints one caller -> callee line per call site. Repeated calls appear
once per site; use the graph command for deduplicated queries over a stored
scan.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			stripped, err := readStripped(path)
			if err != nil {
				return err
			}

			for _, e := range extract.ExtractCalls(stripped) {
				fmt.Printf("%s: %s -> %s\n", path, e.Caller, e.Callee)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(callsCmd)
}
