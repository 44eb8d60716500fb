package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/csift/csift/internal/preproc"
	"github.com/csift/csift/internal/report"
)

var switchesExpandDir string

var switchesCmd = &cobra.Command{
	Use:   "switches <file>",
	Short: "List compile-switch macros and their case table",
	Long: `Discovers the macros gating #ifdef/#ifndef/#if defined blocks and
enumerates every true/false combination as numbered cases. With --expand,
writes one source variant per case under the given output directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		stripped, err := readStripped(path)
		if err != nil {
			return err
		}
		lines := strings.Split(stripped, "\n")

		hits, names := preproc.DiscoverSwitches(lines)
		if len(names) == 0 {
			fmt.Printf("%s: no switch macros\n", path)
			return nil
		}

		fmt.Printf("%s: %d switch macros\n", path, len(names))
		for _, h := range hits {
			fmt.Printf("  %4d  %-8s %s\n", h.LineNumber, h.SwitchType, h.SwitchName)
		}

		cases := preproc.Enumerate(names, nil)
		fmt.Printf("\n%d cases over %s\n", len(cases), strings.Join(names, ", "))
		for _, c := range cases {
			var states []string
			for _, name := range names {
				states = append(states, fmt.Sprintf("%s=%t", name, c.Assignment[name]))
			}
			fmt.Printf("  %s  %s\n", c.Label, strings.Join(states, " "))
		}

		if switchesExpandDir != "" {
			w := report.NewWriter(switchesExpandDir)
			if err := w.WriteCaseVariants(path, stripped, cases); err != nil {
				return err
			}
			fmt.Printf("\nWrote %d case variants under %s\n", len(cases), switchesExpandDir)
		}
		return nil
	},
}

func init() {
	switchesCmd.Flags().StringVar(&switchesExpandDir, "expand", "", "write per-case source variants under this directory")
	rootCmd.AddCommand(switchesCmd)
}
