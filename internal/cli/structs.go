package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/csift/csift/internal/extract"
)

var structsCmd = &cobra.Command{
	Use:   "structs <file>...",
	Short: "List struct declarations and their members",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			stripped, err := readStripped(path)
			if err != nil {
				return err
			}

			for _, s := range extract.ExtractStructs(stripped) {
				name := s.Name
				if s.Tag != "" && s.Tag != s.Name {
					name = fmt.Sprintf("%s (tag %s)", s.Name, s.Tag)
				}
				fmt.Printf("%s:%d: struct %s\n", path, s.Line, name)
				for _, m := range s.Members {
					fmt.Printf("    %s %s\n", m.Type, m.Name)
				}
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(structsCmd)
}
