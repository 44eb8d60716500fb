package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/csift/csift/internal/extract"
)

var valuesCmd = &cobra.Command{
	Use:   "values <file>...",
	Short: "Bind struct initializer values to member names",
	Long: `Extracts struct declarations from all given files, then binds every
'StructName var = {...};' initializer found in them positionally to member
names. Array-of-struct initializers flatten to one row per element and
member. Pass headers and sources together so declarations are in scope.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		strippedByPath := make(map[string]string, len(args))
		var structs []extract.StructDecl
		for _, path := range args {
			stripped, err := readStripped(path)
			if err != nil {
				return err
			}
			strippedByPath[path] = stripped
			structs = append(structs, extract.ExtractStructs(stripped)...)
		}

		for _, path := range args {
			for _, v := range extract.BindStructValues(strippedByPath[path], structs) {
				idx := ""
				if v.ElementIndex >= 0 {
					idx = fmt.Sprintf("[%d]", v.ElementIndex)
				}
				fmt.Printf("%s: %s %s%s.%s = %s\n",
					path, v.StructName, v.VarName, idx, v.MemberName, v.Value)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(valuesCmd)
}
