package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/csift/csift/internal/callgraph"
	"github.com/csift/csift/internal/config"
	"github.com/csift/csift/internal/storage"
)

var (
	graphRoot  string
	graphDB    string
	graphDepth int
)

var graphCmd = &cobra.Command{
	Use:   "graph <callers|callees|cycles> [function]",
	Short: "Query the call graph of the last scan",
	Long: `Loads the call edges stored by 'csift scan' and answers graph queries:

  graph callers <function>   functions that call <function>, transitively up to --depth
  graph callees <function>   functions <function> calls, transitively up to --depth
  graph cycles               recursion groups (mutual and self recursion)`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := filepath.Abs(graphRoot)
		if err != nil {
			return fmt.Errorf("failed to resolve root: %w", err)
		}

		cfg, err := config.LoadConfigFromDir(root)
		if err != nil {
			return err
		}
		if graphDB != "" {
			cfg.Storage.Path = graphDB
		}
		dbPath := cfg.Storage.Path
		if !filepath.IsAbs(dbPath) {
			dbPath = filepath.Join(root, dbPath)
		}

		db, err := storage.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		store := storage.NewStore(db)

		scanID, err := store.LastScanID()
		if err != nil {
			return err
		}
		if scanID == "" {
			return fmt.Errorf("no scan stored in %s; run 'csift scan' first", dbPath)
		}

		edges, err := store.LoadCallEdges(scanID)
		if err != nil {
			return err
		}
		searcher := callgraph.NewSearcher(edges)

		switch op := args[0]; op {
		case "cycles":
			cycles, err := searcher.Cycles()
			if err != nil {
				return err
			}
			if len(cycles) == 0 {
				fmt.Println("No recursion groups found")
				return nil
			}
			for _, cycle := range cycles {
				fmt.Println(strings.Join(cycle, " -> "))
			}
			return nil

		case "callers", "callees":
			if len(args) != 2 {
				return fmt.Errorf("graph %s requires a function name", op)
			}
			results, err := searcher.Query(callgraph.QueryOperation(op), args[1], graphDepth)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Printf("No %s found for %s\n", op, args[1])
				return nil
			}
			for _, r := range results {
				fmt.Printf("%s%s\n", strings.Repeat("  ", r.Depth-1), r.Function)
			}
			return nil

		default:
			return fmt.Errorf("unknown operation %q (want callers, callees, or cycles)", op)
		}
	},
}

func init() {
	graphCmd.Flags().StringVar(&graphRoot, "root", ".", "scan root holding the .csift directory")
	graphCmd.Flags().StringVar(&graphDB, "db", "", "fact database path (default: storage.path from config)")
	graphCmd.Flags().IntVar(&graphDepth, "depth", callgraph.DefaultDepth, "traversal depth for callers/callees")
	rootCmd.AddCommand(graphCmd)
}
