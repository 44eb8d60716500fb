package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/csift/csift/internal/config"
	"github.com/csift/csift/internal/report"
	"github.com/csift/csift/internal/scan"
	"github.com/csift/csift/internal/storage"
	"github.com/csift/csift/internal/watch"
)

var (
	scanQuiet bool
	scanWatch bool
	scanDB    string
	scanOut   string
)

var scanCmd = &cobra.Command{
	Use:   "scan [root]",
	Short: "Run every extractor over a source tree",
	Long: `Discovers source files under the root (default: current directory),
runs every extractor on each file, writes the result trees under the output
directory, and persists the facts to the SQLite store. Configuration comes
from .csift/config.yml in the root plus CSIFT_* environment variables.

With --watch, keeps running and rescans after source files change.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		root, err := filepath.Abs(root)
		if err != nil {
			return fmt.Errorf("failed to resolve root: %w", err)
		}

		cfg, err := config.LoadConfigFromDir(root)
		if err != nil {
			return err
		}
		if scanOut != "" {
			cfg.Output.Dir = scanOut
		}
		if scanDB != "" {
			cfg.Storage.Path = scanDB
		}

		dbPath := cfg.Storage.Path
		if !filepath.IsAbs(dbPath) {
			dbPath = filepath.Join(root, dbPath)
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}

		db, err := storage.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		store := storage.NewStore(db)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := runScan(ctx, root, cfg, store); err != nil {
			return err
		}

		if !scanWatch {
			return nil
		}

		w, err := watch.New(root, cfg.SourceExtensions())
		if err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}
		defer w.Stop()

		err = w.Start(ctx, func(files []string) {
			log.Printf("%d files changed, rescanning\n", len(files))
			if err := runScan(ctx, root, cfg, store); err != nil && ctx.Err() == nil {
				log.Printf("Rescan failed: %v\n", err)
			}
		})
		if err != nil {
			return err
		}

		if !scanQuiet {
			fmt.Println("Watching for changes (Ctrl-C to stop)...")
		}
		<-ctx.Done()
		return nil
	},
}

// runScan performs one full extraction pass over the tree.
func runScan(ctx context.Context, root string, cfg *config.Config, store *storage.Store) error {
	disc, err := scan.NewDiscovery(root, cfg.Paths.Code, cfg.Paths.Ignore)
	if err != nil {
		return fmt.Errorf("invalid patterns: %w", err)
	}

	// Discover once up front so the progress bar has a total; the runner
	// repeats the walk, which is cheap next to extraction.
	files, err := disc.Discover()
	if err != nil {
		return fmt.Errorf("failed to discover files: %w", err)
	}

	reporter := NewScanProgressReporter(scanQuiet)
	reporter.OnDiscoveryComplete(len(files))

	outRoot := cfg.Output.Dir
	if !filepath.IsAbs(outRoot) {
		outRoot = filepath.Join(root, outRoot)
	}
	writer := report.NewWriter(outRoot)

	magicIgnored := make(map[string]bool, len(cfg.Magic.Ignore))
	for _, lit := range cfg.Magic.Ignore {
		magicIgnored[lit] = true
	}

	scanID, err := store.BeginScan(root)
	if err != nil {
		return err
	}

	runner := scan.NewRunner(root, disc, cfg.Forced(), func(res *scan.Result) error {
		return writeResult(store, writer, scanID, magicIgnored, res)
	})
	runner.OnFile = reporter.OnFileProcessed

	stats, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	if err := store.FinishScan(scanID, stats.Files); err != nil {
		return err
	}

	reporter.OnComplete(stats)
	return nil
}

// writeResult persists one file's facts and writes its result files.
func writeResult(store *storage.Store, writer *report.Writer, scanID string, magicIgnored map[string]bool, res *scan.Result) error {
	numbers := res.MagicNumbers
	if len(magicIgnored) > 0 {
		filtered := numbers[:0:0]
		for _, n := range numbers {
			if !magicIgnored[n.Literal] {
				filtered = append(filtered, n)
			}
		}
		numbers = filtered
	}

	facts := &storage.FileFacts{
		RelPath:      res.RelPath,
		Encoding:     res.Encoding,
		LineCount:    res.LineCount,
		SizeBytes:    res.SizeBytes,
		Defines:      res.Defines,
		Macros:       res.Macros,
		MagicNumbers: numbers,
		Structs:      res.Structs,
		Values:       res.Values,
		Tables:       res.Tables,
		CallEdges:    res.CallEdges,
		Cases:        res.Cases,
	}
	if _, err := store.WriteFileFacts(scanID, facts); err != nil {
		return err
	}

	if err := writer.WriteStripped(res.RelPath, res.Stripped); err != nil {
		return err
	}
	if len(res.Defines) > 0 {
		if err := writer.WriteDefines(res.RelPath, res.Defines); err != nil {
			return err
		}
	}
	if len(res.Macros) > 0 {
		if err := writer.WriteMacros(res.RelPath, res.Macros); err != nil {
			return err
		}
	}
	if len(res.Tables) > 0 {
		if err := writer.WriteTables(res.RelPath, res.Tables); err != nil {
			return err
		}
	}
	if len(numbers) > 0 {
		if err := writer.WriteMagicNumbers(res.RelPath, numbers); err != nil {
			return err
		}
	}
	if len(res.Structs) > 0 {
		if err := writer.WriteStructs(res.RelPath, res.Structs); err != nil {
			return err
		}
	}
	if len(res.CallEdges) > 0 {
		if err := writer.WriteCalls(res.RelPath, res.CallEdges); err != nil {
			return err
		}
	}
	if len(res.Values) > 0 {
		if err := writer.WriteValues(res.RelPath, res.Values); err != nil {
			return err
		}
	}
	if len(res.SwitchNames) > 0 {
		if err := writer.WriteSwitchLines(res.RelPath, res.Switches); err != nil {
			return err
		}
		if err := writer.WriteCaseTable(res.RelPath, res.SwitchNames, res.Cases); err != nil {
			return err
		}
		if err := writer.WriteCaseVariants(res.RelPath, res.Stripped, res.Cases); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	scanCmd.Flags().BoolVarP(&scanQuiet, "quiet", "q", false, "suppress progress output")
	scanCmd.Flags().BoolVarP(&scanWatch, "watch", "w", false, "rescan when source files change")
	scanCmd.Flags().StringVar(&scanDB, "db", "", "fact database path (default: storage.path from config)")
	scanCmd.Flags().StringVarP(&scanOut, "out", "o", "", "output directory for result trees (default: output.dir from config)")
	rootCmd.AddCommand(scanCmd)
}
