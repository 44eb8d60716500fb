package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/csift/csift/internal/scan"
)

// ScanProgressReporter reports scan progress with a progress bar.
type ScanProgressReporter struct {
	quiet     bool
	fileBar   *progressbar.ProgressBar
	startTime time.Time
}

// NewScanProgressReporter creates a new progress reporter.
func NewScanProgressReporter(quiet bool) *ScanProgressReporter {
	return &ScanProgressReporter{
		quiet:     quiet,
		startTime: time.Now(),
	}
}

// OnDiscoveryComplete announces the file count and starts the bar.
func (r *ScanProgressReporter) OnDiscoveryComplete(totalFiles int) {
	if r.quiet {
		return
	}
	log.Printf("Processing %d source files\n", totalFiles)

	r.fileBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Extracting facts"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

// OnFileProcessed advances the bar.
func (r *ScanProgressReporter) OnFileProcessed(fileName string) {
	if r.quiet {
		return
	}
	if r.fileBar != nil {
		r.fileBar.Add(1)
	}
}

// OnComplete prints the run summary.
func (r *ScanProgressReporter) OnComplete(stats *scan.Stats) {
	if r.quiet {
		return
	}
	if r.fileBar != nil {
		r.fileBar.Finish()
		r.fileBar = nil
	}

	fmt.Println()
	fmt.Printf("✓ Scan complete: %d files in %.1fs\n", stats.Files, time.Since(r.startTime).Seconds())
	fmt.Printf("  Defines:       %d (+%d macros)\n", stats.Defines, stats.Macros)
	fmt.Printf("  Magic numbers: %d\n", stats.MagicNumbers)
	fmt.Printf("  Structs:       %d (%d value rows)\n", stats.Structs, stats.Values)
	fmt.Printf("  Tables:        %d\n", stats.Tables)
	fmt.Printf("  Call edges:    %d\n", stats.CallEdges)
	fmt.Printf("  Switch macros: %d\n", stats.Switches)
}
