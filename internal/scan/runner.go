package scan

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/csift/csift/internal/extract"
	"github.com/csift/csift/internal/lex"
	"github.com/csift/csift/internal/preproc"
)

// Beyond this many free switch macros the case product is not enumerated;
// 2^N cases stop being useful long before they stop being computable.
const maxEnumeratedSwitches = 10

// Result holds everything extracted from one source file.
type Result struct {
	Path      string // absolute
	RelPath   string
	Encoding  string
	LineCount int
	SizeBytes int64

	Stripped string

	Defines      []extract.Define
	Macros       []extract.Define
	MagicNumbers []extract.MagicNumber
	Structs      []extract.StructDecl
	Values       []extract.ValueBinding
	Tables       []extract.TableDecl
	CallEdges    []extract.CallEdge

	Switches    []preproc.SwitchLine
	SwitchNames []string
	Cases       []preproc.CaseAssignment
}

// Stats aggregates counts over one run.
type Stats struct {
	Files        int
	Defines      int
	Macros       int
	MagicNumbers int
	Structs      int
	Values       int
	Tables       int
	CallEdges    int
	Switches     int
}

// Runner drives the per-file pipeline over a discovered file set. Results
// are handed to the sink one file at a time, after value binding, which uses
// the struct declarations of the whole tree.
type Runner struct {
	root   string
	disc   *Discovery
	forced map[string]bool
	sink   func(*Result) error

	// OnFile, when set, is called with each relative path before the file is
	// processed. Used for progress reporting.
	OnFile func(relPath string)
}

// NewRunner creates a runner. The sink receives every completed Result and
// may persist or report it; a sink error aborts the run.
func NewRunner(root string, disc *Discovery, forced map[string]bool, sink func(*Result) error) *Runner {
	return &Runner{root: root, disc: disc, forced: forced, sink: sink}
}

// Run discovers and processes every file, then binds struct values across
// the whole tree. Cancellation is checked between files.
func (r *Runner) Run(ctx context.Context) (*Stats, error) {
	files, err := r.disc.Discover()
	if err != nil {
		return nil, fmt.Errorf("failed to discover files: %w", err)
	}

	var results []*Result
	var allStructs []extract.StructDecl

	for _, path := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		relPath, err := filepath.Rel(r.root, path)
		if err != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		if r.OnFile != nil {
			r.OnFile(relPath)
		}

		res, err := ProcessFile(path, r.forced)
		if err != nil {
			return nil, err
		}
		res.RelPath = relPath

		results = append(results, res)
		allStructs = append(allStructs, res.Structs...)
	}

	stats := &Stats{}
	for _, res := range results {
		res.Values = extract.BindStructValues(res.Stripped, allStructs)

		if err := r.sink(res); err != nil {
			return nil, fmt.Errorf("failed to store %s: %w", res.RelPath, err)
		}

		stats.Files++
		stats.Defines += len(res.Defines)
		stats.Macros += len(res.Macros)
		stats.MagicNumbers += len(res.MagicNumbers)
		stats.Structs += len(res.Structs)
		stats.Values += len(res.Values)
		stats.Tables += len(res.Tables)
		stats.CallEdges += len(res.CallEdges)
		stats.Switches += len(res.SwitchNames)
	}

	return stats, nil
}

// ProcessFile decodes one source file and runs every extractor except the
// value binder, which needs struct declarations from the rest of the tree.
func ProcessFile(path string, forced map[string]bool) (*Result, error) {
	content, encoding, err := ReadSource(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	stripped := lex.Strip(content)
	lines := strings.Split(stripped, "\n")

	res := &Result{
		Path:      path,
		RelPath:   filepath.ToSlash(path),
		Encoding:  encoding,
		LineCount: len(lines),
		SizeBytes: info.Size(),
		Stripped:  stripped,
	}

	res.Defines, res.Macros = extract.ExtractDefines(stripped)
	res.MagicNumbers = extract.ExtractMagicNumbers(stripped)
	res.Structs = extract.ExtractStructs(stripped)
	res.Tables = extract.ExtractTables(stripped)
	res.CallEdges = extract.ExtractCalls(stripped)

	res.Switches, res.SwitchNames = preproc.DiscoverSwitches(lines)

	free := 0
	for _, name := range res.SwitchNames {
		if _, ok := forced[name]; !ok {
			free++
		}
	}
	if free > maxEnumeratedSwitches {
		log.Printf("Warning: %s has %d switch macros, skipping case enumeration\n", path, free)
	} else if len(res.SwitchNames) > 0 {
		res.Cases = preproc.Enumerate(res.SwitchNames, forced)
	}

	return res, nil
}
