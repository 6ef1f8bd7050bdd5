package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/openkraft/testgap/internal/adapters/outbound/config"
	"github.com/openkraft/testgap/internal/adapters/outbound/history"
	"github.com/openkraft/testgap/internal/adapters/outbound/report"
	"github.com/openkraft/testgap/internal/adapters/outbound/tui"
	"github.com/openkraft/testgap/internal/application"
	"github.com/openkraft/testgap/internal/domain"
)

const helpText = `testgap - find the untested code in a Python project

Usage:
  testgap [mode] [--path DIR] [--output DIR] [--record] [--verbose]
  testgap version
  testgap mcp serve [--path DIR]

Modes:
  --all        Generate every report: TODO, coverage, stubs and visualization
  --todo       Generate the test TODO document (default)
  --coverage   Generate the coverage report
  --stubs      Generate test stubs for untested entities
  --viz        Generate the HTML coverage visualization
  --history    Show the coverage of previous runs kept in the output directory
  -h, --help   Show this help message

Options:
  --path DIR     Project root to analyze (default ".")
  --output DIR   Directory reports are written to (default: the tests directory)
  --record       Append this run's coverage to the history in the output directory
  -v, --verbose  Log debug output to stderr
`

func run(cmd *cobra.Command, m mode, opts runOptions) error {
	out := cmd.OutOrStdout()
	switch m {
	case modeNone:
		return nil
	case modeHelp:
		fmt.Fprint(out, helpText)
		return nil
	case modeHistory:
		return showHistory(out, opts)
	}

	a, err := application.NewDefaultAnalysisService().Analyze(cmd.Context(), opts.path)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	if opts.record {
		if err := history.New().Save(application.OutputDir(a, opts.output), domain.NewCoverageEntry(a, time.Now())); err != nil {
			log.Debug("coverage history not saved", "err", err)
		}
	}
	reports := application.NewReportService(report.New())

	switch m {
	case modeAll:
		set, err := reports.WriteAll(a, opts.output)
		if err != nil {
			return fmt.Errorf("writing reports: %w", err)
		}
		printSuite(out, set.TODO, set.Coverage, set.Stubs, set.Visualization)
		fmt.Fprint(out, tui.RenderCoverage(a))

	case modeTODO:
		path, err := reports.WriteTODO(a, opts.output)
		if err != nil {
			return fmt.Errorf("writing TODO document: %w", err)
		}
		fmt.Fprintf(out, "✅ Generated test TODO document at: %s\n", path)

	case modeCoverage:
		path, err := reports.WriteCoverage(a, opts.output)
		if err != nil {
			return fmt.Errorf("writing coverage report: %w", err)
		}
		fmt.Fprintf(out, "✅ Coverage report created at: %s\n", path)

	case modeStubs:
		paths, err := reports.WriteStubs(a, opts.output)
		if err != nil {
			return fmt.Errorf("writing test stubs: %w", err)
		}
		fmt.Fprintf(out, "✅ Generated %d test stub files:\n", len(paths))
		for _, p := range paths {
			fmt.Fprintf(out, "   - %s\n", p)
		}

	case modeViz:
		path, err := reports.WriteVisualization(a, opts.output)
		if err != nil {
			return fmt.Errorf("writing visualization: %w", err)
		}
		fmt.Fprintf(out, "✅ Coverage visualization created at: %s\n", path)
	}
	return nil
}

// showHistory reads the entries kept next to the reports, so it resolves the
// output directory the same way an analysing run does.
func showHistory(w io.Writer, opts runOptions) error {
	root, err := filepath.Abs(opts.path)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := config.New().Load(root)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	dir := application.OutputDir(&domain.Analysis{Root: root, Config: cfg}, opts.output)
	entries, err := history.New().Load(dir)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}
	fmt.Fprint(w, tui.RenderHistory(entries))
	return nil
}

func printSuite(w io.Writer, todo, coverage string, stubs []string, viz string) {
	fmt.Fprintln(w, "✨ Generated test analysis suite:")
	fmt.Fprintf(w, "  📋 TODO document: %s\n", todo)
	fmt.Fprintf(w, "  📊 Coverage report: %s\n", coverage)
	fmt.Fprintf(w, "  🧪 Test stubs: %d files\n", len(stubs))
	fmt.Fprintf(w, "  📈 Visualization: %s\n\n", viz)
}
