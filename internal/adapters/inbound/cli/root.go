package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	version = "dev"
	commit  = "none"
)

// mode is one of the mutually exclusive things a bare testgap run can do.
type mode string

const (
	modeNone     mode = "none"
	modeAll      mode = "all"
	modeTODO     mode = "todo"
	modeCoverage mode = "coverage"
	modeStubs    mode = "stubs"
	modeViz      mode = "viz"
	modeHistory  mode = "history"
	modeHelp     mode = "help"
)

type runOptions struct {
	all      bool
	todo     bool
	coverage bool
	stubs    bool
	viz      bool
	history  bool
	help     bool
	path     string
	output   string
	record   bool
	verbose  bool
}

func (o *runOptions) register(fs *pflag.FlagSet) {
	fs.BoolVar(&o.all, "all", false, "Generate every report: TODO, coverage, stubs and visualization")
	fs.BoolVar(&o.todo, "todo", false, "Generate the test TODO document (default)")
	fs.BoolVar(&o.coverage, "coverage", false, "Generate the coverage report")
	fs.BoolVar(&o.stubs, "stubs", false, "Generate test stubs for untested entities")
	fs.BoolVar(&o.viz, "viz", false, "Generate the HTML coverage visualization")
	fs.BoolVar(&o.history, "history", false, "Show the coverage of previous runs")
	fs.BoolVarP(&o.help, "help", "h", false, "Show this help message")
	fs.StringVar(&o.path, "path", ".", "Project root to analyze")
	fs.StringVar(&o.output, "output", "", "Directory reports are written to (defaults to the tests directory)")
	fs.BoolVar(&o.record, "record", false, "Append this run's coverage to the history in the output directory")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "Log debug output to stderr")
}

// selectMode resolves the flags of one run. Mode flags win in the order
// all, todo, coverage, stubs, viz, history, help. A run with no arguments,
// or with only known option flags, generates the TODO document. Anything
// else without a mode flag does nothing.
func selectMode(o runOptions, fs *pflag.FlagSet, args []string) mode {
	switch {
	case o.all:
		return modeAll
	case o.todo:
		return modeTODO
	case o.coverage:
		return modeCoverage
	case o.stubs:
		return modeStubs
	case o.viz:
		return modeViz
	case o.history:
		return modeHistory
	case o.help:
		return modeHelp
	case len(args) == 0:
		return modeTODO
	case fs.NFlag() > 0:
		return modeTODO
	default:
		return modeNone
	}
}

func newRootCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "testgap",
		Short: "Find the untested code in a Python project",
		Long:  "testgap inventories the functions, classes and methods of a Python source tree, correlates them with the test suite and writes prioritized reports for closing the gaps.",
		Args:  cobra.ArbitraryArgs,
		// Mode flags are parsed by hand so unknown flags are ignored
		// rather than rejected.
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			fs.ParseErrorsWhitelist.UnknownFlags = true
			fs.SetOutput(io.Discard)
			if err := fs.Parse(args); err != nil {
				return err
			}
			setupLogger(cmd.ErrOrStderr(), opts.verbose)

			m := selectMode(opts, fs, args)
			log.Debug("selected run mode", "mode", m, "path", opts.path)
			return run(cmd, m, opts)
		},
	}
	opts.register(cmd.Flags())

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// setupLogger installs the process-wide logger. Output goes to w so that
// stdout stays reserved for reports and the MCP transport.
func setupLogger(w io.Writer, verbose bool) {
	logger := log.NewWithOptions(w, log.Options{ReportTimestamp: false})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	log.SetDefault(logger)
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		return err
	}
	return nil
}
