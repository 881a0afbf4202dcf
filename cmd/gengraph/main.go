// gengraph renders a base vs head comparison figure for one measurement of solver runs.
//
// Two forms:
//  1. gengraph <selector> <base.json> <head.json> <out.png>
//     base.json and head.json are arrays of runs; run i of base is paired with run i of head.
//  2. gengraph <selector> <out.png>
//     reads the combined [[baseRuns, headRuns], ...] document from stdin. Points are individual runs,
//     or one lower-median point per puzzle with --by-puzzle.
//
// The selector is a field name (guesses, time, solve, create) or an expression over the run's JSON
// fields such as "solveElapsedTimeMs + createElapsedTimeMs".
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dclamage/SudokuVariantSolverJS/src/analysis"
	"github.com/dclamage/SudokuVariantSolverJS/src/config"
	"github.com/dclamage/SudokuVariantSolverJS/src/logging"
	"github.com/dclamage/SudokuVariantSolverJS/src/plots"
	"github.com/dclamage/SudokuVariantSolverJS/src/runs"
	"github.com/dclamage/SudokuVariantSolverJS/src/selector"
)

type options struct {
	configPath string
	logLevel   string
	byPuzzle   bool
	noCaption  bool
	widthIn    float64
	heightIn   float64
	dpi        int
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "gengraph <selector> (<base.json> <head.json> <out.png> | <out.png>)",
		Short: "Plot base vs head benchmark runs",
		Long: `Render a scatter (log and linear) and sorted-distribution figure comparing base and head runs.

With four arguments the base and head runs are read from two JSON arrays. With two arguments
the combined [[baseRuns, headRuns], ...] document is read from stdin.

Example:
  gengraph guesses base.json head.json guesses.png
  gengraph --by-puzzle "solveElapsedTimeMs + createElapsedTimeMs" time.png < combined.json`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 && len(args) != 4 {
				return fmt.Errorf("expected 2 or 4 arguments, got %d", len(args))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "Path to a TOML config file")
	f.StringVar(&opts.logLevel, "log-level", "", "Log level (debug|info|warn|error)")
	f.BoolVar(&opts.byPuzzle, "by-puzzle", false, "Plot one lower-median point per puzzle instead of every run (stdin form only)")
	f.BoolVar(&opts.noCaption, "no-caption", false, "Do not stamp the selector and point count under the figure")
	f.Float64Var(&opts.widthIn, "width-in", 0, "Figure width in inches (default from config, 10)")
	f.Float64Var(&opts.heightIn, "height-in", 0, "Figure height in inches (default from config, 10)")
	f.IntVar(&opts.dpi, "dpi", 0, "Figure resolution (default from config, 140)")
	return cmd
}

func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("width-in") {
		cfg.Figure.WidthIn = opts.widthIn
	}
	if flags.Changed("height-in") {
		cfg.Figure.HeightIn = opts.heightIn
	}
	if flags.Changed("dpi") {
		cfg.Figure.DPI = opts.dpi
	}
	if !logging.SetLogLevel(cfg.LogLevel) {
		return nil, fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	return cfg, cfg.Validate()
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	defer logging.TimeTrack(time.Now(), "gengraph")
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	sel, err := selector.Parse(args[0])
	if err != nil {
		return err
	}

	var (
		cp   analysis.ComparePoints
		out  string
		mode string
	)
	if len(args) == 4 {
		if opts.byPuzzle {
			return fmt.Errorf("--by-puzzle needs the combined document on stdin (two-argument form)")
		}
		base, err := runs.LoadRunsFile(args[1])
		if err != nil {
			return err
		}
		head, err := runs.LoadRunsFile(args[2])
		if err != nil {
			return err
		}
		if len(base) != len(head) {
			logging.Warnf("base has %d runs, head has %d; pairing the first %d", len(base), len(head), min(len(base), len(head)))
		}
		cp, err = analysis.Zip(sel, base, head)
		if err != nil {
			return err
		}
		out, mode = args[3], "runs"
	} else {
		data, err := runs.ReadData(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("stdin: %w", err)
		}
		if opts.byPuzzle {
			cp, err = analysis.PerPuzzle(sel, data)
			mode = "puzzles"
		} else {
			cp, err = analysis.PerRun(sel, data)
			mode = "runs"
		}
		if err != nil {
			return err
		}
		out = args[1]
	}

	fig := plots.Figure{
		WidthIn:  cfg.Figure.WidthIn,
		HeightIn: cfg.Figure.HeightIn,
		DPI:      cfg.Figure.DPI,
		Measure:  sel.Name,
	}
	if !opts.noCaption {
		fig.Caption = fmt.Sprintf("%s: %d %s, base vs head", sel.Name, cp.Len(), mode)
	}
	if err := fig.WritePNG(out, cp); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	logging.Infof("wrote %s (%d %s)", out, cp.Len(), mode)
	return nil
}

func main() {
	logging.SetTool("gengraph")
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gengraph: %v\n", err)
		os.Exit(1)
	}
}
