// gensummary prints a markdown summary of the puzzles whose median guesses and median solve time
// changed the most between base and head.
//
// Input is the combined [[baseRuns, headRuns], ...] document on stdin (or --input). The markdown goes
// to stdout so it can be pasted into a pull request; diagnostics go to stderr.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dclamage/SudokuVariantSolverJS/src/analysis"
	"github.com/dclamage/SudokuVariantSolverJS/src/config"
	"github.com/dclamage/SudokuVariantSolverJS/src/logging"
	"github.com/dclamage/SudokuVariantSolverJS/src/plots"
	"github.com/dclamage/SudokuVariantSolverJS/src/report"
	"github.com/dclamage/SudokuVariantSolverJS/src/runs"
	"github.com/dclamage/SudokuVariantSolverJS/src/types"
)

type options struct {
	configPath string
	logLevel   string
	input      string
	top        int
	linkBase   string
	pretty     bool
	chart      string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "gensummary < combined.json",
		Short: "Summarize the biggest guess and time changes between base and head",
		Long: `Read [[baseRuns, headRuns], ...] from stdin and print markdown tables of the puzzles whose
median guesses and median time (solve + create) decreased and increased the most.

Example:
  gensummary < combined.json > summary.md
  gensummary --top 5 --chart deltas.png < combined.json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "Path to a TOML config file")
	f.StringVar(&opts.logLevel, "log-level", "", "Log level (debug|info|warn|error)")
	f.StringVar(&opts.input, "input", "", "Read the combined document from this file instead of stdin")
	f.IntVar(&opts.top, "top", 0, "Puzzles per table (default from config, 3)")
	f.StringVar(&opts.linkBase, "link-base", "", "Solver UI address for puzzle links (default http://localhost:8080/)")
	f.BoolVar(&opts.pretty, "pretty", false, "Style the markdown for the terminal when stdout is a terminal")
	f.StringVar(&opts.chart, "chart", "", "Also write delta charts: <path> for guesses and <path>_time for time")
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
	if flags.Changed("top") {
		cfg.Top = opts.top
	}
	if flags.Changed("link-base") {
		cfg.LinkBase = opts.linkBase
	}
	if !logging.SetLogLevel(cfg.LogLevel) {
		return nil, fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	return cfg, cfg.Validate()
}

func readInput(cmd *cobra.Command, opts *options) (types.Data, error) {
	if opts.input != "" {
		return runs.LoadDataFile(opts.input)
	}
	d, err := runs.ReadData(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("stdin: %w", err)
	}
	return d, nil
}

func run(cmd *cobra.Command, opts *options) error {
	defer logging.TimeTrack(time.Now(), "gensummary")
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	data, err := readInput(cmd, opts)
	if err != nil {
		return err
	}
	sections, err := report.BuildSections(data, cfg.Top)
	if err != nil {
		return err
	}
	for _, s := range sections {
		t := analysis.CountTotals(s.Ranked)
		logging.Infof("%s: %d improved, %d regressed, %d unchanged across %d puzzles", s.Metric.Noun, t.Improved, t.Regressed, t.Unchanged, len(s.Ranked))
	}

	var buf bytes.Buffer
	if err := report.WriteSections(&buf, sections, cfg.LinkBase); err != nil {
		return err
	}
	if err := writeOutput(cmd.OutOrStdout(), buf.String(), opts.pretty); err != nil {
		return err
	}

	if opts.chart != "" {
		return writeCharts(opts.chart, sections, cfg)
	}
	return nil
}

func writeOutput(w io.Writer, markdown string, pretty bool) error {
	if f, ok := w.(*os.File); ok {
		return report.WriteMarkdown(f, markdown, pretty)
	}
	_, err := io.WriteString(w, markdown)
	return err
}

// writeCharts writes the guesses chart to path and every further metric next to it.
func writeCharts(path string, sections []report.Section, cfg *config.Config) error {
	for i, s := range sections {
		out := path
		if i > 0 {
			out = plots.SiblingPath(path, s.Metric.Noun)
		}
		c := plots.DeltaChart{Metric: s.Metric, Ranked: s.Ranked, Width: cfg.Chart.Width, Height: cfg.Chart.Height}
		if err := c.WritePNG(out); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		logging.Infof("wrote %s", out)
	}
	return nil
}

func main() {
	logging.SetTool("gensummary")
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gensummary: %v\n", err)
		os.Exit(1)
	}
}
