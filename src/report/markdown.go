// Package report renders base/head comparisons as GitHub-flavored markdown.
package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dclamage/SudokuVariantSolverJS/src/analysis"
	"github.com/dclamage/SudokuVariantSolverJS/src/types"
)

var (
	ErrEmptyTable = errors.New("table has no rows")
	ErrRaggedRow  = errors.New("row length differs from headings")
)

// WriteTable writes a pipe-delimited markdown table followed by a blank line.
// Cells are written verbatim; a cell containing '|' breaks the table.
func WriteTable(w io.Writer, headings []string, rows [][]string) error {
	if len(rows) == 0 {
		return ErrEmptyTable
	}
	for i, r := range rows {
		if len(r) != len(headings) {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedRow, i, len(r), len(headings))
		}
	}
	var b strings.Builder
	writeRow(&b, headings)
	sep := make([]string, len(headings))
	for i := range sep {
		sep[i] = "-"
	}
	writeRow(&b, sep)
	for _, r := range rows {
		writeRow(&b, r)
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	b.WriteString(strings.Join(cells, "|"))
	b.WriteString("|\n")
}

// Options controls the summary document.
type Options struct {
	// Top is how many puzzles each table lists at most.
	Top int
	// LinkBase is the solver UI address used in puzzle links.
	LinkBase string
}

// DefaultOptions matches the long-standing output: three puzzles per table, localhost links.
func DefaultOptions() Options {
	return Options{Top: 3, LinkBase: types.DefaultLinkBase}
}

// Section is one metric's share of the summary.
type Section struct {
	Metric    analysis.Metric
	Ranked    []analysis.PuzzleDelta
	Improved  []analysis.PuzzleDelta
	Regressed []analysis.PuzzleDelta
}

// BuildSections ranks d by guesses and by time.
func BuildSections(d types.Data, top int) ([]Section, error) {
	var out []Section
	for _, m := range []analysis.Metric{analysis.GuessesMetric, analysis.TimeMetric} {
		ranked, err := analysis.Rank(m, d)
		if err != nil {
			return nil, err
		}
		out = append(out, Section{
			Metric:    m,
			Ranked:    ranked,
			Improved:  analysis.Improved(ranked, top),
			Regressed: analysis.Regressed(ranked, top),
		})
	}
	return out, nil
}

// WriteSummary writes the guesses and time summaries for d.
func WriteSummary(w io.Writer, d types.Data, opts Options) error {
	sections, err := BuildSections(d, opts.Top)
	if err != nil {
		return err
	}
	return WriteSections(w, sections, opts.LinkBase)
}

// WriteSections writes already ranked sections, one "## <Metric> summary" block each.
func WriteSections(w io.Writer, sections []Section, linkBase string) error {
	for _, s := range sections {
		if err := writeSection(w, s, linkBase); err != nil {
			return err
		}
	}
	return nil
}

func writeSection(w io.Writer, s Section, linkBase string) error {
	if _, err := fmt.Fprintf(w, "## %s summary\n", s.Metric.Name); err != nil {
		return err
	}
	if err := writeCategory(w, s, s.Improved, "decrease", linkBase); err != nil {
		return err
	}
	return writeCategory(w, s, s.Regressed, "increase", linkBase)
}

func writeCategory(w io.Writer, s Section, pds []analysis.PuzzleDelta, direction, linkBase string) error {
	noun := s.Metric.Noun
	if len(pds) == 0 {
		_, err := fmt.Fprintf(w, "**No puzzles %sd in %s.**\n", direction, noun)
		return err
	}
	if _, err := fmt.Fprintf(w, "Biggest %s in %s:\n\n", direction, noun); err != nil {
		return err
	}
	return WriteTable(w, headings(s.Metric), rows(pds, linkBase))
}

func headings(m analysis.Metric) []string {
	return []string{
		"localhost puzzle link",
		"Median base " + m.Noun,
		"Median head " + m.Noun,
		m.Name + " delta",
	}
}

func rows(pds []analysis.PuzzleDelta, linkBase string) [][]string {
	out := make([][]string, 0, len(pds))
	for _, pd := range pds {
		out = append(out, []string{
			pd.Puzzle.LocalhostLink(linkBase),
			strconv.Itoa(pd.Base),
			strconv.Itoa(pd.Head),
			strconv.Itoa(pd.Delta),
		})
	}
	return out
}
