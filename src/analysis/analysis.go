// Package analysis aggregates base/head benchmark runs into per-puzzle comparisons.
//
// Design notes:
//   - Medians are lower medians: for an even count the smaller of the two central values is taken,
//     never their mean, so a median is always a value some run actually produced.
//   - Delta is head minus base. Positive means head got worse (more guesses / more time).
//   - Rankings use a stable sort so puzzles with equal deltas keep input order.
package analysis

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/dclamage/SudokuVariantSolverJS/src/types"
)

// ErrEmptySample is returned when a median is requested over no values.
var ErrEmptySample = errors.New("median of empty sample")

// Median returns the lower median of xs without modifying xs.
func Median[T cmp.Ordered](xs []T) (T, error) {
	var zero T
	if len(xs) == 0 {
		return zero, ErrEmptySample
	}
	cp := slices.Clone(xs)
	slices.Sort(cp)
	return cp[(len(cp)-1)/2], nil
}

// Metric names one integer measurement of a run.
type Metric struct {
	Name  string
	// Noun is the lowercase word used in report prose ("guesses", "time").
	Noun  string
	Value func(types.RunData) int
}

var (
	GuessesMetric = Metric{Name: "Guesses", Noun: "guesses", Value: func(r types.RunData) int { return r.Guesses }}
	TimeMetric    = Metric{Name: "Time", Noun: "time", Value: types.RunData.TotalTimeMs}
)

// MedianOf is the lower median of m over runs.
func MedianOf(m Metric, rs []types.RunData) (int, error) {
	vals := make([]int, len(rs))
	for i, r := range rs {
		vals[i] = m.Value(r)
	}
	return Median(vals)
}

// PuzzleDelta is one puzzle's medians on both sides and their difference.
type PuzzleDelta struct {
	Puzzle types.PuzzleData
	Base   int
	Head   int
	Delta  int
}

// Delta computes head median minus base median for one puzzle.
func Delta(m Metric, p types.PuzzleData) (PuzzleDelta, error) {
	base, err := MedianOf(m, p.Base)
	if err != nil {
		return PuzzleDelta{}, fmt.Errorf("puzzle %q base %s: %w", p.ID(), m.Noun, err)
	}
	head, err := MedianOf(m, p.Head)
	if err != nil {
		return PuzzleDelta{}, fmt.Errorf("puzzle %q head %s: %w", p.ID(), m.Noun, err)
	}
	return PuzzleDelta{Puzzle: p, Base: base, Head: head, Delta: head - base}, nil
}

// Rank computes every puzzle's delta and orders them ascending (most improved first).
func Rank(m Metric, d types.Data) ([]PuzzleDelta, error) {
	out := make([]PuzzleDelta, 0, len(d))
	for _, p := range d {
		pd, err := Delta(m, p)
		if err != nil {
			return nil, err
		}
		out = append(out, pd)
	}
	slices.SortStableFunc(out, func(a, b PuzzleDelta) int { return cmp.Compare(a.Delta, b.Delta) })
	return out, nil
}

// Improved returns up to n entries from the front of an ascending ranking that strictly improved.
func Improved(ranked []PuzzleDelta, n int) []PuzzleDelta {
	if n <= 0 {
		return nil
	}
	var out []PuzzleDelta
	for _, pd := range ranked[:min(n, len(ranked))] {
		if pd.Delta < 0 {
			out = append(out, pd)
		}
	}
	return out
}

// Regressed returns up to n entries from the back of an ascending ranking that strictly regressed,
// worst first.
func Regressed(ranked []PuzzleDelta, n int) []PuzzleDelta {
	if n <= 0 {
		return nil
	}
	tail := ranked[len(ranked)-min(n, len(ranked)):]
	var out []PuzzleDelta
	for i := len(tail) - 1; i >= 0; i-- {
		if tail[i].Delta > 0 {
			out = append(out, tail[i])
		}
	}
	return out
}

// Totals counts how many puzzles improved, regressed or stayed equal in a ranking.
type Totals struct {
	Improved, Regressed, Unchanged int
}

// CountTotals tallies ranked deltas by sign.
func CountTotals(ranked []PuzzleDelta) Totals {
	var t Totals
	for _, pd := range ranked {
		switch {
		case pd.Delta < 0:
			t.Improved++
		case pd.Delta > 0:
			t.Regressed++
		default:
			t.Unchanged++
		}
	}
	return t
}
