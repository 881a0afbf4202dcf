package analysis

import (
	"fmt"

	"github.com/dclamage/SudokuVariantSolverJS/src/selector"
	"github.com/dclamage/SudokuVariantSolverJS/src/types"
)

// ComparePoints holds parallel base/head measurements; Base[i] and Head[i] describe the same
// run slot or puzzle.
type ComparePoints struct {
	Base []float64
	Head []float64
}

func (c ComparePoints) Len() int { return len(c.Base) }

// Zip pairs base[i] with head[i] after applying sel, stopping at the shorter side.
func Zip(sel selector.Selector, base, head []types.RunData) (ComparePoints, error) {
	bs, err := sel.Apply(base)
	if err != nil {
		return ComparePoints{}, fmt.Errorf("base: %w", err)
	}
	hs, err := sel.Apply(head)
	if err != nil {
		return ComparePoints{}, fmt.Errorf("head: %w", err)
	}
	n := min(len(bs), len(hs))
	return ComparePoints{Base: bs[:n], Head: hs[:n]}, nil
}

// PerRun flattens every puzzle's runs, pairing base run i with head run i inside each puzzle.
// N puzzles with M runs per side yield N*M points.
func PerRun(sel selector.Selector, d types.Data) (ComparePoints, error) {
	var out ComparePoints
	for _, p := range d {
		cp, err := Zip(sel, p.Base, p.Head)
		if err != nil {
			return ComparePoints{}, fmt.Errorf("puzzle %q: %w", p.ID(), err)
		}
		out.Base = append(out.Base, cp.Base...)
		out.Head = append(out.Head, cp.Head...)
	}
	return out, nil
}

// PerPuzzle reduces each side of each puzzle to its lower median: one point per puzzle.
func PerPuzzle(sel selector.Selector, d types.Data) (ComparePoints, error) {
	out := ComparePoints{Base: make([]float64, 0, len(d)), Head: make([]float64, 0, len(d))}
	for _, p := range d {
		b, err := medianSide(sel, p.Base)
		if err != nil {
			return ComparePoints{}, fmt.Errorf("puzzle %q base: %w", p.ID(), err)
		}
		h, err := medianSide(sel, p.Head)
		if err != nil {
			return ComparePoints{}, fmt.Errorf("puzzle %q head: %w", p.ID(), err)
		}
		out.Base = append(out.Base, b)
		out.Head = append(out.Head, h)
	}
	return out, nil
}

func medianSide(sel selector.Selector, rs []types.RunData) (float64, error) {
	vals, err := sel.Apply(rs)
	if err != nil {
		return 0, err
	}
	return Median(vals)
}
