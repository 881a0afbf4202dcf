package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dclamage/SudokuVariantSolverJS/src/types"
)

// helper to build one puzzle with the given guess counts per side
func puzzle(id string, base, head []int) types.PuzzleData {
	mk := func(gs []int) []types.RunData {
		out := make([]types.RunData, len(gs))
		for i, g := range gs {
			out[i] = types.RunData{Title: "T" + id, Author: "A", Puzzle: id, Guesses: g, SolveElapsedTimeMs: g * 10, CreateElapsedTimeMs: 1}
		}
		return out
	}
	return types.PuzzleData{Base: mk(base), Head: mk(head)}
}

func ids(pds []PuzzleDelta) []string {
	out := []string{}
	for _, pd := range pds {
		out = append(out, pd.Puzzle.ID())
	}
	return out
}

func TestMedian(t *testing.T) {
	_, err := Median([]int{})
	assert.True(t, errors.Is(err, ErrEmptySample))

	m, err := Median([]int{42})
	require.NoError(t, err)
	assert.Equal(t, 42, m)

	m, err = Median([]int{9, 3})
	require.NoError(t, err)
	assert.Equal(t, 3, m, "even length takes the lower central value")

	f, err := Median([]float64{4, 1, 3, 2})
	require.NoError(t, err)
	assert.Equal(t, 2.0, f)

	odd, _ := Median([]int{5, 1, 4, 2, 3})
	assert.Equal(t, 3, odd)
}

func TestMedianOrderInvariantAndNonMutating(t *testing.T) {
	xs := []int{7, 2, 9, 4, 4, 1}
	perms := [][]int{{1, 2, 4, 4, 7, 9}, {9, 7, 4, 4, 2, 1}, {4, 9, 1, 7, 2, 4}}
	want, _ := Median(xs)
	for _, p := range perms {
		got, err := Median(p)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, []int{7, 2, 9, 4, 4, 1}, xs)
}

func TestDelta(t *testing.T) {
	p := puzzle("p", []int{5}, []int{3})
	pd, err := Delta(GuessesMetric, p)
	require.NoError(t, err)
	assert.Equal(t, 5, pd.Base)
	assert.Equal(t, 3, pd.Head)
	assert.Equal(t, -2, pd.Delta)

	swapped, err := Delta(GuessesMetric, types.PuzzleData{Base: p.Head, Head: p.Base})
	require.NoError(t, err)
	assert.Equal(t, -pd.Delta, swapped.Delta)

	td, err := Delta(TimeMetric, p)
	require.NoError(t, err)
	assert.Equal(t, 31-51, td.Delta)
}

func TestDeltaEmptySide(t *testing.T) {
	_, err := Delta(GuessesMetric, puzzle("p", []int{1}, nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptySample))
	assert.Contains(t, err.Error(), "head guesses")
}

func TestRankImprovedRegressed(t *testing.T) {
	d := types.Data{
		puzzle("a", []int{10}, []int{4}),  // -6
		puzzle("b", []int{10}, []int{12}), // +2
		puzzle("c", []int{10}, []int{9}),  // -1
		puzzle("d", []int{10}, []int{10}), // 0
		puzzle("e", []int{10}, []int{20}), // +10
		puzzle("f", []int{10}, []int{7}),  // -3
		puzzle("g", []int{10}, []int{11}), // +1
	}
	ranked, err := Rank(GuessesMetric, d)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "f", "c", "d", "g", "b", "e"}, ids(ranked))

	assert.Equal(t, []string{"a", "f", "c"}, ids(Improved(ranked, 3)))
	assert.Equal(t, []string{"e", "b", "g"}, ids(Regressed(ranked, 3)))
	assert.Equal(t, Totals{Improved: 3, Regressed: 3, Unchanged: 1}, CountTotals(ranked))
}

func TestSelectionKeepsOnlyCorrectSign(t *testing.T) {
	d := types.Data{
		puzzle("a", []int{5}, []int{3}), // -2
		puzzle("b", []int{5}, []int{5}), // 0
		puzzle("c", []int{5}, []int{5}), // 0
	}
	ranked, err := Rank(GuessesMetric, d)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(Improved(ranked, 3)))
	assert.Empty(t, Regressed(ranked, 3))
	assert.Empty(t, Improved(ranked, 0))
	assert.Empty(t, Regressed(nil, 3))
}

func TestRankStableUnderTies(t *testing.T) {
	d := types.Data{
		puzzle("x", []int{4}, []int{1}), // -3
		puzzle("y", []int{9}, []int{6}), // -3
		puzzle("z", []int{3}, []int{0}), // -3
		puzzle("w", []int{8}, []int{5}), // -3
		puzzle("u", []int{1}, []int{4}), // +3
		puzzle("v", []int{1}, []int{4}), // +3
	}
	ranked, err := Rank(GuessesMetric, d)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z"}, ids(Improved(ranked, 3)))
	// reversed tail is v, u, w; w did not regress
	assert.Equal(t, []string{"v", "u"}, ids(Regressed(ranked, 3)))
}

func TestRankUsesLowerMedianPerSide(t *testing.T) {
	d := types.Data{puzzle("m", []int{8, 2, 6, 4}, []int{1, 100})}
	ranked, err := Rank(GuessesMetric, d)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, 4, ranked[0].Base)
	assert.Equal(t, 1, ranked[0].Head)
	assert.Equal(t, -3, ranked[0].Delta)
}
