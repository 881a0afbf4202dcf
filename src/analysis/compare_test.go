package analysis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dclamage/SudokuVariantSolverJS/src/selector"
	"github.com/dclamage/SudokuVariantSolverJS/src/types"
)

func grid(n, m int) types.Data {
	d := make(types.Data, 0, n)
	for i := 0; i < n; i++ {
		base := make([]int, m)
		head := make([]int, m)
		for j := 0; j < m; j++ {
			base[j] = 10*i + j
			head[j] = 10*i + j + 1
		}
		d = append(d, puzzle(fmt.Sprintf("p%d", i), base, head))
	}
	return d
}

func TestPerRunAndPerPuzzleCounts(t *testing.T) {
	sel := selector.MustParse("guesses")
	d := grid(4, 5)

	runs, err := PerRun(sel, d)
	require.NoError(t, err)
	assert.Equal(t, 4*5, runs.Len())
	assert.Equal(t, len(runs.Base), len(runs.Head))

	byPuzzle, err := PerPuzzle(sel, d)
	require.NoError(t, err)
	assert.Equal(t, 4, byPuzzle.Len())
	// lower median of 0..4 is 2, head is shifted by one
	assert.Equal(t, 2.0, byPuzzle.Base[0])
	assert.Equal(t, 3.0, byPuzzle.Head[0])
	assert.Equal(t, 32.0, byPuzzle.Base[3])
}

func TestPerRunPairsWithinPuzzle(t *testing.T) {
	d := types.Data{puzzle("a", []int{1, 2, 3}, []int{7, 8})}
	cp, err := PerRun(selector.MustParse("guesses"), d)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, cp.Base)
	assert.Equal(t, []float64{7, 8}, cp.Head)
}

func TestPerPuzzleEmptySideFails(t *testing.T) {
	d := types.Data{puzzle("a", nil, []int{1})}
	_, err := PerPuzzle(selector.MustParse("guesses"), d)
	require.ErrorIs(t, err, ErrEmptySample)
	assert.Contains(t, err.Error(), `puzzle "a" base`)
}

func TestZip(t *testing.T) {
	base := []types.RunData{{Guesses: 1}, {Guesses: 2}}
	head := []types.RunData{{Guesses: 3}, {Guesses: 4}, {Guesses: 5}}
	cp, err := Zip(selector.MustParse("guesses"), base, head)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, cp.Base)
	assert.Equal(t, []float64{3, 4}, cp.Head)
}
