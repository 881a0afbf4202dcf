package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dclamage/SudokuVariantSolverJS/src/logging"
	"github.com/dclamage/SudokuVariantSolverJS/src/types"
)

const onePuzzle = `[[
  [{"title":"Thermo","author":"Sam","puzzle":"th1","guesses":5,"solveElapsedTimeMs":40,"createElapsedTimeMs":4}],
  [{"title":"Thermo","author":"Sam","puzzle":"th1","guesses":3,"solveElapsedTimeMs":40,"createElapsedTimeMs":4}]
]]`

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { logging.SetLogLevel("info") })
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func TestSummaryEndToEnd(t *testing.T) {
	out, err := execute(t, onePuzzle)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "## Guesses summary\nBiggest decrease in guesses:\n\n"))
	assert.Contains(t, out, "|[Thermo by Sam](http://localhost:8080/?load=th1)|5|3|-2|\n")
	assert.Contains(t, out, "**No puzzles increased in guesses.**\n")
	assert.Contains(t, out, "## Time summary\n**No puzzles decreased in time.**\n**No puzzles increased in time.**\n")
}

func TestSummaryFlagsAndConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "cfg.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("link_base = \"http://cfg.test/\"\n"), 0o644))

	out, err := execute(t, onePuzzle, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "(http://cfg.test/?load=th1)")

	out, err = execute(t, onePuzzle, "--config", cfgPath, "--link-base", "http://flag.test")
	require.NoError(t, err)
	assert.Contains(t, out, "(http://flag.test/?load=th1)")

	_, err = execute(t, onePuzzle, "--top", "0")
	assert.Error(t, err)
}

func TestSummaryInputFileAndCharts(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "combined.json")
	require.NoError(t, os.WriteFile(in, []byte(onePuzzle), 0o644))
	chart := filepath.Join(dir, "deltas.png")

	out, err := execute(t, "", "--input", in, "--chart", chart)
	require.NoError(t, err)
	assert.Contains(t, out, "|-2|")

	for _, p := range []string{chart, filepath.Join(dir, "deltas_time.png")} {
		f, err := os.Open(p)
		require.NoError(t, err, p)
		_, err = png.Decode(f)
		f.Close()
		require.NoError(t, err, p)
	}
}

func TestSummaryErrors(t *testing.T) {
	_, err := execute(t, "")
	assert.Error(t, err)

	_, err = execute(t, `[[[{"guesses":1}]]]`)
	assert.Error(t, err)

	_, err = execute(t, `[[[],[{"guesses":1}]]]`)
	assert.Error(t, err, "a puzzle without base runs has no median")

	missing := strings.Replace(onePuzzle, `"guesses":5,`, "", 1)
	_, err = execute(t, missing)
	require.Error(t, err, "a run without guesses is not read as zero guesses")
	assert.ErrorIs(t, err, types.ErrMissingField)
	assert.Contains(t, err.Error(), `"guesses"`)

	_, err = execute(t, onePuzzle, "unexpected")
	assert.Error(t, err)

	_, err = execute(t, onePuzzle, "--log-level", "loud")
	assert.Error(t, err)
}
