// Package runs loads benchmark run records. Inputs are read completely before any processing.
package runs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dclamage/SudokuVariantSolverJS/src/logging"
	"github.com/dclamage/SudokuVariantSolverJS/src/types"
)

// ErrEmptyInput is returned when the input holds no JSON at all.
var ErrEmptyInput = errors.New("empty input")

// LoadRunsFile reads a JSON array of runs from path.
func LoadRunsFile(path string) ([]types.RunData, error) {
	defer logging.TimeTrack(time.Now(), "load "+path)
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []types.RunData
	if err := decode(b, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logging.Debugf("loaded %d runs from %s", len(out), path)
	return out, nil
}

// ReadData reads the combined [[base, head], ...] document from r.
func ReadData(r io.Reader) (types.Data, error) {
	defer logging.TimeTrack(time.Now(), "read combined document")
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	var out types.Data
	if err := decode(b, &out); err != nil {
		return nil, err
	}
	base, head := out.RunCount()
	logging.Debugf("loaded %d puzzles (%d base runs, %d head runs)", len(out), base, head)
	return out, nil
}

// LoadDataFile is ReadData over a file.
func LoadDataFile(path string) (types.Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := ReadData(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func decode(b []byte, v any) error {
	if len(bytes.TrimSpace(b)) == 0 {
		return ErrEmptyInput
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("parse JSON: %w", err)
	}
	return nil
}
