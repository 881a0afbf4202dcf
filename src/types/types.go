// Package types holds the benchmark record shapes shared by the comparison tools.
package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DefaultLinkBase is where a locally served solver UI loads puzzles from.
const DefaultLinkBase = "http://localhost:8080/"

// ErrPairShape is returned when a puzzle entry is not a [base, head] pair.
var ErrPairShape = errors.New("puzzle entry must be a [base, head] pair")

// ErrMissingField is returned when a run record lacks one of its keys or holds null for it.
var ErrMissingField = errors.New("run is missing field")

var runKeys = []string{"title", "author", "puzzle", "guesses", "solveElapsedTimeMs", "createElapsedTimeMs"}

// RunData is one recorded execution of the solver against a puzzle.
type RunData struct {
	Title               string `json:"title"`
	Author              string `json:"author"`
	Puzzle              string `json:"puzzle"`
	Guesses             int    `json:"guesses"`
	SolveElapsedTimeMs  int    `json:"solveElapsedTimeMs"`
	CreateElapsedTimeMs int    `json:"createElapsedTimeMs"`
}

// UnmarshalJSON decodes a run and fails when any of its keys is absent, so a missing measurement is
// never read as zero.
func (r *RunData) UnmarshalJSON(b []byte) error {
	type plain RunData
	var out plain
	if err := json.Unmarshal(b, &out); err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	for _, k := range runKeys {
		if v, ok := fields[k]; !ok || string(v) == "null" {
			return fmt.Errorf("%w %q (puzzle %q)", ErrMissingField, k, out.Puzzle)
		}
	}
	*r = RunData(out)
	return nil
}

// TotalTimeMs is solve plus create time.
func (r RunData) TotalTimeMs() int { return r.SolveElapsedTimeMs + r.CreateElapsedTimeMs }

// PuzzleData groups the base and head runs of one puzzle. On the wire it is the
// two-element array [baseRuns, headRuns].
type PuzzleData struct {
	Base []RunData
	Head []RunData
}

// Data is every compared puzzle in input order.
type Data []PuzzleData

// UnmarshalJSON decodes the [baseRuns, headRuns] pair.
func (p *PuzzleData) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("%w: %v", ErrPairShape, err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("%w: got %d elements", ErrPairShape, len(pair))
	}
	var out PuzzleData
	if err := json.Unmarshal(pair[0], &out.Base); err != nil {
		return fmt.Errorf("base runs: %w", err)
	}
	if err := json.Unmarshal(pair[1], &out.Head); err != nil {
		return fmt.Errorf("head runs: %w", err)
	}
	*p = out
	return nil
}

// MarshalJSON encodes the pair shape so fixtures round-trip through the tools.
func (p PuzzleData) MarshalJSON() ([]byte, error) {
	base, head := p.Base, p.Head
	if base == nil {
		base = []RunData{}
	}
	if head == nil {
		head = []RunData{}
	}
	return json.Marshal([2][]RunData{base, head})
}

// first returns the run that names the puzzle: the first base run, falling back to the first head run.
func (p PuzzleData) first() RunData {
	if len(p.Base) > 0 {
		return p.Base[0]
	}
	if len(p.Head) > 0 {
		return p.Head[0]
	}
	return RunData{}
}

// Title is the puzzle title.
func (p PuzzleData) Title() string { return p.first().Title }

// Author is the puzzle author.
func (p PuzzleData) Author() string { return p.first().Author }

// ID is the puzzle identifier the solver UI loads.
func (p PuzzleData) ID() string { return p.first().Puzzle }

// LocalhostLink renders a markdown link that opens the puzzle in a solver UI served at linkBase.
func (p PuzzleData) LocalhostLink(linkBase string) string {
	if linkBase == "" {
		linkBase = DefaultLinkBase
	}
	if !strings.HasSuffix(linkBase, "/") {
		linkBase += "/"
	}
	return fmt.Sprintf("[%s by %s](%s?load=%s)", p.Title(), p.Author(), linkBase, p.ID())
}

// RunCount returns the number of base and head runs across all puzzles.
func (d Data) RunCount() (base, head int) {
	for _, p := range d {
		base += len(p.Base)
		head += len(p.Head)
	}
	return base, head
}
