// Package selector turns the measurement argument of the graph tool into a function over runs.
//
// A selector is either one of the named fields (guesses, time, solve, create) or an arithmetic
// expression over the run's JSON field names, e.g. "solveElapsedTimeMs + createElapsedTimeMs".
// Expressions are evaluated with expr-lang, which has no access to the host, so the argument
// cannot do anything beyond computing a number from one run.
package selector

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/dclamage/SudokuVariantSolverJS/src/types"
)

var (
	// ErrEmpty is returned for a blank selector argument.
	ErrEmpty = errors.New("empty selector")
	// ErrNotNumeric is returned when an expression yields something other than a number.
	ErrNotNumeric = errors.New("selector result is not a number")
)

// Selector extracts one numeric measurement from a run.
type Selector struct {
	// Name is the canonical field name for named selectors, or the expression text.
	Name string
	fn   func(types.RunData) (float64, error)
}

type field struct {
	name string
	get  func(types.RunData) int
}

var fields = []field{
	{"guesses", func(r types.RunData) int { return r.Guesses }},
	{"time", func(r types.RunData) int { return r.TotalTimeMs() }},
	{"solve", func(r types.RunData) int { return r.SolveElapsedTimeMs }},
	{"create", func(r types.RunData) int { return r.CreateElapsedTimeMs }},
}

// aliases maps lowercase input spellings onto canonical field names.
var aliases = map[string]string{
	"guesses":             "guesses",
	"time":                "time",
	"totaltimems":         "time",
	"solve":               "solve",
	"solveelapsedtimems":  "solve",
	"create":              "create",
	"createelapsedtimems": "create",
}

// Names lists the named selectors in display order.
func Names() []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.name)
	}
	return out
}

// Parse resolves text to a named selector or compiles it as an expression.
func Parse(text string) (Selector, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return Selector{}, ErrEmpty
	}
	if canon, ok := aliases[strings.ToLower(t)]; ok {
		for _, f := range fields {
			if f.name == canon {
				get := f.get
				return Selector{Name: canon, fn: func(r types.RunData) (float64, error) {
					return float64(get(r)), nil
				}}, nil
			}
		}
	}
	return compile(t)
}

// MustParse is Parse for selectors known at compile time.
func MustParse(text string) Selector {
	s, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return s
}

func env(r types.RunData) map[string]any {
	return map[string]any{
		"title":               r.Title,
		"author":              r.Author,
		"puzzle":              r.Puzzle,
		"guesses":             r.Guesses,
		"solveElapsedTimeMs":  r.SolveElapsedTimeMs,
		"createElapsedTimeMs": r.CreateElapsedTimeMs,
	}
}

func compile(text string) (Selector, error) {
	program, err := expr.Compile(text, expr.Env(env(types.RunData{})), expr.AsFloat64())
	if err != nil {
		return Selector{}, fmt.Errorf("compile selector %q (named selectors: %s): %w", text, strings.Join(Names(), ", "), err)
	}
	return Selector{Name: text, fn: func(r types.RunData) (float64, error) {
		return run(program, r)
	}}, nil
}

func run(program *vm.Program, r types.RunData) (float64, error) {
	out, err := expr.Run(program, env(r))
	if err != nil {
		return 0, err
	}
	switch v := out.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return 0, fmt.Errorf("%w: got %T", ErrNotNumeric, out)
}

// Value applies the selector to one run.
func (s Selector) Value(r types.RunData) (float64, error) {
	if s.fn == nil {
		return 0, ErrEmpty
	}
	return s.fn(r)
}

// Apply maps runs in order. The first failing run aborts with its index and puzzle in the error.
func (s Selector) Apply(rs []types.RunData) ([]float64, error) {
	out := make([]float64, 0, len(rs))
	for i, r := range rs {
		v, err := s.Value(r)
		if err != nil {
			return nil, fmt.Errorf("run %d (puzzle %q): %w", i, r.Puzzle, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// FieldNames lists the identifiers available to expressions, sorted.
func FieldNames() []string {
	e := env(types.RunData{})
	out := make([]string, 0, len(e))
	for k := range e {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
