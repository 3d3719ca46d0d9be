package parse

import (
	"slices"
)

// Result is the outcome of running a parser at one index.
type Result struct {
	// OK reports success.
	OK bool

	// Index is where the next parser starts. On failure it is the index the
	// failing parser was started at.
	Index int

	// Value is the parsed value on success.
	Value any

	// Furthest is the largest index at which any branch failed, or -1 when
	// nothing has failed yet.
	Furthest int

	// Expected lists what was expected at Furthest.
	Expected []string
}

// Success returns a successful result ending at index i.
func Success(i int, v any) Result {
	return Result{OK: true, Index: i, Value: v, Furthest: -1}
}

// Failure returns a failed result at index i.
func Failure(i int, expected string) Result {
	return Result{Index: i, Furthest: i, Expected: []string{expected}}
}

// merge carries the furthest failure of an earlier result into a later one.
// Expectations at the same furthest index are combined.
func merge(next, prev Result) Result {
	if next.Furthest > prev.Furthest {
		return next
	}
	if next.Furthest == prev.Furthest {
		next.Expected = union(prev.Expected, next.Expected)
	} else {
		next.Expected = prev.Expected
	}
	next.Furthest = prev.Furthest
	return next
}

func union(a, b []string) []string {
	out := slices.Clone(a)
	for _, s := range b {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

// Parser parses a prefix of its input. The zero Parser is not usable.
type Parser struct {
	run func(input string, i int) Result
}

// New wraps fn as a Parser. fn must not read input before index i.
func New(fn func(input string, i int) Result) Parser {
	return Parser{run: fn}
}

// Run runs the parser on input starting at byte offset i.
func (p Parser) Run(input string, i int) Result {
	return p.run(input, i)
}

// Parse runs the parser over the whole input. The parser must consume the
// input completely; otherwise, or when it fails, Parse returns a *ParseError
// for the furthest failure.
func (p Parser) Parse(input string) (any, error) {
	r := p.Skip(EOF).run(input, 0)
	if r.OK {
		return r.Value, nil
	}
	return nil, &ParseError{Input: input, Index: r.Furthest, Expected: r.Expected}
}
