package parse

import (
	"fmt"
	"regexp"
	"regexp/syntax"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"
)

// String matches s exactly and yields it.
func String(s string) Parser {
	expected := strconv.Quote(s)
	return New(func(input string, i int) Result {
		if strings.HasPrefix(input[i:], s) {
			return Success(i+len(s), s)
		}
		return Failure(i, expected)
	})
}

// Regexp matches re at the current index and yields the matched text.
// It panics with an error wrapping ErrUnanchored unless re can only match at
// the start of the remaining input, that is, unless it begins with ^.
func Regexp(re *regexp.Regexp) Parser {
	if !anchored(re.String()) {
		panic(fmt.Errorf("parse: %w: /%s/", ErrUnanchored, re))
	}
	expected := "/" + re.String() + "/"
	return New(func(input string, i int) Result {
		loc := re.FindStringIndex(input[i:])
		if loc == nil {
			return Failure(i, expected)
		}
		return Success(i+loc[1], input[i:i+loc[1]])
	})
}

// Pattern compiles expr and returns Regexp for it. Unlike Regexp it reports a
// bad or unanchored pattern as an error.
func Pattern(expr string) (Parser, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Parser{}, fmt.Errorf("parse: pattern %q: %w", expr, err)
	}
	if !anchored(expr) {
		return Parser{}, fmt.Errorf("parse: %w: /%s/", ErrUnanchored, expr)
	}
	return Regexp(re), nil
}

func mustPattern(expr string) Parser {
	p, err := Pattern(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// anchored reports whether expr can only match at the beginning of text.
func anchored(expr string) bool {
	re, err := syntax.Parse(expr, syntax.Perl)
	if err != nil {
		return false
	}
	return beginsText(re)
}

func beginsText(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpBeginText:
		return true
	case syntax.OpConcat, syntax.OpCapture:
		return len(re.Sub) > 0 && beginsText(re.Sub[0])
	case syntax.OpAlternate:
		for _, sub := range re.Sub {
			if !beginsText(sub) {
				return false
			}
		}
		return len(re.Sub) > 0
	default:
		return false
	}
}

var (
	// Letter matches one ASCII letter.
	Letter = mustPattern(`^[a-zA-Z]`).Desc("a letter")

	// Digit matches one ASCII digit.
	Digit = mustPattern(`^[0-9]`).Desc("a digit")

	// Whitespace matches one or more whitespace characters.
	Whitespace = mustPattern(`^\s+`).Desc("whitespace")

	// OptWhitespace matches zero or more whitespace characters.
	OptWhitespace = mustPattern(`^\s*`)

	// Any matches any one character.
	Any = New(func(input string, i int) Result {
		if i >= len(input) {
			return Failure(i, "any character")
		}
		_, size := utf8.DecodeRuneInString(input[i:])
		return Success(i+size, input[i:i+size])
	})

	// All consumes and yields the rest of the input.
	All = New(func(input string, i int) Result {
		return Success(len(input), input[i:])
	})

	// EOF matches only at the end of input and yields nil.
	EOF = New(func(input string, i int) Result {
		if i < len(input) {
			return Failure(i, "EOF")
		}
		return Success(i, nil)
	})
)

// Succeed consumes nothing and yields v.
func Succeed(v any) Parser {
	return New(func(_ string, i int) Result {
		return Success(i, v)
	})
}

// Fail consumes nothing and fails, expecting msg.
func Fail(msg string) Parser {
	return New(func(_ string, i int) Result {
		return Failure(i, msg)
	})
}

// Lazy defers building a parser until it first runs, for recursive grammars.
func Lazy(fn func() Parser) Parser {
	var (
		once sync.Once
		p    Parser
	)
	return New(func(input string, i int) Result {
		once.Do(func() { p = fn() })
		return p.run(input, i)
	})
}
