package parse

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustParse(t *testing.T, p Parser, input string) any {
	t.Helper()
	v, err := p.Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", input, err)
	}
	return v
}

func mustFail(t *testing.T, p Parser, input string) *ParseError {
	t.Helper()
	v, err := p.Parse(input)
	if err == nil {
		t.Fatalf("Parse(%q) = %v, want error", input, v)
	}
	if !errors.Is(err, ErrParse) {
		t.Errorf("Parse(%q) error %v does not wrap ErrParse", input, err)
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse(%q) error %T is not a *ParseError", input, err)
	}
	return pe
}

func TestLaws(t *testing.T) {
	x, y := String("x"), String("y")

	if got := mustParse(t, x, "x"); got != "x" {
		t.Errorf(`String("x").Parse("x") = %v, want "x"`, got)
	}
	mustFail(t, x, "y")

	xy := x.Then(y)
	if got := mustParse(t, xy, "xy"); got != "y" {
		t.Errorf(`x.Then(y).Parse("xy") = %v, want "y"`, got)
	}
	mustFail(t, xy, "xz")

	if diff := cmp.Diff([]any{"x", "y", "z"}, mustParse(t, Letter.Many(), "xyz")); diff != "" {
		t.Errorf("Letter.Many() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{}, mustParse(t, Letter.Many(), "")); diff != "" {
		t.Errorf("Letter.Many() on empty input mismatch (-want +got):\n%s", diff)
	}

	three := Letter.Times(3).Then(Digit)
	if got := mustParse(t, three, "xyz1"); got != "1" {
		t.Errorf(`Letter.Times(3).Then(Digit).Parse("xyz1") = %v, want "1"`, got)
	}
	mustFail(t, three, "xy1")
}

func TestUnanchoredRegexp(t *testing.T) {
	tests := []struct {
		expr     string
		anchored bool
	}{
		{`.`, false},
		{`a^`, false},
		{`(?m)^a`, false},
		{`^.`, true},
		{`^[a-z]+`, true},
		{`(?i)^a`, true},
		{`(^a)b`, true},
		{`^a|^b`, true},
		{`(^ab|^c)d`, true},
		{`^a|b`, false},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := Pattern(tt.expr)
			if tt.anchored && err != nil {
				t.Errorf("Pattern(%q) error = %v", tt.expr, err)
			}
			if !tt.anchored && !errors.Is(err, ErrUnanchored) {
				t.Errorf("Pattern(%q) error = %v, want ErrUnanchored", tt.expr, err)
			}
		})
	}
}

func TestRegexpPanicsAtConstruction(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrUnanchored) {
			t.Errorf("Regexp(/./) panicked with %v, want ErrUnanchored", r)
		}
	}()
	Regexp(regexp.MustCompile(`.`))
	t.Error("Regexp(/./) should panic")
}

func TestPatternBadSyntax(t *testing.T) {
	if _, err := Pattern(`^(`); err == nil {
		t.Error("Pattern with bad syntax should fail")
	}
}

func TestPrimitives(t *testing.T) {
	tests := []struct {
		name  string
		p     Parser
		input string
		want  any
	}{
		{"any ascii", Any, "q", "q"},
		{"any multibyte", Any, "π", "π"},
		{"digit", Digit, "7", "7"},
		{"letter", Letter, "Q", "Q"},
		{"all", String("a").Then(All), "abc", "bc"},
		{"all empty", All, "", ""},
		{"opt whitespace", OptWhitespace.Then(String("a")), "  a", "a"},
		{"no whitespace", OptWhitespace.Then(String("a")), "a", "a"},
		{"whitespace", Whitespace, " \t", " \t"},
		{"eof", EOF, "", nil},
		{"succeed", Succeed(42), "", 42},
		{"regexp", Regexp(regexp.MustCompile(`^[0-9]+`)), "123", "123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustParse(t, tt.p, tt.input); got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPrimitiveFailures(t *testing.T) {
	tests := []struct {
		name  string
		p     Parser
		input string
	}{
		{"any at end", Any, ""},
		{"digit", Digit, "a"},
		{"letter", Letter, "1"},
		{"whitespace", Whitespace, ""},
		{"fail", Fail("nope"), ""},
		{"trailing input", String("a"), "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mustFail(t, tt.p, tt.input)
		})
	}
}

func TestOrBacktracks(t *testing.T) {
	p := String("ab").Or(String("ac"))
	if got := mustParse(t, p, "ac"); got != "ac" {
		t.Errorf(`Parse("ac") = %v, want "ac"`, got)
	}

	// The first branch consumed "a" before failing; the second still starts at 0.
	q := String("a").Then(String("b")).Or(String("a").Then(String("c")))
	if got := mustParse(t, q, "ac"); got != "c" {
		t.Errorf(`Parse("ac") = %v, want "c"`, got)
	}

	if got := mustParse(t, Alt(String("1"), String("2"), String("3")), "3"); got != "3" {
		t.Errorf(`Alt Parse("3") = %v, want "3"`, got)
	}
	mustFail(t, Alt(), "")
}

func TestSkipMapResult(t *testing.T) {
	p := Digit.Skip(String(";")).Map(func(v any) any {
		n, _ := strconv.Atoi(v.(string))
		return n * 2
	})
	if got := mustParse(t, p, "4;"); got != 8 {
		t.Errorf(`Parse("4;") = %v, want 8`, got)
	}
	mustFail(t, p, "4")

	if got := mustParse(t, String("true").Result(true), "true"); got != true {
		t.Errorf("Result(true) = %v, want true", got)
	}
}

func TestChainBranches(t *testing.T) {
	// A digit says how many letters follow.
	counted := Digit.Chain(func(v any) Parser {
		n, _ := strconv.Atoi(v.(string))
		if n == 0 {
			return Fail("a non-zero count")
		}
		return Letter.Times(n)
	})
	if diff := cmp.Diff([]any{"a", "b"}, mustParse(t, counted, "2ab")); diff != "" {
		t.Errorf("Chain mismatch (-want +got):\n%s", diff)
	}
	mustFail(t, counted, "3ab")

	pe := mustFail(t, counted, "0")
	if diff := cmp.Diff([]string{"a non-zero count"}, pe.Expected); diff != "" {
		t.Errorf("expected mismatch (-want +got):\n%s", diff)
	}
}

func TestRepetition(t *testing.T) {
	tests := []struct {
		name  string
		p     Parser
		input string
		want  []any
		fail  bool
	}{
		{"range min", Letter.TimesRange(1, 3), "a", []any{"a"}, false},
		{"range max", Letter.TimesRange(1, 3), "abc", []any{"a", "b", "c"}, false},
		{"range over max", Letter.TimesRange(1, 3), "abcd", nil, true},
		{"range under min", Letter.TimesRange(2, 3), "a", nil, true},
		{"at least met", Letter.AtLeast(2), "abcd", []any{"a", "b", "c", "d"}, false},
		{"at least unmet", Letter.AtLeast(2), "a", nil, true},
		{"times zero", Letter.Times(0), "", []any{}, false},
		{"sep by", Digit.SepBy(String(",")), "1,2,3", []any{"1", "2", "3"}, false},
		{"sep by empty", Digit.SepBy(String(",")), "", []any{}, false},
		{"sep by trailing", Digit.SepBy(String(",")), "1,", nil, true},
		{"seq", Seq(Letter, Digit, Letter), "a1b", []any{"a", "1", "b"}, false},
		{"seq short", Seq(Letter, Digit, Letter), "a1", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.fail {
				mustFail(t, tt.p, tt.input)
				return
			}
			if diff := cmp.Diff(tt.want, mustParse(t, tt.p, tt.input)); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestManyStopsOnEmptyMatch(t *testing.T) {
	if diff := cmp.Diff([]any{}, mustParse(t, OptWhitespace.Many(), "")); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLazyRecursion(t *testing.T) {
	// nested := "(" nested ")" | "x"
	var nested Parser
	nested = Lazy(func() Parser {
		return String("(").Then(nested).Skip(String(")")).Or(String("x"))
	})
	if got := mustParse(t, nested, "((x))"); got != "x" {
		t.Errorf(`Parse("((x))") = %v, want "x"`, got)
	}
	mustFail(t, nested, "((x)")
}

func TestFurthestFailure(t *testing.T) {
	p := Alt(
		String("abc"),
		String("a").Then(String("bd")),
		String("a").Then(String("be")),
	)
	pe := mustFail(t, p, "abx")

	if pe.Index != 1 {
		t.Errorf("Index = %d, want 1", pe.Index)
	}
	if diff := cmp.Diff([]string{`"bd"`, `"be"`}, pe.Expected); diff != "" {
		t.Errorf("Expected mismatch (-want +got):\n%s", diff)
	}
	msg := pe.Error()
	if !strings.Contains(msg, "expected one of") || !strings.Contains(msg, "'bx'") {
		t.Errorf("Error() = %q", msg)
	}
}

func TestErrorAtEOF(t *testing.T) {
	pe := mustFail(t, String("ab"), "a")
	if want := `parse error: expected "ab" at 'a'`; pe.Error() != want {
		t.Errorf("Error() = %q, want %q", pe.Error(), want)
	}

	pe = mustFail(t, String("a").Then(String("b")), "a")
	if want := `parse error: expected "b" at EOF`; pe.Error() != want {
		t.Errorf("Error() = %q, want %q", pe.Error(), want)
	}
}

func TestDesc(t *testing.T) {
	pe := mustFail(t, Regexp(regexp.MustCompile(`^[0-9]+`)).Desc("a number"), "x")
	if diff := cmp.Diff([]string{"a number"}, pe.Expected); diff != "" {
		t.Errorf("Expected mismatch (-want +got):\n%s", diff)
	}
}

func TestDescKeepsDeeperFailure(t *testing.T) {
	pair := String("(").Then(Digit).Skip(String(")")).Desc("a pair")

	pe := mustFail(t, pair, "x")
	if pe.Index != 0 || !cmp.Equal([]string{"a pair"}, pe.Expected) {
		t.Errorf("failure at start = %d %v, want 0 [a pair]", pe.Index, pe.Expected)
	}
	pe = mustFail(t, pair, "(x")
	if pe.Index != 1 || !cmp.Equal([]string{"a digit"}, pe.Expected) {
		t.Errorf("failure inside = %d %v, want 1 [a digit]", pe.Index, pe.Expected)
	}
}

func TestRunExposesResult(t *testing.T) {
	r := String("ab").Run("xab", 1)
	if !r.OK || r.Index != 3 || r.Value != "ab" {
		t.Errorf("Run() = %+v", r)
	}
	r = String("ab").Run("xab", 0)
	if r.OK || r.Furthest != 0 {
		t.Errorf("Run() = %+v, want failure at 0", r)
	}
}
