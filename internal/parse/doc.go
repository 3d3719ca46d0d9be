// Package parse is a small parser-combinator library over strings.
//
// A Parser is a value wrapping a function from an input string and a start
// index to a Result. Parsers are built from primitives (String, Regexp,
// Letter, Digit, Any, EOF, ...) and combined with methods (Then, Skip, Or,
// Many, Times, Map, ...). Alternation backtracks to the start index of the
// failed branch, so grammars can explore alternatives freely.
//
// Failures are ordinary values while parsing. Each Result carries the
// furthest index any branch reached and what was expected there, and
// Parser.Parse turns a final failure into a *ParseError naming that point.
//
//	num := parse.Regexp(regexp.MustCompile(`^[0-9]+`)).Map(atoi)
//	sum := num.SepBy(parse.String("+"))
//	v, err := sum.Parse("1+2+3")
//
// Values flow through parsers as any. Repetition and Seq produce []any.
package parse
