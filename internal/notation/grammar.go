package notation

import (
	"fmt"
	"regexp"

	"github.com/dshills/mathfield/internal/parse"
	"github.com/dshills/mathfield/internal/tree"
)

// Grammar parses notation text into block trees.
//
//	sequence := block* ws
//	block    := ws ( "{" sequence "}" | command )
//	command  := control | letter | symbol
//	control  := ( operator | "\" ( word | ws | any ) ) arguments
//	optional := "[" block* ws "]"
//
// The arguments of a control sequence are read by the parser its registry
// spec provides.
type Grammar struct {
	reg      *Registry
	block    parse.Parser
	optBlock parse.Parser
	sequence parse.Parser
}

// NewGrammar builds the grammar over reg.
func NewGrammar(reg *Registry) *Grammar {
	g := &Grammar{reg: reg}

	variable := parse.Letter.Map(func(v any) any {
		return NewLetter(v.(string))
	})
	symbol := parse.Regexp(regexp.MustCompile(`^[^${}\\_^]`)).Map(func(v any) any {
		return NewSymbol("", v.(string))
	}).Desc("a symbol")

	operator := parse.Regexp(regexp.MustCompile(`^[^\\a-zA-Z0-9{}\[\]\s]`))
	word := parse.String(`\`).Then(parse.Alt(
		parse.Regexp(regexp.MustCompile(`^[a-zA-Z]+`)),
		parse.Whitespace.Result(" "),
		parse.Any,
	))
	control := parse.New(func(input string, i int) parse.Result {
		r := operator.Or(word).Run(input, i)
		if !r.OK {
			return r
		}
		spec, ok := g.reg.Lookup(r.Value.(string))
		if !ok {
			if input[i] == '\\' {
				return parse.Failure(i, "a known command")
			}
			return parse.Failure(i, "a command")
		}
		return spec.Parser(g).Run(input, r.Index)
	})
	command := parse.Alt(control, variable, symbol)

	group := parse.String("{").
		Then(parse.Lazy(func() parse.Parser { return g.sequence })).
		Skip(parse.String("}"))

	g.block = parse.OptWhitespace.Then(group.Or(command.Map(wrapBlock)))
	g.sequence = g.block.Many().Map(joinBlocks).Skip(parse.OptWhitespace)

	notBracket := g.block.Chain(func(v any) parse.Parser {
		if Latex(v.(*tree.Node)) == "]" {
			return parse.Fail("not ]")
		}
		return parse.Succeed(v)
	})
	g.optBlock = parse.String("[").
		Then(notBracket.Many().Map(joinBlocks).Skip(parse.OptWhitespace)).
		Skip(parse.String("]"))

	return g
}

// Block returns the parser for one argument: a braced group or a single
// command. It yields a block node.
func (g *Grammar) Block() parse.Parser {
	return g.block
}

// OptBlock returns the parser for a bracketed optional argument. It yields
// a block node.
func (g *Grammar) OptBlock() parse.Parser {
	return g.optBlock
}

// Sequence returns the parser for a whole notation string. It yields a
// block node holding everything parsed.
func (g *Grammar) Sequence() parse.Parser {
	return g.sequence
}

// Parse parses latex into a new, finalized block.
func (g *Grammar) Parse(latex string) (*tree.Node, error) {
	v, err := g.sequence.Parse(latex)
	if err != nil {
		return nil, fmt.Errorf("notation: %w", err)
	}
	block := v.(*tree.Node)
	block.PostOrder(tree.OpFinalize)
	return block, nil
}

func wrapBlock(v any) any {
	b := NewBlock()
	v.(*tree.Node).Adopt(b, nil, nil)
	return b
}

func joinBlocks(v any) any {
	joined := NewBlock()
	for _, b := range v.([]any) {
		b.(*tree.Node).Children().Adopt(joined, joined.End(tree.Right), nil)
	}
	return joined
}
