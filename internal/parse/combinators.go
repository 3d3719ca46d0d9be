package parse

// Then runs p and then q, yielding q's value.
func (p Parser) Then(q Parser) Parser {
	return New(func(input string, i int) Result {
		r := p.run(input, i)
		if !r.OK {
			return r
		}
		return merge(q.run(input, r.Index), r)
	})
}

// Chain runs p and then the parser fn builds from p's value, yielding that
// parser's value. Returning Succeed or Fail from fn branches on the value.
func (p Parser) Chain(fn func(v any) Parser) Parser {
	return New(func(input string, i int) Result {
		r := p.run(input, i)
		if !r.OK {
			return r
		}
		return merge(fn(r.Value).run(input, r.Index), r)
	})
}

// Skip runs p and then q, yielding p's value.
func (p Parser) Skip(q Parser) Parser {
	return New(func(input string, i int) Result {
		r := p.run(input, i)
		if !r.OK {
			return r
		}
		next := merge(q.run(input, r.Index), r)
		if next.OK {
			next.Value = r.Value
		}
		return next
	})
}

// Map transforms p's value with fn.
func (p Parser) Map(fn func(v any) any) Parser {
	return New(func(input string, i int) Result {
		r := p.run(input, i)
		if r.OK {
			r.Value = fn(r.Value)
		}
		return r
	})
}

// Result yields v whenever p succeeds.
func (p Parser) Result(v any) Parser {
	return p.Map(func(any) any { return v })
}

// Or runs p and, if it fails, runs q from the same start index.
func (p Parser) Or(q Parser) Parser {
	return New(func(input string, i int) Result {
		r := p.run(input, i)
		if r.OK {
			return r
		}
		return merge(q.run(input, i), r)
	})
}

// Desc replaces what p reports as expected when it fails where it started.
// A failure further into the input keeps its own expectation.
func (p Parser) Desc(label string) Parser {
	return New(func(input string, i int) Result {
		r := p.run(input, i)
		if !r.OK && r.Furthest == i {
			r.Expected = []string{label}
		}
		return r
	})
}

// Many runs p as often as it succeeds and yields the values as []any.
// It never fails. A repetition that consumes nothing ends the loop.
func (p Parser) Many() Parser {
	return New(func(input string, i int) Result {
		values := []any{}
		acc := Success(i, nil)
		for {
			r := merge(p.run(input, acc.Index), acc)
			if !r.OK || r.Index == acc.Index {
				acc.Furthest, acc.Expected = r.Furthest, r.Expected
				break
			}
			values = append(values, r.Value)
			acc = r
		}
		acc.Value = values
		return acc
	})
}

// Times runs p exactly n times and yields the values as []any.
func (p Parser) Times(n int) Parser {
	return p.TimesRange(n, n)
}

// TimesRange runs p at least least and at most most times and yields the
// values as []any. It fails when p succeeds fewer than least times.
func (p Parser) TimesRange(least, most int) Parser {
	return New(func(input string, i int) Result {
		values := []any{}
		acc := Success(i, nil)
		for times := 0; times < most; times++ {
			r := merge(p.run(input, acc.Index), acc)
			if !r.OK {
				if times < least {
					r.Index = i
					return r
				}
				acc.Furthest, acc.Expected = r.Furthest, r.Expected
				break
			}
			values = append(values, r.Value)
			acc = r
		}
		acc.Value = values
		return acc
	})
}

// AtLeast runs p n or more times and yields the values as []any.
func (p Parser) AtLeast(n int) Parser {
	return Seq(p.Times(n), p.Many()).Map(func(v any) any {
		parts := v.([]any)
		return append(parts[0].([]any), parts[1].([]any)...)
	})
}

// SepBy matches zero or more p separated by sep and yields p's values as []any.
func (p Parser) SepBy(sep Parser) Parser {
	return p.SepBy1(sep).Or(Succeed([]any{}))
}

// SepBy1 is SepBy requiring at least one p.
func (p Parser) SepBy1(sep Parser) Parser {
	return Seq(p, sep.Then(p).Many()).Map(func(v any) any {
		parts := v.([]any)
		return append([]any{parts[0]}, parts[1].([]any)...)
	})
}

// Seq runs the parsers in order and yields their values as []any.
func Seq(ps ...Parser) Parser {
	return New(func(input string, i int) Result {
		values := make([]any, 0, len(ps))
		acc := Success(i, nil)
		for _, p := range ps {
			r := merge(p.run(input, acc.Index), acc)
			if !r.OK {
				r.Index = i
				return r
			}
			values = append(values, r.Value)
			acc = r
		}
		acc.Value = values
		return acc
	})
}

// Alt tries the parsers in order from the same start index and yields the
// first success.
func Alt(ps ...Parser) Parser {
	if len(ps) == 0 {
		return Fail("nothing")
	}
	p := ps[0]
	for _, q := range ps[1:] {
		p = p.Or(q)
	}
	return p
}
