// Package notation defines the node kinds of a LaTeX-like math notation,
// the grammar that parses notation text into a tree of them, and the
// serializer that writes a tree back out.
//
// A document is a tree of blocks. A block holds letters, symbols and
// commands; a command holds a fixed number of blocks, its arguments:
//
//	\frac{a}{b^2}  =>  block(command frac(block(a), block(b, command ^(block(2)))))
//
// Commands and named symbols come from a Registry, which can be extended at
// run time. The grammar consults the registry whenever it meets a control
// sequence, so registrations are visible to grammars built earlier.
package notation
