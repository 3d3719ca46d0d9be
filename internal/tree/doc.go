// Package tree provides the editable sibling tree underneath the formula editor.
//
// A tree is made of Nodes of unbounded branching factor. Every node links to its
// parent, to its left and right siblings, and to the two ends of its own child
// sequence. All structural edits are O(1) pointer relinks:
//
//   - Node.Adopt inserts a detached node between two adjacent children
//   - Node.Disown unlinks a node, leaving its own links describing the old position
//   - Fragment.Adopt and Fragment.Disown move a contiguous run of siblings as a unit
//
// A Point names a gap between two siblings (or at an end of a parent's children)
// and is what cursors are made of.
//
// Invariants:
//
//   - if n.Left() != nil then n.Left().Right() == n, and symmetrically for Right
//   - a child without a left sibling is its parent's left end, and symmetrically
//   - both ends of a parent are reachable from every child by following siblings
//
// Violations of these invariants are programming errors. They are never
// corrected silently: the offending operation panics with an *InvariantError.
//
// Node kinds plug behavior into generic traversals through a closed set of
// operations (see Op). PostOrder runs an operation bottom-up over a subtree and
// Bubble runs it from a node up to the root; kinds opt in by implementing the
// matching hook interface and everything else is a no-op.
//
// Thread Safety:
//
// Trees assume a single writer. Nothing in this package locks.
package tree
