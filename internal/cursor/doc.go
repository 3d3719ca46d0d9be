// Package cursor implements the editing position within a tree and the
// selection built between that position and a frozen anticursor.
//
// A selection is computed at the level of the lowest common ancestor of the
// cursor and the anticursor. StartSelection records, for every ancestor of
// the anticursor, the child its path descends through, so Select finds the
// common ancestor with one map lookup per level walked up from the cursor.
// The result does not depend on which end is the cursor.
//
// Navigation (Move, SelectDir, DeleteDir, Seek) dispatches to hook
// interfaces implemented by node kinds and falls back to generic behavior.
package cursor
