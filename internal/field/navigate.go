package field

import (
	"github.com/dshills/mathfield/internal/tree"
)

// Move moves the cursor one step in dir, collapsing any selection.
func (f *Field) Move(dir tree.Direction) {
	before := f.begin()
	f.cursor.Move(dir)
	f.finish(before)
}

// MoveToEnd puts the cursor at the dir end of the whole field.
func (f *Field) MoveToEnd(dir tree.Direction) {
	before := f.begin()
	f.cursor.ClearSelection().EndSelection()
	f.cursor.InsAtDirEnd(dir, f.root)
	f.finish(before)
}

// Select grows or shrinks the selection one step in dir.
func (f *Field) Select(dir tree.Direction) {
	before := f.begin()
	f.cursor.SelectDir(dir)
	f.finish(before)
}

// SelectAll selects the whole field.
func (f *Field) SelectAll() {
	before := f.begin()
	f.cursor.SelectAll(f.root)
	f.finish(before)
}

// ClearSelection drops the selection, leaving the cursor where it is.
func (f *Field) ClearSelection() {
	before := f.begin()
	f.cursor.ClearSelection().EndSelection()
	f.finish(before)
}

// Delete deletes the selection, or one step in dir without one. It reports
// whether anything was deleted.
func (f *Field) Delete(dir tree.Direction) bool {
	before := f.begin()
	f.cursor.DeleteDir(dir)
	f.finish(before)
	return f.Latex() != before.latex
}

// Seek puts the cursor where a hit at relative horizontal offset x in [0, 1]
// of target lands. target must belong to this field.
func (f *Field) Seek(target *tree.Node, x float64) {
	before := f.begin()
	f.cursor.Seek(target, x)
	f.finish(before)
}
