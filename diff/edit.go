// Package diff computes edit scripts between two sequences of lines.
//
// An edit script is an ordered slice of [Edit] values. Concatenating the Orig sides of all edits
// reproduces the original sequence, concatenating the Final sides reproduces the final sequence.
// Scripts produced by this package are coalesced: no two adjacent edits share the same [Op].
package diff

import "slices"

// Op describes the kind of an edit.
//
//go:generate go tool stringer -type=Op
type Op int

const (
	Copy   Op = iota // Lines present unchanged on both sides
	Add              // Lines present only in the final sequence
	Delete           // Lines present only in the original sequence
	Change           // A block of original lines replaced by a block of final lines
)

// Edit is a single block of an edit script.
//
//   - For Copy, Orig and Final hold the same lines (for a mapped diff, lines that are equal after
//     projection)
//   - For Add, Orig is nil and Final holds the added lines
//   - For Delete, Orig holds the deleted lines and Final is nil
//   - For Change, both Orig and Final are non-empty
type Edit struct {
	Op    Op
	Orig  []string
	Final []string
}

func CopyEdit(lines []string) Edit         { return Edit{Copy, lines, lines} }
func AddEdit(lines []string) Edit          { return Edit{Add, nil, lines} }
func DeleteEdit(lines []string) Edit       { return Edit{Delete, lines, nil} }
func ChangeEdit(orig, final []string) Edit { return Edit{Change, orig, final} }

// OrigCount returns the number of original lines covered by e.
func (e Edit) OrigCount() int { return len(e.Orig) }

// FinalCount returns the number of final lines covered by e.
func (e Edit) FinalCount() int { return len(e.Final) }

func (e Edit) equal(f Edit) bool {
	return e.Op == f.Op && slices.Equal(e.Orig, f.Orig) && slices.Equal(e.Final, f.Final)
}

// Reverse returns the edit for the reversed comparison (final to original).
func (e Edit) Reverse() Edit {
	switch e.Op {
	case Add:
		return DeleteEdit(e.Final)
	case Delete:
		return AddEdit(e.Orig)
	case Change:
		return ChangeEdit(e.Final, e.Orig)
	default:
		return Edit{e.Op, e.Final, e.Orig}
	}
}

// Reverse returns a new edit script transforming the final sequence of edits back into the
// original one. The input is not modified.
func Reverse(edits []Edit) []Edit {
	if edits == nil {
		return nil
	}
	ret := make([]Edit, len(edits))
	for i, e := range edits {
		ret[i] = e.Reverse()
	}
	return ret
}

// Coalesce normalizes an arbitrary sequence of edits into a coalesced edit script: adjacent
// copies are joined, and every maximal run of non-copy edits becomes exactly one Add, Delete, or
// Change. Empty edits are dropped. The returned script never aliases the input slices.
func Coalesce(edits []Edit) []Edit {
	var b builder
	for _, e := range edits {
		switch e.Op {
		case Copy:
			b.copy(e.Orig, e.Final)
		default:
			b.delete(e.Orig...)
			b.insert(e.Final...)
		}
	}
	return b.finish()
}

// builder accumulates line-level matches, deletions, and insertions and emits a coalesced edit
// script. All emitted slices are owned by the builder.
type builder struct {
	edits []Edit
	orig  []string // Copied lines, original side
	final []string // Copied lines, final side
	dels  []string
	ins   []string
}

func (b *builder) match(lines ...string) {
	b.copy(lines, lines)
}

// copy records lines that are equal on both sides. orig and final must have the same length.
func (b *builder) copy(orig, final []string) {
	if len(orig) == 0 {
		return
	}
	b.flushChange()
	b.orig = append(b.orig, orig...)
	b.final = append(b.final, final...)
}

func (b *builder) delete(lines ...string) {
	if len(lines) == 0 {
		return
	}
	b.flushCopy()
	b.dels = append(b.dels, lines...)
}

func (b *builder) insert(lines ...string) {
	if len(lines) == 0 {
		return
	}
	b.flushCopy()
	b.ins = append(b.ins, lines...)
}

func (b *builder) flushCopy() {
	if len(b.orig) == 0 {
		return
	}
	b.edits = append(b.edits, Edit{Copy, b.orig, b.final})
	b.orig, b.final = nil, nil
}

func (b *builder) flushChange() {
	switch {
	case len(b.dels) > 0 && len(b.ins) > 0:
		b.edits = append(b.edits, ChangeEdit(b.dels, b.ins))
	case len(b.dels) > 0:
		b.edits = append(b.edits, DeleteEdit(b.dels))
	case len(b.ins) > 0:
		b.edits = append(b.edits, AddEdit(b.ins))
	}
	b.dels, b.ins = nil, nil
}

func (b *builder) finish() []Edit {
	b.flushCopy()
	b.flushChange()
	edits := b.edits
	b.edits = nil
	return edits
}
