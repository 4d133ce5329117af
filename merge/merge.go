// Package merge implements a three-way merge of two sequences of lines that were derived from a
// common origin.
//
// Both sides are compared against the origin and the two edit scripts are walked in lockstep.
// Regions where only one side changed, or both sides made the same change, are resolved
// automatically; all other regions are reported as conflicts.
package merge

import (
	"fmt"
	"slices"

	"znkr.io/diffkit/diff"
)

// Op describes the kind of a merge block.
//
//go:generate go tool stringer -type=Op
type Op int

const (
	Copy     Op = iota // Lines unchanged on all three sides
	Stable             // A region that could be resolved automatically
	Conflict           // A region changed differently on both sides
)

// Block is a region of the merge result.
type Block struct {
	Op     Op
	Orig   []string
	Final1 []string
	Final2 []string
}

// Merged returns the resolved lines of b or nil if b is a conflict.
func (b Block) Merged() []string {
	switch {
	case slices.Equal(b.Final1, b.Final2):
		return b.Final1
	case slices.Equal(b.Final1, b.Orig):
		return b.Final2
	case slices.Equal(b.Final2, b.Orig):
		return b.Final1
	default:
		return nil
	}
}

func (b Block) isConflict() bool {
	return !slices.Equal(b.Final1, b.Final2) && !slices.Equal(b.Final1, b.Orig) && !slices.Equal(b.Final2, b.Orig)
}

// Merge is the result of a three-way merge.
type Merge struct {
	blocks    []Block
	conflicts int
}

type options struct {
	diffOpts []diff.Option
}

// Option configures a merge.
type Option func(*options)

// WithEngine selects the diff engine used to compare the origin with both sides, see
// [diff.Lookup].
func WithEngine(name string) Option {
	return func(o *options) { o.diffOpts = append(o.diffOpts, diff.WithEngine(name)) }
}

// WithIndentHeuristic applies [diff.WithIndentHeuristic] to both comparisons.
func WithIndentHeuristic() Option {
	return func(o *options) { o.diffOpts = append(o.diffOpts, diff.WithIndentHeuristic()) }
}

// New merges final1 and final2, which have both been derived from origin.
func New(origin, final1, final2 []string, opts ...Option) (*Merge, error) {
	var o options
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&o)
	}

	d1, err := diff.New(origin, final1, o.diffOpts...)
	if err != nil {
		return nil, fmt.Errorf("comparing first side: %w", err)
	}
	d2, err := diff.New(origin, final2, o.diffOpts...)
	if err != nil {
		return nil, fmt.Errorf("comparing second side: %w", err)
	}
	return FromEdits(d1.Edits(), d2.Edits())
}

// FromEdits merges two edit scripts that share the same original sequence. It fails with
// [diff.ErrInputMismatch] if the original sides of the scripts differ.
func FromEdits(edits1, edits2 []diff.Edit) (*Merge, error) {
	if !slices.Equal(diff.FromEdits(edits1).Original(), diff.FromEdits(edits2).Original()) {
		return nil, fmt.Errorf("%w: edit scripts have different origins", diff.ErrInputMismatch)
	}

	m := &Merge{}
	c1 := cursor{edits: edits1}
	c2 := cursor{edits: edits2}
	c1.load()
	c2.load()

	var bb blockBuilder
	for !c1.done() || !c2.done() {
		if !c1.done() && !c2.done() && c1.cur.Op == diff.Copy && c2.cur.Op == diff.Copy {
			m.flush(&bb)
			n := min(len(c1.cur.Orig), len(c2.cur.Orig))
			m.blocks = append(m.blocks, Block{
				Op:     Copy,
				Orig:   c1.cur.Orig[:n],
				Final1: c1.cur.Final[:n],
				Final2: c2.cur.Final[:n],
			})
			c1.consume(n, n)
			c2.consume(n, n)
		} else if !c1.done() && !c2.done() && len(c1.cur.Orig) > 0 && len(c2.cur.Orig) > 0 {
			n := min(len(c1.cur.Orig), len(c2.cur.Orig))
			bb.input(c1.cur.Orig[:n])
			// A copy on one side echoes the origin into that side's output.
			if c1.cur.Op == diff.Copy {
				bb.out1(c1.cur.Final[:n])
				c1.consume(n, n)
			} else {
				c1.consume(n, 0)
			}
			if c2.cur.Op == diff.Copy {
				bb.out2(c2.cur.Final[:n])
				c2.consume(n, n)
			} else {
				c2.consume(n, 0)
			}
		}

		// The remaining final lines of an edit are emitted once all of its original lines have
		// been consumed.
		if !c1.done() && len(c1.cur.Orig) == 0 {
			bb.out1(c1.cur.Final)
			c1.next()
		}
		if !c2.done() && len(c2.cur.Orig) == 0 {
			bb.out2(c2.cur.Final)
			c2.next()
		}
	}
	m.flush(&bb)
	return m, nil
}

func (m *Merge) flush(bb *blockBuilder) {
	b, ok := bb.finish()
	if !ok {
		return
	}
	if b.Op == Conflict {
		m.conflicts++
	}
	m.blocks = append(m.blocks, b)
}

// Blocks returns the merge result in origin order.
func (m *Merge) Blocks() []Block { return slices.Clone(m.blocks) }

// Conflicts returns the number of conflicting blocks.
func (m *Merge) Conflicts() int { return m.conflicts }

// Clean reports whether the merge resolved without conflicts.
func (m *Merge) Clean() bool { return m.conflicts == 0 }

// Markers describe how a conflict is written by [Merge.MergedOutputWithMarkers].
type Markers struct {
	Start     string // Opens a conflict, followed by the lines of the first side
	Base      string // Optional, if set the origin lines are written after this marker
	Separator string // Separates the first side from the second side
	End       string // Closes a conflict
}

var (
	// DefaultMarkers are the conflict markers used by git and diff3 -m.
	DefaultMarkers = Markers{
		Start:     "<<<<<<<",
		Separator: "=======",
		End:       ">>>>>>>",
	}

	// Diff3Markers additionally show the origin of a conflict.
	Diff3Markers = Markers{
		Start:     "<<<<<<<",
		Base:      "|||||||",
		Separator: "=======",
		End:       ">>>>>>>",
	}
)

// MergedOutput returns the merged lines using [DefaultMarkers] for conflicts.
func (m *Merge) MergedOutput(label1, label2 string) []string {
	return m.MergedOutputWithMarkers(DefaultMarkers, label1, label2)
}

// MergedOutputWithMarkers returns the merged lines. Conflicts are written as
//
//	<start> label1
//	lines of side 1
//	[<base>
//	lines of the origin]
//	<separator>
//	lines of side 2
//	<end> label2
//
// A label is only appended when it's not empty.
func (m *Merge) MergedOutputWithMarkers(mk Markers, label1, label2 string) []string {
	var lines []string
	for _, b := range m.blocks {
		switch b.Op {
		case Conflict:
			lines = append(lines, marker(mk.Start, label1))
			lines = append(lines, b.Final1...)
			if mk.Base != "" {
				lines = append(lines, mk.Base)
				lines = append(lines, b.Orig...)
			}
			lines = append(lines, mk.Separator)
			lines = append(lines, b.Final2...)
			lines = append(lines, marker(mk.End, label2))
		case Copy:
			lines = append(lines, b.Orig...)
		default:
			lines = append(lines, b.Merged()...)
		}
	}
	return lines
}

func marker(m, label string) string {
	if label == "" {
		return m
	}
	return m + " " + label
}

// cursor walks an edit script. The current edit is trimmed as its lines are consumed.
type cursor struct {
	edits []diff.Edit
	pos   int
	cur   diff.Edit
}

func (c *cursor) load() {
	if c.pos < len(c.edits) {
		c.cur = c.edits[c.pos]
	}
}

func (c *cursor) done() bool { return c.pos >= len(c.edits) }

func (c *cursor) next() {
	c.pos++
	c.load()
}

// consume drops norig original and nfinal final lines from the current edit and advances to the
// next edit once the current one is exhausted.
func (c *cursor) consume(norig, nfinal int) {
	c.cur.Orig = c.cur.Orig[norig:]
	c.cur.Final = c.cur.Final[nfinal:]
	if len(c.cur.Orig) == 0 && len(c.cur.Final) == 0 {
		c.next()
	}
}

// blockBuilder accumulates a region that isn't copied unchanged on all three sides.
type blockBuilder struct {
	orig   []string
	final1 []string
	final2 []string
}

func (bb *blockBuilder) input(lines []string) { bb.orig = append(bb.orig, lines...) }
func (bb *blockBuilder) out1(lines []string)  { bb.final1 = append(bb.final1, lines...) }
func (bb *blockBuilder) out2(lines []string)  { bb.final2 = append(bb.final2, lines...) }

func (bb *blockBuilder) isEmpty() bool {
	return len(bb.orig) == 0 && len(bb.final1) == 0 && len(bb.final2) == 0
}

// finish returns the accumulated block and resets the builder.
func (bb *blockBuilder) finish() (Block, bool) {
	if bb.isEmpty() {
		return Block{}, false
	}
	b := Block{Op: Stable, Orig: bb.orig, Final1: bb.final1, Final2: bb.final2}
	if b.isConflict() {
		b.Op = Conflict
	}
	*bb = blockBuilder{}
	return b, true
}
