package diff

import (
	"fmt"
	"slices"
)

// Diff is an edit script between two sequences of lines.
type Diff struct {
	edits []Edit
}

type options struct {
	engine          string
	indentHeuristic bool
}

// Option configures how a [Diff] is computed.
type Option func(*options)

// WithEngine selects the engine by name, see [Lookup].
func WithEngine(name string) Option {
	return func(o *options) { o.engine = name }
}

// WithIndentHeuristic moves additions and deletions to positions that are easier to read for
// indented text.
func WithIndentHeuristic() Option {
	return func(o *options) { o.indentHeuristic = true }
}

func newOptions(opts []Option) options {
	o := options{engine: Auto}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&o)
	}
	return o
}

// New compares x and y and returns the resulting edit script.
func New(x, y []string, opts ...Option) (*Diff, error) {
	o := newOptions(opts)
	e, err := Lookup(o.engine)
	if err != nil {
		return nil, err
	}
	return compute(e, x, y, o), nil
}

func compute(e Engine, x, y []string, o options) *Diff {
	edits := e.Edits(x, y)
	if o.indentHeuristic {
		edits = slide(edits)
	}
	return &Diff{edits: edits}
}

// FromEdits creates a Diff from an existing edit script. The script is coalesced if necessary.
func FromEdits(edits []Edit) *Diff {
	return &Diff{edits: Coalesce(edits)}
}

// FromPatch parses a unified or context diff, see [ParsePatch].
func FromPatch(text string, format PatchFormat) (*Diff, error) {
	edits, err := ParsePatch(text, format)
	if err != nil {
		return nil, err
	}
	return &Diff{edits: edits}, nil
}

// Edits returns the edit script.
func (d *Diff) Edits() []Edit { return slices.Clone(d.edits) }

// CountAdded returns the number of lines added.
func (d *Diff) CountAdded() int {
	n := 0
	for _, e := range d.edits {
		if e.Op == Add || e.Op == Change {
			n += e.FinalCount()
		}
	}
	return n
}

// CountDeleted returns the number of lines deleted.
func (d *Diff) CountDeleted() int {
	n := 0
	for _, e := range d.edits {
		if e.Op == Delete || e.Op == Change {
			n += e.OrigCount()
		}
	}
	return n
}

// IsEmpty reports whether both sequences are equal.
func (d *Diff) IsEmpty() bool {
	for _, e := range d.edits {
		if e.Op != Copy {
			return false
		}
	}
	return true
}

// LCS returns the length of the longest common subsequence, i.e., the number of copied lines.
func (d *Diff) LCS() int {
	n := 0
	for _, e := range d.edits {
		if e.Op == Copy {
			n += e.OrigCount()
		}
	}
	return n
}

// Original reconstructs the original sequence.
func (d *Diff) Original() []string {
	var lines []string
	for _, e := range d.edits {
		lines = append(lines, e.Orig...)
	}
	return lines
}

// Final reconstructs the final sequence.
func (d *Diff) Final() []string {
	var lines []string
	for _, e := range d.edits {
		lines = append(lines, e.Final...)
	}
	return lines
}

// Reverse returns the diff from the final to the original sequence.
func (d *Diff) Reverse() *Diff {
	return &Diff{edits: Reverse(d.edits)}
}

// Check verifies that d is a well formed edit script from x to y. It's meant as a debugging aid.
func (d *Diff) Check(x, y []string) error {
	if !slices.Equal(d.Original(), x) {
		return fmt.Errorf("reconstructed original doesn't match input")
	}
	if !slices.Equal(d.Final(), y) {
		return fmt.Errorf("reconstructed final doesn't match input")
	}
	r := d.Reverse()
	if !slices.Equal(r.Original(), y) || !slices.Equal(r.Final(), x) {
		return fmt.Errorf("reversed diff doesn't swap inputs")
	}
	for i, e := range d.edits {
		if err := checkEdit(e); err != nil {
			return fmt.Errorf("edit %d: %v", i, err)
		}
		if i > 0 && d.edits[i-1].Op == e.Op {
			return fmt.Errorf("edit %d: not coalesced, two adjacent %v edits", i, e.Op)
		}
	}
	return nil
}

func checkEdit(e Edit) error {
	switch e.Op {
	case Copy:
		if len(e.Orig) != len(e.Final) {
			return fmt.Errorf("copy with sides of different length")
		}
		if len(e.Orig) == 0 {
			return fmt.Errorf("empty copy")
		}
	case Add:
		if len(e.Orig) != 0 || len(e.Final) == 0 {
			return fmt.Errorf("add must only have final lines")
		}
	case Delete:
		if len(e.Orig) == 0 || len(e.Final) != 0 {
			return fmt.Errorf("delete must only have original lines")
		}
	case Change:
		if len(e.Orig) == 0 || len(e.Final) == 0 {
			return fmt.Errorf("change must have lines on both sides")
		}
	default:
		return fmt.Errorf("unknown op %v", e.Op)
	}
	return nil
}
