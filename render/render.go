// Package render converts edit scripts into human readable diff formats.
//
// A [Renderer] walks an edit script, groups it into hunks bounded by context lines and hands every
// hunk to a [Format]. The formats provided here are [Unified], [Context], [Normal] and [Inline];
// [Colored] decorates another format with color spans.
package render

import (
	"errors"
	"math"
	"strings"

	"znkr.io/diffkit/diff"
)

// ErrConfiguration is returned when a format is constructed without a required collaborator.
var ErrConfiguration = errors.New("invalid renderer configuration")

// Hunk describes one region of an edit script that is rendered as a unit. Start positions are
// 1-based, a length of 0 denotes an empty range that starts after line Start-1.
type Hunk struct {
	OrigStart, OrigLen   int
	FinalStart, FinalLen int
	Edits                []diff.Edit
}

// Format is the strategy used by a [Renderer] to produce text for every hunk.
//
// For every hunk, the renderer calls HunkHeader and StartHunk once, then one of Context, Added,
// Deleted or Changed for every edit in the hunk, and finally EndHunk. The concatenation of all
// returned strings is the rendered diff.
type Format interface {
	// DefaultContext returns the number of leading and trailing context lines.
	DefaultContext() (leading, trailing int)

	HunkHeader(h Hunk) string
	StartHunk(header string) string
	Context(lines []string) string
	Added(lines []string) string
	Deleted(lines []string) string
	Changed(orig, final []string) string
	EndHunk() string
}

// Renderer renders edit scripts using a [Format].
//
// Formats may keep state for the hunk currently rendered, a Renderer must therefore not be used
// concurrently.
type Renderer struct {
	format   Format
	leading  int
	trailing int
}

// Option configures a [Renderer].
type Option func(*Renderer)

// WithContext overrides the number of leading and trailing context lines of the format. Negative
// values are treated as 0. The normal format never shows context lines.
func WithContext(leading, trailing int) Option {
	return func(r *Renderer) {
		r.leading = max(leading, 0)
		r.trailing = max(trailing, 0)
	}
}

// New creates a renderer for the given format.
func New(f Format, opts ...Option) *Renderer {
	r := &Renderer{format: f}
	r.leading, r.trailing = f.DefaultContext()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if _, ok := f.(normal); ok {
		// Normal diffs have no context lines.
		r.leading, r.trailing = 0, 0
	}
	return r
}

// Render renders an edit script. A script without changes renders as an empty string.
func (r *Renderer) Render(edits []diff.Edit) string {
	var sb strings.Builder

	var (
		xi, yi  = 1, 1 // line numbers of the next edit
		x0, y0  int    // start of the current hunk
		open    bool
		block   []diff.Edit
		context diff.Edit // last copied lines
	)

	for i, e := range edits {
		if e.Op == diff.Copy {
			if open {
				keep := r.leading + r.trailing
				if keep < r.leading {
					keep = math.MaxInt
				}
				if i == len(edits)-1 {
					keep = r.trailing
				}
				if e.OrigCount() <= keep {
					block = append(block, e)
				} else {
					if r.trailing > 0 {
						block = append(block, head(e, r.trailing))
					}
					n := min(r.trailing, e.OrigCount())
					r.hunk(&sb, Hunk{x0, n + xi - x0, y0, n + yi - y0, block})
					open, block = false, nil
				}
			}
			context = e
		} else {
			if !open {
				ctx := tail(context, r.leading)
				x0, y0 = xi-ctx.OrigCount(), yi-ctx.FinalCount()
				block = nil
				if ctx.OrigCount() > 0 {
					block = append(block, ctx)
				}
				open = true
			}
			block = append(block, e)
		}
		xi += e.OrigCount()
		yi += e.FinalCount()
	}

	if open {
		r.hunk(&sb, Hunk{x0, xi - x0, y0, yi - y0, block})
	}
	return sb.String()
}

func (r *Renderer) hunk(sb *strings.Builder, h Hunk) {
	f := r.format
	sb.WriteString(f.StartHunk(f.HunkHeader(h)))
	for _, e := range h.Edits {
		switch e.Op {
		case diff.Copy:
			sb.WriteString(f.Context(e.Orig))
		case diff.Add:
			sb.WriteString(f.Added(e.Final))
		case diff.Delete:
			sb.WriteString(f.Deleted(e.Orig))
		case diff.Change:
			sb.WriteString(f.Changed(e.Orig, e.Final))
		}
	}
	sb.WriteString(f.EndHunk())
}

// head returns the first n lines of a copy edit.
func head(e diff.Edit, n int) diff.Edit {
	n = min(n, e.OrigCount())
	return diff.Edit{Op: diff.Copy, Orig: e.Orig[:n], Final: e.Final[:n]}
}

// tail returns the last n lines of a copy edit.
func tail(e diff.Edit, n int) diff.Edit {
	n = min(n, e.OrigCount())
	return diff.Edit{Op: diff.Copy, Orig: e.Orig[e.OrigCount()-n:], Final: e.Final[e.FinalCount()-n:]}
}

// prefixed writes every line prefixed and terminated by a newline.
func prefixed(prefix string, lines []string) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(prefix)
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return sb.String()
}
