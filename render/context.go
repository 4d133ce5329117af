package render

import (
	"strings"

	"znkr.io/diffkit/diff"
)

type contextFormat struct {
	final     strings.Builder // final side of the current hunk
	showOrig  bool
	showFinal bool
}

// Context returns the context diff format with 4 lines of context.
//
// Every hunk is written as the original side followed by the final side. As in GNU diff, the
// lines of a side without changes are omitted and only its range is written.
func Context() Format { return &contextFormat{} }

func (*contextFormat) DefaultContext() (int, int) { return 4, 4 }

func (c *contextFormat) HunkHeader(h Hunk) string {
	c.final.Reset()
	c.showOrig, c.showFinal = false, false
	for _, e := range h.Edits {
		switch e.Op {
		case diff.Add:
			c.showFinal = true
		case diff.Delete:
			c.showOrig = true
		case diff.Change:
			c.showOrig, c.showFinal = true, true
		}
	}
	c.final.WriteString("--- " + lineRange(h.FinalStart, h.FinalLen) + " ----\n")
	return "***************\n*** " + lineRange(h.OrigStart, h.OrigLen) + " ****"
}

func (*contextFormat) StartHunk(header string) string { return header + "\n" }

func (c *contextFormat) Context(lines []string) string {
	if c.showFinal {
		c.final.WriteString(prefixed("  ", lines))
	}
	if !c.showOrig {
		return ""
	}
	return prefixed("  ", lines)
}

func (c *contextFormat) Added(lines []string) string {
	c.final.WriteString(prefixed("+ ", lines))
	return ""
}

func (*contextFormat) Deleted(lines []string) string { return prefixed("- ", lines) }

func (c *contextFormat) Changed(orig, final []string) string {
	c.final.WriteString(prefixed("! ", final))
	return prefixed("! ", orig)
}

func (c *contextFormat) EndHunk() string { return c.final.String() }
