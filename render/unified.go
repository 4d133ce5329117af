package render

import (
	"fmt"
	"strconv"
)

type unified struct{}

// Unified returns the unified diff format with 4 lines of context.
//
// Hunk headers follow GNU diff: a range is written as start,length with the length omitted when it
// is 1, an empty range starts at the line before the hunk.
func Unified() Format { return unified{} }

func (unified) DefaultContext() (int, int) { return 4, 4 }

func (unified) HunkHeader(h Hunk) string {
	return fmt.Sprintf("@@ -%s +%s @@", unifiedRange(h.OrigStart, h.OrigLen), unifiedRange(h.FinalStart, h.FinalLen))
}

func unifiedRange(start, n int) string {
	switch n {
	case 0:
		return strconv.Itoa(start-1) + ",0"
	case 1:
		return strconv.Itoa(start)
	default:
		return strconv.Itoa(start) + "," + strconv.Itoa(n)
	}
}

func (unified) StartHunk(header string) string { return header + "\n" }
func (unified) Context(lines []string) string  { return prefixed(" ", lines) }
func (unified) Added(lines []string) string    { return prefixed("+", lines) }
func (unified) Deleted(lines []string) string  { return prefixed("-", lines) }
func (unified) EndHunk() string                { return "" }

func (u unified) Changed(orig, final []string) string {
	return u.Deleted(orig) + u.Added(final)
}
