package render

import "strconv"

type normal struct{}

// Normal returns the default output format of diff(1): change commands like 3,4c3 followed by the
// affected lines of both sides. It uses no context lines.
func Normal() Format { return normal{} }

func (normal) DefaultContext() (int, int) { return 0, 0 }

func (normal) HunkHeader(h Hunk) string {
	x := lineRange(h.OrigStart, h.OrigLen)
	y := lineRange(h.FinalStart, h.FinalLen)
	switch {
	case h.OrigLen == 0:
		return x + "a" + y
	case h.FinalLen == 0:
		return x + "d" + y
	default:
		return x + "c" + y
	}
}

// lineRange formats a range of lines as first,last. An empty range is written as the line before
// it.
func lineRange(start, n int) string {
	switch {
	case n == 0:
		return strconv.Itoa(start - 1)
	case n == 1:
		return strconv.Itoa(start)
	default:
		return strconv.Itoa(start) + "," + strconv.Itoa(start+n-1)
	}
}

func (normal) StartHunk(header string) string { return header + "\n" }
func (normal) Context(lines []string) string  { return prefixed("  ", lines) }
func (normal) Added(lines []string) string    { return prefixed("> ", lines) }
func (normal) Deleted(lines []string) string  { return prefixed("< ", lines) }
func (normal) EndHunk() string                { return "" }

func (n normal) Changed(orig, final []string) string {
	return n.Deleted(orig) + "---\n" + n.Added(final)
}
