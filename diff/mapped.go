package diff

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// NewMapped compares mappedX and mappedY and returns an edit script for x and y. Each mapped line
// must be the projection of the line at the same position in the original sequences, e.g., a case
// folded or whitespace normalized copy. Lines that are equal after projection are reported as
// copies even if the original lines differ; the Orig and Final sides of such a copy hold the
// respective original lines.
func NewMapped(x, y, mappedX, mappedY []string, opts ...Option) (*Diff, error) {
	if len(x) != len(mappedX) {
		return nil, fmt.Errorf("%w: %d original lines but %d mapped lines", ErrInputMismatch, len(x), len(mappedX))
	}
	if len(y) != len(mappedY) {
		return nil, fmt.Errorf("%w: %d final lines but %d mapped lines", ErrInputMismatch, len(y), len(mappedY))
	}
	d, err := New(mappedX, mappedY, opts...)
	if err != nil {
		return nil, err
	}

	s, t := 0, 0
	for i, e := range d.edits {
		norig, nfinal := e.OrigCount(), e.FinalCount()
		switch e.Op {
		case Add:
			e.Final = y[t : t+nfinal]
		case Delete:
			e.Orig = x[s : s+norig]
		default:
			e.Orig = x[s : s+norig]
			e.Final = y[t : t+nfinal]
		}
		d.edits[i] = e
		s += norig
		t += nfinal
	}
	return d, nil
}

// Map applies fn to every line and returns the projected lines.
func Map(lines []string, fn func(string) string) []string {
	if lines == nil {
		return nil
	}
	ret := make([]string, len(lines))
	for i, line := range lines {
		ret[i] = fn(line)
	}
	return ret
}

// FoldCase is a projection for case insensitive comparisons.
func FoldCase(line string) string {
	return cases.Fold().String(line)
}

// CollapseSpace is a projection that ignores changes in the amount of whitespace. Leading and
// trailing whitespace is removed and all other runs of whitespace are replaced by a single space.
func CollapseSpace(line string) string {
	return strings.Join(strings.Fields(line), " ")
}

// TrimSpace is a projection that ignores leading and trailing whitespace.
func TrimSpace(line string) string {
	return strings.TrimSpace(line)
}
