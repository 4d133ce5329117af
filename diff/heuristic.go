package diff

import (
	"cmp"
	"unicode"
)

// The heuristics below follow https://github.com/git/git/tree/master/xdiff. Each side of an edit
// script is a sequence of lines, some of them marked as changed. A group of changed lines can
// often be shifted up or down without changing the size of the edit script; compact moves groups
// so that they line up with changes on the other side where possible and otherwise picks the
// position that is easiest to read for indented text.

// Never move a group more than this many lines.
const maxSliding = 100

// slide applies the indent heuristic to an edit script. Changes are moved to the most readable
// position, the size of the script doesn't change. Copy edits must have equal sides.
func slide(edits []Edit) []Edit {
	x, y := sidesOf(edits)
	compact(x, y)
	compact(y, x)
	return rebuild(x, y)
}

// side is one side of an edit script.
type side struct {
	lines []string
	// changed[i+1] reports whether lines[i] is changed. The first and last entries are always
	// false so that groups can be walked without bounds checks.
	changed []bool
}

func (s *side) isChanged(i int) bool     { return s.changed[i+1] }
func (s *side) setChanged(i int, v bool) { s.changed[i+1] = v }

func sidesOf(edits []Edit) (x, y *side) {
	x, y = &side{changed: []bool{false}}, &side{changed: []bool{false}}
	for _, e := range edits {
		x.lines = append(x.lines, e.Orig...)
		y.lines = append(y.lines, e.Final...)
		for range e.Orig {
			x.changed = append(x.changed, e.Op != Copy)
		}
		for range e.Final {
			y.changed = append(y.changed, e.Op != Copy)
		}
	}
	x.changed = append(x.changed, false)
	y.changed = append(y.changed, false)
	return x, y
}

// rebuild turns two sides back into an edit script. Both sides must have the same number of
// unchanged lines.
func rebuild(x, y *side) []Edit {
	var b builder
	i, j := 0, 0
	for {
		for ; x.isChanged(i); i++ {
			b.delete(x.lines[i])
		}
		for ; y.isChanged(j); j++ {
			b.insert(y.lines[j])
		}
		if i == len(x.lines) || j == len(y.lines) {
			break
		}
		b.match(x.lines[i])
		i++
		j++
	}
	return b.finish()
}

// group is a maximal run of changed lines [start, end), it's empty if start == end.
type group struct {
	start, end int
}

func (s *side) firstGroup() group {
	g := group{}
	for s.isChanged(g.end) {
		g.end++
	}
	return g
}

// next moves g to the next group, it reports false if g is the last group.
func (s *side) next(g *group) bool {
	if g.end == len(s.lines) {
		return false
	}
	g.start = g.end + 1
	for g.end = g.start; s.isChanged(g.end); g.end++ {
	}
	return true
}

// previous moves g to the previous group, it reports false if g is the first group.
func (s *side) previous(g *group) bool {
	if g.start == 0 {
		return false
	}
	g.end = g.start - 1
	for g.start = g.end; s.isChanged(g.start - 1); g.start-- {
	}
	return true
}

// slideUp moves a non-empty group up by one line if the line before it equals its last line.
// The group absorbs a group it runs into.
func (s *side) slideUp(g *group) bool {
	if g.start == 0 || s.lines[g.start-1] != s.lines[g.end-1] {
		return false
	}
	g.start--
	g.end--
	s.setChanged(g.start, true)
	s.setChanged(g.end, false)
	for s.isChanged(g.start - 1) {
		g.start--
	}
	return true
}

// slideDown moves a non-empty group down by one line if the line after it equals its first line.
// The group absorbs a group it runs into.
func (s *side) slideDown(g *group) bool {
	if g.end == len(s.lines) || s.lines[g.start] != s.lines[g.end] {
		return false
	}
	s.setChanged(g.start, false)
	s.setChanged(g.end, true)
	g.start++
	g.end++
	for s.isChanged(g.end) {
		g.end++
	}
	return true
}

// compact moves the groups of s. The group og of the other side o always sits at the same
// position relative to the unchanged lines as g, so it's moved along with g.
func compact(s, o *side) {
	g, og := s.firstGroup(), o.firstGroup()
	for {
		if g.end != g.start {
			compactGroup(s, o, &g, &og)
		}
		if !s.next(&g) {
			break
		}
		if !o.next(&og) {
			panic("diff: groups out of sync")
		}
	}
}

func compactGroup(s, o *side, g, og *group) {
	up := func() {
		if !s.slideUp(g) {
			panic("diff: lost a matching line while sliding up")
		}
		if !o.previous(og) {
			panic("diff: groups out of sync while sliding up")
		}
	}

	var groupSize, earliestEnd int
	endMatchingOther := -1 // end of g in the lowest position aligned with a change in o
	for {
		groupSize = g.end - g.start
		endMatchingOther = -1

		// Slide up as much as possible, merging with adjacent groups.
		for s.slideUp(g) {
			if !o.previous(og) {
				panic("diff: groups out of sync while sliding up")
			}
		}
		earliestEnd = g.end
		if og.end > og.start {
			endMatchingOther = g.end
		}

		// Slide down as much as possible, merging with adjacent groups.
		for s.slideDown(g) {
			if !o.next(og) {
				panic("diff: groups out of sync while sliding down")
			}
			if og.end > og.start {
				endMatchingOther = g.end
			}
		}

		if groupSize == g.end-g.start {
			break
		}
	}

	switch {
	case g.end == earliestEnd:
		// No shifting possible.
	case endMatchingOther != -1:
		// Line up with the change on the other side to form a single change.
		for og.end == og.start {
			up()
		}
	default:
		// The group is at its lowest position, consider all upward shifts. Every candidate split
		// is at least groupSize because earliestEnd is.
		shift := max(earliestEnd, g.end-groupSize-1, g.end-maxSliding)
		bestShift := -1
		bestScore := score{}
		for ; shift <= g.end; shift++ {
			sc := score{}
			sc.add(measureSplit(s.lines, shift))
			sc.add(measureSplit(s.lines, shift-groupSize))
			if bestShift == -1 || sc.isBetterThan(bestScore) {
				bestShift = shift
				bestScore = sc
			}
		}
		for g.end > bestShift {
			up()
		}
	}
}

type measure struct {
	eof        bool
	indent     int
	preBlank   int
	preIndent  int
	postBlank  int
	postIndent int
}

// Don't consider more than this number of consecutive blank lines. This is to bound the work
// and avoid integer overflows.
const maxBlanks = 20

// measureSplit measures the surroundings of a split just before lines[split].
func measureSplit(lines []string, split int) measure {
	m := measure{}
	if split >= len(lines) {
		m.eof = true
		m.indent = -1
	} else {
		m.indent = getIndent(lines[split])
	}

	m.preIndent = -1
	for i := split - 1; i >= 0; i-- {
		m.preIndent = getIndent(lines[i])
		if m.preIndent != -1 {
			break
		}
		m.preBlank++
		if m.preBlank == maxBlanks {
			m.preIndent = 0
			break
		}
	}

	m.postIndent = -1
	for i := split + 1; i < len(lines); i++ {
		m.postIndent = getIndent(lines[i])
		if m.postIndent != -1 {
			break
		}
		m.postBlank++
		if m.postBlank == maxBlanks {
			m.postIndent = 0
			break
		}
	}
	return m
}

// We don't care if a line is indented more than this and clamp the value to maxIndent. That way,
// we don't overflow an int and avoid unnecessary work on input that's not human readable text.
const maxIndent = 200

func getIndent(line string) int {
	indent := 0
	for _, r := range line {
		if !unicode.IsSpace(r) {
			return indent
		}
		switch r {
		case ' ':
			indent++
		case '\t':
			indent += 8 - indent%8
		default:
			// ignore all other spaces
		}
		if indent >= maxIndent {
			return maxIndent
		}
	}
	return -1 // only whitespace
}

type score struct {
	effectiveIndent int // smaller is better
	penalty         int // smaller is better
}

const startOfFilePenalty = 1               // No non-blank lines before the split
const endOfFilePenalty = 21                // No non-blank lines after the split
const totalBlankWeight = -30               // Weight for number of blank lines around the split
const postBlankWeight = 6                  // Weight for number of blank lines after the split
const relativeIndentPenalty = -4           // Indented more than predecessor
const relativeIndentWithBlankPenalty = 10  // Indented more than predecessor, with blank lines
const relativeOutdentPenalty = 24          // Indented less than predecessor
const relativeOutdentWithBlankPenalty = 17 // Indented less than predecessor, with blank lines
const relativeDentPenalty = 23             // Indented less than predecessor but not less than successor
const relativeDentWithBlankPenalty = 17    // Indented less than predecessor but not less than successor, with blank lines

// We only consider whether the sum of the effective indents for splits are less than (-1), equal
// to (0), or greater than (+1) each other. The resulting value is multiplied by the following
// weight and combined with the penalty to determine the better of two scores.
const indentWeight = 60

func (s *score) add(m measure) {
	if m.preIndent == -1 && m.preBlank == 0 {
		s.penalty += startOfFilePenalty
	}
	if m.eof {
		s.penalty += endOfFilePenalty
	}

	postBlank := 0
	if m.indent == -1 {
		postBlank = 1 + m.postBlank
	}
	totalBlank := m.preBlank + postBlank

	// Penalties based on nearby blank lines
	s.penalty += totalBlankWeight * totalBlank
	s.penalty += postBlankWeight * postBlank

	indent := m.indent
	if indent == -1 {
		indent = m.postIndent
	}

	s.effectiveIndent += indent

	if indent == -1 || m.preIndent == -1 {
		// No additional adjustment needed.
	} else if indent > m.preIndent {
		// The line is indented more than its predecessor.
		if totalBlank != 0 {
			s.penalty += relativeIndentWithBlankPenalty
		} else {
			s.penalty += relativeIndentPenalty
		}
	} else if indent == m.preIndent {
		// Same indentation as previous line, no adjustments needed.
	} else {
		// Line is indented less than its predecessor. It could be the block terminator of the
		// previous block, but it could also be the start of a new block (e.g., an "else" block, or
		// maybe the previous block didn't have a block terminator). Try to distinguish those cases
		// based on what comes next.
		if m.postIndent != -1 && m.postIndent > indent {
			// The following line is indented more. So it's likely that this line is the start of a
			// block.
			if totalBlank != 0 {
				s.penalty += relativeOutdentWithBlankPenalty
			} else {
				s.penalty += relativeOutdentPenalty
			}
		} else {
			if totalBlank != 0 {
				s.penalty += relativeDentWithBlankPenalty
			} else {
				s.penalty += relativeDentPenalty
			}
		}
	}
}

func (s *score) isBetterThan(t score) bool {
	return indentWeight*cmp.Compare(s.effectiveIndent, t.effectiveIndent)+s.penalty-t.penalty <= 0
}
