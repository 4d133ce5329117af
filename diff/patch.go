package diff

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// PatchFormat selects how [ParsePatch] interprets its input.
type PatchFormat int

const (
	AutoDetect PatchFormat = iota // Guess the format from the first hunk marker
	Unified                       // diff -u
	Context                       // diff -c
)

var (
	unifiedHunkRE  = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)
	contextOrigRE  = regexp.MustCompile(`^\*\*\* (\d+)(?:,(\d+))? \*\*\*\*\s*$`)
	contextFinalRE = regexp.MustCompile(`^--- (\d+)(?:,(\d+))? ----\s*$`)
)

const (
	contextHunkStart = "***************"
	noNewline        = `\`
)

// ParsePatch reads an edit script from a unified or context diff.
//
// Only the regions covered by hunks are known, lines outside of hunks are not part of the result.
// File headers and any other lines before the first hunk are skipped. After the first hunk, only
// further hunks may follow. Line counts are validated against the hunk headers. Lines starting
// with a backslash ("\ No newline at end of file") are ignored.
//
// An empty text results in an empty edit script. All other problems are reported as a
// [*PatchError] that matches [ErrMalformedPatch].
func ParsePatch(text string, format PatchFormat) (_ []Edit, err error) {
	defer func() {
		if e := recover(); e != nil {
			if e, ok := e.(*PatchError); ok {
				err = e
				return
			}
			panic(e)
		}
	}()

	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	p := patchParser{lines: SplitLines(text)}
	if format == AutoDetect {
		format = p.detect()
	}
	switch format {
	case Unified:
		p.parseUnified()
	case Context:
		p.parseContext()
	default:
		return nil, fmt.Errorf("unknown patch format %d", format)
	}
	return p.b.finish(), nil
}

// HunkHeader holds the ranges of a unified hunk header "@@ -OrigStart,OrigCount +FinalStart,FinalCount @@".
type HunkHeader struct {
	OrigStart, OrigCount   int
	FinalStart, FinalCount int
}

// ParseHunkHeader parses a unified hunk header, a missing count is 1. It reports false if line isn't
// a hunk header and an error if a number doesn't fit into an int.
func ParseHunkHeader(line string) (HunkHeader, bool, error) {
	m := unifiedHunkRE.FindStringSubmatch(line)
	if m == nil {
		return HunkHeader{}, false, nil
	}
	var nums [4]int
	for i, s := range m[1:] {
		if s == "" {
			nums[i] = 1
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return HunkHeader{}, true, fmt.Errorf("invalid hunk header: %v", err)
		}
		nums[i] = n
	}
	return HunkHeader{nums[0], nums[1], nums[2], nums[3]}, true, nil
}

type patchParser struct {
	lines []string
	pos   int // index of the current line
	b     builder
}

func (p *patchParser) errorf(format string, args ...any) {
	e := &PatchError{
		Line: p.pos + 1,
		Msg:  fmt.Sprintf(format, args...),
	}
	if p.pos < len(p.lines) {
		e.Text = p.lines[p.pos]
	}
	panic(e)
}

func (p *patchParser) eof() bool { return p.pos >= len(p.lines) }

func (p *patchParser) line() string { return p.lines[p.pos] }

// detect returns the format of the first hunk or file header marker.
func (p *patchParser) detect() PatchFormat {
	for _, line := range p.lines {
		switch {
		case strings.HasPrefix(line, "@@ "), strings.HasPrefix(line, "+++ "):
			return Unified
		case strings.HasPrefix(line, "***"):
			return Context
		}
	}
	p.pos = len(p.lines)
	p.errorf("no hunk found")
	panic("never reached")
}

// skipPreamble advances to the first line starting with marker.
func (p *patchParser) skipPreamble(marker string) {
	for ; !p.eof(); p.pos++ {
		if strings.HasPrefix(p.line(), marker) {
			return
		}
	}
	p.errorf("no hunk found")
}

func (p *patchParser) skipNoNewline() {
	for !p.eof() && strings.HasPrefix(p.line(), noNewline) {
		p.pos++
	}
}

// parseRange parses the submatches of a hunk header range. A missing count defaults to def.
func (p *patchParser) parseRange(start, count string, def int) (int, int) {
	s, err := strconv.Atoi(start)
	if err != nil {
		p.errorf("invalid line number: %v", err)
	}
	if count == "" {
		return s, def
	}
	n, err := strconv.Atoi(count)
	if err != nil {
		p.errorf("invalid line count: %v", err)
	}
	return s, n
}

func (p *patchParser) parseUnified() {
	p.skipPreamble("@@ ")
	for !p.eof() {
		h, ok, err := ParseHunkHeader(p.line())
		if !ok {
			p.errorf("expected hunk header")
		}
		if err != nil {
			p.errorf("%v", err)
		}
		norig, nfinal := h.OrigCount, h.FinalCount
		p.pos++

		for norig > 0 || nfinal > 0 {
			if p.eof() {
				p.errorf("hunk is shorter than its header, %d original and %d final lines missing", norig, nfinal)
			}
			line := p.line()
			if strings.HasPrefix(line, noNewline) {
				p.pos++
				continue
			}
			tag, content := byte(' '), ""
			if line != "" {
				tag, content = line[0], line[1:]
			}
			switch tag {
			case ' ':
				if norig == 0 || nfinal == 0 {
					p.errorf("hunk is longer than its header")
				}
				p.b.match(content)
				norig--
				nfinal--
			case '-':
				if norig == 0 {
					p.errorf("hunk is longer than its header")
				}
				p.b.delete(content)
				norig--
			case '+':
				if nfinal == 0 {
					p.errorf("hunk is longer than its header")
				}
				p.b.insert(content)
				nfinal--
			default:
				p.errorf("unexpected line in hunk")
			}
			p.pos++
		}
		p.skipNoNewline()
	}
}

type contextLine struct {
	tag     byte // ' ', '-', '+', or '!'
	content string
}

func (p *patchParser) parseContext() {
	p.skipPreamble(contextHunkStart)
	for !p.eof() {
		if !strings.HasPrefix(p.line(), contextHunkStart) {
			p.errorf("expected %q", contextHunkStart)
		}
		p.pos++

		origCount, orig := p.parseContextSide(contextOrigRE, "*** a,b ****", "-!")
		finalCount, final := p.parseContextSide(contextFinalRE, "--- a,b ----", "+!")

		// A side without changes is omitted, its lines are the context lines of the other side.
		switch {
		case len(orig) == 0 && len(final) == 0:
		case len(orig) == 0:
			orig = p.contextOnly(final)
		case len(final) == 0:
			final = p.contextOnly(orig)
		}
		p.checkCount(origCount, orig, "original")
		p.checkCount(finalCount, final, "final")
		p.mergeContextSides(orig, final)
		p.skipNoNewline()
	}
}

// parseContextSide parses a range header followed by the lines of one side of a hunk.
func (p *patchParser) parseContextSide(re *regexp.Regexp, want, tags string) (count [2]int, lines []contextLine) {
	if p.eof() {
		p.errorf("expected %q", want)
	}
	m := re.FindStringSubmatch(p.line())
	if m == nil {
		p.errorf("expected %q", want)
	}
	s, e := p.parseRange(m[1], m[2], -1)
	if e == -1 {
		// A single number stands for either one line or an empty range.
		count = [2]int{0, 1}
	} else {
		if e < s {
			p.errorf("invalid range %d,%d", s, e)
		}
		count = [2]int{e - s + 1, e - s + 1}
	}
	p.pos++

	for !p.eof() {
		line := p.line()
		if strings.HasPrefix(line, noNewline) {
			p.pos++
			continue
		}
		if strings.HasPrefix(line, contextHunkStart) || contextFinalRE.MatchString(line) {
			break
		}
		if len(line) < 2 || line[1] != ' ' || (line[0] != ' ' && !strings.ContainsRune(tags, rune(line[0]))) {
			p.errorf("unexpected line in hunk")
		}
		lines = append(lines, contextLine{line[0], line[2:]})
		p.pos++
	}
	return count, lines
}

func (p *patchParser) contextOnly(lines []contextLine) []contextLine {
	for _, l := range lines {
		if l.tag == '!' {
			p.errorf("changed lines on only one side of a hunk")
		}
	}
	var ret []contextLine
	for _, l := range lines {
		if l.tag == ' ' {
			ret = append(ret, l)
		}
	}
	return ret
}

func (p *patchParser) checkCount(count [2]int, lines []contextLine, side string) {
	n := len(lines)
	if n < count[0] || n > count[1] {
		p.errorf("hunk has %d %s lines but its header says %d", n, side, count[1])
	}
}

func (p *patchParser) mergeContextSides(orig, final []contextLine) {
	i, j := 0, 0
	for i < len(orig) || j < len(final) {
		switch {
		case i < len(orig) && orig[i].tag == '-':
			p.b.delete(orig[i].content)
			i++
		case j < len(final) && final[j].tag == '+':
			p.b.insert(final[j].content)
			j++
		case i < len(orig) && j < len(final) && orig[i].tag == '!' && final[j].tag == '!':
			for ; i < len(orig) && orig[i].tag == '!'; i++ {
				p.b.delete(orig[i].content)
			}
			for ; j < len(final) && final[j].tag == '!'; j++ {
				p.b.insert(final[j].content)
			}
		case i < len(orig) && j < len(final) && orig[i].tag == ' ' && final[j].tag == ' ':
			if orig[i].content != final[j].content {
				p.errorf("context lines of hunk don't match: %q vs %q", orig[i].content, final[j].content)
			}
			p.b.match(orig[i].content)
			i++
			j++
		default:
			p.errorf("sides of hunk don't line up")
		}
	}
}
