package diff

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

func init() {
	register(dmp{})
}

// dmp uses the diff-match-patch bisection. Every distinct line is encoded as a single rune and
// the resulting rune sequences are diffed character by character.
type dmp struct{}

func (dmp) Name() string { return "dmp" }

// Runes in the surrogate range are skipped when encoding line indices.
const (
	surrogateMin = 0xD800
	surrogateGap = 0x800
	maxLineRunes = utf8.MaxRune + 1 - surrogateGap
)

func encodeIndex(i int) rune {
	if i < surrogateMin {
		return rune(i)
	}
	return rune(i + surrogateGap)
}

func decodeIndex(r rune) int {
	if r < surrogateMin {
		return int(r)
	}
	return int(r) - surrogateGap
}

func (dmp) Edits(x, y []string) []Edit {
	index := make(map[string]int)
	var lines []string
	encode := func(seq []string) []rune {
		ret := make([]rune, len(seq))
		for i, line := range seq {
			n, ok := index[line]
			if !ok {
				n = len(lines)
				index[line] = n
				lines = append(lines, line)
			}
			ret[i] = encodeIndex(n)
		}
		return ret
	}
	rx, ry := encode(x), encode(y)
	if len(lines) > maxLineRunes {
		// Too many distinct lines to encode.
		return native{}.Edits(x, y)
	}

	m := diffmatchpatch.New()
	m.DiffTimeout = 0
	var b builder
	for _, d := range m.DiffMainRunes(rx, ry, false) {
		for _, r := range d.Text {
			line := lines[decodeIndex(r)]
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				b.match(line)
			case diffmatchpatch.DiffDelete:
				b.delete(line)
			case diffmatchpatch.DiffInsert:
				b.insert(line)
			}
		}
	}
	return b.finish()
}
