package render

import (
	"html"
	"math"
	"slices"
	"strings"

	"github.com/clipperhouse/uax29/v2/graphemes"

	"znkr.io/diffkit/diff"
)

// newline replaces line breaks while changed lines are re-diffed word by word.
const newline = "\x00"

type level int

const (
	levelLines level = iota
	levelWords
	levelCharacters
)

type inline struct {
	insPrefix, insSuffix string
	delPrefix, delSuffix string
	header               string
	splitCharacters      bool
	escape               bool
	level                level
}

// InlineOption configures the [Inline] format.
type InlineOption func(*inline)

// WithInsertMarkers sets the text written before and after inserted text.
func WithInsertMarkers(prefix, suffix string) InlineOption {
	return func(f *inline) { f.insPrefix, f.insSuffix = prefix, suffix }
}

// WithDeleteMarkers sets the text written before and after deleted text.
func WithDeleteMarkers(prefix, suffix string) InlineOption {
	return func(f *inline) { f.delPrefix, f.delSuffix = prefix, suffix }
}

// WithBlockHeader sets the text written at the start of every hunk.
func WithBlockHeader(header string) InlineOption {
	return func(f *inline) { f.header = header }
}

// SplitCharacters re-diffs changed lines character by character instead of word by word.
// Characters are grapheme clusters.
func SplitCharacters() InlineOption {
	return func(f *inline) { f.splitCharacters = true }
}

// WithoutEscaping disables HTML escaping of the rendered text.
func WithoutEscaping() InlineOption {
	return func(f *inline) { f.escape = false }
}

// Inline returns a format that renders the whole document with insertions and deletions marked
// in place, by default with <ins> and <del> tags. Changed lines are not rendered as a deletion
// followed by an insertion, instead they are compared again word by word (or character by
// character, see [SplitCharacters]) so that only the changed words are marked.
func Inline(opts ...InlineOption) Format {
	f := &inline{
		insPrefix: "<ins>",
		insSuffix: "</ins>",
		delPrefix: "<del>",
		delSuffix: "</del>",
		escape:    true,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f
}

// wholeDocument is a context large enough to never split a document into several hunks.
const wholeDocument = math.MaxInt / 2

func (*inline) DefaultContext() (int, int) { return wholeDocument, wholeDocument }

func (f *inline) HunkHeader(Hunk) string        { return f.header }
func (*inline) StartHunk(header string) string  { return header }
func (*inline) EndHunk() string                 { return "" }
func (f *inline) Context(lines []string) string { return f.join(f.encode(lines)) }
func (f *inline) Added(lines []string) string   { return f.mark(lines, f.insPrefix, f.insSuffix) }
func (f *inline) Deleted(lines []string) string { return f.mark(lines, f.delPrefix, f.delSuffix) }

func (f *inline) Changed(orig, final []string) string {
	switch f.level {
	case levelCharacters:
		return f.Deleted(orig) + f.Added(final)
	case levelWords:
		// Leading spaces shared by both sides are not part of the change.
		var prefix strings.Builder
		orig, final = slices.Clone(orig), slices.Clone(final)
		for len(orig) > 0 && len(final) > 0 && strings.HasPrefix(orig[0], " ") && strings.HasPrefix(final[0], " ") {
			prefix.WriteByte(' ')
			orig[0], final[0] = orig[0][1:], final[0][1:]
		}
		return prefix.String() + f.Deleted(orig) + f.Added(final)
	}

	text1 := strings.Join(orig, "\n")
	text2 := strings.Join(final, "\n")

	next := *f
	var x, y []string
	if f.splitCharacters {
		next.level = levelCharacters
		x, y = splitCharacters(text1), splitCharacters(text2)
	} else {
		next.level = levelWords
		x, y = splitWords(text1), splitWords(text2)
	}

	// The native engine is always registered.
	d, err := diff.New(x, y, diff.WithEngine("native"))
	if err != nil {
		panic(err)
	}
	out := New(&next).Render(d.Edits())
	return strings.ReplaceAll(out, newline, "\n") + "\n"
}

func (f *inline) mark(lines []string, prefix, suffix string) string {
	if len(lines) == 0 {
		return ""
	}
	lines = f.encode(lines)
	lines[0] = prefix + lines[0]
	lines[len(lines)-1] += suffix
	return f.join(lines)
}

// encode returns a copy of lines, HTML escaped if escaping is enabled.
func (f *inline) encode(lines []string) []string {
	ret := make([]string, len(lines))
	for i, l := range lines {
		if f.escape {
			l = html.EscapeString(l)
		}
		ret[i] = l
	}
	return ret
}

func (f *inline) join(lines []string) string {
	if f.level == levelLines {
		return strings.Join(lines, "\n") + "\n"
	}
	return strings.Join(lines, "")
}

// splitWords splits text into words, every word carries the spaces and line breaks in front of
// it. Line breaks are replaced by the newline placeholder.
func splitWords(text string) []string {
	text = strings.ReplaceAll(text, newline, "")
	var words []string
	for pos := 0; pos < len(text); {
		spaces := len(text[pos:]) - len(strings.TrimLeft(text[pos:], " \n"))
		end := strings.IndexAny(text[pos+spaces:], " \n")
		if end < 0 {
			end = len(text) - pos - spaces
		}
		n := spaces + end
		words = append(words, strings.ReplaceAll(text[pos:pos+n], "\n", newline))
		pos += n
	}
	return words
}

// splitCharacters splits text into grapheme clusters. Line breaks are replaced by the newline
// placeholder.
func splitCharacters(text string) []string {
	text = strings.ReplaceAll(text, newline, "")
	text = strings.ReplaceAll(text, "\n", newline)
	var chars []string
	it := graphemes.FromString(text)
	for it.Next() {
		chars = append(chars, it.Value())
	}
	return chars
}
