// Package highlight turns edit scripts into syntax highlighted HTML lines.
package highlight

import (
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"znkr.io/diffkit/diff"
)

var style = map[chroma.TokenType]string{
	chroma.Keyword:           "hl-b",
	chroma.KeywordPseudo:     "",
	chroma.KeywordType:       "",
	chroma.NameClass:         "hl-b",
	chroma.NameEntity:        "hl-b",
	chroma.NameException:     "hl-b",
	chroma.NameNamespace:     "hl-b",
	chroma.NameTag:           "hl-b",
	chroma.NameBuiltin:       "hl-bl",
	chroma.LiteralString:     "hl-i",
	chroma.OperatorWord:      "hl-b",
	chroma.Comment:           "hl-ii",
	chroma.CommentPreproc:    "",
	chroma.GenericEmph:       "hl-i",
	chroma.GenericHeading:    "hl-b",
	chroma.GenericPrompt:     "hl-b",
	chroma.GenericStrong:     "hl-b",
	chroma.GenericSubheading: "hl-b",
}

type Option func(*highlighter)

// Lang selects the lexer by language name.
func Lang(lang string) Option {
	return func(o *highlighter) {
		o.lexer = lexers.Get(lang)
	}
}

// LangFromFilename selects the lexer matching a file name.
func LangFromFilename(filename string) Option {
	return func(o *highlighter) {
		o.lexer = lexers.Match(filename)
	}
}

// Line is a single highlighted line of a diff. Line numbers are 1-based, a line that doesn't
// exist on one side has the number -1 for that side.
type Line struct {
	Op      diff.Op
	OrigNo  int
	FinalNo int
	Content template.HTML
}

func (l *Line) IsCopy() bool   { return l.Op == diff.Copy }
func (l *Line) IsDelete() bool { return l.Op == diff.Delete }
func (l *Line) IsAdd() bool    { return l.Op == diff.Add }

// Edits highlights every line of an edit script. Changes are split into deleted lines followed by
// added lines.
func Edits(edits []diff.Edit, opts ...Option) ([]Line, error) {
	hl := fromOptions(opts)

	var ret []Line
	s, t := 0, 0
	for _, e := range edits {
		if e.Op == diff.Copy {
			for _, l := range e.Final {
				ln, err := hl.highlight(l)
				if err != nil {
					return nil, err
				}
				ret = append(ret, Line{diff.Copy, s + 1, t + 1, ln})
				s++
				t++
			}
			continue
		}
		for _, l := range e.Orig {
			ln, err := hl.highlight(l)
			if err != nil {
				return nil, err
			}
			ret = append(ret, Line{diff.Delete, s + 1, -1, ln})
			s++
		}
		for _, l := range e.Final {
			ln, err := hl.highlight(l)
			if err != nil {
				return nil, err
			}
			ret = append(ret, Line{diff.Add, -1, t + 1, ln})
			t++
		}
	}
	return ret, nil
}

// ParseUnified highlights a unified diff. Line numbers are taken from the hunk headers, lines
// outside of hunks are skipped.
func ParseUnified(in string, opts ...Option) ([]Line, error) {
	hl := fromOptions(opts)
	var ret []Line
	s, t := 0, 0   // line numbers of the last line
	ns, nt := 0, 0 // lines left in the current hunk
	for l := range strings.Lines(in) {
		l = strings.TrimSuffix(l, "\n")
		if ns == 0 && nt == 0 {
			h, ok, err := diff.ParseHunkHeader(l)
			if err != nil {
				return nil, err
			}
			if ok {
				s, ns = hunkRange(h.OrigStart, h.OrigCount)
				t, nt = hunkRange(h.FinalStart, h.FinalCount)
			}
			continue
		}

		var p byte = ' '
		if len(l) > 0 {
			p, l = l[0], l[1:]
		}
		if p == '\\' {
			continue
		}
		ln, err := hl.highlight(l)
		if err != nil {
			return nil, err
		}
		switch {
		case p == ' ' && ns > 0 && nt > 0:
			ret = append(ret, Line{diff.Copy, s + 1, t + 1, ln})
			s, t = s+1, t+1
			ns, nt = ns-1, nt-1
		case p == '-' && ns > 0:
			ret = append(ret, Line{diff.Delete, s + 1, -1, ln})
			s, ns = s+1, ns-1
		case p == '+' && nt > 0:
			ret = append(ret, Line{diff.Add, -1, t + 1, ln})
			t, nt = t+1, nt-1
		default:
			return nil, fmt.Errorf("unexpected line in hunk: %q", string(p)+l)
		}
	}
	return ret, nil
}

// hunkRange returns the number of the line before a hunk and the number of lines in it.
func hunkRange(start, count int) (int, int) {
	if count == 0 {
		return start, 0
	}
	return start - 1, count
}

type highlighter struct {
	lexer chroma.Lexer
}

func fromOptions(opts []Option) *highlighter {
	hl := &highlighter{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(hl)
	}

	if hl.lexer == nil {
		hl.lexer = lexers.Fallback
	}
	hl.lexer = chroma.Coalesce(hl.lexer)
	return hl
}

func (hl *highlighter) highlight(line string) (template.HTML, error) {
	tokens, err := hl.tokens(line)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, token := range tokens {
		class := class(token.Type)
		if class != "" {
			fmt.Fprintf(&sb, "<span class=\"%s\">", class)
		}
		sb.WriteString(html.EscapeString(token.Value))
		if class != "" {
			fmt.Fprintf(&sb, "</span>")
		}
	}
	return template.HTML(sb.String()), nil
}

// tokens tokenises a single line, without the line break lexers may add.
func (hl *highlighter) tokens(line string) ([]chroma.Token, error) {
	it, err := hl.lexer.Tokenise(nil, line+"\n")
	if err != nil {
		return nil, fmt.Errorf("creating iterator: %v", err)
	}
	tokens := it.Tokens()
	for len(tokens) > 0 {
		last := &tokens[len(tokens)-1]
		last.Value = strings.TrimSuffix(last.Value, "\n")
		if last.Value != "" {
			break
		}
		tokens = tokens[:len(tokens)-1]
	}
	return tokens, nil
}

func class(t chroma.TokenType) string {
	s, ok := style[t]
	if ok {
		return s
	}
	s, ok = style[t.SubCategory()]
	if ok {
		return s
	}
	s, ok = style[t.Category()]
	if ok {
		return s
	}
	return ""
}
