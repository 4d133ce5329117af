package render

import (
	"fmt"

	"github.com/fatih/color"
)

// Color names used by the [Colored] format.
const (
	HeaderColor  = "lightmagenta"
	AddedColor   = "lightgreen"
	DeletedColor = "lightred"
)

// Colorizer wraps text in a named color.
type Colorizer interface {
	Color(name, text string) string
}

// ColorizerFunc adapts a function to a [Colorizer].
type ColorizerFunc func(name, text string) string

func (f ColorizerFunc) Color(name, text string) string { return f(name, text) }

var ansiColors = map[string]color.Attribute{
	"black":        color.FgBlack,
	"red":          color.FgRed,
	"green":        color.FgGreen,
	"yellow":       color.FgYellow,
	"blue":         color.FgBlue,
	"magenta":      color.FgMagenta,
	"cyan":         color.FgCyan,
	"white":        color.FgWhite,
	"lightblack":   color.FgHiBlack,
	"lightred":     color.FgHiRed,
	"lightgreen":   color.FgHiGreen,
	"lightyellow":  color.FgHiYellow,
	"lightblue":    color.FgHiBlue,
	"lightmagenta": color.FgHiMagenta,
	"lightcyan":    color.FgHiCyan,
	"lightwhite":   color.FgHiWhite,
}

type ansi struct{}

// ANSI returns a colorizer that uses ANSI escape sequences. Colors are always written, it's up to
// the caller to decide whether the output supports them. Unknown color names leave the text
// unchanged.
func ANSI() Colorizer { return ansi{} }

func (ansi) Color(name, text string) string {
	attr, ok := ansiColors[name]
	if !ok {
		return text
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(text)
}

// HTMLClasses returns a colorizer that wraps text in a span with the class prefix-name, e.g.
// <span class="diff-lightgreen">. The text is not escaped.
func HTMLClasses(prefix string) Colorizer {
	return ColorizerFunc(func(name, text string) string {
		return fmt.Sprintf(`<span class="%s-%s">%s</span>`, prefix, name, text)
	})
}

type colored struct {
	unified
	c Colorizer
}

// Colored returns the [Unified] format with hunk headers, additions and deletions wrapped in
// colors by c. It returns [ErrConfiguration] if c is nil.
func Colored(c Colorizer) (Format, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: colored format requires a colorizer", ErrConfiguration)
	}
	return &colored{c: c}, nil
}

func (f *colored) HunkHeader(h Hunk) string {
	return f.c.Color(HeaderColor, f.unified.HunkHeader(h))
}

func (f *colored) Added(lines []string) string {
	return f.c.Color(AddedColor, f.unified.Added(lines))
}

func (f *colored) Deleted(lines []string) string {
	return f.c.Color(DeletedColor, f.unified.Deleted(lines))
}

func (f *colored) Changed(orig, final []string) string {
	return f.Deleted(orig) + f.Added(final)
}
