// Package report writes a diff as a standalone HTML page.
//
// The page consists of a summary with the change statistics and one section per hunk, a table of
// contents linking to the hunks, the inline rendering of the whole document and a syntax
// highlighted listing. The summary is written in Markdown and converted with goldmark, the final
// page is minified.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/toc"

	"znkr.io/diffkit/diff"
	"znkr.io/diffkit/highlight"
	"znkr.io/diffkit/render"
)

// Input describes the diff to report.
type Input struct {
	Title     string
	OrigName  string
	FinalName string
	Diff      *diff.Diff

	// Patch is the unified diff the Diff was parsed from, if any. When set, the listing shows the
	// line numbers of the patch instead of counting from the first hunk.
	Patch string

	// Lang overrides the language used for syntax highlighting, by default it's derived from the
	// file names.
	Lang string
}

// HTML writes the report for in to w.
func HTML(w io.Writer, in Input) error {
	b, err := page(in)
	if err != nil {
		return err
	}

	minifier := minify.New()
	minifier.AddFunc("text/css", css.Minify)
	minifier.AddFunc("text/html", html.Minify)
	if err := minifier.Minify("text/html", w, bytes.NewReader(b)); err != nil {
		return fmt.Errorf("minifying report: %v", err)
	}
	return nil
}

func page(in Input) ([]byte, error) {
	edits := in.Diff.Edits()

	md := goldmark.New(
		goldmark.WithExtensions(extension.Table),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	src := []byte(summary(in, edits))
	doc := md.Parser().Parse(text.NewReader(src))

	var body bytes.Buffer
	if err := md.Renderer().Render(&body, src, doc); err != nil {
		return nil, fmt.Errorf("rendering summary: %v", err)
	}

	tree, err := toc.Inspect(doc, src, toc.MaxDepth(2))
	if err != nil {
		return nil, fmt.Errorf("building table of contents: %v", err)
	}
	var contents bytes.Buffer
	if list := toc.RenderList(tree); list != nil {
		if err := md.Renderer().Render(&contents, src, list); err != nil {
			return nil, fmt.Errorf("rendering table of contents: %v", err)
		}
	}

	lopt := highlight.LangFromFilename(in.FinalName)
	if in.FinalName == "" || in.FinalName == "/dev/null" {
		lopt = highlight.LangFromFilename(in.OrigName)
	}
	if in.Lang != "" {
		lopt = highlight.Lang(in.Lang)
	}
	var lines []highlight.Line
	if in.Patch != "" {
		lines, err = highlight.ParseUnified(in.Patch, lopt)
	} else {
		lines, err = highlight.Edits(edits, lopt)
	}
	if err != nil {
		return nil, fmt.Errorf("highlighting diff: %v", err)
	}

	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, struct {
		Title   string
		CSS     template.CSS
		TOC     template.HTML
		Summary template.HTML
		Inline  template.HTML
		Lines   []highlight.Line
	}{
		Title:   in.Title,
		CSS:     template.CSS(style),
		TOC:     template.HTML(contents.String()),
		Summary: template.HTML(body.String()),
		Inline:  template.HTML(render.New(render.Inline()).Render(edits)),
		Lines:   lines,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering report: %v", err)
	}
	return buf.Bytes(), nil
}

var tableEscaper = strings.NewReplacer("|", `\|`)

// summary returns the Markdown summary of a diff: title, statistics and one section per hunk.
func summary(in Input, edits []diff.Edit) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", in.Title)
	sb.WriteString("| File | Added | Deleted |\n| --- | ---: | ---: |\n")
	name := in.FinalName
	if in.OrigName != in.FinalName {
		name = in.OrigName + " → " + in.FinalName
	}
	fmt.Fprintf(&sb, "| %s | %d | %d |\n", tableEscaper.Replace(name), in.Diff.CountAdded(), in.Diff.CountDeleted())
	sb.WriteString(render.New(&sections{Format: render.Unified()}).Render(edits))
	return sb.String()
}

// sections renders every hunk of a unified diff as a Markdown section with the hunk in an
// indented code block.
type sections struct {
	render.Format
}

func (s *sections) HunkHeader(h render.Hunk) string {
	start, n := h.FinalStart, h.FinalLen
	if n == 0 {
		start, n = h.OrigStart, h.OrigLen
	}
	heading := fmt.Sprintf("Line %d", start)
	if n > 1 {
		heading = fmt.Sprintf("Lines %d-%d", start, start+n-1)
	}
	return "\n## " + heading + "\n\n" + indent(s.Format.HunkHeader(h))
}

func (s *sections) Context(lines []string) string { return indent(s.Format.Context(lines)) }
func (s *sections) Added(lines []string) string   { return indent(s.Format.Added(lines)) }
func (s *sections) Deleted(lines []string) string { return indent(s.Format.Deleted(lines)) }

func (s *sections) Changed(orig, final []string) string {
	return indent(s.Format.Changed(orig, final))
}

func indent(s string) string {
	var sb strings.Builder
	for l := range strings.Lines(s) {
		sb.WriteString("    ")
		sb.WriteString(l)
	}
	return sb.String()
}

const style = `
body { font-family: sans-serif; margin: 0 auto; max-width: 60em; }
pre, code { font-family: monospace; }
ins { background: #e6ffec; text-decoration: none; }
del { background: #ffebe9; }
table.listing { border-collapse: collapse; width: 100%; }
table.listing td.no { color: #888; text-align: right; padding: 0 .5em; user-select: none; }
tr.add { background: #e6ffec; }
tr.del { background: #ffebe9; }
.hl-b { font-weight: bold; }
.hl-bl { color: #0550ae; }
.hl-i { font-style: italic; }
.hl-ii { font-style: italic; color: #6e7781; }
`

var pageTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>{{.CSS}}</style>
</head>
<body>
<nav>{{.TOC}}</nav>
<main>
{{.Summary}}
<h2>Inline</h2>
<pre class="inline">{{.Inline}}</pre>
<h2>Listing</h2>
<table class="listing">
{{- range .Lines}}
<tr{{if .IsAdd}} class="add"{{else if .IsDelete}} class="del"{{end}}><td class="no">{{if gt .OrigNo 0}}{{.OrigNo}}{{end}}</td><td class="no">{{if gt .FinalNo 0}}{{.FinalNo}}{{end}}</td><td><code>{{.Content}}</code></td></tr>
{{- end}}
</table>
</main>
</body>
</html>
`))
