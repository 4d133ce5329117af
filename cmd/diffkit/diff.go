package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"znkr.io/diffkit/diff"
	"znkr.io/diffkit/render"
)

func newDiffCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "diff [flags] ORIGINAL FINAL",
		Short: "Show the differences between two files",
		Long:  "Show the differences between two files. Use - to read a file from standard input.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, different, err := a.diffFiles(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprint(a.stdout, out)
			if different {
				return errDifferent
			}
			return nil
		},
	}
}

// diffFiles renders the diff between two files and reports whether they differ.
func (a *app) diffFiles(x, y string) (string, bool, error) {
	xlines, err := a.readLines(x)
	if err != nil {
		return "", false, err
	}
	ylines, err := a.readLines(y)
	if err != nil {
		return "", false, err
	}
	d, err := a.compare(xlines, ylines)
	if err != nil {
		return "", false, err
	}
	if d.IsEmpty() {
		return "", false, nil
	}
	r, err := a.renderer()
	if err != nil {
		return "", false, err
	}
	return fileHeader(a.cfg.Format, x, y) + r.Render(d.Edits()), true, nil
}

// readLines reads the lines of a file, - reads standard input. Carriage returns are stripped if
// configured.
func (a *app) readLines(name string) ([]string, error) {
	text, err := a.readText(name)
	if err != nil {
		return nil, err
	}
	lines := diff.SplitLines(text)
	if a.cfg.Ignore.TrailingCR {
		lines = diff.TrimNewlines(lines)
	}
	return lines, nil
}

func (a *app) diffOptions() []diff.Option {
	opts := []diff.Option{diff.WithEngine(a.cfg.Engine)}
	if a.cfg.IndentHeuristic {
		opts = append(opts, diff.WithIndentHeuristic())
	}
	return opts
}

func (a *app) compare(x, y []string) (*diff.Diff, error) {
	start := time.Now()
	var d *diff.Diff
	var err error
	if a.cfg.Ignore.Case || a.cfg.Ignore.Space {
		d, err = diff.NewMapped(x, y, a.project(x), a.project(y), a.diffOptions()...)
	} else {
		d, err = diff.New(x, y, a.diffOptions()...)
	}
	if err != nil {
		return nil, fmt.Errorf("comparing files: %w", err)
	}
	a.log.Debug("computed diff", "engine", a.cfg.Engine, "lines", len(x)+len(y), "duration", time.Since(start))
	return d, nil
}

// project maps lines to the form they are compared in.
func (a *app) project(lines []string) []string {
	return diff.Map(lines, func(l string) string {
		if a.cfg.Ignore.Space {
			l = diff.CollapseSpace(l)
		}
		if a.cfg.Ignore.Case {
			l = diff.FoldCase(l)
		}
		return l
	})
}

func (a *app) renderer() (*render.Renderer, error) {
	var f render.Format
	switch a.cfg.Format {
	case "unified":
		f = render.Unified()
		if a.useColor() {
			cf, err := render.Colored(render.ANSI())
			if err != nil {
				return nil, err
			}
			f = cf
		}
	case "context":
		f = render.Context()
	case "normal":
		f = render.Normal()
	case "inline":
		ic := a.cfg.Inline
		opts := []render.InlineOption{
			render.WithInsertMarkers(ic.InsPrefix, ic.InsSuffix),
			render.WithDeleteMarkers(ic.DelPrefix, ic.DelSuffix),
		}
		if ic.SplitCharacters {
			opts = append(opts, render.SplitCharacters())
		}
		f = render.Inline(opts...)
	default:
		return nil, fmt.Errorf("unknown format %q", a.cfg.Format)
	}

	var opts []render.Option
	if a.cfg.Context >= 0 {
		opts = append(opts, render.WithContext(a.cfg.Context, a.cfg.Context))
	}
	return render.New(f, opts...), nil
}

func (a *app) useColor() bool {
	switch a.cfg.Color {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := a.stdout.(*os.File)
	return ok && f == os.Stdout && !color.NoColor
}

// fileHeader returns the header naming both files for formats that have one.
func fileHeader(format, x, y string) string {
	switch format {
	case "unified":
		return fmt.Sprintf("--- %s\n+++ %s\n", x, y)
	case "context":
		return fmt.Sprintf("*** %s\n--- %s\n", x, y)
	}
	return ""
}
