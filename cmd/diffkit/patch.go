package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"znkr.io/diffkit/diff"
	"znkr.io/diffkit/render"
	"znkr.io/diffkit/report"
)

var patchFormats = map[string]diff.PatchFormat{
	"auto":    diff.AutoDetect,
	"unified": diff.Unified,
	"context": diff.Context,
}

func newPatchCmd(a *app) *cobra.Command {
	var (
		inputFormat string
		stat        bool
		htmlOut     string
		title       string
	)
	patchCmd := &cobra.Command{
		Use:   "patch [flags] PATCHFILE",
		Short: "Read a unified or context diff and render it again",
		Long: "Read a unified or context diff and write it in the selected output format, as a " +
			"diffstat or as an HTML report. Use - to read the patch from standard input.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pf, ok := patchFormats[inputFormat]
			if !ok {
				return fmt.Errorf("unknown input format %q, must be auto, unified or context", inputFormat)
			}
			text, err := a.readText(args[0])
			if err != nil {
				return err
			}
			d, err := diff.FromPatch(text, pf)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}

			switch {
			case stat:
				fmt.Fprint(a.stdout, render.Diffstat([]render.FileStat{render.Stats(args[0], d)}, 80))
			case htmlOut != "":
				in := report.Input{Title: title, OrigName: args[0], FinalName: args[0], Diff: d}
				if _, err := diff.ParsePatch(text, diff.Unified); err == nil {
					in.Patch = text
				}
				return a.writeReport(htmlOut, in)
			default:
				r, err := a.renderer()
				if err != nil {
					return err
				}
				fmt.Fprint(a.stdout, r.Render(d.Edits()))
			}
			return nil
		},
	}
	patchCmd.Flags().StringVar(&inputFormat, "input-format", "auto", "format of the patch: auto, unified or context")
	patchCmd.Flags().BoolVar(&stat, "stat", false, "write a diffstat instead of the patch")
	patchCmd.Flags().StringVar(&htmlOut, "html", "", "write an HTML report to this file, - for standard output")
	patchCmd.Flags().StringVar(&title, "title", "", "title of the HTML report")
	return patchCmd
}

func (a *app) readText(name string) (string, error) {
	var b []byte
	var err error
	if name == "-" {
		b, err = io.ReadAll(a.stdin)
	} else {
		b, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("reading input: %v", err)
	}
	return string(b), nil
}
