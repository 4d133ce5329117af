package main

import (
	"bufio"
	"cmp"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"znkr.io/diffkit/report"
)

func newHTMLCmd(a *app) *cobra.Command {
	var (
		out   string
		title string
		lang  string
	)
	htmlCmd := &cobra.Command{
		Use:   "html [flags] ORIGINAL FINAL",
		Short: "Write an HTML report of the differences between two files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := a.readLines(args[0])
			if err != nil {
				return err
			}
			y, err := a.readLines(args[1])
			if err != nil {
				return err
			}
			d, err := a.compare(x, y)
			if err != nil {
				return err
			}
			return a.writeReport(out, report.Input{
				Title:     cmp.Or(title, args[0]+" → "+args[1]),
				OrigName:  args[0],
				FinalName: args[1],
				Diff:      d,
				Lang:      lang,
			})
		},
	}
	htmlCmd.Flags().StringVarP(&out, "output", "o", "-", "output file, - for standard output")
	htmlCmd.Flags().StringVar(&title, "title", "", "title of the report (default: the file names)")
	htmlCmd.Flags().StringVar(&lang, "lang", "", "language for syntax highlighting (default: derived from the file names)")
	return htmlCmd
}

// writeReport writes the HTML report for in to the named file, - writes to standard output.
func (a *app) writeReport(name string, in report.Input) error {
	if name == "-" {
		return report.HTML(a.stdout, in)
	}

	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("creating report: %v", err)
	}
	w := bufio.NewWriter(f)
	if err := report.HTML(w, in); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing report: %v", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing report: %v", err)
	}
	a.log.Debug("wrote report", "file", name)
	return nil
}
