package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"znkr.io/diffkit/render"
)

func newStatCmd(a *app) *cobra.Command {
	var width int
	statCmd := &cobra.Command{
		Use:   "stat [flags] ORIGINAL FINAL [ORIGINAL FINAL...]",
		Short: "Summarize the changes between pairs of files",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || len(args)%2 != 0 {
				return fmt.Errorf("requires pairs of files, got %d arguments", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var stats []render.FileStat
			different := false
			for i := 0; i < len(args); i += 2 {
				x, err := a.readLines(args[i])
				if err != nil {
					return err
				}
				y, err := a.readLines(args[i+1])
				if err != nil {
					return err
				}
				d, err := a.compare(x, y)
				if err != nil {
					return err
				}
				different = different || !d.IsEmpty()
				stats = append(stats, render.Stats(args[i+1], d))
			}
			fmt.Fprint(a.stdout, render.Diffstat(stats, width))
			if different {
				return errDifferent
			}
			return nil
		},
	}
	statCmd.Flags().IntVarP(&width, "width", "w", 80, "width of the output")
	return statCmd
}
