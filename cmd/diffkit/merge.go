package main

import (
	"cmp"
	"fmt"

	"github.com/spf13/cobra"

	"znkr.io/diffkit/diff"
	"znkr.io/diffkit/merge"
)

func newMergeCmd(a *app) *cobra.Command {
	mergeCmd := &cobra.Command{
		Use:   "merge [flags] ORIGIN FINAL1 FINAL2",
		Short: "Merge the changes of two files against their common origin",
		Long: "Merge the changes from ORIGIN to FINAL1 and from ORIGIN to FINAL2 and write the result " +
			"to standard output. Conflicting changes are written between conflict markers.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var inputs [3][]string
			for i, name := range args {
				lines, err := a.readLines(name)
				if err != nil {
					return err
				}
				inputs[i] = lines
			}

			opts := []merge.Option{merge.WithEngine(a.cfg.Engine)}
			if a.cfg.IndentHeuristic {
				opts = append(opts, merge.WithIndentHeuristic())
			}
			m, err := merge.New(inputs[0], inputs[1], inputs[2], opts...)
			if err != nil {
				return fmt.Errorf("merging files: %w", err)
			}

			markers := merge.DefaultMarkers
			if a.cfg.Merge.Style == "diff3" {
				markers = merge.Diff3Markers
			}
			label1 := cmp.Or(a.cfg.Merge.Label1, args[1])
			label2 := cmp.Or(a.cfg.Merge.Label2, args[2])
			fmt.Fprint(a.stdout, diff.JoinLines(m.MergedOutputWithMarkers(markers, label1, label2)))

			if !m.Clean() {
				a.log.Warn("merge has conflicts", "conflicts", m.Conflicts())
				return errDifferent
			}
			return nil
		},
	}
	mergeCmd.Flags().String("label1", "", "label of FINAL1 in conflict markers (default: file name)")
	mergeCmd.Flags().String("label2", "", "label of FINAL2 in conflict markers (default: file name)")
	mergeCmd.Flags().String("style", "merge", "conflict style: merge or diff3 (also shows the origin)")
	return mergeCmd
}
