// Command diffkit compares, merges and renders text files.
//
// The diff and stat commands exit with status 0 if the inputs are the same and 1 if they differ,
// merge exits with 1 if there are conflicts. All commands exit with status 2 on trouble.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"znkr.io/diffkit/config"
	"znkr.io/diffkit/diff"
)

// exitError reports an exit status that isn't a failure, e.g. 1 for inputs that differ.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

var errDifferent = &exitError{code: 1}

// app holds the state shared by all commands of one invocation.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	v   *viper.Viper
	cfg *config.Config
	log *log.Logger
}

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"engine":            "engine",
	"format":            "format",
	"context":           "context",
	"color":             "color",
	"indent-heuristic":  "indent_heuristic",
	"ignore-case":       "ignore.case",
	"ignore-space":      "ignore.space",
	"strip-trailing-cr": "ignore.trailing_cr",
	"split-characters":  "inline.split_characters",
	"label1":            "merge.label1",
	"label2":            "merge.label2",
	"style":             "merge.style",
}

func (a *app) load(cmd *cobra.Command) error {
	level := log.WarnLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = log.DebugLevel
	}
	a.log = log.NewWithOptions(a.stderr, log.Options{
		Level:  level,
		Prefix: "diffkit",
	})

	a.v = viper.New()
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := a.v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("binding flag %s: %v", name, err)
			}
		}
	}

	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("determining workdir: %v", err)
	}
	cfg, err := config.Load(a.v, dir)
	if err != nil {
		return err
	}
	a.cfg = cfg
	if f := a.v.ConfigFileUsed(); f != "" {
		a.log.Debug("loaded config", "file", f)
	}
	return nil
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "diffkit [command]",
		Short:         "Compare, merge and render text files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("engine", diff.Auto, "diff engine: "+diff.Auto+", "+strings.Join(diff.Engines(), ", "))
	flags.StringP("format", "f", "unified", "output format: "+strings.Join(config.Formats, ", "))
	flags.IntP("context", "U", -1, "number of context lines, -1 for the default of the format")
	flags.String("color", "auto", "colorize unified output: auto, always or never")
	flags.Bool("indent-heuristic", false, "shift changes to align with indentation")
	flags.BoolP("ignore-case", "i", false, "ignore case differences")
	flags.BoolP("ignore-space", "b", false, "ignore changes in the amount of white space")
	flags.Bool("strip-trailing-cr", false, "strip trailing carriage returns from input lines")
	flags.Bool("split-characters", false, "inline format: compare changed lines character by character")
	flags.BoolP("verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newDiffCmd(a))
	rootCmd.AddCommand(newMergeCmd(a))
	rootCmd.AddCommand(newPatchCmd(a))
	rootCmd.AddCommand(newStatCmd(a))
	rootCmd.AddCommand(newHTMLCmd(a))
	rootCmd.AddCommand(newWatchCmd(a))
	return rootCmd
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	var ee *exitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &ee):
		return ee.code
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
