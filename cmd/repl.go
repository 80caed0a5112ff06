// Copyright © 2024 The libadalang-go authors

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Pateldisolution/libadalang/repl"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl [FILE...]",
	Short: "Start an interactive navigation shell",
	Long: `Start an interactive shell over an analysis context.  Any FILE
arguments are loaded as compilation units before the prompt appears;
further units load on demand when navigation crosses unit boundaries.

Example session:
  lal> load stacks.ads
  loaded stacks (spec) from stacks.ads
  lal> find Push
  <SubpDecl ["Push"] stacks.ads:4:4>
  lal> body
  <SubpBody ["Push"] stacks.adb:3:4>
  lal> spec
  <SubpDecl ["Push"] stacks.ads:4:4>

Use Ctrl-D or "quit" to exit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newContext()
		if err != nil {
			return err
		}
		for _, path := range args {
			if _, err := ctx.GetUnitFromFile(path); err != nil {
				fmt.Fprintf(os.Stderr, "%s: %s\n", path, err)
			}
		}
		repl.RunRepl(ctx, filepath.Base(os.Args[0])+"> ")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
