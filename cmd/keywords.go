// Copyright © 2024 The libadalang-go authors

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// keywordsCmd represents the keywords command
var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "List reserved words under the configured dialect",
	Long: `List every word reserved under the configured language revision:
the base reserved words plus the revision's contextual additions.
Revisions only ever add words, so the list for a later revision is a
superset of every earlier one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newContext()
		if err != nil {
			return err
		}
		for _, word := range ctx.KeywordNames(ctx.Dialect()) {
			fmt.Println(word)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keywordsCmd)
}
