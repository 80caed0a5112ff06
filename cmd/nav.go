// Copyright © 2024 The libadalang-go authors

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Pateldisolution/libadalang/ast"
	"github.com/Pateldisolution/libadalang/astutil"
	"github.com/Pateldisolution/libadalang/sem"
)

// navCmd represents the nav command
var navCmd = &cobra.Command{
	Use:   "nav FILE...",
	Short: "Dump declarations and their correspondences",
	Long: `Parse each FILE as a compilation unit and print the short image of
every declaration it contains, followed by the declaration's resolved
correspondences (completing body, separate declaration, wrapped
declaration, full type view).  Units referenced by a correspondence are
loaded from the source path on demand.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newContext()
		if err != nil {
			return err
		}
		var units []*sem.AnalysisUnit
		for _, path := range args {
			u, err := ctx.GetUnitFromFile(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			units = append(units, u)
		}
		for _, u := range units {
			fmt.Printf("-- %s (%s)\n", u.Filename(), u.Kind())
			for _, d := range astutil.Decls(u.Root()) {
				fmt.Println(sem.ShortImage(d))
				printCorrespondences(ctx, d)
			}
		}
		return nil
	},
}

// navKinds are the correspondences nav reports per declaration.
var navKinds = []sem.CorrespondenceKind{
	sem.SpecToBody,
	sem.BodyToSpec,
	sem.GenericUnwrap,
	sem.PrivateToFull,
}

func printCorrespondences(ctx *sem.Context, d *ast.Node) {
	for _, kind := range navKinds {
		target := ctx.Correspond(kind, d)
		if target == nil {
			continue
		}
		if target.Kind() == ast.KindDefiningName {
			if decl := ast.DeclOf(target); decl != nil {
				target = decl
			}
		}
		fmt.Printf("  %-16s %s\n", kind, sem.ShortImage(target))
	}
}

func init() {
	rootCmd.AddCommand(navCmd)
}
