package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"
)

func newCatalogCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Validate a rule catalog and print a summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := g.loadCatalog()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range slices.Sorted(maps.Keys(catalog.Patterns)) {
				fmt.Fprintf(out, "pattern %s %s\n", name, catalog.Patterns[name])
			}
			for _, f := range catalog.Forms {
				checks := 0
				for _, fld := range f.Fields {
					checks += len(fld.Checks)
				}
				fmt.Fprintf(out, "form %s: %d fields, %d checks\n", f.ID, len(f.Fields), checks)
			}
			for _, t := range catalog.Tables {
				fmt.Fprintf(out, "table %s: %d controls\n", t.ID, len(t.Controls))
			}
			return nil
		},
	}
}
