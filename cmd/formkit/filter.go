package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formkit/pkg/dom"
	"github.com/dmitrymomot/formkit/pkg/tablefilter"
)

func newFilterCmd(g *globalFlags) *cobra.Command {
	var (
		tableID string
		sets    []string
		reset   bool
	)

	cmd := &cobra.Command{
		Use:   "filter PAGE",
		Short: "Apply filter selections to a table and list the visible rows",
		Long: `Filter loads PAGE, attaches the catalog filters of the table and picks
the --set values in the given order, as a user changing each select would.
With --reset the reset control is clicked afterwards.`,
		Example: `  formkit filter teams --table teams_table --set gender_filter=girls`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := g.loadCatalog()
			if err != nil {
				return err
			}
			spec, err := catalog.Table(tableID)
			if err != nil {
				return err
			}
			values, err := parseAssignments(sets)
			if err != nil {
				return err
			}
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}

			table := tablefilter.Attach(doc, spec, tablefilter.WithLogger(g.logger(cmd)))
			if !table.Attached() {
				return fmt.Errorf("table %q not found on %s", tableID, args[0])
			}
			for _, kv := range values {
				ctl := table.Control(kv[0])
				if ctl == nil {
					return fmt.Errorf("no control %q for table %q", kv[0], tableID)
				}
				doc.Change(ctl, kv[1])
			}
			if reset {
				if spec.Reset != "" && doc.GetElementByID(spec.Reset) != nil {
					doc.Click(doc.GetElementByID(spec.Reset))
				} else {
					table.Reset()
				}
			}

			out := cmd.OutOrStdout()
			visible := table.VisibleRows()
			for _, row := range visible {
				fmt.Fprintln(out, describeRow(row))
			}
			fmt.Fprintf(out, "%d of %d rows visible\n", len(visible), len(table.Rows()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&tableID, "table", "t", "", "table id from the catalog")
	cmd.Flags().StringArrayVarP(&sets, "set", "s", nil, "control=value to select (repeatable)")
	cmd.Flags().BoolVar(&reset, "reset", false, "click the reset control last")
	_ = cmd.MarkFlagRequired("table")
	return cmd
}

// describeRow prints the row id followed by its data attributes.
func describeRow(row *dom.Element) string {
	var b strings.Builder
	b.WriteString(row.ID())
	for _, a := range row.Node().Attr {
		if name, ok := strings.CutPrefix(a.Key, "data-"); ok {
			fmt.Fprintf(&b, " %s=%q", name, a.Val)
		}
	}
	return strings.TrimSpace(b.String())
}
