package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formkit/pkg/formvalidate"
)

func newCheckCmd(g *globalFlags) *cobra.Command {
	var (
		formID  string
		sets    []string
		showDOM bool
	)

	cmd := &cobra.Command{
		Use:   "check PAGE",
		Short: "Fill a form and run its submit validation",
		Long: `Check loads PAGE (an HTML file or a built-in page name), attaches the
catalog rules of the form, applies the --set values as if typed and
submits. It exits 0 when the submission would proceed and 1 when it is
blocked.`,
		Example: `  formkit check register --form register_form --set username=ann --set email=ann@example.com`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := g.loadCatalog()
			if err != nil {
				return err
			}
			spec, err := catalog.Form(formID)
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

			form := formvalidate.Attach(doc, spec, formvalidate.WithLogger(g.logger(cmd)))
			if !form.Attached() {
				return fmt.Errorf("form %q not found on %s", formID, args[0])
			}
			for _, kv := range values {
				if form.Fill(kv[0], kv[1]) {
					continue
				}
				el := doc.GetElementByID(kv[0])
				if el == nil {
					return fmt.Errorf("no field %q in form %q", kv[0], formID)
				}
				el.SetValue(kv[1])
			}

			out := cmd.OutOrStdout()
			allowed := doc.Submit(doc.GetElementByID(formID))
			for _, e := range form.Errors() {
				fmt.Fprintf(out, "%s: %s\n", e.Field, e.Message)
			}
			if showDOM {
				html, err := doc.GetElementByID(formID).OuterHTML()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, html)
			}
			if !allowed {
				fmt.Fprintln(out, "submission blocked")
				return errBlocked
			}
			fmt.Fprintln(out, "submission proceeds")
			return nil
		},
	}

	cmd.Flags().StringVarP(&formID, "form", "f", "", "form id from the catalog")
	cmd.Flags().StringArrayVarP(&sets, "set", "s", nil, "field=value to fill before submitting (repeatable)")
	cmd.Flags().BoolVar(&showDOM, "html", false, "print the form markup after validation")
	_ = cmd.MarkFlagRequired("form")
	return cmd
}
