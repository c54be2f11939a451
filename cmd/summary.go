package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramanasai/fator/internal/constants"
	"github.com/ramanasai/fator/internal/db"
)

// summaryCmd prints the stored types, or the value breakdown of one type.
var summaryCmd = &cobra.Command{
	Use:   "summary [type]",
	Short: "Catalog summary",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbh, err := app.store()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			types, err := db.ListTypes(dbh)
			if err != nil {
				return err
			}
			if len(types) == 0 {
				fmt.Fprintln(out, app.labels.Text("empty"))
				return nil
			}
			total := 0
			for _, t := range types {
				fmt.Fprintf(out, "  %-20s %-28s %4d\n", t.Type, app.labels.ConstantType(t.Type), t.Count)
				total += t.Count
			}
			fmt.Fprintf(out, "  %-20s %-28s %4d\n", "TOTAL", "", total)
			return nil
		}

		constantType := args[0]
		records, err := db.ListConstants(dbh, constantType)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s (%d):\n", app.labels.ConstantType(constantType), len(records))
		if len(records) == 0 {
			return nil
		}
		for _, facet := range constants.Facets(records) {
			fmt.Fprintf(out, "  %s\n", app.labels.Attribute(facet.Attribute))
			for _, o := range facet.Options {
				fmt.Fprintf(out, "    %-28s %4d\n", app.labels.Value(facet.Attribute, o.Value), o.Count)
			}
			if facet.Absent > 0 {
				fmt.Fprintf(out, "    %-28s %4d\n", app.labels.Text("not_informed"), facet.Absent)
			}
		}
		return nil
	},
}
