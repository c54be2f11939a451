package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ramanasai/fator/internal/constants"
	"github.com/ramanasai/fator/internal/db"
)

var (
	addReference string
	addComment   string
)

var addAttrs = newAttrFlags()

var addCmd = &cobra.Command{
	Use:   "add <type> <value>",
	Short: "Add a conversion factor",
	Long: `Attributes left out, empty or given as not_informed are stored as not informed.

Examples:
	fator add harvestIndex 0.45 --country Brasil --climate tropical --reference "Embrapa 2019"
	fator add rootShootRatio 0,24 --biome Cerrado`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := parseValue(args[1])
		if err != nil {
			return err
		}
		rec := constants.Record{
			Type:      args[0],
			Value:     value,
			Reference: addReference,
			Comment:   addComment,
		}
		for _, a := range addAttrs.changed(cmd) {
			rec.SetAttr(a, addAttrs.stored(a))
		}

		dbh, err := app.store()
		if err != nil {
			return err
		}
		id, err := db.InsertConstant(dbh, rec)
		if err != nil {
			return err
		}
		app.log.Info("constant added", zap.Int64("id", id), zap.String("type", rec.Type), zap.Float64("value", value))
		fmt.Fprintf(cmd.OutOrStdout(), "Saved constant %d.\n", id)
		return nil
	},
}

func init() {
	addAttrs.register(addCmd, "Value of %s")
	addCmd.Flags().StringVarP(&addReference, "reference", "r", "", "Bibliographic reference")
	addCmd.Flags().StringVarP(&addComment, "comment", "m", "", "Free-text comment")
}
