package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ramanasai/fator/internal/constants"
	"github.com/ramanasai/fator/internal/db"
)

var (
	editType      string
	editValue     string
	editReference string
	editComment   string
)

var editAttrs = newAttrFlags()

var editCmd = &cobra.Command{
	Use:   "edit <constant-id>",
	Short: "Edit an existing conversion factor",
	Long: `Only the given flags change. Pass not_informed or an empty value to clear an attribute.

Examples:
	fator edit 12 --value 0.47
	fator edit 12 --soil clay --comment "revisado"
	fator edit 12 --biome not_informed`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		var patch db.ConstantPatch
		flags := cmd.Flags()
		if flags.Changed("type") {
			if editType == "" {
				return fmt.Errorf("type cannot be empty")
			}
			patch.Type = &editType
		}
		if flags.Changed("value") {
			v, err := parseValue(editValue)
			if err != nil {
				return err
			}
			patch.Value = &v
		}
		if flags.Changed("reference") {
			patch.Reference = &editReference
		}
		if flags.Changed("comment") {
			patch.Comment = &editComment
		}
		if changed := editAttrs.changed(cmd); len(changed) > 0 {
			patch.Attrs = map[constants.Attribute]*string{}
			for _, a := range changed {
				patch.Attrs[a] = editAttrs.stored(a)
			}
		}

		if patch.IsEmpty() {
			return fmt.Errorf("nothing to update - specify at least one field to edit")
		}

		dbh, err := app.store()
		if err != nil {
			return err
		}
		if err := db.UpdateConstant(dbh, id, patch); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return fmt.Errorf("constant with ID %d not found", id)
			}
			return err
		}
		app.log.Info("constant updated", zap.Int64("id", id))
		fmt.Fprintf(cmd.OutOrStdout(), "Constant %d updated successfully.\n", id)
		return nil
	},
}

func init() {
	editCmd.Flags().StringVarP(&editType, "type", "t", "", "New constant type")
	editCmd.Flags().StringVar(&editValue, "value", "", "New value")
	editCmd.Flags().StringVarP(&editReference, "reference", "r", "", "New reference")
	editCmd.Flags().StringVarP(&editComment, "comment", "m", "", "New comment")
	editAttrs.register(editCmd, "New %s (not_informed or empty clears it)")
}
