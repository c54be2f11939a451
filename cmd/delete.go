package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ramanasai/fator/internal/db"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <constant-id>",
	Short: "Delete a conversion factor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		dbh, err := app.store()
		if err != nil {
			return err
		}
		if err := db.DeleteConstant(dbh, id); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return fmt.Errorf("constant with ID %d not found", id)
			}
			return err
		}
		app.log.Info("constant deleted", zap.Int64("id", id))
		fmt.Fprintf(cmd.OutOrStdout(), "Constant %d deleted.\n", id)
		return nil
	},
}
