package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ramanasai/fator/internal/db"
	"github.com/ramanasai/fator/internal/importer"
)

var (
	importType   string
	importDryRun bool
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import conversion factors from CSV, JSON or XLSX",
	Long: `The first row (or the object keys, for JSON) names the columns:
type, value, country, climate, biome, irrigation, soil, cultivation_system,
reference and comment. Empty cells are stored as not informed. The whole file
is imported in one transaction.

Examples:
	fator import catalog.xlsx
	fator import harvest.csv --type harvestIndex
	fator import catalog.json --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := importer.ReadFile(args[0], importer.Options{DefaultType: importType})
		if err != nil {
			return fmt.Errorf("import %s: %w", args[0], err)
		}
		if importDryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "%d constants read, nothing saved.\n", len(records))
			return nil
		}

		dbh, err := app.store()
		if err != nil {
			return err
		}
		n, err := db.InsertConstants(dbh, records)
		if err != nil {
			return err
		}
		app.log.Info("catalog imported", zap.String("file", args[0]), zap.Int("records", n))
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d constants.\n", n)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importType, "type", "t", "", "Constant type for rows without one")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Parse and validate only")
}
