package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ramanasai/fator/internal/db"
	"github.com/ramanasai/fator/internal/utils"
)

var (
	historySince string
	historyType  string
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently picked conversion factors",
	Long: `Examples:
	fator history                       # last 7 days
	fator history --since today
	fator history --since 2025-01-01 --type harvestIndex`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		since, err := utils.ParseSince(historySince, time.Now())
		if err != nil {
			return fmt.Errorf("invalid --since %q: %w", historySince, err)
		}
		dbh, err := app.store()
		if err != nil {
			return err
		}
		selections, err := db.RecentSelections(dbh, historyType, since, historyLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(selections) == 0 {
			fmt.Fprintln(out, "No selections.")
			return nil
		}
		for _, s := range selections {
			id := "-"
			if s.ConstantID > 0 {
				id = fmt.Sprintf("#%d", s.ConstantID)
			}
			fmt.Fprintf(out, "%s  %-20s %-6s %s\n",
				s.At.Local().Format("2006-01-02 15:04"), s.ConstantType, id, s.Value)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVarP(&historySince, "since", "s", "7d", "today|yesterday|7d|2w|YYYY-MM-DD|all")
	historyCmd.Flags().StringVarP(&historyType, "type", "t", "", "Only this constant type")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum rows (0 = no limit)")
}
