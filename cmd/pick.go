package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ramanasai/fator/internal/constants"
	"github.com/ramanasai/fator/internal/db"
	"github.com/ramanasai/fator/internal/notify"
	"github.com/ramanasai/fator/internal/picker"
	"github.com/ramanasai/fator/internal/ui"
)

var errNoSelection = errors.New("no conversion factor selected")

var (
	pickStay     bool
	pickTheme    string
	pickNoRecord bool
)

// pickCmd opens the picker modal. The UI draws on stderr; the chosen value is
// the only thing written to stdout.
var pickCmd = &cobra.Command{
	Use:   "pick <type>",
	Short: "Choose a conversion factor interactively",
	Long: `Examples:
	fator pick harvestIndex
	value=$(fator pick rootShootRatio)`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		constantType := args[0]
		dbh, err := app.store()
		if err != nil {
			return err
		}
		records, err := db.ListConstants(dbh, constantType)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			warnUnknownType(cmd, constantType)
		}

		var (
			p      *picker.Picker
			chosen []string
		)
		onChange := func(value string) {
			chosen = append(chosen, value)
			rec, _ := p.Selected()
			if !pickNoRecord {
				if _, err := db.RecordSelection(dbh, db.Selection{
					ConstantType: constantType,
					ConstantID:   rec.ID,
					Value:        value,
				}); err != nil {
					app.log.Warn("selection not recorded", zap.Error(err))
				}
			}
			if app.cfg.Notify.OnSelect {
				if err := notify.Selected(app.labels.Text("notify_title"), app.labels.ConstantType(constantType), value); err != nil {
					app.log.Warn("notification failed", zap.Error(err))
				}
			}
		}
		p = picker.New(constantType, records, onChange, picker.WithLogger(app.log))

		theme := app.cfg.Theme
		if pickTheme != "" {
			theme = pickTheme
		}
		m := ui.New(p, app.labels, ui.Options{
			Theme:     theme,
			StartOpen: true,
			StayOpen:  pickStay || app.cfg.Picker.StayOpen,
			Logger:    app.log,
		})
		if _, err := ui.Run(m); err != nil {
			return fmt.Errorf("picker: %w", err)
		}

		if len(chosen) == 0 {
			return errNoSelection
		}
		fmt.Fprintln(cmd.OutOrStdout(), chosen[len(chosen)-1])
		return nil
	},
}

// warnUnknownType hints at a close existing type when constantType has no records.
func warnUnknownType(cmd *cobra.Command, constantType string) {
	dbh, err := app.store()
	if err != nil {
		return
	}
	types, err := db.ListTypes(dbh)
	if err != nil {
		return
	}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.Type
	}
	if best, ok := constants.Suggest(constantType, names); ok {
		fmt.Fprintf(cmd.ErrOrStderr(), "No constants of type %q. Did you mean %q?\n", constantType, best)
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "No constants of type %q.\n", constantType)
}

func init() {
	pickCmd.Flags().BoolVar(&pickStay, "stay", false, "Keep the app open after the modal closes (e reopens it)")
	pickCmd.Flags().StringVar(&pickTheme, "theme", "", "Theme: default|mono")
	pickCmd.Flags().BoolVar(&pickNoRecord, "no-history", false, "Do not record the selection")
}
