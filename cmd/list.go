package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ramanasai/fator/internal/constants"
	"github.com/ramanasai/fator/internal/db"
	"github.com/ramanasai/fator/internal/utils"
)

var (
	limit   int
	page    int
	format  string
	noColor bool
)

var listAttrs = newAttrFlags()

var listCmd = &cobra.Command{
	Use:   "list [type]",
	Short: "List conversion factors, optionally filtered",
	Long: `Every attribute flag narrows the list; combined flags must all match.
Use not_informed to keep only records where the attribute is missing.

Examples:
	fator list                                          # every constant
	fator list harvestIndex --climate tropical          # one climate
	fator list harvestIndex --country not_informed      # no country given
	fator list harvestIndex --format csv > hi.csv       # export
	fator list harvestIndex --format quiet --limit 1    # first value only`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		constantType := ""
		if len(args) == 1 {
			constantType = args[0]
		}

		renderConfig := utils.DefaultRenderConfig()
		renderConfig.Labels = app.labels
		renderConfig.Color = app.cfg.Output.Color && !noColor
		f := app.cfg.Output.Format
		if format != "" {
			f = format
		}
		outFormat, err := utils.ParseFormat(f)
		if err != nil {
			return err
		}
		renderConfig.Format = outFormat
		renderer := utils.NewRenderer(renderConfig)

		dbh, err := app.store()
		if err != nil {
			return err
		}
		records, err := db.ListConstants(dbh, constantType)
		if err != nil {
			return err
		}

		filter := listAttrs.filter(cmd)
		for _, a := range filter.Active() {
			warnUnknownValue(cmd, renderer, records, a, filter.Get(a))
		}
		visible := filter.Apply(records)
		app.log.Debug("list",
			zap.String("type", constantType),
			zap.Stringer("filter", filter),
			zap.Int("matched", len(visible)),
			zap.Int("total", len(records)))

		pagination := utils.NewPagination(len(visible), limit, page)
		list := &utils.ConstantList{
			Type:       constantType,
			Constants:  utils.Paginate(visible, pagination),
			Total:      len(visible),
			Page:       pagination.Current,
			PerPage:    pagination.PerPage,
			TotalPages: pagination.TotalPages,
		}
		if constantType != "" {
			list.TypeLabel = app.labels.ConstantType(constantType)
		} else {
			list.TypeLabel = "*"
		}
		if !filter.IsEmpty() {
			list.Filters = map[string]string{}
			for _, a := range filter.Active() {
				list.Filters[a.Key()] = filter.Get(a).String()
			}
		}

		output, err := renderer.RenderConstantList(list)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), output)
		return nil
	},
}

// warnUnknownValue reports a value criterion that no record carries, with a suggestion.
func warnUnknownValue(cmd *cobra.Command, r *utils.Renderer, records []constants.Record, a constants.Attribute, c constants.Criterion) {
	if c.Kind != constants.MatchValue {
		return
	}
	known := constants.Options(records, a).Values()
	if slices.Contains(known, c.Value) {
		return
	}
	msg := fmt.Sprintf("warning: no record has %s=%q", a.Key(), c.Value)
	if best, ok := constants.Suggest(c.Value, known); ok {
		msg += fmt.Sprintf(" (did you mean %q?)", best)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), r.Warn(msg))
}

func init() {
	listAttrs.register(listCmd, "Filter by %s (not_informed = missing)")
	listCmd.Flags().IntVarP(&limit, "limit", "n", 0, "Results per page (0 = all)")
	listCmd.Flags().IntVarP(&page, "page", "p", 1, "Page number")
	listCmd.Flags().StringVarP(&format, "format", "f", "", "Output format: default|table|json|csv|compact|quiet")
	listCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}
