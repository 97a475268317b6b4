package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/acmercer/timekeep/internal/cli/formatter"
	"github.com/acmercer/timekeep/internal/domain"
	"github.com/acmercer/timekeep/internal/service"
	"github.com/spf13/cobra"
)

const flagDateLayout = "2006-01-02"

func newAnalyzeCmd(app *App) *cobra.Command {
	var fromStr, toStr, sphere, tag, view string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Aggregate recorded time by sphere, project and action",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := buildFilter(fromStr, toStr, sphere, tag, view)
			if err != nil {
				return err
			}
			report, err := app.Analysis.CalculateTotals(context.Background(), filter)
			if err != nil {
				return err
			}
			fmt.Print(renderReport(report))
			return nil
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "Start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&toStr, "to", "", "End date (YYYY-MM-DD, exclusive)")
	cmd.Flags().StringVar(&sphere, "sphere", "", "Filter by sphere")
	cmd.Flags().StringVar(&tag, "tag", "", "Filter by project or action name")
	cmd.Flags().StringVar(&view, "view", "all", "Status view: active, archived or all")

	return cmd
}

func buildFilter(fromStr, toStr, sphere, tag, view string) (service.TotalsFilter, error) {
	f := service.TotalsFilter{Sphere: sphere, Tag: tag}
	switch view {
	case "active":
		f.View = domain.ViewActive
	case "archived":
		f.View = domain.ViewArchived
	case "all", "":
		f.View = domain.ViewAll
	default:
		return f, fmt.Errorf("unknown view %q (want active, archived or all)", view)
	}
	if fromStr != "" {
		t, err := time.ParseInLocation(flagDateLayout, fromStr, time.Local)
		if err != nil {
			return f, fmt.Errorf("parsing --from: %w", err)
		}
		f.From = t
	}
	if toStr != "" {
		t, err := time.ParseInLocation(flagDateLayout, toStr, time.Local)
		if err != nil {
			return f, fmt.Errorf("parsing --to: %w", err)
		}
		f.To = t
	}
	return f, nil
}

func renderReport(report *service.Report) string {
	summary := formatter.RenderTable(
		[]string{"KIND", "TOTAL"},
		[][]string{
			{"active", formatter.FormatDuration(report.Active)},
			{"break", formatter.FormatDuration(report.Break)},
			{"idle", formatter.FormatDuration(report.Idle)},
			{"untagged", formatter.Dim(formatter.FormatDuration(report.Untagged))},
			{"total", formatter.FormatDuration(report.Total)},
		},
	)
	out := formatter.RenderBox("Totals", summary)

	if len(report.ByProject) > 0 {
		out += formatter.RenderBox("Projects", renderTagTable(report.ByProject))
	}
	if len(report.ByAction) > 0 {
		out += formatter.RenderBox("Break actions", renderTagTable(report.ByAction))
	}
	return out
}

func renderTagTable(totals map[string]time.Duration) string {
	names := sortedKeys(totals)
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, formatter.FormatDuration(totals[name])})
	}
	return formatter.RenderTable([]string{"NAME", "TOTAL"}, rows)
}

func sortedKeys(m map[string]time.Duration) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
