package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/acmercer/timekeep/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var fromStr, toStr, sphere, tag, view, outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export analysis totals as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := buildFilter(fromStr, toStr, sphere, tag, view)
			if err != nil {
				return err
			}
			report, err := app.Analysis.CalculateTotals(context.Background(), filter)
			if err != nil {
				return err
			}

			if outPath == "" {
				dir := app.Config.Export.Directory
				if dir == "" {
					dir = "."
				}
				outPath = filepath.Join(dir, fmt.Sprintf("timekeep-%s.csv", time.Now().Format("20060102-150405")))
			}
			if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
				return fmt.Errorf("creating export directory: %w", err)
			}
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating export file: %w", err)
			}
			defer f.Close()

			if err := export.WriteReportCSV(f, report); err != nil {
				return err
			}
			fmt.Printf("Exported totals to %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "Start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&toStr, "to", "", "End date (YYYY-MM-DD, exclusive)")
	cmd.Flags().StringVar(&sphere, "sphere", "", "Filter by sphere")
	cmd.Flags().StringVar(&tag, "tag", "", "Filter by project or action name")
	cmd.Flags().StringVar(&view, "view", "all", "Status view: active, archived or all")
	cmd.Flags().StringVar(&outPath, "out", "", "Output file path")

	return cmd
}
