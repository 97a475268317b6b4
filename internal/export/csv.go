// Package export renders analysis aggregates as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/acmercer/timekeep/internal/service"
)

// WriteReportCSV writes one row per tag plus kind totals. Durations are
// whole seconds, matching the persisted record's unit.
func WriteReportCSV(w io.Writer, report *service.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"category", "name", "seconds"}); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, row := range [][2]any{
		{"active", report.Active},
		{"break", report.Break},
		{"idle", report.Idle},
		{"untagged", report.Untagged},
		{"total", report.Total},
	} {
		if err := cw.Write([]string{"summary", row[0].(string), seconds(row[1].(time.Duration))}); err != nil {
			return fmt.Errorf("writing summary row: %w", err)
		}
	}
	if err := writeTagRows(cw, "project", report.ByProject); err != nil {
		return err
	}
	if err := writeTagRows(cw, "action", report.ByAction); err != nil {
		return err
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

func writeTagRows(cw *csv.Writer, category string, totals map[string]time.Duration) error {
	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := cw.Write([]string{category, name, seconds(totals[name])}); err != nil {
			return fmt.Errorf("writing %s row: %w", category, err)
		}
	}
	return nil
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.0f", d.Seconds())
}
