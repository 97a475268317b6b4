package cli

import (
	"github.com/acmercer/timekeep/internal/config"
	"github.com/acmercer/timekeep/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Tracker    service.TrackerService
	Completion service.CompletionService
	Analysis   service.AnalysisService
	Catalog    service.CatalogService
	Config     config.Config

	// IsInteractive reports whether stdin is a terminal; interactive
	// flows (tracking view, completion forms) require it.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "timekeep" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "timekeep",
		Short: "Session time tracker with idle detection",
	}

	root.AddCommand(
		newStartCmd(app),
		newSphereCmd(app),
		newProjectCmd(app),
		newActionCmd(app),
		newCompleteCmd(app),
		newAnalyzeCmd(app),
		newExportCmd(app),
	)

	return root
}
