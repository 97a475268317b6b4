package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/acmercer/timekeep/internal/cli/formatter"
	"github.com/acmercer/timekeep/internal/domain"
	"github.com/acmercer/timekeep/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newCompleteCmd(app *App) *cobra.Command {
	var skip bool

	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Tag recorded sessions with spheres, projects and actions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			pending, err := app.Completion.ListPending(ctx)
			if err != nil {
				return err
			}
			if len(pending) == 0 {
				fmt.Println("Nothing to complete.")
				return nil
			}
			if skip {
				defaults := service.SkipDefaults{
					Sphere:  app.Config.Defaults.Sphere,
					Project: app.Config.Defaults.Project,
					Action:  app.Config.Defaults.Action,
				}
				for _, sess := range pending {
					if err := app.Completion.Skip(ctx, sess.ID, defaults); err != nil {
						return err
					}
				}
				fmt.Printf("Applied defaults to %d session(s)\n", len(pending))
				return nil
			}
			if !app.interactive() {
				return fmt.Errorf("complete requires an interactive terminal (or --skip)")
			}
			for _, sess := range pending {
				if err := completeSession(ctx, app, sess); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&skip, "skip", false, "Apply configured defaults instead of prompting")
	return cmd
}

func completeSession(ctx context.Context, app *App, sess *domain.Session) error {
	fmt.Printf("Session %s on %s (%s active, %s break)\n",
		formatter.TruncID(sess.ID),
		sess.Start.Local().Format("2006-01-02"),
		formatter.FormatDuration(sess.ActiveDuration),
		formatter.FormatDuration(sess.DisplayBreakDuration()))

	if sess.Sphere == "" {
		sphere, err := pickSphere(ctx, app)
		if err != nil {
			return err
		}
		if err := app.Completion.AssignSphere(ctx, sess.ID, sphere); err != nil {
			return err
		}
		sess.Sphere = sphere
	}

	for i := range sess.Periods {
		p := &sess.Periods[i]
		if p.Tag != "" {
			continue
		}
		assignment, err := promptAssignment(ctx, app, sess, p)
		if err != nil {
			return err
		}
		if err := app.Completion.TagPeriod(ctx, sess.ID, i, assignment); err != nil {
			return err
		}
	}
	return nil
}

func pickSphere(ctx context.Context, app *App) (string, error) {
	spheres, err := app.Catalog.ListSpheres(ctx, false)
	if err != nil {
		return "", err
	}
	if len(spheres) == 0 {
		return "", fmt.Errorf("no spheres defined; create one with 'timekeep sphere add'")
	}
	options := make([]huh.Option[string], 0, len(spheres))
	for _, s := range spheres {
		options = append(options, huh.NewOption(s.Name, s.Name))
	}
	var sphere string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title("Sphere").Options(options...).Value(&sphere),
	))
	if err := form.Run(); err != nil {
		return "", err
	}
	return sphere, nil
}

// promptAssignment collects the tag assignment for one period: a primary
// label, and optionally a secondary label with a percentage split.
func promptAssignment(ctx context.Context, app *App, sess *domain.Session, p *domain.Period) (domain.TagAssignment, error) {
	var a domain.TagAssignment

	options, err := tagOptions(ctx, app, sess, p)
	if err != nil {
		return a, err
	}

	title := fmt.Sprintf("%s period %s–%s (%s)",
		p.Kind,
		p.Start.Local().Format("15:04"),
		p.End.Local().Format("15:04"),
		formatter.FormatDuration(p.Duration()))

	var split bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title(title).Options(options...).Value(&a.Primary),
		huh.NewInput().Title("Comment").Value(&a.PrimaryComment),
		huh.NewConfirm().Title("Split with a second activity?").Value(&split),
	))
	if err := form.Run(); err != nil {
		return a, err
	}
	if !split {
		return a, nil
	}

	var pctStr string
	form = huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title("Secondary activity").Options(options...).Value(&a.Secondary),
		huh.NewInput().Title("Secondary percentage (1-99)").Value(&pctStr).
			Validate(validatePercentage),
		huh.NewInput().Title("Secondary comment").Value(&a.SecondaryComment),
	))
	if err := form.Run(); err != nil {
		return a, err
	}
	a.SecondaryPercentage, _ = strconv.Atoi(pctStr)
	return a, nil
}

func tagOptions(ctx context.Context, app *App, sess *domain.Session, p *domain.Period) ([]huh.Option[string], error) {
	var names []string
	if p.Kind == domain.PeriodActive {
		projects, err := app.Catalog.ListProjects(ctx, sess.Sphere, false)
		if err != nil {
			return nil, err
		}
		for _, pr := range projects {
			names = append(names, pr.Name)
		}
	} else {
		actions, err := app.Catalog.ListActions(ctx, false)
		if err != nil {
			return nil, err
		}
		for _, a := range actions {
			names = append(names, a.Name)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no %s labels defined for this period kind", p.Kind)
	}
	options := make([]huh.Option[string], 0, len(names))
	for _, n := range names {
		options = append(options, huh.NewOption(n, n))
	}
	return options, nil
}

func validatePercentage(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("enter a whole number")
	}
	if n < 1 || n > 99 {
		return fmt.Errorf("percentage must be between 1 and 99")
	}
	return nil
}
