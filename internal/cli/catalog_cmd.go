package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/acmercer/timekeep/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSphereCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sphere",
		Short: "Manage spheres (top-level categories)",
	}

	var includeArchived bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List spheres",
		RunE: func(cmd *cobra.Command, args []string) error {
			spheres, err := app.Catalog.ListSpheres(context.Background(), includeArchived)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(spheres))
			for _, s := range spheres {
				rows = append(rows, []string{s.Name, string(s.Status), archivedAt(s.ArchivedAt)})
			}
			fmt.Print(formatter.RenderTable([]string{"NAME", "STATUS", "ARCHIVED"}, rows))
			return nil
		},
	}
	list.Flags().BoolVar(&includeArchived, "all", false, "Include archived spheres")

	cmd.AddCommand(
		list,
		&cobra.Command{
			Use:   "add NAME",
			Short: "Create a sphere",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := app.Catalog.CreateSphere(context.Background(), args[0])
				if err != nil {
					return err
				}
				fmt.Printf("Created sphere %s\n", s.Name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "archive NAME",
			Short: "Archive a sphere",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.Catalog.ArchiveSphere(context.Background(), args[0])
			},
		},
		&cobra.Command{
			Use:   "unarchive NAME",
			Short: "Restore an archived sphere",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.Catalog.UnarchiveSphere(context.Background(), args[0])
			},
		},
	)
	return cmd
}

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	var sphere string
	var includeArchived bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Catalog.ListProjects(context.Background(), sphere, includeArchived)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(projects))
			for _, p := range projects {
				rows = append(rows, []string{p.Name, string(p.Status), archivedAt(p.ArchivedAt)})
			}
			fmt.Print(formatter.RenderTable([]string{"NAME", "STATUS", "ARCHIVED"}, rows))
			return nil
		},
	}
	list.Flags().StringVar(&sphere, "sphere", "", "Filter by sphere")
	list.Flags().BoolVar(&includeArchived, "all", false, "Include archived projects")

	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a project in a sphere",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Catalog.CreateProject(context.Background(), sphere, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Created project %s\n", p.Name)
			return nil
		},
	}
	add.Flags().StringVar(&sphere, "sphere", "", "Owning sphere")
	_ = add.MarkFlagRequired("sphere")

	archive := &cobra.Command{
		Use:   "archive NAME",
		Short: "Archive a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Catalog.ArchiveProject(context.Background(), sphere, args[0])
		},
	}
	archive.Flags().StringVar(&sphere, "sphere", "", "Owning sphere")
	_ = archive.MarkFlagRequired("sphere")

	unarchive := &cobra.Command{
		Use:   "unarchive NAME",
		Short: "Restore an archived project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Catalog.UnarchiveProject(context.Background(), sphere, args[0])
		},
	}
	unarchive.Flags().StringVar(&sphere, "sphere", "", "Owning sphere")
	_ = unarchive.MarkFlagRequired("sphere")

	cmd.AddCommand(list, add, archive, unarchive)
	return cmd
}

func newActionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "action",
		Short: "Manage break actions",
	}

	var includeArchived bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List break actions",
		RunE: func(cmd *cobra.Command, args []string) error {
			actions, err := app.Catalog.ListActions(context.Background(), includeArchived)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(actions))
			for _, a := range actions {
				rows = append(rows, []string{a.Name, string(a.Status), archivedAt(a.ArchivedAt)})
			}
			fmt.Print(formatter.RenderTable([]string{"NAME", "STATUS", "ARCHIVED"}, rows))
			return nil
		},
	}
	list.Flags().BoolVar(&includeArchived, "all", false, "Include archived actions")

	cmd.AddCommand(
		list,
		&cobra.Command{
			Use:   "add NAME",
			Short: "Create a break action",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := app.Catalog.CreateAction(context.Background(), args[0])
				if err != nil {
					return err
				}
				fmt.Printf("Created action %s\n", a.Name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "archive NAME",
			Short: "Archive a break action",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.Catalog.ArchiveAction(context.Background(), args[0])
			},
		},
		&cobra.Command{
			Use:   "unarchive NAME",
			Short: "Restore an archived break action",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.Catalog.UnarchiveAction(context.Background(), args[0])
			},
		},
	)
	return cmd
}

func archivedAt(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatter.Dim(t.Local().Format("2006-01-02"))
}
