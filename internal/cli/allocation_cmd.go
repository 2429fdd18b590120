package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/repository"
	"github.com/alexanderramin/gantt/internal/timeline"
	"github.com/spf13/cobra"
)

func newAllocationCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "allocation",
		Aliases: []string{"alloc"},
		Short:   "Manage allocations",
	}

	cmd.AddCommand(
		newAllocationAddCmd(app),
		newAllocationListCmd(app),
		newAllocationRemoveCmd(app),
	)

	return cmd
}

func newAllocationAddCmd(app *App) *cobra.Command {
	var resource, project, role, start, end string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Allocate a resource to a project for a range of days",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			resourceID, err := resolveResourceID(ctx, app, resource)
			if err != nil {
				return err
			}
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			startDay, err := parseDayFlag(app, "start", start)
			if err != nil {
				return err
			}
			endDay := startDay
			if end != "" {
				if endDay, err = parseDayFlag(app, "end", end); err != nil {
					return err
				}
			}
			if role == "" {
				r, err := app.Resources.GetByID(ctx, resourceID)
				if err != nil {
					return err
				}
				role = r.DefaultRole
			}

			a := &domain.Allocation{
				ProjectID:  projectID,
				ResourceID: resourceID,
				Role:       role,
				Start:      startDay,
				End:        endDay,
			}
			if err := app.Allocations.Save(ctx, a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created allocation %s (%s)\n", a.DisplayID(), formatter.DateRange(a.Start, a.End))
			return nil
		},
	}

	cmd.Flags().StringVar(&resource, "resource", "", "Resource (ID, ID prefix or name)")
	cmd.Flags().StringVar(&project, "project", "", "Project (ID, ID prefix or name)")
	cmd.Flags().StringVar(&role, "role", "", "Role (defaults to the resource's default role)")
	cmd.Flags().StringVar(&start, "start", "", "First day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Last day (YYYY-MM-DD, defaults to --start)")
	_ = cmd.MarkFlagRequired("resource")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func newAllocationListCmd(app *App) *cobra.Command {
	var resource, from, to string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List a resource's allocations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			resourceID, err := resolveResourceID(ctx, app, resource)
			if err != nil {
				return err
			}
			var f repository.AllocationFilter
			if from != "" {
				if f.From, err = parseDayFlag(app, "from", from); err != nil {
					return err
				}
			}
			if to != "" {
				if f.To, err = parseDayFlag(app, "to", to); err != nil {
					return err
				}
			}

			allocs, err := app.Allocations.ListByResource(ctx, resourceID, f)
			if err != nil {
				return err
			}
			if len(allocs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No allocations."))
				return nil
			}
			names, err := projectNames(ctx, app)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(allocs))
			for _, a := range allocs {
				hex, err := timeline.Hex(a.Color)
				if err != nil {
					hex = timeline.FallbackHex
				}
				rows = append(rows, []string{
					a.DisplayID(),
					formatter.Swatch(hex) + " " + names[a.ProjectID],
					a.Role,
					a.Start.Format(domain.DateLayout),
					a.End.Format(domain.DateLayout),
					fmt.Sprintf("%dd", a.Days()),
				})
			}
			formatter.PrintTable(cmd.OutOrStdout(), []string{"ID", "PROJECT", "ROLE", "START", "END", "DAYS"}, rows, 0, 5)
			return nil
		},
	}

	cmd.Flags().StringVar(&resource, "resource", "", "Resource (ID, ID prefix or name)")
	cmd.Flags().StringVar(&from, "from", "", "Only allocations ending on or after this day")
	cmd.Flags().StringVar(&to, "to", "", "Only allocations starting on or before this day")
	_ = cmd.MarkFlagRequired("resource")

	return cmd
}

func newAllocationRemoveCmd(app *App) *cobra.Command {
	var resource string

	cmd := &cobra.Command{
		Use:     "rm ALLOCATION",
		Aliases: []string{"remove"},
		Short:   "Delete an allocation",
		Long:    "Delete an allocation by full ID, or by ID prefix when --resource is given.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveAllocationID(cmd.Context(), app, resource, args[0])
			if err != nil {
				return err
			}
			if err := app.Allocations.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted allocation %s\n", domain.Allocation{ID: id}.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&resource, "resource", "", "Resource whose allocations the ID prefix is matched against")

	return cmd
}

func resolveAllocationID(ctx context.Context, app *App, resource, input string) (string, error) {
	if _, err := app.Allocations.GetByID(ctx, input); err == nil {
		return input, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}
	if resource == "" {
		return "", fmt.Errorf("allocation not found: %q (pass --resource to match an ID prefix)", input)
	}

	resourceID, err := resolveResourceID(ctx, app, resource)
	if err != nil {
		return "", err
	}
	allocs, err := app.Allocations.ListByResource(ctx, resourceID, repository.AllocationFilter{})
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(allocs))
	for _, a := range allocs {
		if strings.HasPrefix(a.ID, input) {
			ids = append(ids, a.ID)
		}
	}
	return match("allocation", input, ids, make([]string, len(ids)))
}

func projectNames(ctx context.Context, app *App) (map[string]string, error) {
	projects, err := app.Projects.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}
	return names, nil
}
