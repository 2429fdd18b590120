package cli

import (
	"fmt"

	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/spf13/cobra"
)

func newResourceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resource",
		Short: "Manage resources",
	}

	cmd.AddCommand(
		newResourceAddCmd(app),
		newResourceListCmd(app),
	)

	return cmd
}

func newResourceAddCmd(app *App) *cobra.Command {
	var name, role string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new resource",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := &domain.Resource{Name: name, DefaultRole: role}
			if err := app.Resources.Create(cmd.Context(), r); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created resource %s [%s]\n", r.Name, r.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Resource name")
	cmd.Flags().StringVar(&role, "role", "", "Default role for new allocations")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newResourceListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			resources, err := app.Resources.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(resources) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No resources yet. Create one with: gantt resource add --name NAME"))
				return nil
			}

			rows := make([][]string, 0, len(resources))
			for _, r := range resources {
				rows = append(rows, []string{r.DisplayID(), r.Name, r.DefaultRole})
			}
			formatter.PrintTable(cmd.OutOrStdout(), []string{"ID", "NAME", "DEFAULT ROLE"}, rows, 0)
			return nil
		},
	}
}
