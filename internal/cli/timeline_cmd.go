package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/gantt/internal/timeline"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// timelineOptions selects what the interactive timeline shows.
type timelineOptions struct {
	ResourceID     string
	Range          timeline.Range
	ScopeProjectID string
}

func newTimelineCmd(app *App) *cobra.Command {
	var resource, from, to, project string

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Open the interactive allocation timeline for a resource",
		Long: `Open the interactive allocation timeline for a resource.

Drag a bar to move it, drag its first or last column to resize it,
click an empty day to allocate it and right-click a bar for more actions.
With --project, clicks allocate to that project without asking.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if resource == "" {
				resource = app.Config.Resource
			}
			opts, err := resolveTimelineOptions(cmd.Context(), app, resource, from, to, project)
			if err != nil {
				return err
			}
			return runTimeline(app, opts)
		},
	}

	cmd.Flags().StringVar(&resource, "resource", "", "Resource (ID, ID prefix or name)")
	cmd.Flags().StringVar(&from, "from", "", "First visible day (YYYY-MM-DD, default: Monday of this week)")
	cmd.Flags().StringVar(&to, "to", "", "Last visible day (YYYY-MM-DD, default: from + window_days - 1)")
	cmd.Flags().StringVar(&project, "project", "", "Limit clicks to creating allocations in this project")

	return cmd
}

func resolveTimelineOptions(ctx context.Context, app *App, resource, from, to, project string) (timelineOptions, error) {
	var opts timelineOptions
	var err error

	if opts.ResourceID, err = resolveResourceID(ctx, app, resource); err != nil {
		return opts, err
	}
	if project != "" {
		if opts.ScopeProjectID, err = resolveProjectID(ctx, app, project); err != nil {
			return opts, err
		}
	}

	start := weekStart(app.today())
	if from != "" {
		if start, err = parseDayFlag(app, "from", from); err != nil {
			return opts, err
		}
	}
	end := start.AddDate(0, 0, max(app.Config.WindowDays, 1)-1)
	if to != "" {
		if end, err = parseDayFlag(app, "to", to); err != nil {
			return opts, err
		}
	}
	if opts.Range, err = timeline.NewRange(start, end); err != nil {
		return opts, err
	}
	return opts, nil
}

// weekStart returns the Monday on or before day.
func weekStart(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// runTimeline runs the TUI until the user quits.
func runTimeline(app *App, opts timelineOptions) error {
	p := tea.NewProgram(newAppModel(app, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithOutput(os.Stdout),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running timeline: %w", err)
	}
	return nil
}
