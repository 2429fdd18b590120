package cli

import (
	"time"

	"github.com/alexanderramin/gantt/internal/board"
	"github.com/alexanderramin/gantt/internal/config"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and settings used by CLI commands.
type App struct {
	Projects    service.ProjectService
	Resources   service.ResourceService
	Allocations service.AllocationService

	// Timeline persists changes made in the interactive timeline.
	Timeline board.Persister

	Config config.Config

	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool

	// Now defaults to time.Now.
	Now func() time.Time
}

// today returns the current calendar day in the configured location.
func (a *App) today() time.Time {
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	loc := a.location()
	return domain.DayIn(now().In(loc), loc)
}

// location returns the viewer's calendar location.
func (a *App) location() *time.Location {
	if a.Config.Location == nil {
		return time.Local
	}
	return a.Config.Location
}

// NewRootCmd creates the top-level "gantt" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var resource string

	root := &cobra.Command{
		Use:           "gantt",
		Short:         "Resource allocation timeline",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if resource == "" {
				resource = app.Config.Resource
			}
			if resource == "" || app.IsInteractive == nil || !app.IsInteractive() {
				return cmd.Help()
			}
			opts, err := resolveTimelineOptions(cmd.Context(), app, resource, "", "", "")
			if err != nil {
				return err
			}
			return runTimeline(app, opts)
		},
	}
	root.Flags().StringVar(&resource, "resource", "", "Resource to open (ID, ID prefix or name)")

	root.AddCommand(
		newTimelineCmd(app),
		newProjectCmd(app),
		newResourceCmd(app),
		newAllocationCmd(app),
	)

	return root
}
