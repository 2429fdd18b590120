// Package creation builds new allocations from a click on an empty day cell.
package creation

import (
	"errors"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/gateway"
)

// ErrValidation is returned when a draft is confirmed while required
// fields are missing. It is shown as a disabled affordance, never a notice.
var ErrValidation = errors.New("project and role are required")

// Flow decides how a click on an empty cell creates an allocation.
type Flow struct {
	Resource *domain.Resource

	// ScopeProjectID, when set, limits the timeline to one project and
	// makes a click create an allocation immediately.
	ScopeProjectID string
}

// Intent is the result of Begin: exactly one of Direct or Dialog is set.
type Intent struct {
	Direct *gateway.SaveRequest
	Dialog *Draft
}

// Begin starts creation for a click on day.
func (f Flow) Begin(day time.Time) Intent {
	day = domain.Day(day)
	if f.ScopeProjectID != "" {
		return Intent{Direct: &gateway.SaveRequest{
			ProjectID:  f.ScopeProjectID,
			ResourceID: f.Resource.ID,
			Role:       f.Resource.PrimaryRole(),
			Start:      day,
			End:        day,
		}}
	}
	return Intent{Dialog: &Draft{
		ResourceID: f.Resource.ID,
		Role:       f.Resource.DefaultRole,
		Start:      day,
		End:        day,
	}}
}

// Draft is the state of the guided creation dialog.
type Draft struct {
	ResourceID string
	ProjectID  string
	Role       string
	Start      time.Time
	End        time.Time

	Projects []gateway.ProjectSummary
}

// SelectProject sets the project, ignoring IDs not offered by the dialog
// once a project list is loaded.
func (d *Draft) SelectProject(id string) {
	if len(d.Projects) > 0 && id != "" {
		found := false
		for _, p := range d.Projects {
			if p.ID == id {
				found = true
				break
			}
		}
		if !found {
			return
		}
	}
	d.ProjectID = id
}

// SetRole sets the role.
func (d *Draft) SetRole(role string) { d.Role = role }

// Disabled reports whether confirmation is blocked.
func (d *Draft) Disabled() bool {
	return d.ProjectID == "" || d.Role == ""
}

// Request returns the save request for a confirmed draft.
func (d *Draft) Request() (gateway.SaveRequest, error) {
	if d.Disabled() {
		return gateway.SaveRequest{}, ErrValidation
	}
	return gateway.SaveRequest{
		ProjectID:  d.ProjectID,
		ResourceID: d.ResourceID,
		Role:       d.Role,
		Start:      d.Start,
		End:        d.End,
	}, nil
}
