package cli

import (
	"testing"

	"github.com/alexanderramin/gantt/internal/teatest"
)

// TestDriver wraps teatest.Driver with gantt-specific inspection methods.
// It provides access to appModel internals (view stack, shared state,
// the timeline's board) that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver creates a TestDriver for a timeline. It constructs the
// appModel, sets terminal size, and drains Init() (which loads the
// resource synchronously via in-memory SQLite).
func NewTestDriver(t *testing.T, app *App, opts timelineOptions) *TestDriver {
	t.Helper()

	m := newAppModel(app, opts)
	d := teatest.New(t, m, teatest.WithSize(140, 30))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// Timeline returns the timeline view at the bottom of the stack.
func (d *TestDriver) Timeline() *timelineView {
	return d.appModel().viewStack[0].(*timelineView)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ActiveViewTitle returns the Title() of the top view on the stack.
func (d *TestDriver) ActiveViewTitle() string {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ""
	}
	return v.Title()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// State returns the shared state for inspection.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// IsQuitting returns whether the app has signaled a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// Cell returns the screen position of track column col on lane row.
func (d *TestDriver) Cell(row, col int) (x, y int) {
	x, y = d.Timeline().cellPoint(row, 0)
	return x + col, y
}
