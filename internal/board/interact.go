package board

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/gantt/internal/creation"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/drag"
	"github.com/alexanderramin/gantt/internal/gateway"
	"github.com/alexanderramin/gantt/internal/timeline"
)

// Dragging reports whether a drag session is live.
func (b *Board) Dragging() bool { return b.drag.Active() }

// DragSession returns the live drag session.
func (b *Board) DragSession() (drag.Session, bool) { return b.drag.Session() }

// StartDrag begins moving (DirectionNone) or resizing the bar at
// (row, index). A stale session is discarded first.
func (b *Board) StartDrag(row, index int, dir drag.Direction) error {
	bar, err := b.Bar(row, index)
	if err != nil {
		return err
	}
	b.menu.Close()
	b.drag.Start(row, index, bar.allocation, dir, bar)
	return b.Recompute()
}

// EnterCell feeds the day under the pointer to the live drag. Only the
// dragged bar is patched; nothing is committed.
func (b *Board) EnterCell(day time.Time) error {
	_, err := b.drag.EnterCell(b.day(day))
	return err
}

// EndDrag commits the working allocation into the local rows, restores
// pointer events on every bar and returns the save for the new bounds.
// Once the session is committed the save is always returned; a palette
// error from the recompute comes back alongside it.
func (b *Board) EndDrag() (Call, error) {
	s, err := b.drag.End()
	if err != nil {
		return nil, err
	}
	bar, err := b.Bar(s.ProjectIndex, s.AllocationIndex)
	if err != nil {
		return nil, err
	}
	bar.allocation = s.Working
	return b.saveCall(requestFor(s.Working)), b.Recompute()
}

// CancelDrag drops the live session and restores the committed styles.
func (b *Board) CancelDrag() error {
	b.drag.Discard()
	return b.Recompute()
}

// Click is what a click on an empty cell asks the host to do. At most one
// field is set.
type Click struct {
	// Save is set when the board is scoped to a project.
	Save Call
	// Dialog is set otherwise; the host loads projects with
	// FetchProjects and then calls OpenDraft.
	Dialog *creation.Draft
}

// ClickCell handles a click on an empty day cell. Clicks during a drag
// are ignored.
func (b *Board) ClickCell(day time.Time) Click {
	if b.drag.Active() || b.resource == nil {
		return Click{}
	}
	b.menu.Close()
	flow := creation.Flow{Resource: b.resource, ScopeProjectID: b.scope}
	intent := flow.Begin(b.day(day))
	if intent.Direct != nil {
		return Click{Save: b.saveCall(*intent.Direct)}
	}
	return Click{Dialog: intent.Dialog}
}

// FetchProjects loads the projects offered by the creation dialog.
func (b *Board) FetchProjects(ctx context.Context) ([]gateway.ProjectSummary, error) {
	return b.persist.FetchProjects(ctx)
}

// OpenDraft makes d the board's open creation dialog.
func (b *Board) OpenDraft(d *creation.Draft, projects []gateway.ProjectSummary) {
	d.Projects = projects
	b.draft = d
}

// Draft returns the open creation dialog, or nil.
func (b *Board) Draft() *creation.Draft { return b.draft }

// ConfirmDraft returns the save for the open dialog. The dialog stays
// open while it is disabled.
func (b *Board) ConfirmDraft() (Call, error) {
	if b.draft == nil {
		return nil, fmt.Errorf("no creation dialog is open")
	}
	req, err := b.draft.Request()
	if err != nil {
		return nil, err
	}
	b.draft = nil
	return b.saveCall(req), nil
}

// CancelDraft closes the creation dialog.
func (b *Board) CancelDraft() { b.draft = nil }

// Menu returns the context menu state.
func (b *Board) Menu() timeline.MenuState { return b.menu }

// OpenMenu opens the context menu for the bar at (row, index). Heights
// are in the host's unit.
func (b *Board) OpenMenu(row, index int, rowHeight, barHeight float64) error {
	bar, err := b.Bar(row, index)
	if err != nil {
		return err
	}
	pos := timeline.PositionMenu(row, rowHeight, barHeight, bar.style.RightPct)
	b.menu.Open(bar.allocation.ID, pos)
	return nil
}

// CloseMenu hides the context menu and clears its target.
func (b *Board) CloseMenu() { b.menu.Close() }

// MenuTarget returns the allocation the menu is open for.
func (b *Board) MenuTarget() (domain.Allocation, bool) {
	if !b.menu.Visible {
		return domain.Allocation{}, false
	}
	ri, ai, ok := b.Find(b.menu.AllocationID)
	if !ok {
		return domain.Allocation{}, false
	}
	return b.rows[ri].Bars[ai].allocation, true
}

// DeleteTarget closes the menu and returns the delete for its target.
// The local rows are left alone; the refresh that follows a successful
// delete removes the bar.
func (b *Board) DeleteTarget() (Call, error) {
	a, ok := b.MenuTarget()
	b.menu.Close()
	if !ok {
		return nil, fmt.Errorf("no allocation selected")
	}
	p, id := b.persist, a.ID
	return func(ctx context.Context) gateway.Outcome {
		return p.Delete(ctx, id)
	}, nil
}

// Edit holds the fields the edit form can change.
type Edit struct {
	Role  string
	Start time.Time
	End   time.Time
}

// SaveEdit applies an edit to an allocation locally and returns its save.
// As with EndDrag, a palette error does not withhold the save.
func (b *Board) SaveEdit(allocationID string, e Edit) (Call, error) {
	ri, ai, ok := b.Find(allocationID)
	if !ok {
		return nil, fmt.Errorf("allocation %s is no longer on the timeline", allocationID)
	}
	bar := b.rows[ri].Bars[ai]
	next := bar.allocation.WithDates(b.day(e.Start), b.day(e.End))
	if role := strings.TrimSpace(e.Role); role != "" {
		next.Role = role
	}
	if err := next.Validate(); err != nil {
		return nil, err
	}
	bar.allocation = next
	return b.saveCall(requestFor(next)), b.Recompute()
}
