package cli

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/gantt/internal/board"
	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/alexanderramin/gantt/internal/creation"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/drag"
	"github.com/alexanderramin/gantt/internal/gateway"
	"github.com/alexanderramin/gantt/internal/timeline"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Timeline layout, in terminal cells. The body starts below the info
// line and the day axis; every lane is one line tall and so is its bar.
const (
	labelWidth     = 16
	timelineHeader = 2
	rowHeight      = 1
	barHeight      = 1
)

// Messages carrying async results back to the timeline.
type resourceLoadedMsg struct {
	resource *domain.Resource
	err      error
}

type outcomeMsg struct {
	outcome gateway.Outcome
}

type projectsLoadedMsg struct {
	draft    *creation.Draft
	projects []gateway.ProjectSummary
	err      error
}

// timelineSignals records what settled outcomes ask of the view.
type timelineSignals struct {
	state  *SharedState
	reload bool
}

func (s *timelineSignals) Refresh()                { s.reload = true }
func (s *timelineSignals) Notify(n gateway.Notice) { s.state.Notify(n) }

type timelineKeyMap struct {
	PrevWeek key.Binding
	NextWeek key.Binding
	PrevDay  key.Binding
	NextDay  key.Binding
	Today    key.Binding
	Reload   key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Cancel   key.Binding
}

func defaultTimelineKeys() timelineKeyMap {
	return timelineKeyMap{
		PrevWeek: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev week")),
		NextWeek: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next week")),
		PrevDay:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev day")),
		NextDay:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next day")),
		Today:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "this week")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// timelineView renders a board and turns mouse events into board calls.
type timelineView struct {
	state   *SharedState
	opts    timelineOptions
	board   *board.Board
	signals *timelineSignals
	keys    timelineKeyMap

	loaded  bool
	loadErr error

	// lastCell is the day cell last fed to the drag, -1 for none.
	lastCell int
}

func newTimelineView(state *SharedState, opts timelineOptions) *timelineView {
	signals := &timelineSignals{state: state}
	b := board.New(state.App.Timeline, board.Options{
		Range:          opts.Range,
		ScopeProjectID: opts.ScopeProjectID,
		StrictColors:   state.App.Config.StrictColors,
		Signals:        signals,
	})
	return &timelineView{
		state:    state,
		opts:     opts,
		board:    b,
		signals:  signals,
		keys:     defaultTimelineKeys(),
		lastCell: -1,
	}
}

func (v *timelineView) Init() tea.Cmd {
	return v.loadCmd()
}

func (v *timelineView) loadCmd() tea.Cmd {
	app, id := v.state.App, v.opts.ResourceID
	today := app.today()
	return func() tea.Msg {
		r, err := app.Resources.Load(context.Background(), id, today)
		return resourceLoadedMsg{resource: r, err: err}
	}
}

func (v *timelineView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resourceLoadedMsg:
		v.loaded = true
		v.loadErr = msg.err
		if msg.err != nil {
			return v, nil
		}
		v.lastCell = -1
		v.fail(v.board.SetResource(msg.resource))
		return v, nil

	case outcomeMsg:
		v.board.Settle(msg.outcome)
		if v.signals.reload {
			v.signals.reload = false
			return v, v.loadCmd()
		}
		return v, nil

	case projectsLoadedMsg:
		if msg.err != nil {
			v.board.Fail(msg.err)
			return v, nil
		}
		v.board.OpenDraft(msg.draft, msg.projects)
		return v, v.startCreation(msg.draft)

	case tea.MouseMsg:
		return v, v.handleMouse(msg)

	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}
	return v, nil
}

// ── keys ─────────────────────────────────────────────────────────────────────

func (v *timelineView) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, v.keys.Cancel):
		if v.board.Dragging() {
			v.lastCell = -1
			v.fail(v.board.CancelDrag())
		} else {
			v.board.CloseMenu()
		}
	case key.Matches(msg, v.keys.PrevWeek):
		v.fail(v.board.Shift(-7))
	case key.Matches(msg, v.keys.NextWeek):
		v.fail(v.board.Shift(7))
	case key.Matches(msg, v.keys.PrevDay):
		v.fail(v.board.Shift(-1))
	case key.Matches(msg, v.keys.NextDay):
		v.fail(v.board.Shift(1))
	case key.Matches(msg, v.keys.Today):
		v.jumpTo(weekStart(v.state.App.today()))
	case key.Matches(msg, v.keys.Reload):
		return v.loadCmd()
	case key.Matches(msg, v.keys.Edit):
		return v.editTarget()
	case key.Matches(msg, v.keys.Delete):
		return v.deleteTarget()
	}
	return nil
}

// jumpTo moves the window to start, keeping its length.
func (v *timelineView) jumpTo(start time.Time) {
	rng := v.board.Range()
	r, err := timeline.NewRange(start, start.AddDate(0, 0, rng.Len()-1))
	if err != nil {
		v.fail(err)
		return
	}
	v.fail(v.board.SetRange(r))
}

// ── mouse ────────────────────────────────────────────────────────────────────

// hit is what lies under a screen position.
type hit struct {
	row  int // lane index, -1 off the lanes
	cell int // day index, -1 off the track
	col  int // column within the track, -1 off the track

	onMenu bool
	item   menuItem
}

func (v *timelineView) handleMouse(msg tea.MouseMsg) tea.Cmd {
	h := v.hitTest(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			v.fail(v.board.Shift(-1))
		case tea.MouseButtonWheelDown:
			v.fail(v.board.Shift(1))
		case tea.MouseButtonLeft:
			return v.press(h)
		case tea.MouseButtonRight:
			v.openMenu(h)
		}
	case tea.MouseActionMotion:
		if v.board.Dragging() && h.cell >= 0 && h.cell != v.lastCell {
			v.enter(h.cell)
		}
	case tea.MouseActionRelease:
		if v.board.Dragging() {
			return v.endDrag()
		}
	}
	return nil
}

func (v *timelineView) hitTest(x, y int) hit {
	h := hit{row: -1, cell: -1, col: -1}
	if col := x - labelWidth; col >= 0 && col < v.trackWidth() {
		h.col = col
		h.cell = col / v.cellWidth()
	}

	line := y - headerHeight - timelineHeader
	if line < 0 {
		return h
	}
	if m := v.board.Menu(); m.Visible {
		top := int(m.Position.Top)
		if line == top {
			h.onMenu = true
			h.item = v.menuItemAt(x)
			return h
		}
		if line > top {
			line--
		}
	}
	if line < v.laneCount() {
		h.row = line
	}
	return h
}

func (v *timelineView) press(h hit) tea.Cmd {
	if v.board.Menu().Visible {
		if h.onMenu {
			return v.menuAction(h.item)
		}
		v.board.CloseMenu()
		return nil
	}
	if h.row < 0 || h.cell < 0 {
		return nil
	}

	// A live drag here means its release was missed; StartDrag replaces it.
	stale := v.board.Dragging()
	if idx, dir, ok := v.barAt(h.row, h.col, stale); ok {
		v.fail(v.board.StartDrag(h.row, idx, dir))
		if !v.board.Dragging() {
			return nil
		}
		// The pressed cell anchors the drag.
		v.enter(h.cell)
		return nil
	}
	if stale {
		v.fail(v.board.CancelDrag())
		return nil
	}

	day, _ := v.board.Range().DayAt(h.cell)
	click := v.board.ClickCell(day)
	switch {
	case click.Save != nil:
		return v.run(click.Save)
	case click.Dialog != nil:
		return v.fetchProjects(click.Dialog)
	}
	return nil
}

func (v *timelineView) enter(cell int) {
	day, ok := v.board.Range().DayAt(cell)
	if !ok {
		return
	}
	v.lastCell = cell
	v.fail(v.board.EnterCell(day))
}

func (v *timelineView) endDrag() tea.Cmd {
	v.lastCell = -1
	call, err := v.board.EndDrag()
	v.fail(err)
	if call == nil {
		return nil
	}
	return v.run(call)
}

// barAt returns the topmost interactive bar covering col on lane row and
// the handle the column belongs to. With anyBar set, bars that have
// pointer events off are hit as well.
func (v *timelineView) barAt(row, col int, anyBar bool) (int, drag.Direction, bool) {
	rows := v.board.Rows()
	if row < 0 || row >= len(rows) || col < 0 {
		return 0, drag.DirectionNone, false
	}
	width := v.trackWidth()
	bars := rows[row].Bars
	for i := len(bars) - 1; i >= 0; i-- {
		s := bars[i].Style()
		if !s.PointerEvents && !anyBar {
			continue
		}
		from, to, visible := s.Columns(width)
		if !visible || col < from || col >= to {
			continue
		}
		return i, handleAt(s, from, to, col), true
	}
	return 0, drag.DirectionNone, false
}

// handleAt maps a column of a bar drawn over [from, to) onto a drag
// direction. The outer columns are resize handles unless the bar is only
// one column wide or that edge is clipped by the window.
func handleAt(s timeline.Style, from, to, col int) drag.Direction {
	if to-from < 2 {
		return drag.DirectionNone
	}
	switch {
	case col == from && s.LeftPct >= 0:
		return drag.DirectionLeft
	case col == to-1 && s.RightPct >= 0:
		return drag.DirectionRight
	}
	return drag.DirectionNone
}

// ── async calls ──────────────────────────────────────────────────────────────

func (v *timelineView) run(call board.Call) tea.Cmd {
	return func() tea.Msg {
		return outcomeMsg{outcome: call(context.Background())}
	}
}

func (v *timelineView) fetchProjects(d *creation.Draft) tea.Cmd {
	b := v.board
	return func() tea.Msg {
		projects, err := b.FetchProjects(context.Background())
		return projectsLoadedMsg{draft: d, projects: projects, err: err}
	}
}

// fail surfaces err as a notice. Stray drag events are ignored.
func (v *timelineView) fail(err error) {
	if err == nil || errors.Is(err, drag.ErrNotArmed) {
		return
	}
	v.board.Fail(err)
}

// ── creation dialog ──────────────────────────────────────────────────────────

func (v *timelineView) startCreation(d *creation.Draft) tea.Cmd {
	f := &creationFields{}
	form := wizardCreateAllocation(d, f)
	return startWizardCmd(v.state, "New allocation", form,
		func() tea.Cmd { return v.confirmDraft(*f) },
		v.board.CancelDraft,
	)
}

// confirmDraft applies the dialog's fields to the open draft and saves it.
// A disabled draft reopens the dialog.
func (v *timelineView) confirmDraft(f creationFields) tea.Cmd {
	d := v.board.Draft()
	if d == nil {
		return nil
	}
	if !f.Confirmed {
		v.board.CancelDraft()
		return nil
	}
	d.SelectProject(f.ProjectID)
	d.SetRole(strings.TrimSpace(f.Role))
	call, err := v.board.ConfirmDraft()
	if errors.Is(err, creation.ErrValidation) {
		return v.startCreation(d)
	}
	if err != nil {
		v.fail(err)
		return nil
	}
	return v.run(call)
}

// ── context menu ─────────────────────────────────────────────────────────────

type menuItem int

const (
	menuNone menuItem = iota
	menuEdit
	menuDelete
	menuClose
)

var menuItems = []struct {
	item  menuItem
	label string
}{
	{menuEdit, " edit "},
	{menuDelete, " delete "},
	{menuClose, " close "},
}

const menuSeparator = "│"

func menuWidth() int {
	w := len(menuItems) - 1
	for _, it := range menuItems {
		w += len(it.label)
	}
	return w
}

// menuX returns the screen column where the menu starts: its right edge
// lines up with the right edge of the bar it was opened on.
func (v *timelineView) menuX() int {
	track := v.trackWidth()
	right := int(math.Round(v.board.Menu().Position.RightPct / 100 * float64(track)))
	right = min(max(right, 0), track)
	return max(labelWidth+track-right-menuWidth(), 0)
}

func (v *timelineView) menuItemAt(x int) menuItem {
	pos := v.menuX()
	for _, it := range menuItems {
		if x >= pos && x < pos+len(it.label) {
			return it.item
		}
		pos += len(it.label) + 1
	}
	return menuNone
}

func (v *timelineView) openMenu(h hit) {
	idx, _, ok := v.barAt(h.row, h.col, false)
	if !ok {
		v.board.CloseMenu()
		return
	}
	v.fail(v.board.OpenMenu(h.row, idx, rowHeight, barHeight))
}

func (v *timelineView) menuAction(item menuItem) tea.Cmd {
	switch item {
	case menuEdit:
		return v.editTarget()
	case menuDelete:
		return v.deleteTarget()
	default:
		v.board.CloseMenu()
	}
	return nil
}

func (v *timelineView) editTarget() tea.Cmd {
	a, ok := v.board.MenuTarget()
	if !ok {
		return nil
	}
	v.board.CloseMenu()
	f := &editFields{}
	form := wizardEditAllocation(a, f)
	return startWizardCmd(v.state, "Edit allocation", form,
		func() tea.Cmd { return v.applyEdit(a.ID, *f) },
		nil,
	)
}

func (v *timelineView) applyEdit(allocationID string, f editFields) tea.Cmd {
	loc := v.board.Range().Start.Location()
	start, err := domain.ParseDay(strings.TrimSpace(f.Start), loc)
	if err != nil {
		v.fail(fmt.Errorf("invalid start date: %w", err))
		return nil
	}
	end, err := domain.ParseDay(strings.TrimSpace(f.End), loc)
	if err != nil {
		v.fail(fmt.Errorf("invalid end date: %w", err))
		return nil
	}
	call, err := v.board.SaveEdit(allocationID, board.Edit{Role: f.Role, Start: start, End: end})
	v.fail(err)
	if call == nil {
		return nil
	}
	return v.run(call)
}

func (v *timelineView) deleteTarget() tea.Cmd {
	a, ok := v.board.MenuTarget()
	if !ok {
		return nil
	}
	name := a.ProjectID
	if p, ok := v.board.Resource().Project(a.ProjectID); ok {
		name = p.Name
	}
	confirmed := new(bool)
	form := wizardConfirm(deletePrompt(a, name), confirmed)
	return startWizardCmd(v.state, "Delete allocation", form,
		func() tea.Cmd { return v.confirmDelete(*confirmed) },
		v.board.CloseMenu,
	)
}

func (v *timelineView) confirmDelete(ok bool) tea.Cmd {
	if !ok {
		v.board.CloseMenu()
		return nil
	}
	call, err := v.board.DeleteTarget()
	if err != nil {
		v.fail(err)
		return nil
	}
	return v.run(call)
}

// ── geometry ─────────────────────────────────────────────────────────────────

func (v *timelineView) cellWidth() int {
	if w := v.state.App.Config.CellWidth; w > 0 {
		return w
	}
	return 3
}

func (v *timelineView) trackWidth() int {
	return v.board.Range().Len() * v.cellWidth()
}

// laneCount includes the trailing empty lane used for new projects.
func (v *timelineView) laneCount() int {
	return len(v.board.Rows()) + 1
}

// cellPoint returns the screen position of the first column of day cell
// on lane row, as seen by hitTest with the menu closed.
func (v *timelineView) cellPoint(row, cell int) (x, y int) {
	return labelWidth + cell*v.cellWidth(), headerHeight + timelineHeader + row
}

// ── rendering ────────────────────────────────────────────────────────────────

func (v *timelineView) View() string {
	if !v.loaded {
		return "\n  " + formatter.Dim("Loading…")
	}
	if v.loadErr != nil {
		return "\n  " + formatter.StyleRed.Render("Could not load resource: "+v.loadErr.Error())
	}

	lines := []string{v.renderInfo(), v.renderAxis()}

	body := make([]string, 0, v.laneCount()+1)
	for ri, row := range v.board.Rows() {
		body = append(body, v.renderLane(ri, row))
	}
	body = append(body, formatter.PadRight(formatter.Dim("+ new"), labelWidth)+formatter.Dim(v.grid(0, v.trackWidth())))

	if m := v.board.Menu(); m.Visible {
		top := min(max(int(m.Position.Top), 0), len(body))
		body = append(body[:top], append([]string{v.renderMenu()}, body[top:]...)...)
	}

	return strings.Join(append(lines, body...), "\n")
}

func (v *timelineView) renderInfo() string {
	r := v.board.Resource()
	rng := v.board.Range()

	info := formatter.Bold(r.Name)
	if role := r.PrimaryRole(); role != "" {
		info += formatter.Dim(" · " + role)
	}
	info += "  " + formatter.DateRange(rng.Start, rng.End)

	if scope := v.board.Scope(); scope != "" {
		name := scope
		if p, ok := r.Project(scope); ok {
			name = p.Name
		}
		info += formatter.Dim("  scope: ") + name
	}

	if s, ok := v.board.DragSession(); ok {
		verb := "moving"
		switch s.Direction {
		case drag.DirectionLeft:
			verb = "resizing start of"
		case drag.DirectionRight:
			verb = "resizing end of"
		}
		info += "  " + formatter.StyleYellow.Render(fmt.Sprintf("%s %s: %s",
			verb, s.Working.DisplayID(), formatter.DateRange(s.Working.Start, s.Working.End)))
	}
	return info
}

func (v *timelineView) renderAxis() string {
	cw := v.cellWidth()
	today := v.state.App.today()

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", labelWidth))
	for _, d := range v.board.Range().Days() {
		label := formatter.PadRight(formatter.Truncate(strconv.Itoa(d.Day()), cw), cw)
		switch {
		case d.Equal(today):
			sb.WriteString(formatter.StyleHeader.Render(label))
		case d.Weekday() == time.Saturday || d.Weekday() == time.Sunday:
			sb.WriteString(formatter.Dim(label))
		default:
			sb.WriteString(label)
		}
	}
	return sb.String()
}

func (v *timelineView) renderLane(ri int, row board.Row) string {
	hex, err := timeline.Hex(row.Project.Color)
	if err != nil {
		hex = timeline.FallbackHex
	}
	label := formatter.Hex(hex, formatter.Truncate(row.Project.Name, labelWidth-1))

	width := v.trackWidth()
	owner := make([]int, width)
	for c := range owner {
		owner[c] = -1
	}
	for i, bar := range row.Bars {
		from, to, visible := bar.Style().Columns(width)
		if !visible {
			continue
		}
		for c := from; c < to; c++ {
			owner[c] = i
		}
	}

	session, dragging := v.board.DragSession()
	var sb strings.Builder
	sb.WriteString(formatter.PadRight(label, labelWidth))
	for c := 0; c < width; {
		o := owner[c]
		end := c
		for end < width && owner[end] == o {
			end++
		}
		if o < 0 {
			sb.WriteString(formatter.Dim(v.grid(c, end)))
		} else {
			glyph := "█"
			if dragging && session.ProjectIndex == ri && session.AllocationIndex == o {
				glyph = "▓"
			}
			sb.WriteString(formatter.Hex(row.Bars[o].Style().Color, strings.Repeat(glyph, end-c)))
		}
		c = end
	}
	return sb.String()
}

// grid draws empty track columns [from, to), marking each day boundary.
func (v *timelineView) grid(from, to int) string {
	cw := v.cellWidth()
	var sb strings.Builder
	for c := from; c < to; c++ {
		if c%cw == 0 {
			sb.WriteString("·")
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

var menuItemStyle = lipgloss.NewStyle().
	Foreground(formatter.ColorFg).
	Background(lipgloss.Color("#3c3836"))

func (v *timelineView) renderMenu() string {
	parts := make([]string, len(menuItems))
	for i, it := range menuItems {
		style := menuItemStyle
		if it.item == menuDelete {
			style = style.Foreground(formatter.ColorRed)
		}
		parts[i] = style.Render(it.label)
	}
	return strings.Repeat(" ", v.menuX()) + strings.Join(parts, formatter.Dim(menuSeparator))
}

// ── View interface ───────────────────────────────────────────────────────────

func (v *timelineView) ID() ViewID { return ViewTimeline }

func (v *timelineView) Title() string {
	if r := v.board.Resource(); r != nil {
		return r.Name
	}
	return "timeline"
}

func (v *timelineView) ShortHelp() []key.Binding {
	if v.board.Menu().Visible {
		return []key.Binding{v.keys.Edit, v.keys.Delete, v.keys.Cancel}
	}
	if v.board.Dragging() {
		return []key.Binding{v.keys.Cancel}
	}
	return []key.Binding{v.keys.PrevWeek, v.keys.NextWeek, v.keys.Today, v.keys.Reload}
}
