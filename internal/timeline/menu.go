package timeline

// MenuPosition places the allocation context menu relative to the
// timeline body. Top is in the same unit as the row and bar heights
// (pixels on a canvas, lines in a terminal); Right reuses the bar's
// right offset so the menu hangs off the bar's right edge.
type MenuPosition struct {
	Top      float64
	RightPct float64
}

// PositionMenu computes the menu placement for a bar on row rowIndex.
func PositionMenu(rowIndex int, rowHeight, barHeight, rightPct float64) MenuPosition {
	return MenuPosition{
		Top:      rowHeight*float64(rowIndex) + barHeight,
		RightPct: rightPct,
	}
}

// MenuState is the ephemeral state of the allocation context menu.
type MenuState struct {
	Visible      bool
	AllocationID string
	Position     MenuPosition
}

// Open shows the menu for an allocation.
func (m *MenuState) Open(allocationID string, pos MenuPosition) {
	m.Visible = true
	m.AllocationID = allocationID
	m.Position = pos
}

// Close hides the menu and forgets its target.
func (m *MenuState) Close() {
	m.Visible = false
	m.AllocationID = ""
}
