package drag

import (
	"testing"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jan(day int) time.Time {
	return time.Date(2024, time.January, day, 0, 0, 0, 0, time.UTC)
}

type recordingTarget struct {
	patches []timeline.Style
}

func (r *recordingTarget) Patch(s timeline.Style) { r.patches = append(r.patches, s) }

func (r *recordingTarget) last() timeline.Style { return r.patches[len(r.patches)-1] }

func newController(t *testing.T) *Controller {
	t.Helper()
	r, err := timeline.NewRange(jan(1), jan(10))
	require.NoError(t, err)
	return NewController(r)
}

func alloc(start, end int) domain.Allocation {
	return domain.Allocation{ID: "a1", ProjectID: "p", ResourceID: "r", Start: jan(start), End: jan(end), Color: domain.ColorRed}
}

func TestIdle_RejectsEnterAndEnd(t *testing.T) {
	c := newController(t)
	assert.False(t, c.Active())

	_, err := c.EnterCell(jan(3))
	assert.ErrorIs(t, err, ErrNotArmed)
	_, err = c.End()
	assert.ErrorIs(t, err, ErrNotArmed)
}

func TestStart_PatchesWithPointerEventsOff(t *testing.T) {
	c := newController(t)
	target := &recordingTarget{}

	c.Start(0, 0, alloc(3, 5), DirectionNone, target)

	require.True(t, c.Active())
	require.Len(t, target.patches, 1)
	assert.False(t, target.last().PointerEvents)
	s, ok := c.Session()
	require.True(t, ok)
	assert.False(t, s.Anchored())
}

func TestMove_ShiftsBothEnds(t *testing.T) {
	c := newController(t)
	target := &recordingTarget{}
	c.Start(0, 0, alloc(3, 5), DirectionNone, target)

	_, err := c.EnterCell(jan(4))
	require.NoError(t, err)
	got, err := c.EnterCell(jan(6))
	require.NoError(t, err)

	assert.Equal(t, jan(5), got.Start)
	assert.Equal(t, jan(7), got.End)
	assert.Equal(t, 3, got.Days(), "duration preserved")
	assert.InDelta(t, 40.0, target.last().LeftPct, 1e-9)

	s, err := c.End()
	require.NoError(t, err)
	assert.Equal(t, jan(5), s.Working.Start)
	assert.Equal(t, jan(3), s.Snapshot().Start, "snapshot untouched")
	assert.False(t, c.Active())
}

func TestMove_BackToAnchorRestoresSnapshot(t *testing.T) {
	c := newController(t)
	c.Start(0, 0, alloc(3, 5), DirectionNone, nil)

	_, _ = c.EnterCell(jan(4))
	_, _ = c.EnterCell(jan(9))
	got, err := c.EnterCell(jan(4))
	require.NoError(t, err)
	assert.Equal(t, alloc(3, 5), got)
}

func TestMove_AnchorIgnoresTimeOfDay(t *testing.T) {
	c := newController(t)
	c.Start(0, 0, alloc(3, 5), DirectionNone, nil)

	_, _ = c.EnterCell(jan(4).Add(20 * time.Hour))
	got, err := c.EnterCell(jan(5).Add(1 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, jan(4), got.Start)
}

func TestResizeLeft(t *testing.T) {
	c := newController(t)
	c.Start(0, 0, alloc(3, 5), DirectionLeft, nil)

	_, _ = c.EnterCell(jan(3))
	got, err := c.EnterCell(jan(1))
	require.NoError(t, err)
	assert.Equal(t, jan(1), got.Start)
	assert.Equal(t, jan(5), got.End, "end fixed")

	got, err = c.EnterCell(jan(5))
	require.NoError(t, err)
	assert.Equal(t, jan(5), got.Start, "start may meet the end")
}

func TestResizeLeft_PastEndKeepsLastValidStart(t *testing.T) {
	c := newController(t)
	c.Start(0, 0, alloc(3, 5), DirectionLeft, nil)

	_, _ = c.EnterCell(jan(3))
	_, _ = c.EnterCell(jan(4))
	got, err := c.EnterCell(jan(8))
	require.NoError(t, err)
	assert.Equal(t, jan(4), got.Start)
	assert.Equal(t, jan(5), got.End)
}

func TestResizeRight(t *testing.T) {
	c := newController(t)
	c.Start(0, 0, alloc(3, 5), DirectionRight, nil)

	_, _ = c.EnterCell(jan(5))
	got, err := c.EnterCell(jan(9))
	require.NoError(t, err)
	assert.Equal(t, jan(3), got.Start, "start fixed")
	assert.Equal(t, jan(9), got.End)

	got, err = c.EnterCell(jan(1))
	require.NoError(t, err)
	assert.Equal(t, jan(9), got.End, "end before start keeps the last valid end")
}

func TestResize_NeverInverts(t *testing.T) {
	for _, dir := range []Direction{DirectionLeft, DirectionRight, DirectionNone} {
		t.Run(dir.String(), func(t *testing.T) {
			c := newController(t)
			c.Start(0, 0, alloc(3, 5), dir, nil)
			for _, day := range []int{4, 10, 1, 7, 2, 9, 3, 5} {
				got, err := c.EnterCell(jan(day))
				require.NoError(t, err)
				assert.False(t, got.End.Before(got.Start), "day %d: %v > %v", day, got.Start, got.End)
			}
		})
	}
}

func TestStart_DiscardsPreviousSession(t *testing.T) {
	c := newController(t)
	first := &recordingTarget{}
	c.Start(0, 0, alloc(3, 5), DirectionNone, first)
	_, _ = c.EnterCell(jan(3))
	_, _ = c.EnterCell(jan(6))

	second := &recordingTarget{}
	c.Start(1, 2, alloc(7, 8), DirectionRight, second)

	s, ok := c.Session()
	require.True(t, ok)
	assert.Equal(t, 1, s.ProjectIndex)
	assert.Equal(t, 2, s.AllocationIndex)
	assert.False(t, s.Anchored(), "fresh session has no anchor")
	assert.Len(t, first.patches, 3, "old target no longer patched")
}

func TestDiscard(t *testing.T) {
	c := newController(t)
	c.Start(0, 0, alloc(3, 5), DirectionNone, nil)
	c.Discard()
	assert.False(t, c.Active())
	_, ok := c.Session()
	assert.False(t, ok)
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "none", DirectionNone.String())
	assert.Equal(t, "left", DirectionLeft.String())
	assert.Equal(t, "right", DirectionRight.String())
}
