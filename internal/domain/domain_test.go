package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(month time.Month, day int) time.Time {
	return time.Date(2024, month, day, 0, 0, 0, 0, time.UTC)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor(" purple ")
	require.NoError(t, err)
	assert.Equal(t, ColorPurple, c)

	_, err = ParseColor("Teal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Red, Blue, Green, Yellow, Purple, Orange")
}

func TestProjectValidate(t *testing.T) {
	assert.NoError(t, (&Project{Name: "Apollo", Color: ColorRed}).Validate())
	assert.Error(t, (&Project{Name: "  ", Color: ColorRed}).Validate())
	assert.Error(t, (&Project{Name: "Apollo", Color: "Teal"}).Validate())
}

func TestDisplayID(t *testing.T) {
	p := &Project{ID: "550e8400-e29b-41d4-a716-446655440000"}
	assert.Equal(t, "550e8400", p.DisplayID())
	assert.Equal(t, "abc", (&Project{ID: "abc"}).DisplayID())
	assert.Equal(t, "new", Allocation{}.DisplayID())
}

func TestAllocation_ValidateRange(t *testing.T) {
	a := Allocation{ProjectID: "p", ResourceID: "r", Start: d(1, 5), End: d(1, 3)}
	assert.ErrorIs(t, a.Validate(), ErrInvalidRange)

	a.End = a.Start
	assert.NoError(t, a.Validate(), "single-day allocation is valid")
}

func TestAllocation_DaysAndCovers(t *testing.T) {
	a := Allocation{Start: d(1, 3), End: d(1, 5)}
	assert.Equal(t, 3, a.Days())
	assert.True(t, a.Covers(d(1, 3).Add(15*time.Hour)))
	assert.True(t, a.Covers(d(1, 5)))
	assert.False(t, a.Covers(d(1, 6)))
}

func TestAllocation_WithDatesCopies(t *testing.T) {
	a := Allocation{ID: "a", Start: d(1, 3), End: d(1, 5)}
	b := a.WithDates(d(2, 1), d(2, 2))
	assert.Equal(t, d(1, 3), a.Start, "original untouched")
	assert.Equal(t, d(2, 1), b.Start)
	assert.Equal(t, "a", b.ID)
}

func TestDayIn_KeepsCalendarDate(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	late := time.Date(2024, time.March, 9, 23, 0, 0, 0, time.UTC)
	got := DayIn(late, ny)
	assert.Equal(t, 9, got.Day())
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, ny, got.Location())
}

func TestAllocation_DaysAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Clocks spring forward on Mar 10; the local gap between the two
	// midnights is 23 hours.
	a := Allocation{
		Start: time.Date(2024, time.March, 9, 0, 0, 0, 0, ny),
		End:   time.Date(2024, time.March, 10, 0, 0, 0, 0, ny),
	}
	assert.Equal(t, 2, a.Days())
	assert.Equal(t, 1, DaysBetween(a.Start, a.End))

	a.End = time.Date(2024, time.November, 3, 0, 0, 0, 0, ny)
	a.Start = time.Date(2024, time.November, 2, 0, 0, 0, 0, ny)
	assert.Equal(t, 2, a.Days(), "fall back")
}

func TestParseDay(t *testing.T) {
	got, err := ParseDay("2024-02-29", nil)
	require.NoError(t, err)
	assert.Equal(t, d(2, 29), got)

	_, err = ParseDay("2024-13-01", time.UTC)
	assert.Error(t, err)
}

func TestResource_ProjectIDs_Order(t *testing.T) {
	r := &Resource{
		Projects: []Project{{ID: "z"}, {ID: "empty"}, {ID: "a"}},
		AllocationsByProject: map[string][]Allocation{
			"a":     {{ID: "1"}},
			"z":     {{ID: "2"}},
			"loose": {{ID: "3"}},
			"extra": {{ID: "4"}},
		},
	}
	assert.Equal(t, []string{"z", "a", "extra", "loose"}, r.ProjectIDs())
}

func TestSelectPrimaryAllocation(t *testing.T) {
	allocs := []Allocation{
		{ID: "old", Start: d(1, 1), End: d(1, 5)},
		{ID: "future", Start: d(3, 1), End: d(3, 5)},
		{ID: "now", Start: d(2, 1), End: d(2, 10)},
	}

	got := SelectPrimaryAllocation(allocs, d(2, 3))
	require.NotNil(t, got)
	assert.Equal(t, "now", got.ID)

	got = SelectPrimaryAllocation(allocs, d(2, 20))
	require.NotNil(t, got)
	assert.Equal(t, "future", got.ID, "latest start when nothing covers today")

	assert.Nil(t, SelectPrimaryAllocation(nil, d(2, 3)))
}

func TestResource_PrimaryRole(t *testing.T) {
	r := &Resource{DefaultRole: "Engineer"}
	assert.Equal(t, "Engineer", r.PrimaryRole())

	r.PrimaryAllocation = &Allocation{Role: "Lead"}
	assert.Equal(t, "Lead", r.PrimaryRole())
}

func TestCoalesceStr(t *testing.T) {
	assert.Equal(t, "b", CoalesceStr("", "b", "c"))
	assert.Equal(t, "", CoalesceStr("", ""))
	assert.Equal(t, "", CoalesceStr())
}
