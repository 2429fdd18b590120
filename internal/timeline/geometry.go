package timeline

import (
	"errors"
	"fmt"
	"math"

	"github.com/alexanderramin/gantt/internal/domain"
)

// ErrUnmappedColor is returned when a project color has no palette entry.
var ErrUnmappedColor = errors.New("color has no palette entry")

// FallbackHex is drawn for colors outside the palette when strict mode is off.
const FallbackHex = "#928374"

var palette = map[domain.Color]string{
	domain.ColorRed:    "#FF0000",
	domain.ColorBlue:   "#0000FF",
	domain.ColorGreen:  "#00A000",
	domain.ColorYellow: "#FFC000",
	domain.ColorPurple: "#8000C0",
	domain.ColorOrange: "#FF8000",
}

// Hex resolves a palette color.
func Hex(c domain.Color) (string, error) {
	hex, ok := palette[c]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnmappedColor, c)
	}
	return hex, nil
}

// Style is the derived placement of one bar. It is never authoritative:
// it is recomputed from (allocation, range, dragging) whenever any of them change.
type Style struct {
	LeftPct       float64
	RightPct      float64
	Color         string
	PointerEvents bool
}

// ComputeStyle places an allocation within r. Percentages are not
// clamped: bars may extend past either edge of the window.
// While any drag is in progress bars stop receiving pointer events so
// they do not intercept motion meant for the day cells beneath them.
//
// An unmapped color yields ErrUnmappedColor alongside a usable style
// drawn in FallbackHex.
func ComputeStyle(a domain.Allocation, r Range, dragging bool) (Style, error) {
	span := float64(r.Span())
	s := Style{
		LeftPct:       float64(a.Start.Sub(r.Start)) / span * 100,
		RightPct:      float64(r.End.Sub(a.End)) / span * 100,
		PointerEvents: !dragging,
	}
	hex, err := Hex(a.Color)
	if err != nil {
		s.Color = FallbackHex
		return s, err
	}
	s.Color = hex
	return s, nil
}

// String renders the style as a declaration list.
func (s Style) String() string {
	pe := "auto"
	if !s.PointerEvents {
		pe = "none"
	}
	return fmt.Sprintf("background-color: %s; left: %s%%; right: %s%%; pointer-events: %s",
		s.Color, formatPct(s.LeftPct), formatPct(s.RightPct), pe)
}

// Columns maps the style onto a track of width columns and returns the
// half-open column interval [from, to) the bar occupies, clipped to the
// track. visible is false when the bar lies wholly outside it.
func (s Style) Columns(width int) (from, to int, visible bool) {
	w := float64(width)
	from = int(math.Round(s.LeftPct / 100 * w))
	to = width - int(math.Round(s.RightPct/100*w))
	if from < 0 {
		from = 0
	}
	if to > width {
		to = width
	}
	if from >= to {
		return 0, 0, false
	}
	return from, to, true
}

func formatPct(v float64) string {
	return fmt.Sprintf("%g", math.Round(v*1e6)/1e6)
}
