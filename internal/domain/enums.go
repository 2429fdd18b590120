package domain

import (
	"fmt"
	"strings"
)

// Color is the palette name a project is drawn with.
type Color string

const (
	ColorRed    Color = "Red"
	ColorBlue   Color = "Blue"
	ColorGreen  Color = "Green"
	ColorYellow Color = "Yellow"
	ColorPurple Color = "Purple"
	ColorOrange Color = "Orange"
)

// ValidColors is the canonical set of accepted project colors, in display order.
var ValidColors = []Color{ColorRed, ColorBlue, ColorGreen, ColorYellow, ColorPurple, ColorOrange}

// ParseColor resolves a color name case-insensitively.
func ParseColor(s string) (Color, error) {
	for _, c := range ValidColors {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown color %q (expected one of %s)", s, colorNames())
}

func colorNames() string {
	names := make([]string, len(ValidColors))
	for i, c := range ValidColors {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
