package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// CompactTheme tightens paddings and text so more file rows fit on screen.
// Anything it does not override comes from the default theme.
type CompactTheme struct {
	fyne.Theme
}

// NewCompactTheme creates a new compact theme
func NewCompactTheme() fyne.Theme {
	return &CompactTheme{Theme: theme.DefaultTheme()}
}

// status colors, shared by light and dark variants
var compactColors = map[fyne.ThemeColorName]color.Color{
	theme.ColorNamePrimary: color.NRGBA{R: 183, G: 28, B: 28, A: 255},
	theme.ColorNameSuccess: color.NRGBA{R: 46, G: 160, B: 67, A: 255},
	theme.ColorNameError:   color.NRGBA{R: 211, G: 47, B: 47, A: 255},
	theme.ColorNameWarning: color.NRGBA{R: 255, G: 160, B: 0, A: 255},
}

var compactSizes = map[fyne.ThemeSizeName]float32{
	theme.SizeNamePadding:         3,
	theme.SizeNameInnerPadding:    6,
	theme.SizeNameLineSpacing:     2,
	theme.SizeNameScrollBar:       12,
	theme.SizeNameText:            13,
	theme.SizeNameHeadingText:     16,
	theme.SizeNameSubHeadingText:  13,
	theme.SizeNameCaptionText:     10,
	theme.SizeNameInputRadius:     3,
	theme.SizeNameSelectionRadius: 2,
}

// Color returns theme colors
func (t *CompactTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if c, ok := compactColors[name]; ok {
		return c
	}
	return t.Theme.Color(name, variant)
}

// Size returns theme sizes with compact adjustments
func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	if s, ok := compactSizes[name]; ok {
		return s
	}
	return t.Theme.Size(name)
}
