package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// CompactTheme tightens the default theme for dense token grids and gives
// tiles a raised background distinct from the window
type CompactTheme struct{}

// NewCompactTheme creates a new compact theme
func NewCompactTheme() fyne.Theme {
	return &CompactTheme{}
}

// Color returns theme colors
func (t *CompactTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	dark := variant == theme.VariantDark
	switch name {
	case theme.ColorNamePrimary:
		// Outline of time-based tokens
		return color.NRGBA{R: 0x1e, G: 0x88, B: 0xe5, A: 0xff}
	case theme.ColorNameBackground:
		if dark {
			return color.NRGBA{R: 0x12, G: 0x12, B: 0x12, A: 0xff}
		}
		return color.NRGBA{R: 0xf2, G: 0xf2, B: 0xf2, A: 0xff}
	case theme.ColorNameInputBackground:
		// Tile background
		if dark {
			return color.NRGBA{R: 0x24, G: 0x24, B: 0x24, A: 0xff}
		}
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	case theme.ColorNameHover:
		// Lifted tile
		if dark {
			return color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
		}
		return color.NRGBA{R: 0xe3, G: 0xf2, B: 0xfd, A: 0xff}
	case theme.ColorNameShadow:
		return color.NRGBA{A: 0x66}
	case theme.ColorNameForeground:
		if dark {
			return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
		}
		return color.NRGBA{R: 0x21, G: 0x21, B: 0x21, A: 0xff}
	}

	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameScrollBar:
		return 10
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 22 // codes read at a glance
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameInputRadius:
		return 6 // rounded tiles
	case theme.SizeNameSelectionRadius:
		return 2
	}

	return theme.DefaultTheme().Size(name)
}
