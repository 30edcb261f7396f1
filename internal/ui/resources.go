package ui

import (
	"hash/fnv"
	"image/color"

	"fyne.io/fyne/v2"
)

const (
	AppIcon = "otp-grid.png"
)

// placeholderPalette is cycled through by issuer so tokens without an image
// still get a stable, distinguishable tile
var placeholderPalette = []color.NRGBA{
	{R: 0x1e, G: 0x88, B: 0xe5, A: 0xff},
	{R: 0x43, G: 0xa0, B: 0x47, A: 0xff},
	{R: 0xfb, G: 0x8c, B: 0x00, A: 0xff},
	{R: 0x8e, G: 0x24, B: 0xaa, A: 0xff},
	{R: 0xe5, G: 0x39, B: 0x35, A: 0xff},
	{R: 0x00, G: 0x89, B: 0x7b, A: 0xff},
	{R: 0x6d, G: 0x4c, B: 0x41, A: 0xff},
	{R: 0x54, G: 0x6e, B: 0x7a, A: 0xff},
}

// PlaceholderColor returns the tile color used behind a missing thumbnail
func PlaceholderColor(issuer string) color.Color {
	if issuer == "" {
		return color.NRGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(issuer))
	return placeholderPalette[h.Sum32()%uint32(len(placeholderPalette))]
}

// LoadLogoResource loads the application icon from file path
func LoadLogoResource() (fyne.Resource, error) {
	return fyne.LoadResourceFromPath(AppIcon)
}
