package ui

import (
	"testing"

	"fyne.io/fyne/v2"

	"github.com/ytget/otp-grid/internal/present"
)

func TestPlaceOverlay(t *testing.T) {
	canvasSize := fyne.NewSize(1000, 800)
	preferred := fyne.NewSize(400, 300)

	tests := []struct {
		name       string
		anchorPos  fyne.Position
		anchorSize fyne.Size
		arrows     present.ArrowDirection
		expected   fyne.Position
	}{
		{"up arrow puts panel below", fyne.NewPos(400, 10), fyne.NewSize(40, 30), present.ArrowsVertical, fyne.NewPos(220, 46)},
		{"no room below falls to above", fyne.NewPos(400, 700), fyne.NewSize(40, 30), present.ArrowsVertical, fyne.NewPos(220, 394)},
		{"left arrow puts panel right", fyne.NewPos(100, 300), fyne.NewSize(20, 20), present.ArrowsHorizontal, fyne.NewPos(126, 160)},
		{"no room right falls to left", fyne.NewPos(900, 300), fyne.NewSize(20, 20), present.ArrowsHorizontal, fyne.NewPos(494, 160)},
		{"clamped to the margin", fyne.NewPos(950, 10), fyne.NewSize(40, 30), present.ArrowsVertical, fyne.NewPos(592, 46)},
		{"no arrows centers", fyne.NewPos(0, 0), fyne.NewSize(0, 0), 0, fyne.NewPos(300, 250)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, size := placeOverlay(canvasSize, tt.anchorPos, tt.anchorSize, preferred, tt.arrows)
			if pos != tt.expected {
				t.Errorf("placeOverlay() pos = %v, expected %v", pos, tt.expected)
			}
			if size != preferred {
				t.Errorf("placeOverlay() size = %v, expected %v", size, preferred)
			}
		})
	}
}

func TestPlaceOverlaySizeLimits(t *testing.T) {
	canvasSize := fyne.NewSize(320, 480)

	_, size := placeOverlay(canvasSize, fyne.NewPos(0, 0), fyne.NewSize(10, 10), fyne.NewSize(1000, 10), present.ArrowUp)
	if size.Width != 304 {
		t.Errorf("width = %v, expected 304", size.Width)
	}
	if size.Height != OverlayMinHeight {
		t.Errorf("height = %v, expected %v", size.Height, OverlayMinHeight)
	}
}
