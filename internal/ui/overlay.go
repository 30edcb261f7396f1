package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/otp-grid/internal/present"
)

// anchoredOverlay covers the whole canvas: a translucent scrim that
// dismisses on tap, and a panel placed next to its anchor
type anchoredOverlay struct {
	widget.BaseWidget

	scrim   *canvas.Rectangle
	panel   *canvas.Rectangle
	content fyne.CanvasObject

	anchorPos  fyne.Position
	anchorSize fyne.Size
	arrows     present.ArrowDirection
	preferred  fyne.Size

	onOutside func()
}

func newAnchoredOverlay(content fyne.CanvasObject, anchorPos fyne.Position, anchorSize fyne.Size, arrows present.ArrowDirection, preferred fyne.Size) *anchoredOverlay {
	o := &anchoredOverlay{
		scrim:      canvas.NewRectangle(color.NRGBA{A: OverlayScrimAlpha}),
		panel:      canvas.NewRectangle(theme.Color(theme.ColorNameOverlayBackground)),
		content:    content,
		anchorPos:  anchorPos,
		anchorSize: anchorSize,
		arrows:     arrows,
		preferred:  preferred,
	}
	o.panel.CornerRadius = theme.Size(theme.SizeNameInputRadius)
	o.panel.StrokeColor = theme.Color(theme.ColorNameShadow)
	o.panel.StrokeWidth = 1
	o.ExtendBaseWidget(o)
	return o
}

// Tapped dismisses the overlay when the tap lands outside the panel
func (o *anchoredOverlay) Tapped(ev *fyne.PointEvent) {
	pos, size := o.panel.Position(), o.panel.Size()
	inside := ev.Position.X >= pos.X && ev.Position.X <= pos.X+size.Width &&
		ev.Position.Y >= pos.Y && ev.Position.Y <= pos.Y+size.Height
	if inside {
		return
	}
	if o.onOutside != nil {
		o.onOutside()
	}
}

func (o *anchoredOverlay) CreateRenderer() fyne.WidgetRenderer {
	return &overlayRenderer{overlay: o}
}

type overlayRenderer struct {
	overlay *anchoredOverlay
}

func (r *overlayRenderer) Layout(size fyne.Size) {
	o := r.overlay
	o.scrim.Move(fyne.NewPos(0, 0))
	o.scrim.Resize(size)

	preferred := o.preferred.Max(o.content.MinSize())
	pos, panelSize := placeOverlay(size, o.anchorPos, o.anchorSize, preferred, o.arrows)
	o.panel.Move(pos)
	o.panel.Resize(panelSize)

	pad := theme.Padding()
	o.content.Move(pos.Add(fyne.NewPos(pad, pad)))
	o.content.Resize(panelSize.Subtract(fyne.NewSize(2*pad, 2*pad)))
}

func (r *overlayRenderer) MinSize() fyne.Size {
	return r.overlay.content.MinSize()
}

func (r *overlayRenderer) Refresh() {
	r.Layout(r.overlay.Size())
	canvas.Refresh(r.overlay)
}

func (r *overlayRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.overlay.scrim, r.overlay.panel, r.overlay.content}
}

func (r *overlayRenderer) Destroy() {}

// placeOverlay picks the panel rectangle for an anchor. Arrow directions
// are tried in up, down, left, right order; an up arrow puts the panel
// below the anchor, a left arrow puts it to the right. The first direction
// that fits wins, otherwise the first permitted one is clamped on screen.
func placeOverlay(canvasSize fyne.Size, anchorPos fyne.Position, anchorSize fyne.Size, preferred fyne.Size, arrows present.ArrowDirection) (fyne.Position, fyne.Size) {
	size := fyne.NewSize(
		clampSpan(preferred.Width, OverlayMinWidth, canvasSize.Width-2*OverlayMargin),
		clampSpan(preferred.Height, OverlayMinHeight, canvasSize.Height-2*OverlayMargin),
	)

	centerX := anchorPos.X + anchorSize.Width/2
	centerY := anchorPos.Y + anchorSize.Height/2

	type candidate struct {
		pos  fyne.Position
		fits bool
	}
	var first *candidate
	for _, dir := range []present.ArrowDirection{present.ArrowUp, present.ArrowDown, present.ArrowLeft, present.ArrowRight} {
		if !arrows.Has(dir) {
			continue
		}
		var c candidate
		switch dir {
		case present.ArrowUp:
			c.pos = fyne.NewPos(centerX-size.Width/2, anchorPos.Y+anchorSize.Height+OverlayArrowGap)
			c.fits = c.pos.Y+size.Height <= canvasSize.Height-OverlayMargin
		case present.ArrowDown:
			c.pos = fyne.NewPos(centerX-size.Width/2, anchorPos.Y-OverlayArrowGap-size.Height)
			c.fits = c.pos.Y >= OverlayMargin
		case present.ArrowLeft:
			c.pos = fyne.NewPos(anchorPos.X+anchorSize.Width+OverlayArrowGap, centerY-size.Height/2)
			c.fits = c.pos.X+size.Width <= canvasSize.Width-OverlayMargin
		case present.ArrowRight:
			c.pos = fyne.NewPos(anchorPos.X-OverlayArrowGap-size.Width, centerY-size.Height/2)
			c.fits = c.pos.X >= OverlayMargin
		}
		if c.fits {
			return clampOnCanvas(c.pos, size, canvasSize), size
		}
		if first == nil {
			first = &c
		}
	}

	if first == nil {
		centered := fyne.NewPos((canvasSize.Width-size.Width)/2, (canvasSize.Height-size.Height)/2)
		return clampOnCanvas(centered, size, canvasSize), size
	}
	return clampOnCanvas(first.pos, size, canvasSize), size
}

func clampSpan(v, lo, hi float32) float32 {
	if v < lo {
		v = lo
	}
	if hi > 0 && v > hi {
		v = hi
	}
	return v
}

func clampOnCanvas(pos fyne.Position, size, canvasSize fyne.Size) fyne.Position {
	maxX := canvasSize.Width - OverlayMargin - size.Width
	maxY := canvasSize.Height - OverlayMargin - size.Height
	if pos.X > maxX {
		pos.X = maxX
	}
	if pos.Y > maxY {
		pos.Y = maxY
	}
	if pos.X < OverlayMargin {
		pos.X = OverlayMargin
	}
	if pos.Y < OverlayMargin {
		pos.Y = OverlayMargin
	}
	return pos
}
