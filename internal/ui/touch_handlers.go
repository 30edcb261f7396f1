package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// gridSurface is the scroll content of the token grid. It receives every
// pointer and touch event over the grid that no cell consumes, and feeds
// them to the long-press recognizer in grid content coordinates.
type gridSurface struct {
	widget.BaseWidget

	content fyne.CanvasObject
	press   *LongPressRecognizer
}

var (
	_ desktop.Mouseable = (*gridSurface)(nil)
	_ fyne.Draggable    = (*gridSurface)(nil)
	_ mobile.Touchable  = (*gridSurface)(nil)
)

func newGridSurface(content fyne.CanvasObject, press *LongPressRecognizer) *gridSurface {
	s := &gridSurface{content: content, press: press}
	s.ExtendBaseWidget(s)
	return s
}

// CreateRenderer creates the widget renderer
func (s *gridSurface) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.content)
}

// MouseDown handles mouse button presses
func (s *gridSurface) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	s.press.Press(ev.Position)
}

// MouseUp handles mouse button releases
func (s *gridSurface) MouseUp(*desktop.MouseEvent) {
	s.press.Release()
}

// Dragged handles pointer movement while pressed
func (s *gridSurface) Dragged(ev *fyne.DragEvent) {
	s.press.Move(ev.Position, ev.Dragged)
}

// DragEnd handles the end of a drag
func (s *gridSurface) DragEnd() {
	s.press.Release()
}

// TouchDown handles touch down events
func (s *gridSurface) TouchDown(ev *mobile.TouchEvent) {
	s.press.Press(ev.Position)
}

// TouchUp handles touch up events
func (s *gridSurface) TouchUp(*mobile.TouchEvent) {
	s.press.Release()
}

// TouchCancel handles touch cancel events
func (s *gridSurface) TouchCancel(*mobile.TouchEvent) {
	s.press.Cancel()
}
