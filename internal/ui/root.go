package ui

import (
	"log"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/otp-grid/internal/config"
	"github.com/ytget/otp-grid/internal/grid"
	gridlayout "github.com/ytget/otp-grid/internal/layout"
	"github.com/ytget/otp-grid/internal/model"
	"github.com/ytget/otp-grid/internal/present"
	"github.com/ytget/otp-grid/internal/reorder"
	"github.com/ytget/otp-grid/internal/thumbnail"
)

// TokensUI is the main screen: the token grid, its toolbar, the navigation
// stack and the overlay layer. It is the view the grid controller drives and
// the navigator the presentation router drives.
type TokensUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	device       *DeviceInfo
	ctrl         *grid.Controller
	press        *LongPressRecognizer

	// Grid screen
	home        fyne.CanvasObject
	titleLabel  *widget.Label
	addBtn      *widget.Button
	scanBtn     *widget.Button
	settingsBtn *widget.Button
	emptyLabel  *widget.Label
	scroll      *container.Scroll
	gridBox     *fyne.Container
	surface     *gridSurface

	// cells are in slot order; gridBox.Objects is paint order
	cells     []*TokenCell
	geometry  gridlayout.Geometry
	dragged   *TokenCell
	motions   map[*TokenCell]*fyne.Animation
	orient    gridlayout.Orientation
	tapLocked bool

	navStack []contentScreen
	overlay  *anchoredOverlay

	images ImageLimiter
}

// ImageLimiter is the image service setting that can change at runtime
type ImageLimiter interface {
	SetLimits(maxParallel, cacheEntries int)
}

var (
	_ grid.View         = (*TokensUI)(nil)
	_ present.Navigator = (*TokensUI)(nil)
)

// NewTokensUI creates and initializes the main UI
func NewTokensUI(window fyne.Window, app fyne.App, store grid.Store, thumbs *thumbnail.Pipeline) *TokensUI {
	// Initialize settings
	settings := config.NewSettings(app)

	// Initialize localization
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &TokensUI{
		window:       window,
		settings:     settings,
		localization: localization,
		motions:      make(map[*TokenCell]*fyne.Animation),
	}
	ui.device = NewDeviceInfo(settings, func() fyne.Size { return window.Canvas().Size() })

	registry := NewScreenRegistry(localization, ui.finishScreen)
	router := present.NewRouter(registry, ui, ui.device.DeviceClass, ui.device.ScreenWidth)

	ui.ctrl = grid.NewController(store, thumbs, router, grid.Options{
		Orientation: ui.device.Orientation,
		DeviceClass: ui.device.DeviceClass,
		Spacing:     GridSpacing,
		Inset:       GridInset,
	})
	ui.ctrl.AttachView(ui)

	ui.press = NewLongPressRecognizer(ui.onLongPress, ui.onPan)
	ui.press.SetDelay(settings.GetLongPressDelay())

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.setupUI()
	ui.ctrl.Appear()
	return ui
}

// Controller returns the grid controller
func (ui *TokensUI) Controller() *grid.Controller {
	return ui.ctrl
}

// setupUI creates and arranges all UI components
func (ui *TokensUI) setupUI() {
	ui.createMenu()

	ui.titleLabel = widget.NewLabel(ui.localization.GetText(KeyAppTitle))
	ui.titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	ui.settingsBtn = widget.NewButton(IconSettings, ui.onShowSettings)
	ui.settingsBtn.Importance = widget.LowImportance
	ui.scanBtn = widget.NewButton(IconScan, func() {
		ui.ctrl.Scan(present.ControlAnchor{Control: ui.scanBtn})
	})
	ui.addBtn = widget.NewButton(IconAdd, func() {
		ui.ctrl.Add(present.ControlAnchor{Control: ui.addBtn})
	})

	toolbar := container.NewHBox(ui.settingsBtn, ui.titleLabel, layout.NewSpacer(), ui.scanBtn, ui.addBtn)

	ui.gridBox = container.New(&tokenGridLayout{ui: ui})
	ui.surface = newGridSurface(ui.gridBox, ui.press)
	ui.scroll = container.NewVScroll(ui.surface)

	ui.emptyLabel = widget.NewLabel(ui.localization.GetText(KeyEmptyGrid))
	ui.emptyLabel.Alignment = fyne.TextAlignCenter
	ui.emptyLabel.Hide()

	ui.home = container.NewBorder(
		container.NewVBox(toolbar, widget.NewSeparator()), // top
		nil, // bottom
		nil, // left
		nil, // right
		container.NewStack(ui.scroll, container.NewCenter(ui.emptyLabel)),
	)
	ui.window.SetContent(ui.home)

	log.Printf("UI setup completed successfully")
}

// createMenu creates the application menu
func (ui *TokensUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *TokensUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *TokensUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.titleLabel.SetText(ui.localization.GetText(KeyAppTitle))
	ui.emptyLabel.SetText(ui.localization.GetText(KeyEmptyGrid))
}

// SetImageLimiter lets saved settings resize the image service
func (ui *TokensUI) SetImageLimiter(images ImageLimiter) {
	ui.images = images
}

// onShowSettings shows the settings dialog
func (ui *TokensUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, ui.applySettings)
}

// applySettings re-reads settings that take effect immediately
func (ui *TokensUI) applySettings() {
	ui.press.SetDelay(ui.settings.GetLongPressDelay())
	if ui.images != nil {
		ui.images.SetLimits(ui.settings.GetMaxParallelFetches(), ui.settings.GetThumbnailCacheEntries())
	}
	ui.localization.SetLanguage(ui.settings.GetLanguage())
	ui.refreshUITexts()
	ui.createMenu()
	ui.ctrl.OrientationChanged()
}

func (ui *TokensUI) newCell() *TokenCell {
	cell := NewTokenCell(ui.localization)
	cell.SetCallbacks(ui.onSelectCell, ui.onEditToken, ui.onShareToken)
	return cell
}

func (ui *TokensUI) onSelectCell(cell *TokenCell) {
	if ui.tapLocked || ui.ctrl.Dragging() {
		return
	}
	if i := ui.indexOf(cell); i >= 0 {
		ui.ctrl.Select(i)
	}
}

func (ui *TokensUI) onEditToken(control fyne.CanvasObject, token *model.Token) {
	ui.ctrl.Edit(cellActionAnchor(control), token)
}

func (ui *TokensUI) onShareToken(control fyne.CanvasObject, token *model.Token) {
	ui.ctrl.Share(cellActionAnchor(control), token)
}

// cellActionAnchor anchors to a cell's action button
func cellActionAnchor(control fyne.CanvasObject) present.Anchor {
	return present.ControlAnchor{Control: control}
}

func (ui *TokensUI) onLongPress(phase reorder.Phase, pos fyne.Position) {
	if phase == reorder.PhaseBegan {
		ui.tapLocked = true
	}
	ui.ctrl.HandleGesture(phase, reorder.Point{X: pos.X, Y: pos.Y})
}

// onPan scrolls the grid for drags that did not become a long press
func (ui *TokensUI) onPan(delta fyne.Delta) {
	ui.tapLocked = false
	if ui.ctrl.Dragging() {
		return
	}
	ui.scrollToOffset(ui.scroll.Offset.Y - delta.DY)
}

func (ui *TokensUI) scrollToOffset(y float32) {
	maxY := ui.surface.MinSize().Height - ui.scroll.Size().Height
	if y > maxY {
		y = maxY
	}
	if y < 0 {
		y = 0
	}
	ui.scroll.Offset = fyne.NewPos(ui.scroll.Offset.X, y)
	ui.scroll.Refresh()
}

func (ui *TokensUI) indexOf(cell *TokenCell) int {
	for i, c := range ui.cells {
		if c == cell {
			return i
		}
	}
	return -1
}

// slotRect returns the resting position and size of slot index
func (ui *TokensUI) slotRect(index int, g gridlayout.Geometry) (fyne.Position, fyne.Size) {
	cols := g.Columns
	if cols < 1 {
		cols = 1
	}
	size := cellSize(g)
	col, row := index%cols, index/cols
	return fyne.NewPos(
		GridInset+float32(col)*(size.Width+GridSpacing),
		GridInset+float32(row)*(size.Height+GridSpacing),
	), size
}

func cellSize(g gridlayout.Geometry) fyne.Size {
	h := g.CellHeight
	if h < CellMinHeight {
		h = CellMinHeight
	}
	return fyne.NewSize(g.CellWidth, h)
}

// IndexAt returns the slot under p in grid content coordinates
func (ui *TokensUI) IndexAt(p reorder.Point) (int, bool) {
	g := ui.geometry
	if g.Columns < 1 || p.X < GridInset || p.Y < GridInset {
		return 0, false
	}
	size := cellSize(g)
	stepX, stepY := size.Width+GridSpacing, size.Height+GridSpacing
	col := int((p.X - GridInset) / stepX)
	row := int((p.Y - GridInset) / stepY)
	if col >= g.Columns {
		return 0, false
	}
	// Points in the gutter between cells hit nothing
	if p.X-GridInset-float32(col)*stepX > size.Width || p.Y-GridInset-float32(row)*stepY > size.Height {
		return 0, false
	}
	index := row*g.Columns + col
	if index >= len(ui.cells) {
		return 0, false
	}
	return index, true
}

// CellAt returns the cell showing index
func (ui *TokensUI) CellAt(index int) (reorder.Cell, bool) {
	if index < 0 || index >= len(ui.cells) {
		return nil, false
	}
	return ui.cells[index], true
}

// Lift scales the cell around its center and paints it above its siblings
func (ui *TokensUI) Lift(cell reorder.Cell) {
	tc, ok := cell.(*TokenCell)
	if !ok {
		return
	}
	ui.stopMotion(tc)
	ui.dragged = tc
	tc.SetLifted(true)

	base := cellSize(ui.geometry)
	lifted := fyne.NewSize(base.Width*reorder.LiftScale, base.Height*reorder.LiftScale)
	center := tc.Position().Add(fyne.NewPos(tc.Size().Width/2, tc.Size().Height/2))
	tc.Resize(lifted)
	tc.Move(center.Subtract(fyne.NewPos(lifted.Width/2, lifted.Height/2)))

	ui.raise(tc)
}

func (ui *TokensUI) raise(tc *TokenCell) {
	objects := ui.gridBox.Objects
	for i, o := range objects {
		if o == tc {
			copy(objects[i:], objects[i+1:])
			objects[len(objects)-1] = tc
			break
		}
	}
	canvas.Refresh(ui.gridBox)
}

// MoveItem moves the item at from into slot to and animates the reflow
func (ui *TokensUI) MoveItem(from, to int) {
	if from < 0 || from >= len(ui.cells) || to < 0 || to >= len(ui.cells) || from == to {
		return
	}
	moved := ui.cells[from]
	if from < to {
		copy(ui.cells[from:to], ui.cells[from+1:to+1])
	} else {
		copy(ui.cells[to+1:from+1], ui.cells[to:from])
	}
	ui.cells[to] = moved

	for i, c := range ui.cells {
		if c == ui.dragged {
			continue
		}
		pos, size := ui.slotRect(i, ui.geometry)
		c.Resize(size)
		if c.Position() != pos {
			ui.animateTo(c, pos)
		}
	}
}

func (ui *TokensUI) animateTo(c *TokenCell, pos fyne.Position) {
	ui.stopMotion(c)
	anim := canvas.NewPositionAnimation(c.Position(), pos, ReflowDuration, c.Move)
	ui.motions[c] = anim
	anim.Start()
}

func (ui *TokensUI) stopMotion(c *TokenCell) {
	if anim, ok := ui.motions[c]; ok {
		anim.Stop()
		delete(ui.motions, c)
	}
}

// ScrollTo scrolls index into view against edge when it is not fully visible
func (ui *TokensUI) ScrollTo(index int, edge reorder.ScrollEdge) {
	pos, size := ui.slotRect(index, ui.geometry)
	top := ui.scroll.Offset.Y
	viewport := ui.scroll.Size().Height
	if pos.Y >= top && pos.Y+size.Height <= top+viewport {
		return
	}
	if edge == reorder.ScrollLeading {
		ui.scrollToOffset(pos.Y - GridInset)
	} else {
		ui.scrollToOffset(pos.Y + size.Height + GridInset - viewport)
	}
}

// CenterAt centers the cell on p
func (ui *TokensUI) CenterAt(cell reorder.Cell, p reorder.Point) {
	tc, ok := cell.(*TokenCell)
	if !ok {
		return
	}
	size := tc.Size()
	tc.Move(fyne.NewPos(p.X-size.Width/2, p.Y-size.Height/2))
}

// Settle animates the cell into slot index and drops the lift
func (ui *TokensUI) Settle(cell reorder.Cell, index int, done func()) {
	tc, ok := cell.(*TokenCell)
	if !ok {
		done()
		return
	}
	ui.stopMotion(tc)

	startPos, startSize := tc.Position(), tc.Size()
	endPos, endSize := ui.slotRect(index, ui.geometry)
	finished := false

	anim := fyne.NewAnimation(SettleDuration, func(t float32) {
		if finished {
			return
		}
		tc.Move(fyne.NewPos(lerp(startPos.X, endPos.X, t), lerp(startPos.Y, endPos.Y, t)))
		tc.Resize(fyne.NewSize(lerp(startSize.Width, endSize.Width, t), lerp(startSize.Height, endSize.Height, t)))
		if t < 1 {
			return
		}
		finished = true
		delete(ui.motions, tc)
		tc.SetLifted(false)
		if ui.dragged == tc {
			ui.dragged = nil
		}
		done()
		ui.Relayout()
	})
	ui.motions[tc] = anim
	anim.Start()
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Reload rebinds every cell from the controller
func (ui *TokensUI) Reload() {
	n := ui.ctrl.Count()
	for len(ui.cells) < n {
		cell := ui.newCell()
		ui.cells = append(ui.cells, cell)
		ui.gridBox.Add(cell)
	}
	for len(ui.cells) > n {
		last := ui.cells[len(ui.cells)-1]
		ui.cells = ui.cells[:len(ui.cells)-1]
		ui.stopMotion(last)
		ui.gridBox.Remove(last)
		ui.ctrl.ReleaseCell(last)
	}

	if !ui.ctrl.Dragging() {
		ui.resetDrag()
	}
	for i, cell := range ui.cells {
		ui.ctrl.BindCell(i, cell)
	}

	if n == 0 {
		ui.emptyLabel.Show()
	} else {
		ui.emptyLabel.Hide()
	}
	ui.Relayout()
}

func (ui *TokensUI) resetDrag() {
	if ui.dragged == nil {
		return
	}
	ui.stopMotion(ui.dragged)
	ui.dragged.SetLifted(false)
	ui.dragged = nil
}

// Relayout re-applies the grid geometry without rebinding cells
func (ui *TokensUI) Relayout() {
	ui.gridBox.Refresh()
	ui.scroll.Refresh()
}

// Push shows screen on the navigation stack
func (ui *TokensUI) Push(screen present.Screen) {
	cs, ok := screen.(contentScreen)
	if !ok {
		log.Printf("Cannot push screen of type %T", screen)
		return
	}
	ui.navStack = append(ui.navStack, cs)
	ui.showTop()
}

func (ui *TokensUI) showTop() {
	if len(ui.navStack) == 0 {
		ui.window.SetContent(ui.home)
		return
	}
	top := ui.navStack[len(ui.navStack)-1]

	back := widget.NewButton(IconBack+" "+ui.localization.GetText(KeyBack), ui.back)
	back.Importance = widget.LowImportance
	title := widget.NewLabel(top.Title())
	title.TextStyle = fyne.TextStyle{Bold: true}

	header := container.NewVBox(container.NewHBox(back, title), widget.NewSeparator())
	ui.window.SetContent(container.NewBorder(header, nil, nil, nil, top.Content()))
}

// back pops the top screen without finishing it
func (ui *TokensUI) back() {
	if len(ui.navStack) == 0 {
		return
	}
	ui.navStack = ui.navStack[:len(ui.navStack)-1]
	ui.showTop()
	if len(ui.navStack) == 0 {
		ui.ctrl.Appear()
	}
}

// PresentOverlay shows nav in an overlay anchored as opts describe
func (ui *TokensUI) PresentOverlay(nav present.Screen, opts present.OverlayOptions) {
	cs, ok := nav.(contentScreen)
	if !ok {
		log.Printf("Cannot present screen of type %T", nav)
		return
	}

	var preferred fyne.Size
	if wrapped, ok := nav.(present.NavScreen); ok {
		if s, ok := wrapped.Top().(present.Sizable); ok {
			size := s.PreferredSize()
			preferred = fyne.NewSize(size.Width, size.Height)
		}
	}

	anchorPos, anchorSize := ui.resolveAnchor(opts.Anchor)
	ov := newAnchoredOverlay(cs.Content(), anchorPos, anchorSize, opts.Arrows, preferred)
	ov.onOutside = func() {
		ui.removeOverlay()
		if opts.OnDismiss != nil {
			opts.OnDismiss()
		}
	}

	ui.overlay = ov
	c := ui.window.Canvas()
	ov.Resize(c.Size())
	c.Overlays().Add(ov)
}

// DismissOverlay removes the current overlay without notifying anyone
func (ui *TokensUI) DismissOverlay() {
	ui.removeOverlay()
}

func (ui *TokensUI) removeOverlay() {
	if ui.overlay == nil {
		return
	}
	ui.window.Canvas().Overlays().Remove(ui.overlay)
	ui.overlay = nil
}

// resolveAnchor returns the anchor rectangle in canvas coordinates
func (ui *TokensUI) resolveAnchor(anchor present.Anchor) (fyne.Position, fyne.Size) {
	driver := fyne.CurrentApp().Driver()
	switch a := anchor.(type) {
	case present.ControlAnchor:
		if obj, ok := a.Control.(fyne.CanvasObject); ok {
			return driver.AbsolutePositionForObject(obj), obj.Size()
		}
	case present.ViewAnchor:
		if obj, ok := a.View.(fyne.CanvasObject); ok {
			origin := driver.AbsolutePositionForObject(obj)
			return origin.Add(fyne.NewPos(a.Bounds.X, a.Bounds.Y)), fyne.NewSize(a.Bounds.Width, a.Bounds.Height)
		}
	}
	size := ui.window.Canvas().Size()
	return fyne.NewPos(size.Width/2, size.Height/2), fyne.NewSize(0, 0)
}

// finishScreen closes whatever sub-screen is showing and unwinds to the grid
func (ui *TokensUI) finishScreen() {
	if ui.overlay != nil {
		ui.removeOverlay()
	} else if len(ui.navStack) > 0 {
		ui.navStack = ui.navStack[:len(ui.navStack)-1]
		ui.showTop()
	}
	ui.ctrl.Unwind()
}

// tokenGridLayout places cells into their slots, skipping the dragged one
type tokenGridLayout struct {
	ui *TokensUI
}

func (l *tokenGridLayout) Layout(_ []fyne.CanvasObject, size fyne.Size) {
	ui := l.ui
	ui.geometry = ui.ctrl.Geometry(size.Width)

	for i, c := range ui.cells {
		if c == ui.dragged {
			continue
		}
		if _, moving := ui.motions[c]; moving {
			continue
		}
		pos, cs := ui.slotRect(i, ui.geometry)
		c.Move(pos)
		c.Resize(cs)
	}

	if o := ui.device.Orientation(); o != ui.orient {
		ui.orient = o
		log.Printf("Orientation changed to %s", o)
		fyne.Do(ui.ctrl.OrientationChanged)
	}
}

func (l *tokenGridLayout) MinSize(_ []fyne.CanvasObject) fyne.Size {
	ui := l.ui
	width := ui.scroll.Size().Width
	if width <= 0 {
		width = ui.window.Canvas().Size().Width
	}
	g := ui.ctrl.Geometry(width)
	cols := g.Columns
	if cols < 1 {
		cols = 1
	}
	rows := int(math.Ceil(float64(len(ui.cells)) / float64(cols)))
	if rows == 0 {
		return fyne.NewSize(0, 0)
	}
	h := cellSize(g).Height
	return fyne.NewSize(0, 2*GridInset+float32(rows)*h+float32(rows-1)*GridSpacing)
}
