package ui

import (
	"image"
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/otp-grid/internal/grid"
	"github.com/ytget/otp-grid/internal/imaging"
	"github.com/ytget/otp-grid/internal/model"
)

// TokenCell renders one token tile in the grid
type TokenCell struct {
	widget.BaseWidget

	localization *Localization

	// UI components
	background  *canvas.Rectangle
	outer       *canvas.Rectangle
	thumbTile   *canvas.Rectangle
	thumb       *canvas.Image
	issuerLabel *widget.Label
	labelLabel  *widget.Label
	codeLabel   *widget.Label
	lockLabel   *widget.Label
	texts       *fyne.Container

	// Action buttons
	editBtn  *widget.Button
	shareBtn *widget.Button

	content grid.Content
	lifted  bool
	fade    *fyne.Animation

	codeMu    sync.Mutex
	codeGen   uint64
	codeTimer *time.Timer

	// Callbacks
	onSelect func(cell *TokenCell)
	onEdit   func(anchor fyne.CanvasObject, token *model.Token)
	onShare  func(anchor fyne.CanvasObject, token *model.Token)
}

// NewTokenCell creates an empty cell
func NewTokenCell(localization *Localization) *TokenCell {
	c := &TokenCell{localization: localization}
	c.ExtendBaseWidget(c)
	c.createUI()
	return c
}

// SetCallbacks sets the action callbacks
func (c *TokenCell) SetCallbacks(
	onSelect func(cell *TokenCell),
	onEdit func(anchor fyne.CanvasObject, token *model.Token),
	onShare func(anchor fyne.CanvasObject, token *model.Token),
) {
	c.onSelect = onSelect
	c.onEdit = onEdit
	c.onShare = onShare
}

func (c *TokenCell) createUI() {
	c.background = canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground))
	c.background.CornerRadius = theme.Size(theme.SizeNameInputRadius)

	c.outer = canvas.NewRectangle(color.Transparent)
	c.outer.StrokeColor = theme.Color(theme.ColorNamePrimary)
	c.outer.StrokeWidth = OuterBorderWidth
	c.outer.CornerRadius = theme.Size(theme.SizeNameInputRadius)
	c.outer.Hide()

	c.thumbTile = canvas.NewRectangle(PlaceholderColor(""))
	c.thumb = &canvas.Image{FillMode: canvas.ImageFillContain}
	thumbSize := fyne.NewSize(ThumbnailFallbackSize, ThumbnailFallbackSize)
	c.thumbTile.SetMinSize(thumbSize)
	c.thumb.SetMinSize(thumbSize)

	c.issuerLabel = widget.NewLabel("")
	c.issuerLabel.TextStyle = fyne.TextStyle{Bold: true}
	c.issuerLabel.Truncation = fyne.TextTruncateEllipsis
	c.labelLabel = widget.NewLabel("")
	c.labelLabel.Truncation = fyne.TextTruncateEllipsis
	c.texts = container.NewVBox(c.issuerLabel, c.labelLabel)

	c.codeLabel = widget.NewLabel("")
	c.codeLabel.TextStyle = fyne.TextStyle{Monospace: true, Bold: true}
	c.codeLabel.Alignment = fyne.TextAlignCenter
	c.codeLabel.SizeName = theme.SizeNameHeadingText
	c.codeLabel.Hide()

	c.lockLabel = widget.NewLabel(IconLock)
	c.lockLabel.Hide()

	c.editBtn = widget.NewButton(IconEdit, func() {
		if c.onEdit != nil && c.content.Token != nil {
			c.onEdit(c.editBtn, c.content.Token)
		}
	})
	c.editBtn.Importance = widget.LowImportance

	c.shareBtn = widget.NewButton(IconShare, func() {
		if c.onShare != nil && c.content.Token != nil {
			c.onShare(c.shareBtn, c.content.Token)
		}
	})
	c.shareBtn.Importance = widget.LowImportance
}

// SetContent shows content. A zero Content is the neutral placeholder.
func (c *TokenCell) SetContent(content grid.Content) {
	c.content = content

	issuer := content.Issuer
	if issuer == "" && content.Token != nil {
		issuer = content.Token.GetDisplayTitle()
	}
	c.issuerLabel.SetText(issuer)
	c.labelLabel.SetText(content.Label)
	c.thumbTile.FillColor = PlaceholderColor(content.Issuer)
	c.thumbTile.Refresh()

	if content.Locked {
		c.lockLabel.Show()
	} else {
		c.lockLabel.Hide()
	}
	if content.Outer {
		c.outer.Show()
	} else {
		c.outer.Hide()
	}
	if content.Token != nil {
		c.editBtn.Enable()
		c.shareBtn.Enable()
	} else {
		c.editBtn.Disable()
		c.shareBtn.Disable()
	}
	c.Refresh()
}

// Content returns what the cell currently shows
func (c *TokenCell) Content() grid.Content {
	return c.content
}

// ShowCode displays code until it expires
func (c *TokenCell) ShowCode(code model.Code) {
	c.codeMu.Lock()
	c.codeGen++
	gen := c.codeGen
	if c.codeTimer != nil {
		c.codeTimer.Stop()
	}
	hideAfter := CodeDisplayTime
	if !code.Until.IsZero() {
		if left := time.Until(code.Until); left > 0 && left < hideAfter {
			hideAfter = left
		}
	}
	c.codeTimer = time.AfterFunc(hideAfter, func() {
		fyne.Do(func() { c.expireCode(gen) })
	})
	c.codeMu.Unlock()

	c.codeLabel.SetText(code.Value)
	c.texts.Hide()
	c.codeLabel.Show()
}

// ClearCode hides any displayed code
func (c *TokenCell) ClearCode() {
	c.codeMu.Lock()
	c.codeGen++
	if c.codeTimer != nil {
		c.codeTimer.Stop()
		c.codeTimer = nil
	}
	c.codeMu.Unlock()

	c.hideCode()
}

// CodeVisible reports whether a code is displayed
func (c *TokenCell) CodeVisible() bool {
	return c.codeLabel.Visible()
}

func (c *TokenCell) expireCode(gen uint64) {
	c.codeMu.Lock()
	current := gen == c.codeGen
	c.codeMu.Unlock()
	if current {
		c.hideCode()
	}
}

func (c *TokenCell) hideCode() {
	c.codeLabel.SetText("")
	c.codeLabel.Hide()
	c.texts.Show()
}

// ImageSize returns the pixel size thumbnails are requested at
func (c *TokenCell) ImageSize() imaging.Size {
	side := c.thumb.Size().Height
	if side <= 0 {
		side = ThumbnailFallbackSize
	}
	if canv := fyne.CurrentApp().Driver().CanvasForObject(c); canv != nil {
		side *= canv.Scale()
	}
	return imaging.Size{Width: int(side), Height: int(side)}
}

// ClearThumbnail drops the displayed image and shows the placeholder tile
func (c *TokenCell) ClearThumbnail() {
	if c.fade != nil {
		c.fade.Stop()
		c.fade = nil
	}
	c.thumb.Image = nil
	c.thumb.Translucency = 0
	c.thumb.Refresh()
}

// ShowThumbnail fades img in over the placeholder tile
func (c *TokenCell) ShowThumbnail(img image.Image) {
	if c.fade != nil {
		c.fade.Stop()
	}
	c.thumb.Image = img
	c.thumb.Translucency = 1
	c.thumb.Refresh()

	c.fade = fyne.NewAnimation(ThumbnailFade, func(t float32) {
		c.thumb.Translucency = float64(1 - t)
		c.thumb.Refresh()
	})
	c.fade.Start()
}

// HasThumbnail reports whether an image is set
func (c *TokenCell) HasThumbnail() bool {
	return c.thumb.Image != nil
}

// SetLifted toggles the raised look used while dragging
func (c *TokenCell) SetLifted(lifted bool) {
	if c.lifted == lifted {
		return
	}
	c.lifted = lifted
	if lifted {
		c.background.FillColor = theme.Color(theme.ColorNameHover)
		c.background.StrokeColor = theme.Color(theme.ColorNameShadow)
		c.background.StrokeWidth = 1
	} else {
		c.background.FillColor = theme.Color(theme.ColorNameInputBackground)
		c.background.StrokeWidth = 0
	}
	c.background.Refresh()
}

// Tapped selects the cell
func (c *TokenCell) Tapped(*fyne.PointEvent) {
	if c.onSelect != nil {
		c.onSelect(c)
	}
}

// CreateRenderer creates the widget renderer
func (c *TokenCell) CreateRenderer() fyne.WidgetRenderer {
	thumb := container.NewStack(c.thumbTile, c.thumb)
	actions := container.NewHBox(c.lockLabel, c.editBtn, c.shareBtn)
	body := container.NewBorder(nil, nil, thumb, actions, container.NewStack(c.texts, c.codeLabel))

	return widget.NewSimpleRenderer(container.NewStack(
		c.background,
		c.outer,
		container.New(&paddedLayout{pad: CellPadding}, body),
	))
}

// paddedLayout insets every object by a fixed amount
type paddedLayout struct {
	pad float32
}

func (p *paddedLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	inner := fyne.NewSize(size.Width-2*p.pad, size.Height-2*p.pad)
	for _, o := range objects {
		o.Move(fyne.NewPos(p.pad, p.pad))
		o.Resize(inner)
	}
}

func (p *paddedLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	minSize := fyne.NewSize(0, 0)
	for _, o := range objects {
		minSize = minSize.Max(o.MinSize())
	}
	return minSize.Add(fyne.NewSize(2*p.pad, 2*p.pad))
}
