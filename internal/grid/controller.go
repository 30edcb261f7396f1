package grid

import (
	"log"
	"time"

	"github.com/ytget/otp-grid/internal/imaging"
	"github.com/ytget/otp-grid/internal/layout"
	"github.com/ytget/otp-grid/internal/model"
	"github.com/ytget/otp-grid/internal/present"
	"github.com/ytget/otp-grid/internal/reorder"
	"github.com/ytget/otp-grid/internal/thumbnail"
)

// CodePlaceholder is shown when a token cannot produce a code
const CodePlaceholder = "------"

// Content is what a cell displays for one token
type Content struct {
	Issuer string
	Label  string
	// Locked shows the lock indicator
	Locked bool
	// Outer shows the time-based style decoration
	Outer bool
	// Token is the reference handed to the cell's edit and share controls.
	// Nil for a placeholder cell.
	Token *model.Token
}

// Cell is a rendered grid cell
type Cell interface {
	thumbnail.Target
	SetContent(content Content)
	ShowCode(code model.Code)
	ClearCode()
	ImageSize() imaging.Size
}

// Store is the token store the controller reads and reorders
type Store interface {
	Count() int
	Load(index int) (*model.Token, bool)
	Move(from, to int) error
}

// View is the rendered grid
type View interface {
	reorder.View
	// Relayout re-applies geometry without rebinding any cell
	Relayout()
}

// Options configure the environment the controller reads from
type Options struct {
	Orientation func() layout.Orientation
	DeviceClass func() layout.DeviceClass
	Spacing     float32
	Inset       float32
	Now         func() time.Time
}

// Controller is the grid data source and orchestrator
type Controller struct {
	store  Store
	thumbs *thumbnail.Pipeline
	router *present.Router
	opts   Options

	view    View
	machine *reorder.Machine
}

// NewController creates a controller. Call AttachView before the first
// reload.
func NewController(store Store, thumbs *thumbnail.Pipeline, router *present.Router, opts Options) *Controller {
	if opts.Orientation == nil {
		opts.Orientation = func() layout.Orientation { return layout.OrientationPortrait }
	}
	if opts.DeviceClass == nil {
		opts.DeviceClass = func() layout.DeviceClass { return layout.DeviceClassCompact }
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	c := &Controller{
		store:  store,
		thumbs: thumbs,
		router: router,
		opts:   opts,
	}
	if router != nil {
		router.SetDismissHandler(c.reload)
	}
	return c
}

// AttachView connects the rendered grid and creates the reorder machine
func (c *Controller) AttachView(view View) {
	c.view = view
	c.machine = reorder.NewMachine(view, c.store)
}

// Count returns the number of items in the grid
func (c *Controller) Count() int {
	return c.store.Count()
}

// BindCell fills cell with the token at index and starts its thumbnail
func (c *Controller) BindCell(index int, cell Cell) {
	cell.ClearCode()

	token, ok := c.store.Load(index)
	if !ok {
		cell.SetContent(Content{})
		c.thumbs.Invalidate(cell)
		return
	}

	cell.SetContent(Content{
		Issuer: token.Issuer,
		Label:  token.Label,
		Locked: token.Locked,
		Outer:  token.Kind.IsTimeBased(),
		Token:  token,
	})
	c.thumbs.Resolve(cell, token.Image, cell.ImageSize())
}

// ReleaseCell forgets a cell the view has destroyed
func (c *Controller) ReleaseCell(cell Cell) {
	c.thumbs.Release(cell)
}

// Select shows the current code of the token at index in its cell
func (c *Controller) Select(index int) {
	if c.view == nil {
		return
	}
	handle, ok := c.view.CellAt(index)
	if !ok {
		return
	}
	cell, ok := handle.(Cell)
	if !ok {
		return
	}
	token, ok := c.store.Load(index)
	if !ok {
		return
	}

	code, ok := token.CurrentCode(c.opts.Now())
	if !ok {
		code = model.Code{Value: CodePlaceholder}
	}
	cell.ShowCode(code)
}

// Geometry computes the grid layout for containerWidth. It reads the
// current orientation and device class on every call.
func (c *Controller) Geometry(containerWidth float32) layout.Geometry {
	return layout.Compute(containerWidth, c.opts.Orientation(), c.opts.DeviceClass(), c.opts.Spacing, c.opts.Inset)
}

// SizeForIndex returns the cell size for index. All cells share one size.
func (c *Controller) SizeForIndex(index int, containerWidth float32) (float32, float32) {
	g := c.Geometry(containerWidth)
	return g.CellWidth, g.CellHeight
}

// OrientationChanged relayouts the grid with freshly computed geometry
func (c *Controller) OrientationChanged() {
	if c.view != nil {
		c.view.Relayout()
	}
}

// Appear reloads every cell
func (c *Controller) Appear() {
	c.reload()
}

// Unwind is called when a sub-screen finishes and hands control back
func (c *Controller) Unwind() {
	c.reload()
}

// HandleGesture feeds a long-press phase into the reorder machine
func (c *Controller) HandleGesture(phase reorder.Phase, p reorder.Point) {
	if c.machine == nil {
		return
	}
	c.machine.Handle(phase, p)
}

// Dragging reports whether a drag session is in progress
func (c *Controller) Dragging() bool {
	return c.machine != nil && c.machine.State() != reorder.StateIdle
}

// Add presents the add screen
func (c *Controller) Add(anchor present.Anchor) {
	c.route("add", func() (present.Screen, error) { return c.router.Add(anchor) })
}

// Scan presents the scan screen
func (c *Controller) Scan(anchor present.Anchor) {
	c.route("scan", func() (present.Screen, error) { return c.router.Scan(anchor) })
}

// Edit presents the edit screen for token
func (c *Controller) Edit(anchor present.Anchor, token *model.Token) {
	c.route("edit", func() (present.Screen, error) { return c.router.Edit(anchor, token) })
}

// Share presents the share screen for token
func (c *Controller) Share(anchor present.Anchor, token *model.Token) {
	c.route("share", func() (present.Screen, error) { return c.router.Share(anchor, token) })
}

func (c *Controller) route(name string, fn func() (present.Screen, error)) {
	if c.router == nil {
		return
	}
	if _, err := fn(); err != nil {
		log.Printf("Failed to present %s: %v", name, err)
	}
}

func (c *Controller) reload() {
	if c.view != nil {
		c.view.Reload()
	}
}
