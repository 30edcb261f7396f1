package present

import (
	"github.com/ytget/otp-grid/internal/model"
)

// Target names known to the registry
const (
	TargetAdd   = "add"
	TargetScan  = "scan"
	TargetEdit  = "edit"
	TargetShare = "share"

	// NavSuffix names the navigation-wrapped variant of a target
	NavSuffix = "Nav"
)

// ArrowDirection is a bitmask of permitted overlay arrow directions
type ArrowDirection uint8

const (
	ArrowUp ArrowDirection = 1 << iota
	ArrowDown
	ArrowLeft
	ArrowRight

	ArrowsVertical   = ArrowUp | ArrowDown
	ArrowsHorizontal = ArrowLeft | ArrowRight
)

// Has reports whether d permits every direction in other
func (d ArrowDirection) Has(other ArrowDirection) bool {
	return d&other == other
}

// Rect is an anchor rectangle in the anchor view's coordinates
type Rect struct {
	X, Y, Width, Height float32
}

// Size is a preferred overlay content size
type Size struct {
	Width, Height float32
}

// Anchor is where an overlay points at. It is either a ControlAnchor or a
// ViewAnchor.
type Anchor interface {
	isAnchor()
}

// ControlAnchor anchors to a toolbar or bar button control
type ControlAnchor struct {
	Control interface{}
}

func (ControlAnchor) isAnchor() {}

// ViewAnchor anchors to an arbitrary view and a rectangle inside it
type ViewAnchor struct {
	View   interface{}
	Bounds Rect
}

func (ViewAnchor) isAnchor() {}

// Screen is a sub-controller instantiated from the registry
type Screen interface{}

// TokenBinder is implemented by screens that act on a token
type TokenBinder interface {
	SetToken(token *model.Token)
}

// Sizable is implemented by screens that accept a preferred content size
type Sizable interface {
	PreferredSize() Size
	SetPreferredSize(size Size)
}

// NavScreen is a navigation container wrapping a primary content screen
type NavScreen interface {
	Top() Screen
}

// Registry instantiates screens by name
type Registry interface {
	Instantiate(name string) (Screen, error)
}

// OverlayOptions describe an anchored overlay presentation
type OverlayOptions struct {
	Anchor Anchor
	Arrows ArrowDirection
	// OnDismiss is called when the system dismisses the overlay, for
	// example after a tap outside it
	OnDismiss func()
}

// Navigator performs the actual presentation
type Navigator interface {
	Push(screen Screen)
	PresentOverlay(nav Screen, opts OverlayOptions)
	DismissOverlay()
}

// Request is one call into the router
type Request struct {
	Target        string
	Anchor        Anchor
	PreferredSize *Size
	Arrows        ArrowDirection
	Token         *model.Token
}
