package present

import (
	"errors"
	"fmt"
	"log"

	"github.com/ytget/otp-grid/internal/layout"
	"github.com/ytget/otp-grid/internal/model"
)

var (
	// ErrUnknownTarget is returned by registries for unregistered names
	ErrUnknownTarget = errors.New("unknown presentation target")

	// ErrNotNavigable is returned when a "Nav" variant has no top screen
	ErrNotNavigable = errors.New("wrapped target has no top screen")
)

// Router chooses between overlay and push presentation
type Router struct {
	registry    Registry
	navigator   Navigator
	deviceClass func() layout.DeviceClass
	screenWidth func() float32
	onDismiss   func()
}

// NewRouter creates a router. deviceClass and screenWidth are read on every
// presentation so rotation and settings changes apply immediately.
func NewRouter(registry Registry, navigator Navigator, deviceClass func() layout.DeviceClass, screenWidth func() float32) *Router {
	return &Router{
		registry:    registry,
		navigator:   navigator,
		deviceClass: deviceClass,
		screenWidth: screenWidth,
	}
}

// SetDismissHandler sets the hook run when an overlay is dismissed by the system
func (r *Router) SetDismissHandler(fn func()) {
	r.onDismiss = fn
}

// Present shows the requested target and returns its primary content screen.
// The size and token are applied before the screen is shown.
func (r *Router) Present(req Request) (Screen, error) {
	if r.deviceClass() == layout.DeviceClassRegular {
		return r.presentOverlay(req)
	}
	return r.push(req)
}

// configure applies the request's preferred size and token to screen
func configure(screen Screen, req Request) {
	if req.PreferredSize != nil {
		if s, ok := screen.(Sizable); ok {
			size := *req.PreferredSize
			if size.Height <= 0 {
				size.Height = s.PreferredSize().Height
			}
			s.SetPreferredSize(size)
		}
	}
	if req.Token != nil {
		if b, ok := screen.(TokenBinder); ok {
			b.SetToken(req.Token)
		}
	}
}

func (r *Router) presentOverlay(req Request) (Screen, error) {
	wrapped, err := r.registry.Instantiate(req.Target + NavSuffix)
	if err != nil {
		return nil, fmt.Errorf("instantiate %s%s: %w", req.Target, NavSuffix, err)
	}
	nav, ok := wrapped.(NavScreen)
	if !ok || nav.Top() == nil {
		return nil, fmt.Errorf("%s%s: %w", req.Target, NavSuffix, ErrNotNavigable)
	}

	top := nav.Top()
	configure(top, req)

	r.navigator.DismissOverlay()
	r.navigator.PresentOverlay(wrapped, OverlayOptions{
		Anchor:    req.Anchor,
		Arrows:    req.Arrows,
		OnDismiss: r.OverlayDismissed,
	})
	return top, nil
}

func (r *Router) push(req Request) (Screen, error) {
	screen, err := r.registry.Instantiate(req.Target)
	if err != nil {
		return nil, fmt.Errorf("instantiate %s: %w", req.Target, err)
	}
	configure(screen, req)
	r.navigator.Push(screen)
	return screen, nil
}

// OverlayDismissed is the delegate hook for system-driven overlay dismissal
func (r *Router) OverlayDismissed() {
	log.Printf("Overlay dismissed, reloading grid")
	if r.onDismiss != nil {
		r.onDismiss()
	}
}

func (r *Router) halfScreen() *Size {
	return &Size{Width: r.screenWidth() / 2}
}

// Add presents the add-token screen
func (r *Router) Add(anchor Anchor) (Screen, error) {
	return r.Present(Request{Target: TargetAdd, Anchor: anchor, PreferredSize: r.halfScreen(), Arrows: ArrowsVertical})
}

// Scan presents the scan screen
func (r *Router) Scan(anchor Anchor) (Screen, error) {
	return r.Present(Request{Target: TargetScan, Anchor: anchor, PreferredSize: r.halfScreen(), Arrows: ArrowsVertical})
}

// Edit presents the edit screen bound to token
func (r *Router) Edit(anchor Anchor, token *model.Token) (Screen, error) {
	return r.Present(Request{Target: TargetEdit, Anchor: anchor, Arrows: ArrowsHorizontal, Token: token})
}

// Share presents the share screen bound to token
func (r *Router) Share(anchor Anchor, token *model.Token) (Screen, error) {
	return r.Present(Request{Target: TargetShare, Anchor: anchor, Arrows: ArrowsHorizontal, Token: token})
}
