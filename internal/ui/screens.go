package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/otp-grid/internal/model"
	"github.com/ytget/otp-grid/internal/present"
)

var screenTitles = map[string]string{
	present.TargetAdd:   KeyAdd,
	present.TargetScan:  KeyScan,
	present.TargetEdit:  KeyEdit,
	present.TargetShare: KeyShare,
}

// contentScreen is any screen the navigator can render
type contentScreen interface {
	Title() string
	Content() fyne.CanvasObject
}

// Screen is a sub-screen bound to an optional token. The forms behind add,
// scan, edit and share live outside this package; the screen only shows
// which token it acts on and hands control back when done.
type Screen struct {
	name         string
	localization *Localization
	onDone       func()

	token *model.Token
	size  present.Size

	tokenLabel *widget.Label
	detail     *widget.Label
	content    fyne.CanvasObject
}

func newScreen(name string, localization *Localization, onDone func()) *Screen {
	s := &Screen{
		name:         name,
		localization: localization,
		onDone:       onDone,
		size:         present.Size{Width: OverlayMinWidth, Height: OverlayMinHeight},
	}

	s.tokenLabel = widget.NewLabel("")
	s.tokenLabel.TextStyle = fyne.TextStyle{Bold: true}
	s.detail = widget.NewLabel(localization.GetText(KeyFormPending))
	s.detail.Wrapping = fyne.TextWrapWord

	done := widget.NewButton(localization.GetText(KeyDone), s.Done)
	done.Importance = widget.HighImportance

	s.content = container.NewBorder(nil, done, nil, nil, container.NewVBox(s.tokenLabel, s.detail))
	s.refresh()
	return s
}

// Name returns the registry name the screen was created under
func (s *Screen) Name() string { return s.name }

// Title returns the localized screen title
func (s *Screen) Title() string {
	return s.localization.GetText(screenTitles[s.name])
}

// Content returns the screen's canvas object
func (s *Screen) Content() fyne.CanvasObject { return s.content }

// Token returns the bound token, nil for add and scan
func (s *Screen) Token() *model.Token { return s.token }

// SetToken binds the token the screen acts on
func (s *Screen) SetToken(token *model.Token) {
	s.token = token
	s.refresh()
}

// PreferredSize returns the size requested for overlay presentation
func (s *Screen) PreferredSize() present.Size { return s.size }

// SetPreferredSize sets the size requested for overlay presentation
func (s *Screen) SetPreferredSize(size present.Size) { s.size = size }

// Done finishes the screen and unwinds to the grid
func (s *Screen) Done() {
	if s.onDone != nil {
		s.onDone()
	}
}

func (s *Screen) refresh() {
	if s.token == nil {
		if s.name == present.TargetEdit || s.name == present.TargetShare {
			s.tokenLabel.SetText(s.localization.GetText(KeyNoToken))
		} else {
			s.tokenLabel.SetText("")
		}
		return
	}
	text := s.token.GetDisplayTitle()
	if s.token.Label != "" && s.token.Label != text {
		text += MiddleDotSeparator + s.token.Label
	}
	if s.token.Locked {
		text += " " + IconLock
	}
	s.tokenLabel.SetText(text)
}

// NavContainer wraps a screen with its own title bar for overlay presentation
type NavContainer struct {
	top     *Screen
	content fyne.CanvasObject
}

func newNavContainer(top *Screen) *NavContainer {
	title := widget.NewLabel(top.Title())
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Alignment = fyne.TextAlignCenter
	closeBtn := widget.NewButton(IconClose, top.Done)
	closeBtn.Importance = widget.LowImportance

	header := container.NewBorder(nil, nil, nil, closeBtn, title)
	return &NavContainer{
		top:     top,
		content: container.NewBorder(container.NewVBox(header, widget.NewSeparator()), nil, nil, nil, top.Content()),
	}
}

// Top returns the primary content screen
func (n *NavContainer) Top() present.Screen { return n.top }

// Title returns the wrapped screen's title
func (n *NavContainer) Title() string { return n.top.Title() }

// Content returns the wrapped canvas object
func (n *NavContainer) Content() fyne.CanvasObject { return n.content }

// NewScreenRegistry registers every sub-screen and its navigation-wrapped
// variant. onDone is called when any screen finishes.
func NewScreenRegistry(localization *Localization, onDone func()) *present.MapRegistry {
	reg := present.NewMapRegistry()
	for name := range screenTitles {
		name := name
		reg.Register(name, func() present.Screen {
			return newScreen(name, localization, onDone)
		})
		reg.Register(name+present.NavSuffix, func() present.Screen {
			return newNavContainer(newScreen(name, localization, onDone))
		})
	}
	return reg
}
