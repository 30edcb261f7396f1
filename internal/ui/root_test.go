package ui

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"

	"github.com/ytget/otp-grid/internal/config"
	gridlayout "github.com/ytget/otp-grid/internal/layout"
	"github.com/ytget/otp-grid/internal/model"
	"github.com/ytget/otp-grid/internal/present"
	"github.com/ytget/otp-grid/internal/reorder"
	"github.com/ytget/otp-grid/internal/store"
	"github.com/ytget/otp-grid/internal/thumbnail"
)

type staticCodes struct{ value string }

func (s staticCodes) CurrentCode(now time.Time) (model.Code, error) {
	return model.Code{Value: s.value, From: now, Until: now.Add(30 * time.Second)}, nil
}

func newTestUI(t *testing.T, mode config.DeviceClassMode, tokens ...*model.Token) (*TokensUI, *store.TokenStore, fyne.Window) {
	t.Helper()
	a := test.NewApp()
	a.Settings().SetTheme(NewCompactTheme())
	t.Cleanup(a.Quit)

	config.NewSettings(a).SetDeviceClassMode(mode)

	s := store.NewTokenStore(a.Preferences())
	for _, tok := range tokens {
		if _, err := s.Add(tok); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	w := test.NewWindow(nil)
	w.Resize(fyne.NewSize(800, 600))
	t.Cleanup(w.Close)

	ui := NewTokensUI(w, a, s, thumbnail.NewPipeline(nil, nil))
	return ui, s, w
}

func TestTokensUIBindsCells(t *testing.T) {
	ui, _, _ := newTestUI(t, config.DeviceClassAuto,
		&model.Token{Issuer: "Acme", Label: "bob", Kind: model.TokenKindTOTP},
		&model.Token{Issuer: "Bank", Label: "al", Kind: model.TokenKindHOTP, Locked: true},
	)

	if len(ui.cells) != 2 {
		t.Fatalf("cells = %d, expected 2", len(ui.cells))
	}
	first, second := ui.cells[0].Content(), ui.cells[1].Content()
	if first.Issuer != "Acme" || !first.Outer || first.Locked {
		t.Errorf("cell 0 content = %+v", first)
	}
	if second.Issuer != "Bank" || second.Outer || !second.Locked {
		t.Errorf("cell 1 content = %+v", second)
	}
	if !ui.cells[1].lockLabel.Visible() {
		t.Error("lock indicator hidden for a locked token")
	}
	if ui.emptyLabel.Visible() {
		t.Error("empty label visible with tokens present")
	}
}

func TestTokensUIEmpty(t *testing.T) {
	ui, s, _ := newTestUI(t, config.DeviceClassAuto)

	if !ui.emptyLabel.Visible() {
		t.Error("empty label hidden with no tokens")
	}

	if _, err := s.Add(&model.Token{Issuer: "Late"}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	ui.ctrl.Appear()
	if len(ui.cells) != 1 || ui.emptyLabel.Visible() {
		t.Errorf("after Appear cells = %d emptyVisible = %v", len(ui.cells), ui.emptyLabel.Visible())
	}
}

func TestSelectShowsCurrentCode(t *testing.T) {
	a := &model.Token{Issuer: "Acme", Kind: model.TokenKindTOTP}
	ui, s, _ := newTestUI(t, config.DeviceClassAuto, a)
	s.SetCodeSourceFactory(func(*model.Token) model.CodeSource { return staticCodes{value: "123456"} })
	ui.ctrl.Appear()

	ui.onSelectCell(ui.cells[0])

	if !ui.cells[0].CodeVisible() {
		t.Fatal("code hidden after select")
	}
	if got := ui.cells[0].codeLabel.Text; got != "123456" {
		t.Errorf("code = %q, expected %q", got, "123456")
	}

	// Rebinding clears the code
	ui.ctrl.Appear()
	if ui.cells[0].CodeVisible() {
		t.Error("code still visible after reload")
	}
}

func TestCompactEditPushesAndUnwinds(t *testing.T) {
	ui, _, w := newTestUI(t, config.DeviceClassCompact, &model.Token{Issuer: "Acme"})
	token := ui.cells[0].Content().Token

	ui.onEditToken(ui.cells[0].editBtn, token)

	if len(ui.navStack) != 1 {
		t.Fatalf("navStack = %d, expected 1", len(ui.navStack))
	}
	screen, ok := ui.navStack[0].(*Screen)
	if !ok {
		t.Fatalf("pushed %T, expected *Screen", ui.navStack[0])
	}
	if screen.Token() != token {
		t.Errorf("screen token = %p, expected %p", screen.Token(), token)
	}
	if w.Content() == ui.home {
		t.Error("window still shows the grid after push")
	}

	screen.Done()
	if len(ui.navStack) != 0 {
		t.Errorf("navStack = %d after Done, expected 0", len(ui.navStack))
	}
	if w.Content() != ui.home {
		t.Error("window does not show the grid after Done")
	}
}

func TestRegularAddShowsOverlayAndTapOutsideReloads(t *testing.T) {
	ui, s, w := newTestUI(t, config.DeviceClassRegular, &model.Token{Issuer: "Acme"})

	ui.ctrl.Add(present.ControlAnchor{Control: ui.addBtn})
	if ui.overlay == nil {
		t.Fatal("no overlay after Add on a regular device")
	}
	if n := len(w.Canvas().Overlays().List()); n != 1 {
		t.Fatalf("canvas overlays = %d, expected 1", n)
	}

	// Edits made in the overlay are only picked up by the reload on dismissal
	if _, err := s.Add(&model.Token{Issuer: "Added"}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	ui.overlay.Tapped(&fyne.PointEvent{Position: fyne.NewPos(1, 1)})

	if ui.overlay != nil || len(w.Canvas().Overlays().List()) != 0 {
		t.Error("overlay still shown after tapping outside")
	}
	if len(ui.cells) != 2 {
		t.Errorf("cells = %d after dismissal, expected 2", len(ui.cells))
	}
}

func TestRegularAddOverlayIsHalfScreenWide(t *testing.T) {
	ui, _, w := newTestUI(t, config.DeviceClassRegular)
	w.Resize(fyne.NewSize(1200, 800))

	ui.ctrl.Add(present.ControlAnchor{Control: ui.addBtn})
	if ui.overlay == nil {
		t.Fatal("no overlay after Add on a regular device")
	}
	if got := ui.overlay.preferred.Width; got != 600 {
		t.Errorf("overlay preferred width = %v, expected 600", got)
	}

	ui.overlay.Refresh()
	if got := ui.overlay.panel.Size().Width; got != 600 {
		t.Errorf("overlay panel width = %v, expected 600", got)
	}
}

func TestCellActionsShareAnchorForm(t *testing.T) {
	ui, _, _ := newTestUI(t, config.DeviceClassRegular, &model.Token{Issuer: "Acme"})
	cell := ui.cells[0]

	for _, btn := range []fyne.CanvasObject{cell.editBtn, cell.shareBtn} {
		anchor, ok := cellActionAnchor(btn).(present.ControlAnchor)
		if !ok || anchor.Control != btn {
			t.Errorf("cellActionAnchor() = %#v, expected ControlAnchor for the button", anchor)
		}
	}

	ui.onEditToken(cell.editBtn, cell.Content().Token)
	if ui.overlay == nil {
		t.Fatal("no overlay after Edit")
	}
	if got, want := ui.overlay.anchorSize, cell.editBtn.Size(); got != want {
		t.Errorf("edit anchor size = %v, expected %v", got, want)
	}

	ui.onShareToken(cell.shareBtn, cell.Content().Token)
	if got, want := ui.overlay.anchorSize, cell.shareBtn.Size(); got != want {
		t.Errorf("share anchor size = %v, expected %v", got, want)
	}
}

type recordingLimiter struct {
	parallel, entries int
	calls             int
}

func (r *recordingLimiter) SetLimits(maxParallel, cacheEntries int) {
	r.parallel, r.entries = maxParallel, cacheEntries
	r.calls++
}

func TestApplySettingsResizesImageService(t *testing.T) {
	ui, _, _ := newTestUI(t, config.DeviceClassAuto)
	limiter := &recordingLimiter{}
	ui.SetImageLimiter(limiter)

	ui.settings.SetMaxParallelFetches(7)
	ui.settings.SetThumbnailCacheEntries(32)
	ui.applySettings()

	if limiter.calls != 1 || limiter.parallel != 7 || limiter.entries != 32 {
		t.Errorf("SetLimits() got calls=%d parallel=%d entries=%d, expected 1, 7, 32",
			limiter.calls, limiter.parallel, limiter.entries)
	}
}

func TestCellSizeKeepsMinimumHeight(t *testing.T) {
	tests := []struct {
		name     string
		g        gridlayout.Geometry
		expected fyne.Size
	}{
		{"regular", gridlayout.Geometry{Columns: 3, CellWidth: 325, CellHeight: 100}, fyne.NewSize(325, 100)},
		{"narrow", gridlayout.Geometry{Columns: 2, CellWidth: 65, CellHeight: 20}, fyne.NewSize(65, CellMinHeight)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cellSize(tt.g); got != tt.expected {
				t.Errorf("cellSize() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestDragReordersStore(t *testing.T) {
	ui, s, _ := newTestUI(t, config.DeviceClassRegular,
		&model.Token{Issuer: "A"}, &model.Token{Issuer: "B"}, &model.Token{Issuer: "C"})
	ids := s.IDs()

	ui.gridBox.Resize(fyne.NewSize(784, 400))
	if g := ui.geometry; g.Columns < 2 {
		t.Fatalf("geometry = %+v, expected at least two columns", g)
	}

	center := func(i int) reorder.Point {
		pos, size := ui.slotRect(i, ui.geometry)
		return reorder.Point{X: pos.X + size.Width/2, Y: pos.Y + size.Height/2}
	}
	if i, ok := ui.IndexAt(center(1)); !ok || i != 1 {
		t.Fatalf("IndexAt(center(1)) = %d,%v", i, ok)
	}
	if _, ok := ui.IndexAt(reorder.Point{X: 1, Y: 1}); ok {
		t.Error("IndexAt() hit a cell inside the inset")
	}

	ui.ctrl.HandleGesture(reorder.PhaseBegan, center(0))
	if ui.dragged != ui.cells[0] {
		t.Fatal("dragged cell not lifted")
	}
	ui.ctrl.HandleGesture(reorder.PhaseChanged, center(1))
	ui.ctrl.HandleGesture(reorder.PhaseEnded, center(1))

	got := s.IDs()
	want := []string{ids[1], ids[0], ids[2]}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("order[%d] = %s, expected %s", i, got[i], want[i])
		}
	}
	if first := ui.cells[0].Content().Issuer; first != "B" {
		t.Errorf("slot 0 shows %q after reload, expected B", first)
	}
}

func TestScreenRegistry(t *testing.T) {
	test.NewApp()
	done := 0
	reg := NewScreenRegistry(NewLocalization(), func() { done++ })

	for _, name := range []string{present.TargetAdd, present.TargetScan, present.TargetEdit, present.TargetShare} {
		plain, err := reg.Instantiate(name)
		if err != nil {
			t.Fatalf("Instantiate(%s) error = %v", name, err)
		}
		if _, ok := plain.(*Screen); !ok {
			t.Errorf("Instantiate(%s) = %T, expected *Screen", name, plain)
		}

		wrapped, err := reg.Instantiate(name + present.NavSuffix)
		if err != nil {
			t.Fatalf("Instantiate(%s%s) error = %v", name, present.NavSuffix, err)
		}
		nav, ok := wrapped.(present.NavScreen)
		if !ok || nav.Top() == nil {
			t.Errorf("Instantiate(%s%s) has no top screen", name, present.NavSuffix)
			continue
		}
		nav.Top().(*Screen).Done()
	}
	if done != 4 {
		t.Errorf("done callbacks = %d, expected 4", done)
	}
}
