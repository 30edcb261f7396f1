package ui

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/otp-grid/internal/config"
	"github.com/ytget/otp-grid/internal/layout"
)

// RegularMinShortSide is the shortest canvas side, in fyne units, from which
// a mobile device is treated as a tablet
const RegularMinShortSide float32 = 600

// DeviceInfo answers form factor questions for the grid and the router
type DeviceInfo struct {
	settings   *config.Settings
	canvasSize func() fyne.Size
	isMobile   func() bool
	deviceOri  func() fyne.DeviceOrientation
}

// NewDeviceInfo creates a device helper reading the canvas size on demand
func NewDeviceInfo(settings *config.Settings, canvasSize func() fyne.Size) *DeviceInfo {
	return &DeviceInfo{
		settings:   settings,
		canvasSize: canvasSize,
		isMobile:   func() bool { return fyne.CurrentDevice().IsMobile() },
		deviceOri:  func() fyne.DeviceOrientation { return fyne.CurrentDevice().Orientation() },
	}
}

// IsMobileDevice checks if the app is running on a mobile device
func (d *DeviceInfo) IsMobileDevice() bool {
	return d.isMobile()
}

// DeviceClass returns the configured override, or the detected class
func (d *DeviceInfo) DeviceClass() layout.DeviceClass {
	if d.settings != nil {
		switch d.settings.GetDeviceClassMode() {
		case config.DeviceClassCompact:
			return layout.DeviceClassCompact
		case config.DeviceClassRegular:
			return layout.DeviceClassRegular
		}
	}

	// Desktop windows always get the larger presentation style
	if !d.IsMobileDevice() {
		return layout.DeviceClassRegular
	}

	size := d.canvasSize()
	short := size.Width
	if size.Height < short {
		short = size.Height
	}
	if short >= RegularMinShortSide {
		return layout.DeviceClassRegular
	}
	return layout.DeviceClassCompact
}

// Orientation returns the current orientation. Desktop windows have no
// physical orientation, so the window aspect decides.
func (d *DeviceInfo) Orientation() layout.Orientation {
	if !d.IsMobileDevice() {
		size := d.canvasSize()
		if size.Width > size.Height {
			return layout.OrientationLandscapeLeft
		}
		return layout.OrientationPortrait
	}
	return orientationFromDevice(d.deviceOri())
}

// ScreenWidth returns the current canvas width
func (d *DeviceInfo) ScreenWidth() float32 {
	return d.canvasSize().Width
}

func orientationFromDevice(o fyne.DeviceOrientation) layout.Orientation {
	switch o {
	case fyne.OrientationVerticalUpsideDown:
		return layout.OrientationPortraitUpsideDown
	case fyne.OrientationHorizontalLeft:
		return layout.OrientationLandscapeLeft
	case fyne.OrientationHorizontalRight:
		return layout.OrientationLandscapeRight
	default:
		return layout.OrientationPortrait
	}
}
