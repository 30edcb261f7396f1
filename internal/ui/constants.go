package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconAdd      = "+"
	IconScan     = "📷"
	IconLock     = "🔒"
	IconEdit     = "✎"
	IconShare    = "📱"
	IconBack     = "‹"
	IconClose    = "×"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
)

// Grid sizing
const (
	GridSpacing float32 = 8
	GridInset   float32 = 8

	// CellMinHeight keeps very narrow windows usable
	CellMinHeight float32 = 44

	CellPadding      float32 = 4
	OuterBorderWidth float32 = 2

	// ThumbnailFallbackSize is requested when the cell has not been laid out yet
	ThumbnailFallbackSize = 48
)

// Overlay sizing
const (
	OverlayMargin     float32 = 8
	OverlayArrowGap   float32 = 6
	OverlayMinWidth   float32 = 280
	OverlayMinHeight  float32 = 200
	OverlayScrimAlpha         = 0x40
)

// Animation durations
const (
	ThumbnailFade   = 200 * time.Millisecond
	ReflowDuration  = 150 * time.Millisecond
	SettleDuration  = 200 * time.Millisecond
	CodeDisplayTime = 30 * time.Second
)
