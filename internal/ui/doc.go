// Package ui contains the Fyne-based user interface for the application.
// It renders the token grid, turns pointer and touch input into long-press
// reorder gestures, and implements the navigation stack and anchored
// overlays the presentation router drives. All UI strings are localized via
// Localization.
package ui
