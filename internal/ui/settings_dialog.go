package ui

import (
	"sort"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/otp-grid/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	deviceSelect     *widget.Select
	longPressEntry   *widget.Entry
	cacheEntry       *widget.Entry
	maxParallelEntry *widget.Entry
	languageSelect   *widget.Select

	deviceLabels map[string]config.DeviceClassMode
}

// ShowSettingsDialog creates and shows the settings dialog. onSaved runs
// after the settings have been written.
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) *SettingsDialog {
	sd := NewSettingsDialog(settings, localization, window, onSaved)
	sd.Show()
	return sd
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) deviceLabel(mode config.DeviceClassMode) string {
	switch mode {
	case config.DeviceClassCompact:
		return sd.localization.GetText(KeyDeviceCompact)
	case config.DeviceClassRegular:
		return sd.localization.GetText(KeyDeviceRegular)
	default:
		return sd.localization.GetText(KeyDeviceAuto)
	}
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	text := sd.localization.GetText

	sd.deviceLabels = make(map[string]config.DeviceClassMode)
	deviceOptions := []string{}
	for _, mode := range sd.settings.GetDeviceClassOptions() {
		label := sd.deviceLabel(mode)
		sd.deviceLabels[label] = mode
		deviceOptions = append(deviceOptions, label)
	}
	sd.deviceSelect = widget.NewSelect(deviceOptions, nil)

	sd.longPressEntry = widget.NewEntry()
	sd.longPressEntry.SetPlaceHolder(strconv.Itoa(config.MinLongPressMs) + "-" + strconv.Itoa(config.MaxLongPressMs))

	sd.cacheEntry = widget.NewEntry()
	sd.cacheEntry.SetPlaceHolder("0-" + strconv.Itoa(config.MaxCacheEntries))

	sd.maxParallelEntry = widget.NewEntry()
	sd.maxParallelEntry.SetPlaceHolder("1-" + strconv.Itoa(config.MaxParallel))

	languageOptions := []string{}
	for code := range sd.settings.GetLanguageOptions() {
		languageOptions = append(languageOptions, code)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	hint := widget.NewLabel(text(KeyRestartHint))
	hint.Importance = widget.LowImportance

	form := container.NewVBox(
		widget.NewLabel(text(KeyDeviceClass)+":"),
		sd.deviceSelect,

		widget.NewLabel(text(KeyLongPress)+":"),
		sd.longPressEntry,

		widget.NewSeparator(),

		widget.NewLabel(text(KeyCacheEntries)+":"),
		sd.cacheEntry,

		widget.NewLabel(text(KeyMaxParallel)+":"),
		sd.maxParallelEntry,
		hint,

		widget.NewSeparator(),

		widget.NewLabel(text(KeyLanguage)+":"),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		text(KeySettings),
		text(KeySave),
		text(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(420, 460))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.deviceSelect.SetSelected(sd.deviceLabel(sd.settings.GetDeviceClassMode()))
	sd.longPressEntry.SetText(strconv.Itoa(int(sd.settings.GetLongPressDelay() / time.Millisecond)))
	sd.cacheEntry.SetText(strconv.Itoa(sd.settings.GetThumbnailCacheEntries()))
	sd.maxParallelEntry.SetText(strconv.Itoa(sd.settings.GetMaxParallelFetches()))
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.save()
	if sd.onSaved != nil {
		sd.onSaved()
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}

// save writes every valid field back to the settings. Unparsable numbers
// leave the stored value alone.
func (sd *SettingsDialog) save() {
	if mode, ok := sd.deviceLabels[sd.deviceSelect.Selected]; ok {
		sd.settings.SetDeviceClassMode(mode)
	}

	if ms, err := strconv.Atoi(sd.longPressEntry.Text); err == nil {
		sd.settings.SetLongPressDelay(time.Duration(ms) * time.Millisecond)
	}
	if n, err := strconv.Atoi(sd.cacheEntry.Text); err == nil {
		sd.settings.SetThumbnailCacheEntries(n)
	}
	if n, err := strconv.Atoi(sd.maxParallelEntry.Text); err == nil {
		sd.settings.SetMaxParallelFetches(n)
	}

	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}
}
