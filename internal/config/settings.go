package config

import (
	"time"

	"fyne.io/fyne/v2"
)

// DeviceClassMode overrides automatic device class detection
type DeviceClassMode string

const (
	DeviceClassAuto    DeviceClassMode = "auto"
	DeviceClassCompact DeviceClassMode = "compact"
	DeviceClassRegular DeviceClassMode = "regular"
)

// Settings keys for Fyne preferences
const (
	KeyDeviceClass  = "device_class"
	KeyLongPress    = "long_press_ms"
	KeyCacheEntries = "thumbnail_cache_entries"
	KeyMaxParallel  = "max_parallel_fetches"
	KeyLanguage     = "app_language"
)

// Default values
const (
	DefaultDeviceClass  = DeviceClassAuto
	DefaultLongPressMs  = 500
	DefaultCacheEntries = 128
	DefaultMaxParallel  = 4
	DefaultLanguage     = "system"
)

// Limits
const (
	MinLongPressMs  = 100
	MaxLongPressMs  = 2000
	MaxCacheEntries = 4096
	MaxParallel     = 16
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDeviceClassMode returns the configured device class override
func (s *Settings) GetDeviceClassMode() DeviceClassMode {
	mode := DeviceClassMode(s.app.Preferences().String(KeyDeviceClass))
	switch mode {
	case DeviceClassAuto, DeviceClassCompact, DeviceClassRegular:
		return mode
	default:
		s.SetDeviceClassMode(DefaultDeviceClass)
		return DefaultDeviceClass
	}
}

// SetDeviceClassMode sets the device class override. Unknown modes reset to auto.
func (s *Settings) SetDeviceClassMode(mode DeviceClassMode) {
	switch mode {
	case DeviceClassAuto, DeviceClassCompact, DeviceClassRegular:
	default:
		mode = DefaultDeviceClass
	}
	s.app.Preferences().SetString(KeyDeviceClass, string(mode))
}

// GetDeviceClassOptions returns available device class modes
func (s *Settings) GetDeviceClassOptions() []DeviceClassMode {
	return []DeviceClassMode{DeviceClassAuto, DeviceClassCompact, DeviceClassRegular}
}

// GetLongPressDelay returns how long a press must be held to start a drag
func (s *Settings) GetLongPressDelay() time.Duration {
	value := s.app.Preferences().Int(KeyLongPress)
	if value <= 0 {
		s.SetLongPressDelay(DefaultLongPressMs * time.Millisecond)
		return DefaultLongPressMs * time.Millisecond
	}
	return time.Duration(value) * time.Millisecond
}

// SetLongPressDelay sets the long-press delay
func (s *Settings) SetLongPressDelay(d time.Duration) {
	ms := int(d / time.Millisecond)
	if ms < MinLongPressMs {
		ms = MinLongPressMs
	}
	if ms > MaxLongPressMs {
		ms = MaxLongPressMs
	}
	s.app.Preferences().SetInt(KeyLongPress, ms)
}

// GetThumbnailCacheEntries returns the thumbnail memory cache size. Zero disables the cache.
func (s *Settings) GetThumbnailCacheEntries() int {
	value := s.app.Preferences().IntWithFallback(KeyCacheEntries, -1)
	if value < 0 {
		s.SetThumbnailCacheEntries(DefaultCacheEntries)
		return DefaultCacheEntries
	}
	return value
}

// SetThumbnailCacheEntries sets the thumbnail memory cache size
func (s *Settings) SetThumbnailCacheEntries(count int) {
	if count < 0 {
		count = 0
	}
	if count > MaxCacheEntries {
		count = MaxCacheEntries
	}
	s.app.Preferences().SetInt(KeyCacheEntries, count)
}

// GetMaxParallelFetches returns the maximum number of parallel image fetches
func (s *Settings) GetMaxParallelFetches() int {
	value := s.app.Preferences().Int(KeyMaxParallel)
	if value <= 0 {
		s.SetMaxParallelFetches(DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return value
}

// SetMaxParallelFetches sets the maximum number of parallel image fetches
func (s *Settings) SetMaxParallelFetches(count int) {
	if count < 1 {
		count = 1
	}
	if count > MaxParallel {
		count = MaxParallel
	}
	s.app.Preferences().SetInt(KeyMaxParallel, count)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
