package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle      = "app_title"
	KeyAdd           = "add"
	KeyScan          = "scan"
	KeyEdit          = "edit"
	KeyShare         = "share"
	KeySettings      = "settings"
	KeyFile          = "file"
	KeyLanguage      = "language"
	KeyDeviceClass   = "device_class"
	KeyDeviceAuto    = "device_auto"
	KeyDeviceCompact = "device_compact"
	KeyDeviceRegular = "device_regular"
	KeyLongPress     = "long_press"
	KeyCacheEntries  = "cache_entries"
	KeyMaxParallel   = "max_parallel"
	KeySave          = "save"
	KeyCancel        = "cancel"
	KeyDone          = "done"
	KeyBack          = "back"
	KeySettingsSaved = "settings_saved"
	KeyRestartHint   = "restart_hint"
	KeyEmptyGrid     = "empty_grid"
	KeyNoToken       = "no_token"
	KeyLocked        = "locked"
	KeyFormPending   = "form_pending"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. Unknown languages are ignored.
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:      "OTP Grid",
		KeyAdd:           "Add Token",
		KeyScan:          "Scan QR Code",
		KeyEdit:          "Edit",
		KeyShare:         "Share",
		KeySettings:      "Settings",
		KeyFile:          "File",
		KeyLanguage:      "Language",
		KeyDeviceClass:   "Layout Style",
		KeyDeviceAuto:    "Automatic",
		KeyDeviceCompact: "Phone",
		KeyDeviceRegular: "Tablet",
		KeyLongPress:     "Long Press Delay (ms)",
		KeyCacheEntries:  "Thumbnail Cache Size",
		KeyMaxParallel:   "Max Parallel Image Fetches",
		KeySave:          "Save",
		KeyCancel:        "Cancel",
		KeyDone:          "Done",
		KeyBack:          "Back",
		KeySettingsSaved: "Settings saved successfully!",
		KeyRestartHint:   "Image settings apply after restart",
		KeyEmptyGrid:     "No tokens yet",
		KeyNoToken:       "No token selected",
		KeyLocked:        "Locked",
		KeyFormPending:   "This screen is not available in this build",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:      "OTP Сетка",
		KeyAdd:           "Добавить токен",
		KeyScan:          "Сканировать QR-код",
		KeyEdit:          "Изменить",
		KeyShare:         "Поделиться",
		KeySettings:      "Настройки",
		KeyFile:          "Файл",
		KeyLanguage:      "Язык",
		KeyDeviceClass:   "Стиль макета",
		KeyDeviceAuto:    "Автоматически",
		KeyDeviceCompact: "Телефон",
		KeyDeviceRegular: "Планшет",
		KeyLongPress:     "Задержка долгого нажатия (мс)",
		KeyCacheEntries:  "Размер кэша миниатюр",
		KeyMaxParallel:   "Макс. параллельных загрузок изображений",
		KeySave:          "Сохранить",
		KeyCancel:        "Отмена",
		KeyDone:          "Готово",
		KeyBack:          "Назад",
		KeySettingsSaved: "Настройки успешно сохранены!",
		KeyRestartHint:   "Настройки изображений применятся после перезапуска",
		KeyEmptyGrid:     "Токенов пока нет",
		KeyNoToken:       "Токен не выбран",
		KeyLocked:        "Заблокирован",
		KeyFormPending:   "Этот экран недоступен в этой сборке",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:      "Grade OTP",
		KeyAdd:           "Adicionar token",
		KeyScan:          "Escanear código QR",
		KeyEdit:          "Editar",
		KeyShare:         "Compartilhar",
		KeySettings:      "Configurações",
		KeyFile:          "Arquivo",
		KeyLanguage:      "Idioma",
		KeyDeviceClass:   "Estilo de layout",
		KeyDeviceAuto:    "Automático",
		KeyDeviceCompact: "Telefone",
		KeyDeviceRegular: "Tablet",
		KeyLongPress:     "Atraso do toque longo (ms)",
		KeyCacheEntries:  "Tamanho do cache de miniaturas",
		KeyMaxParallel:   "Máx. downloads de imagem paralelos",
		KeySave:          "Salvar",
		KeyCancel:        "Cancelar",
		KeyDone:          "Concluído",
		KeyBack:          "Voltar",
		KeySettingsSaved: "Configurações salvas com sucesso!",
		KeyRestartHint:   "As configurações de imagem valem após reiniciar",
		KeyEmptyGrid:     "Nenhum token ainda",
		KeyNoToken:       "Nenhum token selecionado",
		KeyLocked:        "Bloqueado",
		KeyFormPending:   "Esta tela não está disponível nesta versão",
	}
}
