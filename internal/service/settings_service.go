package service

import (
	"fmt"
	"strconv"

	"sitebuilder/internal/render"
	"sitebuilder/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Settings: window size and canvas view mode between sessions
// ─────────────────────────────────────────────────────────────

// WindowSize holds the saved window dimensions.
type WindowSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// SettingsService persists editor preferences in app_settings.
type SettingsService struct {
	store           *storage.SettingsStore
	defaultViewMode render.ViewMode
}

// NewSettingsService creates a SettingsService. defaultViewMode is used
// until the user picks one.
func NewSettingsService(store *storage.SettingsStore, defaultViewMode string) *SettingsService {
	return &SettingsService{store: store, defaultViewMode: render.ParseViewMode(defaultViewMode)}
}

const (
	settingWindowWidth  = "window_width"
	settingWindowHeight = "window_height"
	settingViewMode     = "view_mode"
	defaultWindowWidth  = 1280
	defaultWindowHeight = 800
)

// LoadWindowSize returns the saved window dimensions, or sensible defaults.
func (s *SettingsService) LoadWindowSize() WindowSize {
	size := WindowSize{Width: defaultWindowWidth, Height: defaultWindowHeight}
	if s.store == nil {
		return size
	}
	if w := s.intSetting(settingWindowWidth); w >= 800 {
		size.Width = w
	}
	if h := s.intSetting(settingWindowHeight); h >= 600 {
		size.Height = h
	}
	return size
}

// SaveWindowSize persists the current window dimensions.
func (s *SettingsService) SaveWindowSize(width, height int) error {
	if s.store == nil {
		return fmt.Errorf("window settings: no store")
	}
	if err := s.store.Set(settingWindowWidth, strconv.Itoa(width)); err != nil {
		return err
	}
	return s.store.Set(settingWindowHeight, strconv.Itoa(height))
}

// ViewMode returns the last canvas view mode.
func (s *SettingsService) ViewMode() render.ViewMode {
	if s.store == nil {
		return s.defaultViewMode
	}
	v, err := s.store.Get(settingViewMode)
	if err != nil || v == "" {
		return s.defaultViewMode
	}
	return render.ParseViewMode(v)
}

// SetViewMode stores mode after normalising it; unknown modes become desktop.
func (s *SettingsService) SetViewMode(mode string) (render.ViewMode, error) {
	vm := render.ParseViewMode(mode)
	if s.store == nil {
		return vm, nil
	}
	return vm, s.store.Set(settingViewMode, string(vm))
}

func (s *SettingsService) intSetting(key string) int {
	v, err := s.store.Get(key)
	if err != nil {
		return 0
	}
	n, _ := strconv.Atoi(v)
	return n
}
