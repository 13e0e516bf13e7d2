package theme

import (
	"fmt"
	"log"
)

// SettingKey is the settings row holding the persisted mode.
const SettingKey = "theme"

// Settings is the slice of the settings store the theme needs.
type Settings interface {
	GetSetting(key string) (string, bool, error)
	SetSetting(key, value string) error
}

// Load returns the persisted mode. When nothing is stored yet the mode
// defaults to dark and is written back. An unreadable stored value is
// treated as dark without overwriting it.
func Load(store Settings) (Mode, error) {
	raw, ok, err := store.GetSetting(SettingKey)
	if err != nil {
		return "", fmt.Errorf("loading theme: %w", err)
	}
	if !ok {
		if err := store.SetSetting(SettingKey, string(Dark)); err != nil {
			return "", fmt.Errorf("saving default theme: %w", err)
		}
		return Dark, nil
	}

	m, err := ParseMode(raw)
	if err != nil {
		log.Printf("theme: ignoring stored value %q: %v", raw, err)
		return Dark, nil
	}
	return m, nil
}

// Save persists m.
func Save(store Settings, m Mode) error {
	if err := store.SetSetting(SettingKey, string(m)); err != nil {
		return fmt.Errorf("saving theme %s: %w", m, err)
	}
	return nil
}
