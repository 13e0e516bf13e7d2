package theme

import (
	"errors"
	"testing"

	"github.com/Mr-Dark-debug/galaxy/internal/database"
	"github.com/Mr-Dark-debug/galaxy/internal/galaxy"
)

// Signal must satisfy the animator's read-only theme contract.
var _ galaxy.ThemeSource = (*Signal)(nil)

func TestParseMode(t *testing.T) {
	if m, err := ParseMode(" Light "); err != nil || m != Light {
		t.Errorf("ParseMode(Light) = %q, %v", m, err)
	}
	if _, err := ParseMode("sepia"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("expected ErrUnknownMode, got %v", err)
	}
}

func TestSignalNotifiesOnChangeOnly(t *testing.T) {
	s := NewSignal(Dark)

	var got []bool
	obs := s.Observe(func(dark bool) { got = append(got, dark) })

	s.Set(true) // unchanged
	s.Set(false)
	if dark := s.Toggle(); !dark {
		t.Error("expected Toggle to return dark=true")
	}

	if len(got) != 2 || got[0] != false || got[1] != true {
		t.Errorf("expected notifications [false true], got %v", got)
	}

	obs.Disconnect()
	obs.Disconnect()
	if s.Observers() != 0 {
		t.Errorf("expected no observers after disconnect, got %d", s.Observers())
	}

	s.Set(false)
	if len(got) != 2 {
		t.Errorf("expected no notification after disconnect, got %v", got)
	}
	if s.Mode() != Light {
		t.Errorf("expected light mode, got %s", s.Mode())
	}
}

type mapSettings map[string]string

func (m mapSettings) GetSetting(key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m mapSettings) SetSetting(key, value string) error {
	m[key] = value
	return nil
}

// TestLoadDefaultsToDark mirrors the first-visit behaviour: no stored
// value means dark, and the default is written back.
func TestLoadDefaultsToDark(t *testing.T) {
	store := mapSettings{}

	m, err := Load(store)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m != Dark {
		t.Errorf("expected dark default, got %s", m)
	}
	if store[SettingKey] != "dark" {
		t.Errorf("expected default to be persisted, got %q", store[SettingKey])
	}

	store[SettingKey] = "garbage"
	if m, err := Load(store); err != nil || m != Dark {
		t.Errorf("expected dark for unreadable value, got %s, %v", m, err)
	}
	if store[SettingKey] != "garbage" {
		t.Error("expected an unreadable value to be left untouched")
	}
}

func TestSaveAndLoadWithSQLite(t *testing.T) {
	svc, err := database.NewDBService(":memory:")
	if err != nil {
		t.Fatalf("NewDBService failed: %v", err)
	}
	defer svc.Close()

	if err := Save(svc, Light); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	m, err := Load(svc)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m != Light {
		t.Errorf("expected light after save, got %s", m)
	}
}
