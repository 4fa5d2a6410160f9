package crt

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings("")
	if err != nil {
		t.Fatalf("embedded defaults failed to load: %v", err)
	}
	if s.Window.Width != 1024 || s.Window.Height != 768 {
		t.Errorf("default window = %dx%d, want 1024x768", s.Window.Width, s.Window.Height)
	}
	if !s.Window.VSync {
		t.Error("vsync should default on")
	}
	if s.Page.Lines <= 0 {
		t.Errorf("default page lines = %d, want positive", s.Page.Lines)
	}
}

func TestLoadSettingsValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero window", "window: {width: 0, height: 600}\npage: {lines: 10}\n"},
		{"bad hum volume", "window: {width: 800, height: 600}\npage: {lines: 10}\nhum: {volume: 2.0}\n"},
		{"no page lines", "window: {width: 800, height: 600}\n"},
		{"not yaml", ":::"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadSettings(path); err == nil {
				t.Error("expected an error, got nil")
			}
		})
	}
}

func TestLoadSettingsMissingFile(t *testing.T) {
	if _, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
