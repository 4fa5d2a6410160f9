package crt

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Settings holds ambient startup configuration. The visual effect
// itself (scanline, vignette, flicker, bloom constants) is not
// configurable; these settings cover the window shell, the demo page
// content, and the hum.
type Settings struct {
	Window WindowSettings `yaml:"window"`
	Page   PageSettings   `yaml:"page"`
	Hum    HumSettings    `yaml:"hum"`
}

// WindowSettings holds display shell settings.
type WindowSettings struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

// PageSettings holds demo backdrop-page settings.
type PageSettings struct {
	Seed  uint64 `yaml:"seed"`
	Lines int    `yaml:"lines"`
}

// HumSettings holds monitor-hum settings.
type HumSettings struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// LoadSettings reads settings from path, or from the embedded
// defaults when path is empty.
func LoadSettings(path string) (*Settings, error) {
	data := defaultsYAML
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read settings: %w", err)
		}
		data = b
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) validate() error {
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("settings: window size %dx%d must be positive", s.Window.Width, s.Window.Height)
	}
	if s.Window.Title == "" {
		s.Window.Title = WindowTitle
	}
	if s.Page.Lines <= 0 {
		return fmt.Errorf("settings: page lines %d must be positive", s.Page.Lines)
	}
	if s.Hum.Volume < 0 || s.Hum.Volume > 1 {
		return fmt.Errorf("settings: hum volume %v outside [0,1]", s.Hum.Volume)
	}
	return nil
}
