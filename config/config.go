// Package config loads the program settings from YAML. Every field is
// optional; anything left out keeps its value from Default.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/phanxgames/showcase"
	"github.com/phanxgames/showcase/cards"
	"github.com/phanxgames/showcase/collage"
	"github.com/phanxgames/showcase/flame"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Window describes the game window and the design resolution.
type Window struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"` // "#rrggbb"
	Resizable  bool   `yaml:"resizable"`
}

// Config is the full settings tree.
type Config struct {
	Window  Window         `yaml:"window"`
	Cards   cards.Config   `yaml:"cards"`
	Collage collage.Config `yaml:"collage"`
	Flame   flame.Config   `yaml:"flame"`
}

// Default returns the settings the program runs with when no file is given.
func Default() *Config {
	return &Config{
		Window: Window{
			Title:      "Showcase",
			Width:      800,
			Height:     600,
			Background: "#d3d3d3",
			Resizable:  true,
		},
		Cards:   cards.DefaultConfig(),
		Collage: collage.DefaultConfig(),
		Flame:   flame.DefaultConfig(),
	}
}

// Load reads and parses the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data over Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the window settings and every scene section.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if _, err := ParseColor(c.Window.Background); err != nil {
		return fmt.Errorf("%w: window background: %v", ErrInvalid, err)
	}
	for _, err := range []error{c.Cards.Validate(), c.Collage.Validate(), c.Flame.Validate()} {
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	return nil
}

// BackgroundColor returns the parsed window background.
func (c *Config) BackgroundColor() showcase.Color {
	col, err := ParseColor(c.Window.Background)
	if err != nil {
		return showcase.ColorBlack
	}
	return col
}

// ParseColor accepts "#rrggbb", "rrggbb" or "0xrrggbb".
func ParseColor(s string) (showcase.Color, error) {
	h := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "#"), "0x")
	if len(h) != 6 {
		return showcase.Color{}, fmt.Errorf("bad color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return showcase.Color{}, fmt.Errorf("bad color %q", s)
	}
	return showcase.ColorHex(uint32(v)), nil
}
