package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gdamore/tcell/v3"
	"gopkg.in/yaml.v3"

	"github.com/ayn2op/scrollview"
)

// Config represents the optional demo configuration file.
type Config struct {
	Items       int             `yaml:"items,omitempty"`
	Gap         int             `yaml:"gap,omitempty"`
	Border      string          `yaml:"border,omitempty"`
	BorderColor string          `yaml:"borderColor,omitempty"`
	ScrollBar   ScrollBarConfig `yaml:"scrollBar"`
	Log         LogConfig       `yaml:"log"`
}

// ScrollBarConfig controls the scroll bar of the list. Colors are W3C names
// or #rrggbb values.
type ScrollBarConfig struct {
	Disabled   bool   `yaml:"disabled,omitempty"`
	AutoHide   *bool  `yaml:"autoHide,omitempty"`
	Glyphs     string `yaml:"glyphs,omitempty"`
	TrackColor string `yaml:"trackColor,omitempty"`
	ThumbColor string `yaml:"thumbColor,omitempty"`
}

// LogConfig controls the diagnostics log. Nothing is logged without a file,
// since the terminal is owned by the UI.
type LogConfig struct {
	File  string `yaml:"file,omitempty"`
	Level string `yaml:"level,omitempty"`
}

const defaultItems = 200

// LoadOptional reads the configuration file at path if present. An empty path
// or a missing file yields the defaults.
func LoadOptional(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		}
	}

	if cfg.Items <= 0 {
		cfg.Items = defaultItems
	}
	cfg.Gap = max(cfg.Gap, 0)
	if _, err := cfg.borderSet(); err != nil {
		return nil, err
	}
	if _, err := cfg.glyphSet(); err != nil {
		return nil, err
	}
	if _, err := cfg.borderStyle(); err != nil {
		return nil, err
	}
	if _, _, err := cfg.scrollBarStyles(); err != nil {
		return nil, err
	}
	if _, err := cfg.logLevel(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) borderSet() (*scrollview.BorderSet, error) {
	var set scrollview.BorderSet
	switch strings.ToLower(strings.TrimSpace(c.Border)) {
	case "", "round":
		set = scrollview.BorderSetRound()
	case "plain":
		set = scrollview.BorderSetPlain()
	case "thick":
		set = scrollview.BorderSetThick()
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown border %q", c.Border)
	}
	return &set, nil
}

func (c *Config) borderStyle() (tcell.Style, error) {
	fg, err := parseColor(c.BorderColor, scrollview.Styles.BorderColor)
	if err != nil {
		return tcell.StyleDefault, fmt.Errorf("border color: %w", err)
	}
	return tcell.StyleDefault.Foreground(fg), nil
}

func (c *Config) scrollBarStyles() (track, thumb tcell.Style, err error) {
	trackColor, err := parseColor(c.ScrollBar.TrackColor, scrollview.Styles.ScrollBarTrackColor)
	if err != nil {
		return track, thumb, fmt.Errorf("scroll bar track color: %w", err)
	}
	thumbColor, err := parseColor(c.ScrollBar.ThumbColor, scrollview.Styles.ScrollBarThumbColor)
	if err != nil {
		return track, thumb, fmt.Errorf("scroll bar thumb color: %w", err)
	}
	track = tcell.StyleDefault.Foreground(trackColor).Dim(true)
	thumb = tcell.StyleDefault.Foreground(thumbColor)
	return track, thumb, nil
}

// parseColor resolves a color name, or returns fallback for an empty one.
func parseColor(name string, fallback tcell.Color) (tcell.Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return fallback, nil
	}
	if c := tcell.GetColor(name); c != tcell.ColorDefault {
		return c, nil
	}
	return tcell.ColorDefault, fmt.Errorf("unknown color %q", name)
}

func (c *Config) glyphSet() (scrollview.GlyphSet, error) {
	switch strings.ToLower(strings.TrimSpace(c.ScrollBar.Glyphs)) {
	case "", "unicode":
		return scrollview.UnicodeGlyphSet(), nil
	case "legacy":
		return scrollview.LegacyComputingGlyphSet(), nil
	default:
		return scrollview.GlyphSet{}, fmt.Errorf("unknown scroll bar glyphs %q", c.ScrollBar.Glyphs)
	}
}

func (c *Config) logLevel() (slog.Level, error) {
	var level slog.Level
	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return level, nil
}

// scrollBar returns the configured scroll bar or nil if it is disabled.
func (c *Config) scrollBar() *scrollview.ScrollBar {
	if c.ScrollBar.Disabled {
		return nil
	}
	glyphs, _ := c.glyphSet()
	track, thumb, _ := c.scrollBarStyles()
	bar := scrollview.NewScrollBar().
		SetGlyphSet(glyphs).
		SetStyles(track, thumb)
	if c.ScrollBar.AutoHide != nil {
		bar.SetAutoHide(*c.ScrollBar.AutoHide)
	}
	return bar
}
