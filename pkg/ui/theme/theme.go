// Package theme defines the visual context injected into widget renders.
// Widgets never read ambient global state for theming; the host passes a
// Context into every render pass.
package theme

import (
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"
)

// Tokens is the color vocabulary widgets reference by name. Values are
// CSS color strings the render target understands.
type Tokens struct {
	Background    string `yaml:"background"`
	Surface       string `yaml:"surface"`
	SurfaceRaised string `yaml:"surfaceRaised"`

	TextPrimary   string `yaml:"textPrimary"`
	TextSecondary string `yaml:"textSecondary"`
	TextMuted     string `yaml:"textMuted"`
	TextInverse   string `yaml:"textInverse"`

	Accent    string `yaml:"accent"`
	AccentDim string `yaml:"accentDim"`

	Success string `yaml:"success"`
	Warning string `yaml:"warning"`
	Error   string `yaml:"error"`
	Info    string `yaml:"info"`

	Border      string `yaml:"border"`
	BorderFocus string `yaml:"borderFocus"`
	Selection   string `yaml:"selection"`
	Disabled    string `yaml:"disabled"`
}

// Context is the theme information available during a render pass.
type Context struct {
	Dark   bool
	Tokens Tokens
}

// Dark is the built-in default theme.
func Dark() Context {
	return Context{
		Dark: true,
		Tokens: Tokens{
			Background:    "#0d0f14",
			Surface:       "#161a22",
			SurfaceRaised: "#1e242f",
			TextPrimary:   "#e8eaf0",
			TextSecondary: "#aab2c0",
			TextMuted:     "#6b7484",
			TextInverse:   "#0d0f14",
			Accent:        "#8b7ff0",
			AccentDim:     "#554fa0",
			Success:       "#4ade80",
			Warning:       "#fbbf24",
			Error:         "#f87171",
			Info:          "#38bdf8",
			Border:        "#2a3140",
			BorderFocus:   "#8b7ff0",
			Selection:     "#2d3450",
			Disabled:      "#3a4150",
		},
	}
}

// Light is the built-in light theme.
func Light() Context {
	return Context{
		Dark: false,
		Tokens: Tokens{
			Background:    "#fafafa",
			Surface:       "#ffffff",
			SurfaceRaised: "#f1f3f7",
			TextPrimary:   "#1a1d24",
			TextSecondary: "#4a5160",
			TextMuted:     "#8a92a4",
			TextInverse:   "#ffffff",
			Accent:        "#5b4fd8",
			AccentDim:     "#9a92e8",
			Success:       "#16a34a",
			Warning:       "#d97706",
			Error:         "#dc2626",
			Info:          "#0284c7",
			Border:        "#d8dce4",
			BorderFocus:   "#5b4fd8",
			Selection:     "#e4e1fb",
			Disabled:      "#c4c9d4",
		},
	}
}

// definition is the YAML theme file shape.
type definition struct {
	Dark   bool   `yaml:"dark"`
	Tokens Tokens `yaml:"tokens"`
}

// Load reads a YAML theme definition. Unset tokens inherit from the
// built-in theme matching the definition's dark flag; a definition that
// cannot be parsed falls back to Dark with a warning.
func Load(r io.Reader, logger *slog.Logger) Context {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		logger.Warn("theme fallback", "err", err)
		return Dark()
	}
	var def definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		logger.Warn("theme fallback", "err", fmt.Errorf("parse theme: %w", err))
		return Dark()
	}
	base := Dark()
	if !def.Dark {
		base = Light()
	}
	merged := base.Tokens
	overlay(&merged, def.Tokens)
	return Context{Dark: def.Dark, Tokens: merged}
}

// overlay copies every non-empty token from src onto dst.
func overlay(dst *Tokens, src Tokens) {
	fields := []struct {
		dst *string
		src string
	}{
		{&dst.Background, src.Background},
		{&dst.Surface, src.Surface},
		{&dst.SurfaceRaised, src.SurfaceRaised},
		{&dst.TextPrimary, src.TextPrimary},
		{&dst.TextSecondary, src.TextSecondary},
		{&dst.TextMuted, src.TextMuted},
		{&dst.TextInverse, src.TextInverse},
		{&dst.Accent, src.Accent},
		{&dst.AccentDim, src.AccentDim},
		{&dst.Success, src.Success},
		{&dst.Warning, src.Warning},
		{&dst.Error, src.Error},
		{&dst.Info, src.Info},
		{&dst.Border, src.Border},
		{&dst.BorderFocus, src.BorderFocus},
		{&dst.Selection, src.Selection},
		{&dst.Disabled, src.Disabled},
	}
	for _, f := range fields {
		if f.src != "" {
			*f.dst = f.src
		}
	}
}
