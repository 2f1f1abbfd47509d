// Package config holds the renderer settings: built-in defaults, overridden by a YAML
// file, overridden by command-line flags.
package config

import (
	"fmt"
	"strings"

	"regis3d/vgl"
)

// Output names accepted in Display.Outputs.
const (
	OutputReGIS  = "regis"
	OutputWindow = "window"
	OutputWS     = "ws"
	OutputPNG    = "png"
)

// Config holds all settings.
type Config struct {
	Demo     DemoConfig     `yaml:"demo"`
	Render   RenderConfig   `yaml:"render"`
	Viewport ViewportConfig `yaml:"viewport"`
	Display  DisplayConfig  `yaml:"display"`
	Models   ModelsConfig   `yaml:"models"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DemoConfig holds interactive settings.
type DemoConfig struct {
	KeyStepDegrees float32 `yaml:"key_step_degrees"` // rotation per arrow key press
}

// RenderConfig holds frame loop settings.
type RenderConfig struct {
	Frames  uint64 `yaml:"frames"` // 0 runs until interrupted
	FPS     int    `yaml:"fps"`    // 0 disables pacing
	Animate bool   `yaml:"animate"`
	Clip    bool   `yaml:"clip"`
}

// ViewportConfig holds the display surface and lens.
type ViewportConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	FOV        float32 `yaml:"fov"`
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
	Projection string  `yaml:"projection"` // gl or alt
}

// DisplayConfig selects where frames go.
type DisplayConfig struct {
	Outputs       []string `yaml:"outputs"`
	Addr          string   `yaml:"addr"`
	PNG           string   `yaml:"png"`
	Caption       string   `yaml:"caption"`
	ClearTerminal bool     `yaml:"clear_terminal"`
	Scale         int      `yaml:"scale"` // window scale factor
}

// ModelsConfig holds model sources.
type ModelsConfig struct {
	Flash       string `yaml:"flash"`        // flash image file; empty uses the HAL default
	FlashOffset uint32 `yaml:"flash_offset"` // byte offset of the model image in flash
	GLTF        string `yaml:"gltf"`
	Watch       bool   `yaml:"watch"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns the stock demo settings.
func Default() *Config {
	vp := vgl.DefaultViewport()
	return &Config{
		Demo: DemoConfig{
			KeyStepDegrees: 5,
		},
		Render: RenderConfig{
			Frames:  1000,
			FPS:     15,
			Animate: true,
		},
		Viewport: ViewportConfig{
			Width:      vp.Width,
			Height:     vp.Height,
			FOV:        vp.FOVDegrees,
			Near:       vp.Near,
			Far:        vp.Far,
			Projection: vp.Projection.String(),
		},
		Display: DisplayConfig{
			Outputs: []string{OutputReGIS},
			Addr:    "127.0.0.1:8080",
			PNG:     "frame.png",
			Scale:   1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// ViewportSettings converts the viewport section for the renderer.
func (c *Config) ViewportSettings() (vgl.ViewportConfig, error) {
	kind, err := vgl.ParseProjectionKind(c.Viewport.Projection)
	if err != nil {
		return vgl.ViewportConfig{}, err
	}
	return vgl.ViewportConfig{
		Width:      c.Viewport.Width,
		Height:     c.Viewport.Height,
		FOVDegrees: c.Viewport.FOV,
		Near:       c.Viewport.Near,
		Far:        c.Viewport.Far,
		Projection: kind,
	}, nil
}

// HasOutput reports whether name is among the selected outputs.
func (c *Config) HasOutput(name string) bool {
	for _, o := range c.Display.Outputs {
		if o == name {
			return true
		}
	}
	return false
}

// Validate checks values that would otherwise fail deep inside the frame loop.
func (c *Config) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport %dx%d: size must be positive", c.Viewport.Width, c.Viewport.Height)
	}
	if _, err := vgl.ParseProjectionKind(c.Viewport.Projection); err != nil {
		return err
	}
	if len(c.Display.Outputs) == 0 {
		return fmt.Errorf("no display outputs")
	}
	for _, o := range c.Display.Outputs {
		switch o {
		case OutputReGIS, OutputWindow, OutputWS, OutputPNG:
		default:
			return fmt.Errorf("unknown output %q", o)
		}
	}
	return nil
}

// ParseOutputs splits a comma list such as "regis,ws".
func ParseOutputs(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
