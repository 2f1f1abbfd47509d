package config

import (
	"flag"
	"fmt"
	"math"
)

// Flags are the command-line overrides. Only flags given on the command line are
// applied, so an explicit zero (e.g. -frames 0) still wins over the file.
type Flags struct {
	Config     string
	Frames     uint64
	FPS        int
	Output     string
	Addr       string
	PNG        string
	Flash      string
	FlashOff   uint64
	Model      string
	Projection string
	Watch      bool
	Clip       bool
	Static     bool
	LogLevel   string
	LogFile    string
	Version    bool
	SaveConfig string

	fs *flag.FlagSet
}

// RegisterFlags defines the flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.Config, "config", "", "path to YAML config file")
	fs.Uint64Var(&f.Frames, "frames", 1000, "frames to draw (0 = until interrupted)")
	fs.IntVar(&f.FPS, "fps", 15, "frame rate limit (0 = unpaced)")
	fs.StringVar(&f.Output, "output", OutputReGIS, "comma list of outputs: regis, window, ws, png")
	fs.StringVar(&f.Addr, "addr", "127.0.0.1:8080", "listen address for the ws output")
	fs.StringVar(&f.PNG, "png", "frame.png", "file written by the png output")
	fs.StringVar(&f.Flash, "flash", "", "flash image holding models")
	fs.Uint64Var(&f.FlashOff, "flash-offset", 0, "byte offset of the model image in -flash")
	fs.StringVar(&f.Model, "model", "", "glTF file replacing the model of single-object demos")
	fs.StringVar(&f.Projection, "projection", "opengl", "projection formula: opengl or alt")
	fs.BoolVar(&f.Watch, "watch", false, "reload -model when the file changes")
	fs.BoolVar(&f.Clip, "clip", false, "drop points outside the viewport")
	fs.BoolVar(&f.Static, "static", false, "disable animation")
	fs.StringVar(&f.LogLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.StringVar(&f.LogFile, "log-file", "", "also log to this rotating file")
	fs.BoolVar(&f.Version, "version", false, "print version and exit")
	fs.StringVar(&f.SaveConfig, "save-config", "", "write the effective config to this path and exit")
	return f
}

// Load reads the -config file (or a standard location) and applies the flags on top.
func (f *Flags) Load() (*Config, error) {
	if f.FlashOff > math.MaxUint32 {
		return nil, fmt.Errorf("flash offset %d out of range", f.FlashOff)
	}
	cfg, err := Load(f.Config)
	if err != nil {
		return nil, err
	}
	f.Apply(cfg)
	return cfg, nil
}

// Apply copies the flags that were set onto cfg.
func (f *Flags) Apply(cfg *Config) {
	set := map[string]bool{}
	if f.fs != nil {
		f.fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	}

	if set["frames"] {
		cfg.Render.Frames = f.Frames
	}
	if set["fps"] {
		cfg.Render.FPS = f.FPS
	}
	if set["output"] {
		cfg.Display.Outputs = ParseOutputs(f.Output)
	}
	if set["addr"] {
		cfg.Display.Addr = f.Addr
	}
	if set["png"] {
		cfg.Display.PNG = f.PNG
	}
	if set["flash"] {
		cfg.Models.Flash = f.Flash
	}
	if set["flash-offset"] {
		cfg.Models.FlashOffset = uint32(f.FlashOff)
	}
	if set["model"] {
		cfg.Models.GLTF = f.Model
	}
	if set["projection"] {
		cfg.Viewport.Projection = f.Projection
	}
	if set["watch"] {
		cfg.Models.Watch = f.Watch
	}
	if set["clip"] {
		cfg.Render.Clip = f.Clip
	}
	if set["static"] {
		cfg.Render.Animate = !f.Static
	}
	if set["log-level"] {
		cfg.Logging.Level = f.LogLevel
	}
	if set["log-file"] {
		cfg.Logging.LogFile = f.LogFile
	}
}
