// Package app wires configuration, models, sinks and the frame driver into a running
// demo.
package app

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"regis3d/demo"
	"regis3d/display"
	"regis3d/hal"
	"regis3d/internal/config"
	"regis3d/models"
	"regis3d/vgl"
)

// App is one configured demo.
type App struct {
	HAL    hal.HAL
	Config *config.Config
	Driver *demo.Driver

	log *zap.Logger
	fc  demo.FrameContext

	// extraSink builds outputs that only exist on some platforms. It returns nil, nil
	// for names it does not handle.
	extraSink func(name string) (display.Sink, error)
}

// New builds the demo id from cfg on h. Sinks are not opened until the first frame.
func New(h hal.HAL, cfg *config.Config, id demo.ID, log *zap.Logger) (*App, error) {
	return newApp(h, cfg, id, log, nil)
}

func newApp(h hal.HAL, cfg *config.Config, id demo.ID, log *zap.Logger, extra func(string) (display.Sink, error)) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	vp, err := cfg.ViewportSettings()
	if err != nil {
		return nil, err
	}

	a := &App{HAL: h, Config: cfg, log: log, extraSink: extra}
	sink, err := a.sinks()
	if err != nil {
		return nil, err
	}

	r := vgl.NewRenderer(vp, display.NewFrame(sink, vp.Width, vp.Height))
	if cfg.Render.Clip {
		r.Clip = vgl.ClipViewport
	}

	d := demo.NewDriver(demo.SceneFor(id), a.catalog(), r, log)
	if cfg.Render.FPS > 0 {
		d.Pacer = demo.NewPacer(cfg.Render.FPS)
	}
	a.Driver = d
	a.fc = d.Start(cfg.Render.Animate)

	log.Info("demo ready",
		zap.Stringer("demo", id),
		zap.Strings("outputs", cfg.Display.Outputs),
		zap.Stringer("projection", vp.Projection),
		zap.Bool("clip", cfg.Render.Clip))
	return a, nil
}

// sinks builds the configured outputs. Several outputs are fanned out with Multi.
func (a *App) sinks() (display.Sink, error) {
	var out display.Multi
	for _, name := range a.Config.Display.Outputs {
		s, err := a.sink(name)
		if err != nil {
			return nil, fmt.Errorf("output %s: %w", name, err)
		}
		out = append(out, s)
	}
	if len(out) == 1 {
		return out[0], nil
	}
	return out, nil
}

func (a *App) sink(name string) (display.Sink, error) {
	cfg := a.Config.Display
	switch name {
	case config.OutputReGIS:
		ser := a.HAL.Serial()
		if ser == nil {
			return nil, display.ErrSinkUnavailable
		}
		return display.NewReGIS(ser, display.ReGISOptions{ClearTerminal: cfg.ClearTerminal}), nil
	case config.OutputWindow:
		fb := a.HAL.Display().Framebuffer()
		if fb == nil {
			return nil, display.ErrSinkUnavailable
		}
		r := display.NewRaster(display.NewFramebufferDisplayer(fb))
		r.Caption = cfg.Caption
		return r, nil
	case config.OutputPNG:
		img := display.NewImageDisplayer(a.Config.Viewport.Width, a.Config.Viewport.Height)
		img.OnDisplay = display.PNGWriter(cfg.PNG)
		r := display.NewRaster(img)
		r.Caption = cfg.Caption
		return r, nil
	}
	if a.extraSink != nil {
		s, err := a.extraSink(name)
		if s != nil || err != nil {
			return s, err
		}
	}
	return nil, hal.ErrNotImplemented
}

// catalog prefers models stored in flash and falls back to the built-in shapes.
func (a *App) catalog() models.Catalog {
	builtin := models.NewMemoryCatalog(models.Builtin()...)
	fl := a.HAL.Flash()
	if fl == nil {
		return builtin
	}
	img, err := models.OpenImage(fl, a.Config.Models.FlashOffset)
	if err != nil {
		if errors.Is(err, models.ErrBadImage) {
			a.log.Debug("no model image in flash", zap.Error(err))
		} else {
			a.log.Warn("flash model image unreadable", zap.Error(err))
		}
		return builtin
	}
	a.log.Info("models from flash", zap.Strings("names", img.Names()))
	return models.Fallback{Primary: img, Secondary: builtin}
}

// Frame returns the context of the next frame.
func (a *App) Frame() demo.FrameContext { return a.fc }

// Step draws one frame after applying any pending key presses. It returns hal.ErrDone
// once the frame budget is spent or Escape was pressed.
func (a *App) Step() error {
	if frames := a.Config.Render.Frames; frames != 0 && a.fc.Frame >= frames {
		return hal.ErrDone
	}
	if a.handleKeys() {
		return hal.ErrDone
	}
	fc, err := a.Driver.Step(a.fc)
	a.fc = fc
	return err
}

// handleKeys drains the keyboard. It reports whether the user asked to quit.
func (a *App) handleKeys() bool {
	in := a.HAL.Input()
	if in == nil {
		return false
	}
	kbd := in.Keyboard()
	if kbd == nil {
		return false
	}
	ch := kbd.Events()
	if ch == nil {
		return false
	}
	step := vgl.Deg(a.Config.Demo.KeyStepDegrees)
	for {
		select {
		case ev := <-ch:
			if !ev.Press {
				continue
			}
			switch ev.Code {
			case hal.KeyUp:
				a.fc = a.fc.Rotate(-step, 0)
			case hal.KeyDown:
				a.fc = a.fc.Rotate(step, 0)
			case hal.KeyLeft:
				a.fc = a.fc.Rotate(0, -step)
			case hal.KeyRight:
				a.fc = a.fc.Rotate(0, step)
			case hal.KeySpace:
				a.fc.Animate = !a.fc.Animate
			case hal.KeyEscape:
				return true
			}
		default:
			return false
		}
	}
}
