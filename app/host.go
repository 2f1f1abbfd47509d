//go:build !tinygo

package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"regis3d/demo"
	"regis3d/display"
	"regis3d/hal"
	"regis3d/internal/config"
	"regis3d/models"
)

// Host adds the desktop-only pieces to App: the websocket viewer, glTF models and the
// preview window.
type Host struct {
	*App

	// Title is the preview window title.
	Title string

	hub *display.Hub
}

// NewHost builds demo id on a host HAL. The glTF model named in cfg, if any, is loaded
// now; watching it starts with Run.
func NewHost(h hal.HAL, cfg *config.Config, id demo.ID, log *zap.Logger) (*Host, error) {
	host := &Host{}
	if cfg.HasOutput(config.OutputWS) {
		host.hub = display.NewHub(log)
	}
	a, err := newApp(h, cfg, id, log, host.sink)
	if err != nil {
		return nil, err
	}
	host.App = a

	if path := cfg.Models.GLTF; path != "" {
		m, err := models.LoadGLTF(path, "")
		if err != nil {
			return nil, err
		}
		a.log.Info("model loaded", zap.String("path", path), zap.Int("vertices", len(m.Vertices)))
		a.Driver.Override(m)
	}
	return host, nil
}

// sink is called while the App is still being built; it must not touch h.App.
func (h *Host) sink(name string) (display.Sink, error) {
	if name != config.OutputWS || h.hub == nil {
		return nil, nil
	}
	return display.NewBroadcast(h.hub), nil
}

// Run draws frames until the budget is spent or ctx ends. With the window output the
// window drives the frames; otherwise the driver loop does.
func (h *Host) Run(ctx context.Context) error {
	cfg := h.Config

	if cfg.Models.GLTF != "" && cfg.Models.Watch {
		ch, err := models.Watch(ctx, cfg.Models.GLTF, "", h.log)
		if err != nil {
			return err
		}
		h.Driver.Reload = ch
	}

	if h.hub != nil {
		srv := &http.Server{
			Addr:              cfg.Display.Addr,
			Handler:           h.hub.Router(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			h.log.Info("viewer server listening", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				h.log.Error("viewer server failed", zap.Error(err))
			}
		}()
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(sctx)
		}()
	}

	if cfg.HasOutput(config.OutputWindow) {
		return h.runWindow(ctx)
	}

	fc, err := h.Driver.Run(ctx, h.fc, cfg.Render.Frames)
	h.fc = fc
	if err != nil {
		return err
	}
	h.log.Debug("demo finished", zap.Uint64("frames", fc.Frame))
	return nil
}

func (h *Host) runWindow(ctx context.Context) error {
	tps := h.Config.Render.FPS
	if tps <= 0 {
		tps = 60
	}
	// The window ticks at the frame rate, so the driver must not sleep as well.
	h.Driver.Pacer = nil

	step := func() error {
		select {
		case <-ctx.Done():
			return hal.ErrDone
		default:
		}
		return h.Step()
	}
	err := hal.RunWindow(h.HAL, hal.WindowConfig{Title: h.Title, TPS: tps, Scale: h.Config.Display.Scale}, step)
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
