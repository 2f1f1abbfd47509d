//go:build tinygo

package app

import (
	"regis3d/demo"
	"regis3d/hal"
	"regis3d/internal/config"
	"regis3d/internal/logger"
)

// Run draws the glxgears demo over the board's serial line forever. Frames go out as
// fast as the UART drains them.
func Run(h hal.HAL) {
	logger.InitHAL(h.Logger(), "info")

	cfg := config.Default()
	cfg.Render.Frames = 0
	cfg.Render.FPS = 0

	a, err := New(h, cfg, demo.GLXGearsDemo, logger.Log)
	if err != nil {
		h.Logger().WriteLineString("regis3d: " + err.Error())
		select {}
	}
	for {
		if err := a.Step(); err != nil {
			h.Logger().WriteLineString("regis3d: " + err.Error())
		}
	}
}
