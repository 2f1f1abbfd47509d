//go:build !tinygo && !cgo

package hal

import "errors"

// WindowConfig controls the desktop preview window.
type WindowConfig struct {
	Title string
	TPS   int
	Scale int
}

func RunWindow(_ HAL, _ WindowConfig, _ func() error) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
