// Package display holds the vector display sinks and the frame lifecycle around them.
//
// A Sink understands six commands (open, clear, close, intensity, move, line). Frame wraps a
// Sink with the Idle/FrameOpen state machine so callers never draw into a closed frame.
package display

import (
	"errors"
	"image/color"
	"strings"
)

var (
	// ErrSinkUnavailable reports that the sink's output went away mid-frame.
	ErrSinkUnavailable = errors.New("display sink unavailable")
	ErrFrameOpen       = errors.New("frame already open")
	ErrFrameNotOpen    = errors.New("no open frame")
)

// Sink accepts vector draw commands in display coordinates.
//
// Coordinates are never negative; callers clamp them before they get here.
type Sink interface {
	Open(width, height int) error
	Clear() error
	Close() error
	SetIntensity(c Intensity) error
	MoveTo(x, y uint16) error
	LineTo(x, y uint16) error
}

// Aborter is implemented by sinks that must not present a frame that was given up
// part way. Sinks without it are closed instead.
type Aborter interface {
	Abort() error
}

// abortSink ends the current frame of s without presenting it, if s can tell the two
// apart.
func abortSink(s Sink) error {
	if a, ok := s.(Aborter); ok {
		return a.Abort()
	}
	return s.Close()
}

// Intensity is a ReGIS color register.
type Intensity uint8

const (
	Dark Intensity = iota
	Blue
	Red
	Magenta
	Green
	Cyan
	Yellow
	White
)

var intensityLetters = [...]byte{'D', 'B', 'R', 'M', 'G', 'C', 'Y', 'W'}

var intensityNames = [...]string{"dark", "blue", "red", "magenta", "green", "cyan", "yellow", "white"}

// Letter returns the ReGIS color letter.
func (c Intensity) Letter() byte {
	if int(c) >= len(intensityLetters) {
		return 'W'
	}
	return intensityLetters[c]
}

func (c Intensity) String() string {
	if int(c) >= len(intensityNames) {
		return "white"
	}
	return intensityNames[c]
}

// RGBA returns the color used by raster sinks.
func (c Intensity) RGBA() color.RGBA {
	switch c {
	case Dark:
		return color.RGBA{A: 0xFF}
	case Blue:
		return color.RGBA{R: 0x30, G: 0x60, B: 0xFF, A: 0xFF}
	case Red:
		return color.RGBA{R: 0xFF, G: 0x30, B: 0x30, A: 0xFF}
	case Magenta:
		return color.RGBA{R: 0xFF, G: 0x30, B: 0xFF, A: 0xFF}
	case Green:
		return color.RGBA{R: 0x30, G: 0xFF, B: 0x30, A: 0xFF}
	case Cyan:
		return color.RGBA{R: 0x30, G: 0xFF, B: 0xFF, A: 0xFF}
	case Yellow:
		return color.RGBA{R: 0xFF, G: 0xFF, B: 0x30, A: 0xFF}
	default:
		return color.RGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF}
	}
}

// ParseIntensity accepts a color name or a ReGIS letter.
func ParseIntensity(s string) (Intensity, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range intensityNames {
		if s == n || (len(s) == 1 && s[0] == intensityLetters[i]+('a'-'A')) {
			return Intensity(i), true
		}
	}
	return White, false
}
