package display

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/muesli/termenv"
)

const (
	regisEnter = "\x1bP1p"
	regisLeave = "\x1b\\"
)

// ReGISOptions tweaks the ReGIS byte stream.
type ReGISOptions struct {
	// ClearTerminal emits an ANSI clear screen and cursor home before each frame.
	ClearTerminal bool
}

// ReGIS encodes draw commands as a ReGIS stream, e.g. for an xterm on a serial line.
//
// Output is buffered per frame and flushed on Close.
type ReGIS struct {
	w      *bufio.Writer
	term   *termenv.Output
	opts   ReGISOptions
	width  int
	height int
	num    []byte
}

// NewReGIS writes ReGIS to w.
func NewReGIS(w io.Writer, opts ReGISOptions) *ReGIS {
	r := &ReGIS{opts: opts, num: make([]byte, 0, 8)}
	if w != nil {
		r.w = bufio.NewWriterSize(w, 4096)
		r.term = termenv.NewOutput(r.w, termenv.WithProfile(termenv.Ascii))
	}
	return r
}

// Size returns the window size of the last Open.
func (r *ReGIS) Size() (width, height int) { return r.width, r.height }

func (r *ReGIS) Open(width, height int) error {
	if r.w == nil {
		return ErrSinkUnavailable
	}
	r.width, r.height = width, height
	if r.opts.ClearTerminal {
		r.term.ClearScreen()
	}
	return r.emit(regisEnter)
}

func (r *ReGIS) Clear() error { return r.emit("S(E)") }

func (r *ReGIS) Close() error {
	if err := r.emit(regisLeave); err != nil {
		return err
	}
	if err := r.w.Flush(); err != nil {
		return fmt.Errorf("regis flush: %w: %w", ErrSinkUnavailable, err)
	}
	return nil
}

// Abort leaves graphics mode so the terminal is back to text. What was drawn stays on
// screen; a terminal has no way to take it back.
func (r *ReGIS) Abort() error { return r.Close() }

func (r *ReGIS) SetIntensity(c Intensity) error {
	return r.emit("W(I(" + string(c.Letter()) + "))")
}

func (r *ReGIS) MoveTo(x, y uint16) error { return r.point("P[", x, y) }

func (r *ReGIS) LineTo(x, y uint16) error { return r.point("V[][", x, y) }

func (r *ReGIS) point(prefix string, x, y uint16) error {
	r.num = append(r.num[:0], prefix...)
	r.num = strconv.AppendUint(r.num, uint64(x), 10)
	r.num = append(r.num, ',')
	r.num = strconv.AppendUint(r.num, uint64(y), 10)
	r.num = append(r.num, ']')
	if r.w == nil {
		return ErrSinkUnavailable
	}
	if _, err := r.w.Write(r.num); err != nil {
		return fmt.Errorf("regis write: %w: %w", ErrSinkUnavailable, err)
	}
	return nil
}

func (r *ReGIS) emit(s string) error {
	if r.w == nil {
		return ErrSinkUnavailable
	}
	if _, err := r.w.WriteString(s); err != nil {
		return fmt.Errorf("regis write: %w: %w", ErrSinkUnavailable, err)
	}
	return nil
}
