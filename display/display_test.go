package display

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameStateMachine(t *testing.T) {
	rec := &Recorder{}
	f := NewFrame(rec, 480, 480)

	assert.Equal(t, Idle, f.State())
	assert.ErrorIs(t, f.MoveTo(1, 1), ErrFrameNotOpen)
	assert.ErrorIs(t, f.LineTo(1, 1), ErrFrameNotOpen)
	assert.ErrorIs(t, f.SetIntensity(Red), ErrFrameNotOpen)
	assert.ErrorIs(t, f.End(), ErrFrameNotOpen)
	assert.Empty(t, rec.Commands)

	require.NoError(t, f.Begin())
	assert.Equal(t, FrameOpen, f.State())
	assert.Equal(t, 480, rec.Width)
	assert.ErrorIs(t, f.Begin(), ErrFrameOpen)
	require.NoError(t, f.Ensure())
	assert.Equal(t, 1, rec.Count(OpOpen))

	require.NoError(t, f.MoveTo(1, 2))
	require.NoError(t, f.End())
	assert.Equal(t, Idle, f.State())

	f.Abort()
	assert.Equal(t, 1, rec.Count(OpClose))

	require.NoError(t, f.Ensure())
	f.Abort()
	assert.Equal(t, Idle, f.State())
	assert.Equal(t, 2, rec.Count(OpClose))
}

func TestFrameWithoutSink(t *testing.T) {
	assert.ErrorIs(t, NewFrame(nil, 1, 1).Begin(), ErrSinkUnavailable)
}

func TestFrameClearFailureClosesSink(t *testing.T) {
	boom := errors.New("clear failed")
	rec := &Recorder{Fail: func(c Command) error {
		if c.Op == OpClear {
			return boom
		}
		return nil
	}}
	f := NewFrame(rec, 10, 10)
	assert.ErrorIs(t, f.Begin(), boom)
	assert.Equal(t, Idle, f.State())
	assert.Equal(t, []Command{{Op: OpOpen}, {Op: OpClose}}, rec.Commands)
}

func TestReGISStream(t *testing.T) {
	var buf bytes.Buffer
	r := NewReGIS(&buf, ReGISOptions{})
	f := NewFrame(r, 480, 480)

	require.NoError(t, f.Begin())
	require.NoError(t, f.SetIntensity(White))
	require.NoError(t, f.MoveTo(240, 240))
	require.NoError(t, f.LineTo(480, 240))
	assert.Zero(t, buf.Len(), "output is held until the frame closes")
	require.NoError(t, f.End())

	assert.Equal(t, "\x1bP1pS(E)W(I(W))P[240,240]V[][480,240]\x1b\\", buf.String())
	w, h := r.Size()
	assert.Equal(t, [2]int{480, 480}, [2]int{w, h})
}

func TestReGISClearTerminal(t *testing.T) {
	var buf bytes.Buffer
	r := NewReGIS(&buf, ReGISOptions{ClearTerminal: true})
	require.NoError(t, r.Open(480, 480))
	require.NoError(t, r.Close())

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\x1b[2J"), "%q", out)
	assert.True(t, strings.HasSuffix(out, regisEnter+regisLeave), "%q", out)
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) { return 0, errors.New("line hung up") }

func TestReGISWriteFailure(t *testing.T) {
	r := NewReGIS(failWriter{}, ReGISOptions{})
	require.NoError(t, r.Open(480, 480))
	assert.ErrorIs(t, r.Close(), ErrSinkUnavailable)

	assert.ErrorIs(t, NewReGIS(nil, ReGISOptions{}).Open(1, 1), ErrSinkUnavailable)
}

func TestIntensity(t *testing.T) {
	assert.Equal(t, "DBRMGCYW", string([]byte{
		Dark.Letter(), Blue.Letter(), Red.Letter(), Magenta.Letter(),
		Green.Letter(), Cyan.Letter(), Yellow.Letter(), White.Letter(),
	}))

	c, ok := ParseIntensity("g")
	assert.True(t, ok)
	assert.Equal(t, Green, c)
	c, ok = ParseIntensity(" Magenta ")
	assert.True(t, ok)
	assert.Equal(t, Magenta, c)
	_, ok = ParseIntensity("purple")
	assert.False(t, ok)
}

func TestMultiFansOut(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	boom := errors.New("b failed")
	b.Fail = func(c Command) error {
		if c.Op == OpLine {
			return boom
		}
		return nil
	}
	m := Multi{a, b}

	require.NoError(t, m.Open(100, 50))
	require.NoError(t, m.MoveTo(1, 2))
	assert.ErrorIs(t, m.LineTo(3, 4), boom)
	assert.Equal(t, []Command{Move(1, 2), Line(3, 4)}, a.Draws())
	assert.Equal(t, []Command{Move(1, 2)}, b.Draws())
	assert.Equal(t, 50, b.Height)
}

func TestRasterDrawsScaledLines(t *testing.T) {
	img := NewImageDisplayer(240, 240)
	presented := 0
	img.OnDisplay = func(*image.RGBA) error {
		presented++
		return nil
	}
	r := NewRaster(img)
	r.Caption = "cube"
	f := NewFrame(r, 480, 480)

	require.NoError(t, f.Begin())
	require.NoError(t, f.SetIntensity(Red))
	require.NoError(t, f.MoveTo(0, 240))
	require.NoError(t, f.LineTo(480, 240))
	require.NoError(t, f.End())

	assert.Equal(t, 1, presented)
	red := Red.RGBA()
	assert.Equal(t, red, img.Img.RGBAAt(0, 120))
	assert.Equal(t, red, img.Img.RGBAAt(119, 120))
	assert.Equal(t, r.Background, img.Img.RGBAAt(119, 60))
}

func TestRasterPresentFailure(t *testing.T) {
	img := NewImageDisplayer(8, 8)
	img.OnDisplay = func(*image.RGBA) error { return errors.New("disk full") }
	r := NewRaster(img)
	require.NoError(t, r.Open(8, 8))
	assert.ErrorIs(t, r.Close(), ErrSinkUnavailable)
}

func TestImageDisplayerClipsPixels(t *testing.T) {
	img := NewImageDisplayer(4, 4)
	img.SetPixel(-1, 2, color.RGBA{R: 1})
	img.SetPixel(4, 0, color.RGBA{R: 1})
	require.NoError(t, img.FillRectangle(2, 2, 10, 10, color.RGBA{G: 9, A: 255}))
	assert.Equal(t, color.RGBA{G: 9, A: 255}, img.Img.RGBAAt(3, 3))
	assert.Equal(t, color.RGBA{}, img.Img.RGBAAt(1, 1))
}

func TestFrameOpenFailureLeavesGraphicsMode(t *testing.T) {
	var buf bytes.Buffer
	boom := errors.New("open failed")
	rec := &Recorder{Fail: func(c Command) error {
		if c.Op == OpOpen {
			return boom
		}
		return nil
	}}
	f := NewFrame(Multi{NewReGIS(&buf, ReGISOptions{}), rec}, 10, 10)

	assert.ErrorIs(t, f.Begin(), boom)
	assert.Equal(t, Idle, f.State())
	assert.Equal(t, "\x1bP1p\x1b\\", buf.String(), "the terminal must not be left in ReGIS mode")
	assert.Equal(t, []Command{{Op: OpClose}}, rec.Commands)
}

func TestRasterAbortSkipsPresent(t *testing.T) {
	img := NewImageDisplayer(8, 8)
	presented := 0
	img.OnDisplay = func(*image.RGBA) error {
		presented++
		return nil
	}
	f := NewFrame(Multi{NewRaster(img)}, 8, 8)

	require.NoError(t, f.Begin())
	require.NoError(t, f.LineTo(7, 7))
	f.Abort()
	assert.Equal(t, Idle, f.State())
	assert.Zero(t, presented)

	require.NoError(t, f.Begin())
	require.NoError(t, f.End())
	assert.Equal(t, 1, presented)
}

func TestReGISAbortEndsGraphicsMode(t *testing.T) {
	var buf bytes.Buffer
	f := NewFrame(NewReGIS(&buf, ReGISOptions{}), 480, 480)
	require.NoError(t, f.Begin())
	require.NoError(t, f.MoveTo(1, 2))
	f.Abort()
	assert.Equal(t, "\x1bP1pS(E)P[1,2]\x1b\\", buf.String())
}
