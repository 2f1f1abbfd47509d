//go:build !tinygo

package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"regis3d/demo"
	"regis3d/hal"
	"regis3d/internal/config"
	"regis3d/models"
	"regis3d/vgl"
)

type nopLogger struct{}

func (nopLogger) WriteLineString(string) {}
func (nopLogger) WriteLineBytes([]byte)  {}

type fakeKeyboard struct{ ch chan hal.KeyEvent }

func (k fakeKeyboard) Events() <-chan hal.KeyEvent { return k.ch }

type fakeInput struct{ kbd fakeKeyboard }

func (in fakeInput) Keyboard() hal.Keyboard { return in.kbd }

type noDisplay struct{}

func (noDisplay) Framebuffer() hal.Framebuffer { return nil }

type fakeHAL struct {
	serial *bytes.Buffer
	flash  hal.Flash
	keys   chan hal.KeyEvent
}

func newFakeHAL() *fakeHAL {
	return &fakeHAL{serial: &bytes.Buffer{}, keys: make(chan hal.KeyEvent, 8)}
}

func (h *fakeHAL) Logger() hal.Logger   { return nopLogger{} }
func (h *fakeHAL) Display() hal.Display { return noDisplay{} }
func (h *fakeHAL) Input() hal.Input     { return fakeInput{kbd: fakeKeyboard{ch: h.keys}} }
func (h *fakeHAL) Flash() hal.Flash     { return h.flash }
func (h *fakeHAL) Serial() hal.Serial   { return h.serial }

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Render.FPS = 0
	cfg.Render.Frames = 2
	return cfg
}

func TestStepWritesReGIS(t *testing.T) {
	h := newFakeHAL()
	a, err := New(h, testConfig(), demo.CubeDemo, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, a.Step())
	out := h.serial.String()
	assert.True(t, strings.HasPrefix(out, "\x1bP1pS(E)W(I(W))"), "got %q", out)
	assert.True(t, strings.HasSuffix(out, "\x1b\\"))

	require.NoError(t, a.Step())
	assert.Equal(t, uint64(2), a.Frame().Frame)
	assert.ErrorIs(t, a.Step(), hal.ErrDone, "frame budget spent")
}

func TestKeysRotateAndQuit(t *testing.T) {
	h := newFakeHAL()
	cfg := testConfig()
	cfg.Render.Frames = 0
	a, err := New(h, cfg, demo.CubeDemo, nil)
	require.NoError(t, err)

	h.keys <- hal.KeyEvent{Code: hal.KeyRight, Press: true}
	h.keys <- hal.KeyEvent{Code: hal.KeyRight, Press: false}
	h.keys <- hal.KeyEvent{Code: hal.KeyUp, Press: true}
	h.keys <- hal.KeyEvent{Code: hal.KeySpace, Press: true}
	require.NoError(t, a.Step())

	fc := a.Frame()
	assert.InDelta(t, vgl.Deg(5), fc.User.RotY, 1e-6)
	assert.InDelta(t, -vgl.Deg(5), fc.User.RotX, 1e-6)
	assert.False(t, fc.Animate)

	h.keys <- hal.KeyEvent{Code: hal.KeyEscape, Press: true}
	assert.ErrorIs(t, a.Step(), hal.ErrDone)
}

func TestModelsFromFlash(t *testing.T) {
	fl, err := hal.OpenFileFlash(filepath.Join(t.TempDir(), "flash.bin"), 64*1024, 4096)
	require.NoError(t, err)
	defer fl.Close()

	mesh := models.Mesh{Name: models.Cube, Vertices: []vgl.Vertex{
		{StrokeStart: true},
		{X: 1},
	}}
	img, err := models.EncodeImage([]models.Mesh{mesh}, 0)
	require.NoError(t, err)
	require.NoError(t, hal.WriteImage(fl, 0, img))

	h := newFakeHAL()
	h.flash = fl
	a, err := New(h, testConfig(), demo.CubeDemo, nil)
	require.NoError(t, err)
	require.NoError(t, a.Step())

	out := h.serial.String()
	assert.Equal(t, 1, strings.Count(out, "V[]"), "flash cube has a single line: %q", out)
}

func TestModelsAtFlashOffset(t *testing.T) {
	fl, err := hal.OpenFileFlash(filepath.Join(t.TempDir(), "flash.bin"), 64*1024, 4096)
	require.NoError(t, err)
	defer fl.Close()

	mesh := models.Mesh{Name: models.Cube, Vertices: []vgl.Vertex{
		{StrokeStart: true},
		{X: 1},
	}}
	img, err := models.EncodeImage([]models.Mesh{mesh}, 8192)
	require.NoError(t, err)
	require.NoError(t, hal.WriteImage(fl, 8192, img))

	cfg := testConfig()
	cfg.Models.FlashOffset = 8192
	h := newFakeHAL()
	h.flash = fl
	a, err := New(h, cfg, demo.CubeDemo, nil)
	require.NoError(t, err)
	require.NoError(t, a.Step())
	assert.Equal(t, 1, strings.Count(h.serial.String(), "V[]"), "flash cube at 8192")

	// The same flash read at offset 0 has no image.
	h = newFakeHAL()
	h.flash = fl
	a, err = New(h, testConfig(), demo.CubeDemo, nil)
	require.NoError(t, err)
	require.NoError(t, a.Step())
	assert.Equal(t, 12, strings.Count(h.serial.String(), "V[]"), "built-in cube")
}

func TestBlankFlashFallsBack(t *testing.T) {
	fl, err := hal.OpenFileFlash(filepath.Join(t.TempDir(), "flash.bin"), 64*1024, 4096)
	require.NoError(t, err)
	defer fl.Close()

	h := newFakeHAL()
	h.flash = fl
	a, err := New(h, testConfig(), demo.CubeDemo, nil)
	require.NoError(t, err)
	require.NoError(t, a.Step())
	assert.Equal(t, 12, strings.Count(h.serial.String(), "V[]"), "built-in cube")
}

func TestPNGOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	cfg := testConfig()
	cfg.Display.Outputs = []string{config.OutputPNG, config.OutputReGIS}
	cfg.Display.PNG = path

	h := newFakeHAL()
	a, err := New(h, cfg, demo.GLXGearsDemo, nil)
	require.NoError(t, err)
	require.NoError(t, a.Step())

	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, st.Size())
	assert.Equal(t, 1, strings.Count(h.serial.String(), "\x1bP1p"), "batch scene is one ReGIS frame")
}

func TestOutputErrors(t *testing.T) {
	cfg := testConfig()
	cfg.Display.Outputs = []string{config.OutputWindow}
	_, err := New(newFakeHAL(), cfg, demo.CubeDemo, nil)
	assert.Error(t, err, "no framebuffer")

	cfg = testConfig()
	cfg.Display.Outputs = []string{config.OutputWS}
	_, err = New(newFakeHAL(), cfg, demo.CubeDemo, nil)
	assert.ErrorIs(t, err, hal.ErrNotImplemented, "plain App has no websocket output")

	cfg = testConfig()
	cfg.Display.Outputs = []string{"plotter"}
	_, err = New(newFakeHAL(), cfg, demo.CubeDemo, nil)
	assert.Error(t, err)
}
