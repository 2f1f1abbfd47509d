package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regis3d/vgl"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, uint64(1000), cfg.Render.Frames)
	assert.Equal(t, 15, cfg.Render.FPS)
	assert.True(t, cfg.Render.Animate)
	assert.False(t, cfg.Render.Clip)
	assert.Equal(t, []string{OutputReGIS}, cfg.Display.Outputs)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Logging.LogFile)
	require.NoError(t, cfg.Validate())

	vp, err := cfg.ViewportSettings()
	require.NoError(t, err)
	assert.Equal(t, vgl.DefaultViewport(), vp)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regis3d.yaml")
	yamlContent := `
render:
  frames: 50
  clip: true
viewport:
  width: 640
  projection: alt
display:
  outputs: [regis, ws]
  addr: ":9000"
logging:
  level: debug
  log_file: regis3d.log
`
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, uint64(50), cfg.Render.Frames)
	assert.True(t, cfg.Render.Clip)
	assert.Equal(t, 15, cfg.Render.FPS, "keys absent from the file keep their default")
	assert.Equal(t, 640, cfg.Viewport.Width)
	assert.Equal(t, 480, cfg.Viewport.Height)
	assert.True(t, cfg.HasOutput(OutputWS))
	assert.False(t, cfg.HasOutput(OutputPNG))
	assert.Equal(t, ":9000", cfg.Display.Addr)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "regis3d.log", cfg.Logging.LogFile)

	vp, err := cfg.ViewportSettings()
	require.NoError(t, err)
	assert.Equal(t, vgl.ProjectionAlt, vp.Projection)
}

func TestLoadFromFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("render:\n  frames: lots\n  invalid syntax here\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := Load("/nonexistent/path/regis3d.yaml")
	assert.Error(t, err)
}

func TestFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regis3d.yaml")
	require.NoError(t, os.WriteFile(path, []byte("render:\n  frames: 50\n  fps: 30\n"), 0o644))

	fs := flag.NewFlagSet("regis3d", flag.ContinueOnError)
	f := RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{
		"-config", path, "-frames", "0", "-output", "regis, Window", "-static", "3",
	}))

	cfg, err := f.Load()
	require.NoError(t, err)

	assert.Equal(t, uint64(0), cfg.Render.Frames, "an explicit zero flag wins")
	assert.Equal(t, 30, cfg.Render.FPS, "unset flags leave the file value")
	assert.Equal(t, []string{OutputReGIS, OutputWindow}, cfg.Display.Outputs)
	assert.False(t, cfg.Render.Animate)
	assert.Equal(t, []string{"3"}, fs.Args())
}

func TestFlashOffset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regis3d.yaml")
	require.NoError(t, os.WriteFile(path, []byte("models:\n  flash: m.flash\n  flash_offset: 4096\n"), 0o644))

	fs := flag.NewFlagSet("regis3d", flag.ContinueOnError)
	f := RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"-config", path}))
	cfg, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, "m.flash", cfg.Models.Flash)
	assert.Equal(t, uint32(4096), cfg.Models.FlashOffset)

	fs = flag.NewFlagSet("regis3d", flag.ContinueOnError)
	f = RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"-config", path, "-flash-offset", "8192"}))
	cfg, err = f.Load()
	require.NoError(t, err)
	assert.Equal(t, uint32(8192), cfg.Models.FlashOffset)

	fs = flag.NewFlagSet("regis3d", flag.ContinueOnError)
	f = RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"-flash-offset", "4294967296"}))
	_, err = f.Load()
	assert.ErrorContains(t, err, "out of range")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Display.Outputs = []string{"vt340"}
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Viewport.Projection = "fisheye"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Viewport.Width = 0
	assert.Error(t, cfg.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "regis3d.yaml")
	cfg := Default()
	cfg.Render.FPS = 60
	cfg.Models.GLTF = "teapot.gltf"
	require.NoError(t, cfg.SaveTo(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	assert.NotEmpty(t, dir)
}
