//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
)

// HostConfig configures the host HAL.
type HostConfig struct {
	// FlashPath is the flash image file. Empty uses $REGIS3D_FLASH_PATH, then
	// DefaultFlashPath.
	FlashPath string
	// Width and Height size the preview framebuffer.
	Width  int
	Height int
}

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	kbd    *hostKeyboard
	flash  Flash
	serial Serial
}

// New returns a host HAL implementation. Log lines go to stderr, the serial link is
// stdin/stdout.
func New(cfg HostConfig) HAL {
	if cfg.Width <= 0 {
		cfg.Width = 480
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	logger := &hostLogger{w: os.Stderr}

	path := cfg.FlashPath
	if path == "" {
		path = os.Getenv("REGIS3D_FLASH_PATH")
	}
	if path == "" {
		path = DefaultFlashPath
	}
	var flash Flash = stubFlash{}
	// A missing image is not created; cmd/mkflash builds one.
	if ff, err := OpenExistingFileFlash(path, DefaultFlashEraseBytes); err == nil {
		flash = ff
	} else {
		logger.WriteLineString(fmt.Sprintf("flash unavailable: %v", err))
	}

	return &hostHAL{
		logger: logger,
		fb:     newHostFramebuffer(cfg.Width, cfg.Height),
		kbd:    newHostKeyboard(),
		flash:  flash,
		serial: &hostSerial{r: os.Stdin, w: os.Stdout},
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd} }
func (h *hostHAL) Flash() Flash     { return h.flash }
func (h *hostHAL) Serial() Serial   { return h.serial }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

// hostSerial stands in for the terminal line: stdin and stdout.
type hostSerial struct {
	mu sync.Mutex
	r  *os.File
	w  *os.File
}

func (s *hostSerial) Read(p []byte) (int, error) {
	if s.r == nil {
		return 0, ErrNotImplemented
	}
	return s.r.Read(p)
}

func (s *hostSerial) Write(p []byte) (int, error) {
	if s.w == nil {
		return 0, ErrNotImplemented
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
