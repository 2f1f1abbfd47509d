//go:build !tinygo

package hal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

const (
	DefaultFlashPath       = "regis3d.flash"
	DefaultFlashSizeBytes  = 2 * 1024 * 1024
	DefaultFlashEraseBytes = 4096
)

var ErrFlashWriteRequiresErase = errors.New("flash write requires erase")

// FileFlash emulates NOR flash in a host file: erase sets bytes to 0xFF and writes may
// only clear bits.
type FileFlash struct {
	mu        sync.Mutex
	f         *os.File
	size      uint32
	eraseSize uint32
	blank     []byte
}

// OpenFileFlash opens path as a flash device. An existing non-empty file keeps its size
// and contents. A new or empty file is grown to size bytes and erased.
func OpenFileFlash(path string, size, eraseSize uint32) (*FileFlash, error) {
	ff, err := openFlashFile(path, os.O_RDWR|os.O_CREATE, eraseSize)
	if err != nil || ff.size > 0 {
		return ff, err
	}
	f := ff.f

	if size == 0 || size%eraseSize != 0 {
		_ = f.Close()
		return nil, fmt.Errorf("flash: size %d not multiple of erase size %d", size, eraseSize)
	}
	if err := f.Truncate(int64(size)); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("truncate flash file %q to %d: %w", path, size, err)
	}
	ff.size = size
	if err := ff.Erase(0, size); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("erase flash file %q: %w", path, err)
	}
	return ff, nil
}

// OpenExistingFileFlash opens an existing flash image without creating or resizing it.
// A missing file yields an error wrapping os.ErrNotExist.
func OpenExistingFileFlash(path string, eraseSize uint32) (*FileFlash, error) {
	ff, err := openFlashFile(path, os.O_RDWR, eraseSize)
	if err != nil {
		return nil, err
	}
	if ff.size == 0 {
		_ = ff.f.Close()
		return nil, fmt.Errorf("flash file %q is empty", path)
	}
	return ff, nil
}

// openFlashFile opens path and takes the size of a non-empty file. size stays 0 otherwise.
func openFlashFile(path string, flag int, eraseSize uint32) (*FileFlash, error) {
	if eraseSize == 0 || eraseSize%256 != 0 {
		return nil, fmt.Errorf("flash: invalid erase size %d", eraseSize)
	}
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open flash file %q: %w", path, err)
	}

	ff := &FileFlash{f: f, eraseSize: eraseSize, blank: make([]byte, eraseSize)}
	for i := range ff.blank {
		ff.blank[i] = 0xFF
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat flash file %q: %w", path, err)
	}
	if st.Size() > int64(^uint32(0)) {
		_ = f.Close()
		return nil, fmt.Errorf("flash file %q larger than 4 GiB", path)
	}
	ff.size = uint32(st.Size())
	return ff, nil
}

func (f *FileFlash) Close() error { return f.f.Close() }

func (f *FileFlash) SizeBytes() uint32       { return f.size }
func (f *FileFlash) EraseBlockBytes() uint32 { return f.eraseSize }

func (f *FileFlash) ReadAt(p []byte, off uint32) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if off >= f.size {
		return 0, fmt.Errorf("flash read at %d: %w", off, os.ErrInvalid)
	}
	maxN := int(f.size - off)
	if len(p) > maxN {
		p = p[:maxN]
	}
	return f.f.ReadAt(p, int64(off))
}

func (f *FileFlash) WriteAt(p []byte, off uint32) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if off >= f.size {
		return 0, fmt.Errorf("flash write at %d: %w", off, os.ErrInvalid)
	}
	maxN := int(f.size - off)
	if len(p) > maxN {
		p = p[:maxN]
	}

	prev := make([]byte, len(p))
	if _, err := f.f.ReadAt(prev, int64(off)); err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("flash read before write at %d: %w", off, err)
	}
	for i := range p {
		if prev[i]&p[i] != p[i] {
			return 0, fmt.Errorf("flash write at %d: %w", off+uint32(i), ErrFlashWriteRequiresErase)
		}
	}
	return f.f.WriteAt(p, int64(off))
}

func (f *FileFlash) Erase(off, size uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if size == 0 {
		return nil
	}
	if off%f.eraseSize != 0 || size%f.eraseSize != 0 {
		return fmt.Errorf("flash erase off=%d size=%d: %w", off, size, os.ErrInvalid)
	}
	if off >= f.size || off+size > f.size {
		return fmt.Errorf("flash erase off=%d size=%d: %w", off, size, os.ErrInvalid)
	}
	for size > 0 {
		if _, err := f.f.WriteAt(f.blank, int64(off)); err != nil {
			return fmt.Errorf("flash erase block at %d: %w", off, err)
		}
		off += f.eraseSize
		size -= f.eraseSize
	}
	return nil
}
