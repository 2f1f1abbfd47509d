//go:build tinygo && baremetal && (rp2040 || rp2350)

package hal

import (
	"fmt"
	"machine"
)

// rp2Flash exposes the on-board QSPI flash. TinyGo's machine.Flash starts after the
// firmware, so offset 0 is the first free byte.
type rp2Flash struct{}

func newFlash() Flash { return rp2Flash{} }

func clampU32(v int64) uint32 {
	switch {
	case v <= 0:
		return 0
	case v > int64(^uint32(0)):
		return ^uint32(0)
	}
	return uint32(v)
}

func (rp2Flash) SizeBytes() uint32       { return clampU32(machine.Flash.Size()) }
func (rp2Flash) EraseBlockBytes() uint32 { return clampU32(machine.Flash.EraseBlockSize()) }

func (rp2Flash) ReadAt(p []byte, off uint32) (int, error) {
	n, err := machine.Flash.ReadAt(p, int64(off))
	if err != nil {
		return n, fmt.Errorf("flash read at %d: %w", off, err)
	}
	return n, nil
}

func (rp2Flash) WriteAt(p []byte, off uint32) (int, error) {
	n, err := machine.Flash.WriteAt(p, int64(off))
	if err != nil {
		return n, fmt.Errorf("flash write at %d: %w", off, err)
	}
	return n, nil
}

func (f rp2Flash) Erase(off, size uint32) error {
	if size == 0 {
		return nil
	}
	bs := f.EraseBlockBytes()
	if bs == 0 {
		return ErrNotImplemented
	}
	if off%bs != 0 || size%bs != 0 {
		return fmt.Errorf("flash erase off=%d size=%d: unaligned", off, size)
	}
	return machine.Flash.EraseBlocks(int64(off/bs), int64(size/bs))
}
