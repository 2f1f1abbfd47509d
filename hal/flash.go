package hal

import "fmt"

// WriteImage erases as many blocks as img needs starting at off and programs it.
func WriteImage(fl Flash, off uint32, img []byte) error {
	bs := fl.EraseBlockBytes()
	if bs == 0 {
		return ErrNotImplemented
	}
	if off%bs != 0 {
		return fmt.Errorf("image offset %d not aligned to erase block %d", off, bs)
	}
	span := (uint32(len(img)) + bs - 1) / bs * bs
	if err := fl.Erase(off, span); err != nil {
		return err
	}
	n, err := fl.WriteAt(img, off)
	if err != nil {
		return err
	}
	if n != len(img) {
		return fmt.Errorf("flash write at %d: short write %d/%d", off, n, len(img))
	}
	return nil
}

type stubFlash struct{}

func (stubFlash) SizeBytes() uint32       { return 0 }
func (stubFlash) EraseBlockBytes() uint32 { return 0 }

func (stubFlash) ReadAt(p []byte, off uint32) (int, error)  { return 0, ErrNotImplemented }
func (stubFlash) WriteAt(p []byte, off uint32) (int, error) { return 0, ErrNotImplemented }
func (stubFlash) Erase(off, size uint32) error              { return ErrNotImplemented }
