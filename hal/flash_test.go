//go:build !tinygo

package hal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileFlashEraseAndWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flash.bin")
	fl, err := OpenFileFlash(path, 8192, 4096)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer fl.Close()

	if fl.SizeBytes() != 8192 || fl.EraseBlockBytes() != 4096 {
		t.Fatalf("size=%d erase=%d", fl.SizeBytes(), fl.EraseBlockBytes())
	}

	buf := make([]byte, 4)
	if _, err := fl.ReadAt(buf, 100); err != nil {
		t.Fatalf("read: %v", err)
	}
	for _, b := range buf {
		if b != 0xFF {
			t.Fatalf("fresh flash not erased: %x", buf)
		}
	}

	if _, err := fl.WriteAt([]byte{0x0F}, 10); err != nil {
		t.Fatalf("write: %v", err)
	}
	// Setting a cleared bit needs an erase first.
	if _, err := fl.WriteAt([]byte{0xF0}, 10); !errors.Is(err, ErrFlashWriteRequiresErase) {
		t.Fatalf("expected ErrFlashWriteRequiresErase, got %v", err)
	}
	if err := fl.Erase(0, 4096); err != nil {
		t.Fatalf("erase: %v", err)
	}
	if _, err := fl.WriteAt([]byte{0xF0}, 10); err != nil {
		t.Fatalf("write after erase: %v", err)
	}

	if err := fl.Erase(100, 4096); !errors.Is(err, os.ErrInvalid) {
		t.Fatalf("unaligned erase: %v", err)
	}
	if _, err := fl.ReadAt(buf, 8192); !errors.Is(err, os.ErrInvalid) {
		t.Fatalf("read past end: %v", err)
	}
}

func TestFileFlashKeepsExistingImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flash.bin")
	fl, err := OpenFileFlash(path, 4096, 4096)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := WriteImage(fl, 0, []byte("R3DM")); err != nil {
		t.Fatalf("write image: %v", err)
	}
	fl.Close()

	fl, err = OpenFileFlash(path, 8192, 4096)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer fl.Close()
	if fl.SizeBytes() != 4096 {
		t.Fatalf("size changed to %d", fl.SizeBytes())
	}
	got := make([]byte, 4)
	if _, err := fl.ReadAt(got, 0); err != nil || string(got) != "R3DM" {
		t.Fatalf("got %q, %v", got, err)
	}

	// Rewriting over old data works because WriteImage erases first.
	if err := WriteImage(fl, 0, []byte("ABCD")); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if err := WriteImage(fl, 10, []byte("x")); err == nil {
		t.Fatalf("unaligned image offset accepted")
	}
	if err := WriteImage(stubFlash{}, 0, []byte("x")); !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("stub flash: %v", err)
	}
}

func TestOpenExistingFileFlashDoesNotCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typo.flash")
	if _, err := OpenExistingFileFlash(path, 4096); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file: got %v, want os.ErrNotExist", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("file was created: %v", err)
	}

	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenExistingFileFlash(path, 4096); err == nil {
		t.Fatalf("empty file accepted")
	}
	if st, _ := os.Stat(path); st.Size() != 0 {
		t.Fatalf("empty file grown to %d", st.Size())
	}

	fl, err := OpenFileFlash(path, 8192, 4096)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	fl.Close()
	fl, err = OpenExistingFileFlash(path, 4096)
	if err != nil {
		t.Fatalf("open existing: %v", err)
	}
	defer fl.Close()
	if fl.SizeBytes() != 8192 {
		t.Fatalf("size %d", fl.SizeBytes())
	}
}

func TestNewWithMissingFlashUsesStub(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.flash")
	h := New(HostConfig{FlashPath: path})
	if h.Flash().SizeBytes() != 0 {
		t.Fatalf("flash size %d, want stub", h.Flash().SizeBytes())
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("New created %s: %v", path, err)
	}
}

func TestRGB565RoundTrip(t *testing.T) {
	p := RGB565(0xFF, 0x00, 0xFF)
	if p != 0xF81F {
		t.Fatalf("RGB565 = %#04x", p)
	}
	r, g, b := RGB888From565(p)
	if r != 0xFF || g != 0 || b != 0xFF {
		t.Fatalf("back to %d %d %d", r, g, b)
	}
}
