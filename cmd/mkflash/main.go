//go:build !tinygo

// Command mkflash writes a flash image holding wireframe models, for the host flash file
// or for flashing to a board right after the firmware.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"regis3d/hal"
	"regis3d/models"
)

const (
	defaultFlashPath = hal.DefaultFlashPath
	defaultFlashSize = hal.DefaultFlashSizeBytes
	defaultEraseSize = hal.DefaultFlashEraseBytes
)

// gltfFlag collects repeated -gltf name=path (or just path) values.
type gltfFlag []string

func (g *gltfFlag) String() string     { return strings.Join(*g, ",") }
func (g *gltfFlag) Set(v string) error { *g = append(*g, v); return nil }

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "mkflash:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("mkflash", flag.ContinueOnError)
	out := fs.String("out", defaultFlashPath, "flash image file to create")
	size := fs.Uint("size", defaultFlashSize, "flash size in bytes")
	erase := fs.Uint("erase", defaultEraseSize, "erase block size in bytes")
	offset := fs.Uint("offset", 0, "image offset in flash (multiple of -erase)")
	builtin := fs.Bool("builtin", true, "include the built-in models")
	list := fs.Bool("list", false, "list the models in -out instead of writing it")
	var gltfs gltfFlag
	fs.Var(&gltfs, "gltf", "add a glTF model as name=path (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *list {
		return listImage(*out, uint32(*offset), stdout)
	}

	var meshes []models.Mesh
	if *builtin {
		meshes = append(meshes, models.Builtin()...)
	}
	for _, arg := range gltfs {
		name, path, ok := strings.Cut(arg, "=")
		if !ok {
			name, path = "", arg
		}
		m, err := models.LoadGLTF(path, name)
		if err != nil {
			return err
		}
		meshes = append(meshes, m)
	}

	img, err := models.EncodeImage(meshes, uint32(*offset))
	if err != nil {
		return err
	}

	if err := os.Remove(*out); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	fl, err := hal.OpenFileFlash(*out, uint32(*size), uint32(*erase))
	if err != nil {
		return err
	}
	defer fl.Close()

	if uint64(*offset)+uint64(len(img)) > uint64(fl.SizeBytes()) {
		return fmt.Errorf("image of %d bytes at %d does not fit in %d bytes of flash", len(img), *offset, fl.SizeBytes())
	}
	if err := hal.WriteImage(fl, uint32(*offset), img); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s: %d models, %d bytes at offset %d\n", *out, len(meshes), len(img), *offset)
	return nil
}

func listImage(path string, offset uint32, w io.Writer) error {
	fl, err := hal.OpenExistingFileFlash(path, defaultEraseSize)
	if err != nil {
		return err
	}
	defer fl.Close()

	cat, err := models.OpenImage(fl, offset)
	if err != nil {
		return err
	}
	for _, name := range cat.Names() {
		m, err := cat.Lookup(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%-12s %5d vertices at %d\n", name, m.Count, m.Base)
	}
	return nil
}
