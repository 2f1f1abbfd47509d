//go:build !tinygo

package models

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reloads the glTF file at path whenever it is written or replaced and delivers the
// new mesh on the returned channel. Only the newest mesh is kept if the reader falls
// behind. The channel is closed when ctx ends.
func Watch(ctx context.Context, path, name string, log *zap.Logger) (<-chan Mesh, error) {
	if log == nil {
		log = zap.NewNop()
	}
	target, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %q: %w", path, err)
	}
	// Editors often replace the file, so watch its directory.
	if err := w.Add(filepath.Dir(target)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %q: %w", path, err)
	}

	out := make(chan Mesh, 1)
	go func() {
		defer close(out)
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				m, err := LoadGLTF(target, name)
				if err != nil {
					log.Warn("model reload failed", zap.String("path", target), zap.Error(err))
					continue
				}
				log.Info("model reloaded", zap.String("path", target), zap.Int("vertices", len(m.Vertices)))
				select {
				case out <- m:
				default:
					select {
					case <-out:
					default:
					}
					out <- m
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn("model watcher", zap.Error(err))
			}
		}
	}()
	return out, nil
}
