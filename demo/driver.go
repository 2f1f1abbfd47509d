package demo

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"regis3d/models"
	"regis3d/vgl"
)

// Driver renders one scene per Step.
type Driver struct {
	Scene    Scene
	Catalog  models.Catalog
	Renderer *vgl.Renderer
	Pacer    *Pacer // nil disables pacing

	// Reload, if set, delivers replacement meshes for single-object scenes. It is polled
	// at the start of each frame.
	Reload <-chan models.Mesh

	log      *zap.Logger
	override *vgl.Model
}

func NewDriver(scene Scene, catalog models.Catalog, r *vgl.Renderer, log *zap.Logger) *Driver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Driver{Scene: scene, Catalog: catalog, Renderer: r, log: log}
}

// Start returns the context of the first frame.
func (d *Driver) Start(animate bool) FrameContext {
	return FrameContext{
		Animate:    animate,
		State:      d.Scene.Initial,
		Projection: vgl.BuildProjection(d.Renderer.Viewport),
	}
}

// Override draws m in place of the model of a single-object scene. Batch scenes keep
// their own models.
func (d *Driver) Override(m models.Mesh) {
	if d.Scene.Batch || len(d.Scene.Objects) != 1 {
		d.log.Warn("model override ignored by multi-object scene",
			zap.Stringer("scene", d.Scene.ID), zap.String("model", m.Name))
		return
	}
	mm := vgl.MemoryModel(m.Name, m.Vertices)
	d.override = &mm
}

func (d *Driver) pollReload() {
	if d.Reload == nil {
		return
	}
	select {
	case m, ok := <-d.Reload:
		if !ok {
			d.Reload = nil
			return
		}
		d.Override(m)
	default:
	}
}

func (d *Driver) model(o Object) (vgl.Model, error) {
	if d.override != nil {
		return *d.override, nil
	}
	return d.Catalog.Lookup(o.Model)
}

// Step draws one frame from fc and returns the context for the next one.
//
// A failing frame is aborted and fc is returned unchanged along with the error.
func (d *Driver) Step(fc FrameContext) (FrameContext, error) {
	d.pollReload()

	next := fc
	next.Projection = vgl.BuildProjection(d.Renderer.Viewport)
	view := d.Scene.View(fc.User)
	frame := d.Renderer.Frame()

	fail := func(err error) (FrameContext, error) {
		frame.Abort()
		return fc, fmt.Errorf("frame %d: %w", fc.Frame, err)
	}

	if d.Scene.Batch {
		if err := frame.Begin(); err != nil {
			return fail(err)
		}
	}
	for _, o := range d.Scene.Objects {
		m, err := d.model(o)
		if err != nil {
			return fail(err)
		}
		combined := o.Place(fc.State).Then(view).Then(next.Projection)
		if err := d.Renderer.Render(m, combined, o.Intensity, !d.Scene.Batch); err != nil {
			return fail(err)
		}
	}
	if d.Scene.Batch {
		if err := frame.End(); err != nil {
			return fail(err)
		}
	}

	if next.Animate {
		next.State = next.State.Advance()
	}
	next.Frame++
	d.Pacer.Wait()
	return next, nil
}

// Run steps frames times, or until ctx is done when frames is 0. It returns the last
// good context. Cancellation is not an error.
func (d *Driver) Run(ctx context.Context, fc FrameContext, frames uint64) (FrameContext, error) {
	d.log.Debug("scene start",
		zap.Stringer("scene", d.Scene.ID),
		zap.Uint64("frames", frames),
		zap.Bool("animate", fc.Animate))

	for i := uint64(0); frames == 0 || i < frames; i++ {
		select {
		case <-ctx.Done():
			d.log.Debug("scene interrupted", zap.Uint64("frame", fc.Frame))
			return fc, nil
		default:
		}
		var err error
		if fc, err = d.Step(fc); err != nil {
			return fc, err
		}
	}
	return fc, nil
}
