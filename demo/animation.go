package demo

import "regis3d/vgl"

var bounceLimit = vgl.Deg(45)

// AnimationState is the per-scene motion. All angles are radians.
type AnimationState struct {
	RotZ  float32
	RotY  float32
	SpinZ float32 // added to RotZ every frame
	StepY float32 // added to RotY every frame
	// Bounce reverses StepY once RotY reaches ±45°.
	Bounce bool
}

// Advance returns the state one frame later.
func (a AnimationState) Advance() AnimationState {
	a.RotZ += a.SpinZ
	a.RotY += a.StepY
	if a.Bounce && ((a.StepY > 0 && a.RotY >= bounceLimit) || (a.StepY < 0 && a.RotY <= -bounceLimit)) {
		a.StepY = -a.StepY
	}
	return a
}

// UserRotation is the viewer-controlled tilt, in radians. A zero axis is not applied.
type UserRotation struct {
	RotX float32
	RotY float32
}

// FrameContext carries everything that changes between frames. Step takes one and
// returns the next; nothing else holds frame state.
type FrameContext struct {
	Frame      uint64
	Animate    bool
	User       UserRotation
	State      AnimationState
	Projection vgl.Mat4
}

// Rotate tilts the view by dx around X and dy around Y (radians).
func (fc FrameContext) Rotate(dx, dy float32) FrameContext {
	fc.User.RotX += dx
	fc.User.RotY += dy
	return fc
}
