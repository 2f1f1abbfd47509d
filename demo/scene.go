package demo

import (
	"regis3d/display"
	"regis3d/models"
	"regis3d/vgl"
)

// Object is one model in a scene, placed from the animation state.
type Object struct {
	Model     string
	Intensity display.Intensity
	Place     func(a AnimationState) vgl.Mat4
}

// Scene is a stock demo.
type Scene struct {
	ID      ID
	Objects []Object
	Camera  vgl.Vec3
	Initial AnimationState

	// Batch scenes draw all objects into one explicitly opened frame. Otherwise every
	// object render opens and closes its own frame.
	Batch bool
}

// View returns the user tilt followed by the camera offset.
func (s Scene) View(u UserRotation) vgl.Mat4 {
	m := vgl.Mat4Identity()
	if u.RotX != 0 {
		m = m.Then(vgl.Mat4RotateX(u.RotX))
	}
	if u.RotY != 0 {
		m = m.Then(vgl.Mat4RotateY(u.RotY))
	}
	return m.Then(vgl.Mat4Translate(s.Camera))
}

func spin(a AnimationState) vgl.Mat4 {
	return vgl.Mat4RotateZ(a.RotZ).Then(vgl.Mat4RotateY(a.RotY))
}

// gearAt spins a glxgear by k·RotZ+phase, moves it to (x, y) and tilts it with the scene.
func gearAt(k, phaseDeg, x, y float32) func(AnimationState) vgl.Mat4 {
	phase := vgl.Deg(phaseDeg)
	return func(a AnimationState) vgl.Mat4 {
		return vgl.Mat4RotateZ(k*a.RotZ + phase).
			Then(vgl.Mat4Translate(vgl.V3(x, y, 0))).
			Then(vgl.Mat4RotateY(a.RotY))
	}
}

// SceneFor returns the scene for id; out of range IDs are clamped.
func SceneFor(id ID) Scene {
	switch Clamp(int(id)) {
	case IcosDemo:
		return Scene{
			ID: IcosDemo,
			Objects: []Object{{
				Model:     models.Icos,
				Intensity: display.White,
				Place: func(a AnimationState) vgl.Mat4 {
					return spin(a).Then(vgl.Mat4RotateX(vgl.Deg(90)))
				},
			}},
			Camera:  vgl.V3(0, 0, 8),
			Initial: AnimationState{SpinZ: vgl.Deg(0.25), StepY: vgl.Deg(2)},
		}
	case GearDemo:
		return Scene{
			ID:      GearDemo,
			Objects: []Object{{Model: models.Gear, Intensity: display.White, Place: spin}},
			Camera:  vgl.V3(0, 0, 8),
			Initial: AnimationState{SpinZ: vgl.Deg(2), StepY: vgl.Deg(1), Bounce: true},
		}
	case GLXGearsDemo:
		return Scene{
			ID: GLXGearsDemo,
			Objects: []Object{
				{Model: models.GLXGear1, Intensity: display.Red, Place: gearAt(1, 0, -1, 2)},
				{Model: models.GLXGear2, Intensity: display.Green, Place: gearAt(-2, 9, 5.2, 2)},
				{Model: models.GLXGear3, Intensity: display.Blue, Place: gearAt(-2, 30, -1.1, -4.2)},
			},
			Camera: vgl.V3(0, 1, 20),
			Initial: AnimationState{
				RotY:   vgl.Deg(30),
				SpinZ:  vgl.Deg(2),
				StepY:  vgl.Deg(-1),
				Bounce: true,
			},
			Batch: true,
		}
	default:
		return Scene{
			ID:      CubeDemo,
			Objects: []Object{{Model: models.Cube, Intensity: display.White, Place: spin}},
			Camera:  vgl.V3(0, 0, 10),
			Initial: AnimationState{SpinZ: vgl.Deg(2), StepY: vgl.Deg(0.5)},
		}
	}
}
