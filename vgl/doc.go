// Package vgl is the vector pipeline behind the regis3d demos.
//
// It turns model vertices into pen-up/pen-down draw commands for a vector display:
//
//	Vertex source → Transform → Perspective divide → Viewport mapping → Display sink.
//
// Everything is float32 and allocation-free per vertex, so the same code runs on a host and
// on a microcontroller where the model lives in flash.
//
// Matrices are column-major (m[col*4+row]) and transform column vectors. Transforms are
// chained with Compose / Then, which read left to right in application order:
//
//	combined := object.Then(view).Then(projection)
//
// No clipping is done unless Renderer.Clip asks for it; scenes are tuned for that.
package vgl
