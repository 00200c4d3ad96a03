// Package wobble deforms still images: mark elliptical jiggle regions on an
// image and drive a soft, spring-damped wobble of those regions from motion
// input: device tilt, pointer drags, presses, or scripted patterns.
//
// Each region carries an independent 2D spring-damper whose parameters are
// randomized per instance, so overlapping regions never move in lockstep.
// Region displacements are blended over a full-image vertex grid by a smooth
// elliptical influence field, localized press indentations are added on top,
// and the result is rendered as a piecewise-affine warp: one affine
// transform per grid triangle, with per-triangle expansion to close
// hairline seams.
//
// # Quick start
//
//	sim := wobble.NewSimulator(wobble.DefaultParams(), nil)
//	sim.SetAspect(float64(imgW) / float64(imgH))
//	sim.AddRegion(wobble.Ellipse{X: 0.3, Y: 0.3, Width: 0.4, Height: 0.4})
//
//	// Once per frame (nominal 60 Hz):
//	sim.Step(force, "")
//	renderer.Draw(screen, sim, imageRect)
//
// Forces are whatever the input layer produces: tilt deltas, drag deltas,
// or a [Sway] pattern. Presses are tracked by pointer id:
//
//	sim.StartPress(0, nx, ny)   // mouse down
//	sim.UpdatePressPosition(0, nx, ny)
//	sim.EndPress(0)             // recoil impulse into nearby regions
//
// # Simulation model
//
// The simulation is frame-driven and single-writer: one Step per display
// refresh, all mutation from the step's goroutine. Other goroutines hand
// events off with the Simulator's Enqueue methods. One Step is one logical
// frame; there is no wall-clock coupling.
//
// # Rendering
//
// [Renderer] draws through Ebitengine's DrawTriangles. The raster
// subpackage runs the identical warp on the CPU via golang.org/x/image,
// for headless use and for warp correctness tests.
package wobble
