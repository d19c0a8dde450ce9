// Package moire is an interactive moiré sketch built on [Ebitengine].
//
// Overlapping procedural grids (squares, hexagons, stars, radial spokes and
// more) are drawn on a black canvas. In interactive mode each grid is
// shaped by a cluster of widgets; in auto mode a moving grid drifts over a
// stationary one, driven by eased oscillators. Scenes save to a small text
// format that can be rendered offline or converted to vector output.
//
// # Quick start
//
//	scene, err := moire.NewScene(moire.DefaultConfig(), nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	scene.SelectKind(moire.HexagonalGrid)
//	if err := moire.Run(context.Background(), scene, moire.RunConfig{}); err != nil {
//		log.Fatal(err)
//	}
//
// # Grids
//
// [DrawGrid] maps a [GridParams] (kind, origin, rotation, gap, stroke,
// color) to primitives on a [Canvas]. The flood radius is the distance
// from the origin to the farthest canvas corner, so every grid covers the
// canvas whatever its origin. Canvas backends:
//
//   - [Recorder] keeps primitives in memory, for tests.
//   - [EbitenCanvas] batches them into one DrawTriangles32 call per frame.
//   - [ImageCanvas] rasterizes offline with gg.
//   - [SVGCanvas] emits SVG elements.
//
// # Widgets
//
// A [Registry] owns every widget and dispatches pointer input with single
// selection: the first widget (in registration order) hit by a press owns
// the drag until release, and becomes the target of arrow-key nudges.
// Widgets are [DragPoint], [ExtendScalar], [RotationHandle] and [Button].
// A [Composer] builds one [GridInstance] per grid out of ten widgets whose
// frames follow the instance's position and rotation.
//
// # Keys
//
// 1–9, 0, minus, equals, Backspace and Tab spawn grids (see [KindForKey]).
// Arrows nudge the selected widget; A/Q, S/W and D/E shrink and grow the
// nudge steps; Space shows them; Enter hides the widgets and the count.
// F saves the scene text, I also saves a snapshot and vector output, and P
// toggles auto mode.
//
// # Headless use
//
// Inject input with [Scene.InjectClick], [Scene.InjectDrag] and
// [Scene.InjectKey], or drive a session from a JSON script with
// [LoadTestScript]. [ParseScene], [RenderImage] and [RenderSVG] work
// without a window.
//
// [Ebitengine]: https://ebitengine.org
package moire
