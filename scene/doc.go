// Package scene is a small retained-mode 2D scene graph rendered with gg.
//
// It provides exactly what the graph view needs from a rendering
// collaborator:
//
//   - A [Node] tree of containers, sprites and graphics fragments with
//     local transforms (position, rotation, scale, anchor), visibility,
//     alpha and tint.
//   - [Texture] values holding white, premultiplied pixels at a device
//     pixel ratio. Color is applied at draw time through the sprite tint,
//     so one texture serves every color.
//   - [GenerateTexture], which rasterizes a fragment's region into a new
//     texture.
//   - Hit shapes and an [Interaction] manager that turns device pointer
//     events into enter/leave/down/up/move callbacks on nodes.
//   - A pan/zoom [Viewport] with drag, pinch, wheel, inertia and zoom
//     clamping.
//   - [Render], which draws a tree onto a gg.Context.
//
// # Example
//
//	root := scene.NewContainer("root")
//	dot := scene.NewSprite("dot", tex)
//	dot.X, dot.Y = 100, 100
//	dot.Tint = 0xff0000
//	root.AddChild(dot)
//
//	dc := gg.NewContext(800, 600)
//	scene.Render(dc, root, 1)
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent use. A scene belongs to
// the goroutine running its event loop.
package scene
