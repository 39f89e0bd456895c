// Package view builds the scene fragments for one graph node or edge.
//
// A [NodeView] is a filled circle with a border ring and an icon, plus a
// label (text on a padded background) kept in a separate container so
// labels draw above every node. An [EdgeView] is a single line sprite.
// All textures are white and colored through sprite tint, so restyling a
// view with new colors never rasterizes anything.
//
// Each primary container lives in a [Slot]: promoting it to a front layer
// leaves a placeholder at its index in the base layer, and demoting puts
// it back at that index.
package view

import "github.com/gogpu/graphview/scene"

// PointerEvent is a pointer event on a view's hit area.
type PointerEvent struct {
	Type    scene.PointerType
	Key     string
	Pointer scene.PointerEvent
}

// forwarded lists the hit-area events views re-emit.
var forwarded = [...]scene.PointerType{
	scene.PointerOver,
	scene.PointerOut,
	scene.PointerDown,
	scene.PointerUp,
	scene.PointerMove,
}
