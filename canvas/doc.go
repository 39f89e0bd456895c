// Package canvas provides the display elements a graph view draws into.
//
// [Offscreen] renders into memory and encodes frames as PNG; it needs no
// GPU and backs the command-line renderer and the preview server.
// [Window] wraps a gg canvas presented through a gpucontext device, for
// hosts running a gogpu window loop.
//
// Both count frames: each MarkDirty call marks a new frame and the canvas
// stays dirty until it is encoded or presented.
package canvas
