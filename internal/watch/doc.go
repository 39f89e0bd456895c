// Package watch reloads a graph file when it changes on disk.
//
// A [FileWatcher] reports debounced changes of a single file. [Sync]
// replays the difference between the reloaded graph and the live one as
// ordinary graph mutations, so a view bound to the live graph updates only
// what changed.
package watch
