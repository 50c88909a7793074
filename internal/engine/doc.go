// Package engine implements the grid state engine for the tile merging
// puzzle: the tile model, directional move resolution, spawning, terminal
// detection, power-ups and bounded undo history.
//
// Every operation is synchronous and free of shared state. Functions that
// take a tile slice never mutate it; they return a new slice. Callers are
// responsible for serializing access to a Session.
package engine
