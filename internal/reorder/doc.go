package reorder

// Package reorder implements long-press drag-to-reorder as an explicit state
// machine: Idle -> Dragging -> Settling -> Idle. Each slot change is written
// to the store immediately, so the store and the screen are never more than
// one swap apart.
