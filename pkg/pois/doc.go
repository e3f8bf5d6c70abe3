// Package pois drives a Proof-of-Idle-Space engine that ships as a C-ABI
// shared library.
//
// The engine owns every PoIS computation: commitment generation, Merkle
// proofs, challenge derivation and accumulator verification. This package
// only moves data across the boundary. Inputs are copied into C memory for
// the duration of one call; results are copied back into Go memory and the
// native buffers are handed back to the engine's FreeArray entry point.
//
// Native calls are serialised process-wide. Operations accept a context, but
// the engine cannot be interrupted: when the context ends first the
// operation returns ctx.Err() and the native call finishes in the
// background.
//
// Builds without cgo, and Windows builds, compile against stubs and return
// ErrNotBuilt from Open.
package pois
