// Package backend hosts the thin cgo layer that links the Go API to a PoIS
// engine compiled as a C-ABI shared library. The real implementation lives
// behind build tags so that the rest of the repository can compile without
// cgo.
//
// Every buffer that crosses the boundary has exactly one owner. Inputs are
// copied into C heap memory that Go frees once the native call returns.
// Outputs are copied into Go memory and then handed back to the engine's
// FreeArray entry point; an engine without FreeArray leaks them.
package backend
