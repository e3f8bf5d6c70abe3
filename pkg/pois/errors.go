package pois

import (
	"fmt"

	"github.com/idlespace/pois-go/pkg/pois/internal/backend"
)

var (
	// ErrNotBuilt is returned by Open in builds without cgo, or on Windows.
	ErrNotBuilt = backend.ErrNotBuilt

	// ErrLibraryLoad indicates the dynamic loader could not open the engine.
	ErrLibraryLoad = backend.ErrLibraryLoad

	// ErrLibraryClosed indicates an operation on a closed Library.
	ErrLibraryClosed = backend.ErrLibraryClosed

	// ErrSymbolNotFound indicates the engine lacks a required entry point.
	ErrSymbolNotFound = backend.ErrSymbolNotFound

	// ErrMalformedInteger indicates a big integer that is not a decimal string.
	ErrMalformedInteger = backend.ErrMalformedInteger

	// ErrOutOfBounds indicates a count or length that does not fit the
	// native layout.
	ErrOutOfBounds = backend.ErrOutOfBounds

	// ErrAllocationFailure indicates the C allocator ran out of memory.
	ErrAllocationFailure = backend.ErrAllocationFailure

	// ErrVerificationFailed indicates the engine rejected a proof.
	ErrVerificationFailed = backend.ErrVerificationFailed

	// ErrInvalidParameter indicates an argument rejected before any native call.
	ErrInvalidParameter = backend.ErrInvalidParameter
)

// Error wraps an underlying error with the operation that produced it.
type Error struct {
	Op  string // Operation that failed
	Err error  // Underlying error
}

func (e *Error) Error() string {
	return fmt.Sprintf("pois.%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
