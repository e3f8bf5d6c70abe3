package backend

import "errors"

var (
	// ErrNotBuilt reports that the native bindings were not linked into the
	// current binary (Windows build or CGO disabled).
	ErrNotBuilt = errors.New("pois/internal/backend: native bindings not built")

	// ErrLibraryLoad reports that the shared object could not be opened or
	// closed by the dynamic loader.
	ErrLibraryLoad = errors.New("pois: cannot load engine library")

	// ErrLibraryClosed is returned by calls made on a closed library.
	ErrLibraryClosed = errors.New("pois: library closed")

	// ErrSymbolNotFound reports that the engine does not export a required
	// entry point. It is fatal for the library handle.
	ErrSymbolNotFound = errors.New("pois: symbol not found")

	// ErrMalformedInteger reports a big-integer text buffer that is not a
	// NUL-terminated decimal number.
	ErrMalformedInteger = errors.New("pois: malformed integer")

	// ErrOutOfBounds reports a row count or length that cannot describe a
	// valid native allocation.
	ErrOutOfBounds = errors.New("pois: out of bounds")

	// ErrAllocationFailure reports that the C allocator returned NULL.
	ErrAllocationFailure = errors.New("pois: allocation failure")

	// ErrVerificationFailed is returned when the engine rejects a proof.
	ErrVerificationFailed = errors.New("pois: verification failed")

	// ErrInvalidParameter reports a parameter rejected before any native call.
	ErrInvalidParameter = errors.New("pois: invalid parameter")
)
