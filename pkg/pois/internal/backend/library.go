//go:build cgo && !windows

package backend

/*
#cgo LDFLAGS: -ldl
#include <dlfcn.h>
#include <stdlib.h>
#include "pois_abi.h"

static void* pois_dlopen(const char* path) {
	return dlopen(path, RTLD_NOW | RTLD_LOCAL);
}

static void* pois_dlsym(void* handle, const char* name) {
	dlerror();
	return dlsym(handle, name);
}

static const char* pois_dlerror(void) {
	const char* msg = dlerror();
	return msg == NULL ? "unknown dynamic loader error" : msg;
}
*/
import "C"

import (
	"fmt"
	"sync"
	"unsafe"
)

// callMu serialises every call into an engine. The engine is not known to be
// reentrant; concurrent calls are expected to corrupt its state.
var callMu sync.Mutex

// Library is an opened engine: a loader handle plus the resolved entry
// points. It caches the handle only, never data.
type Library struct {
	path   string
	handle unsafe.Pointer // nil for the in-process mock
	closed bool

	performPois unsafe.Pointer
	initialize  unsafe.Pointer
	getCommits  unsafe.Pointer
	challenge   unsafe.Pointer
	prove       unsafe.Pointer
	verify      unsafe.Pointer
	freeArray   unsafe.Pointer
}

// Open loads the shared object at path and resolves every entry point in
// RequiredSymbols. MockLibraryPath selects the in-process mock engine.
func Open(path string) (*Library, error) {
	if path == MockLibraryPath {
		return openMock()
	}

	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))

	callMu.Lock()
	defer callMu.Unlock()

	handle := C.pois_dlopen(cPath)
	if handle == nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrLibraryLoad, path, C.GoString(C.pois_dlerror()))
	}

	lib, err := bind(path, handle, func(name string) unsafe.Pointer {
		cName := C.CString(name)
		defer C.free(unsafe.Pointer(cName))
		return C.pois_dlsym(handle, cName)
	})
	if err != nil {
		C.dlclose(handle)
		return nil, err
	}
	return lib, nil
}

// bind resolves the entry points through lookup.
func bind(path string, handle unsafe.Pointer, lookup func(string) unsafe.Pointer) (*Library, error) {
	lib := &Library{path: path, handle: handle}
	targets := []struct {
		name string
		dst  *unsafe.Pointer
	}{
		{SymPerformPois, &lib.performPois},
		{SymInitializePoisArtifacts, &lib.initialize},
		{SymGetCommits, &lib.getCommits},
		{SymGenerateCommitChallenge, &lib.challenge},
		{SymGetCommitProofAndAccProof, &lib.prove},
		{SymVerifyCommitAndAccProofs, &lib.verify},
	}
	for _, t := range targets {
		p := lookup(t.name)
		if p == nil {
			return nil, fmt.Errorf("%w: %s in %s", ErrSymbolNotFound, t.name, path)
		}
		*t.dst = p
	}
	lib.freeArray = lookup(SymFreeArray)
	return lib, nil
}

// Path returns the path the library was opened from.
func (l *Library) Path() string { return l.path }

// CanFree reports whether the engine exports FreeArray. Without it, every
// buffer returned by the engine is leaked.
func (l *Library) CanFree() bool { return l.freeArray != nil }

// Close waits for any in-flight call and unloads the library.
func (l *Library) Close() error {
	callMu.Lock()
	defer callMu.Unlock()

	if l.closed {
		return ErrLibraryClosed
	}
	l.closed = true
	if l.handle != nil {
		h := l.handle
		l.handle = nil
		if C.dlclose(h) != 0 {
			return fmt.Errorf("%w: dlclose %s: %s", ErrLibraryLoad, l.path, C.GoString(C.pois_dlerror()))
		}
	}
	return nil
}

// enter takes callMu for a native call. The caller must unlock it.
func (l *Library) enter() error {
	callMu.Lock()
	if l.closed {
		callMu.Unlock()
		return ErrLibraryClosed
	}
	return nil
}

// release hands engine-owned pointers back through FreeArray. Must be called
// with callMu held.
func (l *Library) release(s *nativeSet) {
	if l.freeArray == nil {
		return
	}
	for _, p := range s.ptrs {
		C.pois_call_free(l.freeArray, p)
	}
	s.ptrs = nil
}
