package pois

import (
	"context"

	"github.com/idlespace/pois-go/pkg/pois/internal/backend"
	"github.com/idlespace/pois-go/pkg/pois/logging"
)

// Library is an opened engine. It caches the loader handle and the resolved
// entry points, nothing else. A Library is safe for concurrent use; calls
// into the engine run one at a time.
type Library struct {
	cfg Config
	lib *backend.Library
	log logging.Logger
}

// Open loads the engine named by cfg.LibraryPath and resolves every entry
// point. A missing entry point fails with ErrSymbolNotFound and leaves
// nothing loaded.
func Open(cfg Config) (*Library, error) {
	path := cfg.libraryPath()
	log := logging.New(cfg.Logger).With("library", path)

	lib, err := backend.Open(path)
	if err != nil {
		return nil, wrapError("Open", err)
	}
	if !lib.CanFree() {
		log.Warn(context.Background(), "engine does not export FreeArray, returned buffers will leak")
	}
	log.Debug(context.Background(), "engine loaded")
	return &Library{cfg: cfg, lib: lib, log: log}, nil
}

// Path returns the path the engine was loaded from.
func (l *Library) Path() string {
	return l.cfg.libraryPath()
}

// Close waits for any in-flight engine call and unloads the library. Calling
// it twice returns ErrLibraryClosed.
func (l *Library) Close() error {
	if l == nil {
		return nil
	}
	return wrapError("Close", l.lib.Close())
}
