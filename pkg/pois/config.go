package pois

import (
	"log/slog"

	"github.com/idlespace/pois-go/pkg/pois/internal/backend"
)

// DefaultLibraryPath is where the engine is looked up when Config.LibraryPath
// is empty. Relative paths are resolved by the dynamic loader.
const DefaultLibraryPath = "cgo/main.so"

// MockLibraryPath selects the deterministic in-process engine compiled into
// the bindings. It is meant for tests and examples.
const MockLibraryPath = backend.MockLibraryPath

// Config controls how Open loads the engine.
type Config struct {
	// LibraryPath locates the engine shared object. Leaving it empty selects
	// DefaultLibraryPath.
	LibraryPath string

	// Logger receives call tracing. Nil binds to slog.Default().
	Logger *slog.Logger
}

func (c Config) libraryPath() string {
	if c.LibraryPath == "" {
		return DefaultLibraryPath
	}
	return c.LibraryPath
}
