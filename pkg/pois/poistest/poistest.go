package poistest

import (
	"errors"
	"log/slog"
	"math/big"
	"testing"

	"github.com/idlespace/pois-go/pkg/pois"
	"github.com/idlespace/pois-go/pkg/pois/internal/backend"
)

// LibraryPath selects the in-process mock engine when passed as
// pois.Config.LibraryPath.
const LibraryPath = pois.MockLibraryPath

// Open loads the mock engine and closes it when tb finishes. The test is
// skipped when the bindings were built without cgo.
func Open(tb testing.TB) *pois.Library {
	tb.Helper()
	return OpenWithLogger(tb, nil)
}

// OpenWithLogger is Open with a caller supplied logger.
func OpenWithLogger(tb testing.TB, logger *slog.Logger) *pois.Library {
	tb.Helper()
	lib, err := pois.Open(pois.Config{LibraryPath: LibraryPath, Logger: logger})
	if errors.Is(err, pois.ErrNotBuilt) {
		tb.Skip("pois bindings built without cgo")
	}
	if err != nil {
		tb.Fatalf("open mock engine: %v", err)
	}
	tb.Cleanup(func() { _ = lib.Close() })
	return lib
}

// Params returns small, valid common parameters. The key is not a real RSA
// modulus; the mock engine never looks at it.
func Params() pois.CommonParam {
	return pois.CommonParam{
		KeyN: big.NewInt(3233),
		KeyG: big.NewInt(4),
		K:    7,
		N:    1024,
		D:    64,
	}
}

// LiveAllocations reports the number of mock engine buffers currently
// outstanding.
func LiveAllocations() int64 {
	return backend.MockLiveAllocations()
}

// PerformCount reports how many times the mock's PerformPois has run.
func PerformCount() int64 {
	return backend.MockPerformCount()
}

// RequireNoLeak fails tb if the mock holds more buffers when tb finishes than
// it did when RequireNoLeak was called.
func RequireNoLeak(tb testing.TB) {
	tb.Helper()
	before := LiveAllocations()
	tb.Cleanup(func() {
		if after := LiveAllocations(); after != before {
			tb.Errorf("mock engine leaked %d buffers", after-before)
		}
	})
}
