// Package poistest provides an in-process engine for tests and examples.
//
// The engine is a deterministic mock compiled into the bindings. It follows
// the same ownership contract as a real engine, exports FreeArray, and counts
// its live allocations so tests can assert that nothing leaks.
//
// # Usage
//
//	func TestFlow(t *testing.T) {
//	    lib := poistest.Open(t)
//	    p := poistest.Params()
//
//	    commits, err := lib.GetCommits(ctx, 3, p)
//	    ...
//	}
//
// The mock needs cgo. Builds without it return pois.ErrNotBuilt from Open;
// poistest.Open skips the test in that case.
package poistest
