//go:build cgo && !windows

package backend

/*
#include <stdlib.h>
#include "pois_abi.h"
*/
import "C"

import (
	"fmt"
	"math"
	"unsafe"
)

// CommitArray is a contiguous pois_commit_c array in C memory together with
// the matrices its roots fields point at. All memory belongs to Go.
type CommitArray struct {
	ptr   unsafe.Pointer // pois_commit_c*
	roots []*Matrix[uint8]
	count int
}

// EncodeCommits lays commits out as a flat array of pois_commit_c records,
// each record's roots encoded with EncodeMatrix.
func EncodeCommits(commits []Commit) (*CommitArray, error) {
	a := &CommitArray{}
	if len(commits) == 0 {
		return a, nil
	}
	if len(commits) > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %d commits", ErrOutOfBounds, len(commits))
	}

	ptr := C.calloc(C.size_t(len(commits)), C.size_t(C.sizeof_pois_commit_c))
	if ptr == nil {
		return nil, ErrAllocationFailure
	}
	a.ptr, a.count = ptr, len(commits)
	a.roots = make([]*Matrix[uint8], 0, len(commits))

	records := unsafe.Slice((*C.pois_commit_c)(ptr), len(commits))
	for i, c := range commits {
		m, err := EncodeMatrix(c.Roots)
		if err != nil {
			a.Free()
			return nil, fmt.Errorf("commit %d: %w", i, err)
		}
		a.roots = append(a.roots, m)

		records[i].file_index = C.int64_t(c.FileIndex)
		records[i].roots = (**C.uint8_t)(m.Arrays())
		records[i].roots_length = C.int32_t(m.Count())
		records[i].sub_roots_lengths = (*C.int32_t)(m.Lengths())
	}
	return a, nil
}

// Pointer returns the pois_commit_c array, nil when empty.
func (a *CommitArray) Pointer() unsafe.Pointer { return a.ptr }

// Count returns the number of records.
func (a *CommitArray) Count() int { return a.count }

// Free releases the record array and every roots matrix. It is safe to call
// more than once.
func (a *CommitArray) Free() {
	if a == nil {
		return
	}
	for _, m := range a.roots {
		m.Free()
	}
	a.roots = nil
	if a.ptr != nil {
		C.free(a.ptr)
	}
	a.ptr, a.count = nil, 0
}

// DecodeCommits copies count pois_commit_c records starting at ptr into Go
// memory.
func DecodeCommits(ptr unsafe.Pointer, count int) ([]Commit, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative commit count %d", ErrOutOfBounds, count)
	}
	if count == 0 {
		return []Commit{}, nil
	}
	if ptr == nil {
		return nil, fmt.Errorf("%w: %d commits without a record array", ErrOutOfBounds, count)
	}

	records := unsafe.Slice((*C.pois_commit_c)(ptr), count)
	out := make([]Commit, count)
	for i := range records {
		roots, err := DecodeMatrix[uint8](
			unsafe.Pointer(records[i].roots),
			unsafe.Pointer(records[i].sub_roots_lengths),
			int(records[i].roots_length),
		)
		if err != nil {
			return nil, fmt.Errorf("commit %d: %w", i, err)
		}
		out[i] = Commit{FileIndex: int64(records[i].file_index), Roots: roots}
	}
	return out, nil
}

// addCommits records every engine allocation reachable from a commit array.
func (s *nativeSet) addCommits(ptr unsafe.Pointer, count int) {
	if ptr != nil && count > 0 {
		for _, r := range unsafe.Slice((*C.pois_commit_c)(ptr), count) {
			s.addMatrix(unsafe.Pointer(r.roots), unsafe.Pointer(r.sub_roots_lengths), int(r.roots_length))
		}
	}
	s.add(ptr)
}
