//go:build cgo && !windows

package backend

/*
#include <stdlib.h>
*/
import "C"

import (
	"fmt"
	"math"
	"unsafe"
)

// Matrix is a ragged matrix laid out in C memory as a table of row pointers,
// a table of int32 row lengths and a row count. Empty rows are a NULL
// pointer with length 0. All memory belongs to Go and is released by Free.
type Matrix[T Elem] struct {
	arrays  unsafe.Pointer // T**
	lengths unsafe.Pointer // int32_t*
	count   int
}

// EncodeMatrix copies rows into freshly allocated C buffers, one exact-size
// buffer per non-empty row. A zero-row input encodes as (nil, nil, 0).
//
// The returned Matrix must stay alive until the native call that reads it has
// returned, and must then be released with Free.
func EncodeMatrix[T Elem](rows [][]T) (*Matrix[T], error) {
	m := &Matrix[T]{}
	if len(rows) == 0 {
		return m, nil
	}
	if len(rows) > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %d rows", ErrOutOfBounds, len(rows))
	}

	arrays := C.calloc(C.size_t(len(rows)), C.size_t(unsafe.Sizeof(uintptr(0))))
	if arrays == nil {
		return nil, ErrAllocationFailure
	}
	lengths := C.calloc(C.size_t(len(rows)), C.size_t(unsafe.Sizeof(int32(0))))
	if lengths == nil {
		C.free(arrays)
		return nil, ErrAllocationFailure
	}
	m.arrays, m.lengths, m.count = arrays, lengths, len(rows)

	elemSize := C.size_t(unsafe.Sizeof(*new(T)))
	rowPtrs := unsafe.Slice((*unsafe.Pointer)(arrays), len(rows))
	rowLens := unsafe.Slice((*int32)(lengths), len(rows))
	for i, row := range rows {
		if len(row) > math.MaxInt32 {
			m.Free()
			return nil, fmt.Errorf("%w: row %d has %d elements", ErrOutOfBounds, i, len(row))
		}
		rowLens[i] = int32(len(row))
		if len(row) == 0 {
			continue
		}
		buf := C.malloc(C.size_t(len(row)) * elemSize)
		if buf == nil {
			m.Free()
			return nil, ErrAllocationFailure
		}
		copy(unsafe.Slice((*T)(buf), len(row)), row)
		rowPtrs[i] = buf
	}
	return m, nil
}

// Arrays returns the row pointer table (T**), nil for a zero-row matrix.
func (m *Matrix[T]) Arrays() unsafe.Pointer { return m.arrays }

// Lengths returns the row length table (int32_t*), nil for a zero-row matrix.
func (m *Matrix[T]) Lengths() unsafe.Pointer { return m.lengths }

// Count returns the number of rows.
func (m *Matrix[T]) Count() int { return m.count }

// Free releases every C buffer owned by m. It is safe to call more than once.
func (m *Matrix[T]) Free() {
	if m == nil {
		return
	}
	if m.arrays != nil {
		for _, p := range unsafe.Slice((*unsafe.Pointer)(m.arrays), m.count) {
			if p != nil {
				C.free(p)
			}
		}
		C.free(m.arrays)
	}
	if m.lengths != nil {
		C.free(m.lengths)
	}
	m.arrays, m.lengths, m.count = nil, nil, 0
}

// DecodeMatrix copies a native ragged matrix into Go memory. Each row is an
// independent copy of exactly lengths[i] elements; nothing in the result
// points into native memory.
//
// Declared lengths are trusted: a length larger than the real allocation
// cannot be detected here and results in an over-read. Structurally invalid
// input (negative sizes, NULL tables or rows with a positive size) fails with
// ErrOutOfBounds.
func DecodeMatrix[T Elem](arrays, lengths unsafe.Pointer, count int) ([][]T, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative row count %d", ErrOutOfBounds, count)
	}
	if count == 0 {
		return [][]T{}, nil
	}
	if arrays == nil || lengths == nil {
		return nil, fmt.Errorf("%w: %d rows without row tables", ErrOutOfBounds, count)
	}

	rowPtrs := unsafe.Slice((*unsafe.Pointer)(arrays), count)
	rowLens := unsafe.Slice((*int32)(lengths), count)
	out := make([][]T, count)
	for i := range out {
		row, err := DecodeVector[T](rowPtrs[i], int(rowLens[i]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = row
	}
	return out, nil
}

// DecodeVector copies n elements starting at p into a new Go slice. A NULL
// pointer is only valid together with n == 0.
func DecodeVector[T Elem](p unsafe.Pointer, n int) ([]T, error) {
	switch {
	case n < 0:
		return nil, fmt.Errorf("%w: negative length %d", ErrOutOfBounds, n)
	case n == 0:
		return []T{}, nil
	case p == nil:
		return nil, fmt.Errorf("%w: nil buffer with length %d", ErrOutOfBounds, n)
	}
	out := make([]T, n)
	copy(out, unsafe.Slice((*T)(p), n))
	return out, nil
}

// nativeSet collects engine-owned pointers so they can be handed back to the
// engine in one pass after decoding.
type nativeSet struct {
	ptrs []unsafe.Pointer
}

func (s *nativeSet) add(p unsafe.Pointer) {
	if p != nil {
		s.ptrs = append(s.ptrs, p)
	}
}

// addMatrix records the row buffers and both tables of a native matrix.
// Rows are only walked when the shape is sane.
func (s *nativeSet) addMatrix(arrays, lengths unsafe.Pointer, count int) {
	if arrays != nil && count > 0 {
		for _, p := range unsafe.Slice((*unsafe.Pointer)(arrays), count) {
			s.add(p)
		}
	}
	s.add(arrays)
	s.add(lengths)
}
