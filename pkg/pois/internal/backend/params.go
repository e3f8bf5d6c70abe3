//go:build cgo && !windows

package backend

/*
#include <stdlib.h>
#include <string.h>
*/
import "C"

import (
	"fmt"
	"math/big"
	"unsafe"
)

// cParams holds the C form of Params for the duration of one call.
type cParams struct {
	keyN *C.char
	keyG *C.char
	k    C.int64_t
	n    C.int64_t
	d    C.int64_t
}

func encodeParams(p Params) (*cParams, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	keyN, err := cDecimal(p.KeyN)
	if err != nil {
		return nil, err
	}
	keyG, err := cDecimal(p.KeyG)
	if err != nil {
		C.free(unsafe.Pointer(keyN))
		return nil, err
	}
	return &cParams{
		keyN: keyN,
		keyG: keyG,
		k:    C.int64_t(p.K),
		n:    C.int64_t(p.N),
		d:    C.int64_t(p.D),
	}, nil
}

func (c *cParams) free() {
	if c.keyN != nil {
		C.free(unsafe.Pointer(c.keyN))
		c.keyN = nil
	}
	if c.keyG != nil {
		C.free(unsafe.Pointer(c.keyG))
		c.keyG = nil
	}
}

// cDecimal copies the NUL-terminated decimal form of v into C memory.
func cDecimal(v *big.Int) (*C.char, error) {
	buf := FormatDecimal(v)
	p := C.malloc(C.size_t(len(buf)))
	if p == nil {
		return nil, ErrAllocationFailure
	}
	copy(unsafe.Slice((*byte)(p), len(buf)), buf)
	return (*C.char)(p), nil
}

// DecodeCDecimal parses a NUL-terminated decimal integer held in native
// memory. The terminator must appear within maxScan bytes.
func DecodeCDecimal(p unsafe.Pointer, maxScan int) (*big.Int, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil buffer", ErrMalformedInteger)
	}
	if maxScan <= 0 {
		maxScan = MaxDecimalLen
	}
	n := int(C.strnlen((*C.char)(p), C.size_t(maxScan)))
	if n >= maxScan {
		return nil, fmt.Errorf("%w: no terminator within %d bytes", ErrMalformedInteger, maxScan)
	}
	return ParseDecimal(C.GoBytes(p, C.int(n+1)), maxScan)
}

// cBytes copies b into C memory; an empty b yields nil.
func cBytes(b []byte) (unsafe.Pointer, error) {
	if len(b) == 0 {
		return nil, nil
	}
	p := C.malloc(C.size_t(len(b)))
	if p == nil {
		return nil, ErrAllocationFailure
	}
	copy(unsafe.Slice((*byte)(p), len(b)), b)
	return p, nil
}

// freeC releases memory obtained from cBytes or cDecimal.
func freeC(p unsafe.Pointer) {
	if p != nil {
		C.free(p)
	}
}
