//go:build cgo && !windows

package backend

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestDecodeCDecimal(t *testing.T) {
	p, err := cBytes([]byte("123456789012345678901234567890\x00"))
	require.NoError(t, err)
	defer freeC(p)

	v, err := DecodeCDecimal(p, 0)
	require.NoError(t, err)
	require.Equal(t, "123456789012345678901234567890", v.String())
}

func TestDecodeCDecimalRejects(t *testing.T) {
	_, err := DecodeCDecimal(nil, 0)
	require.ErrorIs(t, err, ErrMalformedInteger)

	bad, err := cBytes([]byte("12a45\x00"))
	require.NoError(t, err)
	defer freeC(bad)
	_, err = DecodeCDecimal(bad, 0)
	require.ErrorIs(t, err, ErrMalformedInteger)

	// strnlen stops at maxScan, so the unterminated buffer is never over-read.
	unterminated, err := cBytes([]byte("1234"))
	require.NoError(t, err)
	defer freeC(unterminated)
	_, err = DecodeCDecimal(unterminated, 4)
	require.ErrorIs(t, err, ErrMalformedInteger)
}

func TestEncodeParams(t *testing.T) {
	cp, err := encodeParams(testParams())
	require.NoError(t, err)
	defer cp.free()

	n, err := DecodeCDecimal(unsafe.Pointer(cp.keyN), 0)
	require.NoError(t, err)
	require.Equal(t, testParams().KeyN.String(), n.String())
	require.EqualValues(t, 7, cp.k)

	cp.free()
	require.Nil(t, cp.keyN)
	require.Nil(t, cp.keyG)

	_, err = encodeParams(Params{})
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestCBytesEmpty(t *testing.T) {
	p, err := cBytes(nil)
	require.NoError(t, err)
	require.True(t, p == nil)
	freeC(p)
}
