package pois

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateRSAKey(t *testing.T) {
	n, g, err := GenerateRSAKey(MinKeyBits)
	require.NoError(t, err)
	require.Equal(t, MinKeyBits, n.BitLen())

	require.Equal(t, 1, g.Sign())
	require.Equal(t, -1, g.Cmp(n))
	require.Zero(t, new(big.Int).GCD(nil, nil, g, n).Cmp(big.NewInt(1)), "g must be a unit mod n")
}

func TestGenerateRSAKeyRejectsSmallModulus(t *testing.T) {
	_, _, err := GenerateRSAKey(512)
	require.ErrorIs(t, err, ErrInvalidParameter)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "GenerateRSAKey", perr.Op)
}

func TestNewRandomCommonParam(t *testing.T) {
	p, err := NewRandomCommonParam(MinKeyBits, 7, 1024, 64)
	require.NoError(t, err)
	require.NoError(t, p.Validate())
	require.Equal(t, int64(7), p.K)

	_, err = NewRandomCommonParam(MinKeyBits, 0, 1024, 64)
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestNewCommonParam(t *testing.T) {
	p, err := NewCommonParam("3233", "4", 7, 1024, 64)
	require.NoError(t, err)
	require.Equal(t, "3233", p.KeyN.String())
	require.Equal(t, "4", p.KeyG.String())

	_, err = NewCommonParam("32a3", "4", 7, 1024, 64)
	require.ErrorIs(t, err, ErrMalformedInteger)

	_, err = NewCommonParam("3233\x00garbage", "4", 7, 1024, 64)
	require.ErrorIs(t, err, ErrMalformedInteger)

	_, err = NewCommonParam("3233", "4", 7, 0, 64)
	require.ErrorIs(t, err, ErrInvalidParameter)
}
