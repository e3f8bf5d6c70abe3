package pois

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"io"
	"math/big"
)

// DefaultKeyBits is the modulus size used when none is given.
const DefaultKeyBits = 2048

// MinKeyBits is the smallest modulus GenerateRSAKey accepts.
const MinKeyBits = 1024

var one = big.NewInt(1)

// GenerateRSAKey returns an RSA modulus n of the given size and a generator
// g = f² mod n for a random f coprime to n. The factors of n are discarded.
func GenerateRSAKey(bits int) (n, g *big.Int, err error) {
	return generateRSAKey(rand.Reader, bits)
}

func generateRSAKey(random io.Reader, bits int) (*big.Int, *big.Int, error) {
	if bits < MinKeyBits {
		return nil, nil, wrapError("GenerateRSAKey", fmt.Errorf("%w: key size %d below %d bits", ErrInvalidParameter, bits, MinKeyBits))
	}
	key, err := rsa.GenerateKey(random, bits)
	if err != nil {
		return nil, nil, wrapError("GenerateRSAKey", err)
	}
	n := new(big.Int).Set(key.N)

	gcd := new(big.Int)
	for {
		f, err := rand.Int(random, n)
		if err != nil {
			return nil, nil, wrapError("GenerateRSAKey", err)
		}
		if f.Cmp(one) <= 0 {
			continue
		}
		if gcd.GCD(nil, nil, f, n).Cmp(one) == 0 {
			return n, new(big.Int).Exp(f, big.NewInt(2), n), nil
		}
	}
}

// NewRandomCommonParam generates a fresh key of the given size and bundles it
// with k, n and d.
func NewRandomCommonParam(bits int, k, n, d int64) (CommonParam, error) {
	keyN, keyG, err := GenerateRSAKey(bits)
	if err != nil {
		return CommonParam{}, err
	}
	p := CommonParam{KeyN: keyN, KeyG: keyG, K: k, N: n, D: d}
	if err := p.Validate(); err != nil {
		return CommonParam{}, wrapError("NewRandomCommonParam", err)
	}
	return p, nil
}
