package pois

import (
	"math/big"

	"github.com/idlespace/pois-go/pkg/pois/internal/backend"
)

// Type aliases expose backend types through the public API.
type (
	// Commit pairs a file index with that file's Merkle roots.
	Commit = backend.Commit

	// MhtProof is a Merkle path for one node label.
	MhtProof = backend.MhtProof

	// CommitProof proves a challenged node and its parents. Node may be nil.
	CommitProof = backend.CommitProof

	// AccProof is the accumulator part of a proof.
	AccProof = backend.AccProof

	// CommonParam carries the RSA key components and the k, n, d parameters
	// shared by every entry point.
	CommonParam = backend.Params
)

// Challenge is a ragged matrix of challenge values, one row per challenged
// file.
type Challenge [][]int64

// ProverID identifies the prover to the engine. It is passed as raw bytes
// with an explicit length.
type ProverID string

// NewCommonParam parses decimal key components and bundles them with k, n
// and d.
func NewCommonParam(keyN, keyG string, k, n, d int64) (CommonParam, error) {
	kn, err := ParseDecimal(keyN)
	if err != nil {
		return CommonParam{}, wrapError("NewCommonParam", err)
	}
	kg, err := ParseDecimal(keyG)
	if err != nil {
		return CommonParam{}, wrapError("NewCommonParam", err)
	}
	p := CommonParam{KeyN: kn, KeyG: kg, K: k, N: n, D: d}
	if err := p.Validate(); err != nil {
		return CommonParam{}, wrapError("NewCommonParam", err)
	}
	return p, nil
}

// ParseDecimal parses a base-10 integer with an optional sign. Any other
// byte fails with ErrMalformedInteger.
func ParseDecimal(s string) (*big.Int, error) {
	return backend.ParseDecimalString(s)
}
