package backend

import (
	"fmt"
	"math/big"
)

// Entry points exported by the engine.
const (
	SymPerformPois               = "PerformPois"
	SymInitializePoisArtifacts   = "InitializePoisArtifacts"
	SymGetCommits                = "GetCommits"
	SymGenerateCommitChallenge   = "GenerateCommitChallenge"
	SymGetCommitProofAndAccProof = "GetCommitProofAndAccProof"
	SymVerifyCommitAndAccProofs  = "VerifyCommitAndAccProofs"

	// SymFreeArray is optional. Without it native results are leaked.
	SymFreeArray = "FreeArray"
)

// RequiredSymbols lists the entry points Open resolves before it returns.
var RequiredSymbols = []string{
	SymPerformPois,
	SymInitializePoisArtifacts,
	SymGetCommits,
	SymGenerateCommitChallenge,
	SymGetCommitProofAndAccProof,
	SymVerifyCommitAndAccProofs,
}

// MockLibraryPath selects the in-process mock engine instead of a shared
// object on disk.
const MockLibraryPath = "builtin:pois-mock"

// MaxDecimalLen bounds the scan for the NUL terminator of a decimal buffer.
// It leaves room for moduli well beyond 16384 bits.
const MaxDecimalLen = 8192

// Elem is the set of row element types a Matrix can carry.
type Elem interface {
	~uint8 | ~int32 | ~int64
}

// Params mirrors the common parameters every entry point takes.
type Params struct {
	KeyN *big.Int
	KeyG *big.Int
	K    int64
	N    int64
	D    int64
}

// Validate rejects parameters the engine cannot use.
func (p Params) Validate() error {
	if p.KeyN == nil || p.KeyN.Sign() <= 0 {
		return fmt.Errorf("%w: key n must be positive", ErrInvalidParameter)
	}
	if p.KeyG == nil || p.KeyG.Sign() <= 0 {
		return fmt.Errorf("%w: key g must be positive", ErrInvalidParameter)
	}
	if p.K <= 0 || p.N <= 0 || p.D <= 0 {
		return fmt.Errorf("%w: k, n and d must be positive (k=%d n=%d d=%d)", ErrInvalidParameter, p.K, p.N, p.D)
	}
	return nil
}

// Commit pairs a file index with that file's Merkle roots.
type Commit struct {
	FileIndex int64
	Roots     [][]byte
}

// RootBytes is the total size of all roots.
func (c Commit) RootBytes() uint64 {
	var n uint64
	for _, r := range c.Roots {
		n += uint64(len(r))
	}
	return n
}

// MhtProof is a Merkle path for a single node label.
type MhtProof struct {
	Index int32
	Label []byte
	Paths [][]byte
	Locs  []byte
}

// CommitProof proves one challenged node together with its parents.
// Node is nil when the engine returned no node proof.
type CommitProof struct {
	Node    *MhtProof
	Parents []MhtProof
}

// AccProof is the accumulator part of a proof.
type AccProof struct {
	Indexes []int64
	Labels  [][]byte
	AccPath [][]byte
}
