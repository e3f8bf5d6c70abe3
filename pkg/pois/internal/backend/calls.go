//go:build cgo && !windows

package backend

/*
#include "pois_abi.h"
*/
import "C"

import (
	"fmt"
	"math"
	"unsafe"
)

// PerformPois runs the engine's end-to-end flow. It has no result.
func (l *Library) PerformPois(p Params) error {
	cp, err := encodeParams(p)
	if err != nil {
		return err
	}
	defer cp.free()

	if err := l.enter(); err != nil {
		return err
	}
	defer callMu.Unlock()

	C.pois_call_perform(l.performPois, cp.keyN, cp.keyG, cp.k, cp.n, cp.d)
	return nil
}

// InitializePoisArtifacts prepares the engine's artifacts and returns how
// many were generated.
func (l *Library) InitializePoisArtifacts(p Params) (int64, error) {
	cp, err := encodeParams(p)
	if err != nil {
		return 0, err
	}
	defer cp.free()

	if err := l.enter(); err != nil {
		return 0, err
	}
	defer callMu.Unlock()

	return int64(C.pois_call_initialize(l.initialize, cp.keyN, cp.keyG, cp.k, cp.n, cp.d)), nil
}

// GetCommits fetches the commits of the first generatedCount files.
func (l *Library) GetCommits(generatedCount int64, p Params) ([]Commit, error) {
	if generatedCount < 0 {
		return nil, fmt.Errorf("%w: negative generated count %d", ErrInvalidParameter, generatedCount)
	}
	cp, err := encodeParams(p)
	if err != nil {
		return nil, err
	}
	defer cp.free()

	if err := l.enter(); err != nil {
		return nil, err
	}
	defer callMu.Unlock()

	ret := C.pois_call_get_commits(l.getCommits, C.int64_t(generatedCount), cp.keyN, cp.keyG, cp.k, cp.n, cp.d)
	ptr := unsafe.Pointer(ret.r0)
	count := int64(ret.r1)
	if count < 0 || count > math.MaxInt32 {
		return nil, fmt.Errorf("%w: engine returned %d commits", ErrOutOfBounds, count)
	}

	owned := &nativeSet{}
	defer l.release(owned)
	owned.addCommits(ptr, int(count))

	return DecodeCommits(ptr, int(count))
}

// GenerateCommitChallenge asks the engine for a challenge over commits on
// behalf of proverID.
func (l *Library) GenerateCommitChallenge(commits []Commit, p Params, proverID string) ([][]int64, error) {
	cp, err := encodeParams(p)
	if err != nil {
		return nil, err
	}
	defer cp.free()

	arr, err := EncodeCommits(commits)
	if err != nil {
		return nil, err
	}
	defer arr.Free()

	id, idLen, err := encodeProverID(proverID)
	if err != nil {
		return nil, err
	}
	defer freeC(id)

	if err := l.enter(); err != nil {
		return nil, err
	}
	defer callMu.Unlock()

	ret := C.pois_call_challenge(l.challenge,
		(*C.pois_commit_c)(arr.Pointer()), C.int64_t(arr.Count()),
		cp.keyN, cp.keyG, cp.k, cp.n, cp.d,
		(*C.char)(id), idLen,
	)
	return l.takeInt64Matrix(unsafe.Pointer(ret.r0), unsafe.Pointer(ret.r1), int(ret.r2))
}

// GetCommitProofAndAccProof answers challenge with commit proofs, one row
// per challenge row, and an accumulator proof.
func (l *Library) GetCommitProofAndAccProof(generatedCount int64, challenge [][]int64, p Params) ([][]CommitProof, *AccProof, error) {
	cp, err := encodeParams(p)
	if err != nil {
		return nil, nil, err
	}
	defer cp.free()

	ch, err := EncodeMatrix(challenge)
	if err != nil {
		return nil, nil, err
	}
	defer ch.Free()

	if err := l.enter(); err != nil {
		return nil, nil, err
	}
	defer callMu.Unlock()

	ret := C.pois_call_prove(l.prove, C.int64_t(generatedCount),
		(**C.int64_t)(ch.Arrays()), (*C.int32_t)(ch.Lengths()), C.int32_t(ch.Count()),
		cp.keyN, cp.keyG, cp.k, cp.n, cp.d,
	)
	arrays, lengths, count := unsafe.Pointer(ret.r0), unsafe.Pointer(ret.r1), int(ret.r2)

	owned := &nativeSet{}
	defer l.release(owned)
	owned.addCommitProofs(arrays, lengths, count)
	owned.addAccProof(ret.r3)

	proofs, err := decodeCommitProofs(arrays, lengths, count)
	if err != nil {
		return nil, nil, err
	}
	acc, err := decodeAccProof(ret.r3)
	if err != nil {
		return nil, nil, fmt.Errorf("acc proof: %w", err)
	}
	return proofs, acc, nil
}

// VerifyCommitAndAccProofs asks the engine to verify the proofs for
// challenge. A non-zero engine status is ErrVerificationFailed.
func (l *Library) VerifyCommitAndAccProofs(challenge [][]int64, p Params, proverID string) error {
	cp, err := encodeParams(p)
	if err != nil {
		return err
	}
	defer cp.free()

	ch, err := EncodeMatrix(challenge)
	if err != nil {
		return err
	}
	defer ch.Free()

	id, idLen, err := encodeProverID(proverID)
	if err != nil {
		return err
	}
	defer freeC(id)

	if err := l.enter(); err != nil {
		return err
	}
	defer callMu.Unlock()

	rc := C.pois_call_verify(l.verify,
		(**C.int64_t)(ch.Arrays()), (*C.int32_t)(ch.Lengths()), C.int32_t(ch.Count()),
		cp.keyN, cp.keyG, cp.k, cp.n, cp.d,
		(*C.char)(id), idLen,
	)
	if rc != 0 {
		return fmt.Errorf("%w: engine status %d", ErrVerificationFailed, int32(rc))
	}
	return nil
}

// takeInt64Matrix copies an engine-owned int64 matrix and releases it.
// Must be called with callMu held.
func (l *Library) takeInt64Matrix(arrays, lengths unsafe.Pointer, count int) ([][]int64, error) {
	owned := &nativeSet{}
	defer l.release(owned)
	owned.addMatrix(arrays, lengths, count)
	return DecodeMatrix[int64](arrays, lengths, count)
}

func encodeProverID(id string) (unsafe.Pointer, C.int32_t, error) {
	if len(id) > math.MaxInt32 {
		return nil, 0, fmt.Errorf("%w: prover id of %d bytes", ErrOutOfBounds, len(id))
	}
	p, err := cBytes([]byte(id))
	if err != nil {
		return nil, 0, err
	}
	return p, C.int32_t(len(id)), nil
}
