//go:build cgo && !windows

package backend

/*
#include "pois_abi.h"
*/
import "C"

import (
	"fmt"
	"unsafe"
)

func decodeMhtProof(p *C.pois_mht_proof_c) (MhtProof, error) {
	label, err := DecodeVector[uint8](unsafe.Pointer(p.label), int(p.label_length))
	if err != nil {
		return MhtProof{}, fmt.Errorf("label: %w", err)
	}
	paths, err := DecodeMatrix[uint8](unsafe.Pointer(p.paths), unsafe.Pointer(p.path_lengths), int(p.paths_length))
	if err != nil {
		return MhtProof{}, fmt.Errorf("paths: %w", err)
	}
	locs, err := DecodeVector[uint8](unsafe.Pointer(p.locs), int(p.locs_length))
	if err != nil {
		return MhtProof{}, fmt.Errorf("locs: %w", err)
	}
	return MhtProof{Index: int32(p.index), Label: label, Paths: paths, Locs: locs}, nil
}

func decodeCommitProof(p *C.pois_commit_proof_c) (CommitProof, error) {
	var out CommitProof
	if p.node != nil {
		node, err := decodeMhtProof(p.node)
		if err != nil {
			return CommitProof{}, fmt.Errorf("node: %w", err)
		}
		out.Node = &node
	}

	count := int(p.parents_count)
	switch {
	case count < 0:
		return CommitProof{}, fmt.Errorf("%w: negative parent count %d", ErrOutOfBounds, count)
	case count > 0 && p.parents == nil:
		return CommitProof{}, fmt.Errorf("%w: %d parents without a table", ErrOutOfBounds, count)
	}
	out.Parents = make([]MhtProof, count)
	if count == 0 {
		return out, nil
	}
	for i, pp := range unsafe.Slice(p.parents, count) {
		if pp == nil {
			return CommitProof{}, fmt.Errorf("%w: parent %d is nil", ErrOutOfBounds, i)
		}
		parent, err := decodeMhtProof(pp)
		if err != nil {
			return CommitProof{}, fmt.Errorf("parent %d: %w", i, err)
		}
		out.Parents[i] = parent
	}
	return out, nil
}

// decodeCommitProofs copies a ragged matrix whose rows are contiguous
// pois_commit_proof_c arrays.
func decodeCommitProofs(arrays, lengths unsafe.Pointer, count int) ([][]CommitProof, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative row count %d", ErrOutOfBounds, count)
	}
	if count == 0 {
		return [][]CommitProof{}, nil
	}
	if arrays == nil || lengths == nil {
		return nil, fmt.Errorf("%w: %d rows without row tables", ErrOutOfBounds, count)
	}

	rowPtrs := unsafe.Slice((*unsafe.Pointer)(arrays), count)
	rowLens := unsafe.Slice((*int32)(lengths), count)
	out := make([][]CommitProof, count)
	for i := range out {
		n := int(rowLens[i])
		switch {
		case n < 0:
			return nil, fmt.Errorf("%w: row %d has negative length %d", ErrOutOfBounds, i, n)
		case n > 0 && rowPtrs[i] == nil:
			return nil, fmt.Errorf("%w: row %d is nil with length %d", ErrOutOfBounds, i, n)
		}
		row := make([]CommitProof, n)
		if n > 0 {
			for j, cp := range unsafe.Slice((*C.pois_commit_proof_c)(rowPtrs[i]), n) {
				proof, err := decodeCommitProof(&cp)
				if err != nil {
					return nil, fmt.Errorf("row %d proof %d: %w", i, j, err)
				}
				row[j] = proof
			}
		}
		out[i] = row
	}
	return out, nil
}

func decodeAccProof(p *C.pois_acc_proof_c) (*AccProof, error) {
	if p == nil {
		return nil, nil
	}
	indexes, err := DecodeVector[int64](unsafe.Pointer(p.indexes), int(p.indexes_length))
	if err != nil {
		return nil, fmt.Errorf("indexes: %w", err)
	}
	labels, err := DecodeMatrix[uint8](unsafe.Pointer(p.labels), unsafe.Pointer(p.label_lengths), int(p.labels_length))
	if err != nil {
		return nil, fmt.Errorf("labels: %w", err)
	}
	path, err := DecodeMatrix[uint8](unsafe.Pointer(p.acc_path), unsafe.Pointer(p.acc_path_lengths), int(p.acc_path_length))
	if err != nil {
		return nil, fmt.Errorf("acc path: %w", err)
	}
	return &AccProof{Indexes: indexes, Labels: labels, AccPath: path}, nil
}

func (s *nativeSet) addMhtProof(p *C.pois_mht_proof_c) {
	s.add(unsafe.Pointer(p.label))
	s.addMatrix(unsafe.Pointer(p.paths), unsafe.Pointer(p.path_lengths), int(p.paths_length))
	s.add(unsafe.Pointer(p.locs))
}

func (s *nativeSet) addCommitProofs(arrays, lengths unsafe.Pointer, count int) {
	if arrays != nil && lengths != nil && count > 0 {
		rowPtrs := unsafe.Slice((*unsafe.Pointer)(arrays), count)
		rowLens := unsafe.Slice((*int32)(lengths), count)
		for i, row := range rowPtrs {
			if row == nil || rowLens[i] <= 0 {
				s.add(row)
				continue
			}
			for _, cp := range unsafe.Slice((*C.pois_commit_proof_c)(row), int(rowLens[i])) {
				if cp.node != nil {
					s.addMhtProof(cp.node)
					s.add(unsafe.Pointer(cp.node))
				}
				if cp.parents != nil && cp.parents_count > 0 {
					for _, pp := range unsafe.Slice(cp.parents, int(cp.parents_count)) {
						if pp != nil {
							s.addMhtProof(pp)
							s.add(unsafe.Pointer(pp))
						}
					}
				}
				s.add(unsafe.Pointer(cp.parents))
			}
			s.add(row)
		}
	}
	s.add(arrays)
	s.add(lengths)
}

func (s *nativeSet) addAccProof(p *C.pois_acc_proof_c) {
	if p == nil {
		return
	}
	s.add(unsafe.Pointer(p.indexes))
	s.addMatrix(unsafe.Pointer(p.labels), unsafe.Pointer(p.label_lengths), int(p.labels_length))
	s.addMatrix(unsafe.Pointer(p.acc_path), unsafe.Pointer(p.acc_path_lengths), int(p.acc_path_length))
	s.add(unsafe.Pointer(p))
}
