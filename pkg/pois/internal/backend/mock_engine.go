//go:build cgo && !windows

package backend

/*
#include <stdint.h>
#include <stdlib.h>
#include <string.h>
#include "pois_abi.h"

// A deterministic stand-in for a real engine. It follows the same ownership
// contract: every buffer it returns is malloc'd and must come back through
// FreeArray. Live allocations are counted so leaks show up in tests.

#define MOCK_ROOT_SIZE  64
#define MOCK_LABEL_SIZE 32
#define MOCK_PATHS      2
#define MOCK_PARENTS    2
#define MOCK_ACC_PATH   16

static int64_t mock_live;
static int64_t mock_perform_calls;

static void* mock_alloc(size_t n) {
	if (n == 0) {
		return NULL;
	}
	void* p = calloc(1, n);
	if (p != NULL) {
		mock_live++;
	}
	return p;
}

static void mock_FreeArray(void* p) {
	if (p != NULL) {
		mock_live--;
		free(p);
	}
}

static uint8_t* mock_bytes(size_t n, uint32_t seed) {
	uint8_t* b = mock_alloc(n);
	if (b == NULL) {
		return NULL;
	}
	for (size_t i = 0; i < n; i++) {
		b[i] = (uint8_t)(seed * 31u + (uint32_t)i * 7u);
	}
	return b;
}

static void mock_PerformPois(char* kn, char* kg, int64_t k, int64_t n, int64_t d) {
	(void)kn; (void)kg; (void)k; (void)n; (void)d;
	mock_perform_calls++;
}

static int64_t mock_InitializePoisArtifacts(char* kn, char* kg, int64_t k, int64_t n, int64_t d) {
	(void)n; (void)d;
	if (kn == NULL || kg == NULL || kn[0] == 0 || kg[0] == 0) {
		return 0;
	}
	return k;
}

static pois_commits_ret mock_GetCommits(int64_t count, char* kn, char* kg, int64_t k, int64_t n, int64_t d) {
	(void)kn; (void)kg; (void)n; (void)d;
	pois_commits_ret ret = {NULL, 0};
	if (count <= 0 || k < 0) {
		return ret;
	}
	pois_commit_c* commits = mock_alloc((size_t)count * sizeof(pois_commit_c));
	int32_t roots = (int32_t)(k + 2);
	for (int64_t i = 0; i < count; i++) {
		int64_t file = i + 1;
		commits[i].file_index = file;
		commits[i].roots_length = roots;
		commits[i].roots = mock_alloc((size_t)roots * sizeof(uint8_t*));
		commits[i].sub_roots_lengths = mock_alloc((size_t)roots * sizeof(int32_t));
		for (int32_t r = 0; r < roots; r++) {
			commits[i].roots[r] = mock_bytes(MOCK_ROOT_SIZE, (uint32_t)(file * 131 + r));
			commits[i].sub_roots_lengths[r] = MOCK_ROOT_SIZE;
		}
	}
	ret.r0 = commits;
	ret.r1 = count;
	return ret;
}

// Row i is {file_index, roots_length, sum of all root bytes, id_len}, with
// (file_index * k) % n appended on odd rows so rows differ in length.
static pois_i64_matrix_ret mock_GenerateCommitChallenge(pois_commit_c* commits, int64_t count, char* kn, char* kg, int64_t k, int64_t n, int64_t d, char* id, int32_t id_len) {
	(void)kn; (void)kg; (void)d; (void)id;
	pois_i64_matrix_ret ret = {NULL, NULL, 0};
	if (commits == NULL || count <= 0) {
		return ret;
	}
	ret.r0 = mock_alloc((size_t)count * sizeof(int64_t*));
	ret.r1 = mock_alloc((size_t)count * sizeof(int32_t));
	ret.r2 = (int32_t)count;
	for (int64_t i = 0; i < count; i++) {
		pois_commit_c* c = &commits[i];
		int64_t sum = 0;
		for (int32_t r = 0; r < c->roots_length; r++) {
			for (int32_t j = 0; j < c->sub_roots_lengths[r]; j++) {
				sum += c->roots[r][j];
			}
		}
		int32_t len = (i % 2 == 1) ? 5 : 4;
		int64_t* row = mock_alloc((size_t)len * sizeof(int64_t));
		row[0] = c->file_index;
		row[1] = c->roots_length;
		row[2] = sum;
		row[3] = id_len;
		if (len == 5) {
			row[4] = n > 0 ? (c->file_index * k) % n : 0;
		}
		ret.r0[i] = row;
		ret.r1[i] = len;
	}
	return ret;
}

static pois_mht_proof_c* mock_mht(int32_t index) {
	pois_mht_proof_c* p = mock_alloc(sizeof(pois_mht_proof_c));
	p->index = index;
	p->label = mock_bytes(MOCK_LABEL_SIZE, (uint32_t)index);
	p->label_length = MOCK_LABEL_SIZE;
	p->paths = mock_alloc(MOCK_PATHS * sizeof(uint8_t*));
	p->path_lengths = mock_alloc(MOCK_PATHS * sizeof(int32_t));
	p->paths_length = MOCK_PATHS;
	for (int32_t i = 0; i < MOCK_PATHS; i++) {
		p->paths[i] = mock_bytes(MOCK_LABEL_SIZE, (uint32_t)(index + i + 1));
		p->path_lengths[i] = MOCK_LABEL_SIZE;
	}
	p->locs = mock_alloc(MOCK_PATHS);
	p->locs_length = MOCK_PATHS;
	for (int32_t i = 0; i < MOCK_PATHS; i++) {
		p->locs[i] = (uint8_t)(i % 2);
	}
	return p;
}

// Challenge row i yields one commit proof per element after the first. A
// negative element yields a proof without a node.
static pois_proofs_ret mock_GetCommitProofAndAccProof(int64_t count, int64_t** ch, int32_t* ch_lens, int32_t ch_count, char* kn, char* kg, int64_t k, int64_t n, int64_t d) {
	(void)count; (void)kn; (void)kg; (void)k; (void)n; (void)d;
	pois_proofs_ret ret = {NULL, NULL, 0, NULL};
	if (ch == NULL || ch_lens == NULL || ch_count <= 0) {
		return ret;
	}
	ret.r0 = mock_alloc((size_t)ch_count * sizeof(pois_commit_proof_c*));
	ret.r1 = mock_alloc((size_t)ch_count * sizeof(int32_t));
	ret.r2 = ch_count;

	pois_acc_proof_c* acc = mock_alloc(sizeof(pois_acc_proof_c));
	acc->indexes = mock_alloc((size_t)ch_count * sizeof(int64_t));
	acc->labels = mock_alloc((size_t)ch_count * sizeof(uint8_t*));
	acc->label_lengths = mock_alloc((size_t)ch_count * sizeof(int32_t));

	for (int32_t i = 0; i < ch_count; i++) {
		int32_t len = ch_lens[i] > 0 ? ch_lens[i] - 1 : 0;
		ret.r1[i] = len;
		if (len > 0) {
			pois_commit_proof_c* row = mock_alloc((size_t)len * sizeof(pois_commit_proof_c));
			for (int32_t j = 0; j < len; j++) {
				int64_t v = ch[i][j + 1];
				row[j].node = v < 0 ? NULL : mock_mht((int32_t)v);
				row[j].parents = mock_alloc(MOCK_PARENTS * sizeof(pois_mht_proof_c*));
				row[j].parents_count = MOCK_PARENTS;
				for (int32_t p = 0; p < MOCK_PARENTS; p++) {
					row[j].parents[p] = mock_mht((int32_t)(v + p + 1));
				}
			}
			ret.r0[i] = row;
		}
		if (ch_lens[i] > 0) {
			int32_t a = acc->indexes_length++;
			acc->indexes[a] = ch[i][0];
			acc->labels[a] = mock_bytes(MOCK_LABEL_SIZE, (uint32_t)ch[i][0]);
			acc->label_lengths[a] = MOCK_LABEL_SIZE;
			acc->labels_length++;
		}
	}

	acc->acc_path_length = 1;
	acc->acc_path = mock_alloc(sizeof(uint8_t*));
	acc->acc_path_lengths = mock_alloc(sizeof(int32_t));
	acc->acc_path[0] = mock_bytes(MOCK_ACC_PATH, (uint32_t)ch_count);
	acc->acc_path_lengths[0] = MOCK_ACC_PATH;
	ret.r3 = acc;
	return ret;
}

// Accepts when there is a prover id and every challenge row starts with a
// positive file index.
static int32_t mock_VerifyCommitAndAccProofs(int64_t** ch, int32_t* ch_lens, int32_t ch_count, char* kn, char* kg, int64_t k, int64_t n, int64_t d, char* id, int32_t id_len) {
	(void)kn; (void)kg; (void)k; (void)n; (void)d;
	if (id == NULL || id_len <= 0 || ch == NULL || ch_lens == NULL || ch_count <= 0) {
		return 1;
	}
	for (int32_t i = 0; i < ch_count; i++) {
		if (ch_lens[i] <= 0 || ch[i] == NULL || ch[i][0] <= 0) {
			return 2;
		}
	}
	return 0;
}

static void* mock_lookup(const char* name) {
	if (strcmp(name, "PerformPois") == 0) return (void*)mock_PerformPois;
	if (strcmp(name, "InitializePoisArtifacts") == 0) return (void*)mock_InitializePoisArtifacts;
	if (strcmp(name, "GetCommits") == 0) return (void*)mock_GetCommits;
	if (strcmp(name, "GenerateCommitChallenge") == 0) return (void*)mock_GenerateCommitChallenge;
	if (strcmp(name, "GetCommitProofAndAccProof") == 0) return (void*)mock_GetCommitProofAndAccProof;
	if (strcmp(name, "VerifyCommitAndAccProofs") == 0) return (void*)mock_VerifyCommitAndAccProofs;
	if (strcmp(name, "FreeArray") == 0) return (void*)mock_FreeArray;
	return NULL;
}

static int64_t mock_live_allocations(void) { return mock_live; }
static int64_t mock_perform_count(void) { return mock_perform_calls; }
*/
import "C"

import (
	"unsafe"
)

// openMock binds the in-process mock engine. Names listed in omit are
// reported as missing, which lets tests exercise partial engines.
func openMock(omit ...string) (*Library, error) {
	return bind(MockLibraryPath, nil, func(name string) unsafe.Pointer {
		for _, o := range omit {
			if o == name {
				return nil
			}
		}
		cName := C.CString(name)
		defer C.free(unsafe.Pointer(cName))
		return C.mock_lookup(cName)
	})
}

// MockLiveAllocations reports how many mock engine buffers are currently
// outstanding.
func MockLiveAllocations() int64 {
	callMu.Lock()
	defer callMu.Unlock()
	return int64(C.mock_live_allocations())
}

// MockPerformCount reports how many times the mock's PerformPois ran.
func MockPerformCount() int64 {
	callMu.Lock()
	defer callMu.Unlock()
	return int64(C.mock_perform_count())
}
