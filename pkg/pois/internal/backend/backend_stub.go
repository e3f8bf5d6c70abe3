//go:build !cgo || windows

package backend

// Stub implementations for non-CGO builds or Windows.
// These allow the package to compile but return ErrNotBuilt when called.

// Library is a stub type for non-CGO builds.
type Library struct{}

func Open(string) (*Library, error) {
	return nil, ErrNotBuilt
}

func (l *Library) Path() string { return "" }

func (l *Library) CanFree() bool { return false }

func (l *Library) Close() error { return ErrNotBuilt }

func (l *Library) PerformPois(Params) error {
	return ErrNotBuilt
}

func (l *Library) InitializePoisArtifacts(Params) (int64, error) {
	return 0, ErrNotBuilt
}

func (l *Library) GetCommits(int64, Params) ([]Commit, error) {
	return nil, ErrNotBuilt
}

func (l *Library) GenerateCommitChallenge([]Commit, Params, string) ([][]int64, error) {
	return nil, ErrNotBuilt
}

func (l *Library) GetCommitProofAndAccProof(int64, [][]int64, Params) ([][]CommitProof, *AccProof, error) {
	return nil, nil, ErrNotBuilt
}

func (l *Library) VerifyCommitAndAccProofs([][]int64, Params, string) error {
	return ErrNotBuilt
}

func MockLiveAllocations() int64 { return 0 }

func MockPerformCount() int64 { return 0 }
