package pois

import "context"

// PerformPois runs the engine's end-to-end PoIS flow.
func (l *Library) PerformPois(ctx context.Context, p CommonParam) error {
	_, err := run(ctx, l.log, "PerformPois", func() (struct{}, error) {
		return struct{}{}, l.lib.PerformPois(p)
	})
	return err
}

// InitializePoisArtifacts prepares the engine's artifacts and returns the
// number of files generated.
func (l *Library) InitializePoisArtifacts(ctx context.Context, p CommonParam) (int64, error) {
	return run(ctx, l.log, "InitializePoisArtifacts", func() (int64, error) {
		return l.lib.InitializePoisArtifacts(p)
	})
}

// GetCommits returns the commits of the first generatedCount files.
func (l *Library) GetCommits(ctx context.Context, generatedCount int64, p CommonParam) ([]Commit, error) {
	return run(ctx, l.log, "GetCommits", func() ([]Commit, error) {
		return l.lib.GetCommits(generatedCount, p)
	})
}

// GenerateCommitChallenge derives a challenge over commits for prover.
func (l *Library) GenerateCommitChallenge(ctx context.Context, commits []Commit, p CommonParam, prover ProverID) (Challenge, error) {
	return run(ctx, l.log, "GenerateCommitChallenge", func() (Challenge, error) {
		rows, err := l.lib.GenerateCommitChallenge(commits, p, string(prover))
		return Challenge(rows), err
	})
}

// proofSet is the answer to a Challenge: one row of commit proofs per challenge
// row plus the accumulator proof.
type proofSet struct {
	Commits [][]CommitProof
	Acc     *AccProof
}

// GetCommitProofAndAccProof answers challenge.
func (l *Library) GetCommitProofAndAccProof(ctx context.Context, generatedCount int64, challenge Challenge, p CommonParam) ([][]CommitProof, *AccProof, error) {
	r, err := run(ctx, l.log, "GetCommitProofAndAccProof", func() (proofSet, error) {
		commits, acc, err := l.lib.GetCommitProofAndAccProof(generatedCount, challenge, p)
		return proofSet{Commits: commits, Acc: acc}, err
	})
	return r.Commits, r.Acc, err
}

// VerifyCommitAndAccProofs asks the engine to verify the proofs bound to
// challenge. Rejection is reported as ErrVerificationFailed.
func (l *Library) VerifyCommitAndAccProofs(ctx context.Context, challenge Challenge, p CommonParam, prover ProverID) error {
	_, err := run(ctx, l.log, "VerifyCommitAndAccProofs", func() (struct{}, error) {
		return struct{}{}, l.lib.VerifyCommitAndAccProofs(challenge, p, string(prover))
	})
	return err
}
