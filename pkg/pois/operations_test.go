//go:build cgo && !windows

package pois_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/idlespace/pois-go/pkg/pois"
	"github.com/idlespace/pois-go/pkg/pois/poistest"
)

const prover = pois.ProverID("prover-1")

func TestFullFlow(t *testing.T) {
	poistest.RequireNoLeak(t)
	lib := poistest.Open(t)
	ctx := context.Background()
	p := poistest.Params()

	before := poistest.PerformCount()
	require.NoError(t, lib.PerformPois(ctx, p))
	require.Equal(t, before+1, poistest.PerformCount())

	n, err := lib.InitializePoisArtifacts(ctx, p)
	require.NoError(t, err)
	require.Equal(t, p.K, n)

	commits, err := lib.GetCommits(ctx, n, p)
	require.NoError(t, err)
	require.Len(t, commits, int(n))
	for i, c := range commits {
		require.Equal(t, int64(i+1), c.FileIndex)
		require.Len(t, c.Roots, int(p.K+2))
	}

	challenge, err := lib.GenerateCommitChallenge(ctx, commits, p, prover)
	require.NoError(t, err)
	require.Len(t, challenge, len(commits))
	for i, row := range challenge {
		require.Equal(t, commits[i].FileIndex, row[0])
		require.Equal(t, int64(len(prover)), row[3])
	}

	proofs, acc, err := lib.GetCommitProofAndAccProof(ctx, n, challenge, p)
	require.NoError(t, err)
	require.Len(t, proofs, len(challenge))
	for i, row := range proofs {
		require.Len(t, row, len(challenge[i])-1)
	}
	require.NotNil(t, acc)
	require.Len(t, acc.Indexes, len(challenge))

	require.NoError(t, lib.VerifyCommitAndAccProofs(ctx, challenge, p, prover))
}

func TestVerifyRejection(t *testing.T) {
	lib := poistest.Open(t)
	err := lib.VerifyCommitAndAccProofs(context.Background(), pois.Challenge{{0, 1}}, poistest.Params(), prover)
	require.ErrorIs(t, err, pois.ErrVerificationFailed)

	var perr *pois.Error
	require.True(t, errors.As(err, &perr))
	require.Equal(t, "VerifyCommitAndAccProofs", perr.Op)
}

func TestCancelledContextLeavesLibraryUsable(t *testing.T) {
	poistest.RequireNoLeak(t)
	lib := poistest.Open(t)
	p := poistest.Params()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := lib.GetCommits(ctx, 3, p)
	require.ErrorIs(t, err, context.Canceled)

	commits, err := lib.GetCommits(context.Background(), 3, p)
	require.NoError(t, err)
	require.Len(t, commits, 3)
}

func TestInvalidParams(t *testing.T) {
	lib := poistest.Open(t)
	p := poistest.Params()
	p.KeyN = nil

	_, err := lib.GetCommits(context.Background(), 1, p)
	require.ErrorIs(t, err, pois.ErrInvalidParameter)

	_, err = lib.GetCommits(context.Background(), -1, poistest.Params())
	require.ErrorIs(t, err, pois.ErrInvalidParameter)
}

func TestClosedLibrary(t *testing.T) {
	lib, err := pois.Open(pois.Config{LibraryPath: poistest.LibraryPath})
	require.NoError(t, err)
	require.Equal(t, poistest.LibraryPath, lib.Path())
	require.NoError(t, lib.Close())

	require.ErrorIs(t, lib.Close(), pois.ErrLibraryClosed)
	_, err = lib.InitializePoisArtifacts(context.Background(), poistest.Params())
	require.ErrorIs(t, err, pois.ErrLibraryClosed)
}

func TestOpenMissingLibrary(t *testing.T) {
	_, err := pois.Open(pois.Config{LibraryPath: "/nonexistent/libpois-engine.so"})
	require.ErrorIs(t, err, pois.ErrLibraryLoad)

	var perr *pois.Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "Open", perr.Op)
}

func TestCallsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	lib := poistest.OpenWithLogger(t, logger)

	_, err := lib.GetCommits(context.Background(), 1, poistest.Params())
	require.NoError(t, err)
	require.Contains(t, buf.String(), "engine call")
	require.Contains(t, buf.String(), "op=GetCommits")
	require.Contains(t, buf.String(), "library="+poistest.LibraryPath)
}

func TestConcurrentFlows(t *testing.T) {
	poistest.RequireNoLeak(t)
	lib := poistest.Open(t)
	p := poistest.Params()
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			commits, err := lib.GetCommits(ctx, 2, p)
			if err != nil {
				errs <- err
				return
			}
			ch, err := lib.GenerateCommitChallenge(ctx, commits, p, prover)
			if err != nil {
				errs <- err
				return
			}
			errs <- lib.VerifyCommitAndAccProofs(ctx, ch, p, prover)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}
