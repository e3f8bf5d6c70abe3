package pois

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/idlespace/pois-go/pkg/pois/logging"
)

func TestRunReturnsResult(t *testing.T) {
	v, err := run(context.Background(), logging.Nop(), "op", func() (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	require.Equal(t, 42, v)
}

func TestRunWrapsError(t *testing.T) {
	_, err := run(context.Background(), logging.Nop(), "GetCommits", func() (int, error) {
		return 7, ErrOutOfBounds
	})
	require.ErrorIs(t, err, ErrOutOfBounds)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "GetCommits", perr.Op)
	require.Equal(t, "pois.GetCommits: pois: out of bounds", err.Error())
}

func TestRunSkipsWorkOnDoneContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	_, err := run(ctx, logging.Nop(), "op", func() (int, error) {
		called = true
		return 0, nil
	})
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, called)
}

func TestRunAbandonsBlockedCall(t *testing.T) {
	release := make(chan struct{})
	finished := make(chan struct{})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := run(ctx, logging.Nop(), "op", func() (int, error) {
		defer close(finished)
		<-release
		return 1, nil
	})
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// The abandoned call still runs to completion.
	close(release)
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("abandoned call did not finish")
	}
}

func TestErrorUnwrap(t *testing.T) {
	base := errors.New("boom")
	err := wrapError("Close", base)
	require.ErrorIs(t, err, base)
	require.Nil(t, wrapError("Close", nil))
}

func TestConfigLibraryPath(t *testing.T) {
	require.Equal(t, DefaultLibraryPath, Config{}.libraryPath())
	require.Equal(t, "/opt/pois/libpois.so", Config{LibraryPath: "/opt/pois/libpois.so"}.libraryPath())
}

func TestCloseNilLibrary(t *testing.T) {
	var l *Library
	require.NoError(t, l.Close())
}
