package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWritesThroughSlog(t *testing.T) {
	var buf bytes.Buffer
	l := New(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	l.With("op", "GetCommits").Debug(context.Background(), "native call", "count", 3)
	require.Contains(t, buf.String(), "native call")
	require.Contains(t, buf.String(), "op=GetCommits")
	require.Contains(t, buf.String(), "count=3")
}

func TestNewNilUsesDefault(t *testing.T) {
	require.NotNil(t, New(nil))
}

func TestNopDiscards(t *testing.T) {
	l := Nop()
	l.Error(context.Background(), "dropped")
	require.NotNil(t, l.With("k", "v"))
}

func TestRedacted(t *testing.T) {
	attr := Redacted("key_n")
	require.Equal(t, "key_n", attr.Key)
	require.Equal(t, "[redacted]", attr.Value.String())
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	require.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	require.Equal(t, slog.LevelInfo, ParseLevel("loud"))
}
