package pois

import (
	"context"
	"time"

	"github.com/idlespace/pois-go/pkg/pois/logging"
)

type result[T any] struct {
	v   T
	err error
}

// run executes fn on its own goroutine and waits for it or for ctx. The
// engine cannot be interrupted, so a cancelled call keeps running until the
// native side returns; fn releases its own buffers either way.
func run[T any](ctx context.Context, log logging.Logger, op string, fn func() (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, wrapError(op, err)
	}

	done := make(chan result[T], 1)
	start := time.Now()
	go func() {
		v, err := fn()
		done <- result[T]{v: v, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			log.Debug(ctx, "engine call failed", "op", op, "duration", time.Since(start), "error", r.err)
			return zero, wrapError(op, r.err)
		}
		log.Debug(ctx, "engine call", "op", op, "duration", time.Since(start))
		return r.v, nil
	case <-ctx.Done():
		log.Warn(ctx, "engine call abandoned", "op", op, "after", time.Since(start), "error", ctx.Err())
		return zero, wrapError(op, ctx.Err())
	}
}
