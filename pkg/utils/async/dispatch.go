package async

import (
	"context"
	"errors"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
)

// Dispatch executes a handler function asynchronously with proper context and panic recovery.
// The handler outlives the caller's request; only the logger is carried over.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	run(newBackgroundContext(ctx), handler, nil)
}

// DispatchWithCancel is Dispatch whose handler context can be cancelled by
// the returned function. Calling it after the handler finished is a no-op.
func DispatchWithCancel(ctx context.Context, handler func(ctx context.Context) error) context.CancelFunc {
	newCtx, cancel := context.WithCancel(newBackgroundContext(ctx))
	run(newCtx, handler, cancel)
	return cancel
}

func run(ctx context.Context, handler func(ctx context.Context) error, done context.CancelFunc) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				ctxlog.From(ctx).Error("Panic in async handler",
					"recover", r,
					"stack", string(stack),
				)
			}
		}()
		if done != nil {
			defer done()
		}

		if err := handler(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				ctxlog.From(ctx).Debug("Async handler cancelled", "error", err)
				return
			}
			ctxlog.From(ctx).Error("Error in async handler",
				"error", err,
			)
		}
	}()
}

// newBackgroundContext creates a new background context preserving the logger
func newBackgroundContext(ctx context.Context) context.Context {
	newCtx := context.Background()

	logger := ctxlog.From(ctx)
	if logger != nil {
		newCtx = ctxlog.With(newCtx, logger)
	}

	return newCtx
}
