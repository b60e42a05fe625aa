package apperr

import (
	"context"
	"errors"

	"github.com/m-mizutani/ctxlog"
)

// Handle logs an error that cannot be returned to a caller. Cancellation by a
// departing client is logged at warn.
func Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	logger := ctxlog.From(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Warn("request cancelled", "error", err)
		return
	}
	logger.Error("application error", "error", err)
}
